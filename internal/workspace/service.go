package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/erp-records-backend/internal/records"
	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
)

// RecordLister supplies the full record set a workspace view is computed from.
type RecordLister interface {
	List(ctx context.Context) ([]models.ERPRecord, error)
}

// Snapshot is a workspace's state with its freshly computed view.
type Snapshot struct {
	State         State
	View          records.View
	SelectedCount int
	AllSelected   bool
}

// Service drives a session's record list through explicit state transitions.
type Service interface {
	Snapshot(ctx context.Context, sessionID string) (*Snapshot, error)
	SetSearch(ctx context.Context, sessionID, query string) (*Snapshot, error)
	SetStatusFilter(ctx context.Context, sessionID, value string) (*Snapshot, error)
	SetMarketplaceFilter(ctx context.Context, sessionID, value string) (*Snapshot, error)
	ResetFilters(ctx context.Context, sessionID string) (*Snapshot, error)
	Sort(ctx context.Context, sessionID string, field records.SortField) (*Snapshot, error)
	SetPage(ctx context.Context, sessionID string, page int) (*Snapshot, error)
	SetPageSize(ctx context.Context, sessionID string, size int) (*Snapshot, error)
	ToggleOne(ctx context.Context, sessionID string, id uuid.UUID) (*Snapshot, error)
	ToggleAll(ctx context.Context, sessionID string) (*Snapshot, error)
}

// ServiceParams groups the workspace service collaborators.
type ServiceParams struct {
	Store           Store
	Records         RecordLister
	Logger          *logger.Logger
	DefaultPageSize int
	MaxPageSize     int
	Clock           func() time.Time
}

type service struct {
	store           Store
	records         RecordLister
	logg            *logger.Logger
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
}

// NewService builds the workspace service.
func NewService(p ServiceParams) (Service, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("workspace store required")
	}
	if p.Records == nil {
		return nil, fmt.Errorf("record lister required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store:           p.Store,
		records:         p.Records,
		logg:            p.Logger,
		defaultPageSize: p.DefaultPageSize,
		maxPageSize:     p.MaxPageSize,
		now:             clock,
	}, nil
}

// transition computes the next state from the current one, the full record set
// and the view the session currently sees.
type transition func(state State, rows []models.ERPRecord, view records.View) (State, error)

func (s *service) Snapshot(ctx context.Context, sessionID string) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "snapshot", nil)
}

func (s *service) SetSearch(ctx context.Context, sessionID, query string) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "search", func(st State, _ []models.ERPRecord, _ records.View) (State, error) {
		return st.WithSearch(query), nil
	})
}

func (s *service) SetStatusFilter(ctx context.Context, sessionID, value string) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "status_filter", func(st State, _ []models.ERPRecord, _ records.View) (State, error) {
		return st.WithStatusFilter(value), nil
	})
}

func (s *service) SetMarketplaceFilter(ctx context.Context, sessionID, value string) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "marketplace_filter", func(st State, _ []models.ERPRecord, _ records.View) (State, error) {
		return st.WithMarketplaceFilter(value), nil
	})
}

func (s *service) ResetFilters(ctx context.Context, sessionID string) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "reset_filters", func(st State, _ []models.ERPRecord, _ records.View) (State, error) {
		return st.WithFiltersReset(), nil
	})
}

func (s *service) Sort(ctx context.Context, sessionID string, field records.SortField) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "sort", func(st State, _ []models.ERPRecord, _ records.View) (State, error) {
		return st.WithSort(field)
	})
}

func (s *service) SetPage(ctx context.Context, sessionID string, page int) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "page", func(st State, _ []models.ERPRecord, _ records.View) (State, error) {
		return st.WithPage(page)
	})
}

func (s *service) SetPageSize(ctx context.Context, sessionID string, size int) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "page_size", func(st State, _ []models.ERPRecord, _ records.View) (State, error) {
		return st.WithPageSize(size, s.maxPageSize)
	})
}

func (s *service) ToggleOne(ctx context.Context, sessionID string, id uuid.UUID) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "toggle_one", func(st State, rows []models.ERPRecord, _ records.View) (State, error) {
		if !st.Selection.Has(id) && !containsRecord(rows, id) {
			return st, pkgerrors.New(pkgerrors.CodeNotFound, "record not found").
				WithDetails(map[string]any{"record_id": id.String()})
		}
		return st.WithToggledOne(id), nil
	})
}

func (s *service) ToggleAll(ctx context.Context, sessionID string) (*Snapshot, error) {
	return s.apply(ctx, sessionID, "toggle_all", func(st State, _ []models.ERPRecord, view records.View) (State, error) {
		return st.WithToggledAll(view.PageIDs()), nil
	})
}

// apply loads the session state, lists the records once, applies next and
// persists the result. Nothing is saved when any step fails.
func (s *service) apply(ctx context.Context, sessionID, action string, next transition) (*Snapshot, error) {
	if err := ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	ctx = s.logg.WithSessionID(ctx, sessionID)

	state, found, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		state = NewState(sessionID)
		if s.defaultPageSize > 0 {
			state.Params.PageSize = s.defaultPageSize
		}
	}

	rows, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}

	current, err := records.ComputeView(rows, state.Params)
	if err != nil {
		return nil, err
	}

	if next == nil {
		if !found {
			state.UpdatedAt = s.now().UTC()
			if err := s.store.Save(ctx, state); err != nil {
				return nil, err
			}
		}
		return buildSnapshot(state, current), nil
	}

	updated, err := next(state, rows, current)
	if err != nil {
		return nil, err
	}
	view, err := records.ComputeView(rows, updated.Params)
	if err != nil {
		return nil, err
	}

	updated.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.logg.Debug(s.logg.WithField(ctx, "action", action), "workspace updated")
	return buildSnapshot(updated, view), nil
}

func containsRecord(rows []models.ERPRecord, id uuid.UUID) bool {
	for i := range rows {
		if rows[i].ID == id {
			return true
		}
	}
	return false
}

func buildSnapshot(state State, view records.View) *Snapshot {
	return &Snapshot{
		State:         state,
		View:          view,
		SelectedCount: state.Selection.Len(),
		AllSelected:   state.Selection.AllSelected(view.PageIDs()),
	}
}
