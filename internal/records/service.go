package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/erp-records-backend/pkg/db"
	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
	"github.com/angelmondragon/erp-records-backend/pkg/metrics"
)

const (
	opList   = "list"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Service hosts the record list engine: stateless reads, mutations followed by a
// full refresh, and spreadsheet export.
type Service interface {
	List(ctx context.Context) ([]models.ERPRecord, error)
	View(ctx context.Context, params ViewParams) (*View, error)
	Create(ctx context.Context, input CreateRecordInput, params ViewParams) (*MutationResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRecordInput, params ViewParams) (*MutationResult, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool, params ViewParams) (*MutationResult, error)
	Export(ctx context.Context, params ViewParams, w io.Writer) (int, error)
}

// MutationResult carries the mutated record and the view recomputed from a fresh
// List. View is nil when only the refresh failed.
type MutationResult struct {
	Record    *models.ERPRecord
	DeletedID *uuid.UUID
	View      *View
}

// ServiceParams groups the service collaborators.
type ServiceParams struct {
	Store     Store
	Logger    *logger.Logger
	Metrics   *metrics.StoreMetrics
	SheetName string
	Clock     func() time.Time
}

type service struct {
	store     Store
	logg      *logger.Logger
	metrics   *metrics.StoreMetrics
	sheetName string
	now       func() time.Time
}

// NewService builds the records service.
func NewService(p ServiceParams) (Service, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("record store required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	sheet := p.SheetName
	if sheet == "" {
		sheet = defaultSheetName
	}
	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store:     p.Store,
		logg:      p.Logger,
		metrics:   p.Metrics,
		sheetName: sheet,
		now:       clock,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.ERPRecord, error) {
	start := time.Now()
	rows, err := s.store.List(ctx)
	s.metrics.Observe(opList, start, err)
	if err != nil {
		return nil, storeFailure(err, "list records")
	}
	return rows, nil
}

func (s *service) View(ctx context.Context, params ViewParams) (*View, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	view, err := ComputeView(rows, params)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *service) Create(ctx context.Context, input CreateRecordInput, params ViewParams) (*MutationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	record := input.toModel(s.now())
	if err := validateRecord(record); err != nil {
		return nil, err
	}

	start := time.Now()
	created, err := s.store.Create(ctx, &record)
	s.metrics.Observe(opCreate, start, err)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "record already exists")
		}
		return nil, storeFailure(err, "create record")
	}

	ctx = s.logg.WithRecordID(ctx, created.ID.String())
	s.logg.Info(ctx, "record created")

	result := &MutationResult{Record: created}
	if refreshed, view := s.refresh(ctx, params); view != nil {
		result.View = view
		if found := findRecord(refreshed, created.ID); found != nil {
			result.Record = found
		}
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRecordInput, params ViewParams) (*MutationResult, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record id required")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	fields, err := input.toFields()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = s.store.Update(ctx, id, fields)
	s.metrics.Observe(opUpdate, start, err)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, storeFailure(err, "update record")
	}

	ctx = s.logg.WithRecordID(ctx, id.String())
	s.logg.Info(s.logg.WithField(ctx, "fields", len(fields)), "record updated")

	result := &MutationResult{}
	if refreshed, view := s.refresh(ctx, params); view != nil {
		result.View = view
		result.Record = findRecord(refreshed, id)
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, confirmed bool, params ViewParams) (*MutationResult, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record id required")
	}
	if !confirmed {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deletion must be confirmed").
			WithDetails(map[string]any{"field": "confirm"})
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	err := s.store.Delete(ctx, id)
	s.metrics.Observe(opDelete, start, err)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, storeFailure(err, "delete record")
	}

	ctx = s.logg.WithRecordID(ctx, id.String())
	s.logg.Info(ctx, "record deleted")

	deleted := id
	result := &MutationResult{DeletedID: &deleted}
	if _, view := s.refresh(ctx, params); view != nil {
		result.View = view
	}
	return result, nil
}

// refresh re-reads the full set after a mutation. A failure is logged and
// reported as a nil view; the mutation itself already succeeded.
func (s *service) refresh(ctx context.Context, params ViewParams) ([]models.ERPRecord, *View) {
	rows, err := s.List(ctx)
	if err != nil {
		s.logg.Error(ctx, "refresh after mutation failed", err)
		return nil, nil
	}
	view, err := ComputeView(rows, params)
	if err != nil {
		s.logg.Error(ctx, "recompute view after mutation failed", err)
		return nil, nil
	}
	return rows, &view
}

func findRecord(rows []models.ERPRecord, id uuid.UUID) *models.ERPRecord {
	for i := range rows {
		if rows[i].ID == id {
			record := rows[i]
			return &record
		}
	}
	return nil
}

func storeFailure(err error, message string) error {
	return pkgerrors.Wrap(pkgerrors.CodeStoreFailure, err, message)
}
