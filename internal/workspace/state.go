package workspace

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/erp-records-backend/internal/records"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
)

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// State is one session's record-list view state.
type State struct {
	SessionID string             `json:"session_id"`
	Params    records.ViewParams `json:"params"`
	Selection records.Selection  `json:"selection"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewState returns the initial state for a session: newest record date first,
// first page of 50, no filters and nothing selected.
func NewState(sessionID string) State {
	return State{
		SessionID: sessionID,
		Params:    records.DefaultViewParams(),
		Selection: records.NewSelection(),
	}
}

// ValidateSessionID rejects ids that cannot be used as storage keys.
func ValidateSessionID(sessionID string) error {
	if !sessionIDRe.MatchString(sessionID) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
			WithDetails(map[string]any{"field": "session_id"})
	}
	return nil
}

func normalizeFilter(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return records.FilterAll
	}
	return trimmed
}

// WithSearch sets the search text and returns to the first page.
func (s State) WithSearch(query string) State {
	s.Params.Search = query
	s.Params.Page = 1
	return s
}

// WithStatusFilter sets the status filter and returns to the first page.
func (s State) WithStatusFilter(value string) State {
	s.Params.StatusFilter = normalizeFilter(value)
	s.Params.Page = 1
	return s
}

// WithMarketplaceFilter sets the marketplace filter and returns to the first page.
func (s State) WithMarketplaceFilter(value string) State {
	s.Params.MarketplaceFilter = normalizeFilter(value)
	s.Params.Page = 1
	return s
}

// WithFiltersReset clears the search and both filters.
func (s State) WithFiltersReset() State {
	s.Params.Search = ""
	s.Params.StatusFilter = records.FilterAll
	s.Params.MarketplaceFilter = records.FilterAll
	s.Params.Page = 1
	return s
}

// WithSort toggles the direction when field is already the sort field and
// otherwise sorts ascending by field.
func (s State) WithSort(field records.SortField) (State, error) {
	if field == records.SortNone || !field.IsValid() {
		return s, pkgerrors.New(pkgerrors.CodeInvalidArgument, "unknown sort field").
			WithDetails(map[string]any{"sort": string(field)})
	}
	if s.Params.SortField == field {
		s.Params.SortDirection = s.Params.SortDirection.Flip()
	} else {
		s.Params.SortField = field
		s.Params.SortDirection = records.SortAsc
	}
	s.Params.Page = 1
	return s, nil
}

// WithPage moves to page n. Pages past the end are allowed and render empty.
func (s State) WithPage(n int) (State, error) {
	if n < 1 {
		return s, pkgerrors.New(pkgerrors.CodeInvalidArgument, "page must be at least 1").
			WithDetails(map[string]any{"page": n})
	}
	s.Params.Page = n
	return s, nil
}

// WithPageSize changes the page size, returns to the first page and clears the selection.
func (s State) WithPageSize(n, max int) (State, error) {
	if n <= 0 || (max > 0 && n > max) {
		return s, pkgerrors.New(pkgerrors.CodeInvalidArgument, "page size out of range").
			WithDetails(map[string]any{"page_size": n, "max": max})
	}
	s.Params.PageSize = n
	s.Params.Page = 1
	s.Selection = records.NewSelection()
	return s, nil
}

// WithToggledOne flips id's selection.
func (s State) WithToggledOne(id uuid.UUID) State {
	s.Selection = s.Selection.ToggleOne(id)
	return s
}

// WithToggledAll applies the header checkbox to the ids on the current page.
func (s State) WithToggledAll(pageIDs []uuid.UUID) State {
	s.Selection = s.Selection.ToggleAll(pageIDs)
	return s
}
