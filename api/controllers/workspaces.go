package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/erp-records-backend/api/responses"
	"github.com/angelmondragon/erp-records-backend/api/validators"
	"github.com/angelmondragon/erp-records-backend/internal/records"
	"github.com/angelmondragon/erp-records-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
)

const sessionIDParam = "sessionId"

const (
	filterFieldStatus      = "status"
	filterFieldMarketplace = "marketplace"
)

type workspaceSearchRequest struct {
	Query string `json:"query"`
}

type workspaceFilterRequest struct {
	Field string `json:"field" validate:"required,oneof=status marketplace"`
	Value string `json:"value"`
}

type workspaceSortRequest struct {
	Field records.SortField `json:"field" validate:"required"`
}

type workspacePageRequest struct {
	Page int `json:"page"`
}

type workspacePageSizeRequest struct {
	PageSize int `json:"page_size"`
}

type workspaceToggleRequest struct {
	RecordID uuid.UUID `json:"record_id"`
}

type workspaceAction func(r *http.Request, sessionID string) (*workspace.Snapshot, error)

// workspaceHandler resolves the session id and writes the resulting snapshot.
func workspaceHandler(svc workspace.Service, logg *logger.Logger, action workspaceAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workspace service unavailable"))
			return
		}

		sessionID := strings.TrimSpace(chi.URLParam(r, sessionIDParam))
		snapshot, err := action(r, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, workspace.NewSnapshotDTO(snapshot))
	}
}

// WorkspaceFetch returns the session's view, creating the default state on first use.
func WorkspaceFetch(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		return svc.Snapshot(r.Context(), sessionID)
	})
}

// WorkspaceSearch sets the search text.
func WorkspaceSearch(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		var body workspaceSearchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.SetSearch(r.Context(), sessionID, validators.SanitizeString(body.Query, searchQueryMaxChars))
	})
}

// WorkspaceFilter sets the status or marketplace filter.
func WorkspaceFilter(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		var body workspaceFilterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		switch body.Field {
		case filterFieldMarketplace:
			return svc.SetMarketplaceFilter(r.Context(), sessionID, body.Value)
		case filterFieldStatus:
			return svc.SetStatusFilter(r.Context(), sessionID, body.Value)
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown filter field").
			WithDetails(map[string]any{"field": body.Field})
	})
}

// WorkspaceResetFilters clears the search and both filters.
func WorkspaceResetFilters(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		return svc.ResetFilters(r.Context(), sessionID)
	})
}

// WorkspaceSort sorts by a column, toggling the direction on repeat.
func WorkspaceSort(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		var body workspaceSortRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.Sort(r.Context(), sessionID, body.Field)
	})
}

// WorkspacePage moves to another page.
func WorkspacePage(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		var body workspacePageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.SetPage(r.Context(), sessionID, body.Page)
	})
}

// WorkspacePageSize changes the page size.
func WorkspacePageSize(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		var body workspacePageSizeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.SetPageSize(r.Context(), sessionID, body.PageSize)
	})
}

// WorkspaceToggleOne flips one record's selection.
func WorkspaceToggleOne(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		var body workspaceToggleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		if body.RecordID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"record_id": "is required"})
		}
		return svc.ToggleOne(r.Context(), sessionID, body.RecordID)
	})
}

// WorkspaceToggleAll applies the header checkbox to the current page.
func WorkspaceToggleAll(svc workspace.Service, logg *logger.Logger) http.HandlerFunc {
	return workspaceHandler(svc, logg, func(r *http.Request, sessionID string) (*workspace.Snapshot, error) {
		return svc.ToggleAll(r.Context(), sessionID)
	})
}
