package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/erp-records-backend/api/responses"
	"github.com/angelmondragon/erp-records-backend/api/validators"
	"github.com/angelmondragon/erp-records-backend/internal/records"
	"github.com/angelmondragon/erp-records-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
)

const (
	recordIDParam       = "recordId"
	searchQueryMaxChars = 200
	exportFilePrefix    = "records"
	exportFileDateForm  = "2006-01-02"
)

// parseViewParams reads the list view from the query string. Missing values keep
// the dashboard defaults; an explicit empty sort leaves the store order untouched.
func parseViewParams(r *http.Request, cfg config.RecordsConfig) (records.ViewParams, error) {
	params := records.DefaultViewParams()

	page, err := validators.ParsePageParams(r, cfg.DefaultPageSize, cfg.MaxPageSize)
	if err != nil {
		return params, err
	}
	params.Page = page.Page
	params.PageSize = page.PageSize

	q := r.URL.Query()
	params.Search = validators.SanitizeString(q.Get("search"), searchQueryMaxChars)
	if status := strings.TrimSpace(q.Get("status")); status != "" {
		params.StatusFilter = status
	}
	if marketplace := strings.TrimSpace(q.Get("marketplace")); marketplace != "" {
		params.MarketplaceFilter = marketplace
	}
	if q.Has("sort") {
		params.SortField = records.SortField(strings.TrimSpace(q.Get("sort")))
		params.SortDirection = records.SortAsc
	}
	if direction := strings.TrimSpace(q.Get("direction")); direction != "" {
		params.SortDirection = records.SortDirection(strings.ToLower(direction))
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

func parseRecordID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, recordIDParam))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid record id").
			WithDetails(map[string]any{"field": recordIDParam})
	}
	return id, nil
}

// RecordsList returns the requested page of records with aggregates over the filtered set.
func RecordsList(svc records.Service, cfg config.RecordsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		params, err := parseViewParams(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.View(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records.NewViewDTO(*view, params))
	}
}

// RecordsExport streams the filtered and sorted records as an xlsx download.
func RecordsExport(svc records.Service, cfg config.RecordsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		params, err := parseViewParams(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var buf bytes.Buffer
		count, err := svc.Export(r.Context(), params, &buf)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("%s-%s.xlsx", exportFilePrefix, time.Now().UTC().Format(exportFileDateForm))
		w.Header().Set("Content-Type", records.ExportContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("X-Record-Count", strconv.Itoa(count))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// RecordsCreate stores a new record and returns it with the refreshed view.
func RecordsCreate(svc records.Service, cfg config.RecordsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		params, err := parseViewParams(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input records.CreateRecordInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), input, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, records.NewMutationResultDTO(result, params))
	}
}

// RecordsUpdate applies a partial update and returns the record with the refreshed view.
func RecordsUpdate(svc records.Service, cfg config.RecordsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		id, err := parseRecordID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parseViewParams(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input records.UpdateRecordInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), id, input, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records.NewMutationResultDTO(result, params))
	}
}

// RecordsDelete removes a record. The caller must pass confirm=true.
func RecordsDelete(svc records.Service, cfg config.RecordsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		id, err := parseRecordID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmed, err := validators.ParseQueryBool(r, "confirm")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parseViewParams(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), id, confirmed, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records.NewMutationResultDTO(result, params))
	}
}
