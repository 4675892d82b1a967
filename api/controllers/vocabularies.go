package controllers

import (
	"net/http"

	"github.com/angelmondragon/erp-records-backend/api/responses"
	"github.com/angelmondragon/erp-records-backend/internal/records"
	"github.com/angelmondragon/erp-records-backend/pkg/enums"
	"github.com/angelmondragon/erp-records-backend/pkg/pagination"
)

type vocabularyOption struct {
	Value string          `json:"value"`
	Label string          `json:"label"`
	Tone  enums.BadgeTone `json:"tone,omitempty"`
}

type vocabulariesResponse struct {
	RecordTypes       []vocabularyOption `json:"record_types"`
	Statuses          []vocabularyOption `json:"statuses"`
	Priorities        []vocabularyOption `json:"priorities"`
	PaymentStatuses   []vocabularyOption `json:"payment_statuses"`
	Marketplaces      []vocabularyOption `json:"marketplaces"`
	StatusFilters     []vocabularyOption `json:"status_filters"`
	MarketplaceFilter []vocabularyOption `json:"marketplace_filters"`
	PageSizes         []int              `json:"page_sizes"`
}

const (
	allStatusesLabel     = "Все статусы"
	allMarketplacesLabel = "Все маркетплейсы"
)

func buildVocabularies() vocabulariesResponse {
	out := vocabulariesResponse{PageSizes: pagination.PageSizeChoices()}
	for _, v := range enums.RecordTypes() {
		out.RecordTypes = append(out.RecordTypes, vocabularyOption{Value: string(v), Label: v.Label()})
	}
	for _, v := range enums.RecordStatuses() {
		out.Statuses = append(out.Statuses, vocabularyOption{Value: string(v), Label: v.Label(), Tone: v.Tone()})
	}
	for _, v := range enums.Priorities() {
		out.Priorities = append(out.Priorities, vocabularyOption{Value: string(v), Label: v.Label(), Tone: v.Tone()})
	}
	for _, v := range enums.PaymentStatuses() {
		out.PaymentStatuses = append(out.PaymentStatuses, vocabularyOption{Value: string(v), Label: v.Label()})
	}
	for _, v := range enums.Marketplaces() {
		out.Marketplaces = append(out.Marketplaces, vocabularyOption{Value: string(v), Label: v.Label()})
	}

	out.StatusFilters = append([]vocabularyOption{{Value: records.FilterAll, Label: allStatusesLabel}}, out.Statuses...)
	out.MarketplaceFilter = append([]vocabularyOption{{Value: records.FilterAll, Label: allMarketplacesLabel}}, out.Marketplaces...)
	return out
}

// Vocabularies returns the fixed value sets with their display labels.
func Vocabularies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, buildVocabularies())
	}
}
