package records

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
	"github.com/angelmondragon/erp-records-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/types"
)

// CreateRecordInput carries the fields of a new record. Omitted fields take the edit form defaults.
type CreateRecordInput struct {
	RecordNumber   string               `json:"record_number" validate:"required"`
	OrderNumber    *string              `json:"order_number"`
	RecordDate     *types.Date          `json:"record_date"`
	RecordType     *enums.RecordType    `json:"record_type"`
	Status         *enums.RecordStatus  `json:"status"`
	Quantity       *int                 `json:"quantity" validate:"omitempty,min=0"`
	Amount         *decimal.Decimal     `json:"amount"`
	Counterparty   *string              `json:"counterparty"`
	Marketplace    *string              `json:"marketplace"`
	ProductName    *string              `json:"product_name"`
	Category       *string              `json:"category"`
	Warehouse      *string              `json:"warehouse"`
	Manager        *string              `json:"manager"`
	Priority       *enums.Priority      `json:"priority"`
	Description    *string              `json:"description"`
	PaymentStatus  *enums.PaymentStatus `json:"payment_status"`
	DeliveryMethod *string              `json:"delivery_method"`
	IsUrgent       *bool                `json:"is_urgent"`
	IsProcessed    *bool                `json:"is_processed"`
}

// UpdateRecordInput carries a partial update. Absent fields are left alone; a null
// optional text field clears it.
type UpdateRecordInput struct {
	RecordNumber   *string              `json:"record_number"`
	OrderNumber    types.NullableString `json:"order_number"`
	RecordDate     *types.Date          `json:"record_date"`
	RecordType     *enums.RecordType    `json:"record_type"`
	Status         *enums.RecordStatus  `json:"status"`
	Quantity       *int                 `json:"quantity" validate:"omitempty,min=0"`
	Amount         *decimal.Decimal     `json:"amount"`
	Counterparty   types.NullableString `json:"counterparty"`
	Marketplace    types.NullableString `json:"marketplace"`
	ProductName    types.NullableString `json:"product_name"`
	Category       types.NullableString `json:"category"`
	Warehouse      types.NullableString `json:"warehouse"`
	Manager        types.NullableString `json:"manager"`
	Priority       *enums.Priority      `json:"priority"`
	Description    types.NullableString `json:"description"`
	PaymentStatus  *enums.PaymentStatus `json:"payment_status"`
	DeliveryMethod types.NullableString `json:"delivery_method"`
	IsUrgent       *bool                `json:"is_urgent"`
	IsProcessed    *bool                `json:"is_processed"`
}

// RecordDTO is the wire shape of a record, with display labels for the enum fields.
type RecordDTO struct {
	ID                 uuid.UUID           `json:"id"`
	RecordNumber       string              `json:"record_number"`
	OrderNumber        *string             `json:"order_number"`
	RecordDate         types.Date          `json:"record_date"`
	RecordType         enums.RecordType    `json:"record_type"`
	RecordTypeLabel    string              `json:"record_type_label"`
	Status             enums.RecordStatus  `json:"status"`
	StatusLabel        string              `json:"status_label"`
	StatusTone         enums.BadgeTone     `json:"status_tone"`
	Quantity           int                 `json:"quantity"`
	Amount             decimal.Decimal     `json:"amount"`
	Counterparty       *string             `json:"counterparty"`
	Marketplace        *string             `json:"marketplace"`
	MarketplaceLabel   *string             `json:"marketplace_label"`
	ProductName        *string             `json:"product_name"`
	Category           *string             `json:"category"`
	Warehouse          *string             `json:"warehouse"`
	Manager            *string             `json:"manager"`
	Priority           enums.Priority      `json:"priority"`
	PriorityLabel      string              `json:"priority_label"`
	PriorityTone       enums.BadgeTone     `json:"priority_tone"`
	Description        *string             `json:"description"`
	PaymentStatus      enums.PaymentStatus `json:"payment_status"`
	PaymentStatusLabel string              `json:"payment_status_label"`
	DeliveryMethod     *string             `json:"delivery_method"`
	IsUrgent           bool                `json:"is_urgent"`
	IsProcessed        bool                `json:"is_processed"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ViewDTO is the wire shape of a computed view.
type ViewDTO struct {
	Rows          []RecordDTO     `json:"rows"`
	TotalCount    int             `json:"total_count"`
	TotalPages    int             `json:"total_pages"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
}

// MutationResultDTO is returned after create/update/delete. View is null when the
// refresh after a successful mutation failed.
type MutationResultDTO struct {
	Record    *RecordDTO `json:"record,omitempty"`
	DeletedID *uuid.UUID `json:"deleted_id,omitempty"`
	View      *ViewDTO   `json:"view"`
}

// NewRecordDTO maps a model onto its wire shape.
func NewRecordDTO(r models.ERPRecord) RecordDTO {
	dto := RecordDTO{
		ID:                 r.ID,
		RecordNumber:       r.RecordNumber,
		OrderNumber:        r.OrderNumber,
		RecordDate:         r.RecordDate,
		RecordType:         r.RecordType,
		RecordTypeLabel:    r.RecordType.Label(),
		Status:             r.Status,
		StatusLabel:        r.Status.Label(),
		StatusTone:         r.Status.Tone(),
		Quantity:           r.Quantity,
		Amount:             r.Amount,
		Counterparty:       r.Counterparty,
		Marketplace:        r.Marketplace,
		ProductName:        r.ProductName,
		Category:           r.Category,
		Warehouse:          r.Warehouse,
		Manager:            r.Manager,
		Priority:           r.Priority,
		PriorityLabel:      r.Priority.Label(),
		PriorityTone:       r.Priority.Tone(),
		Description:        r.Description,
		PaymentStatus:      r.PaymentStatus,
		PaymentStatusLabel: r.PaymentStatus.Label(),
		DeliveryMethod:     r.DeliveryMethod,
		IsUrgent:           r.IsUrgent,
		IsProcessed:        r.IsProcessed,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.Marketplace != nil && *r.Marketplace != "" {
		label := enums.Marketplace(*r.Marketplace).Label()
		dto.MarketplaceLabel = &label
	}
	return dto
}

// NewViewDTO maps a view and the params it was computed with onto its wire shape.
func NewViewDTO(v View, params ViewParams) ViewDTO {
	rows := make([]RecordDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, NewRecordDTO(row))
	}
	return ViewDTO{
		Rows:          rows,
		TotalCount:    v.TotalCount,
		TotalPages:    v.TotalPages,
		TotalQuantity: v.TotalQuantity,
		TotalAmount:   v.TotalAmount,
		Page:          params.Page,
		PageSize:      params.PageSize,
	}
}

// NewMutationResultDTO maps a mutation result onto its wire shape.
func NewMutationResultDTO(res *MutationResult, params ViewParams) MutationResultDTO {
	out := MutationResultDTO{DeletedID: res.DeletedID}
	if res.Record != nil {
		record := NewRecordDTO(*res.Record)
		out.Record = &record
	}
	if res.View != nil {
		view := NewViewDTO(*res.View, params)
		out.View = &view
	}
	return out
}

// toModel applies the edit form defaults to omitted fields.
func (in CreateRecordInput) toModel(now time.Time) models.ERPRecord {
	record := models.ERPRecord{
		RecordNumber:   strings.TrimSpace(in.RecordNumber),
		OrderNumber:    in.OrderNumber,
		RecordDate:     types.NewDate(now),
		RecordType:     enums.RecordTypeReturn,
		Status:         enums.RecordStatusPending,
		Amount:         decimal.Zero,
		Counterparty:   in.Counterparty,
		Marketplace:    in.Marketplace,
		ProductName:    in.ProductName,
		Category:       in.Category,
		Warehouse:      in.Warehouse,
		Manager:        in.Manager,
		Priority:       enums.PriorityNormal,
		Description:    in.Description,
		PaymentStatus:  enums.PaymentStatusUnpaid,
		DeliveryMethod: in.DeliveryMethod,
	}
	if in.RecordDate != nil && !in.RecordDate.IsZero() {
		record.RecordDate = *in.RecordDate
	}
	if in.RecordType != nil {
		record.RecordType = *in.RecordType
	}
	if in.Status != nil {
		record.Status = *in.Status
	}
	if in.Quantity != nil {
		record.Quantity = *in.Quantity
	}
	if in.Amount != nil {
		record.Amount = *in.Amount
	}
	if in.Priority != nil {
		record.Priority = *in.Priority
	}
	if in.PaymentStatus != nil {
		record.PaymentStatus = *in.PaymentStatus
	}
	if in.IsUrgent != nil {
		record.IsUrgent = *in.IsUrgent
	}
	if in.IsProcessed != nil {
		record.IsProcessed = *in.IsProcessed
	}
	return record
}

// toFields validates the provided fields and maps them onto column updates.
func (in UpdateRecordInput) toFields() (map[string]any, error) {
	fields := map[string]any{}
	if in.RecordNumber != nil {
		trimmed := strings.TrimSpace(*in.RecordNumber)
		if trimmed == "" {
			return nil, validationError("record_number", "record number is required")
		}
		fields["record_number"] = trimmed
	}
	if in.RecordDate != nil {
		if in.RecordDate.IsZero() {
			return nil, validationError("record_date", "record date is required")
		}
		fields["record_date"] = *in.RecordDate
	}
	if in.RecordType != nil {
		if !in.RecordType.IsValid() {
			return nil, validationError("record_type", "unknown record type")
		}
		fields["record_type"] = *in.RecordType
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, validationError("status", "unknown status")
		}
		fields["status"] = *in.Status
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, validationError("quantity", "quantity must not be negative")
		}
		fields["quantity"] = *in.Quantity
	}
	if in.Amount != nil {
		fields["amount"] = *in.Amount
	}
	if in.Priority != nil {
		if !in.Priority.IsValid() {
			return nil, validationError("priority", "unknown priority")
		}
		fields["priority"] = *in.Priority
	}
	if in.PaymentStatus != nil {
		if !in.PaymentStatus.IsValid() {
			return nil, validationError("payment_status", "unknown payment status")
		}
		fields["payment_status"] = *in.PaymentStatus
	}
	if in.Marketplace.Valid {
		if err := validateMarketplace(in.Marketplace.Value); err != nil {
			return nil, err
		}
	}
	optional := map[string]types.NullableString{
		"order_number":    in.OrderNumber,
		"counterparty":    in.Counterparty,
		"marketplace":     in.Marketplace,
		"product_name":    in.ProductName,
		"category":        in.Category,
		"warehouse":       in.Warehouse,
		"manager":         in.Manager,
		"description":     in.Description,
		"delivery_method": in.DeliveryMethod,
	}
	for column, value := range optional {
		if !value.Valid {
			continue
		}
		if value.Value == nil {
			fields[column] = nil
			continue
		}
		fields[column] = *value.Value
	}
	if in.IsUrgent != nil {
		fields["is_urgent"] = *in.IsUrgent
	}
	if in.IsProcessed != nil {
		fields["is_processed"] = *in.IsProcessed
	}
	return fields, nil
}

func validateRecord(r models.ERPRecord) error {
	if r.RecordNumber == "" {
		return validationError("record_number", "record number is required")
	}
	if r.Quantity < 0 {
		return validationError("quantity", "quantity must not be negative")
	}
	if !r.RecordType.IsValid() {
		return validationError("record_type", "unknown record type")
	}
	if !r.Status.IsValid() {
		return validationError("status", "unknown status")
	}
	if !r.Priority.IsValid() {
		return validationError("priority", "unknown priority")
	}
	if !r.PaymentStatus.IsValid() {
		return validationError("payment_status", "unknown payment status")
	}
	return validateMarketplace(r.Marketplace)
}

func validateMarketplace(value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if !enums.Marketplace(*value).IsValid() {
		return validationError("marketplace", "unknown marketplace")
	}
	return nil
}

func validationError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
