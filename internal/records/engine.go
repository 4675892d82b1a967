package records

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/erp-records-backend/pkg/db/models"
	"github.com/angelmondragon/erp-records-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
	"github.com/angelmondragon/erp-records-backend/pkg/pagination"
)

// FilterAll disables a status or marketplace filter.
const FilterAll = "all"

// SortDirection orders defined sort values.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// SortField names the record attribute a view is ordered by. The empty field keeps input order.
type SortField string

const (
	SortNone           SortField = ""
	SortRecordNumber   SortField = "record_number"
	SortOrderNumber    SortField = "order_number"
	SortRecordDate     SortField = "record_date"
	SortRecordType     SortField = "record_type"
	SortStatus         SortField = "status"
	SortQuantity       SortField = "quantity"
	SortAmount         SortField = "amount"
	SortCounterparty   SortField = "counterparty"
	SortMarketplace    SortField = "marketplace"
	SortProductName    SortField = "product_name"
	SortCategory       SortField = "category"
	SortWarehouse      SortField = "warehouse"
	SortManager        SortField = "manager"
	SortPriority       SortField = "priority"
	SortDescription    SortField = "description"
	SortPaymentStatus  SortField = "payment_status"
	SortDeliveryMethod SortField = "delivery_method"
	SortIsUrgent       SortField = "is_urgent"
	SortIsProcessed    SortField = "is_processed"
	SortCreatedAt      SortField = "created_at"
	SortUpdatedAt      SortField = "updated_at"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindDecimal
	kindTime
	kindBool
)

// sortValue is a record attribute lifted into a comparable form. defined=false marks null.
type sortValue struct {
	defined bool
	kind    valueKind
	str     string
	num     int
	dec     decimal.Decimal
	at      time.Time
	flag    bool
}

func stringValue(v string) sortValue { return sortValue{defined: true, kind: kindString, str: v} }

func optionalString(v *string) sortValue {
	if v == nil {
		return sortValue{kind: kindString}
	}
	return stringValue(*v)
}

func timeValue(v time.Time) sortValue {
	if v.IsZero() {
		return sortValue{kind: kindTime}
	}
	return sortValue{defined: true, kind: kindTime, at: v}
}

var sortExtractors = map[SortField]func(*models.ERPRecord) sortValue{
	SortRecordNumber: func(r *models.ERPRecord) sortValue { return stringValue(r.RecordNumber) },
	SortOrderNumber:  func(r *models.ERPRecord) sortValue { return optionalString(r.OrderNumber) },
	SortRecordDate:   func(r *models.ERPRecord) sortValue { return timeValue(r.RecordDate.Time) },
	SortRecordType:   func(r *models.ERPRecord) sortValue { return stringValue(string(r.RecordType)) },
	SortStatus:       func(r *models.ERPRecord) sortValue { return stringValue(string(r.Status)) },
	SortQuantity: func(r *models.ERPRecord) sortValue {
		return sortValue{defined: true, kind: kindInt, num: r.Quantity}
	},
	SortAmount: func(r *models.ERPRecord) sortValue {
		return sortValue{defined: true, kind: kindDecimal, dec: r.Amount}
	},
	SortCounterparty:   func(r *models.ERPRecord) sortValue { return optionalString(r.Counterparty) },
	SortMarketplace:    func(r *models.ERPRecord) sortValue { return optionalString(r.Marketplace) },
	SortProductName:    func(r *models.ERPRecord) sortValue { return optionalString(r.ProductName) },
	SortCategory:       func(r *models.ERPRecord) sortValue { return optionalString(r.Category) },
	SortWarehouse:      func(r *models.ERPRecord) sortValue { return optionalString(r.Warehouse) },
	SortManager:        func(r *models.ERPRecord) sortValue { return optionalString(r.Manager) },
	SortPriority:       func(r *models.ERPRecord) sortValue { return stringValue(string(r.Priority)) },
	SortDescription:    func(r *models.ERPRecord) sortValue { return optionalString(r.Description) },
	SortPaymentStatus:  func(r *models.ERPRecord) sortValue { return stringValue(string(r.PaymentStatus)) },
	SortDeliveryMethod: func(r *models.ERPRecord) sortValue { return optionalString(r.DeliveryMethod) },
	SortIsUrgent: func(r *models.ERPRecord) sortValue {
		return sortValue{defined: true, kind: kindBool, flag: r.IsUrgent}
	},
	SortIsProcessed: func(r *models.ERPRecord) sortValue {
		return sortValue{defined: true, kind: kindBool, flag: r.IsProcessed}
	},
	SortCreatedAt: func(r *models.ERPRecord) sortValue { return timeValue(r.CreatedAt) },
	SortUpdatedAt: func(r *models.ERPRecord) sortValue { return timeValue(r.UpdatedAt) },
}

// IsValid reports whether the field is empty or a sortable attribute.
func (f SortField) IsValid() bool {
	if f == SortNone {
		return true
	}
	_, ok := sortExtractors[f]
	return ok
}

// ViewParams selects the subset and order of records to display.
type ViewParams struct {
	Search            string        `json:"search"`
	StatusFilter      string        `json:"status_filter"`
	MarketplaceFilter string        `json:"marketplace_filter"`
	SortField         SortField     `json:"sort_field,omitempty"`
	SortDirection     SortDirection `json:"sort_direction"`
	Page              int           `json:"page"`
	PageSize          int           `json:"page_size"`
}

// DefaultViewParams mirrors the dashboard's initial table state.
func DefaultViewParams() ViewParams {
	return ViewParams{
		StatusFilter:      FilterAll,
		MarketplaceFilter: FilterAll,
		SortField:         SortRecordDate,
		SortDirection:     SortDesc,
		Page:              1,
		PageSize:          pagination.DefaultPageSize,
	}
}

// View is the derived slice to render plus summaries over the whole filtered set.
type View struct {
	Rows          []models.ERPRecord
	TotalCount    int
	TotalPages    int
	TotalQuantity int
	TotalAmount   decimal.Decimal
}

// PageIDs returns the identifiers of the visible rows in display order.
func (v View) PageIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(v.Rows))
	for _, row := range v.Rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func invalidArgument(message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInvalidArgument, message)
}

func (p ViewParams) validateOrdering() error {
	if p.StatusFilter != "" && p.StatusFilter != FilterAll && !enums.RecordStatus(p.StatusFilter).IsValid() {
		return invalidArgument("unknown status filter").WithDetails(map[string]any{"status": p.StatusFilter})
	}
	if p.MarketplaceFilter != "" && p.MarketplaceFilter != FilterAll && !enums.Marketplace(p.MarketplaceFilter).IsValid() {
		return invalidArgument("unknown marketplace filter").WithDetails(map[string]any{"marketplace": p.MarketplaceFilter})
	}
	if !p.SortField.IsValid() {
		return invalidArgument("unknown sort field").WithDetails(map[string]any{"sort": string(p.SortField)})
	}
	switch p.SortDirection {
	case "", SortAsc, SortDesc:
	default:
		return invalidArgument("unknown sort direction").WithDetails(map[string]any{"direction": string(p.SortDirection)})
	}
	return nil
}

// Validate rejects parameters the engine cannot apply.
func (p ViewParams) Validate() error {
	if p.PageSize <= 0 {
		return invalidArgument("page size must be positive").WithDetails(map[string]any{"page_size": p.PageSize})
	}
	if p.Page < 1 {
		return invalidArgument("page must be at least 1").WithDetails(map[string]any{"page": p.Page})
	}
	return p.validateOrdering()
}

// Arrange applies the search, filters and sort to records and returns the full
// ordered result without paginating. The input slice is never modified.
func Arrange(records []models.ERPRecord, params ViewParams) ([]models.ERPRecord, error) {
	if err := params.validateOrdering(); err != nil {
		return nil, err
	}
	filtered := filterRecords(records, params)
	sortRecords(filtered, params.SortField, params.SortDirection)
	return filtered, nil
}

// ComputeView derives the visible page and the aggregates for params.
func ComputeView(records []models.ERPRecord, params ViewParams) (View, error) {
	if err := params.Validate(); err != nil {
		return View{}, err
	}
	arranged, err := Arrange(records, params)
	if err != nil {
		return View{}, err
	}

	view := View{
		TotalCount:  len(arranged),
		TotalPages:  pagination.TotalPages(len(arranged), params.PageSize),
		TotalAmount: decimal.Zero,
	}
	for i := range arranged {
		view.TotalQuantity += arranged[i].Quantity
		view.TotalAmount = view.TotalAmount.Add(arranged[i].Amount)
	}

	start, end := pagination.Bounds(params.Page, params.PageSize, len(arranged))
	view.Rows = make([]models.ERPRecord, end-start)
	copy(view.Rows, arranged[start:end])
	return view, nil
}

func filterRecords(records []models.ERPRecord, params ViewParams) []models.ERPRecord {
	query := strings.ToLower(params.Search)
	out := make([]models.ERPRecord, 0, len(records))
	for i := range records {
		record := &records[i]
		if query != "" && !matchesSearch(record, query) {
			continue
		}
		if isActiveFilter(params.StatusFilter) && string(record.Status) != params.StatusFilter {
			continue
		}
		if isActiveFilter(params.MarketplaceFilter) && (record.Marketplace == nil || *record.Marketplace != params.MarketplaceFilter) {
			continue
		}
		out = append(out, *record)
	}
	return out
}

func isActiveFilter(value string) bool {
	return value != "" && value != FilterAll
}

func matchesSearch(record *models.ERPRecord, query string) bool {
	if strings.Contains(strings.ToLower(record.RecordNumber), query) {
		return true
	}
	for _, field := range []*string{record.OrderNumber, record.ProductName, record.Counterparty} {
		if field != nil && strings.Contains(strings.ToLower(*field), query) {
			return true
		}
	}
	return false
}

func sortRecords(records []models.ERPRecord, field SortField, direction SortDirection) {
	extract, ok := sortExtractors[field]
	if !ok {
		return
	}
	keys := make([]sortValue, len(records))
	for i := range records {
		keys[i] = extract(&records[i])
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return lessValues(keys[idx[a]], keys[idx[b]], direction)
	})

	sorted := make([]models.ERPRecord, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}

// lessValues orders nulls after every defined value in both directions.
func lessValues(a, b sortValue, direction SortDirection) bool {
	switch {
	case !a.defined:
		return false
	case !b.defined:
		return true
	}
	c := compareValues(a, b)
	if direction == SortDesc {
		c = -c
	}
	return c < 0
}

func compareValues(a, b sortValue) int {
	switch a.kind {
	case kindInt:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case kindDecimal:
		return a.dec.Cmp(b.dec)
	case kindTime:
		return a.at.Compare(b.at)
	case kindBool:
		switch {
		case a.flag == b.flag:
			return 0
		case !a.flag:
			return -1
		}
		return 1
	default:
		return strings.Compare(a.str, b.str)
	}
}
