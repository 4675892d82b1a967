package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/erp-records-backend/pkg/enums"
	"github.com/angelmondragon/erp-records-backend/pkg/types"
)

// ERPRecord is one return/order line item synced from a marketplace integration.
type ERPRecord struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	RecordNumber   string              `gorm:"column:record_number;not null"`
	OrderNumber    *string             `gorm:"column:order_number"`
	RecordDate     types.Date          `gorm:"column:record_date;type:date;not null"`
	RecordType     enums.RecordType    `gorm:"column:record_type;not null;default:'return'"`
	Status         enums.RecordStatus  `gorm:"column:status;not null;default:'pending'"`
	Quantity       int                 `gorm:"column:quantity;not null;default:0"`
	Amount         decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null;default:0"`
	Counterparty   *string             `gorm:"column:counterparty"`
	Marketplace    *string             `gorm:"column:marketplace"`
	ProductName    *string             `gorm:"column:product_name"`
	Category       *string             `gorm:"column:category"`
	Warehouse      *string             `gorm:"column:warehouse"`
	Manager        *string             `gorm:"column:manager"`
	Priority       enums.Priority      `gorm:"column:priority;not null;default:'normal'"`
	Description    *string             `gorm:"column:description"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status;not null;default:'unpaid'"`
	DeliveryMethod *string             `gorm:"column:delivery_method"`
	IsUrgent       bool                `gorm:"column:is_urgent;not null;default:false"`
	IsProcessed    bool                `gorm:"column:is_processed;not null;default:false"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name shared with the dashboard.
func (ERPRecord) TableName() string {
	return "erp_records"
}
