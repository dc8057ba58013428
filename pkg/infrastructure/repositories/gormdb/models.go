// Package gormdb implements the demand and acknowledgment repositories
// against Postgres. Shortage rows come from the unfulfilled_sales_orders
// view; acknowledgments persist their item snapshot as a jsonb column.
package gormdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// unfulfilledRow mirrors one row of the unfulfilled_sales_orders view.
// The view aggregates open sales-order demand against available stock per
// product size; sales_order_numbers is emitted as a jsonb array.
type unfulfilledRow struct {
	ProductSizeID       string                      `gorm:"column:product_size_id"`
	ProductID           string                      `gorm:"column:product_id"`
	ProductCode         string                      `gorm:"column:product_code"`
	ProductDescription  string                      `gorm:"column:product_description"`
	SizeType            string                      `gorm:"column:size_type"`
	TotalQuantityNeeded decimal.Decimal             `gorm:"column:total_quantity_needed"`
	TotalAvailableStock decimal.Decimal             `gorm:"column:total_available_stock"`
	ShortageQuantity    decimal.Decimal             `gorm:"column:shortage_quantity"`
	EarliestDueDate     *time.Time                  `gorm:"column:earliest_due_date"`
	NumberOfSalesOrders int                         `gorm:"column:number_of_sales_orders"`
	SalesOrderNumbers   datatypes.JSONSlice[string] `gorm:"column:sales_order_numbers"`
	DueDateFactor       float64                     `gorm:"column:due_date_factor"`
}

func (unfulfilledRow) TableName() string {
	return "unfulfilled_sales_orders"
}

// acknowledgmentRow is the persisted acknowledgment snapshot
type acknowledgmentRow struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserName       string         `gorm:"type:text;not null"`
	AcknowledgedAt time.Time      `gorm:"not null;index"`
	ItemsSnapshot  datatypes.JSON `gorm:"type:jsonb;not null"`
	Notes          string         `gorm:"type:text"`
	WorkOrderID    *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt      time.Time      `gorm:"not null;default:now()"`
}

func (acknowledgmentRow) TableName() string {
	return "unfulfilled_acknowledgments"
}

// workOrderRow covers the columns the acknowledgment flow touches
type workOrderRow struct {
	ID                           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UnfulfilledItemsAcknowledged bool      `gorm:"column:unfulfilled_items_acknowledged"`
	UpdatedAt                    time.Time `gorm:"column:updated_at"`
}

func (workOrderRow) TableName() string {
	return "work_orders"
}
