package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSizeID uniquely identifies a product size (a sellable SKU variant)
type ProductSizeID string

// PriorityLevel is a coarse urgency bucket derived from due dates only.
// It is intentionally independent of the numeric priority score so that a
// large shortage with no due date still displays as low urgency.
type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

// String method for PriorityLevel
func (p PriorityLevel) String() string {
	return string(p)
}

// UnfulfilledItem represents one product size whose open sales-order demand
// exceeds available stock. Rows come pre-aggregated from the
// unfulfilled_sales_orders view; PriorityScore and PriorityLevel are
// computed in-process and are zero-valued until scoring runs.
type UnfulfilledItem struct {
	ProductSizeID      ProductSizeID `json:"product_size_id"`
	ProductID          string        `json:"product_id"`
	ProductCode        string        `json:"product_code"`
	ProductDescription string        `json:"product_description"`
	SizeType           string        `json:"size_type"`

	TotalQuantityNeeded decimal.Decimal `json:"total_quantity_needed"`
	TotalAvailableStock decimal.Decimal `json:"total_available_stock"`
	ShortageQuantity    decimal.Decimal `json:"shortage_quantity"`

	EarliestDueDate     *time.Time `json:"earliest_due_date"`
	NumberOfSalesOrders int        `json:"number_of_sales_orders"`
	SalesOrderNumbers   []string   `json:"sales_order_numbers"`

	// DueDateFactor as reported by the view. Carried for display only; the
	// scorer recomputes the factor from EarliestDueDate.
	DueDateFactor float64 `json:"due_date_factor"`

	PriorityScore float64       `json:"priority_score"`
	PriorityLevel PriorityLevel `json:"priority_level"`
}

// DaysUntilDue returns the whole calendar days between now and the earliest
// due date, negative when overdue. The second return is false when the item
// has no due date.
func (i *UnfulfilledItem) DaysUntilDue(now time.Time) (int, bool) {
	if i.EarliestDueDate == nil {
		return 0, false
	}
	due := *i.EarliestDueDate
	// Normalize both dates to UTC midnight so the difference is an exact
	// multiple of 24h. Subtracting zone-local midnights is off by one around
	// DST transitions, where a calendar day is 23 or 25 wall hours.
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay) / (24 * time.Hour)), true
}
