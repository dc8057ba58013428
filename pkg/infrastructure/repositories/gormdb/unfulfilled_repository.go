package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// UnfulfilledDemandRepository reads shortage rows from the
// unfulfilled_sales_orders view
type UnfulfilledDemandRepository struct {
	db *gorm.DB
}

// NewUnfulfilledDemandRepository creates a view-backed demand repository
func NewUnfulfilledDemandRepository(db *gorm.DB) *UnfulfilledDemandRepository {
	return &UnfulfilledDemandRepository{db: db}
}

// Verify interface compliance
var _ repositories.UnfulfilledDemandRepository = (*UnfulfilledDemandRepository)(nil)

// GetUnfulfilledItems returns all current shortage rows, unscored
func (r *UnfulfilledDemandRepository) GetUnfulfilledItems(ctx context.Context) ([]*entities.UnfulfilledItem, error) {
	var rows []unfulfilledRow
	if err := r.db.WithContext(ctx).
		Order("earliest_due_date ASC NULLS LAST").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query unfulfilled_sales_orders: %w", err)
	}

	items := make([]*entities.UnfulfilledItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.UnfulfilledItem{
			ProductSizeID:       entities.ProductSizeID(row.ProductSizeID),
			ProductID:           row.ProductID,
			ProductCode:         row.ProductCode,
			ProductDescription:  row.ProductDescription,
			SizeType:            row.SizeType,
			TotalQuantityNeeded: row.TotalQuantityNeeded,
			TotalAvailableStock: row.TotalAvailableStock,
			ShortageQuantity:    row.ShortageQuantity,
			EarliestDueDate:     row.EarliestDueDate,
			NumberOfSalesOrders: row.NumberOfSalesOrders,
			SalesOrderNumbers:   row.SalesOrderNumbers,
			DueDateFactor:       row.DueDateFactor,
		})
	}
	return items, nil
}
