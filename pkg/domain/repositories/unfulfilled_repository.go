package repositories

import (
	"context"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

// UnfulfilledDemandRepository provides access to the pre-aggregated shortage
// rows (one per product size with open demand exceeding available stock).
// Implementations return rows unscored; ranking happens in the application
// layer.
type UnfulfilledDemandRepository interface {
	GetUnfulfilledItems(ctx context.Context) ([]*entities.UnfulfilledItem, error)
}
