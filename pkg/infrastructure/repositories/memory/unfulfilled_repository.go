package memory

import (
	"context"
	"sync"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// UnfulfilledDemandRepository provides in-memory shortage rows, standing in
// for the database view in tests and offline runs.
type UnfulfilledDemandRepository struct {
	mu    sync.RWMutex
	items []entities.UnfulfilledItem
}

// NewUnfulfilledDemandRepository creates a new in-memory demand repository
func NewUnfulfilledDemandRepository() *UnfulfilledDemandRepository {
	return &UnfulfilledDemandRepository{}
}

// Verify interface compliance
var _ repositories.UnfulfilledDemandRepository = (*UnfulfilledDemandRepository)(nil)

// LoadItems replaces the repository contents with the given rows
func (r *UnfulfilledDemandRepository) LoadItems(items []*entities.UnfulfilledItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = r.items[:0]
	for _, item := range items {
		r.items = append(r.items, *item)
	}
	return nil
}

// GetUnfulfilledItems returns all shortage rows
func (r *UnfulfilledDemandRepository) GetUnfulfilledItems(ctx context.Context) ([]*entities.UnfulfilledItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entities.UnfulfilledItem, 0, len(r.items))
	for i := range r.items {
		item := r.items[i]
		items = append(items, &item)
	}
	return items, nil
}
