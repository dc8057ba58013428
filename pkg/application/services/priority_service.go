package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calderafoods/demandwatch/pkg/application/dto"
	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

// Factor weights for the composite priority score. Each factor is on a
// 0-100 scale, so the weighted sum stays within [0, 100].
const (
	dueDateWeight       = 0.5
	shortageWeight      = 0.3
	demandBreadthWeight = 0.2
)

// PriorityService converts shortage rows into a ranked priority list.
// Scoring is a pure, synchronous computation over already-fetched rows.
type PriorityService struct{}

// NewPriorityService creates a new priority service
func NewPriorityService() *PriorityService {
	return &PriorityService{}
}

// Prioritize scores every row against dataset-wide normalizers, assigns
// urgency levels, and returns the rows sorted descending by score. An empty
// input yields an empty result and never attempts any scoring.
func (s *PriorityService) Prioritize(items []*entities.UnfulfilledItem, now time.Time) *dto.UnfulfilledResult {
	result := &dto.UnfulfilledResult{
		Items:     make([]entities.UnfulfilledItem, 0, len(items)),
		FetchedAt: now,
	}
	if len(items) == 0 {
		return result
	}

	maxShortage := decimal.Zero
	totalOpenSOs := 0
	for _, item := range items {
		if item.ShortageQuantity.GreaterThan(maxShortage) {
			maxShortage = item.ShortageQuantity
		}
		if item.NumberOfSalesOrders > totalOpenSOs {
			totalOpenSOs = item.NumberOfSalesOrders
		}
	}

	for _, item := range items {
		scored := *item
		scored.DueDateFactor = dueDateFactor(&scored, now)
		scored.PriorityScore = scored.DueDateFactor*dueDateWeight +
			shortageFactor(scored.ShortageQuantity, maxShortage)*shortageWeight +
			demandBreadthFactor(scored.NumberOfSalesOrders, totalOpenSOs)*demandBreadthWeight
		scored.PriorityLevel = priorityLevel(&scored, now)
		result.Items = append(result.Items, scored)
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].PriorityScore > result.Items[j].PriorityScore
	})

	result.TotalCount = len(result.Items)
	result.TotalOpenSOs = totalOpenSOs
	return result
}

// dueDateFactor maps days-until-due onto a discrete urgency step. Items with
// no due date score the same as far-future items; a large shortage with no
// requested delivery date is deliberately not urgent.
func dueDateFactor(item *entities.UnfulfilledItem, now time.Time) float64 {
	days, ok := item.DaysUntilDue(now)
	switch {
	case !ok:
		return 10
	case days < 0:
		return 100
	case days <= 2:
		return 75
	case days <= 7:
		return 50
	case days <= 14:
		return 25
	default:
		return 10
	}
}

// shortageFactor normalizes the row's shortage against the largest shortage
// in the dataset. A dataset with no shortages at all is a valid steady state
// and contributes zero rather than dividing by zero.
func shortageFactor(shortage, maxShortage decimal.Decimal) float64 {
	if !maxShortage.IsPositive() {
		return 0
	}
	ratio, _ := shortage.Div(maxShortage).Float64()
	return ratio * 100
}

func demandBreadthFactor(salesOrders, totalOpenSOs int) float64 {
	if totalOpenSOs <= 0 {
		return 0
	}
	return float64(salesOrders) / float64(totalOpenSOs) * 100
}

// priorityLevel buckets an item by days-until-due only. It is independent of
// the composite score so badge colors track delivery pressure, not volume.
func priorityLevel(item *entities.UnfulfilledItem, now time.Time) entities.PriorityLevel {
	days, ok := item.DaysUntilDue(now)
	switch {
	case !ok:
		return entities.PriorityLow
	case days <= 2:
		return entities.PriorityCritical
	case days <= 7:
		return entities.PriorityHigh
	case days <= 14:
		return entities.PriorityMedium
	default:
		return entities.PriorityLow
	}
}
