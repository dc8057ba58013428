package dto

import (
	"time"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

// UnfulfilledResult contains the complete output of a prioritization run
type UnfulfilledResult struct {
	// Items sorted descending by priority score.
	Items []entities.UnfulfilledItem

	// TotalCount is the number of shortage rows in Items.
	TotalCount int

	// TotalOpenSOs is the demand-breadth normalizer: the largest
	// sales-order count observed across all rows in this run.
	TotalOpenSOs int

	// FetchedAt records when the underlying view rows were retrieved.
	FetchedAt time.Time
}
