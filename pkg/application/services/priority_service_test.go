package services

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

var scoringNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func dueIn(days int) *time.Time {
	d := scoringNow.AddDate(0, 0, days)
	return &d
}

func shortageItem(id string, shortage int64, due *time.Time, salesOrders int) *entities.UnfulfilledItem {
	return &entities.UnfulfilledItem{
		ProductSizeID:       entities.ProductSizeID(id),
		ProductCode:         id,
		ShortageQuantity:    decimal.NewFromInt(shortage),
		EarliestDueDate:     due,
		NumberOfSalesOrders: salesOrders,
	}
}

func TestPrioritize_DueDateFactorSteps(t *testing.T) {
	tests := []struct {
		name       string
		due        *time.Time
		wantFactor float64
		wantLevel  entities.PriorityLevel
	}{
		{"no due date", nil, 10, entities.PriorityLow},
		{"overdue", dueIn(-1), 100, entities.PriorityCritical},
		{"long overdue", dueIn(-45), 100, entities.PriorityCritical},
		{"due today", dueIn(0), 75, entities.PriorityCritical},
		{"due in two days", dueIn(2), 75, entities.PriorityCritical},
		{"due in three days", dueIn(3), 50, entities.PriorityHigh},
		{"due in a week", dueIn(7), 50, entities.PriorityHigh},
		{"due in eight days", dueIn(8), 25, entities.PriorityMedium},
		{"due in two weeks", dueIn(14), 25, entities.PriorityMedium},
		{"due in three weeks", dueIn(21), 10, entities.PriorityLow},
	}

	svc := NewPriorityService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Prioritize([]*entities.UnfulfilledItem{
				shortageItem("PS-1", 10, tt.due, 1),
			}, scoringNow)

			if len(result.Items) != 1 {
				t.Fatalf("Expected 1 scored item, got %d", len(result.Items))
			}
			got := result.Items[0]
			if got.DueDateFactor != tt.wantFactor {
				t.Errorf("Expected due-date factor %v, got %v", tt.wantFactor, got.DueDateFactor)
			}
			if got.PriorityLevel != tt.wantLevel {
				t.Errorf("Expected priority level %q, got %q", tt.wantLevel, got.PriorityLevel)
			}
		})
	}
}

func TestPrioritize_CompositeScoreScenario(t *testing.T) {
	// shortage 50 of max 100, overdue, 3 of 10 open sales orders:
	// 100*0.5 + 50*0.3 + 30*0.2 = 71
	svc := NewPriorityService()

	result := svc.Prioritize([]*entities.UnfulfilledItem{
		shortageItem("PS-TARGET", 50, dueIn(-1), 3),
		shortageItem("PS-MAX", 100, dueIn(30), 10),
	}, scoringNow)

	var target *entities.UnfulfilledItem
	for i := range result.Items {
		if result.Items[i].ProductSizeID == "PS-TARGET" {
			target = &result.Items[i]
		}
	}
	if target == nil {
		t.Fatal("Scored output missing PS-TARGET")
	}

	if math.Abs(target.PriorityScore-71) > 1e-9 {
		t.Errorf("Expected composite score 71, got %v", target.PriorityScore)
	}
	if target.PriorityLevel != entities.PriorityCritical {
		t.Errorf("Expected critical level, got %q", target.PriorityLevel)
	}
	if result.TotalOpenSOs != 10 {
		t.Errorf("Expected totalOpenSOs 10, got %d", result.TotalOpenSOs)
	}
}

func TestPrioritize_NoDueDateNoDemand(t *testing.T) {
	// nil due date, zero shortage, zero sales orders: 10*0.5 = 5, low.
	svc := NewPriorityService()

	result := svc.Prioritize([]*entities.UnfulfilledItem{
		shortageItem("PS-IDLE", 0, nil, 0),
		shortageItem("PS-OTHER", 80, dueIn(1), 4),
	}, scoringNow)

	var idle *entities.UnfulfilledItem
	for i := range result.Items {
		if result.Items[i].ProductSizeID == "PS-IDLE" {
			idle = &result.Items[i]
		}
	}
	if idle == nil {
		t.Fatal("Scored output missing PS-IDLE")
	}
	if math.Abs(idle.PriorityScore-5) > 1e-9 {
		t.Errorf("Expected score 5, got %v", idle.PriorityScore)
	}
	if idle.PriorityLevel != entities.PriorityLow {
		t.Errorf("Expected low level, got %q", idle.PriorityLevel)
	}
}

func TestPrioritize_EmptyInput(t *testing.T) {
	svc := NewPriorityService()

	result := svc.Prioritize(nil, scoringNow)

	if len(result.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(result.Items))
	}
	if result.TotalCount != 0 || result.TotalOpenSOs != 0 {
		t.Errorf("Expected zero totals, got count=%d openSOs=%d", result.TotalCount, result.TotalOpenSOs)
	}
}

func TestPrioritize_ZeroNormalizers(t *testing.T) {
	// Every row has zero shortage and zero sales orders; both normalizers
	// are degenerate and must contribute zero instead of NaN.
	svc := NewPriorityService()

	result := svc.Prioritize([]*entities.UnfulfilledItem{
		shortageItem("PS-1", 0, dueIn(1), 0),
		shortageItem("PS-2", 0, nil, 0),
	}, scoringNow)

	for _, item := range result.Items {
		if math.IsNaN(item.PriorityScore) || math.IsInf(item.PriorityScore, 0) {
			t.Errorf("Item %s scored %v with degenerate normalizers", item.ProductSizeID, item.PriorityScore)
		}
	}
}

func TestPrioritize_ScoreBoundsAndOrdering(t *testing.T) {
	svc := NewPriorityService()

	items := []*entities.UnfulfilledItem{
		shortageItem("PS-A", 500, dueIn(-10), 12),
		shortageItem("PS-B", 0, nil, 0),
		shortageItem("PS-C", 250, dueIn(5), 3),
		shortageItem("PS-D", 500, dueIn(0), 12),
		shortageItem("PS-E", 17, dueIn(20), 1),
	}

	result := svc.Prioritize(items, scoringNow)

	for _, item := range result.Items {
		if item.PriorityScore < 0 || item.PriorityScore > 100 {
			t.Errorf("Item %s score %v outside [0,100]", item.ProductSizeID, item.PriorityScore)
		}
	}
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i-1].PriorityScore < result.Items[i].PriorityScore {
			t.Errorf("Items not sorted descending at index %d: %v < %v",
				i, result.Items[i-1].PriorityScore, result.Items[i].PriorityScore)
		}
	}
	if result.TotalCount != len(items) {
		t.Errorf("Expected total count %d, got %d", len(items), result.TotalCount)
	}
}

func TestPrioritize_Idempotent(t *testing.T) {
	svc := NewPriorityService()

	items := []*entities.UnfulfilledItem{
		shortageItem("PS-A", 120, dueIn(1), 6),
		shortageItem("PS-B", 60, dueIn(9), 2),
		shortageItem("PS-C", 0, nil, 0),
	}

	first := svc.Prioritize(items, scoringNow)
	second := svc.Prioritize(items, scoringNow)

	if len(first.Items) != len(second.Items) {
		t.Fatalf("Run lengths differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ProductSizeID != second.Items[i].ProductSizeID ||
			first.Items[i].PriorityScore != second.Items[i].PriorityScore {
			t.Errorf("Run mismatch at %d: %s=%v vs %s=%v",
				i,
				first.Items[i].ProductSizeID, first.Items[i].PriorityScore,
				second.Items[i].ProductSizeID, second.Items[i].PriorityScore)
		}
	}

	// Scoring must not mutate the input rows.
	for _, item := range items {
		if item.PriorityScore != 0 || item.PriorityLevel != "" {
			t.Errorf("Input row %s was mutated by scoring", item.ProductSizeID)
		}
	}
}

func TestPrioritize_MonotonicInShortage(t *testing.T) {
	// Holding due date and demand breadth fixed, a larger shortage never
	// lowers the score.
	svc := NewPriorityService()

	result := svc.Prioritize([]*entities.UnfulfilledItem{
		shortageItem("PS-SMALL", 10, dueIn(5), 2),
		shortageItem("PS-BIG", 90, dueIn(5), 2),
		shortageItem("PS-MAX", 200, dueIn(5), 2),
	}, scoringNow)

	scores := make(map[entities.ProductSizeID]float64)
	for _, item := range result.Items {
		scores[item.ProductSizeID] = item.PriorityScore
	}
	if scores["PS-SMALL"] > scores["PS-BIG"] || scores["PS-BIG"] > scores["PS-MAX"] {
		t.Errorf("Score not monotone in shortage: small=%v big=%v max=%v",
			scores["PS-SMALL"], scores["PS-BIG"], scores["PS-MAX"])
	}
}
