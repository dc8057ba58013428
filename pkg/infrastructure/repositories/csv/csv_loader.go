package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

// Loader reads shortage rows from a CSV export of the
// unfulfilled_sales_orders view, for offline or one-shot reports.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var expectedHeader = []string{
	"product_size_id",
	"product_id",
	"product_code",
	"product_description",
	"size_type",
	"total_quantity_needed",
	"total_available_stock",
	"shortage_quantity",
	"earliest_due_date",
	"number_of_sales_orders",
	"sales_order_numbers",
	"due_date_factor",
}

// LoadUnfulfilledItems loads shortage rows from a CSV file. Dates are ISO
// (2006-01-02, empty = no due date); sales_order_numbers is
// semicolon-separated. A file with only a header yields an empty list.
func (l *Loader) LoadUnfulfilledItems(filename string) ([]*entities.UnfulfilledItem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open unfulfilled items file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read unfulfilled items CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("unfulfilled items CSV must have a header row")
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("unfulfilled items CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var items []*entities.UnfulfilledItem
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("unfulfilled items CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		item, err := parseUnfulfilledItem(record)
		if err != nil {
			return nil, fmt.Errorf("unfulfilled items CSV row %d: %w", i+2, err)
		}

		items = append(items, item)
	}

	return items, nil
}

func parseUnfulfilledItem(record []string) (*entities.UnfulfilledItem, error) {
	needed, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid total_quantity_needed %q: %w", record[5], err)
	}
	available, err := decimal.NewFromString(strings.TrimSpace(record[6]))
	if err != nil {
		return nil, fmt.Errorf("invalid total_available_stock %q: %w", record[6], err)
	}
	shortage, err := decimal.NewFromString(strings.TrimSpace(record[7]))
	if err != nil {
		return nil, fmt.Errorf("invalid shortage_quantity %q: %w", record[7], err)
	}

	var dueDate *time.Time
	if raw := strings.TrimSpace(record[8]); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid earliest_due_date %q: %w", raw, err)
		}
		dueDate = &parsed
	}

	salesOrderCount, err := strconv.Atoi(strings.TrimSpace(record[9]))
	if err != nil {
		return nil, fmt.Errorf("invalid number_of_sales_orders %q: %w", record[9], err)
	}

	var salesOrderNumbers []string
	if raw := strings.TrimSpace(record[10]); raw != "" {
		salesOrderNumbers = strings.Split(raw, ";")
	}

	dueDateFactor := 0.0
	if raw := strings.TrimSpace(record[11]); raw != "" {
		dueDateFactor, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date_factor %q: %w", record[11], err)
		}
	}

	return &entities.UnfulfilledItem{
		ProductSizeID:       entities.ProductSizeID(strings.TrimSpace(record[0])),
		ProductID:           strings.TrimSpace(record[1]),
		ProductCode:         strings.TrimSpace(record[2]),
		ProductDescription:  strings.TrimSpace(record[3]),
		SizeType:            strings.TrimSpace(record[4]),
		TotalQuantityNeeded: needed,
		TotalAvailableStock: available,
		ShortageQuantity:    shortage,
		EarliestDueDate:     dueDate,
		NumberOfSalesOrders: salesOrderCount,
		SalesOrderNumbers:   salesOrderNumbers,
		DueDateFactor:       dueDateFactor,
	}, nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}
