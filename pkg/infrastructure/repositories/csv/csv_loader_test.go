package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleCSV = `product_size_id,product_id,product_code,product_description,size_type,total_quantity_needed,total_available_stock,shortage_quantity,earliest_due_date,number_of_sales_orders,sales_order_numbers,due_date_factor
PS-1,PROD-1,CHD-500,Cheddar 500g,retail,120,80,40,2025-03-12,3,SO-1001;SO-1002;SO-1003,75
PS-2,PROD-2,GDA-250,Gouda 250g,retail,30,18,12,,1,SO-1004,10
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unfulfilled.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sample CSV: %v", err)
	}
	return path
}

func TestLoader_LoadUnfulfilledItems(t *testing.T) {
	loader := NewLoader()

	items, err := loader.LoadUnfulfilledItems(writeSample(t, sampleCSV))
	if err != nil {
		t.Fatalf("LoadUnfulfilledItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(items))
	}

	first := items[0]
	if first.ProductSizeID != "PS-1" || first.ProductCode != "CHD-500" {
		t.Errorf("Unexpected identity on first row: %s %s", first.ProductSizeID, first.ProductCode)
	}
	if !first.ShortageQuantity.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Expected shortage 40, got %s", first.ShortageQuantity)
	}
	if first.EarliestDueDate == nil || first.EarliestDueDate.Format("2006-01-02") != "2025-03-12" {
		t.Errorf("Unexpected due date: %v", first.EarliestDueDate)
	}
	if len(first.SalesOrderNumbers) != 3 {
		t.Errorf("Expected 3 sales orders, got %v", first.SalesOrderNumbers)
	}

	second := items[1]
	if second.EarliestDueDate != nil {
		t.Errorf("Expected nil due date on second row, got %v", second.EarliestDueDate)
	}
	if second.NumberOfSalesOrders != 1 {
		t.Errorf("Expected 1 sales order, got %d", second.NumberOfSalesOrders)
	}
}

func TestLoader_HeaderOnlyYieldsEmptyList(t *testing.T) {
	loader := NewLoader()

	headerOnly := "product_size_id,product_id,product_code,product_description,size_type,total_quantity_needed,total_available_stock,shortage_quantity,earliest_due_date,number_of_sales_orders,sales_order_numbers,due_date_factor\n"
	items, err := loader.LoadUnfulfilledItems(writeSample(t, headerOnly))
	if err != nil {
		t.Fatalf("LoadUnfulfilledItems failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty list, got %d rows", len(items))
	}
}

func TestLoader_RejectsBadInput(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "wrong header",
			content: "foo,bar\n1,2\n",
		},
		{
			name: "bad quantity",
			content: sampleCSV[:len(sampleCSV)-len("PS-2,PROD-2,GDA-250,Gouda 250g,retail,30,18,12,,1,SO-1004,10\n")] +
				"PS-2,PROD-2,GDA-250,Gouda 250g,retail,abc,18,12,,1,SO-1004,10\n",
		},
		{
			name: "bad date",
			content: sampleCSV[:len(sampleCSV)-len("PS-2,PROD-2,GDA-250,Gouda 250g,retail,30,18,12,,1,SO-1004,10\n")] +
				"PS-2,PROD-2,GDA-250,Gouda 250g,retail,30,18,12,not-a-date,1,SO-1004,10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.LoadUnfulfilledItems(writeSample(t, tt.content)); err == nil {
				t.Error("Expected error for malformed CSV")
			}
		})
	}

	if _, err := loader.LoadUnfulfilledItems(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}
