package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/calderafoods/demandwatch/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format string
	Top    int
}

// Generate writes the prioritized list in the configured format
func Generate(w io.Writer, result *dto.UnfulfilledResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(w, result, config)
	case "json":
		return generateJSONOutput(w, result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func limitItems(result *dto.UnfulfilledResult, top int) *dto.UnfulfilledResult {
	if top <= 0 || top >= len(result.Items) {
		return result
	}
	limited := *result
	limited.Items = result.Items[:top]
	return &limited
}

// generateTextOutput creates a human-readable ranked table
func generateTextOutput(w io.Writer, result *dto.UnfulfilledResult, config Config) error {
	fmt.Fprintf(w, "Unfulfilled Demand Summary\n")
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Shortage rows: %d\n", result.TotalCount)
	fmt.Fprintf(w, "Max open sales orders per item: %d\n", result.TotalOpenSOs)
	fmt.Fprintf(w, "Fetched at: %s\n\n", result.FetchedAt.Format("2006-01-02 15:04:05"))

	limited := limitItems(result, config.Top)
	if len(limited.Items) == 0 {
		fmt.Fprintf(w, "No unfulfilled demand.\n")
		return nil
	}

	fmt.Fprintf(w, "%-12s %-14s %-30s %-10s %-12s %-6s %-8s %-10s\n",
		"Rank", "Code", "Description", "Shortage", "Due", "SOs", "Score", "Level")
	fmt.Fprintf(w, "%-12s %-14s %-30s %-10s %-12s %-6s %-8s %-10s\n",
		"------------", "--------------", "------------------------------", "----------", "------------", "------", "--------", "----------")

	for i, item := range limited.Items {
		due := "-"
		if item.EarliestDueDate != nil {
			due = item.EarliestDueDate.Format("2006-01-02")
		}
		desc := item.ProductDescription
		if len(desc) > 30 {
			desc = desc[:27] + "..."
		}
		fmt.Fprintf(w, "%-12d %-14s %-30s %-10s %-12s %-6d %-8.1f %-10s\n",
			i+1,
			item.ProductCode,
			desc,
			item.ShortageQuantity.String(),
			due,
			item.NumberOfSalesOrders,
			item.PriorityScore,
			item.PriorityLevel)
	}
	fmt.Fprintln(w)
	return nil
}

// generateJSONOutput emits the result as indented JSON
func generateJSONOutput(w io.Writer, result *dto.UnfulfilledResult, config Config) error {
	limited := limitItems(result, config.Top)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(limited); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
