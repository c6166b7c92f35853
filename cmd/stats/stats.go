// Package stats prints the aggregate reports: totals, spending per category,
// monthly series and the cumulative daily balance.
package stats

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/report"
)

var (
	year       int
	month      int
	query      string
	exportPath string
)

// Cmd represents the stats command.
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Show income, expenses and spending per category",
	Long: `Stats aggregates the stored transactions for a year or a single month:
headline totals, spending grouped by category, the twelve-month series
and, with --month, the cumulative daily balance. The filtered rows can
also be exported to CSV with --export.`,
	RunE: statsFunc,
}

func init() {
	Cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Report year")
	Cmd.Flags().IntVar(&month, "month", 0, "Report month (1-12, 0 for the whole year)")
	Cmd.Flags().StringVar(&query, "search", "", "Filter by description or category substring")
	Cmd.Flags().StringVar(&exportPath, "export", "", "Write the filtered transactions to a CSV file")
}

func statsFunc(cmd *cobra.Command, args []string) error {
	if month < 0 || month > 12 {
		return fmt.Errorf("invalid --month value %d", month)
	}

	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	transactions := sess.State().Transactions

	filter := report.Filter{Year: year, Month: month, Query: query}
	selected := filter.Select(transactions)
	summary := report.Summarize(selected)

	scope := fmt.Sprintf("%d", year)
	if month != 0 {
		scope = fmt.Sprintf("%d-%02d", year, month)
	}
	fmt.Printf("Period %s (%d transactions)\n", scope, len(selected))
	fmt.Printf("  Income:   %10.2f\n", summary.Income)
	fmt.Printf("  Expenses: %10.2f\n", summary.Expenses)
	fmt.Printf("  Balance:  %10.2f\n", summary.Balance)

	if byCat := report.ByCategory(selected); len(byCat) > 0 {
		fmt.Println("\nSpending by category:")
		for _, c := range byCat {
			fmt.Printf("  %-24s %10.2f  (%d)\n", c.Name, c.Amount, c.Count)
		}
	}

	if month == 0 {
		fmt.Println("\nMonthly:")
		for _, p := range report.MonthlySeries(transactions, year) {
			fmt.Printf("  %s  in %10.2f  out %10.2f\n", p.Name, p.Income, p.Expenses)
		}
	} else {
		fmt.Println("\nDaily balance:")
		for _, p := range report.DailySeries(selected, year, month) {
			if p.Movement == 0 {
				continue
			}
			fmt.Printf("  %02d  %+10.2f  -> %10.2f\n", p.Day, p.Movement, p.Balance)
		}
	}

	if exportPath != "" {
		if err := report.ExportCSV(exportPath, selected); err != nil {
			return err
		}
		fmt.Printf("\nExported %d transactions to %s\n", len(selected), exportPath)
	}
	return nil
}
