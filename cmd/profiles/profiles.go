// Package profiles lists the registered import profiles and tests which one
// a statement file resolves to.
package profiles

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/models"
	"moneyflow/internal/spreadsheet"
)

// Cmd represents the profiles command.
var Cmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect the registered import profiles",
	RunE:  listFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles in detection order",
	RunE:  listFunc,
}

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Show which profile a statement file resolves to",
	Args:  cobra.ExactArgs(1),
	RunE:  detectFunc,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(detectCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	registry := sess.Registry()
	for _, key := range registry.Keys() {
		p, _ := registry.Get(key)
		fmt.Printf("%-12s %s\n", key, describe(p))
	}
	return nil
}

func detectFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	sheet, err := spreadsheet.ReadFile(args[0], root.Log)
	if err != nil {
		return err
	}
	fmt.Printf("Header row: %d\nColumns: %v\n", sheet.HeaderRow, sheet.Columns)

	key, p, ok := sess.Registry().Detect(sheet.Columns)
	if !ok {
		fmt.Println("No profile matches; manual mapping needed (see 'moneyflow import --help').")
		return nil
	}
	fmt.Printf("Matched profile: %s (%s)\n", key, describe(p))
	return nil
}

func describe(p models.ImportProfile) string {
	amount := p.AmountColumn
	if p.AmountType == models.AmountSplit {
		amount = p.IncomeColumn + "/" + p.ExpenseColumn
	}
	return fmt.Sprintf("%s: date=%q description=%q amount=%q headerRow=%d",
		p.Name, p.DateColumn, p.DescriptionColumn, amount, p.HeaderRow)
}
