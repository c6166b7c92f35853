// Package enrich rewrites opaque PayPal statement lines using the detail
// from a PayPal activity export.
package enrich

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
)

var dryRun bool

// Cmd represents the enrich command.
var Cmd = &cobra.Command{
	Use:   "enrich <paypal-activity-file>",
	Short: "Enrich PayPal transactions from an activity export",
	Long: `Enrich matches stored transactions whose description mentions PayPal
against the rows of a PayPal activity export (XLSX or CSV). A match
requires the dates within three days and the amounts within two cents.
Matched transactions get the merchant name and detail as their new
description and are recategorized against it.`,
	Args: cobra.ExactArgs(1),
	RunE: enrichFunc,
}

func init() {
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the matches without applying them")
}

func enrichFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	matches, err := sess.EnrichFromPayPal(args[0])
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches found. Check that the bank descriptions mention PayPal and that dates and amounts line up.")
		return nil
	}

	for _, m := range matches {
		fmt.Printf("%s  %9.2f  %q -> %q\n",
			m.Transaction.ParsedDate().Format("2006-01-02"), m.Transaction.Amount,
			m.Transaction.Description, m.NewDescription)
	}

	if dryRun {
		fmt.Printf("%d matches, nothing applied.\n", len(matches))
		return nil
	}

	applied, err := sess.ApplyPayPalMatches(matches)
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d description updates.\n", applied)
	return nil
}
