// Package backup implements local backup export and import.
package backup

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/backup"
	"moneyflow/internal/models"
)

// Cmd represents the backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and restore the full application state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a JSON backup of transactions, rules and profiles",
	Args:  cobra.ExactArgs(1),
	RunE:  exportFunc,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore the state from a JSON backup",
	Long: `Import replaces the current transactions with the backup's. Categories,
import profiles and category resolutions are replaced only when the
backup contains them; otherwise the current values survive.`,
	Args: cobra.ExactArgs(1),
	RunE: importFunc,
}

func init() {
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(importCmd)
}

func exportFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := backup.WriteFile(args[0], sess.State()); err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions to %s\n", len(sess.State().Transactions), args[0])
	return nil
}

func importFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	doc, err := backup.ReadFile(args[0])
	if err != nil {
		return err
	}

	restored := restoredState(sess.State(), doc)
	if err := sess.Restore(restored); err != nil {
		return err
	}
	fmt.Printf("Restored %d transactions from %s (exported %s)\n",
		len(restored.Transactions), args[0], doc.ExportDate)
	return nil
}

func restoredState(current *models.AppState, doc *backup.Document) *models.AppState {
	state := &models.AppState{
		Transactions:        current.Transactions,
		Categories:          current.Categories,
		ImportProfiles:      current.ImportProfiles,
		CategoryResolutions: current.CategoryResolutions,
	}
	backup.Apply(state, doc)
	return state
}
