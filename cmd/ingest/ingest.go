// Package ingest implements the import command: read a statement file,
// detect or build the column mapping, reconcile against the stored set and
// commit.
package ingest

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/flowerror"
	"moneyflow/internal/models"
	"moneyflow/internal/reconcile"
	"moneyflow/internal/session"
)

var (
	profileKey string
	onConflict string
	dryRun     bool

	// Manual mapping flags, used when no profile matches.
	mapName       string
	mapHeaderRow  int
	mapDateCol    string
	mapDescCol    string
	mapAmountCol  string
	mapIncomeCol  string
	mapExpenseCol string
	mapIDCol      string
	saveProfile   bool
)

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a bank statement export (XLSX or CSV)",
	Long: `Import reads a statement file, detects its format against the registered
import profiles and merges the transactions into the stored set. Exact
duplicates are skipped, so re-importing a file is safe. Rows that collide
with an existing transaction on date and amount but differ in description
are conflicts, resolved in batch with --on-conflict.`,
	Args: cobra.ExactArgs(1),
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&profileKey, "profile", "p", "", "Use a specific import profile instead of auto-detection")
	Cmd.Flags().StringVar(&onConflict, "on-conflict", string(reconcile.DecisionSkip), "Conflict handling: skip, replace or add")
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Classify the file without writing anything")

	Cmd.Flags().StringVar(&mapName, "map-name", "", "Manual mapping: profile name")
	Cmd.Flags().IntVar(&mapHeaderRow, "map-header-row", 0, "Manual mapping: header row offset")
	Cmd.Flags().StringVar(&mapDateCol, "map-date", "", "Manual mapping: date column")
	Cmd.Flags().StringVar(&mapDescCol, "map-description", "", "Manual mapping: description column")
	Cmd.Flags().StringVar(&mapAmountCol, "map-amount", "", "Manual mapping: single signed amount column")
	Cmd.Flags().StringVar(&mapIncomeCol, "map-income", "", "Manual mapping: income column (split amounts)")
	Cmd.Flags().StringVar(&mapExpenseCol, "map-expense", "", "Manual mapping: expense column (split amounts)")
	Cmd.Flags().StringVar(&mapIDCol, "map-id", "", "Manual mapping: bank transaction id column")
	Cmd.Flags().BoolVar(&saveProfile, "save-profile", false, "Persist the manual mapping for future auto-detection")
}

func importFunc(cmd *cobra.Command, args []string) error {
	decision := reconcile.Decision(onConflict)
	switch decision {
	case reconcile.DecisionSkip, reconcile.DecisionReplace, reconcile.DecisionAdd:
	default:
		return fmt.Errorf("invalid --on-conflict value %q", onConflict)
	}

	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	batch, err := prepare(sess, args[0])
	if err != nil {
		var noProfile *flowerror.NoProfileError
		if errors.As(err, &noProfile) {
			fmt.Printf("No import profile matches this file.\nDetected columns: %v\n", noProfile.Columns)
			fmt.Println("Map them manually with the --map-* flags, e.g.")
			fmt.Println("  moneyflow import file.xlsx --map-name mybank --map-date Data --map-description Descrizione --map-amount Importo --save-profile")
			return err
		}
		return err
	}

	fmt.Printf("Profile: %s\n", batch.ProfileKey)
	fmt.Printf("New: %d  Conflicts: %d  Duplicates: %d\n",
		len(batch.Result.Unique), len(batch.Result.Conflicts), batch.Result.Duplicates)

	for _, c := range batch.Result.Conflicts {
		fmt.Printf("  conflict on %s %.2f: %q vs %q -> %s\n",
			c.New.Date, c.New.Amount, c.Existing.Description, c.New.Description, decision)
	}

	if dryRun {
		fmt.Println("Dry run, nothing written.")
		return nil
	}

	decisions := reconcile.SameDecision(len(batch.Result.Conflicts), decision)
	written, err := sess.CommitImport(batch, decisions)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d transactions.\n", written)
	return nil
}

func prepare(sess *session.Session, path string) (*session.ImportBatch, error) {
	if hasManualMapping() {
		prof := manualProfile()
		name := ""
		if saveProfile {
			name = prof.Name
		}
		return sess.PrepareImportWithProfile(path, prof, name)
	}
	if profileKey != "" {
		prof, ok := sess.Registry().Get(profileKey)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q, see 'moneyflow profiles list'", profileKey)
		}
		return sess.PrepareImportWithProfile(path, prof, "")
	}
	return sess.PrepareImport(path)
}

func hasManualMapping() bool {
	return mapDateCol != "" || mapDescCol != "" || mapAmountCol != "" ||
		mapIncomeCol != "" || mapExpenseCol != ""
}

func manualProfile() models.ImportProfile {
	prof := models.ImportProfile{
		Name:              mapName,
		HeaderRow:         mapHeaderRow,
		DateColumn:        mapDateCol,
		DescriptionColumn: mapDescCol,
		IDColumn:          mapIDCol,
	}
	if mapIncomeCol != "" || mapExpenseCol != "" {
		prof.AmountType = models.AmountSplit
		prof.IncomeColumn = mapIncomeCol
		prof.ExpenseColumn = mapExpenseCol
	} else {
		prof.AmountType = models.AmountSingle
		prof.AmountColumn = mapAmountCol
	}
	if prof.Name == "" {
		prof.Name = "custom"
	}
	return prof
}
