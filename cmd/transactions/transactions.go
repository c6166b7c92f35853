// Package transactions implements manual transaction management: listing,
// manual entry, deletion and field edits.
package transactions

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/report"
)

var (
	listYear  int
	listMonth int
	listQuery string
	listLimit int

	addDate     string
	addAmount   float64
	addCategory string
	addNote     string

	remember bool
)

// Cmd represents the tx command.
var Cmd = &cobra.Command{
	Use:   "tx",
	Short: "List and edit transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listFunc(cmd, args)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE:  listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Record a manual transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

var setCategoryCmd = &cobra.Command{
	Use:   "set-category <id> <category>",
	Short: "Change a transaction's category",
	Args:  cobra.ExactArgs(2),
	RunE:  setCategoryFunc,
}

var setDescriptionCmd = &cobra.Command{
	Use:   "set-description <id> <description>",
	Short: "Rewrite a transaction's description",
	Args:  cobra.ExactArgs(2),
	RunE:  setDescriptionFunc,
}

var setNoteCmd = &cobra.Command{
	Use:   "set-note <id> <note>",
	Short: "Set or clear a transaction's note",
	Args:  cobra.ExactArgs(2),
	RunE:  setNoteFunc,
}

func init() {
	for _, c := range []*cobra.Command{Cmd, listCmd} {
		c.Flags().IntVar(&listYear, "year", time.Now().Year(), "Filter by year")
		c.Flags().IntVar(&listMonth, "month", 0, "Filter by month (1-12, 0 for the whole year)")
		c.Flags().StringVar(&listQuery, "search", "", "Filter by description or category substring")
		c.Flags().IntVar(&listLimit, "limit", 50, "Maximum rows to print (0 for all)")
	}

	addCmd.Flags().StringVar(&addDate, "date", "", "Transaction date, YYYY-MM-DD (default today)")
	addCmd.Flags().Float64Var(&addAmount, "amount", 0, "Signed amount, positive for income")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (default: auto-assigned by keyword rules)")
	addCmd.Flags().StringVar(&addNote, "note", "", "Optional note")
	_ = addCmd.MarkFlagRequired("amount")

	setCategoryCmd.Flags().BoolVar(&remember, "remember", false, "Persist the choice for this description")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(setCategoryCmd)
	Cmd.AddCommand(setDescriptionCmd)
	Cmd.AddCommand(setNoteCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	filter := report.Filter{Year: listYear, Month: listMonth, Query: listQuery}
	selected := filter.Select(sess.State().Transactions)

	shown := 0
	for _, tx := range selected {
		if listLimit > 0 && shown >= listLimit {
			break
		}
		note := ""
		if tx.Note != "" {
			note = "  # " + tx.Note
		}
		fmt.Printf("%s  %s  %9.2f  %-20s  %s%s\n",
			tx.ID, tx.ParsedDate().Format("2006-01-02"), tx.Amount, tx.Category, tx.Description, note)
		shown++
	}
	fmt.Printf("%d of %d transactions shown.\n", shown, len(selected))
	return nil
}

func addFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	date := time.Now()
	if addDate != "" {
		date, err = time.Parse("2006-01-02", addDate)
		if err != nil {
			return fmt.Errorf("invalid --date value %q, expected YYYY-MM-DD", addDate)
		}
	}

	tx, err := sess.AddTransaction(date, args[0], addAmount, addCategory, addNote)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s: %s %.2f (%s)\n", tx.ID, tx.Description, tx.Amount, tx.Category)
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := sess.DeleteTransaction(args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func setCategoryFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := sess.UpdateCategory(args[0], args[1], remember); err != nil {
		return err
	}
	if remember {
		fmt.Println("Category updated and remembered for this description.")
	} else {
		fmt.Println("Category updated.")
	}
	return nil
}

func setDescriptionFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := sess.UpdateDescription(args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("Description updated.")
	return nil
}

func setNoteFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := sess.UpdateNote(args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("Note updated.")
	return nil
}
