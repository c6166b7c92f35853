// Package recategorize reruns keyword categorization over the whole
// transaction set, typically after the rules changed.
package recategorize

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
)

var resolutions []string

// Cmd represents the recategorize command.
var Cmd = &cobra.Command{
	Use:   "recategorize",
	Short: "Rerun categorization over all transactions",
	Long: `Recategorize applies the current keyword rules to every stored
transaction. Descriptions matching keywords from several categories take
the longest keyword and are listed for review; override them with
--resolve "description=Category", which is also persisted for future
imports.`,
	RunE: recategorizeFunc,
}

func init() {
	Cmd.Flags().StringArrayVar(&resolutions, "resolve", nil, `Persist a category override, formatted "description=Category" (repeatable)`)
}

func recategorizeFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	for _, r := range resolutions {
		description, category, ok := strings.Cut(r, "=")
		if !ok {
			return fmt.Errorf("invalid --resolve value %q, expected \"description=Category\"", r)
		}
		changed, err := sess.ResolveCategory(strings.TrimSpace(description), strings.TrimSpace(category))
		if err != nil {
			return err
		}
		fmt.Printf("Resolved %q -> %s (%d transactions)\n", description, category, changed)
	}

	conflicts, err := sess.Recategorize()
	if err != nil {
		return err
	}

	fmt.Printf("Recategorized %d transactions.\n", len(sess.State().Transactions))
	if len(conflicts) > 0 {
		fmt.Printf("%d descriptions matched several categories (longest keyword applied):\n", len(conflicts))
		for _, c := range conflicts {
			names := make([]string, 0, len(c.Matches))
			for _, m := range c.Matches {
				names = append(names, m.Category)
			}
			fmt.Printf("  %q -> %s (candidates: %s)\n", c.Description, c.Default, strings.Join(names, ", "))
		}
		fmt.Println(`Override with: moneyflow recategorize --resolve "description=Category"`)
	}
	return nil
}
