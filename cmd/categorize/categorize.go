// Package categorize handles the category rule commands: test a description
// against the rules and manage the keyword lists.
package categorize

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/categorizer"
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize <description>",
	Short: "Show which category a description resolves to",
	Long: `Categorize runs the keyword rules against a description and prints the
resulting category, including the keyword that decided it. Persisted
per-description resolutions take precedence over the rules.`,
	Args: cobra.MinimumNArgs(1),
	RunE: categorizeFunc,
}

var (
	addKeywords []string
	removeName  string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the category keyword rules",
	RunE:  rulesFunc,
}

var setCmd = &cobra.Command{
	Use:   "set <category>",
	Short: "Add a category or replace its keyword list",
	Args:  cobra.ExactArgs(1),
	RunE:  setFunc,
}

var removeCmd = &cobra.Command{
	Use:   "remove <category>",
	Short: "Delete a category rule",
	Args:  cobra.ExactArgs(1),
	RunE:  removeFunc,
}

func init() {
	setCmd.Flags().StringSliceVarP(&addKeywords, "keywords", "k", nil, "Keywords matched against descriptions (repeatable)")
	Cmd.AddCommand(rulesCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(removeCmd)
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}

	description := strings.Join(args, " ")
	state := sess.State()

	if category, ok := state.CategoryResolutions[description]; ok {
		fmt.Printf("%s (persisted resolution)\n", category)
		return nil
	}

	matches := categorizer.FindMatching(description, state.Categories)
	matcher := categorizer.NewMatcher(state.Categories, state.CategoryResolutions, root.Log)
	category := matcher.Categorize(description)

	switch len(matches) {
	case 0:
		fmt.Printf("%s (no keyword matched)\n", category)
	case 1:
		fmt.Printf("%s (keyword %q)\n", category, matches[0].Keyword)
	default:
		fmt.Printf("%s (longest of %d matching keywords)\n", category, len(matches))
		for _, m := range matches {
			fmt.Printf("  %s: %q\n", m.Category, m.Keyword)
		}
	}
	return nil
}

func rulesFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	for _, c := range sess.State().Categories {
		fmt.Printf("%s: %s\n", c.Name, strings.Join(c.Keywords, ", "))
	}
	return nil
}

func setFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := sess.UpsertCategory(args[0], addKeywords); err != nil {
		return err
	}
	fmt.Printf("Category %s saved with %d keywords. Run 'moneyflow recategorize' to apply.\n", args[0], len(addKeywords))
	return nil
}

func removeFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := sess.RemoveCategory(args[0]); err != nil {
		return err
	}
	fmt.Printf("Category %s removed.\n", args[0])
	return nil
}
