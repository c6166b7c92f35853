// Package reset wipes the stored state back to the defaults.
package reset

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
)

var force bool

// Cmd represents the reset command.
var Cmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all transactions, rules and profiles",
	RunE:  resetFunc,
}

func init() {
	Cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation check")
}

func resetFunc(cmd *cobra.Command, args []string) error {
	if !force {
		return fmt.Errorf("reset discards all data, rerun with --force to confirm")
	}

	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	if err := sess.Reset(); err != nil {
		return err
	}
	fmt.Println("State reset to defaults.")
	return nil
}
