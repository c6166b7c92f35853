package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	backupcmd "moneyflow/cmd/backup"
	"moneyflow/cmd/categorize"
	"moneyflow/cmd/enrich"
	"moneyflow/cmd/ingest"
	"moneyflow/cmd/profiles"
	"moneyflow/cmd/recategorize"
	"moneyflow/cmd/reset"
	"moneyflow/cmd/root"
	"moneyflow/cmd/stats"
	synccmd "moneyflow/cmd/sync"
	"moneyflow/cmd/transactions"
)

func init() {
	// Load environment variables before configuration is read. Missing .env
	// files are fine.
	_ = godotenv.Load()

	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(transactions.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(recategorize.Cmd)
	root.Cmd.AddCommand(enrich.Cmd)
	root.Cmd.AddCommand(profiles.Cmd)
	root.Cmd.AddCommand(stats.Cmd)
	root.Cmd.AddCommand(backupcmd.Cmd)
	root.Cmd.AddCommand(synccmd.Cmd)
	root.Cmd.AddCommand(reset.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
