// Package root contains the root command and the shared wiring every
// subcommand relies on: configuration, the logger and the session factory.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/internal/config"
	"moneyflow/internal/logging"
	"moneyflow/internal/session"
	"moneyflow/internal/store"
)

var (
	// Log is the shared logger instance for commands. It is replaced with a
	// fully configured adapter in PersistentPreRunE.
	Log logging.Logger = logging.NewMockLogger()

	// Cfg is the loaded configuration, available after PersistentPreRunE.
	Cfg *config.Config

	// Flags overriding the configuration file.
	LogLevel string
	DataDir  string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "moneyflow",
		Short: "A personal finance tracker for bank statement imports.",
		Long: `moneyflow imports bank statement exports (XLSX and CSV), normalizes them
into transactions, categorizes them by keyword rules and reconciles
re-imports without creating duplicates.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if LogLevel != "" {
				cfg.Log.Level = LogLevel
			}
			if DataDir != "" {
				cfg.Data.Directory = DataDir
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

// Init registers the persistent flags. Called once from main before any
// subcommand is attached.
func Init() {
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&DataDir, "data-dir", "", "Data directory override")
}

// OpenSession loads the persisted state and returns a ready session. The
// optional category seed file only affects a fresh data directory.
func OpenSession() (*session.Session, error) {
	if Cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	st := store.NewStateStore(Cfg.Data.Directory, Log)
	if Cfg.Categories.SeedFile != "" {
		seed, err := store.LoadCategorySeed(Cfg.Categories.SeedFile)
		if err != nil {
			return nil, err
		}
		if seed != nil {
			st.SetSeed(seed)
		}
	}

	return session.New(st, Log)
}
