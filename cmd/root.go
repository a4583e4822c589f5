package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/logging"
	"github.com/abhisek/quizdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "quizdeck",
	Short:        "Multiple-choice quiz drills in the terminal",
	Long:         "Quizdeck runs rounds of multiple-choice questions and keeps the ones you miss for review.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to the TOML config file")
	pf.String("bank", "", "Question bank path or URL (overrides QUIZDECK_BANK)")
	pf.String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB)")
	pf.String("log-file", "", "Log file for the interactive quiz (overrides QUIZDECK_LOG_FILE)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies any
// flags set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	overrides := map[string]*string{
		"bank":      &cfg.Bank,
		"db":        &cfg.DB,
		"log-file":  &cfg.LogFile,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path, falling back to
// the default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// consoleLogger returns the stderr logger used by the non-interactive
// commands.
func consoleLogger(cfg config.Config, w io.Writer) (zerolog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	return logging.Console(w, level), nil
}
