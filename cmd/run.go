package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/logging"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = logging.DefaultFilePath(); err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	}
	log, logFile, err := logging.OpenFile(logPath, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	st, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("open store failed")
		return err
	}
	defer st.Close()

	log.Info().Str("bank", cfg.Bank).Msg("starting quiz")

	loader := bank.NewLoader(
		bank.WithTimeout(cfg.FetchTimeout.Duration),
		bank.WithLogger(log),
	)
	wrongStore := wrongset.NewStore(st.KVRepo(), log)
	root := quiz.New(cfg.Bank, loader, wrongStore, st.EventRepo(), quiz.WithLogger(log))

	return app.Run(root)
}
