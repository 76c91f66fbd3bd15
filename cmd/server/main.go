package main

import (
	"fmt"
	"os"

	"github.com/St1cky1/pomodoro-service/internal/config"
	"github.com/St1cky1/pomodoro-service/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "pomodoro-server",
		Short:         "Pomodoro tasks and sessions REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./config.yaml if present)")

	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
	)
	return root
}

// setup загружает конфиг и создает логгер
func setup(configPath string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
