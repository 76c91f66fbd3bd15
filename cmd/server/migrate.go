package main

import (
	"errors"
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/config"
	"github.com/St1cky1/pomodoro-service/internal/infrastructure/client"
	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back PostgreSQL migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{client.MigrateUp, client.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return errors.New("migrations are only used with the postgres driver (sqlite migrates on start)")
			}

			if err := client.RunMigrations(cfg.Database.MigrationsPath, cfg.Database.PostgresURL(), args[0]); err != nil {
				return err
			}
			log.WithField("direction", args[0]).Info("✅ Миграции выполнены успешно")
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != client.MigrateUp && args[0] != client.MigrateDown {
				return fmt.Errorf("unknown direction %q (use up or down)", args[0])
			}
			return nil
		},
	}
}
