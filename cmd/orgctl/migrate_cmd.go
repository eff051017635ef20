package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/agenda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agenda-api/pkg/config"
)

var errFileMigrate = errors.New("migrate requiere base de datos, no --file")

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema (goose)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.file != "" {
				return errFileMigrate
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := postgres.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			v, err := postgres.MigrationVersion(cmd.Context(), pool)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "esquema en versión %d\n", v)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Muestra la versión actual del esquema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.file != "" {
				return errFileMigrate
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			v, err := postgres.MigrationVersion(cmd.Context(), pool)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", v)
			return nil
		},
	})
	return cmd
}
