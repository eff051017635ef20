package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	file     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "orgctl",
		Short:         "Herramientas del organigrama de la agenda comercial",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&flags.file, "file", "", "Organigrama JSON (users + edges); sin valor se usa la base de datos")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Nivel de log (stderr)")

	cmd.AddCommand(newDumpCmd(flags))
	cmd.AddCommand(newMatrixCmd(flags))
	cmd.AddCommand(newMigrateCmd(flags))
	return cmd
}
