package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

func isDenied(err error) bool {
	return errors.Is(err, domain.ErrReassignmentDenied)
}

func newMatrixCmd(flags *rootFlags) *cobra.Command {
	var (
		action string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Matriz de permisos: qué eventos puede tocar cada usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			act := hierarchy.Action(action)
			if !act.Valid() {
				return fmt.Errorf("--action inválida %q (read, update, delete)", action)
			}
			src, err := openSource(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer src.close()

			users, err := src.users.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := buildMatrix(cmd.Context(), hierarchy.NewEngine(src.edges), users, act)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rows)
			}
			names := make(map[string]string, len(users))
			for _, u := range users {
				names[u.ID] = u.Name
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "USUARIO\tROL\t%s\tASIGNA AL CREAR\tREASIGNA\n", strings.ToUpper(action))
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", r.ActorName, r.Role, len(r.CanAccess), len(r.AssignOnCreate), len(r.ReassignOnUpdate))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&action, "action", string(hierarchy.ActionRead), "Acción evaluada por el guard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Salida JSON con los ids permitidos")
	return cmd
}
