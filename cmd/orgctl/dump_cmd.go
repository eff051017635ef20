package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type edgeRow struct {
	SubordinateID   string `json:"subordinate_id"`
	SubordinateName string `json:"subordinate_name"`
	SubordinateRole string `json:"subordinate_role"`
	SuperiorID      string `json:"superior_id"`
	SuperiorName    string `json:"superior_name"`
	SuperiorRole    string `json:"superior_role"`
}

func newDumpCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Vuelca las aristas subordinado → superior con nombres y roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openSource(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer src.close()

			views, err := src.edges.ListEdgeViews(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([]edgeRow, 0, len(views))
			for _, v := range views {
				rows = append(rows, edgeRow{
					SubordinateID:   v.SubordinateID,
					SubordinateName: v.SubordinateName,
					SubordinateRole: v.SubordinateRole.String(),
					SuperiorID:      v.SuperiorID,
					SuperiorName:    v.SuperiorName,
					SuperiorRole:    v.SuperiorRole.String(),
				})
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rows)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SUBORDINADO\tROL\tSUPERIOR\tROL")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.SubordinateName, r.SubordinateRole, r.SuperiorName, r.SuperiorRole)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Salida JSON")
	return cmd
}
