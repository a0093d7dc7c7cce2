package commands

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/rerolltable"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [out.xlsx]",
		Short: "Export the table and current routes to an xlsx workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := filepath.Join(a.cfg.Output.Dir, "reroll_table.xlsx")
			if len(args) == 1 {
				out = args[0]
			}
			t, err := rerolltable.Open(a.cfg.TablePath(), a.cfg.ColumnOrder())
			if err != nil {
				return err
			}
			finder := rerolltable.NewRouteFinder(a.cfg.Combinations(), a.cfg.Reroll.ConfirmedCount, a.cfg.Reroll.MatchThreshold).
				WithCorrections(a.cfg.Corrections())
			routes := finder.Find(t)
			if err := rerolltable.ExportXLSX(t, out, routes); err != nil {
				return err
			}
			pterm.Success.Printfln("Exported %d rows and %d routes to %s", t.Len(), len(routes), out)
			return nil
		},
	}
}
