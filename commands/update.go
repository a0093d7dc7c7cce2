package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/rerolltable"
)

func newUpdateCmd(a *app) *cobra.Command {
	var weapon, element string
	var confirmed int
	cmd := &cobra.Command{
		Use:   "update <skills>...",
		Short: "Write one session's results into the table",
		Long: `Write one result per argument into the weapon_element column, starting
at row confirmed+1. Each argument is the skills of one attempt joined with "+";
"-" records an attempt with no readable skills.`,
		Example: `  reroller update --weapon 太刀 --element 水 --confirmed 5 闘獣の力+甲虫の知らせ 攻撃+体力`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if weapon == "" || element == "" {
				return errors.New("--weapon and --element are required")
			}
			t, err := rerolltable.Open(a.cfg.TablePath(), a.cfg.ColumnOrder())
			if err != nil {
				return err
			}
			if err := t.Update(weapon, element, resultsFromArgs(args), confirmed); err != nil {
				return err
			}
			pterm.Success.Printfln("%s: rows %d-%d written to %s",
				rerolltable.ColumnName(weapon, element), confirmed+1, confirmed+len(args), t.Path())
			return nil
		},
	}
	cmd.Flags().StringVarP(&weapon, "weapon", "w", "", "Weapon name")
	cmd.Flags().StringVarP(&element, "element", "e", "", "Element name")
	cmd.Flags().IntVar(&confirmed, "confirmed", 0, "Confirmed count; rows at or below it are left alone")
	return cmd
}

func resultsFromArgs(args []string) []string {
	out := make([]string, len(args))
	for i, s := range args {
		s = strings.TrimSpace(s)
		if s == "-" {
			s = ""
		}
		out[i] = s
	}
	return out
}
