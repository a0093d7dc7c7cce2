package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/matcher"
)

func newMatchCmd(a *app) *cobra.Command {
	var targets []string
	cmd := &cobra.Command{
		Use:   "match <skill>...",
		Short: "Check a detected skill set against the target combinations",
		Example: `  reroller match 闘獣の力 甲虫の知らせ
  reroller match --target "闘獣の力+甲虫の知らせ" 闘獣の刀 甲虫の知らせ`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			combos := a.cfg.Combinations()
			if len(targets) > 0 {
				combos = combos[:0:0]
				for _, t := range targets {
					c, err := matcher.ParseCombination(t)
					if err != nil {
						return errors.Wrapf(err, "target %q", t)
					}
					combos = append(combos, c)
				}
			}
			m := a.cfg.NewMatcher()
			match, ok := m.EvaluateAny(combos, args)
			fmt.Fprintln(cmd.OutOrStdout(), describeMatch(match, ok))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, `Target combination "a+b" (repeatable, default: config)`)
	return cmd
}

func describeMatch(m matcher.Match, ok bool) string {
	switch {
	case !ok:
		return pterm.Gray("no match")
	case m.Result.Exact:
		return pterm.Green(fmt.Sprintf("match #%d %s (exact)", m.Index+1, m.Combination))
	default:
		return pterm.Yellow(fmt.Sprintf("match #%d %s (possible OCR error)", m.Index+1, m.Combination))
	}
}
