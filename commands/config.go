package commands

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/config"
	"github.com/ocsin1/artian-reroller/matcher"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or print the configuration",
	}

	var (
		force   bool
		targets []string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return errors.WithHint(
					errors.Newf("%s already exists", a.configPath),
					"use --force to overwrite it",
				)
			}
			cfg := config.Default()
			if len(targets) > 0 {
				combos, err := parseTargets(targets)
				if err != nil {
					return err
				}
				cfg.SetCombinations(combos)
			}
			if err := config.Write(a.configPath, cfg); err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", a.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	initCmd.Flags().StringArrayVarP(&targets, "target", "t", nil, `Target combination as "skillA+skillB" (repeatable, replaces the defaults)`)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if unknown := a.cfg.UnknownSkills(); len(unknown) > 0 {
				pterm.Warning.Printfln("Target skills not in game.series_skills / game.group_skills: %v", unknown)
			}
			return errors.Wrap(toml.NewEncoder(cmd.OutOrStdout()).Encode(a.cfg), "encode config")
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func parseTargets(raw []string) ([]matcher.Combination, error) {
	out := make([]matcher.Combination, 0, len(raw))
	for _, r := range raw {
		combo, err := matcher.ParseCombination(r)
		if err != nil {
			return nil, errors.Wrapf(err, "target %q", r)
		}
		out = append(out, combo)
	}
	return out, nil
}
