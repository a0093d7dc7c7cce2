// Package commands is the reroller CLI: the MaaFramework agent entry point plus
// offline tools over the reroll table.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/config"
)

// app carries what every subcommand needs after the root pre-run.
type app struct {
	version    string
	configPath string
	verbose    int
	cfg        *config.Config
	logFile    *os.File
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "reroller",
		Short: "Artian weapon skill reroller",
		Long: `reroller - automation and route finding for artian weapon skill rerolls.

Available commands:
  agent   - Run as a MaaFramework agent (drives the reroll loop)
  routes  - List attempts that produced a target combination
  match   - Check a detected skill set against the targets
  update  - Import one session's results into the table
  export  - Write the table and routes to an xlsx workbook
  ocr     - Re-read a saved screenshot with tesseract
  config  - Create or print the configuration

Examples:
  reroller routes --weapon 太刀 --element 水
  reroller match 闘獣の力 甲虫の知らせ
  reroller config init`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logFile != nil {
				a.logFile.Close()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.toml", "Path to config.toml")
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "Increase log verbosity")

	root.AddCommand(
		newAgentCmd(a),
		newRoutesCmd(a),
		newMatchCmd(a),
		newUpdateCmd(a),
		newExportCmd(a),
		newOCRCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		return 1
	}
	return 0
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	f, err := initLogger(cfg.Output.LogDir, a.verbose)
	if err != nil {
		return err
	}
	a.logFile = f
	return nil
}
