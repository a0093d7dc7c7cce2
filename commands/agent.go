package commands

import (
	"os"
	"path/filepath"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ocsin1/artian-reroller/reroll"
)

func newAgentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "agent <identifier>",
		Short: "Run the MaaFramework agent server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(a, args[0])
		},
	}
}

func runAgent(a *app, identifier string) error {
	log.Info().Str("version", a.version).Msg("Artian Reroller Agent Service")
	log.Info().Str("identifier", identifier).Msg("Starting agent server")

	// MAA DLL 位于工作目录下的 maafw 子目录
	libDir := filepath.Join(getCwd(), "maafw")
	log.Info().Str("libDir", libDir).Msg("Initializing MAA framework")
	if err := maa.Init(maa.WithLibDir(libDir)); err != nil {
		return errors.Wrap(err, "initialize MAA framework")
	}
	defer maa.Release()
	log.Info().Msg("MAA framework initialized")

	userPath := getCwd()
	if ok := maa.ConfigInitOption(userPath, "{}"); !ok {
		log.Warn().Str("userPath", userPath).Msg("Failed to init toolkit config option")
	} else {
		log.Info().Str("userPath", userPath).Msg("Toolkit config option initialized")
	}

	reroll.Register(reroll.NewAgent(a.cfg))
	log.Info().Msg("Registered custom recognition and actions")

	if !maa.AgentServerStartUp(identifier) {
		return errors.New("failed to start agent server")
	}
	log.Info().Msg("Agent server started")

	maa.AgentServerJoin()

	maa.AgentServerShutDown()
	log.Info().Msg("Agent server shutdown")
	return nil
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
