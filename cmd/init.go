package cmd

import (
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/hsh/core/config"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the default configuration to the config directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		dir := cfgPath
		if len(args) > 0 {
			dir = args[0]
		}

		_, err := config.Initialize(afero.NewOsFs(), dir, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
