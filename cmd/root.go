package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/hsh/core/config"
)

var (
	cfgPath      string
	commandStr   string
	eventLogPath string
	noHistory    bool

	// exitCode is the interpreter's exit code, set by the root command.
	exitCode int
)

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hsh")
}

func loadConfig(fsys afero.Fs) (*config.Configuration, error) {
	return config.LoadOrDefault(fsys, cfgPath)
}

// rootCmd runs the interpreter when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hsh [script]",
	Short: "A minimal command interpreter",
	Long: `hsh reads command lines from a terminal, a script or the -c flag and runs
them. Commands are chained with ';', '&&' and '||'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		status, err := runInterpreter(cmd, args)
		if err != nil {
			return err
		}
		exitCode = status
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigDir(), "config directory")

	flags := rootCmd.Flags()
	// Everything after the script name belongs to the script.
	flags.SetInterspersed(false)
	flags.StringVarP(&commandStr, "command", "c", "", "run the command string instead of reading input")
	flags.StringVar(&eventLogPath, "event-log", "", "append structured events to this file, overrides event_log")
	flags.BoolVar(&noHistory, "no-history", false, "don't load or save the history file")
}
