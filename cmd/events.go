package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/josephlewis42/hsh/core/logger"
	"github.com/josephlewis42/hsh/core/vos"
)

var (
	eventsFile string
	topCount   int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the interpreter event log.",
}

// readEvents builds a report from the event log.
func readEvents() (*logger.Report, error) {
	path := eventsFile
	if path == "" {
		configuration, err := loadConfig(vos.NewOsFs())
		if err != nil {
			return nil, err
		}
		path = configuration.EventLog
	}
	if path == "" {
		return nil, errors.New("no event log configured, use --file or set event_log")
	}

	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var report logger.Report
	if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
		return nil, err
	}
	return &report, nil
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		report, err := readEvents()
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

var topCommand = &cobra.Command{
	Use:   "top",
	Short: "Show the most run and most missed commands.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		report, err := readEvents()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, section := range []struct {
			title   string
			counter logger.StrCounter
		}{
			{"Builtins", report.Builtin.CommandNames},
			{"Programs", report.RunCommand.ResolvedCommandPaths},
			{"Not found", report.UnknownCommand.CommandNames},
			{"Failed", report.ExecFailure.CommandNames},
		} {
			fmt.Fprintf(w, "%s:\n", section.title)
			for _, name := range section.counter.Top(topCount) {
				fmt.Fprintf(w, "%7d  %s\n", section.counter[name], name)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(topCommand)

	eventsCmd.PersistentFlags().StringVar(&eventsFile, "file", "", "event log to read, defaults to the configured event_log")
	topCommand.Flags().IntVarP(&topCount, "count", "n", 10, "number of entries per section, negative shows all")
}
