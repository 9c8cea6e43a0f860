package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/josephlewis42/hsh/core"
)

// builtinsCmd lists the interpreter's builtins
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the interpreter.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, name := range core.BuiltinNames() {
			use, short, _ := core.BuiltinUsage(name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, use, short)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
