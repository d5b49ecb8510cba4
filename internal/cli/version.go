package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"ver"},
		Short:   "Print cdnlogs build information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Build Version:    ", valueOrUnknown(Version))
			fmt.Fprintln(out, "Build date:       ", valueOrUnknown(BuildDate))
			fmt.Fprintln(out, "Git commit:       ", valueOrUnknown(GitRevision))
		},
	}
}

func valueOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
