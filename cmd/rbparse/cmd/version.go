package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ruby/ruby-sub004/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "rbparse v%s\n", version.Version)
			fmt.Fprintf(a.stdout, "  Format:     %s\n", version.Format())
			fmt.Fprintf(a.stdout, "  Git Commit: %s\n", version.Commit)
			fmt.Fprintf(a.stdout, "  Build Date: %s\n", version.BuildDate)
			fmt.Fprintf(a.stdout, "  Go Version: %s\n", runtime.Version())
		},
	}
}
