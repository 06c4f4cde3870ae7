package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		quiet  bool
		werror bool
	)
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report diagnostics; exit 1 on errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.readSources(args, "")
			if err != nil {
				return err
			}
			st := newStyles(a.stdout, a.cfg.Output.Color)
			var nerr, nwarn int
			for _, src := range srcs {
				res, err := a.parse(src)
				if err != nil {
					return err
				}
				nerr += len(res.Errors())
				nwarn += len(res.Warnings())
				if quiet {
					continue
				}
				for _, d := range res.Diagnostics {
					fmt.Fprint(a.stdout, st.diagnostic(res, d))
				}
			}
			fmt.Fprintln(a.stdout, st.summary.Render(
				fmt.Sprintf("%d %s, %d %s, %d %s",
					len(srcs), plural(len(srcs), "file"),
					nerr, plural(nerr, "error"),
					nwarn, plural(nwarn, "warning"))))
			if nerr > 0 || (werror && nwarn > 0) {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")
	cmd.Flags().BoolVar(&werror, "werror", false, "treat warnings as errors")
	return cmd
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
