package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruby/ruby-sub004/serialize"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		output string
		expr   string
	)
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Write the binary serialization of the tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.readSources(args, expr)
			if err != nil {
				return err
			}
			res, err := a.parse(srcs[0])
			if err != nil {
				return err
			}
			b := serialize.Serialize(res)
			a.log.Debug("serialized", "file", srcs[0].name, "bytes", len(b))
			if output == "" || output == "-" {
				_, err = a.stdout.Write(b)
				return err
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "serialize this code instead of a file")
	return cmd
}
