package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuprogram/kernels/elementwise"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List available operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OP\tTYPES\tATTRIBUTES")
			for _, name := range elementwise.Names() {
				op, _ := elementwise.Lookup(name)

				types := make([]string, len(op.Types))
				for i, t := range op.Types {
					types[i] = t.String()
				}
				attrs := make([]string, len(op.Attributes))
				for i, attr := range op.Attributes {
					attrs[i] = attr.Name + "=" + strconv.FormatFloat(attr.Default, 'g', -1, 64)
				}
				if len(attrs) == 0 {
					attrs = []string{"-"}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(types, ","), strings.Join(attrs, ","))
			}
			return w.Flush()
		},
	}
}
