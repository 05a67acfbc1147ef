package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuprogram"
)

func newKeyCmd(a *app) *cobra.Command {
	var pf programFlags

	cmd := &cobra.Command{
		Use:   "key OP",
		Short: "Print the cache key of an operator invocation",
		Long: `Print the pipeline cache key an operator invocation is stored under.
Invocations with equal keys share one compiled program.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := pf.descriptor(args[0])
			if err != nil {
				return err
			}

			groups := d.DispatchSize()
			norm, err := gpuprogram.NormalizeDispatch(groups[0], groups[1], groups[2],
				a.cfg.Capabilities().MaxComputeWorkgroupsPerDimension)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), gpuprogram.CacheKey(d, norm[1] == 1 && norm[2] == 1))
			return nil
		},
	}
	pf.register(cmd)
	return cmd
}
