package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/backend"
	nativebackend "github.com/gogpu/gpuprogram/backend/native"
	"github.com/gogpu/gpuprogram/kernels/elementwise"
	"github.com/gogpu/gpuprogram/pipeline"
)

func newGenCmd(a *app) *cobra.Command {
	var (
		pf     programFlags
		layout bool
	)

	cmd := &cobra.Command{
		Use:   "gen OP",
		Short: "Generate and compile the WGSL of an operator invocation",
		Long: `Generate the WGSL compute program of an operator invocation and compile it
through the configured backend. The native backend validates the shader with
naga; the null backend skips compilation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := pf.descriptor(args[0])
			if err != nil {
				return err
			}

			dev, name, err := openDevice(a.cfg)
			if err != nil {
				return err
			}
			defer backend.Release(dev)

			c, err := pipeline.NewCache(dev, pipeline.WithLabel(a.cfg.Cache.Label))
			if err != nil {
				return err
			}
			defer c.DestroyAll()

			op, _ := elementwise.Lookup(args[0])
			disp, err := c.Prepare(d, op.Generator())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if layout {
				writeLayout(out, name, disp)
			}
			fmt.Fprint(out, disp.Artifact.Source)

			if nd, ok := dev.(*nativebackend.Device); ok {
				st := nd.CompilerStats()
				gpuprogram.Logger().Info("wgslgen: compiled", "backend", name, "spirvModules", st.Len)
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&layout, "layout", false, "prefix the source with key, dispatch and uniform layout comments")
	return cmd
}

// writeLayout prints the artifact summary as WGSL line comments so the
// output stays a valid shader.
func writeLayout(w io.Writer, backendName string, d *pipeline.Dispatch) {
	art := d.Artifact
	fmt.Fprintf(w, "// key: %s\n", art.Key)
	fmt.Fprintf(w, "// backend: %s\n", backendName)
	fmt.Fprintf(w, "// workgroup size: %v, dispatch: %v\n", art.WorkgroupSize, d.Groups)
	for _, b := range art.Bindings {
		fmt.Fprintf(w, "// binding %d: %s", b.Binding, b.Type)
		if b.MinBindingSize > 0 {
			fmt.Fprintf(w, " (%d bytes)", b.MinBindingSize)
		}
		fmt.Fprintln(w)
	}
	for i, u := range art.Layout.Uniforms {
		fmt.Fprintf(w, "// uniform %d: %d x %s at offset %d, %d bytes\n", i, u.Len, u.Type, u.Offset, u.Size)
	}
	fmt.Fprintf(w, "// uniform buffer: %d bytes\n", art.Layout.TotalSize)
	fmt.Fprintln(w)
}
