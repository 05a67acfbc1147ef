// Command wgslgen generates, inspects and validates the WGSL compute
// programs produced by gpuprogram operator kernels.
//
//	wgslgen ops
//	wgslgen key Sigmoid --type f16 --shape 8,128
//	wgslgen gen LeakyRelu --shape 1000 --attr alpha=0.2 --layout
package main

import (
	"fmt"
	"os"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
