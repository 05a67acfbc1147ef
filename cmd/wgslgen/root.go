package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/internal/config"
)

// app carries state shared by subcommands after the root pre-run.
type app struct {
	configPath string
	backend    string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "wgslgen",
		Short: "Generate and validate GPU compute programs",
		Long: `wgslgen builds the WGSL compute programs of gpuprogram operator kernels.
It prints cache keys, generated shader source and uniform buffer layouts, and
compiles programs through the selected backend to validate them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./wgslgen.yaml)")
	flags.StringVar(&a.backend, "backend", "", "backend: auto, native, vulkan or null (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newOpsCmd())
	rootCmd.AddCommand(newKeyCmd(a))
	rootCmd.AddCommand(newGenCmd(a))
	return rootCmd
}

// load reads the configuration, applies flag overrides and installs the
// library logger.
func (a *app) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	gpuprogram.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	a.cfg = cfg
	return nil
}
