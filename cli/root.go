package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sliverarmory/tether"
	"github.com/sliverarmory/tether/config"
)

type app struct {
	configPath string
	cache      bool
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
	// platformOpts is prepended to every resolver's options.
	platformOpts []tether.Option
}

func newRootCmd(platformOpts ...tether.Option) *cobra.Command {
	a := &app{
		cfg:          config.Default(),
		logger:       zap.NewNop(),
		platformOpts: platformOpts,
	}

	rootCmd := &cobra.Command{
		Use:          "tether",
		Short:        "Resolve exports of genuine system libraries by absolute path",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a tether TOML config file")
	rootCmd.PersistentFlags().BoolVar(&a.cache, "cache", false, "Cache loaded libraries and resolved exports")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log resolver activity to stderr")

	rootCmd.AddCommand(
		newResolveCmd(a),
		newProbeCmd(a),
		newBindingsCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if cmd.Flags().Changed("cache") {
		a.cfg.Cache = a.cache
	}

	if a.verbose {
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{"stderr"}
		logger, err := zc.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		a.logger = logger
		return nil
	}
	logger, err := a.cfg.Logger()
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) resolver() *tether.Resolver {
	opts := append([]tether.Option{}, a.platformOpts...)
	opts = append(opts, tether.WithLogger(a.logger))
	if a.cfg.Cache {
		opts = append(opts, tether.WithCache())
	}
	return tether.New(opts...)
}
