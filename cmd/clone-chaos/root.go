package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/clone-chaos/config"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "0.1.0"

type options struct {
	configPath string
	seed       uint64
	noAudio    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "clone-chaos",
		Short:         "Terminal time-loop puzzle: your past selves help you escape",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is ./config.yaml)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for clone randomness (0 picks one)")
	cmd.Flags().BoolVar(&opts.noAudio, "no-audio", false, "disable sound")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads file and env settings, then applies flags that were set explicitly
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Game.Seed = opts.seed
	}
	if opts.noAudio {
		cfg.Audio.Enabled = false
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clone-chaos %s\n", Version)
		},
	}
}
