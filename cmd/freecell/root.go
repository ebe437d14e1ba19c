package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/search/config"
	"github.com/pdrpinto/search/internal/logging"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		configPath string
		logLevel   string
	)
	root := &cobra.Command{
		Use:           "freecell",
		Short:         "Solve FreeCell deals with classic state-space search",
		Long:          `freecell searches for FreeCell solutions with breadth-first, depth-limited depth-first or best-first search.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(
		newSolveCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// searchFlags are shared by solve and batch. Unchanged flags keep the
// configured values.
type searchFlags struct {
	strategy string
	depth    int
	memory   string
	reopen   bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "breadth-first (bfs), depth-first (dfs) or best-first (astar)")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "depth-first limit on solution length, negative for none")
	cmd.Flags().StringVar(&f.memory, "memory", "", "memory limit such as 512MiB, 0 disables the governor")
	cmd.Flags().BoolVar(&f.reopen, "reopen", false, "let best-first search reopen states reached by a shorter path")
}

func (f *searchFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if flags.Changed("depth") {
		cfg.DepthLimit = f.depth
	}
	if flags.Changed("memory") {
		size, err := config.ParseByteSize(f.memory)
		if err != nil {
			return err
		}
		cfg.MemoryLimit = size
	}
	if flags.Changed("reopen") {
		cfg.Reopen = f.reopen
	}
	return cfg.Validate()
}
