package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/search/freecell"
	"github.com/pdrpinto/search/internal/solver"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		flags   searchFlags
		deal    uint32
		file    string
		trace   int
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one deal or a position read from a file",
		Example: `  freecell solve --deal 1
  freecell solve --file position.txt --strategy bfs
  freecell solve --deal 617 --strategy dfs --depth 120 --trace 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			state, err := loadPosition(cmd, deal, file, cfg.Layout)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			profile := termenv.NewOutput(out).Profile
			if noColor {
				profile = termenv.Ascii
			}
			if err := freecell.Render(out, state, profile); err != nil {
				return err
			}

			cache, err := solver.OpenStore(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			if cache != nil {
				defer cache.Close()
			}
			service := solver.New(cfg, solver.WithStore(cache), solver.WithLogger(a.logger))

			if trace > 0 {
				return runTrace(cmd, service, state, trace, profile)
			}

			solution, err := service.Solve(cmd.Context(), state, solver.Request{})
			if err != nil {
				return err
			}
			record := solution.Record
			fmt.Fprintf(out, "\nsolved with %s in %d moves", record.Strategy, len(record.Moves))
			if solution.Cached {
				fmt.Fprintln(out, " (cached)")
			} else {
				fmt.Fprintf(out, ", %d states expanded, %d discovered, %s\n", record.Expanded, record.Discovered, record.Elapsed)
			}
			return freecell.RenderSolution(out, record.Moves, profile)
		},
	}
	flags.register(cmd)
	cmd.Flags().Uint32VarP(&deal, "deal", "d", 0, "Microsoft deal number")
	cmd.Flags().StringVarP(&file, "file", "f", "", "position file, - for stdin")
	cmd.Flags().IntVar(&trace, "trace", 0, "print every n-th iteration of the search")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.MarkFlagsMutuallyExclusive("deal", "file")
	cmd.MarkFlagsOneRequired("deal", "file")
	return cmd
}

func loadPosition(cmd *cobra.Command, deal uint32, file string, layout freecell.Layout) (freecell.State, error) {
	if !cmd.Flags().Changed("file") {
		return freecell.Deal(deal, layout)
	}
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return freecell.State{}, err
		}
		defer f.Close()
		r = f
	}
	return freecell.Parse(r)
}

// runTrace drives the search iteration by iteration, printing a progress line
// every n iterations and the final snapshot.
func runTrace(cmd *cobra.Command, service *solver.Service, state freecell.State, n int, profile termenv.Profile) error {
	strategy, err := service.Strategy(solver.Request{})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	stepper := strategy.Stepper(cmd.Context(), state)
	for {
		snapshot, err := stepper.Step()
		if snapshot.StepIndex%n == 0 || snapshot.Done {
			fmt.Fprintf(out, "step %d: frontier %d, discovered %d, %d cards left\n",
				snapshot.StepIndex, len(snapshot.Frontier), snapshot.Discovered, snapshot.Current.CardsLeft())
		}
		if err != nil {
			return err
		}
		if snapshot.Found {
			fmt.Fprintf(out, "\nsolved with %s in %d moves\n", strategy.Kind(), len(snapshot.Actions))
			return freecell.RenderSolution(out, snapshot.Actions, profile)
		}
	}
}
