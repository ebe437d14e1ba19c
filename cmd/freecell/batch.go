package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/freecell"
	"github.com/pdrpinto/search/internal/solver"
	"github.com/pdrpinto/search/observability"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		flags   searchFlags
		from    uint32
		to      uint32
		workers int
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:     "batch",
		Short:   "Solve a range of deals in parallel",
		Example: `  freecell batch --from 1 --to 100 --workers 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			if to < from {
				return fmt.Errorf("--to (%d) is before --from (%d)", to, from)
			}

			initials := make([]freecell.State, 0, to-from+1)
			for number := from; ; number++ {
				state, err := freecell.Deal(number, cfg.Layout)
				if err != nil {
					return err
				}
				initials = append(initials, state)
				if number == to {
					break
				}
			}

			service := solver.New(cfg, solver.WithLogger(a.logger))
			strategy, err := service.Strategy(solver.Request{})
			if err != nil {
				return err
			}
			var solverToRun search.Solver[freecell.State, freecell.Action] = strategy
			if timeout > 0 {
				solverToRun = timeoutSolver{Solver: strategy, timeout: timeout}
			}

			results, err := search.SolveAll(cmd.Context(), solverToRun, initials, cfg.SearchOptions()...)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DEAL\tOUTCOME\tMOVES\tEXPANDED\tELAPSED")
			solved := 0
			for _, r := range results {
				outcome := observability.Outcome(r.Result.Found, r.Err)
				if r.Result.Found {
					solved++
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
					from+uint32(r.Index), outcome, len(r.Result.Actions), r.Result.Expanded, r.Result.Elapsed.Round(time.Millisecond))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d deals solved with %s\n", solved, len(results), strategy.Kind())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Uint32Var(&from, "from", 1, "first deal number")
	cmd.Flags().Uint32Var(&to, "to", 10, "last deal number")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "deals solved in parallel, 0 for one per CPU")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up on a single deal after this long")
	return cmd
}

// timeoutSolver bounds every search with its own deadline.
type timeoutSolver struct {
	search.Solver[freecell.State, freecell.Action]
	timeout time.Duration
}

func (s timeoutSolver) Solve(ctx context.Context, initial freecell.State) (search.Result[freecell.State, freecell.Action], error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.Solver.Solve(ctx, initial)
}
