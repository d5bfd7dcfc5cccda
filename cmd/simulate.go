package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/bracket-cli/internal/model"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <year> [year...]",
	Short: "Simulate one or more tournament brackets",
	Long:  "Runs the full bracket simulation for each given year: play-in, then every round in order, predicting each matchup until a champion emerges. Results are persisted as runs.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		years := make([]int, len(args))
		for i, arg := range args {
			year, err := strconv.Atoi(arg)
			if err != nil {
				return eris.Errorf("invalid year %q", arg)
			}
			years[i] = year
		}

		env, err := initSimulator(ctx, "simulate")
		if err != nil {
			return err
		}
		defer env.Close()

		// Years are independent; simulate them in parallel up to the
		// configured bound. A failed year does not cancel its siblings.
		var mu sync.Mutex
		results := make(map[int]*model.RunResult, len(years))
		failures := make(map[int]error)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Sim.MaxConcurrentYears)
		for _, year := range years {
			g.Go(func() error {
				result, runErr := env.Sim.Run(gctx, year)
				mu.Lock()
				defer mu.Unlock()
				if runErr != nil {
					failures[year] = runErr
					zap.L().Error("simulation failed", zap.Int("year", year), zap.Error(runErr))
					return nil
				}
				results[year] = result
				return nil
			})
		}
		_ = g.Wait()

		formatSimResults(os.Stdout, years, results, failures)

		if len(failures) > 0 {
			return eris.Errorf("%d of %d years failed", len(failures), len(years))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

// formatSimResults writes a per-year summary table to out.
func formatSimResults(out io.Writer, years []int, results map[int]*model.RunResult, failures map[int]error) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "YEAR\tCHAMPION\tMATCHUPS\tUPSETS")
	_, _ = fmt.Fprintln(w, "----\t--------\t--------\t------")
	for _, year := range years {
		if err, ok := failures[year]; ok {
			_, _ = fmt.Fprintf(w, "%d\tFAILED: %s\t\t\n", year, err)
			continue
		}
		r := results[year]
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", year, r.Champion, r.Matchups, r.Upsets)
	}
	_ = w.Flush()
}
