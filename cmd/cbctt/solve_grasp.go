package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/russross/cbctt/internal/config"
	"github.com/russross/cbctt/internal/grasp"
	"github.com/russross/cbctt/internal/restart"
)

func newGraspCommand() *cobra.Command {
	var input string
	var alpha float64
	var maxIterations int
	var maxLocalIterations int
	var seed int64
	var workers int
	var restartTime time.Duration

	cmd := &cobra.Command{
		Use:   "grasp",
		Short: "run the greedy randomized adaptive search procedure",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd, config.FlagBindings{
				"grasp.alpha":                "alpha",
				"grasp.max_iterations":       "iterations",
				"grasp.max_local_iterations": "local-iterations",
				"seed":                       "seed",
				"restart.workers":            "workers",
				"restart.time":               "restart-time",
			})

			in := loadInstance(input)
			params := grasp.Params{
				Alpha:              cfg.GraspAlpha,
				MaxIterations:      cfg.GraspMaxIterations,
				MaxLocalIterations: cfg.GraspMaxLocalIterations,
				Seed:               cfg.Seed,
			}

			var sol grasp.Solution
			if cfg.RestartTime > 0 {
				result := restart.Pool(cfg.RestartWorkers, cfg.RestartTime, cfg.Seed, func(rng *rand.Rand) restart.Result[grasp.Solution] {
					trial := params
					trial.Seed = rng.Int63()
					s := grasp.Solve(in, trial)
					return restart.Result[grasp.Solution]{Value: s, Cost: s.Cost}
				})
				sol = result.Value
			} else {
				sol = grasp.Solve(in, params)
			}

			in.RecordRun(sol.RunID, sol.Feasible, sol.Objective)
			log.Printf("run %s produced objective %.2f (feasible: %v)", sol.RunID, sol.Objective, sol.Feasible)
			report(in, sol.Assignments, sol.Feasible, sol.Violations)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "input.txt", "canonical text input file")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.3, "RCL threshold, 0=greedy, 1=random")
	cmd.Flags().IntVar(&maxIterations, "iterations", 100, "construction/local-search restarts")
	cmd.Flags().IntVar(&maxLocalIterations, "local-iterations", 50, "local search iterations per restart")
	cmd.Flags().Int64Var(&seed, "seed", 1, "rng seed")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent restart workers (see --restart-time)")
	cmd.Flags().DurationVar(&restartTime, "restart-time", 0, "if > 0, run concurrent restarts for this long and keep the best")
	return cmd
}
