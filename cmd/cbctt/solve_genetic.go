package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/russross/cbctt/internal/config"
	"github.com/russross/cbctt/internal/genetic"
	"github.com/russross/cbctt/internal/restart"
)

func newGeneticCommand() *cobra.Command {
	var input string
	var populationSize int
	var generations int
	var mutationRate float64
	var crossoverRate float64
	var tournamentSize int
	var seed int64
	var workers int
	var restartTime time.Duration

	cmd := &cobra.Command{
		Use:   "genetic",
		Short: "run the memetic genetic algorithm",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd, config.FlagBindings{
				"genetic.population_size": "population",
				"genetic.generations":     "generations",
				"genetic.mutation_rate":   "mutation-rate",
				"genetic.crossover_rate":  "crossover-rate",
				"genetic.tournament_size": "tournament",
				"seed":                    "seed",
				"restart.workers":         "workers",
				"restart.time":            "restart-time",
			})

			in := loadInstance(input)
			params := genetic.Params{
				PopulationSize: cfg.GAPopulationSize,
				MaxGenerations: cfg.GAGenerations,
				MutationRate:   cfg.GAMutationRate,
				CrossoverRate:  cfg.GACrossoverRate,
				TournamentSize: cfg.GATournamentSize,
				Seed:           cfg.Seed,
			}

			var sol genetic.Solution
			if cfg.RestartTime > 0 {
				result := restart.Pool(cfg.RestartWorkers, cfg.RestartTime, cfg.Seed, func(rng *rand.Rand) restart.Result[genetic.Solution] {
					trial := params
					trial.Seed = rng.Int63()
					s := genetic.Solve(in, trial)
					return restart.Result[genetic.Solution]{Value: s, Cost: s.Fitness}
				})
				sol = result.Value
			} else {
				sol = genetic.Solve(in, params)
			}

			in.RecordRun(sol.RunID, sol.Feasible, sol.Objective)
			log.Printf("run %s produced objective %.2f (feasible: %v)", sol.RunID, sol.Objective, sol.Feasible)
			report(in, sol.Assignments, sol.Feasible, sol.Violations)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "input.txt", "canonical text input file")
	cmd.Flags().IntVar(&populationSize, "population", 50, "population size")
	cmd.Flags().IntVar(&generations, "generations", 200, "maximum generations")
	cmd.Flags().Float64Var(&mutationRate, "mutation-rate", 0.1, "per-child mutation probability")
	cmd.Flags().Float64Var(&crossoverRate, "crossover-rate", 0.8, "crossover probability")
	cmd.Flags().IntVar(&tournamentSize, "tournament", 3, "tournament selection size")
	cmd.Flags().Int64Var(&seed, "seed", 1, "rng seed")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent restart workers (see --restart-time)")
	cmd.Flags().DurationVar(&restartTime, "restart-time", 0, "if > 0, run concurrent restarts for this long and keep the best")
	return cmd
}
