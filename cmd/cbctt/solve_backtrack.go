package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/russross/cbctt/internal/backtrack"
	"github.com/russross/cbctt/internal/config"
	"github.com/russross/cbctt/internal/kernel"
)

func newBacktrackCommand() *cobra.Command {
	var input string
	var timeLimit time.Duration

	cmd := &cobra.Command{
		Use:   "backtrack",
		Short: "run the exact depth-first, fail-first backtracking solver",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd, config.FlagBindings{"backtrack.time_limit": "time"})
			in := loadInstance(input)
			result := backtrack.Solve(in, cfg.BacktrackTimeLimit)

			if !result.Found {
				fatalf("no feasible schedule found within %v", result.Elapsed)
			}

			feasible, violations := kernel.Check(in, result.Assignments)
			report(in, result.Assignments, feasible, violations)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "input.txt", "canonical text input file")
	cmd.Flags().DurationVarP(&timeLimit, "time", "t", 10*time.Second, "search time limit")
	return cmd
}
