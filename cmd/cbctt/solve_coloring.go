package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	gonumgraph "gonum.org/v1/gonum/graph"

	"github.com/russross/cbctt/internal/coloring"
	"github.com/russross/cbctt/internal/colordriver"
	"github.com/russross/cbctt/internal/config"
	"github.com/russross/cbctt/internal/graphreduce"
	"github.com/russross/cbctt/internal/kernel"
)

func newColoringCommand() *cobra.Command {
	var input string
	var heuristic string
	var seed int64

	cmd := &cobra.Command{
		Use:   "coloring",
		Short: "build the conflict graph and color it with greedy, dsatur, or rlf",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd, config.FlagBindings{"seed": "seed"})
			in := loadInstance(input)
			g := graphreduce.Build(in)
			rng := rand.New(rand.NewSource(cfg.Seed))

			nodes := make([]gonumgraph.Node, len(g.Sections))
			for i, v := range g.Sections {
				nodes[i] = v
			}

			var colors coloring.Coloring
			switch heuristic {
			case "greedy":
				colors = coloring.Greedy(g.G, nodes, rng)
			case "dsatur":
				colors = coloring.Dsatur(g.G, nodes, rng)
			case "rlf":
				colors = coloring.RLF(g.G, nodes, rng)
			default:
				fatalf("unknown heuristic %q (want greedy, dsatur, or rlf)", heuristic)
				return
			}

			result := colordriver.Apply(in, g, colors)
			feasible, violations := kernel.Check(in, result.Assignments)
			if !asJSON {
				for _, u := range result.Unplaced {
					fmt.Printf("unplaced: %s\n", u)
				}
			} else {
				violations = append(append([]string(nil), violations...), result.Unplaced...)
			}
			report(in, result.Assignments, feasible, violations)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "input.txt", "canonical text input file")
	cmd.Flags().StringVarP(&heuristic, "heuristic", "H", "dsatur", "coloring heuristic: greedy, dsatur, or rlf")
	cmd.Flags().Int64Var(&seed, "seed", 1, "rng seed")
	return cmd
}
