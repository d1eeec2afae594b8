// Command cbctt is the CLI collaborator for the timetabling core: it
// parses the canonical text format, runs one of the four solvers, and
// prints the resulting assignments as plain text or, with --json, a single
// JSON document.
package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
)

// configPath is shared by every "solve" subcommand via a persistent flag.
var configPath string

func main() {
	rand.Seed(time.Now().UnixNano())
	log.SetFlags(log.Ltime)

	root := &cobra.Command{
		Use:   "cbctt",
		Short: "Curriculum-based course timetabling solver",
		Long:  "cbctt builds course schedules from curriculums, rooms, teachers, and preferences\nusing backtracking, graph coloring, GRASP, or a memetic genetic algorithm.",
	}

	solve := &cobra.Command{
		Use:   "solve",
		Short: "run one of the timetabling solvers against an input file",
	}
	solve.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML file of solver parameters")
	solve.PersistentFlags().BoolVar(&asJSON, "json", false, "print the result as one JSON document instead of plain text")
	solve.AddCommand(newBacktrackCommand())
	solve.AddCommand(newColoringCommand())
	solve.AddCommand(newGraspCommand())
	solve.AddCommand(newGeneticCommand())
	root.AddCommand(solve)

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
