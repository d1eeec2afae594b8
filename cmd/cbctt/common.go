package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/russross/cbctt/internal/config"
	"github.com/russross/cbctt/internal/domain"
	"github.com/russross/cbctt/internal/kernel"
	"github.com/russross/cbctt/internal/textfmt"
)

// asJSON is shared by every "solve" subcommand via a persistent flag: when
// set, results are printed as one JSON document instead of plain text
// lines.
var asJSON bool

// loadConfig merges configPath (the persistent --config flag) with the
// issuing subcommand's own flags, per bindings, into a solver Config.
func loadConfig(cmd *cobra.Command, bindings config.FlagBindings) *config.Config {
	cfg, err := config.Load(configPath, cmd.Flags(), bindings)
	if err != nil {
		fatalf("loading config: %v", err)
	}
	return cfg
}

func loadInstance(path string) *domain.Instance {
	fp, err := os.Open(path)
	if err != nil {
		fatalf("opening %s: %v", path, err)
	}
	defer fp.Close()

	in := domain.NewInstance()
	if err := textfmt.Load(in, fp); err != nil {
		fatalf("parsing %s: %v", path, err)
	}
	if err := in.CreateCourseSections(); err != nil {
		fatalf("creating sections: %v", err)
	}
	return in
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// printAssignments writes one line per section, ordered by section id:
// "section <id> (<course> #<index>): period <p> room <room> teacher <teacher>".
func printAssignments(in *domain.Instance, assignments domain.AssignmentSet) {
	ids := make([]int, 0, len(assignments))
	for id := range assignments {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		asn := assignments[id]
		section, _ := in.Section(id)
		roomName, teacherName := "?", "?"
		if room, ok := in.Room(asn.RoomID); ok {
			roomName = room.Name
		}
		if teacher, ok := in.Teacher(asn.TeacherID); ok {
			teacherName = teacher.Name
		}
		fmt.Printf("section %d (%s #%d): period %d room %s teacher %s\n",
			id, section.CourseName, section.SectionIndex, asn.Period, roomName, teacherName)
	}
}

func printDiagnostics(in *domain.Instance, assignments domain.AssignmentSet, feasible bool, violations []string) {
	fmt.Printf("feasible: %v\n", feasible)
	for _, v := range violations {
		fmt.Printf("  violation: %s\n", v)
	}
	fmt.Printf("objective: %.2f\n", kernel.Objective(in, assignments))
}

// report prints a solver's outcome in whichever format --json selected,
// replacing the separate printAssignments/printDiagnostics pair with a
// single JSON document when asJSON is set.
func report(in *domain.Instance, assignments domain.AssignmentSet, feasible bool, violations []string) {
	if asJSON {
		if err := textfmt.WriteJSON(os.Stdout, in, assignments, feasible, violations, kernel.Objective(in, assignments)); err != nil {
			fatalf("writing JSON output: %v", err)
		}
		return
	}
	printAssignments(in, assignments)
	printDiagnostics(in, assignments, feasible, violations)
}
