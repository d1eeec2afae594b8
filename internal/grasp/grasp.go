// Package grasp implements the greedy randomized adaptive search procedure:
// a randomized constructive phase restricted to a cost-based candidate
// list, followed by first-improvement local search.
package grasp

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/russross/cbctt/internal/domain"
	"github.com/russross/cbctt/internal/graphreduce"
	"github.com/russross/cbctt/internal/kernel"
)

// Solution is the outcome of a single solve call: the best assignment set
// found, whether it is hard-feasible, its objective, and a run id a caller
// can correlate against its own logs.
type Solution struct {
	RunID       uuid.UUID
	Assignments domain.AssignmentSet
	Feasible    bool
	Violations  []string
	Objective   float64
	Cost        float64 // lower is better; what the search itself optimizes
}

// Params tunes the search. Alpha of 0 is pure greedy (always pick the best
// candidate); Alpha of 1 is pure random among feasible candidates.
type Params struct {
	Alpha            float64
	MaxIterations    int
	MaxLocalIterations int
	Seed             int64
}

const infeasiblePenalty = 1000.0

// Solve runs up to params.MaxIterations GRASP iterations and returns the
// best solution found, ordered (feasible first, then lower cost).
func Solve(in *domain.Instance, params Params) Solution {
	rng := rand.New(rand.NewSource(params.Seed))
	sections := append([]*domain.CourseSection(nil), in.Sections()...)

	var best Solution
	haveBest := false

	for iter := 0; iter < params.MaxIterations; iter++ {
		assignments := construct(in, sections, params.Alpha, rng)

		feasible, violations := kernel.Check(in, assignments)
		if !feasible {
			assignments = kernel.Repair(in, assignments, rng)
			feasible, violations = kernel.Check(in, assignments)
		}

		if feasible {
			assignments = localSearch(in, assignments, params.MaxLocalIterations, rng)
			feasible, violations = kernel.Check(in, assignments)
		}

		sol := Solution{
			RunID:       uuid.New(),
			Assignments: assignments,
			Feasible:    feasible,
			Violations:  violations,
			Objective:   kernel.Objective(in, assignments),
		}
		sol.Cost = totalCost(sol)

		if !haveBest || better(sol, best) {
			best = sol
			haveBest = true
		}
	}

	return best
}

func better(a, b Solution) bool {
	if a.Feasible != b.Feasible {
		return a.Feasible
	}
	return a.Cost < b.Cost
}

func totalCost(sol Solution) float64 {
	cost := -sol.Objective
	cost += infeasiblePenalty * float64(len(sol.Violations))
	return cost
}

// construct builds one candidate solution: shuffle the sections, then for
// each in turn, score its currently-feasible candidates, build a
// restricted candidate list within alpha of the best cost, and pick
// uniformly from it.
func construct(in *domain.Instance, sections []*domain.CourseSection, alpha float64, rng *rand.Rand) domain.AssignmentSet {
	order := append([]*domain.CourseSection(nil), sections...)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	assignments := make(domain.AssignmentSet)
	for _, section := range order {
		cand, ok := pickCandidate(in, section, assignments, alpha, rng)
		if !ok {
			cand = randomTriple(in, section, rng)
		}
		assignments[section.ID] = cand
	}
	return assignments
}

type scoredCandidate struct {
	assignment domain.Assignment
	cost       float64
}

// pickCandidate scores every candidate feasible against the partial
// assignment, builds the RCL, and returns a uniformly-random member of it.
func pickCandidate(in *domain.Instance, section *domain.CourseSection, partial domain.AssignmentSet, alpha float64, rng *rand.Rand) (domain.Assignment, bool) {
	var feasible []scoredCandidate
	for _, c := range graphreduce.Candidates(in, section) {
		if !kernel.IsCandidateFeasible(in, section, c.Period, c.RoomID, c.TeacherID, partial) {
			continue
		}
		asn := domain.Assignment{SectionID: section.ID, Period: c.Period, RoomID: c.RoomID, TeacherID: c.TeacherID}
		feasible = append(feasible, scoredCandidate{assignment: asn, cost: candidateCost(in, section, asn)})
	}

	if len(feasible) == 0 {
		return domain.Assignment{}, tryShuffledScan(in, section, partial, rng)
	}

	costMin, costMax := feasible[0].cost, feasible[0].cost
	for _, c := range feasible {
		if c.cost < costMin {
			costMin = c.cost
		}
		if c.cost > costMax {
			costMax = c.cost
		}
	}
	threshold := costMin + alpha*(costMax-costMin)

	var rcl []scoredCandidate
	for _, c := range feasible {
		if c.cost <= threshold {
			rcl = append(rcl, c)
		}
	}
	return rcl[rng.Intn(len(rcl))].assignment, true
}

// tryShuffledScan falls back to a shuffled exhaustive scan when no
// candidate triple is feasible; used only to signal the caller a random
// placement is needed next.
func tryShuffledScan(in *domain.Instance, section *domain.CourseSection, partial domain.AssignmentSet, rng *rand.Rand) bool {
	candidates := graphreduce.Candidates(in, section)
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	for _, c := range candidates {
		if kernel.IsCandidateFeasible(in, section, c.Period, c.RoomID, c.TeacherID, partial) {
			return true
		}
	}
	return false
}

// candidateCost scores a candidate placement: +1 if the
// period isn't in the course's preferred set (when one exists, derived
// here from preferences naming this course and a period with no room or
// teacher attached), +0.5 * wasted-capacity fraction, minus the sum of
// matching preference values as a bonus.
func candidateCost(in *domain.Instance, section *domain.CourseSection, asn domain.Assignment) float64 {
	cost := 0.0

	if preferredPeriods := coursePreferredPeriods(in, section.CourseName); len(preferredPeriods) > 0 {
		if !preferredPeriods[asn.Period] {
			cost += 1
		}
	}

	if room, ok := in.Room(asn.RoomID); ok && room.Capacity > 0 {
		wasted := float64(room.Capacity-section.TotalStudents()) / float64(room.Capacity)
		cost += 0.5 * wasted
	}

	room, _ := in.Room(asn.RoomID)
	teacher, _ := in.Teacher(asn.TeacherID)
	roomName, teacherName := "", ""
	if room != nil {
		roomName = room.Name
	}
	if teacher != nil {
		teacherName = teacher.Name
	}
	cost -= kernel.MatchingPreferenceValue(in, section.CourseName, asn.Period, roomName, teacherName)

	return cost
}

// coursePreferredPeriods collects the periods named by a bare
// course-and-period preference (no room/teacher attached), which is what
// "the course's preferred set" means absent a more specific definition.
func coursePreferredPeriods(in *domain.Instance, courseName string) map[int]bool {
	out := make(map[int]bool)
	for _, p := range in.Preferences() {
		if p.CourseName == courseName && p.Period != nil && p.RoomName == nil && p.TeacherName == nil {
			out[*p.Period] = true
		}
	}
	return out
}

// randomTriple is the last-resort placement used when even a shuffled
// exhaustive scan finds nothing: a random period, a
// random room, and a random qualified teacher (falling back to any
// teacher), left for repair or scored as infeasible.
func randomTriple(in *domain.Instance, section *domain.CourseSection, rng *rand.Rand) domain.Assignment {
	periods := in.SortedPeriods()
	rooms := in.Rooms()
	teachers := in.QualifiedTeachers(section.CourseName)
	if len(teachers) == 0 {
		teachers = in.Teachers()
	}

	asn := domain.Assignment{SectionID: section.ID}
	if len(periods) > 0 {
		asn.Period = periods[rng.Intn(len(periods))]
	}
	if len(rooms) > 0 {
		asn.RoomID = rooms[rng.Intn(len(rooms))].ID
	}
	if len(teachers) > 0 {
		asn.TeacherID = teachers[rng.Intn(len(teachers))].ID
	}
	return asn
}
