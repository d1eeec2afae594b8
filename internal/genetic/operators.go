package genetic

import (
	"math/rand"
	"sort"

	"github.com/russross/cbctt/internal/domain"
	"github.com/russross/cbctt/internal/graphreduce"
	"github.com/russross/cbctt/internal/kernel"
)

// sortedSectionIDs gives a deterministic iteration order over an
// assignment set's keys, so a fixed seed always lands on the same section.
func sortedSectionIDs(a domain.AssignmentSet) []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// initializePopulation builds n individuals: for every section, shuffled
// (period, room, teacher) triples are tried in turn and the first feasible
// one against the partial individual is kept; on exhaustion a random value
// is used, to be repaired later.
func initializePopulation(in *domain.Instance, sections []int, n int, rng *rand.Rand) []individual {
	pop := make([]individual, n)
	for i := 0; i < n; i++ {
		pop[i] = individual{assignments: buildRandomIndividual(in, sections, rng)}
	}
	return pop
}

func buildRandomIndividual(in *domain.Instance, sections []int, rng *rand.Rand) domain.AssignmentSet {
	assignments := make(domain.AssignmentSet, len(sections))
	for _, sectionID := range sections {
		section, ok := in.Section(sectionID)
		if !ok {
			continue
		}

		candidates := graphreduce.Candidates(in, section)
		rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

		placed := false
		for _, c := range candidates {
			if kernel.IsCandidateFeasible(in, section, c.Period, c.RoomID, c.TeacherID, assignments) {
				assignments[sectionID] = domain.Assignment{SectionID: sectionID, Period: c.Period, RoomID: c.RoomID, TeacherID: c.TeacherID}
				placed = true
				break
			}
		}
		if !placed {
			assignments[sectionID] = randomAssignment(in, section, rng)
		}
	}
	return assignments
}

func randomAssignment(in *domain.Instance, section *domain.CourseSection, rng *rand.Rand) domain.Assignment {
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

// crossover performs single-point crossover on the ordered list of
// sections: child1 inherits a prefix from parent1 and a suffix from
// parent2; child2 is the symmetric combination.
func crossover(p1, p2 domain.AssignmentSet, sections []int, rng *rand.Rand) (domain.AssignmentSet, domain.AssignmentSet) {
	if len(sections) < 2 {
		return p1.Clone(), p2.Clone()
	}
	point := 1 + rng.Intn(len(sections)-1)

	c1 := make(domain.AssignmentSet, len(sections))
	c2 := make(domain.AssignmentSet, len(sections))
	for i, id := range sections {
		if i < point {
			c1[id] = p1[id]
			c2[id] = p2[id]
		} else {
			c1[id] = p2[id]
			c2[id] = p1[id]
		}
	}
	return c1, c2
}

// mutate picks a random section and replaces one of its three fields with
// a random admissible value.
func mutate(in *domain.Instance, a domain.AssignmentSet, rate float64, rng *rand.Rand) {
	if rng.Float64() >= rate || len(a) == 0 {
		return
	}

	ids := sortedSectionIDs(a)
	sectionID := ids[rng.Intn(len(ids))]
	section, ok := in.Section(sectionID)
	if !ok {
		return
	}

	asn := a[sectionID]
	switch rng.Intn(3) {
	case 0:
		periods := in.SortedPeriods()
		if len(periods) > 0 {
			asn.Period = periods[rng.Intn(len(periods))]
		}
	case 1:
		rooms := in.Rooms()
		if len(rooms) > 0 {
			asn.RoomID = rooms[rng.Intn(len(rooms))].ID
		}
	default:
		teachers := in.QualifiedTeachers(section.CourseName)
		if len(teachers) == 0 {
			teachers = in.Teachers()
		}
		if len(teachers) > 0 {
			asn.TeacherID = teachers[rng.Intn(len(teachers))].ID
		}
	}
	a[sectionID] = asn
}

// hillClimb is the per-individual memetic local search: for up to
// hillClimbMaxSteps iterations, find a conflicting
// section if any, else a section whose period isn't preferred; try up to
// hillClimbTrialsPerStep random 1-moves and keep the first strictly
// improving one, otherwise revert.
func hillClimb(in *domain.Instance, a domain.AssignmentSet, rng *rand.Rand) domain.AssignmentSet {
	current := a
	currentFitness := fitness(in, current)

	for step := 0; step < hillClimbMaxSteps; step++ {
		sectionID, ok := targetSection(in, current, rng)
		if !ok {
			break
		}
		section, ok := in.Section(sectionID)
		if !ok {
			continue
		}

		improved := false
		for t := 0; t < hillClimbTrialsPerStep; t++ {
			trial := current.Clone()
			asn := current[sectionID]
			move := randomAssignment(in, section, rng)
			switch rng.Intn(3) {
			case 0:
				asn.Period = move.Period
			case 1:
				asn.RoomID = move.RoomID
			default:
				asn.TeacherID = move.TeacherID
			}
			trial[sectionID] = asn
			trialFitness := fitness(in, trial)
			if trialFitness < currentFitness {
				current, currentFitness = trial, trialFitness
				improved = true
				break
			}
		}
		if !improved {
			continue
		}
	}
	return current
}

// targetSection finds a section involved in a hard-constraint violation if
// one exists, else one whose period isn't in its course's preferred set.
func targetSection(in *domain.Instance, a domain.AssignmentSet, rng *rand.Rand) (int, bool) {
	ids := sortedSectionIDs(a)
	for _, sectionID := range ids {
		asn := a[sectionID]
		others := withoutSection(a, sectionID)
		section, ok := in.Section(sectionID)
		if !ok {
			continue
		}
		if !kernel.IsCandidateFeasible(in, section, asn.Period, asn.RoomID, asn.TeacherID, others) {
			return sectionID, true
		}
	}

	var candidates []int
	for _, sectionID := range ids {
		asn := a[sectionID]
		section, ok := in.Section(sectionID)
		if !ok {
			continue
		}
		preferred := coursePreferredPeriods(in, section.CourseName)
		if len(preferred) > 0 && !preferred[asn.Period] {
			candidates = append(candidates, sectionID)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

func coursePreferredPeriods(in *domain.Instance, courseName string) map[int]bool {
	out := make(map[int]bool)
	for _, p := range in.Preferences() {
		if p.CourseName == courseName && p.Period != nil && p.RoomName == nil && p.TeacherName == nil {
			out[*p.Period] = true
		}
	}
	return out
}

func withoutSection(a domain.AssignmentSet, sectionID int) domain.AssignmentSet {
	out := make(domain.AssignmentSet, len(a))
	for id, asn := range a {
		if id == sectionID {
			continue
		}
		out[id] = asn
	}
	return out
}
