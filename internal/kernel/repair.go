package kernel

import (
	"math/rand"

	"github.com/russross/cbctt/internal/domain"
)

// Repair is an iterative fixpoint: for every assignment that fails
// IsCandidateFeasible against the others, try shuffled (period, room,
// qualified teacher) triples and replace with the first feasible one
// found; repeat the full scan until a pass makes no change. It is capped
// at maxPasses = len(sections) * 4 so a non-converging instance surfaces
// its residual infeasibility as violations instead of looping forever.
func Repair(in *domain.Instance, a domain.AssignmentSet, rng *rand.Rand) domain.AssignmentSet {
	working := a.Clone()
	sections := in.Sections()
	maxPasses := len(sections) * 4
	if maxPasses == 0 {
		maxPasses = 1
	}

	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, section := range sections {
			asn, ok := working[section.ID]
			if !ok {
				continue
			}
			others := withoutSection(working, section.ID)
			if IsCandidateFeasible(in, section, asn.Period, asn.RoomID, asn.TeacherID, others) {
				continue
			}

			if replacement, found := findFeasibleReplacement(in, section, others, rng); found {
				working[section.ID] = replacement
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return working
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

// findFeasibleReplacement tries shuffled (period, room, qualified teacher)
// triples for section and returns the first one feasible against others.
func findFeasibleReplacement(in *domain.Instance, section *domain.CourseSection, others domain.AssignmentSet, rng *rand.Rand) (domain.Assignment, bool) {
	periods := in.SortedPeriods()
	rooms := in.Rooms()
	teachers := in.QualifiedTeachers(section.CourseName)
	if len(teachers) == 0 {
		teachers = in.Teachers()
	}

	rng.Shuffle(len(periods), func(i, j int) { periods[i], periods[j] = periods[j], periods[i] })
	rng.Shuffle(len(rooms), func(i, j int) { rooms[i], rooms[j] = rooms[j], rooms[i] })
	rng.Shuffle(len(teachers), func(i, j int) { teachers[i], teachers[j] = teachers[j], teachers[i] })

	for _, period := range periods {
		for _, room := range rooms {
			for _, teacher := range teachers {
				if IsCandidateFeasible(in, section, period, room.ID, teacher.ID, others) {
					return domain.Assignment{
						SectionID: section.ID,
						Period:    period,
						RoomID:    room.ID,
						TeacherID: teacher.ID,
					}, true
				}
			}
		}
	}
	return domain.Assignment{}, false
}
