package grasp

import (
	"math/rand"

	"github.com/russross/cbctt/internal/domain"
	"github.com/russross/cbctt/internal/kernel"
)

const maxSwapSampleSize = 20

// localSearch iterates 1-move and swap neighborhoods, accepting the first
// strictly improving neighbor found, until no improvement is found in a
// full pass or maxIterations is exhausted.
func localSearch(in *domain.Instance, assignments domain.AssignmentSet, maxIterations int, rng *rand.Rand) domain.AssignmentSet {
	current := assignments.Clone()
	currentCost := solutionCost(in, current)

	for iter := 0; iter < maxIterations; iter++ {
		neighbor, cost, improved := firstImprovingOneMove(in, current, currentCost, rng)
		if !improved {
			neighbor, cost, improved = firstImprovingSwap(in, current, currentCost, rng)
		}
		if !improved {
			break
		}
		current, currentCost = neighbor, cost
	}
	return current
}

func solutionCost(in *domain.Instance, a domain.AssignmentSet) float64 {
	_, violations := kernel.Check(in, a)
	return -kernel.Objective(in, a) + infeasiblePenalty*float64(len(violations))
}

// firstImprovingOneMove tries replacing exactly one of {period, room,
// teacher} of one section with every other admissible value, in a
// deterministic-but-shuffled order, and accepts the first strictly
// improving change.
func firstImprovingOneMove(in *domain.Instance, current domain.AssignmentSet, currentCost float64, rng *rand.Rand) (domain.AssignmentSet, float64, bool) {
	sectionIDs := shuffledSectionIDs(in, rng)

	for _, sectionID := range sectionIDs {
		section, ok := in.Section(sectionID)
		if !ok {
			continue
		}
		asn := current[sectionID]

		for _, field := range shuffledFields(rng) {
			candidateValues := admissibleValues(in, section, field)
			rng.Shuffle(len(candidateValues), func(i, j int) { candidateValues[i], candidateValues[j] = candidateValues[j], candidateValues[i] })

			for _, v := range candidateValues {
				trial := current.Clone()
				trial[sectionID] = applyField(asn, field, v)
				cost := solutionCost(in, trial)
				if cost < currentCost {
					return trial, cost, true
				}
			}
		}
	}
	return nil, 0, false
}

// firstImprovingSwap exchanges the period, or the room, between two
// sections drawn from a sampled subset of up to maxSwapSampleSize sections.
func firstImprovingSwap(in *domain.Instance, current domain.AssignmentSet, currentCost float64, rng *rand.Rand) (domain.AssignmentSet, float64, bool) {
	sectionIDs := shuffledSectionIDs(in, rng)
	if len(sectionIDs) > maxSwapSampleSize {
		sectionIDs = sectionIDs[:maxSwapSampleSize]
	}

	for i := 0; i < len(sectionIDs); i++ {
		for j := i + 1; j < len(sectionIDs); j++ {
			a, b := sectionIDs[i], sectionIDs[j]
			for _, swapPeriod := range []bool{true, false} {
				trial := current.Clone()
				asnA, asnB := trial[a], trial[b]
				if swapPeriod {
					asnA.Period, asnB.Period = asnB.Period, asnA.Period
				} else {
					asnA.RoomID, asnB.RoomID = asnB.RoomID, asnA.RoomID
				}
				trial[a], trial[b] = asnA, asnB

				cost := solutionCost(in, trial)
				if cost < currentCost {
					return trial, cost, true
				}
			}
		}
	}
	return nil, 0, false
}

type field int

const (
	fieldPeriod field = iota
	fieldRoom
	fieldTeacher
)

func shuffledFields(rng *rand.Rand) []field {
	fields := []field{fieldPeriod, fieldRoom, fieldTeacher}
	rng.Shuffle(len(fields), func(i, j int) { fields[i], fields[j] = fields[j], fields[i] })
	return fields
}

func shuffledSectionIDs(in *domain.Instance, rng *rand.Rand) []int {
	sections := in.Sections()
	ids := make([]int, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids
}

func admissibleValues(in *domain.Instance, section *domain.CourseSection, f field) []int {
	switch f {
	case fieldPeriod:
		return in.SortedPeriods()
	case fieldRoom:
		rooms := in.Rooms()
		ids := make([]int, len(rooms))
		for i, r := range rooms {
			ids[i] = r.ID
		}
		return ids
	default:
		teachers := in.QualifiedTeachers(section.CourseName)
		if len(teachers) == 0 {
			teachers = in.Teachers()
		}
		ids := make([]int, len(teachers))
		for i, t := range teachers {
			ids[i] = t.ID
		}
		return ids
	}
}

func applyField(asn domain.Assignment, f field, value int) domain.Assignment {
	switch f {
	case fieldPeriod:
		asn.Period = value
	case fieldRoom:
		asn.RoomID = value
	case fieldTeacher:
		asn.TeacherID = value
	}
	return asn
}
