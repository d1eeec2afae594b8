package kernel

import (
	"fmt"
	"sort"

	"github.com/russross/cbctt/internal/domain"
)

// sortedAssignments gives every check a deterministic iteration order over
// a map, so violation messages come out in the same order on every run
// given the same input.
func sortedAssignments(a domain.AssignmentSet) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(a))
	for _, asn := range a {
		out = append(out, asn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SectionID < out[j].SectionID })
	return out
}

func checkCapacity(in *domain.Instance, a domain.AssignmentSet) []string {
	var out []string
	for _, asn := range sortedAssignments(a) {
		section, sectionOK := in.Section(asn.SectionID)
		room, roomOK := in.Room(asn.RoomID)
		if !sectionOK || !roomOK {
			continue
		}
		if room.Capacity < section.TotalStudents() {
			out = append(out, fmt.Sprintf("capacity: room %q (capacity %d) is too small for section %d (%d students)",
				room.Name, room.Capacity, asn.SectionID, section.TotalStudents()))
		}
	}
	return out
}

func checkTeacherOverlap(a domain.AssignmentSet) []string {
	var out []string
	seen := make(map[[2]int][]int) // (teacherID, period) -> section ids
	for _, asn := range sortedAssignments(a) {
		key := [2]int{asn.TeacherID, asn.Period}
		seen[key] = append(seen[key], asn.SectionID)
	}
	for key, sections := range seen {
		if len(sections) > 1 {
			out = append(out, fmt.Sprintf("teacher overlap: teacher %d has overlapping sections %v in period %d",
				key[0], sections, key[1]))
		}
	}
	sort.Strings(out)
	return out
}

func checkRoomOverlap(a domain.AssignmentSet) []string {
	var out []string
	seen := make(map[[2]int][]int) // (roomID, period) -> section ids
	for _, asn := range sortedAssignments(a) {
		key := [2]int{asn.RoomID, asn.Period}
		seen[key] = append(seen[key], asn.SectionID)
	}
	for key, sections := range seen {
		if len(sections) > 1 {
			out = append(out, fmt.Sprintf("room overlap: room %d has overlapping sections %v in period %d",
				key[0], sections, key[1]))
		}
	}
	sort.Strings(out)
	return out
}

func checkCurriculumOverlap(in *domain.Instance, a domain.AssignmentSet) []string {
	var out []string
	byPeriod := make(map[int][]domain.Assignment)
	for _, asn := range sortedAssignments(a) {
		byPeriod[asn.Period] = append(byPeriod[asn.Period], asn)
	}
	periods := make([]int, 0, len(byPeriod))
	for p := range byPeriod {
		periods = append(periods, p)
	}
	sort.Ints(periods)

	for _, period := range periods {
		placements := byPeriod[period]
		for i := 0; i < len(placements); i++ {
			si, ok := in.Section(placements[i].SectionID)
			if !ok {
				continue
			}
			for j := i + 1; j < len(placements); j++ {
				sj, ok := in.Section(placements[j].SectionID)
				if !ok {
					continue
				}
				if sharesCurriculum(si, sj) {
					out = append(out, fmt.Sprintf("curriculum overlap: sections %d and %d share a curriculum but are both in period %d",
						si.ID, sj.ID, period))
				}
			}
		}
	}
	return out
}

func sharesCurriculum(a, b *domain.CourseSection) bool {
	for cid := range a.CurriculumStudents {
		if _, ok := b.CurriculumStudents[cid]; ok {
			return true
		}
	}
	return false
}
