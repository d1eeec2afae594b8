package graphreduce

import (
	"sort"

	"github.com/russross/cbctt/internal/domain"
)

// Candidate is a single (period, room, teacher) triple a section could be
// placed into.
type Candidate struct {
	Period    int
	RoomID    int
	TeacherID int
}

// Candidates enumerates every triple (period, room, teacher) satisfying:
// room capacity covers the section, the period is in both the room's and
// the teacher's availability, and the teacher is
// qualified. If no teacher is qualified for the section's course, every
// teacher is offered instead, as a diagnostic -- search will fail
// qualification downstream rather than silently have no candidates at all.
func Candidates(in *domain.Instance, section *domain.CourseSection) []Candidate {
	var out []Candidate
	teachers := in.QualifiedTeachers(section.CourseName)
	if len(teachers) == 0 {
		teachers = in.Teachers()
	}

	for _, room := range in.Rooms() {
		if room.Capacity < section.TotalStudents() {
			continue
		}
		for _, teacher := range teachers {
			for _, period := range sortedPeriods(room.Availability) {
				if !teacher.Availability[period] {
					continue
				}
				out = append(out, Candidate{Period: period, RoomID: room.ID, TeacherID: teacher.ID})
			}
		}
	}
	return out
}

// sortedPeriods gives a stable iteration order over an availability set so
// Candidates returns the same slice, in the same order, on every call.
func sortedPeriods(availability map[int]bool) []int {
	out := make([]int, 0, len(availability))
	for p := range availability {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
