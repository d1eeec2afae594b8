package kernel

import "github.com/russross/cbctt/internal/domain"

// Objective sums, over every assignment, the value of the first matching
// preference in registration order: a preference contributes at most once
// per assignment, first match wins by preference-list order.
func Objective(in *domain.Instance, a domain.AssignmentSet) float64 {
	prefs := in.Preferences()
	total := 0.0
	for _, asn := range sortedAssignments(a) {
		section, ok := in.Section(asn.SectionID)
		if !ok {
			continue
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
		for _, p := range prefs {
			if p.Matches(section.CourseName, asn.Period, roomName, teacherName) {
				total += p.Value
				break
			}
		}
	}
	return total
}

// MatchingPreferenceValue returns the value contributed by a hypothetical
// placement, without requiring it to already be in an AssignmentSet.
// GRASP's candidate scoring uses this to compute the bonus term without
// materializing a placement first.
func MatchingPreferenceValue(in *domain.Instance, courseName string, period int, roomName, teacherName string) float64 {
	for _, p := range in.Preferences() {
		if p.Matches(courseName, period, roomName, teacherName) {
			return p.Value
		}
	}
	return 0
}

// IsCandidateFeasible evaluates every hard constraint but coverage for
// placing section at (period, room, teacher) against the already-placed
// set others, without mutating anything. It is the fast predicate every
// constructive and local-search routine calls before committing a
// placement.
func IsCandidateFeasible(in *domain.Instance, section *domain.CourseSection, period, roomID, teacherID int, others domain.AssignmentSet) bool {
	room, ok := in.Room(roomID)
	if !ok {
		return false
	}
	teacher, ok := in.Teacher(teacherID)
	if !ok {
		return false
	}

	// qualification.
	if !teacher.QualifiedCourses[section.CourseName] {
		return false
	}
	// availability.
	if !room.Availability[period] || !teacher.Availability[period] {
		return false
	}
	// capacity.
	if room.Capacity < section.TotalStudents() {
		return false
	}

	for _, other := range others {
		if other.SectionID == section.ID {
			continue
		}
		if other.Period != period {
			continue
		}
		// teacher non-overlap.
		if other.TeacherID == teacherID {
			return false
		}
		// room non-overlap.
		if other.RoomID == roomID {
			return false
		}
		// curriculum non-overlap.
		otherSection, ok := in.Section(other.SectionID)
		if !ok {
			continue
		}
		if sharesCurriculum(section, otherSection) {
			return false
		}
	}
	return true
}
