// Package kernel implements the constraint-aware core every solver shares:
// hard-constraint validation, objective scoring, and the
// candidate-feasibility predicate used by every constructive and
// local-search routine. Every function here is pure: it takes the
// assignment set it should reason about as a parameter instead of reading
// an instance's mutable field, so there's no evaluation hack of
// temporarily swapping a shared field.
package kernel

import (
	"fmt"
	"sort"

	"github.com/russross/cbctt/internal/domain"
)

// Check evaluates every hard constraint, in a fixed order, and reports
// each violation as a separate human-readable message. A, as always, is
// the whole assignment set being judged -- never just the newest
// placement.
func Check(in *domain.Instance, a domain.AssignmentSet) (feasible bool, violations []string) {
	violations = append(violations, checkCoverage(in, a)...)
	violations = append(violations, checkQualification(in, a)...)
	violations = append(violations, checkAvailability(in, a)...)
	violations = append(violations, checkCapacity(in, a)...)
	violations = append(violations, checkTeacherOverlap(a)...)
	violations = append(violations, checkRoomOverlap(a)...)
	violations = append(violations, checkCurriculumOverlap(in, a)...)
	return len(violations) == 0, violations
}

// coverage: every section has at most one assignment. This is
// structurally guaranteed by AssignmentSet being keyed by section id, so
// the only case reported here is an assignment keyed by a section id the
// instance doesn't have. Completeness is not checked here; callers test it
// separately with IsComplete.
func checkCoverage(in *domain.Instance, a domain.AssignmentSet) []string {
	var out []string
	for sectionID := range a {
		if _, ok := in.Section(sectionID); !ok {
			out = append(out, fmt.Sprintf("coverage: assignment references unknown section %d", sectionID))
		}
	}
	return out
}

// IsComplete reports whether every section in the instance has exactly one
// assignment.
func IsComplete(in *domain.Instance, a domain.AssignmentSet) bool {
	for _, s := range in.Sections() {
		if _, ok := a[s.ID]; !ok {
			return false
		}
	}
	return true
}

func checkQualification(in *domain.Instance, a domain.AssignmentSet) []string {
	var out []string
	for _, asn := range sortedAssignments(a) {
		section, ok := in.Section(asn.SectionID)
		if !ok {
			continue
		}
		teacher, ok := in.Teacher(asn.TeacherID)
		if !ok {
			out = append(out, fmt.Sprintf("qualification: section %d references unknown teacher %d", asn.SectionID, asn.TeacherID))
			continue
		}
		if !teacher.QualifiedCourses[section.CourseName] {
			out = append(out, fmt.Sprintf("qualification: teacher %q is not qualified to teach %q (section %d)",
				teacher.Name, section.CourseName, asn.SectionID))
		}
	}
	return out
}

func checkAvailability(in *domain.Instance, a domain.AssignmentSet) []string {
	var out []string
	for _, asn := range sortedAssignments(a) {
		room, roomOK := in.Room(asn.RoomID)
		teacher, teacherOK := in.Teacher(asn.TeacherID)
		if !roomOK || !teacherOK {
			continue
		}
		if !room.Availability[asn.Period] {
			out = append(out, fmt.Sprintf("availability: room %q is not available in period %d (section %d)",
				room.Name, asn.Period, asn.SectionID))
		}
		if !teacher.Availability[asn.Period] {
			out = append(out, fmt.Sprintf("availability: teacher %q is not available in period %d (section %d)",
				teacher.Name, asn.Period, asn.SectionID))
		}
	}
	return out
}
