// Package colordriver turns a vertex coloring of the section vertices
// into (period, room, teacher) assignments by interpreting each section's
// color as its period, then
// greedily pairing it with a free, qualified, available, big-enough room
// and teacher. There is no backtracking at this stage -- a section with no
// available pair is simply left unassigned, and the caller's diagnostics
// note the failure.
package colordriver

import (
	"fmt"
	"sort"

	"github.com/russross/cbctt/internal/coloring"
	"github.com/russross/cbctt/internal/domain"
	"github.com/russross/cbctt/internal/graphreduce"
)

// Result is what the driver hands back to a caller: the assignments it
// managed to place, plus one diagnostic line per section it couldn't.
type Result struct {
	Assignments domain.AssignmentSet
	Unplaced    []string
}

// Apply maps colors to periods and pairs every section with a room and
// teacher, in ascending section-id order.
func Apply(in *domain.Instance, g *graphreduce.Graph, colors coloring.Coloring) Result {
	assignments := make(domain.AssignmentSet)
	var unplaced []string

	sections := append([]*domain.CourseSection(nil), in.Sections()...)
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })

	usedRoomPeriod := make(map[[2]int]bool)
	usedTeacherPeriod := make(map[[2]int]bool)

	for _, section := range sections {
		vertex := g.Table.Get(graphreduce.KindSection, section.ID)
		period, ok := colors[vertex.ID()]
		if !ok {
			unplaced = append(unplaced, fmt.Sprintf("section %d has no assigned color", section.ID))
			continue
		}

		room, teacher, found := pickRoomAndTeacher(in, section, period, usedRoomPeriod, usedTeacherPeriod)
		if !found {
			unplaced = append(unplaced, fmt.Sprintf("section %d (period %d): no free qualified room/teacher pair", section.ID, period))
			continue
		}

		assignments[section.ID] = domain.Assignment{
			SectionID: section.ID,
			Period:    period,
			RoomID:    room.ID,
			TeacherID: teacher.ID,
		}
		usedRoomPeriod[[2]int{room.ID, period}] = true
		usedTeacherPeriod[[2]int{teacher.ID, period}] = true
	}

	return Result{Assignments: assignments, Unplaced: unplaced}
}

func pickRoomAndTeacher(
	in *domain.Instance,
	section *domain.CourseSection,
	period int,
	usedRoomPeriod, usedTeacherPeriod map[[2]int]bool,
) (*domain.Room, *domain.Teacher, bool) {
	teachers := in.QualifiedTeachers(section.CourseName)

	for _, room := range in.Rooms() {
		if room.Capacity < section.TotalStudents() || !room.Availability[period] {
			continue
		}
		if usedRoomPeriod[[2]int{room.ID, period}] {
			continue
		}
		for _, teacher := range teachers {
			if !teacher.Availability[period] {
				continue
			}
			if usedTeacherPeriod[[2]int{teacher.ID, period}] {
				continue
			}
			return room, teacher, true
		}
	}
	return nil, nil, false
}
