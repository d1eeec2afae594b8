// Package backtrack implements a depth-first, fail-first exact solver: a
// baseline correct-by-construction search used for small instances and as
// a feasibility oracle.
package backtrack

import (
	"sort"
	"time"

	"github.com/russross/cbctt/internal/domain"
	"github.com/russross/cbctt/internal/graphreduce"
)

// Result mirrors the (found, assignments, elapsed) tuple a caller needs to
// tell a feasible search from a timed-out one.
type Result struct {
	Found       bool
	Assignments domain.AssignmentSet
	Elapsed     time.Duration
}

type orderedSection struct {
	section    *domain.CourseSection
	candidates []graphreduce.Candidate
}

// Solve searches for a complete feasible assignment, ordering sections by
// ascending candidate-set size (fail-first) and trying candidates in
// enumeration order at each level. It stops at the first complete feasible
// solution or when timeLimit has elapsed, checked at each recursion entry.
func Solve(in *domain.Instance, timeLimit time.Duration) Result {
	start := time.Now()

	sections := in.Sections()
	ordered := make([]orderedSection, len(sections))
	for i, s := range sections {
		ordered[i] = orderedSection{section: s, candidates: graphreduce.Candidates(in, s)}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].candidates) < len(ordered[j].candidates)
	})

	s := &searcher{
		in:                in,
		deadline:          start.Add(timeLimit),
		roomPeriodUsed:    make(map[[2]int]bool),
		teacherPeriodUsed: make(map[[2]int]bool),
		curriculumPeriod:  make(map[[2]int]bool),
		assignments:       make(domain.AssignmentSet),
	}

	found := s.search(ordered, 0)
	return Result{
		Found:       found,
		Assignments: s.assignments,
		Elapsed:     time.Since(start),
	}
}

type searcher struct {
	in       *domain.Instance
	deadline time.Time

	roomPeriodUsed    map[[2]int]bool
	teacherPeriodUsed map[[2]int]bool
	curriculumPeriod  map[[2]int]bool

	assignments domain.AssignmentSet
	timedOut    bool
}

func (s *searcher) search(ordered []orderedSection, depth int) bool {
	if time.Now().After(s.deadline) {
		s.timedOut = true
		return false
	}
	if depth == len(ordered) {
		return true
	}

	entry := ordered[depth]
	for _, cand := range entry.candidates {
		if s.timedOut {
			return false
		}
		if !s.fits(entry.section, cand) {
			continue
		}

		s.place(entry.section, cand)
		if s.search(ordered, depth+1) {
			return true
		}
		s.unplace(entry.section, cand)
	}
	return false
}

func (s *searcher) fits(section *domain.CourseSection, cand graphreduce.Candidate) bool {
	if teacher, ok := s.in.Teacher(cand.TeacherID); !ok || !teacher.QualifiedCourses[section.CourseName] {
		return false
	}
	if s.roomPeriodUsed[[2]int{cand.RoomID, cand.Period}] {
		return false
	}
	if s.teacherPeriodUsed[[2]int{cand.TeacherID, cand.Period}] {
		return false
	}
	for cid := range section.CurriculumStudents {
		if s.curriculumPeriod[[2]int{cid, cand.Period}] {
			return false
		}
	}
	return true
}

func (s *searcher) place(section *domain.CourseSection, cand graphreduce.Candidate) {
	s.roomPeriodUsed[[2]int{cand.RoomID, cand.Period}] = true
	s.teacherPeriodUsed[[2]int{cand.TeacherID, cand.Period}] = true
	for cid := range section.CurriculumStudents {
		s.curriculumPeriod[[2]int{cid, cand.Period}] = true
	}
	s.assignments[section.ID] = domain.Assignment{
		SectionID: section.ID,
		Period:    cand.Period,
		RoomID:    cand.RoomID,
		TeacherID: cand.TeacherID,
	}
}

func (s *searcher) unplace(section *domain.CourseSection, cand graphreduce.Candidate) {
	delete(s.roomPeriodUsed, [2]int{cand.RoomID, cand.Period})
	delete(s.teacherPeriodUsed, [2]int{cand.TeacherID, cand.Period})
	for cid := range section.CurriculumStudents {
		delete(s.curriculumPeriod, [2]int{cid, cand.Period})
	}
	delete(s.assignments, section.ID)
}
