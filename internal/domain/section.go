package domain

import "sort"

// Course is a named offering taken by some mix of curriculums. Before
// section creation it only tracks how many students each curriculum
// contributes; CourseSections are derived from this during CreateCourseSections.
type Course struct {
	Name               string
	CurriculumStudents map[int]int // curriculum id -> student count
	curriculumOrder    []int       // registration order, for determinism
}

// CourseSection is a teachable unit of a course, carrying a subset of the
// course's students sized to fit some room.
type CourseSection struct {
	ID                 int
	CourseName         string
	SectionIndex       int
	CurriculumStudents map[int]int
}

// TotalStudents is the sum of students drawn from every curriculum feeding
// this section.
func (s *CourseSection) TotalStudents() int {
	total := 0
	for _, n := range s.CurriculumStudents {
		total += n
	}
	return total
}

// CurriculumIDs returns the curriculums this section draws students from.
func (s *CourseSection) CurriculumIDs() []int {
	ids := make([]int, 0, len(s.CurriculumStudents))
	for cid := range s.CurriculumStudents {
		ids = append(ids, cid)
	}
	sort.Ints(ids)
	return ids
}

type curriculumCount struct {
	curriculumID int
	count        int
}

// splitCourse partitions a course's per-curriculum student counts into
// sections of at most maxCapacity students each:
//  1. curriculums whose count alone exceeds capacity are peeled off as full
//     sections of their own, leaving a remainder;
//  2. the remaining (curriculum, count) pairs are sorted by count
//     descending and greedily packed into open bins.
func splitCourse(course *Course, maxCapacity int) []map[int]int {
	var groups []curriculumCount
	var full []map[int]int

	for _, cid := range course.curriculumOrder {
		count := course.CurriculumStudents[cid]
		if count <= 0 {
			continue
		}
		for count > maxCapacity {
			full = append(full, map[int]int{cid: maxCapacity})
			count -= maxCapacity
		}
		if count > 0 {
			groups = append(groups, curriculumCount{cid, count})
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	// next-fit packing: only the most recently opened section is a
	// candidate for the next group.
	var bins []map[int]int
	var binTotal int
	for _, g := range groups {
		if len(bins) == 0 || binTotal+g.count > maxCapacity {
			bins = append(bins, map[int]int{})
			binTotal = 0
		}
		bins[len(bins)-1][g.curriculumID] = g.count
		binTotal += g.count
	}

	return append(full, bins...)
}
