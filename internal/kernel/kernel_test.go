package kernel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/cbctt/internal/domain"
)

// buildTwoSectionsOneRoom sets up two sections of the same course, one
// room big enough for only one of them at a time, two qualified teachers,
// two periods.
func buildTwoSectionsOneRoom(t *testing.T) (*domain.Instance, *domain.CourseSection, *domain.CourseSection) {
	t.Helper()
	in := domain.NewInstance()

	_, err := in.AddCurriculum("C1", 20, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddCurriculum("C2", 20, []string{"A"})
	require.NoError(t, err)

	_, err = in.AddRoom("R1", 20, []int{1, 2})
	require.NoError(t, err)

	_, err = in.AddTeacher("T1", []string{"A"}, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddTeacher("T2", []string{"A"}, []int{1, 2})
	require.NoError(t, err)

	require.NoError(t, in.CreateCourseSections())
	sections := in.Sections()
	require.Len(t, sections, 2)
	return in, sections[0], sections[1]
}

func TestCheckAcceptsTwoSectionsOneRoomInDifferentPeriods(t *testing.T) {
	in, s1, s2 := buildTwoSectionsOneRoom(t)
	room, _ := in.Room(0)
	t1, _ := in.Teacher(0)
	t2, _ := in.Teacher(1)

	a := domain.AssignmentSet{
		s1.ID: {SectionID: s1.ID, Period: 1, RoomID: room.ID, TeacherID: t1.ID},
		s2.ID: {SectionID: s2.ID, Period: 2, RoomID: room.ID, TeacherID: t2.ID},
	}

	feasible, violations := Check(in, a)
	assert.True(t, feasible)
	assert.Empty(t, violations)
	assert.True(t, IsComplete(in, a))
}

func TestCheckRejectsRoomOverlapSamePeriod(t *testing.T) {
	in, s1, s2 := buildTwoSectionsOneRoom(t)
	room, _ := in.Room(0)
	t1, _ := in.Teacher(0)
	t2, _ := in.Teacher(1)

	a := domain.AssignmentSet{
		s1.ID: {SectionID: s1.ID, Period: 1, RoomID: room.ID, TeacherID: t1.ID},
		s2.ID: {SectionID: s2.ID, Period: 1, RoomID: room.ID, TeacherID: t2.ID},
	}

	feasible, violations := Check(in, a)
	assert.False(t, feasible)
	assert.Contains(t, assertJoined(violations), "room overlap")
}

// TestCheckRejectsCapacityViolation covers a section placed in a room
// smaller than its enrollment. Section splitting keeps every section within
// the largest room (here 30 students each), so the placement uses the
// smaller 20-seat room.
func TestCheckRejectsCapacityViolation(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 100, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 30, []int{1})
	require.NoError(t, err)
	_, err = in.AddRoom("Small", 20, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	section := in.Sections()[0]
	room, _ := in.Room(1)
	teacher, _ := in.Teacher(0)

	a := domain.AssignmentSet{
		section.ID: {SectionID: section.ID, Period: 1, RoomID: room.ID, TeacherID: teacher.ID},
	}

	feasible, violations := Check(in, a)
	assert.False(t, feasible)
	assert.Contains(t, assertJoined(violations), "capacity")
}

// TestCheckRejectsCurriculumOverlap covers two sections from different
// courses that share a curriculum, scheduled in the same period.
func TestCheckRejectsCurriculumOverlap(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 20, []string{"A", "B"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddRoom("R2", 50, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddTeacher("T2", []string{"B"}, []int{1, 2})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	var sa, sb *domain.CourseSection
	for _, s := range in.Sections() {
		switch s.CourseName {
		case "A":
			sa = s
		case "B":
			sb = s
		}
	}
	require.NotNil(t, sa)
	require.NotNil(t, sb)

	r1, _ := in.Room(0)
	r2, _ := in.Room(1)
	t1, _ := in.Teacher(0)
	t2, _ := in.Teacher(1)

	a := domain.AssignmentSet{
		sa.ID: {SectionID: sa.ID, Period: 1, RoomID: r1.ID, TeacherID: t1.ID},
		sb.ID: {SectionID: sb.ID, Period: 1, RoomID: r2.ID, TeacherID: t2.ID},
	}

	feasible, violations := Check(in, a)
	assert.False(t, feasible)
	assert.Contains(t, assertJoined(violations), "curriculum overlap")
}

func TestCheckRejectsUnqualifiedTeacher(t *testing.T) {
	in, s1, _ := buildTwoSectionsOneRoom(t)
	room, _ := in.Room(0)

	_, err := in.AddTeacher("T3", []string{"Other"}, []int{1, 2})
	require.NoError(t, err)
	t3, _ := in.Teacher(2)

	a := domain.AssignmentSet{
		s1.ID: {SectionID: s1.ID, Period: 1, RoomID: room.ID, TeacherID: t3.ID},
	}
	feasible, violations := Check(in, a)
	assert.False(t, feasible)
	assert.Contains(t, assertJoined(violations), "qualification")
}

func TestCheckRejectsUnavailablePeriod(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 10, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	section := in.Sections()[0]
	room, _ := in.Room(0)
	teacher, _ := in.Teacher(0)

	a := domain.AssignmentSet{
		section.ID: {SectionID: section.ID, Period: 2, RoomID: room.ID, TeacherID: teacher.ID},
	}
	feasible, violations := Check(in, a)
	assert.False(t, feasible)
	assert.Contains(t, assertJoined(violations), "availability")
}

func TestIsCandidateFeasibleRejectsConflictWithExistingAssignment(t *testing.T) {
	in, s1, s2 := buildTwoSectionsOneRoom(t)
	room, _ := in.Room(0)
	t1, _ := in.Teacher(0)

	others := domain.AssignmentSet{
		s1.ID: {SectionID: s1.ID, Period: 1, RoomID: room.ID, TeacherID: t1.ID},
	}

	assert.False(t, IsCandidateFeasible(in, s2, 1, room.ID, t1.ID, others))
	assert.True(t, IsCandidateFeasible(in, s2, 2, room.ID, t1.ID, others))
}

func TestObjectiveUsesFirstMatchingPreference(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 10, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1, 2})
	require.NoError(t, err)

	specific := 1
	require.NoError(t, in.AddPreference("A", &specific, nil, nil, 5))
	require.NoError(t, in.AddPreference("A", nil, nil, nil, 1))
	require.NoError(t, in.CreateCourseSections())

	section := in.Sections()[0]
	room, _ := in.Room(0)
	teacher, _ := in.Teacher(0)

	inPeriod := domain.AssignmentSet{
		section.ID: {SectionID: section.ID, Period: 1, RoomID: room.ID, TeacherID: teacher.ID},
	}
	outOfPeriod := domain.AssignmentSet{
		section.ID: {SectionID: section.ID, Period: 2, RoomID: room.ID, TeacherID: teacher.ID},
	}

	assert.Equal(t, 5.0, Objective(in, inPeriod))
	assert.Equal(t, 1.0, Objective(in, outOfPeriod))
}

func TestRepairIsIdempotentOnFeasibleSolution(t *testing.T) {
	in, s1, s2 := buildTwoSectionsOneRoom(t)
	room, _ := in.Room(0)
	t1, _ := in.Teacher(0)
	t2, _ := in.Teacher(1)

	a := domain.AssignmentSet{
		s1.ID: {SectionID: s1.ID, Period: 1, RoomID: room.ID, TeacherID: t1.ID},
		s2.ID: {SectionID: s2.ID, Period: 2, RoomID: room.ID, TeacherID: t2.ID},
	}

	repaired := Repair(in, a, rand.New(rand.NewSource(1)))
	assert.Equal(t, a, repaired)
	feasible, violations := Check(in, repaired)
	assert.True(t, feasible)
	assert.Empty(t, violations)
}

func assertJoined(violations []string) string {
	out := ""
	for _, v := range violations {
		out += v + "\n"
	}
	return out
}
