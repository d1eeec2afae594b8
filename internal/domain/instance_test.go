package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTwoSectionOneRoom(t *testing.T) *Instance {
	t.Helper()
	in := NewInstance()

	_, err := in.AddCurriculum("C1", 100, []string{"A", "B"})
	require.NoError(t, err)

	_, err = in.AddRoom("R1", 100, []int{1, 2})
	require.NoError(t, err)

	_, err = in.AddTeacher("T1", []string{"A"}, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddTeacher("T2", []string{"B"}, []int{1, 2})
	require.NoError(t, err)

	return in
}

func TestCreateCourseSectionsTwoSectionsOneRoom(t *testing.T) {
	in := buildTwoSectionOneRoom(t)
	require.NoError(t, in.CreateCourseSections())

	assert.Len(t, in.Sections(), 2)
	for _, s := range in.Sections() {
		assert.Equal(t, 100, s.TotalStudents())
	}
}

func TestCreateCourseSectionsRequiresAtLeastOneRoom(t *testing.T) {
	in := NewInstance()
	_, err := in.AddCurriculum("C1", 30, []string{"A"})
	require.NoError(t, err)

	err = in.CreateCourseSections()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateCourseSectionsOnlyOnce(t *testing.T) {
	in := buildTwoSectionOneRoom(t)
	require.NoError(t, in.CreateCourseSections())
	err := in.CreateCourseSections()
	require.Error(t, err)
}

func TestSplitCourseConservesStudents(t *testing.T) {
	in := NewInstance()
	_, err := in.AddCurriculum("C1", 40, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddCurriculum("C2", 70, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)

	require.NoError(t, in.CreateCourseSections())

	total := 0
	for _, s := range in.Sections() {
		total += s.TotalStudents()
		assert.LessOrEqual(t, s.TotalStudents(), 50)
	}
	assert.Equal(t, 110, total)
}

func TestAddPreferenceRejectsUnknownCourse(t *testing.T) {
	in := NewInstance()
	err := in.AddPreference("Ghost", nil, nil, nil, 1)
	require.Error(t, err)
}

func TestAddCurriculumRejectsDuplicateName(t *testing.T) {
	in := NewInstance()
	_, err := in.AddCurriculum("C1", 10, nil)
	require.NoError(t, err)
	_, err = in.AddCurriculum("C1", 20, nil)
	require.Error(t, err)
}

func TestPreferenceMatchesNullIsWildcard(t *testing.T) {
	period := 2
	room := "R1"
	p := &Preference{CourseName: "A", Period: &period, RoomName: &room, Value: 5}

	assert.True(t, p.Matches("A", 2, "R1", "anyone"))
	assert.False(t, p.Matches("A", 3, "R1", "anyone"))
	assert.False(t, p.Matches("A", 2, "R2", "anyone"))
	assert.False(t, p.Matches("B", 2, "R1", "anyone"))

	wildcard := &Preference{CourseName: "A", Value: 1}
	assert.True(t, wildcard.Matches("A", 99, "anything", "anyone"))
}

func TestRecordRunAppendsToRunLog(t *testing.T) {
	in := NewInstance()
	id := uuid.New()
	in.RecordRun(id, true, 4.5)

	require.Len(t, in.RunLog, 1)
	assert.Equal(t, id, in.RunLog[0].RunID)
	assert.True(t, in.RunLog[0].Feasible)
	assert.Equal(t, 4.5, in.RunLog[0].Objective)
}

func TestAssignmentSetCloneIsIndependent(t *testing.T) {
	a := AssignmentSet{1: {SectionID: 1, Period: 1}}
	b := a.Clone()
	b[1] = Assignment{SectionID: 1, Period: 2}

	assert.Equal(t, 1, a[1].Period)
	assert.Equal(t, 2, b[1].Period)
}
