package graphreduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/cbctt/internal/domain"
)

func buildSharedCurriculumInstance(t *testing.T) *domain.Instance {
	t.Helper()
	in := domain.NewInstance()

	_, err := in.AddCurriculum("C1", 20, []string{"A", "B"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddTeacher("T2", []string{"B"}, []int{1, 2})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())
	return in
}

func TestBuildConnectsSharedCurriculumSections(t *testing.T) {
	in := buildSharedCurriculumInstance(t)
	g := Build(in)

	require.Len(t, g.Sections, 2)
	assert.True(t, g.G.HasEdgeBetween(g.Sections[0].ID(), g.Sections[1].ID()))
}

func TestBuildConnectsSectionsThatExceedRoomCapacity(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 40, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddCurriculum("C2", 40, []string{"B"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T2", []string{"B"}, []int{1})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	g := Build(in)
	require.Len(t, g.Sections, 2)
	assert.True(t, g.G.HasEdgeBetween(g.Sections[0].ID(), g.Sections[1].ID()))
}

func TestBuildLeavesIndependentSectionsUnconnected(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 10, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddCurriculum("C2", 10, []string{"B"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T2", []string{"B"}, []int{1})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	g := Build(in)
	require.Len(t, g.Sections, 2)
	assert.False(t, g.G.HasEdgeBetween(g.Sections[0].ID(), g.Sections[1].ID()))
}

func TestCandidatesRespectsCapacityAvailabilityAndQualification(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 40, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddRoom("Small", 30, []int{1, 2})
	require.NoError(t, err)
	_, err = in.AddRoom("Big", 50, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	section := in.Sections()[0]
	candidates := Candidates(in, section)

	require.Len(t, candidates, 1)
	assert.Equal(t, 1, candidates[0].Period)
	big, _ := in.Room(1)
	assert.Equal(t, big.ID, candidates[0].RoomID)
}

func TestVertexTableIsStableAcrossRepeatedGet(t *testing.T) {
	table := NewVertexTable()
	a := table.Get(KindSection, 3)
	b := table.Get(KindSection, 3)
	assert.Same(t, a, b)

	found, ok := table.ByGraphID(a.ID())
	require.True(t, ok)
	assert.Same(t, a, found)
}
