package genetic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/cbctt/internal/domain"
)

func buildSolvableInstance(t *testing.T) *domain.Instance {
	t.Helper()
	in := domain.NewInstance()

	_, err := in.AddCurriculum("C1", 20, []string{"A", "B"})
	require.NoError(t, err)
	_, err = in.AddCurriculum("C2", 20, []string{"C"})
	require.NoError(t, err)

	_, err = in.AddRoom("R1", 50, []int{1, 2, 3})
	require.NoError(t, err)
	_, err = in.AddRoom("R2", 50, []int{1, 2, 3})
	require.NoError(t, err)

	_, err = in.AddTeacher("T1", []string{"A"}, []int{1, 2, 3})
	require.NoError(t, err)
	_, err = in.AddTeacher("T2", []string{"B"}, []int{1, 2, 3})
	require.NoError(t, err)
	_, err = in.AddTeacher("T3", []string{"C"}, []int{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, in.CreateCourseSections())
	return in
}

func defaultParams(seed int64) Params {
	return Params{
		PopulationSize: 10,
		MaxGenerations: 15,
		MutationRate:   0.2,
		CrossoverRate:  0.8,
		TournamentSize: 3,
		Seed:           seed,
	}
}

func TestSolveProducesFeasibleCompleteSchedule(t *testing.T) {
	in := buildSolvableInstance(t)
	sol := Solve(in, defaultParams(1))

	assert.True(t, sol.Feasible)
	assert.Empty(t, sol.Violations)
	assert.Len(t, sol.Assignments, len(in.Sections()))
}

func TestSolveIsDeterministicGivenSameSeed(t *testing.T) {
	in := buildSolvableInstance(t)
	params := defaultParams(5)

	s1 := Solve(in, params)
	s2 := Solve(in, params)

	assert.Equal(t, s1.Assignments, s2.Assignments)
	assert.Equal(t, s1.Fitness, s2.Fitness)
}

func TestCrossoverProducesCompleteChildrenFromBothParents(t *testing.T) {
	in := buildSolvableInstance(t)
	sections := orderedSectionIDs(in)
	rng := rand.New(rand.NewSource(1))

	p1 := buildRandomIndividual(in, sections, rng)
	p2 := buildRandomIndividual(in, sections, rng)

	c1, c2 := crossover(p1, p2, sections, rng)
	assert.Len(t, c1, len(sections))
	assert.Len(t, c2, len(sections))
	for _, id := range sections {
		parents := []domain.Assignment{p1[id], p2[id]}
		assert.Contains(t, parents, c1[id])
		assert.Contains(t, parents, c2[id])
	}
}

func TestMutateOnlyTouchesOneSection(t *testing.T) {
	in := buildSolvableInstance(t)
	sections := orderedSectionIDs(in)
	rng := rand.New(rand.NewSource(2))

	a := buildRandomIndividual(in, sections, rng)
	before := a.Clone()

	mutate(in, a, 1.0, rng)

	changed := 0
	for id := range a {
		if a[id] != before[id] {
			changed++
		}
	}
	assert.LessOrEqual(t, changed, 1)
}
