// Package genetic implements a memetic genetic algorithm: a population of
// complete section->(period,room,teacher) mappings evolved by tournament
// selection, single-point crossover, mutation, and a per-individual
// hill-climb, with stagnation-triggered population refresh.
package genetic

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/russross/cbctt/internal/domain"
	"github.com/russross/cbctt/internal/kernel"
)

const infeasiblePenalty = 1000.0
const stagnationLimit = 10
const hillClimbProbability = 0.2
const hillClimbMaxSteps = 5
const hillClimbTrialsPerStep = 5

// Params tunes the search.
type Params struct {
	PopulationSize  int
	MaxGenerations  int
	MutationRate    float64 // p_m, default 0.1
	CrossoverRate   float64 // p_c, default 0.8
	TournamentSize  int     // default 3
	Seed            int64
}

// Solution is the best individual found, plus its diagnostics.
type Solution struct {
	RunID       uuid.UUID
	Assignments domain.AssignmentSet
	Feasible    bool
	Violations  []string
	Objective   float64
	Fitness     float64 // lower is better
}

type individual struct {
	assignments domain.AssignmentSet
	fitness     float64
}

// Solve runs the GA to params.MaxGenerations (or early exit once the best
// individual is feasible and stagnationLimit generations have passed with
// no improvement), and returns the best individual after a final repair.
func Solve(in *domain.Instance, params Params) Solution {
	rng := rand.New(rand.NewSource(params.Seed))
	sections := orderedSectionIDs(in)

	population := initializePopulation(in, sections, params.PopulationSize, rng)
	for i := range population {
		population[i].fitness = fitness(in, population[i].assignments)
	}

	best := bestOf(population)
	stagnant := 0

	for gen := 0; gen < params.MaxGenerations; gen++ {
		next := make([]individual, 0, len(population))
		next = append(next, individual{assignments: best.assignments.Clone(), fitness: best.fitness}) // elitism

		for len(next) < len(population) {
			p1 := tournamentSelect(population, params.TournamentSize, rng)
			p2 := tournamentSelect(population, params.TournamentSize, rng)

			var c1, c2 domain.AssignmentSet
			if rng.Float64() < params.CrossoverRate {
				c1, c2 = crossover(p1.assignments, p2.assignments, sections, rng)
			} else {
				c1, c2 = p1.assignments.Clone(), p2.assignments.Clone()
			}

			mutate(in, c1, params.MutationRate, rng)
			mutate(in, c2, params.MutationRate, rng)

			if rng.Float64() < hillClimbProbability {
				c1 = hillClimb(in, c1, rng)
			}
			if rng.Float64() < hillClimbProbability {
				c2 = hillClimb(in, c2, rng)
			}

			next = append(next, individual{assignments: c1, fitness: fitness(in, c1)})
			if len(next) < len(population) {
				next = append(next, individual{assignments: c2, fitness: fitness(in, c2)})
			}
		}
		population = next

		gBest := bestOf(population)
		if gBest.fitness < best.fitness {
			best = gBest
			stagnant = 0
		} else {
			stagnant++
		}

		if stagnant >= stagnationLimit {
			_, violations := kernel.Check(in, best.assignments)
			if len(violations) == 0 {
				break
			}
			refreshWorstHalf(in, population, sections, rng)
			for i := range population {
				population[i].fitness = fitness(in, population[i].assignments)
			}
			stagnant = 0
		}
	}

	repaired := kernel.Repair(in, best.assignments, rng)
	feasible, violations := kernel.Check(in, repaired)
	return Solution{
		RunID:       uuid.New(),
		Assignments: repaired,
		Feasible:    feasible,
		Violations:  violations,
		Objective:   kernel.Objective(in, repaired),
		Fitness:     fitness(in, repaired),
	}
}

func fitness(in *domain.Instance, a domain.AssignmentSet) float64 {
	_, violations := kernel.Check(in, a)
	return -kernel.Objective(in, a) + infeasiblePenalty*float64(len(violations))
}

func bestOf(population []individual) individual {
	best := population[0]
	for _, ind := range population[1:] {
		if ind.fitness < best.fitness {
			best = ind
		}
	}
	return best
}

func tournamentSelect(population []individual, k int, rng *rand.Rand) individual {
	if k < 1 {
		k = 1
	}
	best := population[rng.Intn(len(population))]
	for i := 1; i < k; i++ {
		cand := population[rng.Intn(len(population))]
		if cand.fitness < best.fitness {
			best = cand
		}
	}
	return best
}

func orderedSectionIDs(in *domain.Instance) []int {
	sections := in.Sections()
	ids := make([]int, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

// refreshWorstHalf sorts population in place by fitness (best first) and
// replaces the worst half with fresh random individuals.
func refreshWorstHalf(in *domain.Instance, population []individual, sections []int, rng *rand.Rand) {
	sortByFitness(population)
	half := len(population) / 2
	fresh := initializePopulation(in, sections, len(population)-half, rng)
	for i := half; i < len(population); i++ {
		population[i] = fresh[i-half]
	}
}

func sortByFitness(pop []individual) {
	for i := 1; i < len(pop); i++ {
		for j := i; j > 0 && pop[j-1].fitness > pop[j].fitness; j-- {
			pop[j-1], pop[j] = pop[j], pop[j-1]
		}
	}
}
