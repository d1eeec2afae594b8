package coloring

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/graph"
)

// RLF implements Recursive Largest First: build one
// color class at a time as a maximal independent set. Within the current
// color, repeatedly pick the uncolored, not-yet-excluded vertex of maximum
// degree in the induced subgraph of remaining candidates (X), color it,
// move its X-neighbors into the excluded set Y, and remove it and its
// neighbors from X. When X is empty, X becomes Y, Y is reset, and the color
// counter advances.
//
// This follows the shape of gonum's RecursiveLargestFirst, generalized to
// operate over an explicit vertex subset (not necessarily all of g's nodes)
// and with random tie-breaking, which gonum's version doesn't offer.
func RLF(g graph.Undirected, vertices []graph.Node, rng *rand.Rand) Coloring {
	colors := make(Coloring, len(vertices))

	x := make(map[int64]bool, len(vertices))
	for _, v := range vertices {
		x[v.ID()] = true
	}
	y := make(map[int64]bool)

	color := 1
	for len(x) > 0 || len(y) > 0 {
		if len(x) == 0 {
			x, y = y, make(map[int64]bool)
			color++
			continue
		}

		v := pickMaxDegreeIn(g, x, rng)
		colors[v] = color
		delete(x, v)

		for _, nid := range neighborIDs(g, v) {
			if x[nid] {
				delete(x, nid)
				y[nid] = true
			}
		}
	}
	return colors
}

// pickMaxDegreeIn returns the vertex of candidates with the most neighbors
// also in candidates, breaking ties randomly.
func pickMaxDegreeIn(g graph.Undirected, candidates map[int64]bool, rng *rand.Rand) int64 {
	ids := make([]int64, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	best := -1
	var winners []int64
	for _, id := range ids {
		deg := inducedDegree(g, id, candidates)
		switch {
		case deg > best:
			best = deg
			winners = []int64{id}
		case deg == best:
			winners = append(winners, id)
		}
	}

	if len(winners) == 1 || rng == nil {
		return winners[0]
	}
	return winners[rng.Intn(len(winners))]
}

func inducedDegree(g graph.Undirected, id int64, candidates map[int64]bool) int {
	count := 0
	for _, nid := range neighborIDs(g, id) {
		if candidates[nid] {
			count++
		}
	}
	return count
}
