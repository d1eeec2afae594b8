// Package coloring implements three graph-coloring heuristics: plain
// greedy, DSATUR, and RLF. All three operate directly on a gonum
// graph.Undirected (gonum.org/v1/gonum/graph), the same interface gonum's
// own graph/coloring package colors against -- see DESIGN.md for why that
// package's Dsatur/RecursiveLargestFirst functions are not called directly
// (they don't expose the tie-break hooks or restriction to a vertex subset
// this needs).
package coloring

import (
	"math/rand"

	"gonum.org/v1/gonum/graph"
)

// Coloring maps a vertex's graph id to its assigned color, starting at 1.
type Coloring map[int64]int

// Greedy visits vertices in order (or, if rng is non-nil, a random
// permutation of order) and assigns each the smallest color unused by any
// already-colored neighbor.
func Greedy(g graph.Undirected, order []graph.Node, rng *rand.Rand) Coloring {
	order = append([]graph.Node(nil), order...)
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	colors := make(Coloring, len(order))
	for _, v := range order {
		colors[v.ID()] = smallestAvailableColor(g, v.ID(), colors)
	}
	return colors
}

// smallestAvailableColor returns the smallest color (>= 1) not used by any
// already-colored neighbor of id.
func smallestAvailableColor(g graph.Undirected, id int64, colors Coloring) int {
	used := make(map[int]bool)
	neighbors := g.From(id)
	for neighbors.Next() {
		if c, ok := colors[neighbors.Node().ID()]; ok {
			used[c] = true
		}
	}
	for c := 1; ; c++ {
		if !used[c] {
			return c
		}
	}
}

func degree(g graph.Undirected, id int64) int {
	return g.From(id).Len()
}

// neighborIDs returns the ids of id's neighbors in g.
func neighborIDs(g graph.Undirected, id int64) []int64 {
	it := g.From(id)
	out := make([]int64, 0, it.Len())
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	return out
}
