package coloring

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/graph"
)

// Dsatur implements the degree-of-saturation heuristic: repeatedly pick
// the uncolored vertex with the highest saturation
// degree (count of distinct colors among its colored neighbors), breaking
// ties by highest degree in the original graph and any remaining tie
// uniformly at random, then give it the smallest color absent from its
// neighborhood.
func Dsatur(g graph.Undirected, vertices []graph.Node, rng *rand.Rand) Coloring {
	colors := make(Coloring, len(vertices))
	uncolored := make(map[int64]bool, len(vertices))
	for _, v := range vertices {
		uncolored[v.ID()] = true
	}

	for len(uncolored) > 0 {
		best := pickMaxSaturation(g, uncolored, colors, rng)
		colors[best] = smallestAvailableColor(g, best, colors)
		delete(uncolored, best)
	}
	return colors
}

func pickMaxSaturation(g graph.Undirected, uncolored map[int64]bool, colors Coloring, rng *rand.Rand) int64 {
	var candidates []int64
	bestSat, bestDeg := -1, -1

	ids := make([]int64, 0, len(uncolored))
	for id := range uncolored {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		sat := saturationDegree(g, id, colors)
		deg := degree(g, id)
		switch {
		case sat > bestSat, sat == bestSat && deg > bestDeg:
			bestSat, bestDeg = sat, deg
			candidates = []int64{id}
		case sat == bestSat && deg == bestDeg:
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 1 || rng == nil {
		return candidates[0]
	}
	return candidates[rng.Intn(len(candidates))]
}

// saturationDegree counts the distinct colors used among id's already
// colored neighbors.
func saturationDegree(g graph.Undirected, id int64, colors Coloring) int {
	seen := make(map[int]bool)
	for _, nid := range neighborIDs(g, id) {
		if c, ok := colors[nid]; ok {
			seen[c] = true
		}
	}
	return len(seen)
}
