// Package graphreduce converts a timetabling instance into an undirected
// conflict graph and a per-section candidate set. The graph itself is a
// gonum graph.Undirected (gonum.org/v1/gonum/graph,
// backed by graph/simple), the same substrate gonum's own coloring package
// colors against; the coloring heuristics in internal/coloring are written
// directly to that interface.
package graphreduce

import (
	"fmt"
	"sort"
)

// Kind distinguishes the five vertex types the reduction produces. Rather
// than an integer-offset trick (section ids starting at 40000, say), every
// vertex is a tagged (Kind, entity id) pair, and a VertexTable gives O(1)
// lookup in both directions.
type Kind int

const (
	KindSection Kind = iota
	KindCurriculum
	KindRoom
	KindTeacher
	KindPeriod
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindCurriculum:
		return "curriculum"
	case KindRoom:
		return "room"
	case KindTeacher:
		return "teacher"
	case KindPeriod:
		return "period"
	default:
		return "unknown"
	}
}

// Vertex is a single conflict-graph node. EntityID is the id of the
// underlying domain entity (section id, curriculum id, room id, teacher
// id) or the period number itself for a Period vertex.
type Vertex struct {
	Kind     Kind
	EntityID int

	graphID int64
}

// ID implements gonum's graph.Node.
func (v *Vertex) ID() int64 { return v.graphID }

func (v *Vertex) String() string {
	return fmt.Sprintf("%s#%d", v.Kind, v.EntityID)
}

// VertexTable assigns a stable graph id to each (Kind, EntityID) pair and
// supports lookup by either the pair or the assigned graph id.
type VertexTable struct {
	byKey map[vertexKey]*Vertex
	byID  map[int64]*Vertex
	next  int64
}

type vertexKey struct {
	kind     Kind
	entityID int
}

func NewVertexTable() *VertexTable {
	return &VertexTable{
		byKey: make(map[vertexKey]*Vertex),
		byID:  make(map[int64]*Vertex),
	}
}

// Get returns the existing vertex for (kind, entityID), creating it with a
// freshly assigned graph id if this is the first reference.
func (t *VertexTable) Get(kind Kind, entityID int) *Vertex {
	key := vertexKey{kind, entityID}
	if v, ok := t.byKey[key]; ok {
		return v
	}
	v := &Vertex{Kind: kind, EntityID: entityID, graphID: t.next}
	t.next++
	t.byKey[key] = v
	t.byID[v.graphID] = v
	return v
}

// ByGraphID looks up a vertex by the id gonum hands back from the graph.
func (t *VertexTable) ByGraphID(id int64) (*Vertex, bool) {
	v, ok := t.byID[id]
	return v, ok
}

// Vertices returns every vertex of the given kind, ordered by entity id.
func (t *VertexTable) Vertices(kind Kind) []*Vertex {
	var out []*Vertex
	for key, v := range t.byKey {
		if key.kind == kind {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out
}
