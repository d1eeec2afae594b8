package graphreduce

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/russross/cbctt/internal/domain"
)

// Graph bundles the conflict graph with the vertex table needed to map
// gonum node ids back to domain entities.
type Graph struct {
	G       *simple.UndirectedGraph
	Table   *VertexTable
	Sections []*Vertex // section vertices in section-id order
}

// Build constructs the conflict graph:
//   - Section <-> each of its curriculums
//   - Section <-> Section when they share any curriculum (hard: same period
//     forbidden)
//   - Section <-> Section when their combined student count exceeds the
//     largest room's capacity (no room could ever hold both at once)
//   - Teacher <-> Section when the teacher is qualified
//   - Room/Teacher <-> Period when the period is in that resource's
//     availability (informational only; coloring never visits Period
//     vertices as colorable nodes)
func Build(in *domain.Instance) *Graph {
	table := NewVertexTable()
	g := simple.NewUndirectedGraph()

	sections := in.Sections()
	maxCapacity := 0
	for _, r := range in.Rooms() {
		if r.Capacity > maxCapacity {
			maxCapacity = r.Capacity
		}
	}

	sectionVertices := make([]*Vertex, len(sections))
	for i, s := range sections {
		v := table.Get(KindSection, s.ID)
		sectionVertices[i] = v
		g.AddNode(v)
	}

	for _, c := range in.Curriculums() {
		v := table.Get(KindCurriculum, c.ID)
		g.AddNode(v)
	}
	for _, r := range in.Rooms() {
		v := table.Get(KindRoom, r.ID)
		g.AddNode(v)
	}
	for _, t := range in.Teachers() {
		v := table.Get(KindTeacher, t.ID)
		g.AddNode(v)
	}
	for _, p := range in.SortedPeriods() {
		v := table.Get(KindPeriod, p)
		g.AddNode(v)
	}

	// Section <-> Curriculum, and informational Teacher <-> Section.
	for _, s := range sections {
		sv := table.Get(KindSection, s.ID)
		for cid := range s.CurriculumStudents {
			cv := table.Get(KindCurriculum, cid)
			setEdge(g, sv, cv)
		}
		for _, t := range in.Teachers() {
			if t.QualifiedCourses[s.CourseName] {
				tv := table.Get(KindTeacher, t.ID)
				setEdge(g, sv, tv)
			}
		}
	}

	// Room/Teacher <-> Period (informational).
	for _, r := range in.Rooms() {
		rv := table.Get(KindRoom, r.ID)
		for p := range r.Availability {
			pv := table.Get(KindPeriod, p)
			setEdge(g, rv, pv)
		}
	}
	for _, t := range in.Teachers() {
		tv := table.Get(KindTeacher, t.ID)
		for p := range t.Availability {
			pv := table.Get(KindPeriod, p)
			setEdge(g, tv, pv)
		}
	}

	// Section <-> Section hard conflicts.
	for i := 0; i < len(sections); i++ {
		for j := i + 1; j < len(sections); j++ {
			si, sj := sections[i], sections[j]
			if sharesCurriculum(si, sj) || si.TotalStudents()+sj.TotalStudents() > maxCapacity {
				setEdge(g, table.Get(KindSection, si.ID), table.Get(KindSection, sj.ID))
			}
		}
	}

	return &Graph{G: g, Table: table, Sections: sectionVertices}
}

func setEdge(g *simple.UndirectedGraph, a, b *Vertex) {
	if a.ID() == b.ID() {
		return
	}
	g.SetEdge(simple.Edge{F: a, T: b})
}

func sharesCurriculum(a, b *domain.CourseSection) bool {
	for cid := range a.CurriculumStudents {
		if _, ok := b.CurriculumStudents[cid]; ok {
			return true
		}
	}
	return false
}

// Degree returns the number of neighbors a vertex has in g. The coloring
// heuristics compute degrees with their own helper and do not call it.
func Degree(g graph.Undirected, v graph.Node) int {
	return g.From(v.ID()).Len()
}
