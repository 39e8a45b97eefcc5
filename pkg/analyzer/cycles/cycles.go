// Package cycles finds zombie clusters: groups of unreachable
// declarations that keep each other alive through mutual references.
// Plain reachability reports each member as independently unreferenced;
// the cycle view shows they can only be deleted as a unit.
package cycles

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
)

// Cycle is one strongly connected component of the unreachable
// subgraph. Size two is the common A and B mutual-reference case.
type Cycle struct {
	Members []graph.DeclarationID `json:"members"`
	Names   []string              `json:"names"`
	Size    int                   `json:"size"`
	// ZombiePair marks the two-member case, where deleting either half
	// alone is already safe.
	ZombiePair bool `json:"zombie_pair"`
}

// Detector computes dead cycles from a graph and a reachable set.
type Detector struct{}

// New creates a cycle detector.
func New() *Detector {
	return &Detector{}
}

// Detect induces the subgraph over unreachable declarations, computes
// its strongly connected components and returns every component of size
// two or more, deterministically ordered.
func (d *Detector) Detect(g *graph.Graph, reachable *graph.Set) []Cycle {
	if g.Len() == 0 {
		return nil
	}

	directed := simple.NewDirectedGraph()
	for i := 0; i < g.Len(); i++ {
		if reachable.ContainsIndex(uint32(i)) {
			continue
		}
		directed.AddNode(simple.Node(int64(i)))
	}

	// Keep only edges whose endpoints are both unreachable; gonum simple
	// graphs reject self-loops, and a self-loop is not a cycle of
	// interest anyway.
	for _, ref := range g.References() {
		from, ok := g.Index(ref.From)
		if !ok || reachable.ContainsIndex(from) {
			continue
		}
		to, ok := g.Index(ref.To)
		if !ok || reachable.ContainsIndex(to) {
			continue
		}
		if from == to {
			continue
		}
		directed.SetEdge(simple.Edge{F: simple.Node(int64(from)), T: simple.Node(int64(to))})
	}

	var found []Cycle
	for _, scc := range topo.TarjanSCC(directed) {
		if len(scc) < 2 {
			continue
		}
		members := make([]graph.DeclarationID, 0, len(scc))
		for _, node := range scc {
			members = append(members, g.At(uint32(node.ID())).ID)
		}
		g.SortIDs(members)
		names := make([]string, 0, len(members))
		for _, id := range members {
			decl, _ := g.Declaration(id)
			names = append(names, decl.Name)
		}
		found = append(found, Cycle{
			Members:    members,
			Names:      names,
			Size:       len(members),
			ZombiePair: len(members) == 2,
		})
	}

	// Tarjan's component order depends on traversal order; re-sort by
	// the first member so output is stable across runs.
	sort.Slice(found, func(i, j int) bool {
		a, _ := g.Declaration(found[i].Members[0])
		b, _ := g.Declaration(found[j].Members[0])
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		return found[i].Members[0] < found[j].Members[0]
	})
	return found
}
