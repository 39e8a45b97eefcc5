// Package graph holds the declaration graph consumed by the analyzers: a
// flat arena of declarations keyed by DeclarationID plus the reference edges
// between them. A Builder accumulates data from the external front end;
// Build produces an immutable Graph that is safe for unsynchronized
// concurrent reads for the full duration of an analysis run.
package graph

import "sort"

// Builder accumulates declarations and references before analysis. The
// front end may add them in any order; resolution happens in Build.
type Builder struct {
	decls []Declaration
	refs  []Reference
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddDeclaration records a declaration. A duplicate id keeps the first
// occurrence; front-end output is best effort.
func (b *Builder) AddDeclaration(d Declaration) *Builder {
	b.decls = append(b.decls, d)
	return b
}

// AddReference records a reference edge. Endpoints need not exist yet.
func (b *Builder) AddReference(r Reference) *Builder {
	b.refs = append(b.refs, r)
	return b
}

// Build resolves indexes and returns the immutable graph. Edges with a
// dangling endpoint are dropped here so traversal never has to re-check
// them.
func (b *Builder) Build() *Graph {
	g := &Graph{
		byID:     make(map[DeclarationID]uint32, len(b.decls)),
		byName:   make(map[string][]DeclarationID),
		children: make(map[DeclarationID][]DeclarationID),
		inbound:  make(map[DeclarationID][]int),
	}

	for _, d := range b.decls {
		if _, dup := g.byID[d.ID]; dup {
			continue
		}
		g.byID[d.ID] = uint32(len(g.decls))
		g.decls = append(g.decls, d)
	}

	g.out = make([][]uint32, len(g.decls))
	for i := range g.decls {
		d := &g.decls[i]
		g.byName[d.Name] = append(g.byName[d.Name], d.ID)
		if d.Parent != "" {
			g.children[d.Parent] = append(g.children[d.Parent], d.ID)
		}
	}

	for _, r := range b.refs {
		fromIdx, fromOK := g.byID[r.From]
		_, toOK := g.byID[r.To]
		if !fromOK || !toOK {
			continue // dangling endpoint: treat the edge as a no-op
		}
		refIdx := len(g.refs)
		g.refs = append(g.refs, r)
		g.out[fromIdx] = append(g.out[fromIdx], g.byID[r.To])
		g.inbound[r.To] = append(g.inbound[r.To], refIdx)
	}

	return g
}

// Graph is the immutable declaration graph for one analysis run. Every
// declaration has a dense uint32 index; adjacency is stored per index so
// repeated DFS/BFS traversals allocate nothing per step.
type Graph struct {
	decls    []Declaration
	refs     []Reference
	byID     map[DeclarationID]uint32
	byName   map[string][]DeclarationID
	children map[DeclarationID][]DeclarationID
	out      [][]uint32
	inbound  map[DeclarationID][]int
}

// Len returns the number of declarations.
func (g *Graph) Len() int {
	return len(g.decls)
}

// Declaration looks up a declaration by id.
func (g *Graph) Declaration(id DeclarationID) (*Declaration, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return &g.decls[idx], true
}

// At returns the declaration at a dense index. The index must come from this
// graph.
func (g *Graph) At(idx uint32) *Declaration {
	return &g.decls[idx]
}

// Index returns the dense index for an id.
func (g *Graph) Index(id DeclarationID) (uint32, bool) {
	idx, ok := g.byID[id]
	return idx, ok
}

// Neighbors returns the dense indexes reachable by one outgoing edge.
func (g *Graph) Neighbors(idx uint32) []uint32 {
	return g.out[idx]
}

// ReferencesTo returns the inbound reference edges of a declaration.
func (g *Graph) ReferencesTo(id DeclarationID) []Reference {
	indices := g.inbound[id]
	if len(indices) == 0 {
		return nil
	}
	refs := make([]Reference, len(indices))
	for i, ri := range indices {
		refs[i] = g.refs[ri]
	}
	return refs
}

// IsReferenced reports whether the declaration has any inbound reference.
func (g *Graph) IsReferenced(id DeclarationID) bool {
	return len(g.inbound[id]) > 0
}

// HasInboundKind reports whether any inbound reference has the given kind.
func (g *Graph) HasInboundKind(id DeclarationID, kind ReferenceKind) bool {
	for _, ri := range g.inbound[id] {
		if g.refs[ri].Kind == kind {
			return true
		}
	}
	return false
}

// Children returns the ids directly nested under a parent declaration.
func (g *Graph) Children(id DeclarationID) []DeclarationID {
	return g.children[id]
}

// ByName returns the ids of all declarations with the given simple name.
func (g *Graph) ByName(name string) []DeclarationID {
	return g.byName[name]
}

// References returns all resolved reference edges.
func (g *Graph) References() []Reference {
	return g.refs
}

// SortIDs orders ids by their declarations' (file, line, id), placing
// unknown ids last. Used wherever a deterministic id ordering is needed.
func (g *Graph) SortIDs(ids []DeclarationID) {
	sort.Slice(ids, func(i, j int) bool {
		di, iok := g.Declaration(ids[i])
		dj, jok := g.Declaration(ids[j])
		if !iok || !jok {
			return iok && !jok
		}
		if di.Location.File != dj.Location.File {
			return di.Location.File < dj.Location.File
		}
		if di.Location.Line != dj.Location.Line {
			return di.Location.Line < dj.Location.Line
		}
		return ids[i] < ids[j]
	})
}
