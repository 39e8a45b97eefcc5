package graph

import "github.com/RoaringBitmap/roaring/v2"

// Set is a reachability set over one graph's dense node indexes, backed by a
// Roaring bitmap for memory-efficient sparse membership. It is not
// synchronized: traversal phases write from a single goroutine, parallel
// phases only read.
type Set struct {
	g    *Graph
	bits *roaring.Bitmap
}

// NewSet creates an empty set bound to a graph.
func NewSet(g *Graph) *Set {
	return &Set{g: g, bits: roaring.New()}
}

// Add marks an id as a member. Unknown ids are ignored and return false.
func (s *Set) Add(id DeclarationID) bool {
	idx, ok := s.g.Index(id)
	if !ok {
		return false
	}
	s.bits.Add(idx)
	return true
}

// AddIndex marks a dense index as a member, reporting whether it was
// newly added.
func (s *Set) AddIndex(idx uint32) bool {
	return s.bits.CheckedAdd(idx)
}

// AddIndexes marks a batch of dense indexes as members.
func (s *Set) AddIndexes(indexes []uint32) {
	s.bits.AddMany(indexes)
}

// Contains reports membership by id. Unknown ids are never members.
func (s *Set) Contains(id DeclarationID) bool {
	idx, ok := s.g.Index(id)
	return ok && s.bits.Contains(idx)
}

// ContainsIndex reports membership by dense index.
func (s *Set) ContainsIndex(idx uint32) bool {
	return s.bits.Contains(idx)
}

// Len returns the number of members.
func (s *Set) Len() int {
	return int(s.bits.GetCardinality())
}

// IDs returns the member ids in dense index order.
func (s *Set) IDs() []DeclarationID {
	ids := make([]DeclarationID, 0, s.Len())
	it := s.bits.Iterator()
	for it.HasNext() {
		ids = append(ids, s.g.At(it.Next()).ID)
	}
	return ids
}

// IDSet is a plain id set, used for entry points supplied by the external
// entry-point detector.
type IDSet map[DeclarationID]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...DeclarationID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an id.
func (s IDSet) Add(id DeclarationID) {
	s[id] = struct{}{}
}

// Contains reports membership.
func (s IDSet) Contains(id DeclarationID) bool {
	_, ok := s[id]
	return ok
}
