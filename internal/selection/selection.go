// Package selection provides the set of currently selected entities.
//
// Set is a persistent sorted set: copying a Set value is O(1) and the copy
// is never affected by later mutation of the original. The selection tool
// relies on this to snapshot the live selection when a marquee drag begins.
package selection

import (
	"strings"

	"github.com/benbjohnson/immutable"

	"github.com/dshills/contour/internal/path"
)

// idComparer orders entity IDs for the underlying sorted map.
type idComparer struct{}

func (idComparer) Compare(a, b path.EntityID) int {
	return a.Compare(b)
}

// Set is an ordered, duplicate-free collection of entity IDs.
// The zero value is an empty set ready to use.
type Set struct {
	m *immutable.SortedMap[path.EntityID, struct{}]
}

// New returns a set containing ids.
func New(ids ...path.EntityID) Set {
	var s Set
	s.Extend(ids...)
	return s
}

func (s *Set) items() *immutable.SortedMap[path.EntityID, struct{}] {
	if s.m == nil {
		s.m = immutable.NewSortedMap[path.EntityID, struct{}](idComparer{})
	}
	return s.m
}

// Len returns the number of IDs in the set.
func (s Set) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// IsEmpty returns true if the set has no IDs.
func (s Set) IsEmpty() bool {
	return s.Len() == 0
}

// Contains returns true if id is in the set.
func (s Set) Contains(id path.EntityID) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m.Get(id)
	return ok
}

// Insert adds id and returns true if it was not already present.
func (s *Set) Insert(id path.EntityID) bool {
	if s.Contains(id) {
		return false
	}
	s.m = s.items().Set(id, struct{}{})
	return true
}

// Remove deletes id and returns true if it was present.
func (s *Set) Remove(id path.EntityID) bool {
	if !s.Contains(id) {
		return false
	}
	s.m = s.m.Delete(id)
	return true
}

// Toggle removes id if present, otherwise inserts it.
func (s *Set) Toggle(id path.EntityID) {
	if !s.Remove(id) {
		s.Insert(id)
	}
}

// Extend inserts every id.
func (s *Set) Extend(ids ...path.EntityID) {
	for _, id := range ids {
		s.Insert(id)
	}
}

// Clear removes every ID.
func (s *Set) Clear() {
	s.m = nil
}

// Clone returns a snapshot of the set. This is O(1); the snapshot shares
// structure with s and is unaffected by later changes to either set.
func (s Set) Clone() Set {
	return s
}

// IDs returns the IDs in ascending order.
func (s Set) IDs() []path.EntityID {
	if s.m == nil {
		return nil
	}
	ids := make([]path.EntityID, 0, s.m.Len())
	itr := s.m.Iterator()
	for !itr.Done() {
		id, _, _ := itr.Next()
		ids = append(ids, id)
	}
	return ids
}

// First returns the smallest ID in the set.
func (s Set) First() (path.EntityID, bool) {
	if s.IsEmpty() {
		return path.EntityID{}, false
	}
	itr := s.m.Iterator()
	id, _, ok := itr.Next()
	return id, ok
}

// ContainsAll returns true if every id is in the set.
func (s Set) ContainsAll(ids []path.EntityID) bool {
	for _, id := range ids {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// Equal returns true if both sets hold the same IDs.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.IDs() {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Union returns the IDs present in either set.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	out.Extend(other.IDs()...)
	return out
}

// SymmetricDifference returns the IDs present in exactly one of the sets.
func (s Set) SymmetricDifference(other Set) Set {
	out := s.Clone()
	for _, id := range other.IDs() {
		out.Toggle(id)
	}
	return out
}

// String returns the IDs in braces, like "{p1.1, g2}".
func (s Set) String() string {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
