package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/contour/internal/path"
)

var (
	a = path.PointID(1, 1)
	b = path.PointID(1, 2)
	c = path.PointID(2, 1)
	g = path.GuideID(1)
)

func TestZeroValueIsEmpty(t *testing.T) {
	var s Set
	require.True(t, s.IsEmpty())
	require.False(t, s.Contains(a))
	require.Nil(t, s.IDs())
	_, ok := s.First()
	require.False(t, ok)
	require.Equal(t, "{}", s.String())
}

func TestInsertRemove(t *testing.T) {
	var s Set
	require.True(t, s.Insert(a))
	require.False(t, s.Insert(a), "duplicate insert")
	require.Equal(t, 1, s.Len())

	require.True(t, s.Remove(a))
	require.False(t, s.Remove(a))
	require.True(t, s.IsEmpty())
}

func TestIDsAreOrdered(t *testing.T) {
	s := New(g, c, b, a)
	require.Equal(t, []path.EntityID{a, b, c, g}, s.IDs())

	first, ok := s.First()
	require.True(t, ok)
	require.Equal(t, a, first)
	require.Equal(t, "{p1.1, p1.2, p2.1, g1}", s.String())
}

func TestToggle(t *testing.T) {
	s := New(a)
	s.Toggle(a)
	s.Toggle(b)
	require.Equal(t, []path.EntityID{b}, s.IDs())
}

func TestCloneIsSnapshot(t *testing.T) {
	live := New(a, b)
	snap := live.Clone()

	live.Remove(a)
	live.Insert(c)
	live.Clear()
	live.Insert(g)

	require.Equal(t, []path.EntityID{a, b}, snap.IDs())
	require.Equal(t, []path.EntityID{g}, live.IDs())
}

func TestMutatingSnapshotLeavesOriginal(t *testing.T) {
	live := New(a)
	snap := live.Clone()
	snap.Insert(b)
	require.False(t, live.Contains(b))
}

func TestUnion(t *testing.T) {
	u := New(a, b).Union(New(b, c))
	require.Equal(t, []path.EntityID{a, b, c}, u.IDs())
}

func TestSymmetricDifference(t *testing.T) {
	p := New(a, b)
	h := New(b, c)

	d := p.SymmetricDifference(h)
	require.Equal(t, []path.EntityID{a, c}, d.IDs())

	// applying the same set twice restores the original
	require.True(t, d.SymmetricDifference(h).Equal(p))
}

func TestContainsAllAndEqual(t *testing.T) {
	s := New(a, b, c)
	require.True(t, s.ContainsAll([]path.EntityID{a, c}))
	require.False(t, s.ContainsAll([]path.EntityID{a, g}))
	require.True(t, s.ContainsAll(nil))

	require.True(t, New(a, b).Equal(New(b, a)))
	require.False(t, New(a, b).Equal(New(a, c)))
	require.False(t, New(a).Equal(New(a, b)))
}
