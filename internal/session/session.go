// Package session holds the document being edited: its paths, guides,
// selection and viewport.
//
// EditSession is what the selection tool edits. It answers hit tests in
// screen space and applies the structural edits the tool requests. The
// session keeps the selection consistent with its geometry: ids are only
// ever inserted from the session's own points and guides, and deleting
// geometry clears the selection.
package session

import (
	"iter"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/logger"
	"github.com/dshills/contour/internal/path"
	"github.com/dshills/contour/internal/selection"
)

// DefaultHitTolerance is the hit radius in screen units.
const DefaultHitTolerance = 6.0

// EditSession is one open document.
type EditSession struct {
	id uuid.UUID

	paths  []*path.Path
	guides []path.Guide

	selection selection.Set
	viewport  design.Viewport
	tolerance float64

	nextPath  uint64
	nextGuide uint64
}

// New creates an empty session with a fresh ID.
func New() *EditSession {
	s := &EditSession{
		id:        uuid.New(),
		viewport:  design.DefaultViewport(),
		tolerance: DefaultHitTolerance,
	}
	logger.WithTag("session").Debug("session created", "id", s.id)
	return s
}

// ID returns the session ID. Snapshots share the ID of their session.
func (s *EditSession) ID() uuid.UUID {
	return s.id
}

// Viewport returns the current viewport.
func (s *EditSession) Viewport() design.Viewport {
	return s.viewport
}

// SetViewport replaces the viewport.
func (s *EditSession) SetViewport(vp design.Viewport) {
	s.viewport = vp
}

// HitTolerance returns the hit radius in screen units.
func (s *EditSession) HitTolerance() float64 {
	return s.tolerance
}

// SetHitTolerance sets the hit radius in screen units.
func (s *EditSession) SetHitTolerance(d float64) {
	if d > 0 {
		s.tolerance = d
	}
}

// NewPath adds an empty path to the session and returns it for building.
func (s *EditSession) NewPath() *path.Path {
	s.nextPath++
	p := path.New(s.nextPath)
	s.paths = append(s.paths, p)
	return p
}

// AddGuide adds a guide and returns its ID.
func (s *EditSession) AddGuide(kind path.GuideKind, pos design.Point) path.EntityID {
	s.nextGuide++
	g := path.NewGuide(s.nextGuide, kind, pos)
	s.guides = append(s.guides, g)
	return g.ID
}

// Paths returns the session's paths. The slice must not be modified.
func (s *EditSession) Paths() []*path.Path {
	return s.paths
}

// Guides returns the session's guides. The slice must not be modified.
func (s *EditSession) Guides() []path.Guide {
	return s.guides
}

// IterPoints iterates over every point of every path, handles included.
func (s *EditSession) IterPoints() iter.Seq[path.PathPoint] {
	return func(yield func(path.PathPoint) bool) {
		for _, p := range s.paths {
			for _, pt := range p.Points() {
				if !yield(pt) {
					return
				}
			}
		}
	}
}

// PathForPoint returns the path that owns id.
func (s *EditSession) PathForPoint(id path.EntityID) (*path.Path, bool) {
	if id.IsGuide() {
		return nil, false
	}
	for _, p := range s.paths {
		if p.ID() == id.Parent() {
			return p, p.Contains(id)
		}
	}
	return nil, false
}

// PathPoint returns the point with the given ID.
func (s *EditSession) PathPoint(id path.EntityID) (path.PathPoint, bool) {
	p, ok := s.PathForPoint(id)
	if !ok {
		return path.PathPoint{}, false
	}
	return p.Point(id)
}

// Guide returns the guide with the given ID.
func (s *EditSession) Guide(id path.EntityID) (path.Guide, bool) {
	i := s.guideIndex(id)
	if i < 0 {
		return path.Guide{}, false
	}
	return s.guides[i], true
}

func (s *EditSession) guideIndex(id path.EntityID) int {
	if !id.IsGuide() {
		return -1
	}
	return slices.IndexFunc(s.guides, func(g path.Guide) bool { return g.ID == id })
}

// Selection returns the current selection. The returned set is a snapshot;
// later changes to the session's selection do not affect it.
func (s *EditSession) Selection() selection.Set {
	return s.selection.Clone()
}

// SelectionMut returns the live selection for in-place changes.
func (s *EditSession) SelectionMut() *selection.Set {
	return &s.selection
}

// SetSelection replaces the selection.
func (s *EditSession) SetSelection(sel selection.Set) {
	s.selection = sel
}

// SetSelectionOne replaces the selection with a single ID.
func (s *EditSession) SetSelectionOne(id path.EntityID) {
	s.selection = selection.New(id)
}

// ClearSelection removes every ID from the selection.
func (s *EditSession) ClearSelection() {
	s.selection.Clear()
}

// DeleteSelection removes every selected point and guide. Paths left
// without a vertex are removed. It returns true if anything was deleted.
func (s *EditSession) DeleteSelection() bool {
	if s.selection.IsEmpty() {
		return false
	}
	sel := s.selection
	changed := false

	for _, p := range s.paths {
		if p.DeletePoints(sel.Contains) {
			changed = true
		}
	}
	s.paths = slices.DeleteFunc(s.paths, (*path.Path).IsEmpty)

	n := len(s.guides)
	s.guides = slices.DeleteFunc(s.guides, func(g path.Guide) bool { return sel.Contains(g.ID) })
	if len(s.guides) != n {
		changed = true
	}

	s.selection.Clear()
	return changed
}

// NudgeSelection moves every selected point and guide by delta.
// It returns true if anything moved.
func (s *EditSession) NudgeSelection(delta design.Vec2) bool {
	if s.selection.IsEmpty() || delta.IsZero() {
		return false
	}
	changed := false
	for _, p := range s.paths {
		if p.Nudge(s.selection.Contains, delta) {
			changed = true
		}
	}
	for i := range s.guides {
		if s.selection.Contains(s.guides[i].ID) {
			s.guides[i].Nudge(delta)
			changed = true
		}
	}
	return changed
}

// SelectNext moves the selection to the point after the first selected
// point in its path, wrapping. With no selected point it selects the first
// point of the first path.
func (s *EditSession) SelectNext() {
	s.step(true)
}

// SelectPrev moves the selection to the point before the first selected
// point in its path, wrapping. With no selected point it selects the last
// point of the last path.
func (s *EditSession) SelectPrev() {
	s.step(false)
}

func (s *EditSession) step(forward bool) {
	first, ok := s.selection.First()
	if ok && !first.IsGuide() {
		if p, found := s.PathForPoint(first); found {
			next, _ := p.PrevPoint(first)
			if forward {
				next, _ = p.NextPoint(first)
			}
			s.SetSelectionOne(next)
			return
		}
	}

	paths := slices.DeleteFunc(slices.Clone(s.paths), (*path.Path).IsEmpty)
	if len(paths) == 0 {
		return
	}
	if forward {
		s.SetSelectionOne(paths[0].Points()[0].ID)
		return
	}
	last := paths[len(paths)-1].Points()
	s.SetSelectionOne(last[len(last)-1].ID)
}

// ToggleSelectedOnCurveType flips every selected vertex between corner and
// smooth. It returns true if any point changed.
func (s *EditSession) ToggleSelectedOnCurveType() bool {
	changed := 0
	for _, p := range s.paths {
		changed += p.ToggleSmooth(s.selection.Contains)
	}
	return changed > 0
}

// ToggleGuide flips the orientation of guide id, re-anchoring it at the
// screen position pos. It returns false if id is not a guide of the session.
func (s *EditSession) ToggleGuide(id path.EntityID, pos geom.Point) bool {
	i := s.guideIndex(id)
	if i < 0 {
		return false
	}
	s.guides[i].Toggle(s.viewport.FromScreen(pos))
	return true
}

// SelectPath selects every point of the path under the screen position pos.
// If additive is false the previous selection is replaced. It returns false,
// leaving the selection unchanged, if no path is under pos.
func (s *EditSession) SelectPath(pos geom.Point, additive bool) bool {
	var target *path.Path
	if seg, _, ok := s.HitTestSegments(pos, nil); ok {
		target, _ = s.PathForPoint(seg.StartID())
	} else if id, ok := s.HitTestAll(pos, func(id path.EntityID) bool { return !id.IsGuide() }); ok {
		target, _ = s.PathForPoint(id)
	}
	if target == nil {
		return false
	}

	if !additive {
		s.selection.Clear()
	}
	for _, pt := range target.Points() {
		s.selection.Insert(pt.ID)
	}
	return true
}

// Snapshot returns a deep copy of the session for undo. The copy shares the
// session's ID.
func (s *EditSession) Snapshot() *EditSession {
	c := *s
	c.paths = make([]*path.Path, len(s.paths))
	for i, p := range s.paths {
		c.paths[i] = p.Clone()
	}
	c.guides = slices.Clone(s.guides)
	return &c
}
