// Package path provides the vector path model edited by the selection tool.
//
// A Path is an ordered list of points. On-curve points are vertices; the
// off-curve points between two consecutive vertices are that segment's
// control handles (zero for a line, one for a quadratic, two for a cubic).
// Every non-empty path starts with an on-curve point. A closed path wraps
// from its last vertex back to the first; handles of the wrapping segment
// are stored at the end of the list.
package path

import (
	"iter"
	"slices"

	"github.com/dshills/contour/internal/design"
)

// Path is a single contour.
type Path struct {
	id        uint64
	points    []PathPoint
	closed    bool
	nextPoint uint32
}

// New creates an empty open path with the given ID.
func New(id uint64) *Path {
	return &Path{id: id}
}

// ID returns the path ID. Every point ID of the path has it as Parent.
func (p *Path) ID() uint64 {
	return p.id
}

// Closed returns true if the path wraps from its last vertex to its first.
func (p *Path) Closed() bool {
	return p.closed
}

// Close marks the path as closed.
func (p *Path) Close() {
	p.closed = true
}

// Len returns the number of points, handles included.
func (p *Path) Len() int {
	return len(p.points)
}

// IsEmpty returns true if the path has no points.
func (p *Path) IsEmpty() bool {
	return len(p.points) == 0
}

// Points returns the path's points in order. The slice must not be modified.
func (p *Path) Points() []PathPoint {
	return p.points
}

// AddOnCurve appends a vertex and returns its ID.
func (p *Path) AddOnCurve(pt design.Point) EntityID {
	return p.add(pt, OnCurve)
}

// AddOffCurve appends a control handle and returns its ID.
func (p *Path) AddOffCurve(pt design.Point) EntityID {
	return p.add(pt, OffCurve)
}

// CurveTo appends a cubic segment ending at end and returns the end point's ID.
func (p *Path) CurveTo(c1, c2, end design.Point) EntityID {
	p.add(c1, OffCurve)
	p.add(c2, OffCurve)
	return p.add(end, OnCurve)
}

func (p *Path) add(pt design.Point, typ PointType) EntityID {
	id := p.newID()
	p.points = append(p.points, PathPoint{ID: id, Point: pt, Type: typ})
	return id
}

func (p *Path) newID() EntityID {
	p.nextPoint++
	return PointID(p.id, p.nextPoint)
}

func (p *Path) index(id EntityID) int {
	if id.IsGuide() || id.Parent() != p.id {
		return -1
	}
	for i, pt := range p.points {
		if pt.ID == id {
			return i
		}
	}
	return -1
}

// Contains returns true if id is a point of this path.
func (p *Path) Contains(id EntityID) bool {
	return p.index(id) >= 0
}

// Point returns the point with the given ID.
func (p *Path) Point(id EntityID) (PathPoint, bool) {
	i := p.index(id)
	if i < 0 {
		return PathPoint{}, false
	}
	return p.points[i], true
}

// NextPoint returns the point after id, wrapping to the first point.
func (p *Path) NextPoint(id EntityID) (EntityID, bool) {
	i := p.index(id)
	if i < 0 {
		return EntityID{}, false
	}
	return p.points[(i+1)%len(p.points)].ID, true
}

// PrevPoint returns the point before id, wrapping to the last point.
func (p *Path) PrevPoint(id EntityID) (EntityID, bool) {
	i := p.index(id)
	if i < 0 {
		return EntityID{}, false
	}
	return p.points[(i+len(p.points)-1)%len(p.points)].ID, true
}

// Segments iterates over the path's segments in order.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		n := len(p.points)
		if n < 2 {
			return
		}
		on := p.onCurveIndices()
		if len(on) == 0 {
			return
		}

		count := len(on) - 1
		if p.closed {
			count = len(on)
		}
		for k := 0; k < count; k++ {
			start := on[k]
			end := on[(k+1)%len(on)]

			pts := []PathPoint{p.points[start]}
			for i := (start + 1) % n; i != end; i = (i + 1) % n {
				pts = append(pts, p.points[i])
			}
			pts = append(pts, p.points[end])

			if !yield(Segment{Kind: segmentKind(len(pts) - 2), Points: pts}) {
				return
			}
		}
	}
}

func (p *Path) onCurveIndices() []int {
	var on []int
	for i, pt := range p.points {
		if pt.IsOnCurve() {
			on = append(on, i)
		}
	}
	return on
}

// neighbors returns the indices adjacent to i, honoring wrap-around for
// closed paths.
func (p *Path) neighbors(i int) []int {
	n := len(p.points)
	var out []int
	if i > 0 {
		out = append(out, i-1)
	} else if p.closed && n > 1 {
		out = append(out, n-1)
	}
	if i < n-1 {
		out = append(out, i+1)
	} else if p.closed && n > 1 {
		out = append(out, 0)
	}
	return out
}

// handleRun returns the indices of the contiguous off-curve run containing i.
func (p *Path) handleRun(i int) []int {
	n := len(p.points)
	run := []int{i}
	step := func(j, dir int) (int, bool) {
		j += dir
		if j < 0 || j >= n {
			if !p.closed {
				return 0, false
			}
			j = (j + n) % n
		}
		return j, true
	}
	for _, dir := range []int{-1, 1} {
		j := i
		for range n {
			next, ok := step(j, dir)
			if !ok || next == i || p.points[next].IsOnCurve() || slices.Contains(run, next) {
				break
			}
			run = append(run, next)
			j = next
		}
	}
	return run
}

// UpgradeLineSeg converts a line segment of this path into a cubic curve by
// inserting handles at one and two thirds of its length. It returns false if
// seg is not a line belonging to this path.
func (p *Path) UpgradeLineSeg(seg Segment) bool {
	if !seg.IsLine() {
		return false
	}
	i := p.index(seg.StartID())
	if i < 0 {
		return false
	}
	if p.points[(i+1)%len(p.points)].ID != seg.End().ID {
		return false
	}

	a, b := seg.Start().Point, seg.End().Point
	h1 := PathPoint{ID: p.newID(), Point: a.Lerp(b, 1.0/3.0), Type: OffCurve}
	h2 := PathPoint{ID: p.newID(), Point: a.Lerp(b, 2.0/3.0), Type: OffCurve}
	p.points = slices.Insert(p.points, i+1, h1, h2)
	return true
}

// ToggleSmooth flips corner/smooth on every selected on-curve point and
// returns how many points changed.
func (p *Path) ToggleSmooth(selected func(EntityID) bool) int {
	changed := 0
	for i := range p.points {
		pt := &p.points[i]
		if pt.IsOnCurve() && selected(pt.ID) {
			pt.Smooth = !pt.Smooth
			changed++
		}
	}
	return changed
}

// Nudge moves every selected point by delta. Handles adjacent to a selected
// vertex move with it unless they are selected themselves. It returns true
// if any point moved.
func (p *Path) Nudge(selected func(EntityID) bool, delta design.Vec2) bool {
	moved := make([]bool, len(p.points))
	changed := false
	move := func(i int) {
		if !moved[i] {
			p.points[i].Point = p.points[i].Point.Add(delta)
			moved[i] = true
			changed = true
		}
	}

	for i, pt := range p.points {
		if !selected(pt.ID) {
			continue
		}
		move(i)
		if !pt.IsOnCurve() {
			continue
		}
		for _, j := range p.neighbors(i) {
			nb := p.points[j]
			if !nb.IsOnCurve() && !selected(nb.ID) {
				move(j)
			}
		}
	}
	return changed
}

// DeletePoints removes every selected point. Deleting a vertex also removes
// the handles next to it; deleting a handle removes every handle of its
// segment, turning it into a line. It returns true if anything was removed.
func (p *Path) DeletePoints(selected func(EntityID) bool) bool {
	remove := make([]bool, len(p.points))
	found := false
	for i, pt := range p.points {
		if !selected(pt.ID) {
			continue
		}
		found = true
		remove[i] = true
		if pt.IsOnCurve() {
			for _, j := range p.neighbors(i) {
				if !p.points[j].IsOnCurve() {
					remove[j] = true
				}
			}
			continue
		}
		for _, j := range p.handleRun(i) {
			remove[j] = true
		}
	}
	if !found {
		return false
	}

	kept := p.points[:0:0]
	for i, pt := range p.points {
		if !remove[i] {
			kept = append(kept, pt)
		}
	}
	p.points = kept
	p.normalize()
	return true
}

// normalize restores the invariant that a non-empty path starts with a
// vertex, dropping the path's points entirely if no vertex remains.
func (p *Path) normalize() {
	first := slices.IndexFunc(p.points, PathPoint.IsOnCurve)
	if first < 0 {
		p.points = nil
		return
	}
	if p.closed {
		p.points = slices.Concat(p.points[first:], p.points[:first])
		return
	}
	last := len(p.points) - 1
	for last > first && !p.points[last].IsOnCurve() {
		last--
	}
	p.points = p.points[first : last+1]
}

// Clone returns a deep copy of the path. IDs are preserved.
func (p *Path) Clone() *Path {
	c := *p
	c.points = slices.Clone(p.points)
	return &c
}
