package session

import (
	"math"

	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/path"
)

// curveSamples is the number of chords used to approximate a curve segment
// when hit testing.
const curveSamples = 32

// HitTestAll returns the entity nearest to the screen position pos within
// the hit tolerance. Points take precedence over guides. If filter is not
// nil, only entities it accepts are considered.
func (s *EditSession) HitTestAll(pos geom.Point, filter func(path.EntityID) bool) (path.EntityID, bool) {
	accept := func(id path.EntityID) bool {
		return filter == nil || filter(id)
	}

	best := math.Inf(1)
	var hit path.EntityID
	found := false
	for pt := range s.IterPoints() {
		if !accept(pt.ID) {
			continue
		}
		d := pt.ToScreen(s.viewport).Distance(pos)
		if d <= s.tolerance && d < best {
			best, hit, found = d, pt.ID, true
		}
	}
	if found {
		return hit, true
	}

	for _, g := range s.guides {
		if !accept(g.ID) {
			continue
		}
		d := g.ScreenDistance(pos, s.viewport)
		if d <= s.tolerance && d < best {
			best, hit, found = d, g.ID, true
		}
	}
	return hit, found
}

// HitTestSegments returns the segment nearest to the screen position pos
// within the hit tolerance, along with the curve parameter t of the nearest
// point on it. If filter is not nil, only segments it accepts are considered.
func (s *EditSession) HitTestSegments(pos geom.Point, filter func(path.Segment) bool) (path.Segment, float64, bool) {
	best := math.Inf(1)
	var (
		hit   path.Segment
		hitT  float64
		found bool
	)
	for _, p := range s.paths {
		for seg := range p.Segments() {
			if filter != nil && !filter(seg) {
				continue
			}
			d, t := s.segmentDistance(seg, pos)
			if d <= s.tolerance && d < best {
				best, hit, hitT, found = d, seg, t, true
			}
		}
	}
	return hit, hitT, found
}

// segmentDistance returns the screen distance from pos to seg and the
// parameter of the nearest point.
func (s *EditSession) segmentDistance(seg path.Segment, pos geom.Point) (float64, float64) {
	if seg.IsLine() {
		a := seg.Start().ToScreen(s.viewport)
		b := seg.End().ToScreen(s.viewport)
		return geom.SegmentDistance(pos, a, b)
	}

	best, bestT := math.Inf(1), 0.0
	prev := seg.Eval(0).ToScreen(s.viewport)
	for i := 1; i <= curveSamples; i++ {
		t1 := float64(i) / curveSamples
		next := seg.Eval(t1).ToScreen(s.viewport)
		d, u := geom.SegmentDistance(pos, prev, next)
		if d < best {
			t0 := float64(i-1) / curveSamples
			best, bestT = d, t0+u*(t1-t0)
		}
		prev = next
	}
	return best, bestT
}

// PointsInRect returns the IDs of every point whose screen position lies
// inside r.
func (s *EditSession) PointsInRect(r geom.Rect) []path.EntityID {
	var ids []path.EntityID
	for pt := range s.IterPoints() {
		if r.Contains(pt.ToScreen(s.viewport)) {
			ids = append(ids, pt.ID)
		}
	}
	return ids
}
