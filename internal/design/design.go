// Package design provides design-space coordinates and the viewport that
// maps them to and from screen space.
//
// Design space is the document's logical coordinate system. It is Y-up:
// increasing Y moves a point toward the top of the canvas, the opposite of
// screen space.
package design

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/dshills/contour/internal/geom"
)

// Point is a position in design space.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Vec2 {
	return Vec2{X: p.X - other.X, Y: p.Y - other.Y}
}

// Lerp linearly interpolates between p and other.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// ToScreen converts p to screen space through vp.
func (p Point) ToScreen(vp Viewport) geom.Point {
	return vp.ToScreen(p)
}

// Vec2 is a design-space displacement.
type Vec2 struct {
	X float64
	Y float64
}

// Vec is shorthand for Vec2{X: x, Y: y}.
func Vec(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Hypot returns the length of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// IsZero returns true for the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Viewport maps design space onto the screen.
//
// A design point (x, y) appears on screen at
// (Offset.X + x*Zoom, Offset.Y - y*Zoom).
type Viewport struct {
	// Offset is the screen position of the design-space origin.
	Offset geom.Vec2

	// Zoom is the number of screen units per design unit.
	Zoom float64
}

// DefaultViewport returns a viewport at 1:1 zoom with the origin at the
// screen's top-left corner.
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// Matrix returns the affine transform from design space to screen space.
func (vp Viewport) Matrix() gg.Matrix {
	zoom := vp.zoom()
	return gg.Scale(zoom, -zoom).Multiply(gg.Translate(vp.Offset.X, vp.Offset.Y))
}

// ToScreen converts a design-space point to screen space.
func (vp Viewport) ToScreen(p Point) geom.Point {
	x, y := vp.Matrix().TransformPoint(p.X, p.Y)
	return geom.Pt(x, y)
}

// FromScreen converts a screen-space point to design space.
func (vp Viewport) FromScreen(p geom.Point) Point {
	x, y := invert(vp.Matrix()).TransformPoint(p.X, p.Y)
	return Pt(x, y)
}

// ScreenDistance converts a screen-space length to design units.
func (vp Viewport) ScreenDistance(d float64) float64 {
	return d / vp.zoom()
}

func (vp Viewport) zoom() float64 {
	if vp.Zoom <= 0 {
		return 1
	}
	return vp.Zoom
}

// invert returns the inverse of an affine matrix. gg has no inverse, and the
// viewport matrix is always invertible because zoom is kept positive.
func invert(m gg.Matrix) gg.Matrix {
	det := m.XX*m.YY - m.XY*m.YX
	inv := 1 / det
	return gg.Matrix{
		XX: m.YY * inv,
		YX: -m.YX * inv,
		XY: -m.XY * inv,
		YY: m.XX * inv,
		X0: (m.XY*m.Y0 - m.YY*m.X0) * inv,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) * inv,
	}
}
