// Package geom provides screen-space geometry primitives.
//
// Screen space is the pixel (or cell) coordinate system of the rendered
// canvas: X grows to the right and Y grows downward. Design-space types live
// in the design package and are converted through a design.Viewport.
package geom

import "math"

// Point is a position in screen space.
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

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Hypot()
}

// Lerp linearly interpolates between p and other.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// Vec2 is a screen-space displacement.
type Vec2 struct {
	X float64
	Y float64
}

// Hypot returns the length of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Dot returns the dot product of v and other.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rect is an axis-aligned rectangle with X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// RectFromPoints returns the rectangle spanned by two corner points, in any order.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X0: math.Min(a.X, b.X),
		Y0: math.Min(a.Y, b.Y),
		X1: math.Max(a.X, b.X),
		Y1: math.Max(a.Y, b.Y),
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Contains reports whether p lies inside the rectangle.
// The minimum edges are inclusive and the maximum edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// SegmentDistance returns the distance from p to the line segment a-b and the
// parameter t in [0, 1] of the nearest point on that segment.
func SegmentDistance(p, a, b Point) (dist, t float64) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a), 0
	}
	t = p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Lerp(b, t)), t
}
