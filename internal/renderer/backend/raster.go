package backend

import (
	"image/color"
	"math"

	"github.com/dshills/contour/internal/geom"
)

// Raster draws screen-space geometry onto a grid of cells. It keeps the
// previously flushed frame and only sends changed cells to the backend.
type Raster struct {
	width, height int
	cellW, cellH  float64

	front      [][]Cell
	back       [][]Cell
	fullRedraw bool
}

// NewRaster creates a raster of width x height cells, each covering
// cellW x cellH screen units.
func NewRaster(width, height int, cellW, cellH float64) *Raster {
	r := &Raster{
		width:      width,
		height:     height,
		cellW:      cellW,
		cellH:      cellH,
		fullRedraw: true,
	}
	r.allocate()
	return r
}

func (r *Raster) allocate() {
	r.front = make([][]Cell, r.height)
	r.back = make([][]Cell, r.height)
	for y := 0; y < r.height; y++ {
		r.front[y] = make([]Cell, r.width)
		r.back[y] = make([]Cell, r.width)
		for x := 0; x < r.width; x++ {
			r.front[y][x] = EmptyCell()
			r.back[y][x] = EmptyCell()
		}
	}
}

// Resize changes the grid size. The next flush redraws everything.
func (r *Raster) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width = width
	r.height = height
	r.allocate()
	r.fullRedraw = true
}

// Size returns the grid dimensions in cells.
func (r *Raster) Size() (width, height int) {
	return r.width, r.height
}

// Cell returns the cell at (x, y) of the frame being drawn.
func (r *Raster) Cell(x, y int) Cell {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return EmptyCell()
	}
	return r.back[y][x]
}

func (r *Raster) cellAt(p geom.Point) (int, int) {
	return int(math.Floor(p.X / r.cellW)), int(math.Floor(p.Y / r.cellH))
}

func (r *Raster) inside(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// Bounds returns the area covered by the grid in screen space.
func (r *Raster) Bounds() geom.Rect {
	return geom.Rect{X1: float64(r.width) * r.cellW, Y1: float64(r.height) * r.cellH}
}

// FillRect blends c into the background of every cell whose center lies
// inside rect.
func (r *Raster) FillRect(rect geom.Rect, c color.Color) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			center := geom.Pt((float64(x)+0.5)*r.cellW, (float64(y)+0.5)*r.cellH)
			if !rect.Contains(center) {
				continue
			}
			cell := &r.back[y][x]
			cell.Bg = over(cell.Bg, c)
			if _, _, _, a := c.RGBA(); a == 0xffff {
				cell.Rune = ' '
				cell.Fg = nil
			}
		}
	}
}

// StrokeRect outlines rect with box drawing characters.
func (r *Raster) StrokeRect(rect geom.Rect, c color.Color, _ float64) {
	x0, y0 := r.cellAt(geom.Pt(rect.X0, rect.Y0))
	x1, y1 := r.cellAt(geom.Pt(rect.X1, rect.Y1))
	for x := x0; x <= x1; x++ {
		r.plot(x, y0, '─', c)
		r.plot(x, y1, '─', c)
	}
	for y := y0; y <= y1; y++ {
		r.plot(x0, y, '│', c)
		r.plot(x1, y, '│', c)
	}
	r.plot(x0, y0, '┌', c)
	r.plot(x1, y0, '┐', c)
	r.plot(x0, y1, '└', c)
	r.plot(x1, y1, '┘', c)
}

// StrokeLine draws the line from a to b with a character matching its slope.
func (r *Raster) StrokeLine(a, b geom.Point, c color.Color, _ float64) {
	ax, ay := a.X/r.cellW, a.Y/r.cellH
	bx, by := b.X/r.cellW, b.Y/r.cellH
	dx, dy := bx-ax, by-ay

	ch := lineRune(dx, dy)
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		r.plot(int(math.Floor(ax)), int(math.Floor(ay)), ch, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.plot(int(math.Floor(ax+dx*t)), int(math.Floor(ay+dy*t)), ch, c)
	}
}

// FillCircle marks the cell containing center. Small radii draw a lighter
// glyph.
func (r *Raster) FillCircle(center geom.Point, radius float64, c color.Color) {
	x, y := r.cellAt(center)
	ch := '●'
	if radius < 3 {
		ch = '•'
	}
	r.plot(x, y, ch, c)
}

func (r *Raster) plot(x, y int, ch rune, c color.Color) {
	if !r.inside(x, y) {
		return
	}
	cell := &r.back[y][x]
	cell.Rune = ch
	cell.Fg = c
}

// lineRune picks a character for a line with the given cell-space slope.
// Screen y grows downward.
func lineRune(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay <= ax/2:
		return '─'
	case ax <= ay/2:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// over composites src over dst. A nil dst yields src unchanged.
func over(dst, src color.Color) color.Color {
	s := color.NRGBAModel.Convert(src).(color.NRGBA)
	if s.A == 0xff || dst == nil {
		return s
	}
	d := color.NRGBAModel.Convert(dst).(color.NRGBA)
	a := float64(s.A) / 0xff
	mix := func(sv, dv uint8) uint8 {
		return uint8(math.Round(float64(sv)*a + float64(dv)*(1-a)))
	}
	return color.NRGBA{R: mix(s.R, d.R), G: mix(s.G, d.G), B: mix(s.B, d.B), A: 0xff}
}

// Clear resets every cell of the frame being drawn.
func (r *Raster) Clear() {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.back[y][x] = EmptyCell()
		}
	}
}

// DiffChange represents a cell change for synchronization.
type DiffChange struct {
	X, Y int
	Cell Cell
}

// ComputeDiff returns the cells that differ from the last flushed frame.
func (r *Raster) ComputeDiff() []DiffChange {
	var changes []DiffChange
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if r.fullRedraw || !r.back[y][x].Equals(r.front[y][x]) {
				changes = append(changes, DiffChange{X: x, Y: y, Cell: r.back[y][x]})
			}
		}
	}
	return changes
}

// Flush sends changed cells to b and shows them. It returns the number of
// cells sent.
func (r *Raster) Flush(b Backend) int {
	changes := r.ComputeDiff()
	for _, ch := range changes {
		b.SetCell(ch.X, ch.Y, ch.Cell)
	}
	if len(changes) > 0 {
		b.Show()
	}
	for y := 0; y < r.height; y++ {
		copy(r.front[y], r.back[y])
	}
	r.fullRedraw = false
	return len(changes)
}
