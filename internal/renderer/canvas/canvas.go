// Package canvas renders the editor into an image with fogleman/gg.
//
// Canvas implements the editor's paint surface in screen space, one pixel
// per screen unit, and is used for PNG snapshots of a session.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/dshills/contour/internal/geom"
)

// CaptionSize is the font size of captions, in points at 72 DPI.
const CaptionSize = 12.0

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// Canvas is an in-memory raster surface.
type Canvas struct {
	dc *gg.Context
}

// New creates a transparent canvas of the given size in pixels.
func New(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.dc.Height()
}

// Bounds returns the canvas area.
func (c *Canvas) Bounds() geom.Rect {
	return geom.Rect{X1: float64(c.dc.Width()), Y1: float64(c.dc.Height())}
}

// FillRect fills r with col.
func (c *Canvas) FillRect(r geom.Rect, col color.Color) {
	c.dc.DrawRectangle(r.X0, r.Y0, r.Width(), r.Height())
	c.dc.SetColor(col)
	c.dc.Fill()
}

// StrokeRect outlines r. The outline is drawn on the half pixel so that
// one-pixel strokes stay crisp.
func (c *Canvas) StrokeRect(r geom.Rect, col color.Color, width float64) {
	c.dc.SetLineWidth(width)
	c.dc.DrawRectangle(r.X0+0.5, r.Y0+0.5, r.Width()-1, r.Height()-1)
	c.dc.SetColor(col)
	c.dc.Stroke()
}

// StrokeLine draws the line from a to b.
func (c *Canvas) StrokeLine(a, b geom.Point, col color.Color, width float64) {
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.dc.SetColor(col)
	c.dc.Stroke()
}

// FillCircle fills the disc around center.
func (c *Canvas) FillCircle(center geom.Point, radius float64, col color.Color) {
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.SetColor(col)
	c.dc.Fill()
}

// Caption writes text in the bottom-left corner in a monospaced font.
func (c *Canvas) Caption(text string, col color.Color) error {
	f, err := loadFont()
	if err != nil {
		return fmt.Errorf("load caption font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    CaptionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(text, 4, float64(c.dc.Height())-4, 0, 0)
	return nil
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the image to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the image to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}
