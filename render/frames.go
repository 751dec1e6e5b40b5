// Package render converts GIF animation frames into terminal cell grids
// using half-block characters (two vertical pixels per cell).
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"

	"github.com/lixenwraith/ft-sipping/terminal"
)

// Frame is one animation frame converted to terminal cells.
// Immutable once built; Cells is row-major: Cells[y*Width + x].
type Frame struct {
	Width  int
	Height int
	Cells  []terminal.Cell
}

// Row returns the cell slice for row y
func (f *Frame) Row(y int) []terminal.Cell {
	return f.Cells[y*f.Width : (y+1)*f.Width]
}

// DecodeFrames decodes an animated GIF and converts every frame to a
// cell grid targetWidth columns wide. Frames are composited onto a
// shared canvas honoring GIF disposal methods: restore-to-background
// clears the canvas between frames, none/keep accumulates, and
// restore-previous (rare) is treated as keep.
func DecodeFrames(r io.Reader, targetWidth int, colorMode terminal.ColorMode) ([]*Frame, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]*Frame, 0, len(g.Image))
	for i, src := range g.Image {
		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frames = append(frames, ConvertFrame(canvas, targetWidth, colorMode))

		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			clear(canvas.Pix)
		}
	}

	return frames, nil
}

// Mirror returns a horizontally flipped copy of f. Half-block runes
// are vertically symmetric so only cell order changes.
func Mirror(f *Frame) *Frame {
	cells := make([]terminal.Cell, len(f.Cells))
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		for x := 0; x < f.Width; x++ {
			cells[y*f.Width+x] = row[f.Width-1-x]
		}
	}
	return &Frame{Width: f.Width, Height: f.Height, Cells: cells}
}
