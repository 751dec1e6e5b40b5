package render

import (
	"image"

	"github.com/lixenwraith/ft-sipping/terminal"
)

// Half-block characters: upper pixel on, lower pixel on
const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// alphaOpaque is the minimum 8-bit alpha treated as a visible pixel
const alphaOpaque = 30

// ConvertFrame renders img as half-block cells targetWidth columns wide.
// Each cell encodes two vertically stacked pixels: the upper in the
// foreground color, the lower in the background. Transparent pixel
// pairs become bare spaces so the terminal background shows through.
func ConvertFrame(img *image.RGBA, targetWidth int, colorMode terminal.ColorMode) *Frame {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	if srcW == 0 || srcH == 0 || targetWidth <= 0 {
		return &Frame{}
	}

	// Pixel grid: one column per cell, two pixel rows per cell row
	gridW := targetWidth
	gridH := (targetWidth * srcH) / srcW
	gridH += gridH % 2
	if gridH < 2 {
		gridH = 2
	}
	outH := gridH / 2

	cells := make([]terminal.Cell, gridW*outH)

	for y := 0; y < outH; y++ {
		for x := 0; x < gridW; x++ {
			upper, upOK := samplePixel(img, x, y*2, gridW, gridH)
			lower, loOK := samplePixel(img, x, y*2+1, gridW, gridH)

			idx := y*gridW + x
			switch {
			case !upOK && !loOK:
				// Both transparent: bare space, no colors
			case !upOK:
				cells[idx] = makeCell(lowerHalf, lower, terminal.RGB{}, false, colorMode)
			case !loOK:
				cells[idx] = makeCell(upperHalf, upper, terminal.RGB{}, false, colorMode)
			default:
				cells[idx] = makeCell(upperHalf, upper, lower, true, colorMode)
			}
		}
	}

	return &Frame{Width: gridW, Height: outH, Cells: cells}
}

// samplePixel maps a pixel-grid position to the source image center
// sample. Returns false for transparent pixels.
func samplePixel(img *image.RGBA, gx, gy, gridW, gridH int) (terminal.RGB, bool) {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	sx := bounds.Min.X + (gx*srcW+srcW/2)/gridW
	sy := bounds.Min.Y + (gy*srcH+srcH/2)/gridH

	// Clamp to bounds
	if sx >= bounds.Max.X {
		sx = bounds.Max.X - 1
	}
	if sy >= bounds.Max.Y {
		sy = bounds.Max.Y - 1
	}

	c := img.RGBAAt(sx, sy)
	if c.A < alphaOpaque {
		return terminal.RGB{}, false
	}
	return terminal.RGB{R: c.R, G: c.G, B: c.B}, true
}

// makeCell builds a cell for the given rune and colors, downsampling
// to the 256-color palette when required
func makeCell(r rune, fg, bg terminal.RGB, hasBg bool, colorMode terminal.ColorMode) terminal.Cell {
	cell := terminal.Cell{Rune: r, Attrs: terminal.AttrHasFg}

	if colorMode == terminal.ColorMode256 {
		cell.Fg = terminal.RGB{R: terminal.RGBTo256(fg)}
		cell.Attrs |= terminal.AttrFg256
		if hasBg {
			cell.Bg = terminal.RGB{R: terminal.RGBTo256(bg)}
			cell.Attrs |= terminal.AttrHasBg | terminal.AttrBg256
		}
		return cell
	}

	cell.Fg = fg
	if hasBg {
		cell.Bg = bg
		cell.Attrs |= terminal.AttrHasBg
	}
	return cell
}
