package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/lixenwraith/ft-sipping/terminal"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// rgba builds a source image from a pixel grid; nil entries stay transparent
func rgba(w, h int, pixels map[[2]int]color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for pos, c := range pixels {
		img.SetRGBA(pos[0], pos[1], c)
	}
	return img
}

func TestConvertFrameHalfBlocks(t *testing.T) {
	tests := []struct {
		name     string
		pixels   map[[2]int]color.RGBA
		wantRune rune
		wantFg   terminal.RGB
		wantBg   terminal.RGB
		wantAttr terminal.Attr
	}{
		{
			name:     "Both opaque",
			pixels:   map[[2]int]color.RGBA{{0, 0}: red, {0, 1}: blue},
			wantRune: '▀',
			wantFg:   terminal.RGB{R: 255},
			wantBg:   terminal.RGB{B: 255},
			wantAttr: terminal.AttrHasFg | terminal.AttrHasBg,
		},
		{
			name:     "Upper only",
			pixels:   map[[2]int]color.RGBA{{0, 0}: red},
			wantRune: '▀',
			wantFg:   terminal.RGB{R: 255},
			wantAttr: terminal.AttrHasFg,
		},
		{
			name:     "Lower only",
			pixels:   map[[2]int]color.RGBA{{0, 1}: blue},
			wantRune: '▄',
			wantFg:   terminal.RGB{B: 255},
			wantAttr: terminal.AttrHasFg,
		},
		{
			name:     "Both transparent",
			pixels:   nil,
			wantRune: 0,
			wantAttr: terminal.AttrNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 1x2 source: one cell column, one half-block pair
			img := rgba(1, 2, tt.pixels)
			f := ConvertFrame(img, 1, terminal.ColorModeTrueColor)

			if f.Width != 1 || f.Height != 1 {
				t.Fatalf("Expected 1x1 frame, got %dx%d", f.Width, f.Height)
			}

			cell := f.Cells[0]
			if cell.Rune != tt.wantRune {
				t.Errorf("Expected rune %q, got %q", tt.wantRune, cell.Rune)
			}
			if cell.Attrs != tt.wantAttr {
				t.Errorf("Expected attrs %b, got %b", tt.wantAttr, cell.Attrs)
			}
			if cell.Fg != tt.wantFg {
				t.Errorf("Expected fg %v, got %v", tt.wantFg, cell.Fg)
			}
			if cell.Bg != tt.wantBg {
				t.Errorf("Expected bg %v, got %v", tt.wantBg, cell.Bg)
			}
		})
	}
}

func TestConvertFrame256Palette(t *testing.T) {
	img := rgba(1, 2, map[[2]int]color.RGBA{{0, 0}: red, {0, 1}: blue})
	f := ConvertFrame(img, 1, terminal.ColorMode256)

	cell := f.Cells[0]
	if cell.Attrs&terminal.AttrFg256 == 0 || cell.Attrs&terminal.AttrBg256 == 0 {
		t.Fatalf("Expected 256-palette attrs, got %b", cell.Attrs)
	}
	if want := terminal.RGBTo256(terminal.RGB{R: 255}); cell.Fg.R != want {
		t.Errorf("Expected fg palette index %d, got %d", want, cell.Fg.R)
	}
	if want := terminal.RGBTo256(terminal.RGB{B: 255}); cell.Bg.R != want {
		t.Errorf("Expected bg palette index %d, got %d", want, cell.Bg.R)
	}
}

func TestConvertFrameDimensions(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		targetWidth  int
		wantW, wantH int
	}{
		{"Square at native width", 24, 24, 24, 24, 12},
		{"Square downscaled", 24, 24, 18, 18, 9},
		{"Wide source", 40, 10, 20, 20, 3}, // grid height 5 rounded up to 6
		{"Tall source", 4, 16, 4, 4, 8},
		{"Degenerate height clamps to one row", 100, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.srcW, tt.srcH))
			f := ConvertFrame(img, tt.targetWidth, terminal.ColorModeTrueColor)
			if f.Width != tt.wantW || f.Height != tt.wantH {
				t.Errorf("Expected %dx%d cells, got %dx%d", tt.wantW, tt.wantH, f.Width, f.Height)
			}
		})
	}
}

func TestMirror(t *testing.T) {
	f := &Frame{
		Width:  3,
		Height: 2,
		Cells: []terminal.Cell{
			{Rune: 'a'}, {Rune: 'b'}, {Rune: 'c'},
			{Rune: 'd'}, {Rune: 'e'}, {Rune: 'f'},
		},
	}

	m := Mirror(f)
	want := []rune{'c', 'b', 'a', 'f', 'e', 'd'}
	for i, r := range want {
		if m.Cells[i].Rune != r {
			t.Errorf("Expected rune %q at cell %d, got %q", r, i, m.Cells[i].Rune)
		}
	}

	// Original untouched
	if f.Cells[0].Rune != 'a' {
		t.Errorf("Expected Mirror to copy, original cell changed to %q", f.Cells[0].Rune)
	}
}
