package render

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/lixenwraith/ft-sipping/terminal"
)

// gifPalette: index 0 transparent, 1 red, 2 blue
var gifPalette = color.Palette{
	color.RGBA{0, 0, 0, 0},
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 0, 255, 255},
}

// encodeGIF builds a 1x2 two-frame GIF: frame one fully red, frame
// two a single blue pixel on top with the rest transparent
func encodeGIF(t *testing.T, disposal byte) []byte {
	t.Helper()

	frame1 := image.NewPaletted(image.Rect(0, 0, 1, 2), gifPalette)
	frame1.SetColorIndex(0, 0, 1)
	frame1.SetColorIndex(0, 1, 1)

	frame2 := image.NewPaletted(image.Rect(0, 0, 1, 2), gifPalette)
	frame2.SetColorIndex(0, 0, 2)

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image:    []*image.Paletted{frame1, frame2},
		Delay:    []int{5, 5},
		Disposal: []byte{disposal, disposal},
		Config: image.Config{
			ColorModel: gifPalette,
			Width:      1,
			Height:     2,
		},
	})
	if err != nil {
		t.Fatalf("Expected GIF to encode, got error: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeFramesKeepsCanvasWithoutDisposal(t *testing.T) {
	data := encodeGIF(t, gif.DisposalNone)

	frames, err := DecodeFrames(bytes.NewReader(data), 1, terminal.ColorModeTrueColor)
	if err != nil {
		t.Fatalf("Expected frames, got error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}

	// Frame 2 composites over frame 1: blue upper pixel, red lower
	cell := frames[1].Cells[0]
	if cell.Rune != '▀' {
		t.Errorf("Expected full half-block pair, got rune %q", cell.Rune)
	}
	if cell.Fg != (terminal.RGB{B: 255}) {
		t.Errorf("Expected blue fg from frame 2, got %v", cell.Fg)
	}
	if cell.Bg != (terminal.RGB{R: 255}) {
		t.Errorf("Expected red bg carried from frame 1, got %v", cell.Bg)
	}
}

func TestDecodeFramesRestoresBackground(t *testing.T) {
	data := encodeGIF(t, gif.DisposalBackground)

	frames, err := DecodeFrames(bytes.NewReader(data), 1, terminal.ColorModeTrueColor)
	if err != nil {
		t.Fatalf("Expected frames, got error: %v", err)
	}

	// Canvas cleared before frame 2: only the blue pixel remains
	cell := frames[1].Cells[0]
	if cell.Rune != '▀' {
		t.Errorf("Expected upper half-block, got rune %q", cell.Rune)
	}
	if cell.Attrs&terminal.AttrHasBg != 0 {
		t.Errorf("Expected transparent lower pixel after restore-to-background, got bg %v", cell.Bg)
	}
	if cell.Fg != (terminal.RGB{B: 255}) {
		t.Errorf("Expected blue fg, got %v", cell.Fg)
	}
}

func TestDecodeFramesRejectsGarbage(t *testing.T) {
	_, err := DecodeFrames(bytes.NewReader([]byte("not a gif")), 10, terminal.ColorModeTrueColor)
	if err == nil {
		t.Error("Expected error decoding garbage input, got nil")
	}
}

func TestDecodeFramesUniformDimensions(t *testing.T) {
	data := encodeGIF(t, gif.DisposalNone)

	frames, err := DecodeFrames(bytes.NewReader(data), 1, terminal.ColorModeTrueColor)
	if err != nil {
		t.Fatalf("Expected frames, got error: %v", err)
	}

	for i, f := range frames {
		if f.Width != frames[0].Width || f.Height != frames[0].Height {
			t.Errorf("Expected frame %d to be %dx%d like frame 0, got %dx%d",
				i, frames[0].Width, frames[0].Height, f.Width, f.Height)
		}
	}
}
