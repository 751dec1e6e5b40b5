package terminal

import (
	"bufio"
	"io"
	"sync/atomic"
)

// Writer emits cells and text inline on the normal screen buffer.
// It tracks color state within a row so escape sequences are only
// written when the fg/bg pair changes from the previous cell.
//
// Writer is not safe for concurrent use; the driver owns it.
type Writer struct {
	w         *bufio.Writer
	colorMode ColorMode

	// Color run state, valid within a row
	lastFg   RGB
	lastBg   RGB
	lastAttr Attr
	inColor  bool

	cursorHidden bool
	restored     atomic.Bool
}

// NewWriter wraps out with a buffered inline writer
func NewWriter(out io.Writer, colorMode ColorMode) *Writer {
	return &Writer{
		w:         bufio.NewWriterSize(out, 32768),
		colorMode: colorMode,
	}
}

// HideCursor hides the terminal cursor until Restore
func (w *Writer) HideCursor() {
	w.w.Write(csiCursorHide)
	w.cursorHidden = true
}

// CursorUp moves the cursor up n rows (no-op for n <= 0)
func (w *Writer) CursorUp(n int) {
	writeCursorUp(w.w, n)
}

// WriteCells writes a run of cells, coalescing color sequences.
// Cells without AttrHasFg/AttrHasBg render as uncolored runes.
func (w *Writer) WriteCells(cells []Cell) {
	for _, cell := range cells {
		hasColor := cell.Attrs&(AttrHasFg|AttrHasBg) != 0

		if !hasColor {
			if w.inColor {
				w.w.Write(csiReset)
				w.inColor = false
			}
		} else if !w.inColor || cell.Fg != w.lastFg || cell.Bg != w.lastBg || cell.Attrs != w.lastAttr {
			if w.inColor {
				w.w.Write(csiReset)
			}
			w.writeColorSeq(cell)
			w.lastFg = cell.Fg
			w.lastBg = cell.Bg
			w.lastAttr = cell.Attrs
			w.inColor = true
		}

		r := cell.Rune
		if r == 0 {
			r = ' '
		}
		w.w.WriteRune(r)
	}
}

// writeColorSeq emits one combined SGR sequence for the cell's colors
func (w *Writer) writeColorSeq(cell Cell) {
	if cell.Attrs&AttrHasFg != 0 {
		if cell.Attrs&AttrFg256 != 0 {
			w.w.Write(csiFg256)
			writeInt(w.w, int(cell.Fg.R))
		} else {
			w.w.Write(csiFgRGB)
			writeRGBTriplet(w.w, cell.Fg)
		}
		if cell.Attrs&AttrHasBg != 0 {
			if cell.Attrs&AttrBg256 != 0 {
				w.w.Write(csiBg256)
				writeInt(w.w, int(cell.Bg.R))
			} else {
				w.w.Write(csiBgRGB)
				writeRGBTriplet(w.w, cell.Bg)
			}
		}
		w.w.WriteByte('m')
		return
	}

	// Bg-only cell
	if cell.Attrs&AttrBg256 != 0 {
		w.w.Write([]byte("\x1b[48;5;"))
		writeInt(w.w, int(cell.Bg.R))
	} else {
		w.w.Write([]byte("\x1b[48;2;"))
		writeRGBTriplet(w.w, cell.Bg)
	}
	w.w.WriteByte('m')
}

// WriteString writes plain text at the current position
func (w *Writer) WriteString(s string) {
	w.w.WriteString(s)
}

// EndLine resets any open color run, clears to end of line and
// advances to the next row
func (w *Writer) EndLine() {
	if w.inColor {
		w.w.Write(csiReset)
		w.inColor = false
	}
	w.w.Write(csiClearLine)
	w.w.WriteByte('\n')
}

// Newline advances one row without clearing
func (w *Writer) Newline() {
	w.w.WriteByte('\n')
}

// Flush pushes buffered output to the terminal
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Restore resets colors and re-shows the cursor. Idempotent and safe
// to call from an exit path after an interrupt.
func (w *Writer) Restore() {
	if !w.restored.CompareAndSwap(false, true) {
		return
	}
	w.w.Write(csiReset)
	if w.cursorHidden {
		w.w.Write(csiCursorShow)
	}
	w.w.Flush()
}
