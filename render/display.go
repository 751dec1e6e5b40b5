package render

import (
	"github.com/lixenwraith/ft-sipping/terminal"
)

// indent keeps the animation clear of the terminal's left edge
const indent = "  "

// Display draws animation frames and the status log inline. The
// animation region sits at a fixed position; sealed status lines
// accumulate below it and the transient status line rides at the
// bottom. Only relative cursor movement is used, so everything above
// the animation region is ordinary scrollback.
type Display struct {
	w        *terminal.Writer
	rows     int // animation region height in cells
	logCount int // sealed status lines below the animation
}

// NewDisplay creates a display writing through w
func NewDisplay(w *terminal.Writer) *Display {
	return &Display{w: w}
}

// Println writes a permanent plain-text line above the animation region.
// Only valid before Reserve or after the final Seal.
func (d *Display) Println(s string) {
	if s != "" {
		d.w.WriteString(indent)
		d.w.WriteString(s)
	}
	d.w.Newline()
	d.w.Flush()
}

// Reserve scrolls out space for the animation region plus the
// transient status line and hides the cursor for the duration of the
// run. Must be called once before Animate.
func (d *Display) Reserve(rows int) {
	d.rows = rows
	d.w.HideCursor()
	for i := 0; i < rows+1; i++ {
		d.w.Newline()
	}
	d.w.Flush()
}

// Animate redraws the animation region and the transient status line.
// right is optional; when present it is drawn beside left with a one
// column gap (the clink phase). Idempotent per frame pair and status.
func (d *Display) Animate(left, right *Frame, status string) {
	d.w.CursorUp(d.rows + 1 + d.logCount)

	for y := 0; y < d.rows; y++ {
		d.w.WriteString(indent)
		if y < left.Height {
			d.w.WriteCells(left.Row(y))
		}
		if right != nil && y < right.Height {
			d.w.WriteString(" ")
			d.w.WriteCells(right.Row(y))
		}
		d.w.EndLine()
	}

	// Skip over sealed log lines without touching them
	for i := 0; i < d.logCount; i++ {
		d.w.Newline()
	}

	d.w.WriteString(indent)
	d.w.WriteString(status)
	d.w.EndLine()
	d.w.Flush()
}

// Seal advances past the transient status line, making it a permanent
// log line. The next Animate draws its status one row further down.
func (d *Display) Seal() {
	d.w.Newline()
	d.logCount++
	d.w.Flush()
}

// Close restores terminal state
func (d *Display) Close() {
	d.w.Restore()
}
