package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi      = []byte("\x1b[")
	csiReset = []byte("\x1b[0m")

	csiClearLine = []byte("\x1b[K")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N and m
	csiBg256 = []byte(";48;5;")     // within an open sequence
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B and m
	csiBgRGB = []byte(";48;2;")     // within an open sequence
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [8]byte
	i := 7
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorUp writes a relative cursor-up sequence
func writeCursorUp(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('A')
}

// writeRGBTriplet writes R;G;B
func writeRGBTriplet(w *bufio.Writer, c RGB) {
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
}
