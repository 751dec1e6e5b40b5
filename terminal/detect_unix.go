//go:build unix

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsTerminal reports whether fd refers to a terminal device
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
	return err == nil
}

// Size returns the terminal dimensions for fd, or (0, 0) if unavailable
func Size(fd uintptr) (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0
	}
	return int(ws.Col), int(ws.Row)
}

// ResetMode attempts to restore the terminal to cooked mode.
// Best-effort for crash recovery; errors ignored.
func ResetMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		if termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, ioctlWriteTermios, termios)
		}
	}
}
