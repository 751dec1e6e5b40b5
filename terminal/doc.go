// Package terminal provides inline ANSI terminal output for animation.
//
// Features:
//   - True color (24-bit) and 256-color palette support
//   - Color-run coalescing: escape sequences emitted only on state change
//   - Relative cursor movement so the scrollback log survives after exit
//   - Clean cursor/color restoration on exit and interrupt
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Unlike alternate-screen TUIs, all output stays in the normal
// screen buffer: lines written above the animation region remain in the
// terminal's history when the process exits.
package terminal
