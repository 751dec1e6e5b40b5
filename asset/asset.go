// Package asset embeds the sipping animation shipped with the tool.
package asset

import _ "embed"

// SipGIF is the bundled cup animation: an indexed-color GIF with
// transparency and restore-to-background disposal, looped forever.
//
//go:embed sip.gif
var SipGIF []byte
