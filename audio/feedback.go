// Package audio plays short feedback tones for ping outcomes.
// Initialization is best-effort: without a working audio device the
// feedback degrades to silence rather than failing the run.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const feedbackSampleRate = beep.SampleRate(44100)

// Feedback produces the clink/spill tones
type Feedback struct {
	mu          sync.Mutex
	cfg         *Config
	initialized bool
}

// NewFeedback creates an uninitialized feedback player
func NewFeedback(cfg *Config) *Feedback {
	if cfg == nil {
		cfg = LoadConfig()
	}
	return &Feedback{cfg: cfg}
}

// Init opens the speaker. Returns an error when no audio device is
// available; the caller may log and continue, all playback methods
// are no-ops in that case.
func (f *Feedback) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized || !f.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(feedbackSampleRate, feedbackSampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	f.initialized = true
	return nil
}

// Close shuts the speaker down
func (f *Feedback) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Close()
	f.initialized = false
}

// Clink plays two quick rising notes for a successful reply
func (f *Feedback) Clink() {
	f.play(
		newTone(880, 45*time.Millisecond),
		newTone(1318, 70*time.Millisecond),
	)
}

// Spill plays a single low falling note for a failed request
func (f *Feedback) Spill() {
	f.play(
		newTone(220, 60*time.Millisecond),
		newTone(164, 110*time.Millisecond),
	)
}

func (f *Feedback) play(streamers ...beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}

	seq := beep.Seq(streamers...)
	speaker.Play(&effects.Volume{
		Streamer: seq,
		Base:     2,
		Volume:   f.cfg.volumeDB(),
	})
}
