package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone generates a sine wave with a linear fade-out envelope so the
// note ends without a click
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
}

func newTone(freq float64, d time.Duration) beep.Streamer {
	return &tone{
		freq:     freq,
		duration: feedbackSampleRate.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, false
		}

		val := math.Sin(2 * math.Pi * t.phase)

		// Fade out over the final quarter of the note
		fadeStart := t.duration * 3 / 4
		if t.position >= fadeStart {
			remain := float64(t.duration-t.position) / float64(t.duration-fadeStart)
			val *= remain
		}

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(feedbackSampleRate)
		if t.phase >= 1.0 {
			t.phase -= 1.0
		}
		t.position++
		n = i + 1
	}
	return n, true
}

func (t *tone) Err() error {
	return nil
}
