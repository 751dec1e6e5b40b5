// Package sip drives the sip-ping loop: one concurrent echo request
// per iteration with the animation ticking until the result arrives.
package sip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/ft-sipping/ping"
	"github.com/lixenwraith/ft-sipping/render"
)

// Renderer is the terminal surface the driver draws on. A fake
// implementation makes the loop testable without a real terminal.
type Renderer interface {
	// Reserve scrolls out the animation region, rows cells tall
	Reserve(rows int)
	// Animate redraws the region with left (and optionally right,
	// mirrored) plus the transient status line
	Animate(left, right *render.Frame, status string)
	// Seal turns the transient status line into a permanent log line
	Seal()
}

// Prober issues one echo request per call
type Prober interface {
	Probe(ctx context.Context, host string) ping.Result
}

// Feedback plays outcome tones; implementations must be non-blocking
type Feedback interface {
	Clink()
	Spill()
}

// Session owns one run of the loop. Built once at startup and
// read-only while running.
type Session struct {
	cfg      *Config
	frames   []*render.Frame
	mirrored []*render.Frame
	renderer Renderer
	prober   Prober
	sound    Feedback // optional

	stats Stats
}

// NewSession validates the configuration and prepares the mirrored
// frame set for the clink phase
func NewSession(cfg *Config, frames []*render.Frame, r Renderer, p Prober, f Feedback) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no animation frames")
	}
	if r == nil || p == nil {
		return nil, fmt.Errorf("renderer and prober are required")
	}

	mirrored := make([]*render.Frame, len(frames))
	for i, fr := range frames {
		mirrored[i] = render.Mirror(fr)
	}

	return &Session{
		cfg:      cfg,
		frames:   frames,
		mirrored: mirrored,
		renderer: r,
		prober:   p,
		sound:    f,
	}, nil
}

// Run executes up to cfg.Count iterations and returns the statistics.
// Cancelling ctx stops the in-flight request and returns early; the
// renderer is left in a sealed state either way.
func (s *Session) Run(ctx context.Context) *Stats {
	s.renderer.Reserve(s.frames[0].Height)

	for seq := 0; seq < s.cfg.Count; seq++ {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		s.stats.Sent++

		// Buffered so the probe goroutine never blocks after an interrupt
		resCh := make(chan ping.Result, 1)
		go func() {
			resCh <- s.prober.Probe(ctx, s.cfg.Host)
		}()

		status := fmt.Sprintf("Sip-ping #%d...", seq+1)
		res, interrupted := s.animateUntil(ctx, resCh, status)
		if interrupted {
			break
		}

		line := s.resultLine(status, res)
		if res.OK() {
			s.stats.Record(res.RTT)
			if s.sound != nil {
				s.sound.Clink()
			}
		} else if s.sound != nil {
			s.sound.Spill()
		}

		// Clink phase: one full cycle with the mirrored cup alongside.
		// The first frame is drawn regardless of cancellation so the
		// sealed line always carries the verdict.
		s.renderer.Animate(s.frames[0], s.mirrored[0], line)
		for i := 1; i < len(s.frames) && sleepCtx(ctx, s.cfg.Tick); i++ {
			s.renderer.Animate(s.frames[i], s.mirrored[i], line)
		}

		s.renderer.Seal()

		if seq < s.cfg.Count-1 {
			if remaining := s.cfg.Interval - time.Since(start); remaining > 0 {
				if !sleepCtx(ctx, remaining) {
					break
				}
			}
		}
	}

	return &s.stats
}

// animateUntil ticks frames cyclically until the probe resolves or
// ctx is cancelled. Frame index is tick mod len(frames), starting
// from zero each iteration.
func (s *Session) animateUntil(ctx context.Context, resCh <-chan ping.Result, status string) (ping.Result, bool) {
	s.renderer.Animate(s.frames[0], nil, status)

	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return ping.Result{Err: ctx.Err()}, true
		case res := <-resCh:
			if errors.Is(res.Err, context.Canceled) {
				return res, true
			}
			return res, false
		case <-ticker.C:
			tick++
			s.renderer.Animate(s.frames[tick%len(s.frames)], nil, status)
		}
	}
}

// resultLine seals the iteration outcome into a log line, aligning
// the verdict with the mirrored cup's column
func (s *Session) resultLine(status string, res ping.Result) string {
	pad := s.frames[0].Width + 1 - len(status)
	if pad < 1 {
		pad = 1
	}
	sep := strings.Repeat(" ", pad)

	if res.OK() {
		return fmt.Sprintf("%s%sClink! %dms TTL=%d",
			status, sep, res.RTT.Round(time.Millisecond).Milliseconds(), res.TTL)
	}
	return fmt.Sprintf("%s%sSpill! %v", status, sep, res.Err)
}

// sleepCtx sleeps for d unless ctx is cancelled first; reports
// whether the full duration elapsed
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
