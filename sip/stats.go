package sip

import (
	"fmt"
	"time"
)

// Stats accumulates per-run ping statistics. Only the driver writes
// to it, in iteration order.
type Stats struct {
	Sent     int
	Received int

	min time.Duration
	max time.Duration
	sum time.Duration
}

// Record adds one successful round-trip time
func (s *Stats) Record(rtt time.Duration) {
	if s.Received == 0 || rtt < s.min {
		s.min = rtt
	}
	if rtt > s.max {
		s.max = rtt
	}
	s.sum += rtt
	s.Received++
}

// Loss returns the spill percentage
func (s *Stats) Loss() float64 {
	if s.Sent == 0 {
		return 0
	}
	return float64(s.Sent-s.Received) / float64(s.Sent) * 100
}

// MinAvgMax returns round-trip aggregates; zeros when nothing succeeded
func (s *Stats) MinAvgMax() (min, avg, max time.Duration) {
	if s.Received == 0 {
		return 0, 0, 0
	}
	return s.min, s.sum / time.Duration(s.Received), s.max
}

// Summary renders the end-of-run report lines
func (s *Stats) Summary(host string) []string {
	lines := []string{
		fmt.Sprintf("* Sip-ping statistics for %s *", host),
		fmt.Sprintf("  %d sip, %d clink, %.0f%% spill", s.Sent, s.Received, s.Loss()),
	}
	if s.Received > 0 {
		min, avg, max := s.MinAvgMax()
		lines = append(lines, fmt.Sprintf("  min/avg/max = %d/%d/%d ms",
			roundMs(min), roundMs(avg), roundMs(max)))
	}
	return lines
}

func roundMs(d time.Duration) int64 {
	return d.Round(time.Millisecond).Milliseconds()
}
