package app

import (
	"time"
)

// FrameScheduler computes wake-up deadlines for a fixed frame cadence.
// The caller waits until the deadline; nothing here sleeps or spins.
type FrameScheduler struct {
	interval time.Duration
	next     time.Time
}

// NewFrameScheduler creates a scheduler ticking every interval
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	return &FrameScheduler{interval: interval}
}

// Interval returns the frame cadence
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}

// Next returns the deadline of the frame after the one starting at now.
// Deadlines advance by whole intervals so the cadence does not drift.
func (s *FrameScheduler) Next(now time.Time) time.Time {
	if s.next.IsZero() {
		s.next = now.Add(s.interval)
		return s.next
	}

	s.next = s.next.Add(s.interval)

	// Any missed deadline resyncs to now, so a late frame is never followed
	// by catch-up frames
	if late := now.Sub(s.next); late > 0 {
		s.next = now.Add(s.interval)
	}
	return s.next
}
