package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const frame60 = 16666667 * time.Nanosecond

func TestSchedulerFirstDeadline(t *testing.T) {
	s := NewFrameScheduler(frame60)
	start := time.Unix(100, 0)

	assert.Equal(t, start.Add(frame60), s.Next(start))
	assert.Equal(t, frame60, s.Interval())
}

func TestSchedulerKeepsCadence(t *testing.T) {
	s := NewFrameScheduler(frame60)
	start := time.Unix(100, 0)
	next := s.Next(start)

	// Waking a little late must not push later deadlines back
	for i := 2; i <= 10; i++ {
		next = s.Next(next.Add(time.Millisecond))
		assert.Equal(t, start.Add(time.Duration(i)*frame60), next)
	}
}

func TestSchedulerResyncsAfterHitch(t *testing.T) {
	s := NewFrameScheduler(frame60)
	start := time.Unix(100, 0)
	s.Next(start)

	late := start.Add(200 * time.Millisecond)
	next := s.Next(late)
	assert.Equal(t, late.Add(frame60), next)
	assert.Equal(t, next.Add(frame60), s.Next(next))
}

func TestSchedulerResyncsWhenSlightlyLate(t *testing.T) {
	s := NewFrameScheduler(frame60)
	start := time.Unix(100, 0)
	s.Next(start)

	// woke after the second deadline had passed, by less than an interval
	late := start.Add(2*frame60 + time.Millisecond)
	assert.Equal(t, late.Add(frame60), s.Next(late))
}
