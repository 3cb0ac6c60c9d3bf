// Package movement plays timed motions on the figure rig's root.
// A single Manager owns the root offset; moves are evaluated against
// elapsed render time, so playback is deterministic and frame driven.
package movement

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
)

// Move represents an animation that provides a root offset over time.
type Move interface {
	// Name returns the move identifier (for logging).
	Name() string

	// Duration returns the total duration of the move.
	// Returns 0 for infinite/continuous moves.
	Duration() time.Duration

	// Evaluate returns the root offset at time t since move start.
	Evaluate(t time.Duration) r3.Vector

	// IsComplete returns true when the move has finished.
	IsComplete(t time.Duration) bool
}

// Easing maps normalized progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return clamp(t, 0, 1)
}

// InExpo starts slow and accelerates hard towards the end.
func InExpo(t float64) float64 {
	t = clamp(t, 0, 1)
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// lerp performs linear interpolation between two values.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// clamp restricts v to the range [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
