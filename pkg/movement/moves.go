package movement

import (
	"time"

	"github.com/golang/geo/r3"
)

// ============================================================
// JumpMove - Two-keyframe hop used to acknowledge a reset
// ============================================================

// JumpMove rises from its start height to Height over Rise, then
// falls back to the baseline (zero offset) over Fall.
type JumpMove struct {
	start  float64
	height float64
	rise   time.Duration
	fall   time.Duration
	ease   Easing
}

// NewJumpMove creates a jump that begins at startY (the root's current
// vertical offset), so a jump started mid-air continues smoothly.
func NewJumpMove(startY, height float64, rise, fall time.Duration) *JumpMove {
	return &JumpMove{
		start:  startY,
		height: height,
		rise:   rise,
		fall:   fall,
		ease:   InExpo,
	}
}

// WithEasing replaces the easing curve (InExpo by default).
func (m *JumpMove) WithEasing(e Easing) *JumpMove {
	m.ease = e
	return m
}

// Name returns "jump".
func (m *JumpMove) Name() string {
	return "jump"
}

// Duration returns rise + fall.
func (m *JumpMove) Duration() time.Duration {
	return m.rise + m.fall
}

// Evaluate returns the vertical offset at time t.
func (m *JumpMove) Evaluate(t time.Duration) r3.Vector {
	switch {
	case t <= 0:
		return r3.Vector{Y: m.start}
	case t < m.rise:
		p := float64(t) / float64(m.rise)
		return r3.Vector{Y: lerp(m.start, m.height, m.ease(p))}
	case t < m.rise+m.fall:
		p := float64(t-m.rise) / float64(m.fall)
		return r3.Vector{Y: lerp(m.height, 0, m.ease(p))}
	default:
		return r3.Vector{}
	}
}

// IsComplete returns true once both keyframes have played.
func (m *JumpMove) IsComplete(t time.Duration) bool {
	return t >= m.rise+m.fall
}
