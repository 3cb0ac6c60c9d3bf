package movement

import (
	"time"

	"github.com/golang/geo/r3"
	"github.com/teslashibe/parallax-box/pkg/debug"
)

// Manager plays one move at a time on the rig root.
//
// It is advanced by the render loop with the frame's time step and is
// not safe for concurrent use.
type Manager struct {
	currentMove Move          // Currently playing move (nil = idle)
	elapsed     time.Duration // Time since current move started
	offset      r3.Vector     // Last evaluated offset, held while idle

	// Diagnostics
	played uint64
}

// NewManager creates an idle manager with a zero offset.
func NewManager() *Manager {
	return &Manager{}
}

// Play starts move immediately, replacing any current move.
// The replaced move is dropped at whatever offset it had reached.
func (m *Manager) Play(move Move) {
	if m.currentMove != nil {
		debug.Log("move replaced", "old", m.currentMove.Name(), "new", move.Name(), "at", m.elapsed)
	}
	m.currentMove = move
	m.elapsed = 0
	m.offset = move.Evaluate(0)
	m.played++
}

// Advance moves playback forward by dt and returns the new offset.
func (m *Manager) Advance(dt time.Duration) r3.Vector {
	if m.currentMove == nil {
		return m.offset
	}

	m.elapsed += dt
	m.offset = m.currentMove.Evaluate(m.elapsed)

	if m.currentMove.IsComplete(m.elapsed) {
		m.currentMove = nil
		m.elapsed = 0
	}
	return m.offset
}

// Offset returns the current root offset.
func (m *Manager) Offset() r3.Vector {
	return m.offset
}

// Stop halts the current move, holding its present offset.
func (m *Manager) Stop() {
	m.currentMove = nil
	m.elapsed = 0
}

// IsMovePlaying returns true if a move is currently playing.
func (m *Manager) IsMovePlaying() bool {
	return m.currentMove != nil
}

// CurrentMoveName returns the name of the current move, or empty if idle.
func (m *Manager) CurrentMoveName() string {
	if m.currentMove != nil {
		return m.currentMove.Name()
	}
	return ""
}

// Played returns how many moves have been started.
func (m *Manager) Played() uint64 {
	return m.played
}
