package tracking

import (
	"errors"
	"sync"
	"time"

	"github.com/golang/geo/r3"
	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

var errNoFrame = errors.New("no frame")

// mockVideo hands out a fixed frame, or fails
type mockVideo struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (m *mockVideo) CaptureJPEG() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return nil, errNoFrame
	}
	return []byte{0xff, 0xd8, 0xff, 0xd9}, nil
}

// mockDetector returns queued results, one per call, then repeats the last
type mockDetector struct {
	mu      sync.Mutex
	results [][]detection.Detection
	err     error
	calls   int
}

func (m *mockDetector) Detect(jpeg []byte) ([]detection.Detection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) == 0 {
		return nil, nil
	}
	r := m.results[0]
	if len(m.results) > 1 {
		m.results = m.results[1:]
	}
	return r, nil
}

func (m *mockDetector) Close() error { return nil }

// mockCamera records poses
type mockCamera struct {
	pos     r3.Vector
	lookAts []r3.Vector
}

func (m *mockCamera) Position() r3.Vector     { return m.pos }
func (m *mockCamera) SetPosition(p r3.Vector) { m.pos = p }
func (m *mockCamera) LookAt(t r3.Vector)      { m.lookAts = append(m.lookAts, t) }

// mockFigure records jumps
type mockFigure struct {
	torso r3.Vector
	jumps []struct {
		height     float64
		rise, fall time.Duration
	}
}

func (m *mockFigure) TorsoPosition() r3.Vector { return m.torso }

func (m *mockFigure) Jump(height float64, rise, fall time.Duration) {
	m.jumps = append(m.jumps, struct {
		height     float64
		rise, fall time.Duration
	}{height, rise, fall})
}

// face builds a detection centered on (cx, cy)
func face(cx, cy, conf float64) detection.Detection {
	return detection.Detection{X: cx - 0.1, Y: cy - 0.1, W: 0.2, H: 0.2, Confidence: conf}
}
