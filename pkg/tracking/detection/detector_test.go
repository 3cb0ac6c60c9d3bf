package detection

import (
	"math"
	"testing"
)

func TestDetection_Center(t *testing.T) {
	tests := []struct {
		name    string
		det     Detection
		expectX float64
		expectY float64
	}{
		{
			name:    "center of image",
			det:     Detection{X: 0.25, Y: 0.25, W: 0.5, H: 0.5},
			expectX: 0.5,
			expectY: 0.5,
		},
		{
			name:    "top left corner",
			det:     Detection{X: 0, Y: 0, W: 0.2, H: 0.2},
			expectX: 0.1,
			expectY: 0.1,
		},
		{
			name:    "leaning right",
			det:     Detection{X: 0.5, Y: 0.4, W: 0.2, H: 0.2},
			expectX: 0.6,
			expectY: 0.5,
		},
		{
			name:    "non-square box",
			det:     Detection{X: 0.1, Y: 0.2, W: 0.4, H: 0.1},
			expectX: 0.3,
			expectY: 0.25,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.det.Center()
			if math.Abs(x-tc.expectX) > 1e-12 {
				t.Errorf("Center X: got %.4f, want %.4f", x, tc.expectX)
			}
			if math.Abs(y-tc.expectY) > 1e-12 {
				t.Errorf("Center Y: got %.4f, want %.4f", y, tc.expectY)
			}
		})
	}
}

func TestDetection_Area(t *testing.T) {
	d := Detection{X: 0, Y: 0, W: 0.5, H: 0.5}
	if d.Area() != 0.25 {
		t.Errorf("Area: got %v, want 0.25", d.Area())
	}
}

func TestSelectBest(t *testing.T) {
	tests := []struct {
		name       string
		detections []Detection
		expectNil  bool
		expectIdx  int
	}{
		{
			name:       "empty list",
			detections: []Detection{},
			expectNil:  true,
		},
		{
			name: "single detection",
			detections: []Detection{
				{X: 0.4, Y: 0.4, W: 0.2, H: 0.2, Confidence: 0.9},
			},
			expectIdx: 0,
		},
		{
			name: "high confidence beats larger area",
			detections: []Detection{
				{X: 0.0, Y: 0.0, W: 0.4, H: 0.4, Confidence: 0.5},
				{X: 0.3, Y: 0.3, W: 0.2, H: 0.2, Confidence: 0.95},
			},
			expectIdx: 1, // 0.95*0.7 + 0.25*0.3 = 0.74 vs 0.5*0.7 + 1.0*0.3 = 0.65
		},
		{
			name: "similar confidence picks larger",
			detections: []Detection{
				{X: 0.0, Y: 0.0, W: 0.5, H: 0.5, Confidence: 0.8},
				{X: 0.3, Y: 0.3, W: 0.1, H: 0.1, Confidence: 0.8},
			},
			expectIdx: 0,
		},
		{
			name: "zero-area boxes fall back to confidence",
			detections: []Detection{
				{X: 0.2, Y: 0.2, Confidence: 0.6},
				{X: 0.7, Y: 0.7, Confidence: 0.9},
			},
			expectIdx: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			best := SelectBest(tc.detections)
			if tc.expectNil {
				if best != nil {
					t.Errorf("SelectBest: expected nil, got %+v", best)
				}
				return
			}
			if best != &tc.detections[tc.expectIdx] {
				t.Errorf("SelectBest: got %+v, want %+v", best, tc.detections[tc.expectIdx])
			}
		})
	}
}

func TestPolicy_Select(t *testing.T) {
	dets := []Detection{
		{X: 0.1, Y: 0.1, W: 0.1, H: 0.1, Confidence: 0.99},
		{X: 0.4, Y: 0.4, W: 0.3, H: 0.3, Confidence: 0.95},
		{X: 0.7, Y: 0.2, W: 0.1, H: 0.1, Confidence: 0.51},
	}

	tests := []struct {
		policy Policy
		want   int
	}{
		{PolicyLast, 2},
		{PolicyFirst, 0},
		{PolicyBest, 1},
		{Policy(""), 2},
	}

	for _, tc := range tests {
		t.Run(string(tc.policy), func(t *testing.T) {
			got := tc.policy.Select(dets)
			if got != &dets[tc.want] {
				t.Errorf("Select: got %+v, want index %d", got, tc.want)
			}
		})
	}

	if got := PolicyLast.Select(nil); got != nil {
		t.Errorf("Select on empty: expected nil, got %+v", got)
	}
}

func TestPolicy_LastIgnoresConfidenceOrder(t *testing.T) {
	dets := []Detection{
		{X: 0.5, Y: 0.5, W: 0.2, H: 0.2, Confidence: 0.99},
		{X: 0.1, Y: 0.1, W: 0.2, H: 0.2, Confidence: 0.51},
	}

	x, y := PolicyLast.Select(dets).Center()
	if math.Abs(x-0.2) > 1e-12 || math.Abs(y-0.2) > 1e-12 {
		t.Errorf("Expected last detection center (0.2, 0.2), got (%.2f, %.2f)", x, y)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, in := range []string{"last", "first", "best", ""} {
		if _, err := ParsePolicy(in); err != nil {
			t.Errorf("ParsePolicy(%q): unexpected error %v", in, err)
		}
	}

	p, _ := ParsePolicy("")
	if p != PolicyLast {
		t.Errorf("Expected empty policy to default to last, got %q", p)
	}

	if _, err := ParsePolicy("largest"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ModelPath == "" {
		t.Error("DefaultConfig: ModelPath should not be empty")
	}

	if cfg.ConfidenceThresh != 0.5 {
		t.Errorf("DefaultConfig: expected ConfidenceThresh 0.5, got %f", cfg.ConfidenceThresh)
	}

	if cfg.InputWidth <= 0 || cfg.InputHeight <= 0 {
		t.Errorf("DefaultConfig: input size should be positive, got %dx%d", cfg.InputWidth, cfg.InputHeight)
	}
}
