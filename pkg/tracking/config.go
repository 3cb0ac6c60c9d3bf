package tracking

import (
	"fmt"
	"time"

	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

// Config holds all tunable parameters for face-driven camera tracking
type Config struct {
	// Control law
	HorizontalGain float64 // World units per unit of horizontal center offset
	VerticalGain   float64 // World units per unit of vertical center offset
	Smoothing      float64 // Lerp factor per tick (0-1, higher = snappier)

	// Initial reference point and detection center (normalized 0-1)
	ReferenceX float64
	ReferenceY float64

	// Which face drives the camera when several are found
	Policy detection.Policy

	// Reset animation
	JumpHeight float64
	JumpRise   time.Duration
	JumpFall   time.Duration

	// Async sampling
	SampleInterval time.Duration // Minimum time between captures in the sampler

	// Logging
	MissLogStreak int // Log "lost face" after this many ticks without a face
}

// DefaultConfig returns the configuration the toy ships with
func DefaultConfig() Config {
	return Config{
		// Control law - both axes inverted so the view moves against the head
		HorizontalGain: -15,
		VerticalGain:   -10,
		Smoothing:      0.1,

		// Frame center
		ReferenceX: 0.5,
		ReferenceY: 0.5,

		Policy: detection.PolicyLast,

		// A quick hop to acknowledge a reset
		JumpHeight: 0.5,
		JumpRise:   100 * time.Millisecond,
		JumpFall:   100 * time.Millisecond,

		SampleInterval: 33 * time.Millisecond, // ~30 fps, the webcam rate

		MissLogStreak: 30, // ~0.5s at 60 fps
	}
}

// SlowConfig returns a configuration for calmer, floatier parallax
func SlowConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.05
	cfg.HorizontalGain = -10
	cfg.VerticalGain = -7
	return cfg
}

// SnappyConfig returns a configuration for very responsive parallax
func SnappyConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.25
	cfg.Policy = detection.PolicyBest // Less flicker between faces at high gain
	return cfg
}

// Presets maps -preset names to their configurations
func Presets() map[string]Config {
	return map[string]Config{
		"default": DefaultConfig(),
		"slow":    SlowConfig(),
		"snappy":  SnappyConfig(),
	}
}

// GetPreset returns a named configuration, or an error for an unknown name
func GetPreset(name string) (Config, error) {
	if name == "" {
		return DefaultConfig(), nil
	}
	cfg, ok := Presets()[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown tracking preset %q (want default, slow or snappy)", name)
	}
	return cfg, nil
}

// Validate checks the configuration for values the control law cannot use.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errs []string

	if c.Smoothing <= 0 || c.Smoothing > 1 {
		errs = append(errs, fmt.Sprintf("smoothing must be in (0, 1] (got %v)", c.Smoothing))
	}
	if c.ReferenceX < 0 || c.ReferenceX > 1 || c.ReferenceY < 0 || c.ReferenceY > 1 {
		errs = append(errs, fmt.Sprintf("reference must be in [0, 1] (got %v, %v)", c.ReferenceX, c.ReferenceY))
	}
	if _, err := detection.ParsePolicy(string(c.Policy)); err != nil {
		errs = append(errs, err.Error())
	}
	if c.JumpRise < 0 || c.JumpFall < 0 {
		errs = append(errs, "jump durations must not be negative")
	}
	if c.SampleInterval < 0 {
		errs = append(errs, "sample interval must not be negative")
	}

	return errs
}
