// Package parallax wires the camera, face detector, tracking controller
// and renderer into the desktop parallax box.
package parallax

import (
	"fmt"
	"strings"

	"github.com/teslashibe/parallax-box/pkg/camera"
	"github.com/teslashibe/parallax-box/pkg/tracking"
	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

// Config holds all configuration for the parallax application.
// Flag parsing is done in cmd/parallax/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool
	// DebugTracking adds per-frame tracking lines (very verbose).
	DebugTracking bool

	// Camera capture settings.
	Camera camera.Config

	// Face detector settings.
	Detector detection.Config

	// Control law, selection policy and reset animation.
	Tracking tracking.Config

	// ScenePath is a YAML scene file; empty uses the embedded scene.
	ScenePath string
	// WatchScene reloads ScenePath whenever it changes on disk.
	WatchScene bool

	// Async moves capture and detection off the render loop.
	Async bool
}

// DefaultConfig returns sensible defaults for the parallax box.
func DefaultConfig() Config {
	return Config{
		Camera:     camera.DefaultConfig(),
		Detector:   detection.DefaultConfig(),
		Tracking:   tracking.DefaultConfig(),
		WatchScene: true,
	}
}

// Validate checks every section and joins the problems into one error.
func (c *Config) Validate() error {
	var errs []string
	for _, e := range c.Camera.Validate() {
		errs = append(errs, "camera: "+e)
	}
	for _, e := range c.Tracking.Validate() {
		errs = append(errs, "tracking: "+e)
	}
	if c.Detector.ModelPath == "" {
		errs = append(errs, "detector: model path is required")
	}
	if c.Detector.ConfidenceThresh < 0 || c.Detector.ConfidenceThresh > 1 {
		errs = append(errs, fmt.Sprintf("detector: confidence must be in [0, 1] (got %v)", c.Detector.ConfidenceThresh))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
