// Package camera provides webcam capture for the parallax box.
// Frames are handed to the face detector as JPEG bytes.
package camera

import "fmt"

// Config holds capture device settings.
type Config struct {
	// DeviceID is the OS video device index. Index 2 is the
	// external webcam on the reference setup; there is no discovery.
	DeviceID int

	// === Resolution ===
	Width     int // Requested frame width in pixels (0 = driver default)
	Height    int // Requested frame height in pixels (0 = driver default)
	Framerate int // Requested FPS (0 = driver default)

	// Quality is the JPEG quality 1-100 used when encoding frames for the detector.
	Quality int
}

// Device limits accepted by Validate.
const (
	MaxDeviceID  = 63
	MaxWidth     = 4096
	MaxHeight    = 2160
	MaxFramerate = 120
)

// DefaultDeviceID is the capture index used when nothing else is configured.
const DefaultDeviceID = 2

// DefaultConfig returns the capture settings used for face tracking.
// 640x480 is plenty for a near-range face and keeps detection fast.
func DefaultConfig() Config {
	return Config{
		DeviceID:  DefaultDeviceID,
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   80,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.DeviceID < 0 || c.DeviceID > MaxDeviceID {
		errors = append(errors, fmt.Sprintf("device_id must be between 0 and %d", MaxDeviceID))
	}

	// Zero means "let the driver pick"
	if c.Width != 0 && (c.Width < 160 || c.Width > MaxWidth) {
		errors = append(errors, fmt.Sprintf("width must be 0 or between 160 and %d", MaxWidth))
	}
	if c.Height != 0 && (c.Height < 120 || c.Height > MaxHeight) {
		errors = append(errors, fmt.Sprintf("height must be 0 or between 120 and %d", MaxHeight))
	}
	if c.Framerate < 0 || c.Framerate > MaxFramerate {
		errors = append(errors, fmt.Sprintf("framerate must be between 0 and %d", MaxFramerate))
	}

	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}

	return errors
}
