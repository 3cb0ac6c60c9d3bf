package camera

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

var (
	// ErrNotOpened is returned when the device could not be opened or was closed.
	ErrNotOpened = errors.New("capture device not opened")
	// ErrReadFailed is returned when the device produced no frame.
	ErrReadFailed = errors.New("frame read failed")
)

// Capture reads frames from a local video device.
// It is safe for use from one render loop and one sampler goroutine.
type Capture struct {
	config Config
	vc     *gocv.VideoCapture
	frame  gocv.Mat
	mu     sync.Mutex
	closed bool
}

// Open opens the configured device and applies the requested size and rate.
func Open(cfg Config) (*Capture, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %v", errs)
	}

	vc, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("open device %d: %w", cfg.DeviceID, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open device %d: %w", cfg.DeviceID, ErrNotOpened)
	}

	if cfg.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}
	if cfg.Framerate > 0 {
		vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	}

	return &Capture{
		config: cfg,
		vc:     vc,
		frame:  gocv.NewMat(),
	}, nil
}

// Config returns the settings the device was opened with.
func (c *Capture) Config() Config {
	return c.config
}

// CaptureJPEG reads one frame and returns it JPEG-encoded.
// A failed or empty read returns ErrReadFailed; callers skip the frame.
func (c *Capture) CaptureJPEG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrNotOpened
	}

	if ok := c.vc.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, ErrReadFailed
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, c.frame, []int{gocv.IMWriteJpegQuality, c.config.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	return bytes.Clone(buf.GetBytes()), nil
}

// Close releases the device. It is safe to call more than once.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.frame.Close()
	return c.vc.Close()
}
