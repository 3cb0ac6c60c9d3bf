package tracking

import (
	"time"

	"github.com/golang/geo/r3"
	"github.com/teslashibe/parallax-box/internal/log"
	"github.com/teslashibe/parallax-box/pkg/debug"
	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

// Camera is the viewpoint the controller moves
type Camera interface {
	Position() r3.Vector
	SetPosition(r3.Vector)
	LookAt(r3.Vector)
}

// Figure is the rig the camera keeps looking at
type Figure interface {
	TorsoPosition() r3.Vector
	Jump(height float64, rise, fall time.Duration)
}

// Stats counts what the controller has seen since it started
type Stats struct {
	Ticks           uint64
	CaptureFailures uint64
	DetectErrors    uint64
	Misses          uint64
	Detections      uint64
	Resets          uint64
}

// Controller maps the tracked face to the camera position.
//
// It is driven from the render loop and is not safe for concurrent use;
// the async Sampler hands it samples instead of touching it directly.
type Controller struct {
	config     Config
	perception *Perception
	camera     Camera
	figure     Figure

	// Normalized face center, stale on misses
	centerX, centerY float64
	// Normalized reference point, changed only by reset
	refX, refY float64

	missStreak int
	stats      Stats
}

// NewController creates a controller. perception may be nil when samples
// are delivered by a Sampler.
func NewController(config Config, perception *Perception, camera Camera, figure Figure) *Controller {
	return &Controller{
		config:     config,
		perception: perception,
		camera:     camera,
		figure:     figure,
		centerX:    config.ReferenceX,
		centerY:    config.ReferenceY,
		refX:       config.ReferenceX,
		refY:       config.ReferenceY,
	}
}

// OnFrame runs one synchronous tracking step: capture, detect and, if a
// face was found, move the camera. Failures and misses leave everything
// but the counters untouched.
func (c *Controller) OnFrame() {
	if c.perception == nil {
		c.Observe(Sample{Outcome: OutcomeCaptureFailed})
		return
	}
	c.Observe(c.perception.Sample())
}

// Apply feeds detections produced elsewhere through the control law.
// An empty slice counts as a miss.
func (c *Controller) Apply(dets []detection.Detection) {
	c.Observe(detectionsSample(dets))
}

// Observe records one sample and applies it.
func (c *Controller) Observe(s Sample) {
	c.stats.Ticks++

	switch s.Outcome {
	case OutcomeCaptureFailed:
		c.stats.CaptureFailures++
		debug.TrackLog("capture failed", "err", s.Err)
		c.noFace()
		return
	case OutcomeDetectFailed:
		c.stats.DetectErrors++
		debug.TrackLog("detect failed", "err", s.Err)
		c.noFace()
		return
	}

	face := c.config.Policy.Select(s.Detections)
	if face == nil {
		c.stats.Misses++
		c.noFace()
		return
	}

	c.stats.Detections++
	if c.missStreak >= c.config.MissLogStreak && c.config.MissLogStreak > 0 {
		log.Info("face reacquired", "after_ticks", c.missStreak)
	}
	c.missStreak = 0

	c.centerX, c.centerY = face.Center()
	c.follow()
}

// follow moves the camera toward the target for the current center and
// turns it to the torso.
func (c *Controller) follow() {
	targetX := (c.centerX - c.refX) * c.config.HorizontalGain
	targetY := (c.centerY - c.refY) * c.config.VerticalGain

	pos := c.camera.Position()
	pos.X = lerp(pos.X, targetX, c.config.Smoothing)
	pos.Y = lerp(pos.Y, targetY, c.config.Smoothing)
	c.camera.SetPosition(pos)
	c.camera.LookAt(c.figure.TorsoPosition())

	debug.TrackLog("follow",
		"center_x", c.centerX, "center_y", c.centerY,
		"target_x", targetX, "target_y", targetY,
		"camera_x", pos.X, "camera_y", pos.Y)
}

func (c *Controller) noFace() {
	c.missStreak++
	if c.missStreak == c.config.MissLogStreak {
		log.Info("lost face", "ticks", c.missStreak)
	}
}

// OnResetTrigger makes the current face position the new neutral point
// and plays the jump on the figure.
func (c *Controller) OnResetTrigger() {
	c.refX, c.refY = c.centerX, c.centerY
	c.stats.Resets++
	c.figure.Jump(c.config.JumpHeight, c.config.JumpRise, c.config.JumpFall)
	log.Info("reference reset", "x", c.refX, "y", c.refY)
}

// Center returns the last detected face center
func (c *Controller) Center() (x, y float64) {
	return c.centerX, c.centerY
}

// Reference returns the neutral point
func (c *Controller) Reference() (x, y float64) {
	return c.refX, c.refY
}

// Stats returns a copy of the counters
func (c *Controller) Stats() Stats {
	return c.stats
}

// lerp moves a toward b by the fraction t
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
