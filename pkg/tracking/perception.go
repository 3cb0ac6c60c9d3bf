// Package tracking turns webcam faces into parallax camera motion.
package tracking

import (
	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

// VideoSource interface for capturing frames
type VideoSource interface {
	CaptureJPEG() ([]byte, error)
}

// Outcome classifies one capture + detect pass
type Outcome int

const (
	OutcomeDetected Outcome = iota
	OutcomeMiss
	OutcomeCaptureFailed
	OutcomeDetectFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDetected:
		return "detected"
	case OutcomeMiss:
		return "miss"
	case OutcomeCaptureFailed:
		return "capture_failed"
	case OutcomeDetectFailed:
		return "detect_failed"
	default:
		return "unknown"
	}
}

// Sample is the result of looking at one frame
type Sample struct {
	Outcome    Outcome
	Detections []detection.Detection
	Err        error
}

// Perception pulls a frame from the video source and runs face detection.
// It keeps no state between frames so it can run on any goroutine.
type Perception struct {
	video    VideoSource
	detector detection.Detector
}

// NewPerception creates a perception stage over video and detector
func NewPerception(video VideoSource, detector detection.Detector) *Perception {
	return &Perception{video: video, detector: detector}
}

// Sample captures and detects once. It never fails; failures are
// reported in the returned Sample.
func (p *Perception) Sample() Sample {
	if p.video == nil {
		return Sample{Outcome: OutcomeCaptureFailed}
	}
	frame, err := p.video.CaptureJPEG()
	if err != nil {
		return Sample{Outcome: OutcomeCaptureFailed, Err: err}
	}

	if p.detector == nil {
		return Sample{Outcome: OutcomeDetectFailed}
	}
	dets, err := p.detector.Detect(frame)
	if err != nil {
		return Sample{Outcome: OutcomeDetectFailed, Err: err}
	}
	return detectionsSample(dets)
}

func detectionsSample(dets []detection.Detection) Sample {
	if len(dets) == 0 {
		return Sample{Outcome: OutcomeMiss}
	}
	return Sample{Outcome: OutcomeDetected, Detections: dets}
}
