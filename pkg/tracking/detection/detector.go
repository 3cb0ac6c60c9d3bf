// Package detection provides face detection using computer vision
package detection

import "fmt"

// Detection represents a detected face
type Detection struct {
	X, Y       float64 // Bounding box min corner (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)
}

// Center returns the center point of the detection
func (d Detection) Center() (x, y float64) {
	return d.X + d.W/2, d.Y + d.H/2
}

// Area returns the area of the bounding box
func (d Detection) Area() float64 {
	return d.W * d.H
}

// Detector is the interface for face detection backends
type Detector interface {
	// Detect finds faces in the image and returns their positions
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	NMSThresh        float64 // Non-maximum suppression IoU threshold
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet.
// The 0.5 threshold and a small input keep the detector in its
// lightweight near-range mode.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		NMSThresh:        0.3,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// Policy decides which face drives the camera when several are found
type Policy string

const (
	// PolicyLast keeps the final detection in the returned collection.
	PolicyLast Policy = "last"
	// PolicyFirst keeps the first detection.
	PolicyFirst Policy = "first"
	// PolicyBest scores confidence and relative area, see SelectBest.
	PolicyBest Policy = "best"
)

// ParsePolicy converts a flag value to a Policy
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyLast, PolicyFirst, PolicyBest:
		return p, nil
	case "":
		return PolicyLast, nil
	default:
		return "", fmt.Errorf("unknown selection policy %q (want last, first or best)", s)
	}
}

// Select picks one detection according to the policy.
// Returns nil when dets is empty.
func (p Policy) Select(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}
	switch p {
	case PolicyFirst:
		return &dets[0]
	case PolicyBest:
		return SelectBest(dets)
	default:
		return &dets[len(dets)-1]
	}
}

// SelectBest picks the best face from multiple detections
// Priority: confidence * 0.7 + area * 0.3
func SelectBest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}

	if len(dets) == 1 {
		return &dets[0]
	}

	// Find max area for normalization
	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}

	bestScore := -1.0
	var best *Detection

	for i := range dets {
		areaScore := 0.0
		if maxArea > 0 {
			areaScore = dets[i].Area() / maxArea
		}
		score := dets[i].Confidence*0.7 + areaScore*0.3
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}

	return best
}
