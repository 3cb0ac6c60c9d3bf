package detection

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/teslashibe/parallax-box/pkg/debug"
	"gocv.io/x/gocv"
)

// ErrEmptyImage is returned when a frame decodes to an empty matrix.
var ErrEmptyImage = errors.New("empty image")

// YuNetDetector uses OpenCV's FaceDetectorYN for face detection
type YuNetDetector struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a new YuNet face detector using GoCV's built-in FaceDetectorYN
func NewYuNet(cfg Config) (*YuNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s: %w", cfg.ModelPath, err)
	}

	// Input size is updated per frame in Detect
	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		float32(cfg.NMSThresh),
		5000,
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetDetector{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the JPEG image
func (d *YuNetDetector) Detect(jpeg []byte) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(jpeg) == 0 {
		return nil, ErrEmptyImage
	}

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, ErrEmptyImage
	}

	// YuNet consumes BGR, which is what IMDecode yields.
	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	detections := parseFaces(faces.Rows(), float64(img.Cols()), float64(img.Rows()), func(r, c int) float64 {
		return float64(faces.GetFloatAt(r, c))
	})

	if len(detections) > 0 {
		debug.TrackLog("yunet detections", "count", len(detections))
	}

	return detections, nil
}

// parseFaces converts YuNet output rows into normalized detections.
// Row layout (15 columns): 0-3 box x, y, w, h in pixels; 4-13 five
// landmark pairs; 14 face score.
func parseFaces(rows int, imgW, imgH float64, at func(r, c int) float64) []Detection {
	if imgW <= 0 || imgH <= 0 {
		return nil
	}

	detections := make([]Detection, 0, rows)
	for r := 0; r < rows; r++ {
		x, y := at(r, 0)/imgW, at(r, 1)/imgH
		w, h := at(r, 2)/imgW, at(r, 3)/imgH

		// Boxes can poke past the frame edge; keep the corner in [0,1]
		// and trim the extent so the center stays inside the frame.
		if x < 0 {
			w += x
			x = 0
		}
		if y < 0 {
			h += y
			y = 0
		}
		if x+w > 1 {
			w = 1 - x
		}
		if y+h > 1 {
			h = 1 - y
		}
		if w <= 0 || h <= 0 {
			continue
		}

		detections = append(detections, Detection{
			X:          x,
			Y:          y,
			W:          w,
			H:          h,
			Confidence: at(r, 14),
		})
	}
	return detections
}

// Close releases the detector resources
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
