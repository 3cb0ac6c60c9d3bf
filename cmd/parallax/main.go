// Desktop Parallax Box - a webcam-tracked view into a small colored box.
// Move your head and the camera follows; left click re-centers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/parallax-box/internal/config"
	"github.com/teslashibe/parallax-box/internal/log"
	"github.com/teslashibe/parallax-box/pkg/camera"
	"github.com/teslashibe/parallax-box/pkg/parallax"
	"github.com/teslashibe/parallax-box/pkg/tracking"
	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, logLevel, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "parallax: %v\n", err)
		return 2
	}
	log.Init(logLevel)

	app, err := parallax.New(cfg)
	if err != nil {
		log.Error("configuration error", "error", err)
		return 1
	}
	defer app.Shutdown()

	if err := app.Init(); err != nil {
		log.Error("initialization failed", "error", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Error("runtime error", "error", err)
		return 1
	}
	return 0
}

// parseFlags parses command line flags and returns configuration.
// Environment variables supply the defaults; explicit flags win.
func parseFlags(args []string) (parallax.Config, string, error) {
	cfg := parallax.DefaultConfig()
	fs := flag.NewFlagSet("parallax", flag.ContinueOnError)

	debugFlag := fs.Bool("debug", false, "Enable verbose debug logging")
	debugTracking := fs.Bool("debug-tracking", false, "Log every tracking tick (very verbose)")
	logLevel := fs.String("log-level", config.LogLevel("info"), "Log level: debug, info, warn, error")

	device := fs.Int("camera", config.CameraDevice(cfg.Camera.DeviceID), "Camera device index")
	cameraPreset := fs.String("camera-preset", "", "Camera preset: default, low, 720p, 1080p")
	model := fs.String("model", config.ModelPath(cfg.Detector.ModelPath), "YuNet face detection model (.onnx)")
	confidence := fs.Float64("confidence", cfg.Detector.ConfidenceThresh, "Minimum face confidence")

	scenePath := fs.String("scene", config.ScenePath(""), "Scene YAML file (empty = built-in box)")
	watch := fs.Bool("watch", cfg.WatchScene, "Reload the scene file when it changes")

	preset := fs.String("preset", "default", "Tracking preset: default, slow, snappy")
	policy := fs.String("policy", "", "Face selection when several are found: last, first, best (default from preset)")
	async := fs.Bool("async", false, "Capture and detect on a background goroutine")

	if err := fs.Parse(args); err != nil {
		return cfg, "", err
	}

	if *cameraPreset != "" {
		p := camera.GetPreset(*cameraPreset)
		if p == nil {
			return cfg, "", fmt.Errorf("unknown camera preset %q (want one of %v)", *cameraPreset, camera.PresetNames())
		}
		cfg.Camera = *p
	}
	cfg.Camera.DeviceID = *device

	tcfg, err := tracking.GetPreset(*preset)
	if err != nil {
		return cfg, "", err
	}
	if *policy != "" {
		p, err := detection.ParsePolicy(*policy)
		if err != nil {
			return cfg, "", err
		}
		tcfg.Policy = p
	}
	cfg.Tracking = tcfg

	cfg.Debug, cfg.DebugTracking, cfg.Async = *debugFlag, *debugTracking, *async
	cfg.Detector.ModelPath = *model
	cfg.Detector.ConfidenceThresh = *confidence
	cfg.ScenePath, cfg.WatchScene = *scenePath, *watch

	level := *logLevel
	if cfg.Debug || cfg.DebugTracking {
		level = "debug"
	}
	return cfg, level, nil
}
