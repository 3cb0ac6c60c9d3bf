package parallax

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/teslashibe/parallax-box/internal/log"
	"github.com/teslashibe/parallax-box/pkg/camera"
	"github.com/teslashibe/parallax-box/pkg/debug"
	"github.com/teslashibe/parallax-box/pkg/render"
	"github.com/teslashibe/parallax-box/pkg/scene"
	"github.com/teslashibe/parallax-box/pkg/tracking"
	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

// samplerStopTimeout bounds how long Run waits for the sampler after the
// window closes. A camera read can block forever.
const samplerStopTimeout = 2 * time.Second

// App is the parallax box orchestrator.
// It manages all components and their lifecycle.
type App struct {
	config Config

	// Input
	capture  *camera.Capture
	detector detection.Detector

	// Tracking
	controller *tracking.Controller
	sampler    *tracking.Sampler

	// Set when the sampler outlived Run; it may still be using the camera
	// and detector.
	samplerStuck bool

	// Scene
	scene   *scene.Scene
	watcher *scene.Watcher

	shutdownOnce sync.Once
}

// New creates a new application with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug.Enabled = cfg.Debug
	debug.Tracking = cfg.DebugTracking

	return &App{config: cfg}, nil
}

// Init opens the scene, the detector and the camera.
// Call this after New() and before Run(). On error everything opened so
// far is released again.
func (a *App) Init() error {
	if err := a.initScene(); err != nil {
		a.Shutdown()
		return err
	}
	if err := a.initTracking(); err != nil {
		a.Shutdown()
		return err
	}
	return nil
}

// initScene loads the scene spec and starts the optional file watcher.
func (a *App) initScene() error {
	spec, err := scene.LoadSpec(a.config.ScenePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	a.scene = scene.New(spec)

	source := a.config.ScenePath
	if source == "" {
		source = "embedded"
	}
	log.Info("scene loaded", "source", source, "parts", len(spec.Figure.Parts))

	if a.config.WatchScene && a.config.ScenePath != "" {
		w, err := scene.NewWatcher(a.config.ScenePath)
		if err != nil {
			// Hot reload is a convenience; the scene itself is fine.
			log.Warn("scene watcher unavailable", "error", err)
		} else {
			a.watcher = w
		}
	}
	return nil
}

// initTracking opens the detector and camera and builds the controller.
func (a *App) initTracking() error {
	det, err := detection.NewYuNet(a.config.Detector)
	if err != nil {
		return fmt.Errorf("init face detector: %w", err)
	}
	a.detector = det
	log.Info("face detector ready", "model", a.config.Detector.ModelPath)

	capture, err := camera.Open(a.config.Camera)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", a.config.Camera.DeviceID, err)
	}
	a.capture = capture
	log.Info("camera opened",
		"device", a.config.Camera.DeviceID,
		"width", a.config.Camera.Width,
		"height", a.config.Camera.Height)

	a.buildController(tracking.NewPerception(a.capture, a.detector))
	return nil
}

// buildController wires perception into the controller, either directly
// or through the async sampler.
func (a *App) buildController(perception *tracking.Perception) {
	if a.config.Async {
		a.sampler = tracking.NewSampler(perception, a.config.Tracking.SampleInterval)
		a.controller = tracking.NewController(a.config.Tracking, nil, a.scene.View(), a.scene.Rig())
	} else {
		a.controller = tracking.NewController(a.config.Tracking, perception, a.scene.View(), a.scene.Rig())
	}
	log.Info("tracking ready",
		"policy", a.config.Tracking.Policy,
		"smoothing", a.config.Tracking.Smoothing,
		"async", a.config.Async)
}

// Run opens the window and blocks until it closes or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.controller == nil {
		return fmt.Errorf("run: app not initialized")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var samplerDone chan struct{}
	if a.sampler != nil {
		samplerDone = make(chan struct{})
		go func() {
			defer close(samplerDone)
			a.sampler.Run(ctx)
		}()
	}

	render.Configure(a.scene.Spec())
	game := render.NewGame(ctx, a.scene, a.controller, render.Options{
		Sampler: a.sampler,
		Watcher: a.watcher,
	})

	log.Info("window opening", "title", a.scene.Spec().Window.Title)
	err := ebiten.RunGame(game)

	cancel()
	if samplerDone != nil && !waitStopped(samplerDone, samplerStopTimeout) {
		a.samplerStuck = true
		log.Warn("sampler did not stop, camera read may be blocked", "waited", samplerStopTimeout)
	}

	if err != nil {
		return fmt.Errorf("render loop: %w", err)
	}
	log.Info("window closed", "frames", game.Frames())
	return nil
}

// Shutdown releases the camera, detector and watcher. Safe to call more
// than once and after a failed Init.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.controller != nil {
			s := a.controller.Stats()
			log.Info("tracking stats",
				"ticks", s.Ticks,
				"detections", s.Detections,
				"misses", s.Misses,
				"capture_failures", s.CaptureFailures,
				"detect_errors", s.DetectErrors,
				"resets", s.Resets)
		}
		if a.watcher != nil {
			if err := a.watcher.Close(); err != nil {
				log.Warn("close scene watcher", "error", err)
			}
		}
		if a.samplerStuck {
			log.Warn("leaving camera and face detector open, sampler still running")
			log.Info("goodbye")
			return
		}
		if a.detector != nil {
			if err := a.detector.Close(); err != nil {
				log.Warn("close face detector", "error", err)
			}
		}
		if a.capture != nil {
			if err := a.capture.Close(); err != nil {
				log.Warn("close camera", "error", err)
			}
		}
		log.Info("goodbye")
	})
}

// waitStopped waits for done to close, giving up after timeout.
func waitStopped(done <-chan struct{}, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// Controller exposes the tracking controller, mainly for tests.
func (a *App) Controller() *tracking.Controller {
	return a.controller
}

// Scene exposes the scene.
func (a *App) Scene() *scene.Scene {
	return a.scene
}
