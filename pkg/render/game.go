// Package render hosts the parallax box in an ebiten window.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/teslashibe/parallax-box/internal/log"
	"github.com/teslashibe/parallax-box/pkg/debug"
	"github.com/teslashibe/parallax-box/pkg/scene"
	"github.com/teslashibe/parallax-box/pkg/tracking"
)

// Tracker is the per-frame tracking hook the game drives
type Tracker interface {
	OnFrame()
	Observe(tracking.Sample)
	OnResetTrigger()
}

// Options holds the optional collaborators of a Game
type Options struct {
	// Sampler, when set, replaces the synchronous capture in Update.
	Sampler *tracking.Sampler
	// Watcher, when set, hot-reloads the scene spec.
	Watcher *scene.Watcher
}

// Game is the ebiten host: it ticks tracking, handles the reset click
// and draws the box.
type Game struct {
	ctx     context.Context
	scene   *scene.Scene
	tracker Tracker
	opts    Options

	mesh   Mesh
	frames uint64
}

// NewGame creates the game. Cancelling ctx ends the run loop.
func NewGame(ctx context.Context, sc *scene.Scene, tracker Tracker, opts Options) *Game {
	return &Game{
		ctx:     ctx,
		scene:   sc,
		tracker: tracker,
		opts:    opts,
	}
}

// Configure applies the scene's window settings. Call before ebiten.RunGame.
func Configure(spec scene.Spec) {
	ebiten.SetWindowTitle(spec.Window.Title)
	ebiten.SetWindowSize(spec.Window.Width, spec.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.frames++

	g.reloadScene()
	g.track()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.tracker.OnResetTrigger()
	}

	g.scene.Rig().Advance(tickDuration(ebiten.TPS()))
	return nil
}

// tickDuration is the time one Update represents at tps ticks per second.
func tickDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

func (g *Game) track() {
	if g.opts.Sampler == nil {
		g.tracker.OnFrame()
		return
	}
	if sample, ok := g.opts.Sampler.Latest(); ok {
		g.tracker.Observe(sample)
	}
}

func (g *Game) reloadScene() {
	if g.opts.Watcher == nil {
		return
	}
	spec, ok, err := g.opts.Watcher.Poll()
	if err != nil {
		log.Warn("scene reload failed, keeping current scene", "error", err)
		return
	}
	if ok {
		g.scene.Apply(spec)
		log.Info("scene reloaded")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	spec := g.scene.Spec()
	screen.Fill(spec.Window.Background.RGBA())

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	g.mesh.Reset()
	for _, p := range g.scene.Polygons(float64(w), float64(h)) {
		if !g.mesh.AddPolygon(p.Points, p.Color) {
			debug.Log("polygon skipped", "points", len(p.Points))
		}
	}
	g.mesh.Draw(screen)

	if spec.Window.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()))
	}
	if spec.Window.Hint != "" {
		ebitenutil.DebugPrintAt(screen, spec.Window.Hint, 8, h-24)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Frames returns how many updates have run
func (g *Game) Frames() uint64 {
	return g.frames
}
