package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/teslashibe/parallax-box/pkg/scene"
	"github.com/teslashibe/parallax-box/pkg/tracking"
	"github.com/teslashibe/parallax-box/pkg/tracking/detection"
)

type stubVideo struct{}

func (stubVideo) CaptureJPEG() ([]byte, error) { return []byte{0xff, 0xd8}, nil }

// stubDetector always sees one face
type stubDetector struct{}

func (stubDetector) Detect([]byte) ([]detection.Detection, error) {
	return []detection.Detection{{X: 0.4, Y: 0.4, W: 0.2, H: 0.2, Confidence: 0.9}}, nil
}

func (stubDetector) Close() error { return nil }

// mockTracker counts calls
type mockTracker struct {
	frames   int
	observed []tracking.Sample
	resets   int
}

func (m *mockTracker) OnFrame()                  { m.frames++ }
func (m *mockTracker) Observe(s tracking.Sample) { m.observed = append(m.observed, s) }
func (m *mockTracker) OnResetTrigger()           { m.resets++ }

func TestGame_TrackSynchronous(t *testing.T) {
	tr := &mockTracker{}
	g := NewGame(context.Background(), scene.New(scene.DefaultSpec()), tr, Options{})

	g.track()
	g.track()

	if tr.frames != 2 || len(tr.observed) != 0 {
		t.Errorf("Expected two synchronous frames, got frames=%d observed=%d", tr.frames, len(tr.observed))
	}
}

func TestGame_TrackFromSampler(t *testing.T) {
	tr := &mockTracker{}
	sampler := tracking.NewSampler(nil, 0)
	g := NewGame(context.Background(), scene.New(scene.DefaultSpec()), tr, Options{Sampler: sampler})

	// Nothing sampled yet: the tick is skipped entirely.
	g.track()
	if tr.frames != 0 || len(tr.observed) != 0 {
		t.Fatalf("Expected no tracking without a sample, got %+v", tr)
	}
}

func TestGame_TrackDeliveredSample(t *testing.T) {
	tr := &mockTracker{}
	sampler := tracking.NewSampler(tracking.NewPerception(stubVideo{}, stubDetector{}), time.Millisecond)
	g := NewGame(context.Background(), scene.New(scene.DefaultSpec()), tr, Options{Sampler: sampler})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sampler.Run(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for sampler.Produced() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
	if sampler.Produced() == 0 {
		t.Fatal("Expected the sampler to produce a sample")
	}

	g.track()
	if len(tr.observed) != 1 {
		t.Fatalf("Expected one observed sample, got %d", len(tr.observed))
	}
	got := tr.observed[0]
	if got.Outcome != tracking.OutcomeDetected || len(got.Detections) != 1 {
		t.Errorf("Expected the sampled detection, got %+v", got)
	}
	if tr.frames != 0 {
		t.Errorf("Expected no synchronous frames with a sampler, got %d", tr.frames)
	}

	// The slot is drained by the first tick.
	g.track()
	if len(tr.observed) != 1 || tr.frames != 0 {
		t.Errorf("Expected nothing more to observe, got observed=%d frames=%d", len(tr.observed), tr.frames)
	}
}

func TestGame_ReloadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	spec := scene.DefaultSpec()
	data, err := os.ReadFile(filepath.Join("..", "scene", "default.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := scene.NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	sc := scene.New(spec)
	g := NewGame(context.Background(), sc, &mockTracker{}, Options{Watcher: w})

	tmp := filepath.Join(dir, "next.tmp")
	updated := strings.Replace(string(data), "fov: 40", "fov: 70", 1)
	if err := os.WriteFile(tmp, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for sc.Spec().Camera.FOV != 70 && time.Now().Before(deadline) {
		g.reloadScene()
		time.Sleep(10 * time.Millisecond)
	}
	if sc.Spec().Camera.FOV != 70 {
		t.Errorf("Expected the reloaded fov 70, got %v", sc.Spec().Camera.FOV)
	}
}

func TestTickDuration(t *testing.T) {
	tests := []struct {
		tps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{120, time.Second / 120},
		{0, time.Second / 60},
		{-1, time.Second / 60},
	}
	for _, tc := range tests {
		if got := tickDuration(tc.tps); got != tc.want {
			t.Errorf("tickDuration(%d) = %v, want %v", tc.tps, got, tc.want)
		}
	}
}
