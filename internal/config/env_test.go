package config

import "testing"

func TestInt(t *testing.T) {
	t.Setenv(EnvCamera, "")
	if got := CameraDevice(2); got != 2 {
		t.Errorf("Expected default 2, got %d", got)
	}

	t.Setenv(EnvCamera, "0")
	if got := CameraDevice(2); got != 0 {
		t.Errorf("Expected 0 from env, got %d", got)
	}

	t.Setenv(EnvCamera, "front")
	if got := CameraDevice(2); got != 2 {
		t.Errorf("Expected fallback 2 for non-numeric value, got %d", got)
	}
}

func TestString(t *testing.T) {
	t.Setenv(EnvModel, "")
	if got := ModelPath("models/a.onnx"); got != "models/a.onnx" {
		t.Errorf("Expected default model path, got %q", got)
	}

	t.Setenv(EnvModel, "/opt/yunet.onnx")
	if got := ModelPath("models/a.onnx"); got != "/opt/yunet.onnx" {
		t.Errorf("Expected env model path, got %q", got)
	}

	t.Setenv(EnvLogLevel, "debug")
	if got := LogLevel("info"); got != "debug" {
		t.Errorf("Expected debug, got %q", got)
	}

	t.Setenv(EnvScene, "")
	if got := ScenePath(""); got != "" {
		t.Errorf("Expected empty scene path, got %q", got)
	}
}
