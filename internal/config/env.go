// Package config provides environment helpers for parallax-box commands.
package config

import (
	"os"
	"strconv"
)

// Environment variables read by cmd/parallax.
const (
	EnvCamera   = "PARALLAX_CAMERA"
	EnvModel    = "PARALLAX_MODEL"
	EnvScene    = "PARALLAX_SCENE"
	EnvLogLevel = "LOG_LEVEL"
)

// String returns the value of key, or def if it is unset or empty.
func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Int returns the integer value of key.
// Falls back to def if it is unset or not a number.
func Int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// CameraDevice returns the capture device index from PARALLAX_CAMERA.
func CameraDevice(def int) int {
	return Int(EnvCamera, def)
}

// ModelPath returns the face model path from PARALLAX_MODEL.
func ModelPath(def string) string {
	return String(EnvModel, def)
}

// ScenePath returns the scene file from PARALLAX_SCENE.
// An empty result means the embedded scene is used.
func ScenePath(def string) string {
	return String(EnvScene, def)
}

// LogLevel returns the log level from LOG_LEVEL.
func LogLevel(def string) string {
	return String(EnvLogLevel, def)
}
