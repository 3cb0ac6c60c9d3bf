package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec wraps every validation failure from LoadSpec and ParseSpec.
var ErrInvalidSpec = errors.New("invalid scene spec")

//go:embed default.yaml
var defaultSpec []byte

// Spec describes the box, the figure and the viewpoint.
type Spec struct {
	Window WindowSpec `yaml:"window"`
	Box    BoxSpec    `yaml:"box"`
	Figure FigureSpec `yaml:"figure"`
	Camera CameraSpec `yaml:"camera"`
}

type WindowSpec struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background Color  `yaml:"background"`
	Hint       string `yaml:"hint"`
	ShowFPS    bool   `yaml:"show_fps"`
}

// BoxSpec is an open-fronted cube of Scale-sized walls, each Distance
// away from the origin.
type BoxSpec struct {
	Scale    float64          `yaml:"scale"`
	Distance float64          `yaml:"distance"`
	Walls    map[string]Color `yaml:"walls"`
}

type FigureSpec struct {
	// Torso names the part the camera keeps looking at.
	Torso string     `yaml:"torso"`
	Parts []PartSpec `yaml:"parts"`
}

// PartSpec is one rigid cube of the figure, placed relative to the root.
type PartSpec struct {
	Name   string     `yaml:"name"`
	Offset [3]float64 `yaml:"offset"`
	Size   [3]float64 `yaml:"size"`
	Color  Color      `yaml:"color"`
}

type CameraSpec struct {
	Z   float64 `yaml:"z"`
	FOV float64 `yaml:"fov"` // Vertical field of view in degrees
}

// Wall names recognised in box.walls.
const (
	WallBack    = "back"
	WallLeft    = "left"
	WallRight   = "right"
	WallCeiling = "ceiling"
	WallFloor   = "floor"
)

// WallNames lists the walls in draw-independent, stable order.
var WallNames = []string{WallBack, WallLeft, WallRight, WallCeiling, WallFloor}

// Color is an RGBA color that unmarshals from a CSS color name
// ("red", "gray") or a "#rrggbb" / "#rrggbbaa" hex string.
type Color color.RGBA

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = Color(parsed)
	return nil
}

// RGBA returns the color as a color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA(c)
}

// ParseColor parses a CSS color name or a hex string.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color name: %q", s)
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	var c color.RGBA
	var err error
	if c.R, err = parse(0); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	if c.G, err = parse(2); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	if c.B, err = parse(4); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	c.A = 0xff
	if len(hex) == 8 {
		if c.A, err = parse(6); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %s: %w", s, err)
		}
	}
	return c, nil
}

// DefaultSpec returns the embedded scene.
func DefaultSpec() Spec {
	spec, err := ParseSpec(defaultSpec)
	if err != nil {
		panic(fmt.Sprintf("scene: embedded default.yaml: %v", err))
	}
	return spec
}

// LoadSpec reads a scene file. An empty path returns the embedded scene.
func LoadSpec(path string) (Spec, error) {
	if path == "" {
		return DefaultSpec(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("scene: load %s: %w", path, err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		return Spec{}, fmt.Errorf("scene: %s: %w", path, err)
	}
	return spec, nil
}

// ParseSpec decodes and validates YAML scene data.
func ParseSpec(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("scene: unmarshal: %w", err)
	}
	if errs := spec.Validate(); len(errs) > 0 {
		return Spec{}, fmt.Errorf("%w: %s", ErrInvalidSpec, strings.Join(errs, "; "))
	}
	return spec, nil
}

// Validate checks the spec for values the renderer cannot use.
// Returns a list of validation errors, or nil if valid.
func (s *Spec) Validate() []string {
	var errs []string

	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, "window width and height must be positive")
	}
	if s.Box.Scale <= 0 {
		errs = append(errs, "box scale must be positive")
	}
	if s.Box.Distance <= 0 {
		errs = append(errs, "box distance must be positive")
	}
	for name := range s.Box.Walls {
		if !isWall(name) {
			errs = append(errs, fmt.Sprintf("unknown wall %q", name))
		}
	}

	if len(s.Figure.Parts) == 0 {
		errs = append(errs, "figure needs at least one part")
	}
	seen := make(map[string]bool, len(s.Figure.Parts))
	for _, p := range s.Figure.Parts {
		if p.Name == "" {
			errs = append(errs, "figure part without a name")
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Sprintf("duplicate figure part %q", p.Name))
		}
		seen[p.Name] = true
		if p.Size[0] <= 0 || p.Size[1] <= 0 || p.Size[2] <= 0 {
			errs = append(errs, fmt.Sprintf("part %q size must be positive", p.Name))
		}
	}
	if !seen[s.Figure.Torso] {
		errs = append(errs, fmt.Sprintf("torso part %q not found", s.Figure.Torso))
	}

	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		errs = append(errs, "camera fov must be between 0 and 180 degrees")
	}
	if s.Camera.Z >= -s.Box.Distance {
		errs = append(errs, "camera must sit in front of the box opening (z < -distance)")
	}

	return errs
}

func isWall(name string) bool {
	for _, w := range WallNames {
		if w == name {
			return true
		}
	}
	return false
}
