// Package scene holds the parallax box: five colored walls, a small
// figure standing on the floor, and the perspective view that looks in.
package scene

import (
	"github.com/golang/geo/r3"
	"github.com/teslashibe/parallax-box/pkg/debug"
)

// Scene is the box, the figure and the view into them.
type Scene struct {
	spec Spec
	view *View
	rig  *Rig
}

// New builds a scene with the camera at its resting position.
func New(spec Spec) *Scene {
	return &Scene{
		spec: spec,
		view: NewView(RestPosition(spec), spec.Camera.FOV),
		rig:  NewRig(spec),
	}
}

// RestPosition is where the camera sits when no face has been seen.
func RestPosition(spec Spec) r3.Vector {
	return r3.Vector{Z: spec.Camera.Z}
}

func (s *Scene) Spec() Spec {
	return s.spec
}

func (s *Scene) View() *View {
	return s.view
}

func (s *Scene) Rig() *Rig {
	return s.rig
}

// Apply swaps in a reloaded spec. The camera keeps its pose and any
// jump keeps playing; colors, geometry and FOV change immediately.
func (s *Scene) Apply(spec Spec) {
	s.spec = spec
	s.view.SetFOV(spec.Camera.FOV)
	s.rig.Apply(spec)
	debug.Log("scene applied", "parts", len(spec.Figure.Parts), "walls", len(spec.Box.Walls))
}

// Quads returns every face in world space.
func (s *Scene) Quads() []Quad {
	quads := make([]Quad, 0, len(WallNames)+6*len(s.spec.Figure.Parts))
	for _, name := range WallNames {
		c, ok := s.spec.Box.Walls[name]
		if !ok {
			continue
		}
		if q, ok := wallQuad(name, s.spec.Box.Scale, s.spec.Box.Distance, c.RGBA()); ok {
			quads = append(quads, q)
		}
	}
	for _, p := range s.rig.Parts() {
		quads = append(quads, cubeQuads(p.Offset, p.Size, p.Color)...)
	}
	return quads
}

// Polygons projects the scene onto a w×h screen in draw order.
func (s *Scene) Polygons(w, h float64) []Polygon {
	return Project(s.view, s.Quads(), w, h)
}
