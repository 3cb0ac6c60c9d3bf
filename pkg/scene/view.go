package scene

import (
	"math"

	"github.com/golang/geo/r3"
)

// NearPlane is the view-space depth below which geometry is clipped.
const NearPlane = 0.05

var worldUp = r3.Vector{Y: 1}

// View is a perspective camera in a left-handed world (x right, y up,
// z into the box). It starts looking down +z.
type View struct {
	pos     r3.Vector
	right   r3.Vector
	up      r3.Vector
	forward r3.Vector
	fov     float64 // Vertical, radians
}

// NewView places a camera at pos looking down +z.
func NewView(pos r3.Vector, fovDegrees float64) *View {
	return &View{
		pos:     pos,
		right:   r3.Vector{X: 1},
		up:      worldUp,
		forward: r3.Vector{Z: 1},
		fov:     fovDegrees * math.Pi / 180,
	}
}

func (v *View) Position() r3.Vector {
	return v.pos
}

// SetPosition moves the camera without changing its orientation.
func (v *View) SetPosition(p r3.Vector) {
	v.pos = p
}

// SetFOV sets the vertical field of view in degrees.
func (v *View) SetFOV(degrees float64) {
	v.fov = degrees * math.Pi / 180
}

// Forward returns the unit view direction.
func (v *View) Forward() r3.Vector {
	return v.forward
}

// LookAt orients the camera toward target, keeping world up.
// Targets at the camera position or straight above/below are ignored.
func (v *View) LookAt(target r3.Vector) {
	dir := target.Sub(v.pos)
	if dir.Norm() < 1e-9 {
		return
	}
	forward := dir.Normalize()
	right := worldUp.Cross(forward)
	if right.Norm() < 1e-9 {
		return
	}
	right = right.Normalize()
	v.forward = forward
	v.right = right
	v.up = forward.Cross(right)
}

// ToView converts a world point into view space (x right, y up, z depth).
func (v *View) ToView(p r3.Vector) r3.Vector {
	d := p.Sub(v.pos)
	return r3.Vector{X: d.Dot(v.right), Y: d.Dot(v.up), Z: d.Dot(v.forward)}
}

// Focal returns the focal length in pixels for a screen of height h.
func (v *View) Focal(h float64) float64 {
	return (h / 2) / math.Tan(v.fov/2)
}

// Project maps a view-space point with z > 0 to screen pixels.
func (v *View) Project(p r3.Vector, w, h float64) (float64, float64) {
	f := v.Focal(h)
	return w/2 + p.X/p.Z*f, h/2 - p.Y/p.Z*f
}
