package scene

import (
	"image/color"
	"time"

	"github.com/golang/geo/r3"
	"github.com/teslashibe/parallax-box/pkg/debug"
	"github.com/teslashibe/parallax-box/pkg/movement"
)

// Part is one cube of the figure in rig space.
type Part struct {
	Name   string
	Offset r3.Vector // Center relative to the rig root
	Size   r3.Vector
	Color  color.RGBA
}

// Rig is the figure: a root on the floor carrying rigid parts.
// Only the root moves; parts keep their offsets.
//
// Rig is owned by the render loop and is not safe for concurrent use.
type Rig struct {
	root  r3.Vector
	parts []Part
	torso int

	moves *movement.Manager
}

// NewRig builds the figure from spec with its root on the box floor.
func NewRig(spec Spec) *Rig {
	r := &Rig{moves: movement.NewManager()}
	r.Apply(spec)
	return r
}

// Apply rebuilds the parts from spec. Any jump in progress keeps playing.
func (r *Rig) Apply(spec Spec) {
	r.root = r3.Vector{Y: -spec.Box.Distance}
	r.parts = r.parts[:0]
	r.torso = 0
	for i, p := range spec.Figure.Parts {
		r.parts = append(r.parts, Part{
			Name:   p.Name,
			Offset: r3.Vector{X: p.Offset[0], Y: p.Offset[1], Z: p.Offset[2]},
			Size:   r3.Vector{X: p.Size[0], Y: p.Size[1], Z: p.Size[2]},
			Color:  p.Color.RGBA(),
		})
		if p.Name == spec.Figure.Torso {
			r.torso = i
		}
	}
}

// Root returns the world position of the rig root including any jump.
func (r *Rig) Root() r3.Vector {
	return r.root.Add(r.moves.Offset())
}

// RootOffset returns the current jump offset above the resting root.
func (r *Rig) RootOffset() r3.Vector {
	return r.moves.Offset()
}

// TorsoPosition returns the world position of the torso center.
func (r *Rig) TorsoPosition() r3.Vector {
	if len(r.parts) == 0 {
		return r.Root()
	}
	return r.Root().Add(r.parts[r.torso].Offset)
}

// Jump starts a hop of the given height from the root's current height.
// A jump already in flight is replaced.
func (r *Rig) Jump(height float64, rise, fall time.Duration) {
	start := r.moves.Offset().Y
	debug.Log("rig jump", "from", start, "height", height)
	r.moves.Play(movement.NewJumpMove(start, height, rise, fall))
}

// Jumping reports whether a jump is in flight.
func (r *Rig) Jumping() bool {
	return r.moves.IsMovePlaying()
}

// Advance steps the jump animation by dt.
func (r *Rig) Advance(dt time.Duration) {
	r.moves.Advance(dt)
}

// Parts returns the figure parts in world space.
func (r *Rig) Parts() []Part {
	root := r.Root()
	out := make([]Part, len(r.parts))
	for i, p := range r.parts {
		p.Offset = root.Add(p.Offset)
		out[i] = p
	}
	return out
}
