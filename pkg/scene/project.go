package scene

import (
	"image/color"
	"sort"

	"github.com/golang/geo/r3"
)

// Layers draw in ascending order; within a layer faces are depth sorted.
// LayerOutside holds double-sided faces seen from their back, which sit
// between the camera and everything inside the box.
const (
	LayerBox     = 0
	LayerFigure  = 1
	LayerOutside = 2
)

// Quad is a flat, unlit, single-color face in world space. A single-sided
// quad is only visible from the side Normal points to.
type Quad struct {
	Corners     [4]r3.Vector
	Normal      r3.Vector
	Color       color.RGBA
	Layer       int
	DoubleSided bool
}

// Point is a projected vertex in screen pixels.
type Point struct {
	X, Y float64
}

// Polygon is a projected, near-clipped face ready to fill.
type Polygon struct {
	Points []Point
	Color  color.RGBA
	Layer  int
	Depth  float64 // Mean view-space depth, for ordering
}

// Project culls single-sided back faces, clips quads against the near
// plane, projects them onto a w×h screen and returns them in draw order.
// Double-sided quads seen from behind move to LayerOutside.
func Project(v *View, quads []Quad, w, h float64) []Polygon {
	out := make([]Polygon, 0, len(quads))
	for _, q := range quads {
		layer := q.Layer
		if v.Position().Sub(q.Corners[0]).Dot(q.Normal) <= 0 {
			if !q.DoubleSided {
				continue
			}
			layer = LayerOutside
		}
		vs := make([]r3.Vector, 0, 4)
		for _, c := range q.Corners {
			vs = append(vs, v.ToView(c))
		}
		vs = clipNear(vs, NearPlane)
		if len(vs) < 3 {
			continue
		}

		poly := Polygon{Points: make([]Point, len(vs)), Color: q.Color, Layer: layer}
		for i, p := range vs {
			x, y := v.Project(p, w, h)
			poly.Points[i] = Point{X: x, Y: y}
			poly.Depth += p.Z
		}
		poly.Depth /= float64(len(vs))
		out = append(out, poly)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Layer != out[j].Layer {
			return out[i].Layer < out[j].Layer
		}
		return out[i].Depth > out[j].Depth
	})
	return out
}

// clipNear keeps the part of a convex polygon with z >= near.
func clipNear(in []r3.Vector, near float64) []r3.Vector {
	if len(in) == 0 {
		return in
	}
	out := make([]r3.Vector, 0, len(in)+2)
	prev := in[len(in)-1]
	prevIn := prev.Z >= near
	for _, cur := range in {
		curIn := cur.Z >= near
		if curIn != prevIn {
			t := (near - prev.Z) / (cur.Z - prev.Z)
			out = append(out, prev.Add(cur.Sub(prev).Mul(t)))
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// cubeQuads returns the six faces of an axis-aligned cube.
func cubeQuads(center, size r3.Vector, c color.RGBA) []Quad {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	corner := func(sx, sy, sz float64) r3.Vector {
		return r3.Vector{X: center.X + sx*hx, Y: center.Y + sy*hy, Z: center.Z + sz*hz}
	}
	face := func(n r3.Vector, a, b, cc, d r3.Vector) Quad {
		return Quad{Corners: [4]r3.Vector{a, b, cc, d}, Normal: n, Color: c, Layer: LayerFigure}
	}
	return []Quad{
		face(r3.Vector{Z: -1}, corner(-1, -1, -1), corner(1, -1, -1), corner(1, 1, -1), corner(-1, 1, -1)),
		face(r3.Vector{Z: 1}, corner(-1, -1, 1), corner(-1, 1, 1), corner(1, 1, 1), corner(1, -1, 1)),
		face(r3.Vector{X: -1}, corner(-1, -1, -1), corner(-1, 1, -1), corner(-1, 1, 1), corner(-1, -1, 1)),
		face(r3.Vector{X: 1}, corner(1, -1, -1), corner(1, -1, 1), corner(1, 1, 1), corner(1, 1, -1)),
		face(r3.Vector{Y: 1}, corner(-1, 1, -1), corner(1, 1, -1), corner(1, 1, 1), corner(-1, 1, 1)),
		face(r3.Vector{Y: -1}, corner(-1, -1, -1), corner(-1, -1, 1), corner(1, -1, 1), corner(1, -1, -1)),
	}
}

// wallQuad returns the named box wall with its normal into the box, or
// false for an unknown name. Walls are double-sided so they stay visible
// once the camera moves past them.
func wallQuad(name string, scale, dist float64, c color.RGBA) (Quad, bool) {
	h := scale / 2
	var q Quad
	switch name {
	case WallBack:
		q.Corners = [4]r3.Vector{{X: -h, Y: -h, Z: dist}, {X: h, Y: -h, Z: dist}, {X: h, Y: h, Z: dist}, {X: -h, Y: h, Z: dist}}
		q.Normal = r3.Vector{Z: -1}
	case WallLeft:
		q.Corners = [4]r3.Vector{{X: -dist, Y: -h, Z: -h}, {X: -dist, Y: -h, Z: h}, {X: -dist, Y: h, Z: h}, {X: -dist, Y: h, Z: -h}}
		q.Normal = r3.Vector{X: 1}
	case WallRight:
		q.Corners = [4]r3.Vector{{X: dist, Y: -h, Z: -h}, {X: dist, Y: h, Z: -h}, {X: dist, Y: h, Z: h}, {X: dist, Y: -h, Z: h}}
		q.Normal = r3.Vector{X: -1}
	case WallCeiling:
		q.Corners = [4]r3.Vector{{X: -h, Y: dist, Z: -h}, {X: -h, Y: dist, Z: h}, {X: h, Y: dist, Z: h}, {X: h, Y: dist, Z: -h}}
		q.Normal = r3.Vector{Y: -1}
	case WallFloor:
		q.Corners = [4]r3.Vector{{X: -h, Y: -dist, Z: -h}, {X: h, Y: -dist, Z: -h}, {X: h, Y: -dist, Z: h}, {X: -h, Y: -dist, Z: h}}
		q.Normal = r3.Vector{Y: 1}
	default:
		return Quad{}, false
	}
	q.Color = c
	q.Layer = LayerBox
	q.DoubleSided = true
	return q, true
}
