package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/teslashibe/parallax-box/pkg/scene"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// maxMeshVertices keeps a batch within uint16 indices.
const maxMeshVertices = 1 << 16

// Mesh is a reusable triangle batch for filled polygons.
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Reset empties the mesh, keeping its buffers.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// AddPolygon fans a convex polygon into triangles. Polygons with fewer
// than three points, or that would overflow the batch, are skipped.
func (m *Mesh) AddPolygon(points []scene.Point, c color.RGBA) bool {
	if len(points) < 3 || len(m.Vertices)+len(points) > maxMeshVertices {
		return false
	}

	r := float32(c.R) / 0xff
	g := float32(c.G) / 0xff
	b := float32(c.B) / 0xff
	a := float32(c.A) / 0xff

	base := uint16(len(m.Vertices))
	for _, p := range points {
		m.Vertices = append(m.Vertices, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	for i := 1; i < len(points)-1; i++ {
		m.Indices = append(m.Indices, base, base+uint16(i), base+uint16(i+1))
	}
	return true
}

// Draw fills the mesh onto dst.
func (m *Mesh) Draw(dst *ebiten.Image) {
	if len(m.Indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(m.Vertices, m.Indices, whiteSubImage, op)
}
