package relief

import "github.com/pkg/errors"

// Vertex is a point in millimeters.
type Vertex struct {
	X, Y, Z float32
}

// Triangle indexes three distinct vertices. Winding follows the right-hand
// rule: the implied normal points away from the solid's interior.
type Triangle [3]int

// Mesh is an indexed triangle mesh. For a solidified H×W field it holds
// 2*H*W vertices (top layer then bottom layer, each row-major) and
// 4*(H-1)*(W-1) + 4*(H-1) + 4*(W-1) triangles. No vertex deduplication is
// performed here; the exporter may weld.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// Solidify converts a thickness field plus a uniform mm-per-pixel scale into
// a closed solid: the top surface follows the field, the bottom is flat at
// z=0, and four walls stitch the perimeter. The result is watertight (every
// undirected edge is shared by exactly two triangles) with all normals
// facing outward.
//
// Fields smaller than 2x2 cannot form a triangle and return
// ErrInsufficientResolution before any work.
func Solidify(t *Field, pxMM float64) (*Mesh, error) {
	h, w := t.Height(), t.Width()
	if h < 2 || w < 2 {
		return nil, errors.Wrapf(ErrInsufficientResolution,
			"grid is %dx%d, need at least 2x2", h, w)
	}
	if pxMM <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "pixel scale %g must be > 0", pxMM)
	}

	s := float32(pxMM)
	offset := h * w // bottom layer index offset

	// Two vertex layers, row-major: top at the field height, bottom at z=0.
	vertices := make([]Vertex, 2*h*w)
	parallelRows(h, func(start, end int) {
		for i := start; i < end; i++ {
			row := t.Row(i)
			y := float32(i) * s
			for j, z := range row {
				x := float32(j) * s
				vertices[i*w+j] = Vertex{X: x, Y: y, Z: z}
				vertices[offset+i*w+j] = Vertex{X: x, Y: y, Z: 0}
			}
		}
	})

	capTris := 2 * (h - 1) * (w - 1)
	wallTris := 4*(h-1) + 4*(w-1)
	triangles := make([]Triangle, 2*capTris+wallTris)

	// Cap triangulation. Every cell splits along the same b-c diagonal for
	// reproducible output: corners a=(i,j) b=(i,j+1) c=(i+1,j) d=(i+1,j+1),
	// top cap wound so normals face +z, bottom cap the mirror image so
	// normals face -z. Cells are independent; rows write disjoint triangle
	// slots.
	parallelRows(h-1, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < w-1; j++ {
				a := i*w + j
				b := i*w + j + 1
				c := (i+1)*w + j
				d := (i+1)*w + j + 1

				cell := 2 * (i*(w-1) + j)
				triangles[cell] = Triangle{a, b, c}
				triangles[cell+1] = Triangle{b, d, c}
				triangles[capTris+cell] = Triangle{offset + a, offset + c, offset + b}
				triangles[capTris+cell+1] = Triangle{offset + b, offset + c, offset + d}
			}
		}
	})

	// Wall stitching around the perimeter, wound so each quad faces away
	// from the interior: row 0 faces -y, row h-1 faces +y, column 0 faces
	// -x, column w-1 faces +x.
	walls := triangles[2*capTris:]
	n := 0
	emit := func(tri Triangle) {
		walls[n] = tri
		n++
	}

	for j := 0; j < w-1; j++ { // row 0
		a, b := j, j+1
		emit(Triangle{b, a, offset + a})
		emit(Triangle{offset + a, offset + b, b})
	}
	for j := 0; j < w-1; j++ { // row h-1
		a, b := (h-1)*w+j, (h-1)*w+j+1
		emit(Triangle{a, b, offset + a})
		emit(Triangle{b, offset + b, offset + a})
	}
	for i := 0; i < h-1; i++ { // column 0
		a, b := i*w, (i+1)*w
		emit(Triangle{a, b, offset + a})
		emit(Triangle{b, offset + b, offset + a})
	}
	for i := 0; i < h-1; i++ { // column w-1
		a, b := i*w+w-1, (i+1)*w+w-1
		emit(Triangle{b, a, offset + a})
		emit(Triangle{offset + a, offset + b, b})
	}

	return &Mesh{Vertices: vertices, Triangles: triangles}, nil
}
