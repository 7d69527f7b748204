// Package relief turns a 2-D image into a solid, 3-D-printable relief
// object. Pixels are reduced to a calibrated thickness-in-millimeters field,
// and that field is turned into a closed, manifold triangle mesh with a top
// relief surface, a flat base at z=0 and connecting side walls.
package relief

type Field struct {
	buf    []float32
	width  int
	height int

	minMaxComputed bool
	min            float32
	max            float32
}

// NewField allocates a zeroed w by h field.
func NewField(w, h int) *Field {
	return &Field{buf: make([]float32, w*h), width: w, height: h}
}

// FieldFromData wraps an existing row-major buffer. The buffer length must
// be w*h; the field takes ownership of it.
func FieldFromData(data []float32, w, h int) *Field {
	if len(data) != w*h {
		panic("relief: buffer length does not match dimensions")
	}
	return &Field{buf: data, width: w, height: h}
}

func (f *Field) Width() int  { return f.width }
func (f *Field) Height() int { return f.height }

// Data returns the underlying row-major buffer. Callers that mutate it must
// call Invalidate to drop the cached min/max.
func (f *Field) Data() []float32 { return f.buf }

// Invalidate drops the cached min/max after direct mutation through Data.
func (f *Field) Invalidate() { f.minMaxComputed = false }

// Row returns the y-th row as a slice into the underlying buffer.
func (f *Field) Row(y int) []float32 {
	return f.buf[y*f.width : (y+1)*f.width]
}

// Imagine width is three, height is two and pixel data is:
//
// a b c
// d e f
//
// This will be in the buf as: a b c d e f
// So for each 'y' we need to advance by 'width'
// x + y*width
func (f *Field) At(x, y int) float32 {
	return f.buf[x+y*f.width]
}

func (f *Field) Set(x, y int, v float32) {
	f.buf[x+y*f.width] = v
	f.minMaxComputed = false
}

func (f *Field) minMax() {
	f.min = f.buf[0]
	f.max = f.buf[0]
	for _, p := range f.buf {
		if p < f.min {
			f.min = p
		}

		if p > f.max {
			f.max = p
		}
	}
	f.minMaxComputed = true
}

func (f *Field) Min() float32 {
	if !f.minMaxComputed {
		f.minMax()
	}
	return f.min
}

func (f *Field) Max() float32 {
	if !f.minMaxComputed {
		f.minMax()
	}
	return f.max
}

// FlipX reverses the order of columns in place.
func (f *Field) FlipX() {
	for y := 0; y < f.height; y++ {
		row := f.Row(y)
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// FlipY reverses the order of rows in place.
func (f *Field) FlipY() {
	for i, j := 0, f.height-1; i < j; i, j = i+1, j-1 {
		a, b := f.Row(i), f.Row(j)
		for x := range a {
			a[x], b[x] = b[x], a[x]
		}
	}
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	buf := make([]float32, len(f.buf))
	copy(buf, f.buf)
	return &Field{buf: buf, width: f.width, height: f.height}
}

// PixelBuffer is an H×W buffer of sRGB-encoded pixels, three channels per
// sample, each in [0,1]. It is produced by a decoder and never mutated by
// the pipeline.
type PixelBuffer struct {
	pix    []float32 // RGB interleaved, 3*width*height
	width  int
	height int
}

func NewPixelBuffer(w, h int) *PixelBuffer {
	return &PixelBuffer{pix: make([]float32, 3*w*h), width: w, height: h}
}

func (p *PixelBuffer) Width() int  { return p.width }
func (p *PixelBuffer) Height() int { return p.height }

func (p *PixelBuffer) RGB(x, y int) (r, g, b float32) {
	i := 3 * (x + y*p.width)
	return p.pix[i], p.pix[i+1], p.pix[i+2]
}

func (p *PixelBuffer) SetRGB(x, y int, r, g, b float32) {
	i := 3 * (x + y*p.width)
	p.pix[i], p.pix[i+1], p.pix[i+2] = r, g, b
}
