// Package dem reads heightfields straight from GeoTIFF rasters, bypassing
// the colorimetric stages. Elevation values feed the mesher as thickness
// after a Zero adjustment establishes a positive floor.
package dem

import (
	"math"

	"github.com/airbusgeo/godal"
	"github.com/pkg/errors"

	"github.com/lithogo/relief"
)

// FromGeoTIFF loads a GeoTIFF file from path using gdal and reads a rectangle
// of pixels with upper left corner at (x, y), width w and height h into a
// field. Zero w or h means "to the edge of the raster".
func FromGeoTIFF(path string, x, y, w, h uint) (*relief.Field, error) {
	godal.RegisterAll()
	hDataset, err := godal.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open geotiff %s", path)
	}
	defer hDataset.Close()

	structure := hDataset.Structure()

	if uint(structure.SizeX) < x+w {
		return nil, errors.Errorf("selected window goes outside image bounds (image width=%d, window max x=%d)", structure.SizeX, x+w)
	}
	if uint(structure.SizeY) < y+h {
		return nil, errors.Errorf("selected window goes outside image bounds (image height=%d, window max y=%d)", structure.SizeY, y+h)
	}

	if w == 0 {
		w = uint(structure.SizeX) - x
	}
	if h == 0 {
		h = uint(structure.SizeY) - y
	}

	band := hDataset.Bands()[0]
	buf := make([]float32, w*h)
	if err := band.Read(int(x), int(y), buf, int(w), int(h)); err != nil {
		return nil, errors.Wrap(err, "read geotiff band")
	}

	// Set undefined to zero, for now
	for i := range buf {
		if buf[i] == -math.MaxFloat32 {
			buf[i] = 0
		}
	}

	return relief.FieldFromData(buf, int(w), int(h)), nil
}

// Zero translates the field down so that floor is the lowest value. The
// mesher requires strictly positive thickness, so floor should be > 0.
func Zero(f *relief.Field, floor float32) {
	buf := f.Data()
	if len(buf) == 0 {
		return
	}

	min := f.Min()
	for i := range buf {
		buf[i] = buf[i] - min + floor
	}
	f.Invalidate()
}

// Scale multiplies every height by s (vertical exaggeration).
func Scale(f *relief.Field, s float32) {
	buf := f.Data()
	for i := range buf {
		buf[i] = buf[i] * s
	}
	f.Invalidate()
}

// Diff subtracts b from a in place, for comparing two surveys of the same
// area. Dimensions must match.
func Diff(a, b *relief.Field) error {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return errors.Errorf("dimension mismatch: %dx%d vs %dx%d",
			a.Width(), a.Height(), b.Width(), b.Height())
	}
	ab, bb := a.Data(), b.Data()
	for i := range ab {
		ab[i] -= bb[i]
	}
	a.Invalidate()
	return nil
}
