// Package heightmap persists thickness fields: a normalized 16-bit PNG for
// visual inspection and a raw float dump that keeps exact millimeter values.
package heightmap

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/lithogo/relief"
)

// rawMagic marks a raw field dump: magic, uint32 width, uint32 height, then
// width*height little-endian float32 values row-major.
var rawMagic = [4]byte{'R', 'L', 'F', '1'}

// WritePNG16 saves the field as a 16-bit grayscale PNG, normalized to the
// field's own min/max range. The preview is lossy and visual-only; the raw
// dump written by WriteRaw stays the authoritative thickness source.
func WritePNG16(f *relief.Field, path string) error {
	tmin, tmax := f.Min(), f.Max()
	den := tmax - tmin
	if den < 1e-9 {
		den = 1e-9
	}

	img := image.NewGray16(image.Rect(0, 0, f.Width(), f.Height()))
	for y := 0; y < f.Height(); y++ {
		for x, v := range f.Row(y) {
			c := ((v - tmin) / den) * 65535.0
			img.SetGray16(x, y, color.Gray16{Y: uint16(c + 0.5)})
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create png16")
	}
	defer out.Close()
	return errors.Wrap(png.Encode(out, img), "encode png16")
}

// WriteRaw dumps the field losslessly for downstream reuse.
func WriteRaw(f *relief.Field, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create raw dump")
	}
	defer out.Close()

	if _, err := out.Write(rawMagic[:]); err != nil {
		return errors.Wrap(err, "write raw header")
	}
	hdr := [2]uint32{uint32(f.Width()), uint32(f.Height())}
	if err := binary.Write(out, binary.LittleEndian, hdr[:]); err != nil {
		return errors.Wrap(err, "write raw header")
	}
	if err := binary.Write(out, binary.LittleEndian, f.Data()); err != nil {
		return errors.Wrap(err, "write raw values")
	}
	return nil
}

// ReadRaw loads a field written by WriteRaw.
func ReadRaw(path string) (*relief.Field, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open raw dump")
	}
	defer in.Close()
	return readRaw(in)
}

func readRaw(r io.Reader) (*relief.Field, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errors.Wrap(err, "read raw header")
	}
	if magic != rawMagic {
		return nil, errors.Errorf("bad raw dump magic %q", magic)
	}

	var hdr [2]uint32
	if err := binary.Read(r, binary.LittleEndian, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "read raw header")
	}
	w, h := int(hdr[0]), int(hdr[1])
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("bad raw dump dimensions %dx%d", w, h)
	}

	buf := make([]float32, w*h)
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		return nil, errors.Wrap(err, "read raw values")
	}
	return relief.FieldFromData(buf, w, h), nil
}
