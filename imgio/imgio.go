// Package imgio decodes source images and resamples them into the pixel
// buffer consumed by the relief pipeline.
package imgio

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lithogo/relief"
)

// Decode reads and decodes an image file. PNG, JPEG, GIF, WebP and TIFF are
// recognized.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %s", path)
	}
	return img, nil
}

// Resize resamples the image to targetW pixels wide, preserving aspect ratio
// with the height rounded to the nearest pixel. Catmull-Rom interpolation
// keeps fine tonal gradients intact at print resolution.
func Resize(img image.Image, targetW int) image.Image {
	b := img.Bounds()
	if b.Dx() == targetW {
		return img
	}
	targetH := int(math.Round(float64(b.Dy()) * float64(targetW) / float64(b.Dx())))
	if targetH < 1 {
		targetH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToPixelBuffer converts an image into sRGB-encoded float channels in [0,1].
func ToPixelBuffer(img image.Image) *relief.PixelBuffer {
	b := img.Bounds()
	pb := relief.NewPixelBuffer(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			pb.SetRGB(x, y,
				float32(r)/0xffff,
				float32(g)/0xffff,
				float32(bl)/0xffff)
		}
	}
	return pb
}

// Load decodes path and resamples it to targetW pixels wide.
func Load(path string, targetW int) (*relief.PixelBuffer, error) {
	if targetW <= 0 {
		return nil, errors.Wrapf(relief.ErrInvalidParameter,
			"target width %dpx must be > 0", targetW)
	}
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return ToPixelBuffer(Resize(img, targetW)), nil
}
