package relief

import "math"

// Rec.709 / sRGB primaries.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// SRGBToLinear converts one sRGB-encoded channel value in [0,1] to linear
// light using the standard piecewise transfer function.
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow((float64(s)+0.055)/1.055, 2.4))
}

// ConvertLuminance maps an sRGB pixel buffer to relative luminance in linear
// light, one sample per pixel. The output has the same dimensions as the
// input and every value lies in [0,1].
func ConvertLuminance(p *PixelBuffer) *Field {
	out := NewField(p.Width(), p.Height())
	parallelRows(p.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			row := out.Row(y)
			for x := range row {
				r, g, b := p.RGB(x, y)
				row[x] = float32(lumR*float64(SRGBToLinear(r)) +
					lumG*float64(SRGBToLinear(g)) +
					lumB*float64(SRGBToLinear(b)))
			}
		}
	})
	return out
}
