package relief

// BuildThickness combines the relief signal with the base and relief
// parameters into a physical thickness field in millimeters:
//
//	thickness = baseMM + reliefMM * v
//
// where v is the signal value, or its complement when invert is set
// (bright=thin, for backlit transmission). For a signal in [0,1] every
// output value lies in [baseMM, baseMM+reliefMM].
func BuildThickness(signal *Field, baseMM, reliefMM float64, invert bool) *Field {
	base := float32(baseMM)
	rel := float32(reliefMM)

	out := NewField(signal.Width(), signal.Height())
	parallelRows(signal.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			src := signal.Row(y)
			dst := out.Row(y)
			if invert {
				for x, v := range src {
					dst[x] = base + rel*(1-v)
				}
			} else {
				for x, v := range src {
					dst[x] = base + rel*v
				}
			}
		}
	})
	return out
}

// ApplyOrientation mirrors the field in place. rot180 is exactly equivalent
// to flipX plus flipY and forces both on regardless of their passed values.
//
// Orientation is applied to the thickness field and nowhere else, so the
// preview image, the raw dump and the mesh always agree pixel-for-pixel and
// vertex-for-vertex on orientation.
func ApplyOrientation(f *Field, flipX, flipY, rot180 bool) {
	if rot180 {
		flipX = true
		flipY = true
	}

	if flipX {
		f.FlipX()
	}
	if flipY {
		f.FlipY()
	}
}
