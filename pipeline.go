package relief

import "github.com/pkg/errors"

// Options parameterizes the image-to-thickness pipeline. Defaults belong to
// the caller, not here: every field is explicit.
type Options struct {
	// WidthMM is the physical width of the printed object.
	WidthMM float64

	// BaseMM is the minimum solid thickness guaranteeing structural
	// integrity regardless of pixel value.
	BaseMM float64

	// ReliefMM is the maximum additional thickness attributable to image
	// brightness, above the base.
	ReliefMM float64

	// BlackCut, WhiteCut and ToneGamma shape luminance into the relief
	// signal. WhiteCut must be greater than BlackCut; ToneGamma of 1.0
	// means no shaping.
	BlackCut  float64
	WhiteCut  float64
	ToneGamma float64

	// Invert maps bright pixels to thin material (backlit transmission).
	Invert bool

	// Mirror/rotate flags, applied to the thickness field only. Rot180 is
	// equivalent to FlipX plus FlipY and forces both on.
	FlipX  bool
	FlipY  bool
	Rot180 bool
}

// Validate checks every scalar against its domain. It is called by
// BuildThicknessField before any array work.
func (o *Options) Validate() error {
	switch {
	case o.WidthMM <= 0:
		return errors.Wrapf(ErrInvalidParameter, "width %gmm must be > 0", o.WidthMM)
	case o.BaseMM <= 0:
		return errors.Wrapf(ErrInvalidParameter, "base thickness %gmm must be > 0", o.BaseMM)
	case o.ReliefMM < 0:
		return errors.Wrapf(ErrInvalidParameter, "relief height %gmm must be >= 0", o.ReliefMM)
	case o.ToneGamma <= 0:
		return errors.Wrapf(ErrInvalidParameter, "tone gamma %g must be > 0", o.ToneGamma)
	case o.WhiteCut <= o.BlackCut:
		return errors.Wrapf(ErrInvalidParameter,
			"white cut %g must be > black cut %g", o.WhiteCut, o.BlackCut)
	}
	return nil
}

// BuildThicknessField runs the full conversion: sRGB pixels to linear
// luminance, tone mapping, thickness in mm, then orientation. It returns the
// field together with the uniform pixel scale in mm per pixel, derived from
// the requested physical width and the buffer's pixel width.
func BuildThicknessField(pixels *PixelBuffer, o Options) (*Field, float64, error) {
	if err := o.Validate(); err != nil {
		return nil, 0, err
	}

	y := ConvertLuminance(pixels)
	signal, err := ToneMap(y, o.BlackCut, o.WhiteCut, o.ToneGamma)
	if err != nil {
		return nil, 0, err
	}

	thickness := BuildThickness(signal, o.BaseMM, o.ReliefMM, o.Invert)
	ApplyOrientation(thickness, o.FlipX, o.FlipY, o.Rot180)

	pxMM := o.WidthMM / float64(pixels.Width())
	return thickness, pxMM, nil
}
