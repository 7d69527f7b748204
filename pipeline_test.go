package relief

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func validOptions() Options {
	return Options{
		WidthMM:   100,
		BaseMM:    0.8,
		ReliefMM:  1.5,
		BlackCut:  0.02,
		WhiteCut:  0.98,
		ToneGamma: 1.15,
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		ok     bool
	}{
		{"valid", func(o *Options) {}, true},
		{"zero width", func(o *Options) { o.WidthMM = 0 }, false},
		{"negative base", func(o *Options) { o.BaseMM = -1 }, false},
		{"zero base", func(o *Options) { o.BaseMM = 0 }, false},
		{"negative relief", func(o *Options) { o.ReliefMM = -0.1 }, false},
		{"zero relief ok", func(o *Options) { o.ReliefMM = 0 }, true},
		{"zero gamma", func(o *Options) { o.ToneGamma = 0 }, false},
		{"cuts inverted", func(o *Options) { o.BlackCut, o.WhiteCut = 0.5, 0.2 }, false},
		{"cuts equal", func(o *Options) { o.BlackCut, o.WhiteCut = 0.5, 0.5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Validate() = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestBuildThicknessFieldEndToEnd(t *testing.T) {
	// A 4x3 buffer of mid-gray: every thickness lands between base and
	// base+relief, and the pixel scale follows from the physical width.
	p := NewPixelBuffer(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			p.SetRGB(x, y, 0.5, 0.5, 0.5)
		}
	}

	o := validOptions()
	o.WidthMM = 40
	field, pxMM, err := BuildThicknessField(p, o)
	if err != nil {
		t.Fatal(err)
	}
	if field.Width() != 4 || field.Height() != 3 {
		t.Fatalf("field is %dx%d, want 4x3", field.Width(), field.Height())
	}
	if pxMM != 10 {
		t.Errorf("pixel scale = %v, want 10", pxMM)
	}
	for _, v := range field.Data() {
		if v < float32(o.BaseMM) || v > float32(o.BaseMM+o.ReliefMM) {
			t.Fatalf("thickness %v outside [%v,%v]", v, o.BaseMM, o.BaseMM+o.ReliefMM)
		}
	}
}

func TestBuildThicknessFieldLinearMidpoint(t *testing.T) {
	// With full-range cuts and no shaping, a pixel whose linear luminance
	// is 0.5 maps to base + relief*0.5 either way round.
	srgb := float32(math.Pow(0.5, 1/2.4)*1.055 - 0.055)
	p := NewPixelBuffer(1, 1)
	p.SetRGB(0, 0, srgb, srgb, srgb)

	for _, invert := range []bool{false, true} {
		o := Options{
			WidthMM: 10, BaseMM: 0.8, ReliefMM: 1.5,
			BlackCut: 0, WhiteCut: 1, ToneGamma: 1, Invert: invert,
		}
		field, _, err := BuildThicknessField(p, o)
		if err != nil {
			t.Fatal(err)
		}
		if got := float64(field.At(0, 0)); math.Abs(got-1.55) > 1e-5 {
			t.Errorf("invert=%v thickness = %v, want 1.55", invert, got)
		}
	}
}

func TestBuildThicknessFieldRejectsBadOptions(t *testing.T) {
	p := NewPixelBuffer(2, 2)
	o := validOptions()
	o.BlackCut, o.WhiteCut = 0.5, 0.2
	if _, _, err := BuildThicknessField(p, o); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestBuildThicknessFieldOrientation(t *testing.T) {
	// A horizontal gradient flips under flip-x: compare the oriented run
	// against the plain run's mirrored field.
	p := NewPixelBuffer(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v := float32(x) / 2
			p.SetRGB(x, y, v, v, v)
		}
	}

	o := validOptions()
	plain, _, err := BuildThicknessField(p, o)
	if err != nil {
		t.Fatal(err)
	}

	o.FlipX = true
	flipped, _, err := BuildThicknessField(p, o)
	if err != nil {
		t.Fatal(err)
	}

	mirror := plain.Clone()
	mirror.FlipX()
	for i := range mirror.Data() {
		if flipped.Data()[i] != mirror.Data()[i] {
			t.Fatalf("flip-x field = %v, want %v", flipped.Data(), mirror.Data())
		}
	}
}
