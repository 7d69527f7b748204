package relief

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestToneMapRejectsBadCuts(t *testing.T) {
	tests := []struct {
		name         string
		black, white float64
	}{
		{"white below black", 0.5, 0.2},
		{"white equals black", 0.4, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToneMap(NewField(4, 4), tt.black, tt.white, 1.0)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestToneMapIdentityClip(t *testing.T) {
	// With full-range cuts and gamma 1.0 the transform is the identity clip.
	in := FieldFromData([]float32{0, 0.25, 0.5, 0.75, 1, 0.125}, 3, 2)
	out, err := ToneMap(in, 0, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Data() {
		if v != in.Data()[i] {
			t.Errorf("element %d = %v, want %v", i, v, in.Data()[i])
		}
	}
}

func TestToneMapMidpoint(t *testing.T) {
	in := FieldFromData([]float32{0.5}, 1, 1)
	out, err := ToneMap(in, 0, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if out.At(0, 0) != 0.5 {
		t.Errorf("tone-mapped 0.5 = %v, want exactly 0.5", out.At(0, 0))
	}
}

func TestToneMapClipping(t *testing.T) {
	in := FieldFromData([]float32{0.0, 0.1, 0.9, 1.0}, 4, 1)
	out, err := ToneMap(in, 0.1, 0.9, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0, 0, 1, 1}
	for i, v := range out.Data() {
		if math.Abs(float64(v-want[i])) > 1e-6 {
			t.Errorf("element %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestToneMapGamma(t *testing.T) {
	in := FieldFromData([]float32{0.25}, 1, 1)
	out, err := ToneMap(in, 0, 1, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pow(0.25, 0.5)
	if math.Abs(float64(out.At(0, 0))-want) > 1e-5 {
		t.Errorf("gamma 2.0 of 0.25 = %v, want %v", out.At(0, 0), want)
	}
}

func TestToneMapMonotonic(t *testing.T) {
	n := 64
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i) / float32(n-1)
	}
	for _, gamma := range []float64{0.5, 1.15, 2.2} {
		out, err := ToneMap(FieldFromData(data, n, 1), 0.02, 0.98, gamma)
		if err != nil {
			t.Fatal(err)
		}
		prev := float32(-1)
		for i, v := range out.Data() {
			if v < prev {
				t.Fatalf("gamma %v: output decreases at %d: %v < %v", gamma, i, v, prev)
			}
			if v < 0 || v > 1 {
				t.Fatalf("gamma %v: output %v outside [0,1]", gamma, v)
			}
			prev = v
		}
	}
}

// Gamma within epsilon of 1.0 must skip the shaping stage entirely.
func TestToneMapGammaEpsilon(t *testing.T) {
	in := FieldFromData([]float32{0.3}, 1, 1)
	out, err := ToneMap(in, 0, 1, 1.0+1e-13)
	if err != nil {
		t.Fatal(err)
	}
	if out.At(0, 0) != 0.3 {
		t.Errorf("near-1 gamma changed value: %v", out.At(0, 0))
	}
}
