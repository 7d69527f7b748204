package relief

import (
	"math"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/pkg/errors"
)

// toneGammaEps is the tolerance below which toneGamma is treated as exactly
// 1.0 and the gamma stage is skipped.
const toneGammaEps = 1e-12

// ToneMap rescales luminance into the normalized relief signal:
//
//	Yc = clip((Y - blackCut) / (whiteCut - blackCut), 0, 1)
//
// followed by clip(Yc^(1/toneGamma), 0, 1) unless toneGamma is 1.0.
// The transform is elementwise and monotonic. whiteCut must be greater than
// blackCut; otherwise ErrInvalidParameter is returned before any array work.
func ToneMap(y *Field, blackCut, whiteCut, toneGamma float64) (*Field, error) {
	if whiteCut <= blackCut {
		return nil, errors.Wrapf(ErrInvalidParameter,
			"white cut %g must be > black cut %g", whiteCut, blackCut)
	}

	black := float32(blackCut)
	scale := float32(1.0 / (whiteCut - blackCut))
	shape := math.Abs(toneGamma-1.0) >= toneGammaEps
	exp := float32(1.0 / toneGamma)

	out := NewField(y.Width(), y.Height())
	parallelRows(y.Height(), func(start, end int) {
		for row := start; row < end; row++ {
			toneMapRow(y.Row(row), out.Row(row), black, scale, shape, exp)
		}
	})
	return out, nil
}

func toneMapRow(src, dst []float32, black, scale float32, shape bool, exp float32) {
	blackV := hwy.Set(black)
	scaleV := hwy.Set(scale)
	zeroV := hwy.Zero[float32]()
	oneV := hwy.Set(float32(1))
	expV := hwy.Set(exp)

	apply := func(v hwy.Vec[float32]) hwy.Vec[float32] {
		v = hwy.Mul(hwy.Sub(v, blackV), scaleV)
		v = hwy.Min(hwy.Max(v, zeroV), oneV)
		if shape {
			v = hwy.Pow(v, expV)
			v = hwy.Min(hwy.Max(v, zeroV), oneV)
		}
		return v
	}

	hwy.ProcessWithTail[float32](len(src),
		func(offset int) {
			hwy.Store(apply(hwy.Load(src[offset:])), dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[float32](count)
			v := apply(hwy.MaskLoad(mask, src[offset:]))
			hwy.MaskStore(mask, v, dst[offset:])
		},
	)
}
