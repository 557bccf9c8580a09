package cwt

import (
	"fmt"
	"math"
)

// daughterMultiply multiplies spec with the daughter wavelet for scale,
// read from the mother envelope at a stride of scale/2 bins.
//
// size is the unpadded signal length. Only the first min(size/2, 2*size/scale)
// bins (or their mirror below size when doubleSided) are touched; all other
// bins keep the raw spectrum.
func daughterMultiply(spec []complex128, mother []float64, scale float64, size int, imaginary, doubleSided bool) error {
	if !isFinite(scale) || scale <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidScale, scale)
	}
	if size <= 0 || len(spec) < size || len(mother) < size {
		return fmt.Errorf("%w: size %d, spectrum %d, mother %d", ErrDimensionMismatch, size, len(spec), len(mother))
	}

	endpoint := size / 2
	if support := float64(size) * 2 / scale; support < float64(endpoint) {
		endpoint = int(support)
	}

	step := scale / 2
	maximum := float64(size - 1)
	last := size - 1

	for n := range endpoint {
		m := mother[int(math.Min(maximum, math.Floor(step*float64(n))))]

		if !doubleSided {
			spec[n] = complex(real(spec[n])*m, imag(spec[n])*m)
			continue
		}

		idx := last - n
		re := real(spec[idx]) * m
		if !imaginary {
			re = -re
		}
		spec[idx] = complex(re, imag(spec[idx])*m)
	}

	return nil
}
