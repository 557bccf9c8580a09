package cwt

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the transform and its constructors.
var (
	ErrInvalidRange      = errors.New("cwt: invalid frequency range")
	ErrInvalidCount      = errors.New("cwt: invalid scale count")
	ErrDimensionMismatch = errors.New("cwt: input length does not match target length")
	ErrInvalidBandwidth  = errors.New("cwt: invalid wavelet bandwidth")
	ErrInvalidScale      = errors.New("cwt: invalid scale")
	ErrUnknownBackend    = errors.New("cwt: unknown FFT backend")
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateRange(sampleRate int, f0, f1 float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidRange, sampleRate)
	}
	if !isFinite(f0) || !isFinite(f1) {
		return fmt.Errorf("%w: frequencies must be finite: [%g, %g]", ErrInvalidRange, f0, f1)
	}
	if f0 <= 0 {
		return fmt.Errorf("%w: lower frequency must be > 0: %g", ErrInvalidRange, f0)
	}
	if f0 >= f1 {
		return fmt.Errorf("%w: lower frequency %g must be below upper frequency %g", ErrInvalidRange, f0, f1)
	}
	if nyquist := float64(sampleRate) / 2; f1 > nyquist {
		return fmt.Errorf("%w: upper frequency %g exceeds nyquist %g", ErrInvalidRange, f1, nyquist)
	}
	return nil
}

func validateCount(count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: must be > 0: %d", ErrInvalidCount, count)
	}
	return nil
}

func validateLogBase(base float64) error {
	if !isFinite(base) || base <= 0 || base == 1 {
		return fmt.Errorf("%w: log base must be finite, > 0 and != 1: %g", ErrInvalidRange, base)
	}
	return nil
}

func validateDimensions(targetLength, inputLength int) error {
	if targetLength <= 0 {
		return fmt.Errorf("%w: target length must be > 0: %d", ErrDimensionMismatch, targetLength)
	}
	if inputLength == 0 {
		return fmt.Errorf("%w: empty input", ErrDimensionMismatch)
	}
	if inputLength > targetLength {
		return fmt.Errorf("%w: %d samples exceed target length %d", ErrDimensionMismatch, inputLength, targetLength)
	}
	return nil
}
