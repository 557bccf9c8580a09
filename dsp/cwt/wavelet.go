package cwt

import (
	"fmt"
	"math"
)

// WaveletOption configures a [Morlet] wavelet.
type WaveletOption func(*Morlet)

// WithImaginary keeps the sign of the real part when the daughter wavelet is
// applied to the mirrored (double-sided) half of the spectrum.
func WithImaginary() WaveletOption {
	return func(m *Morlet) {
		m.imaginary = true
	}
}

// WithDoubleSided applies the daughter wavelet to the upper half of the
// spectrum, counting down from the last bin of the unpadded length.
func WithDoubleSided() WaveletOption {
	return func(m *Morlet) {
		m.doubleSided = true
	}
}

// Morlet is a Morlet mother wavelet sampled in the frequency domain.
//
// The envelope is only valid after [Morlet.Generate]; the transform
// regenerates it for every call at the padded size. A Morlet must not be
// shared between transforms that run concurrently.
type Morlet struct {
	width       int
	bandwidth   float64
	imaginary   bool
	doubleSided bool
	mother      []float64
}

// NewMorlet returns a Morlet wavelet with bandwidth parameter fb.
func NewMorlet(bandwidth float64, opts ...WaveletOption) *Morlet {
	m := &Morlet{bandwidth: bandwidth}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Validate reports whether the bandwidth is usable.
func (m *Morlet) Validate() error {
	if !isFinite(m.bandwidth) || m.bandwidth <= 0 {
		return fmt.Errorf("%w: must be finite and > 0: %g", ErrInvalidBandwidth, m.bandwidth)
	}
	return nil
}

// Generate recomputes the frequency-domain envelope for size bins,
// replacing any previously generated array. A size <= 0 yields an empty
// envelope.
func (m *Morlet) Generate(size int) {
	if size <= 0 {
		m.width = 0
		m.mother = m.mother[:0]
		return
	}

	m.width = size
	if cap(m.mother) >= size {
		m.mother = m.mother[:size]
	} else {
		m.mother = make([]float64, size)
	}

	step := 2 * math.Pi / float64(size)
	norm := math.Sqrt(2*math.Pi) * math.Pow(1/math.Pi, 0.25)
	offset := 2 * math.Pi * m.bandwidth

	for w := range m.mother {
		x := 2*(float64(w)*step)*m.bandwidth - offset
		m.mother[w] = norm * math.Exp(-(x*x)/2)
	}
}

// Bandwidth returns the bandwidth parameter fb.
func (m *Morlet) Bandwidth() float64 { return m.bandwidth }

// Width returns the size of the last generated envelope.
func (m *Morlet) Width() int { return m.width }

// Imaginary reports whether [WithImaginary] was set.
func (m *Morlet) Imaginary() bool { return m.imaginary }

// DoubleSided reports whether [WithDoubleSided] was set.
func (m *Morlet) DoubleSided() bool { return m.doubleSided }

// Mother returns a copy of the last generated envelope.
func (m *Morlet) Mother() []float64 {
	return append([]float64(nil), m.mother...)
}
