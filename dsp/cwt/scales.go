package cwt

import (
	"fmt"
	"math"
	"strings"
)

// ScaleType selects how scales are distributed across the frequency range.
type ScaleType int

const (
	// ScaleLinear spaces scales linearly in scale space.
	ScaleLinear ScaleType = iota
	// ScaleLog spaces scales logarithmically (base 2 unless [WithLogBase]).
	ScaleLog
	// ScaleLinFreq spaces scales linearly in frequency.
	ScaleLinFreq
)

// String returns the lower-case name of the distribution.
func (t ScaleType) String() string {
	switch t {
	case ScaleLinear:
		return "linear"
	case ScaleLog:
		return "log"
	case ScaleLinFreq:
		return "linfreq"
	default:
		return fmt.Sprintf("ScaleType(%d)", int(t))
	}
}

// ParseScaleType parses the names returned by [ScaleType.String].
func ParseScaleType(s string) (ScaleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin":
		return ScaleLinear, nil
	case "log", "logarithmic":
		return ScaleLog, nil
	case "linfreq":
		return ScaleLinFreq, nil
	default:
		return 0, fmt.Errorf("%w: unknown scale type %q", ErrInvalidRange, s)
	}
}

const defaultLogBase = 2.0

type scaleConfig struct {
	base float64
}

// ScaleOption configures [NewScales].
type ScaleOption func(*scaleConfig)

// WithLogBase sets the logarithm base used by [ScaleLog].
func WithLogBase(base float64) ScaleOption {
	return func(c *scaleConfig) {
		c.base = base
	}
}

// Scales is an immutable, ordered set of analysis scales. Index i of the set
// maps to row i of the transform output.
type Scales struct {
	typ        ScaleType
	sampleRate int
	scales     []float64
}

// NewScales builds count scales covering [f0, f1] Hz for a signal sampled at
// sampleRate Hz.
//
// The upper frequency must not exceed the Nyquist frequency sampleRate/2;
// out-of-range requests fail with [ErrInvalidRange] instead of being
// clamped.
func NewScales(typ ScaleType, sampleRate int, f0, f1 float64, count int, opts ...ScaleOption) (*Scales, error) {
	cfg := scaleConfig{base: defaultLogBase}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateRange(sampleRate, f0, f1); err != nil {
		return nil, err
	}
	if err := validateCount(count); err != nil {
		return nil, err
	}

	s := &Scales{
		typ:        typ,
		sampleRate: sampleRate,
		scales:     make([]float64, count),
	}
	fs := float64(sampleRate)

	switch typ {
	case ScaleLinear:
		linearScales(s.scales, fs, f0, f1)
	case ScaleLinFreq:
		linFreqScales(s.scales, fs, f0, f1)
	case ScaleLog:
		if err := validateLogBase(cfg.base); err != nil {
			return nil, err
		}
		logScales(s.scales, cfg.base, fs, f0, f1)
	default:
		return nil, fmt.Errorf("%w: unknown scale type %d", ErrInvalidRange, int(typ))
	}

	return s, nil
}

// linearScales fills dst from the largest scale fs/f0 downwards, stepping by
// (f1-f0)/count in scale units.
func linearScales(dst []float64, fs, f0, f1 float64) {
	n := len(dst)
	step := (f1 - f0) / float64(n)
	for i := range n {
		dst[n-1-i] = fs/f0 + step*float64(i)
	}
}

func linFreqScales(dst []float64, fs, f0, f1 float64) {
	s0 := fs / f1
	s1 := fs / f0
	step := (s1 - s0) / float64(len(dst))
	for i := range dst {
		dst[i] = s0 + step*float64(i)
	}
}

// logScales spaces exponents evenly between log_base(fs/f1) and
// log_base(fs/f0), both endpoints included. A single scale is fs/f1.
func logScales(dst []float64, base, fs, f0, f1 float64) {
	logBase := math.Log(base)
	power0 := math.Log(fs/f1) / logBase
	power1 := math.Log(fs/f0) / logBase

	if len(dst) == 1 {
		dst[0] = math.Pow(base, power0)
		return
	}

	dpower := power1 - power0
	last := float64(len(dst) - 1)
	for i := range dst {
		dst[i] = math.Pow(base, power0+dpower*float64(i)/last)
	}
}

// Len returns the number of scales.
func (s *Scales) Len() int { return len(s.scales) }

// SampleRate returns the sample rate the scales were built for.
func (s *Scales) SampleRate() int { return s.sampleRate }

// Type returns the distribution law.
func (s *Scales) Type() ScaleType { return s.typ }

// Scales returns a copy of the scale values.
func (s *Scales) Scales() []float64 {
	return append([]float64(nil), s.scales...)
}

// Frequencies returns sampleRate/scale for every scale, in scale order.
func (s *Scales) Frequencies() []float64 {
	out := make([]float64, len(s.scales))
	s.fillFrequencies(out)
	return out
}

// FrequenciesN returns the frequencies of the first count scales.
func (s *Scales) FrequenciesN(count int) ([]float64, error) {
	if count < 0 || count > len(s.scales) {
		return nil, fmt.Errorf("%w: %d frequencies requested from %d scales", ErrInvalidCount, count, len(s.scales))
	}
	out := make([]float64, count)
	s.fillFrequencies(out)
	return out, nil
}

func (s *Scales) fillFrequencies(dst []float64) {
	fs := float64(s.sampleRate)
	for i := range dst {
		dst[i] = fs / s.scales[i]
	}
}
