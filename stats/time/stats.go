package time

import "math"

// Stats describes the level and shape of a trace along time.
//
//nolint:revive
type Stats struct {
	Length         int
	Mean           float64
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	PeakPos        int
	Peak_dB        float64
	CrestFactor    float64 // Peak / RMS, 0 for a silent trace
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	Variance       float64
	Skewness       float64
	Kurtosis       float64 // excess
}

// ampTodB returns 20*log10(|v|), or -Inf for zero.
func ampTodB(v float64) float64 {
	a := math.Abs(v)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// welford accumulates the first four central moments in one pass.
type welford struct {
	n          int
	mean       float64
	m2, m3, m4 float64
}

func (w *welford) add(x float64) {
	prev := float64(w.n)
	w.n++
	n := float64(w.n)

	delta := x - w.mean
	dn := delta / n
	dn2 := dn * dn
	term := delta * dn * prev

	// m4 before m3 before m2: each uses the previous lower moment.
	w.m4 += term*dn2*(n*n-3*n+3) + 6*dn2*w.m2 - 4*dn*w.m3
	w.m3 += term*dn*(n-2) - 3*dn*w.m2
	w.m2 += term
	w.mean += dn
}

// shape returns population variance, skewness and excess kurtosis. A
// constant trace has zero skewness and kurtosis.
func (w *welford) shape() (variance, skewness, kurtosis float64) {
	if w.n == 0 {
		return 0, 0, 0
	}
	n := float64(w.n)
	variance = w.m2 / n
	if variance > 0 {
		skewness = (w.m3 / n) / (variance * math.Sqrt(variance))
		kurtosis = (w.m4/n)/(variance*variance) - 3
	}
	return variance, skewness, kurtosis
}

// Calculate computes every field of [Stats] in a single pass.
func Calculate(trace []float64) Stats {
	if len(trace) == 0 {
		return emptyStats()
	}

	var (
		acc     welford
		sumSq   float64
		peak    = math.Abs(trace[0])
		peakPos int
	)
	for i, x := range trace {
		acc.add(x)
		sumSq += x * x
		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}
	}

	rms := math.Sqrt(sumSq / float64(len(trace)))
	variance, skewness, kurtosis := acc.shape()

	s := Stats{
		Length:         len(trace),
		Mean:           acc.mean,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		PeakPos:        peakPos,
		Peak_dB:        ampTodB(peak),
		CrestFactor_dB: math.Inf(-1),
		Energy:         sumSq,
		Variance:       variance,
		Skewness:       skewness,
		Kurtosis:       kurtosis,
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = ampTodB(s.CrestFactor)
	}
	return s
}

// RMS returns the root-mean-square level of trace.
func RMS(trace []float64) float64 {
	if len(trace) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range trace {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(trace)))
}

// Mean returns the arithmetic mean of trace using Kahan summation.
func Mean(trace []float64) float64 {
	if len(trace) == 0 {
		return 0
	}
	var sum, c float64
	for _, x := range trace {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(trace))
}

// Peak returns the largest absolute value in trace.
func Peak(trace []float64) float64 {
	var peak float64
	for _, x := range trace {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// CrestFactor returns Peak/RMS, or 0 when the trace is silent.
func CrestFactor(trace []float64) float64 {
	r := RMS(trace)
	if r == 0 {
		return 0
	}
	return Peak(trace) / r
}

// Moments returns the mean, population variance, skewness and excess
// kurtosis of trace.
func Moments(trace []float64) (mean, variance, skewness, kurtosis float64) {
	var acc welford
	for _, x := range trace {
		acc.add(x)
	}
	variance, skewness, kurtosis = acc.shape()
	return acc.mean, variance, skewness, kurtosis
}
