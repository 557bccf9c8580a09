package cwt

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	timestats "github.com/cwbudde/algo-cwt/stats/time"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func splitRow(row []complex128) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	n := len(row)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	} else {
		buf.data = buf.data[:2*n]
	}
	re, im = buf.data[:n], buf.data[n:]
	for i, c := range row {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |rows[i][n]| for every transform coefficient.
func Magnitude(rows [][]complex128) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		if len(row) == 0 {
			continue
		}
		re, im, buf := splitRow(row)
		vecmath.Magnitude(out[i], re, im)
		scratchPool.Put(buf)
	}
	return out
}

// Power returns |rows[i][n]|^2 for every transform coefficient.
func Power(rows [][]complex128) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		if len(row) == 0 {
			continue
		}
		re, im, buf := splitRow(row)
		vecmath.Power(out[i], re, im)
		scratchPool.Put(buf)
	}
	return out
}

// ScaleSummary condenses one transform row.
type ScaleSummary struct {
	Scale         float64
	Frequency     float64
	PeakMagnitude float64
	PeakIndex     int
	MeanMagnitude float64
	RMSMagnitude  float64
	CrestFactor   float64 // PeakMagnitude / RMSMagnitude, 0 for a silent row
}

// Summarize returns per-scale magnitude statistics of a transform result.
// rows must be the output of a transform run with scales.
func Summarize(rows [][]complex128, scales *Scales) ([]ScaleSummary, error) {
	if scales == nil || len(rows) != scales.Len() {
		n := 0
		if scales != nil {
			n = scales.Len()
		}
		return nil, fmt.Errorf("%w: %d rows for %d scales", ErrDimensionMismatch, len(rows), n)
	}

	freqs := scales.Frequencies()
	mags := Magnitude(rows)
	out := make([]ScaleSummary, len(rows))
	for i, mag := range mags {
		out[i] = ScaleSummary{
			Scale:     scales.scales[i],
			Frequency: freqs[i],
			PeakIndex: -1,
		}
		if len(mag) == 0 {
			continue
		}
		st := timestats.Calculate(mag)
		out[i].PeakIndex = floats.MaxIdx(mag)
		out[i].PeakMagnitude = mag[out[i].PeakIndex]
		out[i].MeanMagnitude = st.Mean
		out[i].RMSMagnitude = st.RMS
		out[i].CrestFactor = st.CrestFactor
	}
	return out, nil
}
