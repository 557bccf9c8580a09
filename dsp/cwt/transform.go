package cwt

import (
	"fmt"
	"math/bits"
	"runtime"
	"sync"
)

type config struct {
	workers int
	backend Backend
}

// Option configures a [Transform].
type Option func(*config)

// WithWorkers sets the number of goroutines used to process scales.
// Values <= 0 keep the default, which is derived from runtime.NumCPU and
// the number of scales.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBackend selects the FFT backend. A nil backend keeps [AlgoFFT].
func WithBackend(b Backend) Option {
	return func(c *config) {
		if b != nil {
			c.backend = b
		}
	}
}

// Transform computes continuous wavelet transforms with a Morlet wavelet.
//
// A Transform regenerates its wavelet on every call and therefore must not
// be used from multiple goroutines at once. Parallelism happens inside
// [Transform.CWT].
type Transform struct {
	wavelet   *Morlet
	normalize bool
	workers   int
	backend   Backend
}

// NewTransform returns a transform that owns wavelet. When normalize is set,
// every output row is divided by the padded FFT size.
func NewTransform(wavelet *Morlet, normalize bool, opts ...Option) *Transform {
	cfg := config{backend: AlgoFFT}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Transform{
		wavelet:   wavelet,
		normalize: normalize,
		workers:   cfg.workers,
		backend:   cfg.backend,
	}
}

// Wavelet returns the mother wavelet owned by the transform.
func (t *Transform) Wavelet() *Morlet { return t.wavelet }

// Normalize reports whether output rows are divided by the padded size.
func (t *Transform) Normalize() bool { return t.normalize }

// Workers returns the configured worker count, or 0 for the default.
func (t *Transform) Workers() int { return t.workers }

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for
// n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// CWT transforms the first targetLength samples of input (zero-padded to
// the next power of two) at every scale in scales.
//
// The result has one row per scale, in scale order, each of length
// NextPowerOfTwo(targetLength). len(input) may be shorter than
// targetLength; missing samples are treated as zero.
func (t *Transform) CWT(targetLength int, input []float64, scales *Scales) ([][]complex128, error) {
	if t.wavelet == nil {
		return nil, fmt.Errorf("%w: nil wavelet", ErrInvalidBandwidth)
	}
	if err := t.wavelet.Validate(); err != nil {
		return nil, err
	}
	if err := validateDimensions(targetLength, len(input)); err != nil {
		return nil, err
	}
	if scales == nil || scales.Len() == 0 {
		return nil, fmt.Errorf("%w: empty scale set", ErrInvalidCount)
	}

	size := NextPowerOfTwo(targetLength)

	plan, err := t.backend(size)
	if err != nil {
		return nil, err
	}

	spectrum := make([]complex128, size)
	for i, v := range input {
		spectrum[i] = complex(v, 0)
	}
	if err := plan.Forward(spectrum, spectrum); err != nil {
		return nil, fmt.Errorf("cwt: forward FFT failed: %w", err)
	}

	t.wavelet.Generate(size)

	for i := 1; i < size/2; i++ {
		spectrum[size-i] = spectrum[i]
	}

	out := make([][]complex128, scales.Len())
	for i := range out {
		out[i] = make([]complex128, size)
	}

	if err := t.dispatch(out, spectrum, scales.scales, targetLength, plan); err != nil {
		return nil, err
	}
	return out, nil
}

// dispatch fans scale indices out to a fixed pool of workers. spectrum and
// the wavelet envelope are read-only from here on; each worker writes only
// to the rows it receives. plan is handed to the first worker. Plans for the
// others are created before any row is computed; if one fails, no work is
// started and its error is returned.
func (t *Transform) dispatch(out [][]complex128, spectrum []complex128, scales []float64, targetLength int, plan FFT) error {
	plans := make([]FFT, t.workerCount(len(scales)))
	plans[0] = plan
	for w := 1; w < len(plans); w++ {
		p, err := t.backend(len(spectrum))
		if err != nil {
			return fmt.Errorf("cwt: worker %d plan: %w", w, err)
		}
		plans[w] = p
	}

	jobs := make(chan int, len(scales))
	for i := range scales {
		jobs <- i
	}
	close(jobs)

	rowErrs := make([]error, len(scales))

	var wg sync.WaitGroup
	for _, p := range plans {
		wg.Add(1)
		go func(p FFT) {
			defer wg.Done()
			for i := range jobs {
				rowErrs[i] = t.scaleRow(out[i], spectrum, scales[i], targetLength, p)
			}
		}(p)
	}
	wg.Wait()

	for _, err := range rowErrs {
		if err != nil {
			return err
		}
	}
	return nil
}

// scaleRow computes one output row from a private copy of the spectrum.
func (t *Transform) scaleRow(row, spectrum []complex128, scale float64, targetLength int, plan FFT) error {
	copy(row, spectrum)

	w := t.wavelet
	if err := daughterMultiply(row, w.mother, scale, targetLength, w.imaginary, w.doubleSided); err != nil {
		return err
	}

	// The reference transform runs the forward kernel a second time rather
	// than the inverse; output rows are time-reversed accordingly.
	if err := plan.Forward(row, row); err != nil {
		return fmt.Errorf("cwt: forward FFT failed: %w", err)
	}

	if t.normalize {
		inv := 1 / float64(len(row))
		for n, v := range row {
			row[n] = complex(real(v)*inv, imag(v)*inv)
		}
	}
	return nil
}

func (t *Transform) workerCount(numScales int) int {
	n := t.workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, numScales))
}
