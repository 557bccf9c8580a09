package cwt

import (
	"errors"
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	dspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

var errFFTLength = errors.New("cwt: fft buffer length mismatch")

// FFT is a forward complex-to-complex transform of a fixed length using the
// exp(-i*2*pi*k*n/N) kernel. dst and src may alias. Implementations are not
// required to be safe for concurrent use.
type FFT interface {
	Len() int
	Forward(dst, src []complex128) error
}

// Backend creates an [FFT] of length n. The transform calls it once per
// worker, so every goroutine owns its plan.
type Backend func(n int) (FFT, error)

// AlgoFFT is the default backend, built on algo-fft plans.
func AlgoFFT(n int) (FFT, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("cwt: failed to create FFT plan: %w", err)
	}
	return &algoPlan{n: n, plan: plan}, nil
}

type algoPlan struct {
	n    int
	plan *algofft.Plan[complex128]
}

func (p *algoPlan) Len() int { return p.n }

func (p *algoPlan) Forward(dst, src []complex128) error {
	if err := checkFFTLength(p.n, dst, src); err != nil {
		return err
	}
	return p.plan.Forward(dst, src)
}

// GonumFFT is a backend built on gonum's dsp/fourier package. It accepts
// any positive length.
func GonumFFT(n int) (FFT, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cwt: failed to create FFT plan: length must be > 0: %d", n)
	}
	return &gonumPlan{n: n, fft: fourier.NewCmplxFFT(n)}, nil
}

type gonumPlan struct {
	n   int
	fft *fourier.CmplxFFT
}

func (p *gonumPlan) Len() int { return p.n }

func (p *gonumPlan) Forward(dst, src []complex128) error {
	if err := checkFFTLength(p.n, dst, src); err != nil {
		return err
	}
	p.fft.Coefficients(dst, src)
	return nil
}

// GoDSPFFT is a backend built on mjibson/go-dsp. It allocates a result
// slice per call and is mainly useful as a cross-check.
func GoDSPFFT(n int) (FFT, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cwt: failed to create FFT plan: length must be > 0: %d", n)
	}
	return goDSPPlan(n), nil
}

type goDSPPlan int

func (p goDSPPlan) Len() int { return int(p) }

func (p goDSPPlan) Forward(dst, src []complex128) error {
	if err := checkFFTLength(int(p), dst, src); err != nil {
		return err
	}
	copy(dst, dspfft.FFT(src))
	return nil
}

func checkFFTLength(n int, dst, src []complex128) error {
	if len(dst) != n || len(src) != n {
		return fmt.Errorf("%w: plan %d, dst %d, src %d", errFFTLength, n, len(dst), len(src))
	}
	return nil
}

// ParseBackend maps a backend name ("algo", "gonum", "godsp") to a
// [Backend]. Names are case-insensitive and surrounding whitespace is
// ignored. Unknown names yield an error wrapping [ErrUnknownBackend].
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "algo", "algofft":
		return AlgoFFT, nil
	case "gonum":
		return GonumFFT, nil
	case "godsp", "go-dsp":
		return GoDSPFFT, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
