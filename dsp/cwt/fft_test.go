package cwt

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-cwt/internal/testutil"
)

func randomComplex(seed int64, n int) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

func TestBackendsMatchNaiveDFT(t *testing.T) {
	backends := []struct {
		name    string
		backend Backend
		sizes   []int
	}{
		{"algo", AlgoFFT, []int{8, 64, 256}},
		{"gonum", GonumFFT, []int{8, 12, 64, 100}},
		{"godsp", GoDSPFFT, []int{8, 12, 64, 100}},
	}

	for _, b := range backends {
		for _, n := range b.sizes {
			t.Run(fmt.Sprintf("%s/%d", b.name, n), func(t *testing.T) {
				plan, err := b.backend(n)
				if err != nil {
					t.Fatalf("backend(%d): %v", n, err)
				}
				if plan.Len() != n {
					t.Fatalf("Len()=%d want %d", plan.Len(), n)
				}

				src := randomComplex(int64(n), n)
				want := testutil.NaiveDFT(src)

				dst := make([]complex128, n)
				if err := plan.Forward(dst, src); err != nil {
					t.Fatalf("Forward: %v", err)
				}
				testutil.RequireComplexNearlyEqual(t, dst, want, 1e-9)

				// In place.
				if err := plan.Forward(src, src); err != nil {
					t.Fatalf("Forward in place: %v", err)
				}
				testutil.RequireComplexNearlyEqual(t, src, want, 1e-9)
			})
		}
	}
}

func TestBackendsRejectLengthMismatch(t *testing.T) {
	for name, backend := range map[string]Backend{"algo": AlgoFFT, "gonum": GonumFFT, "godsp": GoDSPFFT} {
		plan, err := backend(16)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := plan.Forward(make([]complex128, 8), make([]complex128, 16)); !errors.Is(err, errFFTLength) {
			t.Fatalf("%s: err=%v want errFFTLength", name, err)
		}
	}
}

func TestBackendsRejectEmpty(t *testing.T) {
	if _, err := GonumFFT(0); err == nil {
		t.Fatal("GonumFFT(0): expected error")
	}
	if _, err := GoDSPFFT(-1); err == nil {
		t.Fatal("GoDSPFFT(-1): expected error")
	}
}

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"", "algo", "algofft", "gonum", "godsp", "go-dsp", " GONUM ", "AlgoFFT", "\tGo-DSP\n", "   "} {
		b, err := ParseBackend(name)
		if err != nil || b == nil {
			t.Fatalf("ParseBackend(%q) = %v", name, err)
		}
	}

	b, err := ParseBackend(" Gonum ")
	if err != nil {
		t.Fatalf("ParseBackend: %v", err)
	}
	plan, err := b(8)
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	if _, ok := plan.(*gonumPlan); !ok {
		t.Fatalf("ParseBackend(\" Gonum \") built %T, want *gonumPlan", plan)
	}

	for _, name := range []string{"fftw", "gonum2", "algo fft"} {
		_, err := ParseBackend(name)
		if !errors.Is(err, ErrUnknownBackend) {
			t.Fatalf("ParseBackend(%q) err=%v want ErrUnknownBackend", name, err)
		}
	}
}
