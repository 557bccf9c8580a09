package cwt

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-cwt/internal/testutil"
)

func TestMorletGenerateClosedForm(t *testing.T) {
	m := NewMorlet(1.0)
	m.Generate(8)

	// With size 8 and fb 1, x[w] = (w-4)*pi/2.
	norm := math.Sqrt(2*math.Pi) / math.Pow(math.Pi, 0.25)
	want := make([]float64, 8)
	for w := range want {
		x := float64(w-4) * math.Pi / 2
		want[w] = norm * math.Exp(-x*x/2)
	}

	if m.Width() != 8 {
		t.Fatalf("Width()=%d want 8", m.Width())
	}
	testutil.RequireRelativeNearlyEqual(t, m.Mother(), want, 1e-9)

	if math.Abs(m.Mother()[4]-norm) > 1e-12 {
		t.Fatalf("peak=%v want %v", m.Mother()[4], norm)
	}
}

func TestMorletGenerateBandwidthShiftsPeak(t *testing.T) {
	// Peak sits where 2*w*(2*pi/size)*fb == 2*pi*fb, i.e. w = size/2,
	// and narrows as fb grows.
	narrow := NewMorlet(2.0)
	narrow.Generate(64)
	wide := NewMorlet(0.5)
	wide.Generate(64)

	n, w := narrow.Mother(), wide.Mother()
	if n[32] != w[32] {
		t.Fatalf("peak differs: %v vs %v", n[32], w[32])
	}
	if !(n[28] < w[28]) {
		t.Fatalf("expected narrower envelope for larger fb: %v >= %v", n[28], w[28])
	}
}

func TestMorletGenerateSymmetric(t *testing.T) {
	m := NewMorlet(1.5)
	m.Generate(32)
	mother := m.Mother()

	for k := 1; k < 16; k++ {
		if d := math.Abs(mother[16-k] - mother[16+k]); d > 1e-12 {
			t.Fatalf("asymmetry at +-%d: %v vs %v", k, mother[16-k], mother[16+k])
		}
	}
}

func TestMorletGenerateOverwrites(t *testing.T) {
	m := NewMorlet(1.0)
	m.Generate(16)
	m.Generate(8)

	if got := len(m.Mother()); got != 8 {
		t.Fatalf("len=%d want 8", got)
	}

	fresh := NewMorlet(1.0)
	fresh.Generate(8)
	testutil.RequireSliceNearlyEqual(t, m.Mother(), fresh.Mother(), 0)
}

func TestMorletGenerateEmpty(t *testing.T) {
	m := NewMorlet(1.0)
	m.Generate(16)
	m.Generate(0)

	if m.Width() != 0 || len(m.Mother()) != 0 {
		t.Fatalf("expected empty envelope, got width=%d len=%d", m.Width(), len(m.Mother()))
	}

	m.Generate(-3)
	if len(m.Mother()) != 0 {
		t.Fatalf("negative size produced %d bins", len(m.Mother()))
	}
}

func TestMorletMotherReturnsCopy(t *testing.T) {
	m := NewMorlet(1.0)
	m.Generate(4)

	a := m.Mother()
	a[0] = 123
	if m.Mother()[0] == 123 {
		t.Fatal("Mother() exposed internal storage")
	}
}

func TestMorletOptions(t *testing.T) {
	m := NewMorlet(1.0)
	if m.Imaginary() || m.DoubleSided() {
		t.Fatal("flags must default to false")
	}

	m = NewMorlet(1.0, WithImaginary(), WithDoubleSided(), nil)
	if !m.Imaginary() || !m.DoubleSided() {
		t.Fatal("options not applied")
	}
	if m.Bandwidth() != 1.0 {
		t.Fatalf("Bandwidth()=%v want 1", m.Bandwidth())
	}
}

func TestMorletValidate(t *testing.T) {
	for _, bw := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := NewMorlet(bw).Validate(); !errors.Is(err, ErrInvalidBandwidth) {
			t.Fatalf("bandwidth %v: err=%v want ErrInvalidBandwidth", bw, err)
		}
	}

	if err := NewMorlet(0.1).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
