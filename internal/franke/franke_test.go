package franke

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/mat"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

func TestGenerateShape(t *testing.T) {
	t.Parallel()
	s, err := Generate(Options{Nx: 16, Ny: 12, Noise: 0.1, Seed: 133})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	ny, nx := s.Dims()
	if ny != 12 || nx != 16 {
		t.Errorf("Dims() = (%d, %d), want (12, 16)", ny, nx)
	}
	if r, c := s.Z().Dims(); r != 12 || c != 16 {
		t.Errorf("Z dims = (%d, %d), want (12, 16)", r, c)
	}
	x, y, z := s.Points()
	if len(x) != 192 || len(y) != 192 || len(z) != 192 {
		t.Fatalf("Points lengths = %d %d %d, want 192", len(x), len(y), len(z))
	}
	// meshgrid layout: x varies along a row, y along a column.
	if x[0] != x[16] || y[0] != y[1] {
		t.Error("mesh layout does not match meshgrid(x, y)")
	}
}

func TestGenerateNoiselessMatchesSurface(t *testing.T) {
	t.Parallel()
	s, err := Generate(Options{Nx: 5, Ny: 7, Noise: 0, Seed: 1})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	x, y, z := s.Points()
	for i := range z {
		if z[i] != Franke(x[i], y[i]) {
			t.Fatalf("z[%d] = %g, want %g", i, z[i], Franke(x[i], y[i]))
		}
		if x[i] < 0 || x[i] >= 1 || y[i] < 0 || y[i] >= 1 {
			t.Fatalf("coordinate outside [0,1): (%g, %g)", x[i], y[i])
		}
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	t.Parallel()
	a, _ := Generate(Options{Nx: 8, Ny: 8, Noise: 0.1, Seed: 133})
	b, _ := Generate(Options{Nx: 8, Ny: 8, Noise: 0.1, Seed: 3463223})
	if mat.Equal(a.Z(), b.Z()) {
		t.Error("different seeds should produce different samples")
	}
}

func TestGenerateInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"zero nx", Options{Nx: 0, Ny: 4}, "nx"},
		{"negative ny", Options{Nx: 4, Ny: -1}, "ny"},
		{"negative noise", Options{Nx: 4, Ny: 4, Noise: -0.1}, "noise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Generate(tt.opts)
			var vErr apperrors.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestFrankeRange(t *testing.T) {
	t.Parallel()
	// The surface peaks a little above 1.2 and stays above -0.2 on the unit square.
	for i := 0; i <= 20; i++ {
		for j := 0; j <= 20; j++ {
			v := Franke(float64(i)/20, float64(j)/20)
			if math.IsNaN(v) || v < -0.2 || v > 1.25 {
				t.Fatalf("Franke(%g, %g) = %g out of range", float64(i)/20, float64(j)/20, v)
			}
		}
	}
}

// TestGenerateDeterministic_PropertyBased verifies that a fixed seed and grid
// size always reproduce the same sample.
func TestGenerateDeterministic_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("same options give the same sample", prop.ForAll(
		func(seed uint64, nx, ny int) bool {
			opts := Options{Nx: nx, Ny: ny, Noise: 0.1, Seed: seed}
			a, err := Generate(opts)
			if err != nil {
				return false
			}
			b, err := Generate(opts)
			if err != nil {
				return false
			}
			return mat.Equal(a.X(), b.X()) && mat.Equal(a.Y(), b.Y()) && mat.Equal(a.Z(), b.Z())
		},
		gen.UInt64(),
		gen.IntRange(1, 24),
		gen.IntRange(1, 24),
	))

	properties.TestingRun(t)
}

func TestSampleAccessorsReturnCopies(t *testing.T) {
	t.Parallel()
	s, err := Generate(Options{Nx: 4, Ny: 3, Noise: 0.1, Seed: 133})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	want := mat.DenseCopyOf(s.Z())
	_, _, zBefore := s.Points()

	s.X().Set(0, 0, 42)
	s.Y().Set(0, 0, 42)
	s.Z().Set(0, 0, 42)

	if !mat.Equal(s.Z(), want) {
		t.Error("mutating Z() changed the sample")
	}
	if s.X().At(0, 0) == 42 || s.Y().At(0, 0) == 42 {
		t.Error("mutating X() or Y() changed the sample")
	}
	if _, _, z := s.Points(); z[0] != zBefore[0] {
		t.Errorf("Points()[0] = %v, want %v", z[0], zBefore[0])
	}
}
