package franke

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

// Franke evaluates the Franke function, a weighted sum of four exponentials
// commonly used to benchmark surface interpolation on [0,1]².
func Franke(x, y float64) float64 {
	term1 := 0.75 * math.Exp(-(math.Pow(9*x-2, 2))/4-(math.Pow(9*y-2, 2))/4)
	term2 := 0.75 * math.Exp(-(math.Pow(9*x+1, 2))/49-(9*y+1)/10)
	term3 := 0.5 * math.Exp(-(math.Pow(9*x-7, 2))/4-(math.Pow(9*y-3, 2))/4)
	term4 := -0.2 * math.Exp(-math.Pow(9*x-4, 2)-math.Pow(9*y-7, 2))
	return term1 + term2 + term3 + term4
}

// Options controls sample generation.
type Options struct {
	Nx, Ny int
	// Noise is the standard deviation of the additive Gaussian noise.
	Noise float64
	Seed  uint64
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if o.Nx <= 0 {
		return apperrors.ValidationError{Field: "nx", Message: fmt.Sprintf("must be positive, got %d", o.Nx)}
	}
	if o.Ny <= 0 {
		return apperrors.ValidationError{Field: "ny", Message: fmt.Sprintf("must be positive, got %d", o.Ny)}
	}
	if o.Noise < 0 || math.IsNaN(o.Noise) {
		return apperrors.ValidationError{Field: "noise", Message: fmt.Sprintf("must be non-negative, got %g", o.Noise)}
	}
	return nil
}

// Sample is a noisy draw of the Franke surface over an Ny×Nx coordinate mesh.
// Row i of the meshes corresponds to the i-th y coordinate, column j to the
// j-th x coordinate.
type Sample struct {
	opts    Options
	x, y, z *mat.Dense
}

// Generate draws Nx x-coordinates and Ny y-coordinates uniformly from [0,1),
// builds the mesh, and adds Noise·N(0,1) to the surface value at every node.
// The generator is seeded exactly once.
func Generate(opts Options) (*Sample, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	xs := make([]float64, opts.Nx)
	for j := range xs {
		xs[j] = uniform.Rand()
	}
	ys := make([]float64, opts.Ny)
	for i := range ys {
		ys[i] = uniform.Rand()
	}

	x := mat.NewDense(opts.Ny, opts.Nx, nil)
	y := mat.NewDense(opts.Ny, opts.Nx, nil)
	z := mat.NewDense(opts.Ny, opts.Nx, nil)
	for i := 0; i < opts.Ny; i++ {
		for j := 0; j < opts.Nx; j++ {
			x.Set(i, j, xs[j])
			y.Set(i, j, ys[i])
			z.Set(i, j, Franke(xs[j], ys[i])+opts.Noise*normal.Rand())
		}
	}
	return &Sample{opts: opts, x: x, y: y, z: z}, nil
}

// Options returns the options the sample was generated with.
func (s *Sample) Options() Options { return s.opts }

// Dims returns the mesh shape as (Ny, Nx).
func (s *Sample) Dims() (ny, nx int) { return s.opts.Ny, s.opts.Nx }

// Len is the number of sampled points.
func (s *Sample) Len() int { return s.opts.Nx * s.opts.Ny }

// X returns a copy of the x mesh.
func (s *Sample) X() *mat.Dense { return mat.DenseCopyOf(s.x) }

// Y returns a copy of the y mesh.
func (s *Sample) Y() *mat.Dense { return mat.DenseCopyOf(s.y) }

// Z returns a copy of the noisy target values.
func (s *Sample) Z() *mat.Dense { return mat.DenseCopyOf(s.z) }

// Points returns freshly allocated, row-major flattened copies of the
// meshes, which is the layout the fitting code consumes.
func (s *Sample) Points() (x, y, z []float64) {
	n := s.Len()
	x, y, z = make([]float64, n), make([]float64, n), make([]float64, n)
	copy(x, s.x.RawMatrix().Data)
	copy(y, s.y.RawMatrix().Data)
	copy(z, s.z.RawMatrix().Data)
	return x, y, z
}
