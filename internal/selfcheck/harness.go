// Package selfcheck verifies analytic derivatives from the stack against
// complex-step and central finite-difference approximations.
//
// A Case exposes a function f: ℂⁿ → ℂᵐ three ways: its value, the reverse
// product Jᵀ·seed and the mixed product Jᵀ·hval + seedᵀ·∂²f·p. Run draws
// random x, p, seed and hval and compares:
//   - seed·J·p from Deriv against the complex step Im(seed·f(x+ihp))/h
//   - HProd against Im(Deriv(seed, x+ihp))/h + Deriv(hval, x)
//
// and the same two quantities against gonum's central differences.
package selfcheck

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

// Case is one differentiable function under test.
type Case interface {
	// Name identifies the case in reports.
	Name() string

	// Sizes returns the flattened input and output lengths.
	Sizes() (in, out int)

	// Eval returns f(x).
	Eval(x []complex128) []complex128

	// Deriv returns Jᵀ·seed.
	Deriv(seed, x []complex128) []complex128

	// HProd returns Jᵀ·hval + seedᵀ·∂²f(x)·p.
	HProd(seed, hval, x, p []complex128) []complex128
}

// Options controls the random draws and tolerances.
type Options struct {
	Seed        int64   // Random seed for inputs and directions.
	ComplexStep float64 // Complex step size.
	FDStep      float64 // Central difference step size.
	ComplexTol  float64 // Relative tolerance against the complex step.
	FDTol       float64 // Relative tolerance against central differences.
}

// DefaultOptions returns the tolerances the core is held to.
func DefaultOptions() Options {
	return Options{
		Seed:        1234,
		ComplexStep: 1e-30,
		FDStep:      1e-6,
		ComplexTol:  1e-6,
		FDTol:       1e-4,
	}
}

// Result holds the relative errors of one case.
type Result struct {
	Name      string
	GradErr   float64 // Reverse product vs complex step.
	HessErr   float64 // Mixed product vs complex step.
	FDGradErr float64 // Reverse product vs central differences.
	FDHessErr float64 // Mixed product vs central differences.
	Passed    bool
}

// String formats the result as one report line.
func (r Result) String() string {
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}
	return fmt.Sprintf("%-28s grad %.2e (fd %.2e)  hprod %.2e (fd %.2e)  %s",
		r.Name, r.GradErr, r.FDGradErr, r.HessErr, r.FDHessErr, status)
}

// Run checks one case.
func Run(c Case, opts Options) Result {
	rng := rand.New(rand.NewSource(opts.Seed))
	n, m := c.Sizes()

	x := randReal(rng, n)
	p := randReal(rng, n)
	q := randReal(rng, n)
	seed := randReal(rng, m)
	hval := randReal(rng, m)

	xc, pc := toComplex(x), toComplex(p)
	seedc, hvalc := toComplex(seed), toComplex(hval)
	h := opts.ComplexStep

	// First order: seedᵀ·J·p.
	grad := realParts(c.Deriv(seedc, xc))
	ad := floats.Dot(grad, p)

	fcs := c.Eval(perturb(x, p, complex(0, h)))
	var cs float64
	for j, v := range fcs {
		cs += seed[j] * imag(v) / h
	}

	fdGrad := fd.Derivative(func(t float64) float64 {
		y := realParts(c.Eval(perturb(x, p, complex(t, 0))))
		return floats.Dot(seed, y)
	}, 0, &fd.Settings{Formula: fd.Central, Step: opts.FDStep})

	// Second order: Jᵀ·hval + seedᵀ·H·p.
	hprod := realParts(c.HProd(seedc, hvalc, xc, pc))
	jtHval := realParts(c.Deriv(hvalc, xc))

	hcs := c.Deriv(seedc, perturb(x, p, complex(0, h)))
	want := make([]float64, n)
	for i, v := range hcs {
		want[i] = imag(v)/h + jtHval[i]
	}

	fdHess := fd.Derivative(func(t float64) float64 {
		g := realParts(c.Deriv(seedc, perturb(x, p, complex(t, 0))))
		return floats.Dot(q, g)
	}, 0, &fd.Settings{Formula: fd.Central, Step: opts.FDStep})
	fdHess += floats.Dot(q, jtHval)

	r := Result{
		Name:      c.Name(),
		GradErr:   relErr(ad, cs),
		FDGradErr: relErr(ad, fdGrad),
		HessErr:   relVecErr(hprod, want),
		FDHessErr: relErr(floats.Dot(q, hprod), fdHess),
	}
	r.Passed = r.GradErr <= opts.ComplexTol && r.HessErr <= opts.ComplexTol &&
		r.FDGradErr <= opts.FDTol && r.FDHessErr <= opts.FDTol
	return r
}

// RunAll checks every case and reports whether all passed.
func RunAll(cases []Case, opts Options) ([]Result, bool) {
	results := make([]Result, 0, len(cases))
	passed := true
	for _, c := range cases {
		r := Run(c, opts)
		passed = passed && r.Passed
		results = append(results, r)
	}
	return results, passed
}

// WriteReport writes one line per result.
func WriteReport(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func randReal(rng *rand.Rand, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = rng.Float64()*2 - 1
	}
	return s
}

func toComplex(s []float64) []complex128 {
	c := make([]complex128, len(s))
	for i, v := range s {
		c[i] = complex(v, 0)
	}
	return c
}

func realParts(c []complex128) []float64 {
	s := make([]float64, len(c))
	for i, v := range c {
		s[i] = real(v)
	}
	return s
}

// perturb returns x + t·p.
func perturb(x, p []float64, t complex128) []complex128 {
	c := make([]complex128, len(x))
	for i := range x {
		c[i] = complex(x[i], 0) + t*complex(p[i], 0)
	}
	return c
}

// relErr is |a−b|/|b|, falling back to |a−b| when b is tiny.
func relErr(a, b float64) float64 {
	diff := math.Abs(a - b)
	if math.Abs(b) < 1e-12 {
		return diff
	}
	return diff / math.Abs(b)
}

func relVecErr(a, b []float64) float64 {
	diff := floats.Distance(a, b, 2)
	norm := floats.Norm(b, 2)
	if norm < 1e-12 {
		return diff
	}
	return diff / norm
}
