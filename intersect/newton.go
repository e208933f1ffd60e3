package intersect

import (
	"math"

	"github.com/ocastrup/tesselate"
	"github.com/ocastrup/tesselate/internal"
	"github.com/ungerik/go3d/float64/vec2"
)

// Refine an intersection seed by Newton iteration
//
// Solves the 2D system F(t,s) = P(t) - Q(s) = 0 with the Jacobian
// J = [dP/dt, -dQ/ds], clamping t and s to [0,1] after every step. The
// iteration converges when either the residual or the step length falls
// below the tolerance; a singular Jacobian aborts the seed. In both the
// singular and the exhausted case the final residual is reported and the
// seed is retained.
//
// **params**
// + the two curves
// + the seed parameters from the sampled segment crossing
// + filled options
//
// **returns**
// + the refined intersection
//
func refine(c0, c1 tesselate.Curve, t0, s0 float64, opts *Options) Intersection {
	t := clamp01(t0)
	s := clamp01(s0)

	for i := 0; i < opts.MaxIterations; i++ {
		p := c0.Point(t)
		q := c1.Point(s)
		f := vec2.Sub(&p, &q)

		res := f.Length()
		if res < opts.Tol {
			return Intersection{t, s, true, res}
		}

		dp := c0.Tangent(t)
		dq := c1.Tangent(s)

		dt, ds, ok := internal.Mat2Solve(
			dp[0], -dq[0],
			dp[1], -dq[1],
			-f[0], -f[1],
		)
		if !ok {
			return Intersection{t, s, false, res}
		}

		t = clamp01(t + dt)
		s = clamp01(s + ds)

		if math.Hypot(dt, ds) < opts.Tol {
			return Intersection{t, s, true, residual(c0, c1, t, s)}
		}
	}

	res := residual(c0, c1, t, s)
	return Intersection{t, s, res < opts.Tol, res}
}

func residual(c0, c1 tesselate.Curve, t, s float64) float64 {
	p := c0.Point(t)
	q := c1.Point(s)
	d := vec2.Sub(&p, &q)

	return d.Length()
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
