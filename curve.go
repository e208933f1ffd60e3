package tesselate

import (
	"errors"
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// A Curve is a parametric curve in the global UV parameter space of a patch
// grid. Callers typically evaluate over [0,1]; implementations do not clamp
// the parameter themselves.
type Curve interface {
	// Point evaluates the curve at the given parameter.
	Point(t float64) vec2.T

	// Tangent evaluates the first derivative of the curve at the given
	// parameter.
	Tangent(t float64) vec2.T
}

// An Evaluator is the capability contract of a precision curve evaluator,
// such as a NURBS or B-spline implementation. The bspline subpackage
// provides one; any external evaluator with single-point evaluation and
// first-derivative support can stand in for it.
type Evaluator interface {
	// EvaluateSingle computes the curve point at the given parameter.
	EvaluateSingle(t float64) vec2.T

	// Derivatives computes the curve derivatives at the given parameter, up
	// to and including the requested order. The point itself is element 0.
	Derivatives(t float64, order int) []vec2.T
}

// NurbsCurve adapts an Evaluator to the Curve interface.
type NurbsCurve struct {
	ev Evaluator
}

var _ Curve = (*NurbsCurve)(nil)

func NewNurbsCurve(ev Evaluator) *NurbsCurve {
	return &NurbsCurve{ev}
}

func (this *NurbsCurve) Point(t float64) vec2.T {
	return this.ev.EvaluateSingle(t)
}

func (this *NurbsCurve) Tangent(t float64) vec2.T {
	return this.ev.Derivatives(t, 1)[1]
}

// Polyline is the piecewise-linear fallback curve, interpolating its control
// points at parameter values uniformly spaced over [0,1]. A single control
// point yields a degenerate curve that evaluates to that point everywhere.
type Polyline struct {
	pts []vec2.T
}

var _ Curve = (*Polyline)(nil)

func NewPolyline(pts []vec2.T) (*Polyline, error) {
	if len(pts) == 0 {
		return nil, errors.New("polyline requires at least one control point")
	}

	return &Polyline{append([]vec2.T(nil), pts...)}, nil
}

func (this *Polyline) Point(t float64) vec2.T {
	n := len(this.pts)
	if n == 1 {
		return this.pts[0]
	}

	x := t * float64(n-1)
	if x <= 0 {
		return this.pts[0]
	}
	if x >= float64(n-1) {
		return this.pts[n-1]
	}

	i := int(math.Floor(x))
	f := x - float64(i)
	a, b := this.pts[i], this.pts[i+1]

	return vec2.T{a[0] + f*(b[0]-a[0]), a[1] + f*(b[1]-a[1])}
}

// Tangent approximates the derivative by a finite difference with step 1e-6,
// falling back to a one-sided difference at the domain boundaries.
func (this *Polyline) Tangent(t float64) vec2.T {
	const h = 1e-6

	t0 := math.Max(0, t-h)
	t1 := math.Min(1, t+h)

	p0 := this.Point(t0)
	p1 := this.Point(t1)

	d := vec2.Sub(&p1, &p0)
	return d.Scaled(1 / (t1 - t0))
}

// Map a curve point onto the surface
//
// **params**
// + the curve to evaluate
// + parameter on the curve
// + the patch grid to map through
//
// **returns**
// + a point in 3D space, or the all-NaN sentinel outside the surface domain
//
func Point3D(c Curve, t float64, grid *PatchGrid) vec3.T {
	return grid.Point3D(c.Point(t))
}

// Tangent3D approximates the 3D tangent of the mapped curve by a central
// finite difference over Point3D with step 1e-6.
func Tangent3D(c Curve, t float64, grid *PatchGrid) vec3.T {
	const h = 1e-6

	p0 := Point3D(c, math.Max(0, t-h), grid)
	p1 := Point3D(c, math.Min(1, t+h), grid)

	d := vec3.Sub(&p1, &p0)
	return d.Scaled(1 / (2 * h))
}

// Sample a curve at equally spaced parametric intervals
//
// **params**
// + the curve to sample
// + the number of spans; the curve is evaluated at n+1 parameters over [0,1]
//
// **returns**
// + the parameter values and the corresponding UV points
//
func SampleCurve(c Curve, n int) ([]float64, []vec2.T) {
	if n < 1 {
		n = 1
	}

	ts := make([]float64, n+1)
	pts := make([]vec2.T, n+1)

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		ts[i] = t
		pts[i] = c.Point(t)
	}

	return ts, pts
}
