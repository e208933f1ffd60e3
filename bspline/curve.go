// Package bspline implements planar clamped non-rational B-spline curves.
//
// It is the reference implementation of the tesselate.Evaluator capability:
// a precision curve backing for tesselate.NurbsCurve when no external
// evaluator is in play.
package bspline

import (
	"errors"

	"github.com/ocastrup/tesselate"
	"github.com/ungerik/go3d/float64/vec2"
)

// Curve is a planar B-spline curve defined by a degree, 2D control points
// and a clamped knot vector. It is immutable after construction.
type Curve struct {
	degree int
	ctrl   []vec2.T
	knots  []float64
}

var _ tesselate.Evaluator = (*Curve)(nil)

func New(degree int, ctrl []vec2.T, knots []float64) (*Curve, error) {
	this := &Curve{
		degree: degree,
		ctrl:   append([]vec2.T(nil), ctrl...),
		knots:  append([]float64(nil), knots...),
	}
	if err := this.check(); err != nil {
		return nil, err
	}

	return this, nil
}

// NewUniform builds a curve over the clamped uniform knot vector, so the
// parameter domain is [0,1].
func NewUniform(degree int, ctrl []vec2.T) (*Curve, error) {
	return New(degree, ctrl, UniformKnots(degree, len(ctrl)))
}

func (this *Curve) check() error {
	if len(this.ctrl) == 0 {
		return errors.New("control points cannot be empty")
	}

	if this.degree < 1 {
		return errors.New("degree must be at least 1")
	}

	if len(this.knots) != len(this.ctrl)+this.degree+1 {
		return errors.New("len(ctrl) + degree + 1 must equal len(knots)")
	}

	if !validKnots(this.knots, this.degree) {
		return errors.New("knot vector must be nondecreasing and clamped with degree + 1 repeats at both ends")
	}

	return nil
}

func (this *Curve) Degree() int {
	return this.degree
}

func (this *Curve) ControlPoints() []vec2.T {
	return append([]vec2.T(nil), this.ctrl...)
}

func (this *Curve) Knots() []float64 {
	return append([]float64(nil), this.knots...)
}

// Domain returns the start and end of the valid parameter range.
func (this *Curve) Domain() (min, max float64) {
	return this.knots[0], this.knots[len(this.knots)-1]
}

// Compute a point on the curve
// (corresponds to algorithm 3.1 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + parameter on the curve at which the point is to be evaluated
//
// **returns**
// + a point in UV space
//
func (this *Curve) EvaluateSingle(u float64) vec2.T {
	spanIndex := span(this.knots, this.degree, u)
	basis := basisRow(spanIndex, u, this.degree, this.knots)

	var pt vec2.T
	for j := 0; j <= this.degree; j++ {
		scaled := this.ctrl[spanIndex-this.degree+j].Scaled(basis[j])
		pt.Add(&scaled)
	}

	return pt
}

// Determine the derivatives of the curve at a given parameter
// (corresponds to algorithm 3.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + parameter on the curve at which the point is to be evaluated
// + number of derivatives to evaluate
//
// **returns**
// + the curve point followed by the requested derivatives; derivatives of
// order beyond the degree are zero
//
func (this *Curve) Derivatives(u float64, order int) []vec2.T {
	du := order
	if du > this.degree {
		du = this.degree
	}

	spanIndex := span(this.knots, this.degree, u)
	ders := derivBasisRows(spanIndex, u, this.degree, du, this.knots)

	ck := make([]vec2.T, order+1)
	for k := 0; k <= du; k++ {
		for j := 0; j <= this.degree; j++ {
			scaled := this.ctrl[spanIndex-this.degree+j].Scaled(ders[k][j])
			ck[k].Add(&scaled)
		}
	}

	return ck
}
