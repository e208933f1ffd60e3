package bspline

import "math"

// UniformKnots returns the clamped uniform knot vector for a curve of the
// given degree and number of control points: degree+1 leading zeros, the
// interior knots equally spaced over (0,1), and degree+1 trailing ones.
func UniformKnots(degree, numCtrl int) []float64 {
	num := numCtrl + degree + 1
	knots := make([]float64, num)

	for i := 0; i <= degree; i++ {
		knots[num-1-i] = 1
	}

	interior := numCtrl - degree - 1
	for i := 1; i <= interior; i++ {
		knots[degree+i] = float64(i) / float64(interior+1)
	}

	return knots
}

// Find the span of the given parameter on the knot vector
// (corresponds to algorithm 2.1 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + array of nondecreasing knot values
// + integer degree of function
// + parameter
//
// **returns**
// + the index of the knot span
//
func span(knots []float64, degree int, u float64) int {
	n := len(knots) - degree - 2

	if u >= knots[n+1] {
		return n
	}

	if u < knots[degree] {
		return degree
	}

	low, high := degree, n+1
	mid := (low + high) / 2

	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}

		mid = (low + high) / 2
	}

	return mid
}

// validKnots reports whether the knot vector is nondecreasing and clamped:
// degree+1 equal values at each end.
func validKnots(knots []float64, degree int) bool {
	if len(knots) < (degree+1)*2 {
		return false
	}

	const eps = 1e-12

	rep := knots[0]
	for _, knot := range knots[:degree+1] {
		if math.Abs(knot-rep) > eps {
			return false
		}
	}

	rep = knots[len(knots)-1]
	for _, knot := range knots[len(knots)-degree-1:] {
		if math.Abs(knot-rep) > eps {
			return false
		}
	}

	rep = knots[0]
	for _, knot := range knots[1:] {
		if knot < rep-eps {
			return false
		}
		rep = knot
	}

	return true
}
