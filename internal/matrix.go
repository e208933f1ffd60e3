package internal

import "math"

// Solve the 2x2 linear system
//
//	| a  b |   | x |   | f |
//	| c  d | * | y | = | s |
//
// by Cramer's rule.
//
// **params**
// + the four matrix entries in row-major order
// + the two right-hand side entries
//
// **returns**
// + the solution components, and false if the matrix is singular
//
func Mat2Solve(a, b, c, d, f, s float64) (x, y float64, ok bool) {
	det := a*d - b*c
	if math.Abs(det) < Epsilon {
		return 0, 0, false
	}

	x = (f*d - b*s) / det
	y = (a*s - f*c) / det
	return x, y, true
}
