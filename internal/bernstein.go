package internal

// Compute all Bernstein basis weights of the given degree at a parameter
//
// The weight for index i of degree n at t is C(n,i) * t^i * (1-t)^(n-i).
// Binomial coefficients are accumulated incrementally so the row requires no
// factorials and no shared cache, keeping evaluation safe for concurrent use.
//
// **params**
// + integer degree of the basis
// + float parameter
//
// **returns**
// + list of degree+1 basis weights
//
func BernsteinRow(degree int, t float64) []float64 {
	row := make([]float64, degree+1)

	// binomial coefficients and powers of t, left to right
	c, tp := 1.0, 1.0
	for i := 0; i <= degree; i++ {
		row[i] = c * tp
		tp *= t
		c = c * float64(degree-i) / float64(i+1)
	}

	// powers of (1-t), right to left
	s, sp := 1-t, 1.0
	for i := degree; i >= 0; i-- {
		row[i] *= sp
		sp *= s
	}

	return row
}
