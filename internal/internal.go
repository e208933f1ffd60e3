package internal

const (
	// Epsilon is the smallest difference at which two parameter values are
	// considered distinct.
	Epsilon = 1e-12

	// Tolerance is the default geometric tolerance.
	Tolerance = 1e-6
)
