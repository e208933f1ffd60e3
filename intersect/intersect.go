// Package intersect finds crossings between curves in UV space and clips a
// curve against a closed trim loop.
//
// Crossings are located in two phases: both curves are sampled into
// polylines whose pairwise segment intersections provide seed estimates, and
// each seed is then refined by Newton iteration on the 2D residual
// P(t) - Q(s). Seeds that fail to converge are reported with their final
// residual rather than discarded; callers decide their significance.
//
// Every phase is a pure function of immutable curves. Seed refinements are
// independent of each other; only the final clustering needs the globally
// sorted sequence.
package intersect

import (
	"math"
	"sort"

	"github.com/ocastrup/tesselate"
	"github.com/ocastrup/tesselate/internal"
	"github.com/ungerik/go3d/float64/vec2"
)

// Intersection is a refined crossing between a UV curve at parameter T and a
// trim curve at parameter S. Converged reports whether the Newton iteration
// met its tolerance; Residual is the distance between the two curve points
// at (T, S).
type Intersection struct {
	T, S      float64
	Converged bool
	Residual  float64
}

// Options control the seed search and Newton refinement. Zero-valued fields
// take their defaults.
type Options struct {
	// Number of sample spans of the first (UV) curve used for seeding.
	SplineSamples int

	// Number of sample spans of the second (trim) curve used for seeding.
	TrimSamples int

	// Newton convergence tolerance on both the residual and the step size.
	Tol float64

	// Iteration cap per seed. Newton steps clamp t and s to [0,1]; a seed
	// stalled against the domain boundary exhausts its iterations and is
	// reported not converged, like any other non-convergent seed.
	MaxIterations int
}

var defaultOptions = Options{
	SplineSamples: 200,
	TrimSamples:   200,
	Tol:           1e-9,
	MaxIterations: 25,
}

func (this *Options) filled() Options {
	opts := defaultOptions
	if this == nil {
		return opts
	}

	if this.SplineSamples > 0 {
		opts.SplineSamples = this.SplineSamples
	}
	if this.TrimSamples > 0 {
		opts.TrimSamples = this.TrimSamples
	}
	if this.Tol > 0 {
		opts.Tol = this.Tol
	}
	if this.MaxIterations > 0 {
		opts.MaxIterations = this.MaxIterations
	}

	return opts
}

// Find the intersections of two UV-space curves
//
// Every pairwise crossing of the two sampled polylines seeds one Newton
// refinement. The refined intersections are sorted by T and near-duplicates
// closer than 1e-6 in T are folded together, keeping the entry with the
// lower residual; adjacent segment pairs describing the same true crossing
// would otherwise be reported twice.
//
// **params**
// + the first curve, reported through the T parameters
// + the second curve, reported through the S parameters
// + options, or nil for defaults
//
// **returns**
// + the refined intersections in increasing T order
//
func Curves(c0, c1 tesselate.Curve, options *Options) []Intersection {
	opts := options.filled()

	ts, pts0 := tesselate.SampleCurve(c0, opts.SplineSamples)
	ss, pts1 := tesselate.SampleCurve(c1, opts.TrimSamples)

	var found []Intersection
	for i := 0; i < len(pts0)-1; i++ {
		for j := 0; j < len(pts1)-1; j++ {
			tl, ul, ok := segmentIntersection(&pts0[i], &pts0[i+1], &pts1[j], &pts1[j+1])
			if !ok {
				continue
			}

			t0 := ts[i] + tl*(ts[i+1]-ts[i])
			s0 := ss[j] + ul*(ss[j+1]-ss[j])

			found = append(found, refine(c0, c1, t0, s0, &opts))
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].T < found[j].T })

	return cluster(found)
}

// Intersect two 2D line segments
//
// For segments P = p1 + t*r and Q = q1 + u*s the crossing solves
// t = (q1-p1) x s / (r x s) and u = (q1-p1) x r / (r x s); a vanishing
// r x s means the segments are parallel.
//
// **params**
// + endpoints of the first segment
// + endpoints of the second segment
//
// **returns**
// + the local parameters on both segments, and whether the crossing lies
// within both
//
func segmentIntersection(p1, p2, q1, q2 *vec2.T) (t, u float64, ok bool) {
	r := vec2.Sub(p2, p1)
	s := vec2.Sub(q2, q1)

	rxs := cross2(&r, &s)
	if math.Abs(rxs) < internal.Epsilon {
		return 0, 0, false
	}

	qp := vec2.Sub(q1, p1)
	t = cross2(&qp, &s) / rxs
	u = cross2(&qp, &r) / rxs

	return t, u, t >= 0 && t <= 1 && u >= 0 && u <= 1
}

func cross2(a, b *vec2.T) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// cluster folds the sorted intersections into a fresh deduplicated slice.
// Entries whose T values differ by less than 1e-6 merge, keeping the one
// with the lower residual.
func cluster(sorted []Intersection) []Intersection {
	if len(sorted) == 0 {
		return nil
	}

	out := make([]Intersection, 0, len(sorted))
	for _, x := range sorted {
		if len(out) > 0 && math.Abs(x.T-out[len(out)-1].T) < internal.Tolerance {
			if x.Residual < out[len(out)-1].Residual {
				out[len(out)-1] = x
			}
			continue
		}

		out = append(out, x)
	}

	return out
}
