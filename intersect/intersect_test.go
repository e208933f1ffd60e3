package intersect

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ocastrup/tesselate"
	mk "github.com/ocastrup/tesselate/make"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// flatUnitGrid builds a single-patch 4x4 control grid spanning [0,1]x[0,1]
// at z=0, mapping UV coordinates to (u, v, 0) exactly.
func flatUnitGrid(t *testing.T) *tesselate.PatchGrid {
	t.Helper()

	ctrl := make([][]vec3.T, 4)
	for i := range ctrl {
		ctrl[i] = make([]vec3.T, 4)
		for j := range ctrl[i] {
			ctrl[i][j] = vec3.T{float64(i) / 3, float64(j) / 3, 0}
		}
	}

	grid, err := tesselate.NewPatchGrid(ctrl, tesselate.DefaultPatchSize)
	if err != nil {
		t.Fatal(err)
	}

	return grid
}

func polyline(t *testing.T, pts ...vec2.T) *tesselate.Polyline {
	t.Helper()

	c, err := tesselate.NewPolyline(pts)
	if err != nil {
		t.Fatal(err)
	}

	return c
}

func TestSegmentIntersection(t *testing.T) {
	p1, p2 := vec2.T{0, 0}, vec2.T{1, 0}
	q1, q2 := vec2.T{0.5, -1}, vec2.T{0.5, 1}

	tt, u, ok := segmentIntersection(&p1, &p2, &q1, &q2)
	if !ok {
		t.Fatal("crossing segments reported as disjoint")
	}
	approx := cmpopts.EquateApprox(0, 1e-12)
	diff(t, 0.5, tt, approx)
	diff(t, 0.5, u, approx)

	// parallel segments
	q1, q2 = vec2.T{0, 1}, vec2.T{1, 1}
	if _, _, ok := segmentIntersection(&p1, &p2, &q1, &q2); ok {
		t.Error("parallel segments reported as crossing")
	}

	// the crossing point lies beyond the second segment
	q1, q2 = vec2.T{2, -1}, vec2.T{2, 1}
	if _, _, ok := segmentIntersection(&p1, &p2, &q1, &q2); ok {
		t.Error("disjoint segments reported as crossing")
	}
}

func TestCurvesSquareTrim(t *testing.T) {
	c := polyline(t, vec2.T{0.05, 0.5}, vec2.T{0.95, 0.5})
	trim := mk.Rect(vec2.T{0.25, 0.25}, vec2.T{0.75, 0.75})

	xs := Curves(c, trim, nil)
	if len(xs) != 2 {
		t.Fatalf("got %d intersections, want 2", len(xs))
	}

	for i, x := range xs {
		if !x.Converged {
			t.Errorf("intersection %d did not converge, residual %v", i, x.Residual)
		}
	}

	// the curve enters at U=0.25 and leaves at U=0.75
	approx := cmpopts.EquateApprox(0, 1e-6)
	diff(t, (0.25-0.05)/0.9, xs[0].T, approx)
	diff(t, (0.75-0.05)/0.9, xs[1].T, approx)
}

func TestCurvesRootValidity(t *testing.T) {
	c := polyline(t, vec2.T{0.1, 0.5}, vec2.T{0.9, 0.5})
	trim := mk.Circle(vec2.T{0.5, 0.5}, 0.2)

	opts := &Options{Tol: 1e-9}
	xs := Curves(c, trim, opts)
	if len(xs) != 2 {
		t.Fatalf("got %d intersections, want 2", len(xs))
	}

	for i, x := range xs {
		if !x.Converged {
			t.Errorf("intersection %d did not converge", i)
			continue
		}

		p := c.Point(x.T)
		q := trim.Point(x.S)
		d := vec2.Sub(&p, &q)
		if d.Length() >= opts.Tol*10 {
			t.Errorf("intersection %d residual %v exceeds 10x tolerance", i, d.Length())
		}
	}
}

func TestCurvesClusterUniqueness(t *testing.T) {
	c := polyline(t, vec2.T{0.1, 0.5}, vec2.T{0.9, 0.5})
	trim := mk.Circle(vec2.T{0.5, 0.5}, 0.2)

	xs := Curves(c, trim, nil)
	for i := 1; i < len(xs); i++ {
		if math.Abs(xs[i].T-xs[i-1].T) < 1e-6 {
			t.Errorf("intersections %d and %d closer than the cluster tolerance: %v, %v",
				i-1, i, xs[i-1].T, xs[i].T)
		}
		if xs[i].T < xs[i-1].T {
			t.Errorf("intersections out of order at %d", i)
		}
	}
}

func TestCurvesDisjoint(t *testing.T) {
	c := polyline(t, vec2.T{0.05, 0.9}, vec2.T{0.95, 0.9})
	trim := mk.Rect(vec2.T{0.25, 0.25}, vec2.T{0.75, 0.75})

	if xs := Curves(c, trim, nil); len(xs) != 0 {
		t.Errorf("got %d intersections, want 0", len(xs))
	}
}

func TestRefineSingularJacobian(t *testing.T) {
	// identical curves have parallel tangents everywhere, so the Newton
	// system is singular at any seed with a nonzero residual
	c0 := polyline(t, vec2.T{0, 0}, vec2.T{1, 1})
	c1 := polyline(t, vec2.T{0, 0}, vec2.T{1, 1})

	opts := defaultOptions
	x := refine(c0, c1, 0.3, 0.7, &opts)

	if x.Converged {
		t.Error("singular system reported as converged")
	}
	if x.Residual <= 0 {
		t.Errorf("residual = %v, want > 0", x.Residual)
	}
}

func TestRefineOnSeedAlreadyConverged(t *testing.T) {
	c0 := polyline(t, vec2.T{0, 0}, vec2.T{1, 0})
	c1 := polyline(t, vec2.T{0.5, -0.5}, vec2.T{0.5, 0.5})

	opts := defaultOptions
	x := refine(c0, c1, 0.5, 0.5, &opts)

	if !x.Converged {
		t.Fatalf("exact seed did not converge, residual %v", x.Residual)
	}
	diff(t, 0.5, x.T, cmpopts.EquateApprox(0, 1e-9))
	diff(t, 0.5, x.S, cmpopts.EquateApprox(0, 1e-9))
}

func TestClusterKeepsLowestResidual(t *testing.T) {
	sorted := []Intersection{
		{T: 0.2, S: 0.1, Converged: true, Residual: 1e-10},
		{T: 0.2 + 1e-8, S: 0.11, Converged: true, Residual: 1e-12},
		{T: 0.6, S: 0.5, Converged: true, Residual: 1e-11},
	}

	out := cluster(sorted)
	if len(out) != 2 {
		t.Fatalf("got %d clustered intersections, want 2", len(out))
	}
	if out[0].Residual != 1e-12 {
		t.Errorf("cluster kept residual %v, want the lower 1e-12", out[0].Residual)
	}
	if out[1].T != 0.6 {
		t.Errorf("second cluster T = %v, want 0.6", out[1].T)
	}
}

func TestClusterEmpty(t *testing.T) {
	if out := cluster(nil); out != nil {
		t.Errorf("cluster(nil) = %v, want nil", out)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var nilOpts *Options
	opts := nilOpts.filled()
	diff(t, defaultOptions, opts)

	partial := &Options{Tol: 1e-6}
	opts = partial.filled()
	if opts.Tol != 1e-6 {
		t.Errorf("Tol = %v, want the explicit 1e-6", opts.Tol)
	}
	if opts.SplineSamples != defaultOptions.SplineSamples {
		t.Errorf("SplineSamples = %v, want the default", opts.SplineSamples)
	}
}
