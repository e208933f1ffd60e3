package intersect

import (
	"sort"

	"github.com/ocastrup/tesselate"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// degenerateSpan is the smallest partition sub-interval carrying geometric
// information; shorter spans are skipped silently.
const degenerateSpan = 1e-12

// Segment is one run of the clipped curve lying inside the trim loop,
// resampled uniformly over [T0, T1]. Points3D entries may carry the all-NaN
// sentinel where the curve leaves the surface domain.
type Segment struct {
	T0, T1   float64
	T        []float64
	UV       []vec2.T
	Points3D []vec3.T
}

// ClipOptions control the trim classification and output resampling.
// Zero-valued fields take their defaults.
type ClipOptions struct {
	// Number of uniform parameter values sampled per retained segment.
	SamplesPerSegment int

	// Number of sample spans of the trim curve used for the containment
	// polygon.
	TrimSamples int
}

var defaultClipOptions = ClipOptions{
	SamplesPerSegment: 80,
	TrimSamples:       200,
}

func (this *ClipOptions) filled() ClipOptions {
	opts := defaultClipOptions
	if this == nil {
		return opts
	}

	if this.SamplesPerSegment > 1 {
		opts.SamplesPerSegment = this.SamplesPerSegment
	}
	if this.TrimSamples > 0 {
		opts.TrimSamples = this.TrimSamples
	}

	return opts
}

// Clip a curve against a closed trim loop
//
// Runs the intersection search and the trim partition in one call,
// returning both the inside segments and the refined intersections the
// partition was built from.
//
// **params**
// + the UV curve to clip
// + the closed trim curve
// + the patch grid used to map segment samples into 3D
// + intersection options, or nil for defaults
// + clip options, or nil for defaults
//
// **returns**
// + the inside segments in increasing T order
// + the intersections in increasing T order
//
func Clip(c, trim tesselate.Curve, grid *tesselate.PatchGrid, options *Options, clipOptions *ClipOptions) ([]Segment, []Intersection) {
	xs := Curves(c, trim, options)
	return ClipCurve(c, trim, grid, xs, clipOptions), xs
}

// Partition a curve at its trim crossings and keep the inside runs
//
// The intersection parameters split [0,1] into sub-intervals. Each
// sub-interval is classified by testing its midpoint against the sampled
// trim polygon; inside sub-intervals are resampled into Segments, outside
// ones produce no output.
//
// **params**
// + the UV curve to clip
// + the closed trim curve
// + the patch grid used to map segment samples into 3D
// + the refined intersections of curve and trim
// + clip options, or nil for defaults
//
// **returns**
// + the inside segments in increasing T order
//
func ClipCurve(c, trim tesselate.Curve, grid *tesselate.PatchGrid, xs []Intersection, options *ClipOptions) []Segment {
	opts := options.filled()

	_, poly := tesselate.SampleCurve(trim, opts.TrimSamples)
	bounds := partition(xs)

	var segments []Segment
	for k := 0; k < len(bounds)-1; k++ {
		a, b := bounds[k], bounds[k+1]
		if b-a < degenerateSpan {
			continue
		}

		mid := c.Point(0.5 * (a + b))
		if !pointInPolygon(&mid, poly) {
			continue
		}

		segments = append(segments, resample(c, grid, a, b, opts.SamplesPerSegment))
	}

	return segments
}

// partition builds the ordered boundary set {0, intersection parameters, 1},
// clamped to [0,1] and deduplicated.
func partition(xs []Intersection) []float64 {
	vals := make([]float64, 0, len(xs)+2)
	vals = append(vals, 0)
	for _, x := range xs {
		vals = append(vals, clamp01(x.T))
	}
	vals = append(vals, 1)

	sort.Float64s(vals)

	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return out
}

func resample(c tesselate.Curve, grid *tesselate.PatchGrid, a, b float64, n int) Segment {
	seg := Segment{
		T0:       a,
		T1:       b,
		T:        make([]float64, n),
		UV:       make([]vec2.T, n),
		Points3D: make([]vec3.T, n),
	}

	step := (b - a) / float64(n-1)
	for i := 0; i < n; i++ {
		t := a + step*float64(i)
		seg.T[i] = t
		seg.UV[i] = c.Point(t)
		seg.Points3D[i] = grid.Point3D(seg.UV[i])
	}

	return seg
}

// Classify a point against a polygon by ray casting
//
// A horizontal ray from the point crosses an edge when exactly one endpoint
// lies above the ray; the parity of the crossing count decides containment.
// The tiny denominator guard keeps near-horizontal edges from dividing by
// zero. The polygon is treated as implicitly closed.
//
// **params**
// + the point to classify
// + the polygon vertices
//
// **returns**
// + whether the point lies inside
//
func pointInPolygon(pt *vec2.T, poly []vec2.T) bool {
	x, y := pt[0], pt[1]
	inside := false

	n := len(poly)
	for i := 0; i < n; i++ {
		p0, p1 := poly[i], poly[(i+1)%n]

		if (p0[1] > y) == (p1[1] > y) {
			continue
		}

		xi := (p1[0]-p0[0])*(y-p0[1])/(p1[1]-p0[1]+1e-30) + p0[0]
		if x < xi {
			inside = !inside
		}
	}

	return inside
}
