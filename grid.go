package tesselate

import (
	"errors"
	"fmt"
	"math"

	"github.com/ocastrup/tesselate/internal"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// DefaultPatchSize is the side length, in control points, of a single patch.
const DefaultPatchSize = 4

// A Patch is one square sub-grid of control points, evaluable as a
// tensor-product Bezier surface of degree (patchSize-1, patchSize-1).
// Patches are owned by their PatchGrid and hold views into its control
// points, not copies.
type Patch struct {
	pi, pj int
	degree int
	ctrl   [][]vec3.T
}

// Coord returns the patch coordinate within the grid. The first coordinate
// follows the U axis, the second the V axis.
func (this *Patch) Coord() (pi, pj int) {
	return this.pi, this.pj
}

// ControlPoint returns the control point at index (i, j) of the patch's
// sub-grid, with i and j in [0, patchSize).
func (this *Patch) ControlPoint(i, j int) vec3.T {
	return this.ctrl[i][j]
}

// Compute a point on the patch
//
// The patch point is the double tensor contraction of the two Bernstein
// weight rows against the square control sub-grid.
//
// **params**
// + local parameter along the U axis, in [0,1]
// + local parameter along the V axis, in [0,1]
//
// **returns**
// + a point in 3D space
//
func (this *Patch) Point(u, v float64) vec3.T {
	bu := internal.BernsteinRow(this.degree, u)
	bv := internal.BernsteinRow(this.degree, v)

	var pt vec3.T
	for i, wu := range bu {
		row := this.ctrl[i]
		for j, wv := range bv {
			scaled := row[j].Scaled(wu * wv)
			pt.Add(&scaled)
		}
	}

	return pt
}

// A PatchGrid owns a rectangular grid of control points partitioned into
// overlapping Bezier patches. Neighboring patches share exactly one row or
// column of control points, giving positional continuity by construction.
type PatchGrid struct {
	ctrl       [][]vec3.T
	patchSize  int
	px, py     int
	patches    []*Patch
	idxByCoord map[[2]int]int
}

// NewPatchGrid partitions a grid of (nx, ny) control points into patches of
// patchSize control points per side. The first grid index follows the U axis.
//
// The grid partitions exactly only when (nx-1) and (ny-1) are integer
// multiples of patchSize-1; any other combination is a configuration error.
func NewPatchGrid(ctrl [][]vec3.T, patchSize int) (*PatchGrid, error) {
	if patchSize < 2 {
		return nil, errors.New("patch size must be at least 2")
	}

	nx := len(ctrl)
	if nx == 0 || len(ctrl[0]) == 0 {
		return nil, errors.New("control grid cannot be empty")
	}

	ny := len(ctrl[0])
	for _, row := range ctrl {
		if len(row) != ny {
			return nil, errors.New("control grid rows must all have the same length")
		}
	}

	step := patchSize - 1
	if (nx-1)%step != 0 || (ny-1)%step != 0 {
		return nil, fmt.Errorf(
			"%dx%d grid cannot be partitioned into patches of size %d",
			nx, ny, patchSize)
	}

	return newPatchGrid(ctrl, patchSize), nil
}

// newPatchGrid builds the patch partition; dimensions are already validated.
func newPatchGrid(ctrl [][]vec3.T, patchSize int) *PatchGrid {
	step := patchSize - 1
	nx, ny := len(ctrl), len(ctrl[0])

	this := &PatchGrid{
		ctrl:       ctrl,
		patchSize:  patchSize,
		px:         (nx - 1) / step,
		py:         (ny - 1) / step,
		idxByCoord: make(map[[2]int]int),
	}

	for pi := 0; pi < this.px; pi++ {
		for pj := 0; pj < this.py; pj++ {
			i, j := pi*step, pj*step

			sub := make([][]vec3.T, patchSize)
			for r := range sub {
				sub[r] = ctrl[i+r][j : j+patchSize : j+patchSize]
			}

			this.idxByCoord[[2]int{pi, pj}] = len(this.patches)
			this.patches = append(this.patches, &Patch{pi, pj, step, sub})
		}
	}

	return this
}

// Size returns the control grid dimensions.
func (this *PatchGrid) Size() (nx, ny int) {
	return len(this.ctrl), len(this.ctrl[0])
}

// Layout returns the number of patches along the U and V axes.
func (this *PatchGrid) Layout() (px, py int) {
	return this.px, this.py
}

// PatchSize returns the side length of a patch in control points.
func (this *PatchGrid) PatchSize() int {
	return this.patchSize
}

// PatchCount returns the total number of patches.
func (this *PatchGrid) PatchCount() int {
	return len(this.patches)
}

// Patch returns the patch with the given index.
func (this *PatchGrid) Patch(idx int) *Patch {
	return this.patches[idx]
}

// ControlPoint returns the control point at grid index (i, j).
func (this *PatchGrid) ControlPoint(i, j int) vec3.T {
	return this.ctrl[i][j]
}

// PatchFromCoord looks up the index of the patch with integer coordinate
// (pi, pj). The boolean result is false when the coordinate is outside the
// grid. The lookup table is a back-reference only; patches remain owned by
// the grid.
func (this *PatchGrid) PatchFromCoord(pi, pj int) (int, bool) {
	idx, ok := this.idxByCoord[[2]int{pi, pj}]
	return idx, ok
}

// Map a global UV coordinate onto the surface
//
// The integer part of each coordinate selects the patch, the fractional part
// is the local patch parameter. UV coordinates outside every patch map to a
// point whose components are all NaN, signalling the absence of surface
// coverage rather than an error; see OutOfDomain.
//
// **params**
// + a point in the global UV parameter space
//
// **returns**
// + a point in 3D space
//
func (this *PatchGrid) Point3D(uv vec2.T) vec3.T {
	pi := int(math.Floor(uv[0]))
	pj := int(math.Floor(uv[1]))

	idx, ok := this.PatchFromCoord(pi, pj)
	if !ok {
		return vec3.T{math.NaN(), math.NaN(), math.NaN()}
	}

	u := clamp(uv[0]-float64(pi), 0, 1)
	v := clamp(uv[1]-float64(pj), 0, 1)

	return this.patches[idx].Point(u, v)
}

// Transform returns a new grid whose control points are transformed by the
// given matrix. The receiver is left untouched.
func (this *PatchGrid) Transform(mat *mat4.T) *PatchGrid {
	ctrl := make([][]vec3.T, len(this.ctrl))
	for i, row := range this.ctrl {
		ctrl[i] = make([]vec3.T, len(row))
		for j := range row {
			ctrl[i][j] = mat.MulVec3(&row[j])
		}
	}

	return newPatchGrid(ctrl, this.patchSize)
}

// OutOfDomain reports whether a mapped point is the sentinel produced for UV
// coordinates without surface coverage.
func OutOfDomain(pt *vec3.T) bool {
	return math.IsNaN(pt[0]) || math.IsNaN(pt[1]) || math.IsNaN(pt[2])
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
