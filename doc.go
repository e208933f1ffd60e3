// Package tesselate maps and trims parametric curves on multi-patch Bezier
// surfaces.
//
// A surface is assembled from a rectangular grid of 3D control points,
// partitioned into overlapping square patches that are each evaluated as a
// tensor-product Bernstein (Bezier) surface. Curves live in the surface's
// global UV parameter space, where the integer part of a coordinate selects
// the patch and the fractional part is the local patch parameter. The
// intersect subpackage finds crossings between a UV curve and a closed trim
// loop and clips the curve to the interior of the loop.
//
// All types are immutable after construction. PatchGrid and Curve values may
// be shared freely between goroutines; every evaluation is a pure function of
// its inputs.
package tesselate
