// Package make provides constructors for common trim loops in UV space.
package make

import (
	"math"

	"github.com/ocastrup/tesselate"
	"github.com/ungerik/go3d/float64/vec2"
)

// Rect returns a closed axis-aligned rectangular trim loop between the two
// corners, as a polyline through the four corners and back to the first.
func Rect(min, max vec2.T) *tesselate.Polyline {
	loop, _ := tesselate.NewPolyline([]vec2.T{
		{min[0], min[1]},
		{max[0], min[1]},
		{max[0], max[1]},
		{min[0], max[1]},
		{min[0], min[1]},
	})

	return loop
}

type circle struct {
	center vec2.T
	radius float64
}

// Create a circular trim loop
//
// **params**
// + center of the circle in UV space
// + radius of the circle
//
// **returns**
// + a closed parametric curve traversing the circle once over [0,1]
//
func Circle(center vec2.T, radius float64) tesselate.Curve {
	return circle{center, radius}
}

func (this circle) Point(t float64) vec2.T {
	th := 2 * math.Pi * t
	return vec2.T{
		this.center[0] + this.radius*math.Cos(th),
		this.center[1] + this.radius*math.Sin(th),
	}
}

func (this circle) Tangent(t float64) vec2.T {
	th := 2 * math.Pi * t
	return vec2.T{
		-2 * math.Pi * this.radius * math.Sin(th),
		2 * math.Pi * this.radius * math.Cos(th),
	}
}

type roundedRect struct {
	center  vec2.T
	w, h, r float64
}

// Create a rounded-rectangle trim loop
//
// The parametrization traverses the four corner arcs over equal quarters of
// [0,1]; the straight edges between consecutive arcs appear as jumps in the
// parameter, so any polyline sampling of the loop closes them with straight
// segments.
//
// **params**
// + center of the rectangle in UV space
// + full width and height
// + corner radius
//
// **returns**
// + a closed parametric curve
//
func RoundedRect(center vec2.T, w, h, r float64) tesselate.Curve {
	return roundedRect{center, w, h, r}
}

func (this roundedRect) Point(t float64) vec2.T {
	cx, cy := this.center[0], this.center[1]
	dx, dy := this.w/2-this.r, this.h/2-this.r

	t = math.Mod(t, 1)
	if t < 0 {
		t += 1
	}

	var ox, oy, off float64
	switch {
	case t < 0.25:
		ox, oy, off = cx+dx, cy+dy, 0
	case t < 0.5:
		ox, oy, off = cx-dx, cy+dy, math.Pi/2
	case t < 0.75:
		ox, oy, off = cx-dx, cy-dy, math.Pi
	default:
		ox, oy, off = cx+dx, cy-dy, 3*math.Pi/2
	}

	th := math.Mod(t, 0.25) / 0.25 * (math.Pi / 2)

	return vec2.T{
		ox + this.r*math.Cos(th+off),
		oy + this.r*math.Sin(th+off),
	}
}

// Tangent approximates the derivative by a forward difference; the
// parametrization is not differentiable at the quarter boundaries.
func (this roundedRect) Tangent(t float64) vec2.T {
	const h = 1e-6

	p0 := this.Point(t)
	p1 := this.Point(math.Min(1, t+h))

	d := vec2.Sub(&p1, &p0)
	return d.Scaled(1 / h)
}
