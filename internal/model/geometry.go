package model

import "math"

// Epsilon is the tolerance in mm used for all coordinate comparisons.
const Epsilon = 0.001

// NearlyEqual reports whether a and b are within Epsilon of each other.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Dimensions is a width/height pair in mm.
type Dimensions struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// Rotate returns the dimensions turned by 90°.
func (d Dimensions) Rotate() Dimensions {
	return Dimensions{Width: d.Height, Height: d.Width}
}

// Area returns width × height in mm².
func (d Dimensions) Area() float64 {
	return d.Width * d.Height
}

// IsSquare reports whether rotating the dimensions changes nothing.
func (d Dimensions) IsSquare() bool {
	return NearlyEqual(d.Width, d.Height)
}

// FitsIn reports whether d fits inside o without rotation.
func (d Dimensions) FitsIn(o Dimensions) bool {
	return d.Width <= o.Width+Epsilon && d.Height <= o.Height+Epsilon
}

// Rect is an axis-aligned rectangle. X/Y is the lower-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.Height }

// Area returns the rectangle area in mm².
func (r Rect) Area() float64 { return r.Width * r.Height }

// Size returns the rectangle dimensions.
func (r Rect) Size() Dimensions { return Dimensions{Width: r.Width, Height: r.Height} }

// Empty reports whether the rectangle has no positive area.
func (r Rect) Empty() bool { return r.Width <= Epsilon || r.Height <= Epsilon }

// Overlaps returns true if the interiors of r and o intersect.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	dx, dy := r.Gap(o)
	return dx < -Epsilon && dy < -Epsilon
}

// Contains returns true if inner lies entirely within r.
func (r Rect) Contains(inner Rect) bool {
	return r.X <= inner.X+Epsilon && r.Y <= inner.Y+Epsilon &&
		r.Right() >= inner.Right()-Epsilon &&
		r.Top() >= inner.Top()-Epsilon
}

// Gap returns the horizontal and vertical clearance between r and o.
// A negative value on an axis means the projections overlap on that axis.
func (r Rect) Gap(o Rect) (dx, dy float64) {
	dx = math.Max(o.X-r.Right(), r.X-o.Right())
	dy = math.Max(o.Y-r.Top(), r.Y-o.Top())
	return dx, dy
}
