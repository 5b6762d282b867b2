// Package images - Geometry and canvas utilities for label generation.
package images

import "github.com/chewxy/math32"

// Point is a 2D coordinate or extent, depending on context.
type Point struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Add returns the componentwise sum of p and o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rect is an axis-aligned rectangle given by its upper-left corner and its
// width/height. The y axis points down, as in image coordinates.
type Rect struct {
	// UpperLeft is the corner with the smallest X and Y.
	UpperLeft Point `json:"upper_left" yaml:"upper_left"`
	// Dims holds the width (X) and height (Y).
	Dims Point `json:"dims" yaml:"dims"`
}

// NewRect builds a Rect from x, y, width, height.
func NewRect(x, y, width, height float32) Rect {
	return Rect{
		UpperLeft: Point{X: x, Y: y},
		Dims:      Point{X: width, Y: height},
	}
}

// LowerRight returns the corner opposite UpperLeft.
func (r Rect) LowerRight() Point {
	return r.UpperLeft.Add(r.Dims)
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: r.UpperLeft.X + r.Dims.X/2,
		Y: r.UpperLeft.Y + r.Dims.Y/2,
	}
}

// Area returns width * height.
func (r Rect) Area() float32 {
	return r.Dims.X * r.Dims.Y
}

// IntersectionArea calculates the area of overlap between two rectangles.
//
// The overlap's upper-left corner is the componentwise maximum of the two
// upper-left corners, and its lower-right corner is the componentwise minimum
// of the two lower-right corners. Each side of the overlap is clamped at zero,
// so rectangles that are disjoint or only share an edge give exactly 0 instead
// of a product of two negative sides.
//
// Arguments:
//   - a: The first rectangle.
//   - b: The second rectangle.
//
// Returns:
//   - float32: The intersection area, in the same units as the inputs.
//
// @example
//
//	a := NewRect(0, 0, 10, 10)
//	b := NewRect(5, 5, 10, 10)
//	area := IntersectionArea(a, b) // 25
func IntersectionArea(a, b Rect) float32 {
	aBR := a.LowerRight()
	bBR := b.LowerRight()

	ix1 := math32.Max(a.UpperLeft.X, b.UpperLeft.X)
	iy1 := math32.Max(a.UpperLeft.Y, b.UpperLeft.Y)
	ix2 := math32.Min(aBR.X, bBR.X)
	iy2 := math32.Min(aBR.Y, bBR.Y)

	interW := math32.Max(0, ix2-ix1)
	interH := math32.Max(0, iy2-iy1)

	return interW * interH
}
