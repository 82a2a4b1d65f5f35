// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"image"
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// Right returns the exclusive right edge coordinate.
func (r RectInt) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge coordinate.
func (r RectInt) Bottom() int {
	return r.Y + r.Height
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inside returns true if the rectangle lies entirely within a width x height image.
func (r RectInt) Inside(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= width && r.Bottom() <= height
}

// ToImageRect converts to a stdlib image.Rectangle.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}
