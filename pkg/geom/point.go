package geom

import (
	"fmt"
	"math"
)

// Point is a point in projected pixel space. X grows east, Y grows south,
// matching the screen coordinate system of tiled web maps.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p Point) Subtract(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

func (p Point) MultiplyBy(num float64) Point {
	return Point{X: p.X * num, Y: p.Y * num}
}

func (p Point) DivideBy(num float64) Point {
	return Point{X: p.X / num, Y: p.Y / num}
}

func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

func (p Point) Floor() Point {
	return Point{X: math.Floor(p.X), Y: math.Floor(p.Y)}
}

func (p Point) Ceil() Point {
	return Point{X: math.Ceil(p.X), Y: math.Ceil(p.Y)}
}

// DistanceTo returns the cartesian distance to other in pixels.
func (p Point) DistanceTo(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) Equals(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%v, %v)", p.X, p.Y)
}
