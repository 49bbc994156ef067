package geom

// Bounds is an axis-aligned rectangle in projected pixel space, the
// counterpart of geo.LatLngBounds on the screen side of a projection.
// The zero value is empty; Extend defines and widens it.
type Bounds struct {
	min *Point
	max *Point
}

func NewBounds(a, b Point) *Bounds {
	bounds := &Bounds{}
	bounds.Extend(a)
	bounds.Extend(b)
	return bounds
}

func (b *Bounds) Extend(p Point) *Bounds {
	if b.min == nil && b.max == nil {
		b.min = &Point{X: p.X, Y: p.Y}
		b.max = &Point{X: p.X, Y: p.Y}
		return b
	}
	if p.X < b.min.X {
		b.min.X = p.X
	}
	if p.X > b.max.X {
		b.max.X = p.X
	}
	if p.Y < b.min.Y {
		b.min.Y = p.Y
	}
	if p.Y > b.max.Y {
		b.max.Y = p.Y
	}
	return b
}

func (b *Bounds) Min() Point {
	return *b.min
}

func (b *Bounds) Max() Point {
	return *b.max
}

func (b *Bounds) Center() Point {
	return Point{
		X: (b.min.X + b.max.X) / 2,
		Y: (b.min.Y + b.max.Y) / 2,
	}
}

// Size returns the width and height of the rectangle as a point.
func (b *Bounds) Size() Point {
	return b.max.Subtract(*b.min)
}

func (b *Bounds) Contains(p Point) bool {
	if !b.IsValid() {
		return false
	}
	return p.X >= b.min.X && p.X <= b.max.X &&
		p.Y >= b.min.Y && p.Y <= b.max.Y
}

func (b *Bounds) ContainsBounds(other *Bounds) bool {
	if other == nil || !other.IsValid() || !b.IsValid() {
		return false
	}
	return other.min.X >= b.min.X && other.max.X <= b.max.X &&
		other.min.Y >= b.min.Y && other.max.Y <= b.max.Y
}

// Intersects reports whether the rectangles share at least one point,
// touching edges included.
func (b *Bounds) Intersects(other *Bounds) bool {
	if other == nil || !other.IsValid() || !b.IsValid() {
		return false
	}
	xIntersects := other.max.X >= b.min.X && other.min.X <= b.max.X
	yIntersects := other.max.Y >= b.min.Y && other.min.Y <= b.max.Y

	return xIntersects && yIntersects
}

// Overlaps reports whether the shared region has positive area.
func (b *Bounds) Overlaps(other *Bounds) bool {
	if other == nil || !other.IsValid() || !b.IsValid() {
		return false
	}
	xOverlaps := other.max.X > b.min.X && other.min.X < b.max.X
	yOverlaps := other.max.Y > b.min.Y && other.min.Y < b.max.Y

	return xOverlaps && yOverlaps
}

func (b *Bounds) IsValid() bool {
	return b.min != nil && b.max != nil
}
