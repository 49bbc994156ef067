package geom

// Transformation is the affine transform (x, y) -> (a*x + b, c*y + d)
// used to shift projected coordinates into the pixel origin of a tile
// pyramid.
type Transformation struct {
	A float64
	B float64
	C float64
	D float64
}

func NewTransformation(a, b, c, d float64) Transformation {
	return Transformation{A: a, B: b, C: c, D: d}
}

// Transform applies the transform to p at the given scale.
func (t Transformation) Transform(p Point, scale float64) Point {
	return Point{
		X: scale * (t.A*p.X + t.B),
		Y: scale * (t.C*p.Y + t.D),
	}
}

// Untransform reverses Transform.
func (t Transformation) Untransform(p Point, scale float64) Point {
	return Point{
		X: (p.X/scale - t.B) / t.A,
		Y: (p.Y/scale - t.D) / t.C,
	}
}
