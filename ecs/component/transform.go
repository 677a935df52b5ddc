package component

// Transform is the position of an entity relative to its parent.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// NewTransform returns a unit-scale transform at (x, y).
func NewTransform(x, y float64) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

var TransformComponent = NewComponent[Transform]()

// GlobalTransform is the world-space transform, derived from the Transform
// chain by the propagation system.
type GlobalTransform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var GlobalTransformComponent = NewComponent[GlobalTransform]()

// Mul composes the parent's global transform with a child's local one.
func (g GlobalTransform) Mul(t Transform) GlobalTransform {
	sx, sy := g.ScaleX, g.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return GlobalTransform{
		X:        g.X + t.X*sx,
		Y:        g.Y + t.Y*sy,
		ScaleX:   sx * scaleOrOne(t.ScaleX),
		ScaleY:   sy * scaleOrOne(t.ScaleY),
		Rotation: g.Rotation + t.Rotation,
	}
}

// FromTransform treats a root transform as world space.
func FromTransform(t Transform) GlobalTransform {
	return GlobalTransform{X: t.X, Y: t.Y, ScaleX: scaleOrOne(t.ScaleX), ScaleY: scaleOrOne(t.ScaleY), Rotation: t.Rotation}
}

func scaleOrOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
