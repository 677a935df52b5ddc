package component

import "github.com/jakecoffman/cp"

type BodyKind uint8

const (
	BodyDynamic BodyKind = iota
	BodyStatic
	// BodyKinematic bodies ignore gravity and keep the velocity they are given.
	BodyKinematic
)

// BodyAnchor says which point of the collider sits on the entity position.
type BodyAnchor uint8

const (
	AnchorCenter BodyAnchor = iota
	AnchorTopLeft
)

// PhysicsBody describes a chipmunk collider. A positive Radius makes it a
// circle, otherwise Width and Height make a box. Body and Shape are owned by
// the physics system.
type PhysicsBody struct {
	Kind       BodyKind
	Anchor     BodyAnchor
	Width      float64
	Height     float64
	Radius     float64
	OffsetX    float64
	OffsetY    float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Sensor     bool

	Body  *cp.Body
	Shape *cp.Shape
}

// Size returns the collider's bounding box size.
func (b PhysicsBody) Size() (float64, float64) {
	if b.Radius > 0 {
		return b.Radius * 2, b.Radius * 2
	}
	return b.Width, b.Height
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
