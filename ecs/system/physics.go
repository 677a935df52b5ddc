package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
)

const collisionTypeSolid cp.CollisionType = 1

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk space.
// Static bodies (such as IntGrid walls) become shapes on the space's static
// body. Dynamic and kinematic bodies get their own cp.Body, and their
// positions are written back as local transforms.
type PhysicsSystem struct {
	space    *cp.Space
	gravity  float64
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(gravity),
		gravity:  gravity,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace(gravity float64) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Bodies returns the number of entities mirrored into the space.
func (ps *PhysicsSystem) Bodies() int {
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace(ps.gravity)
	}

	ps.syncEntities(w)
	ps.space.Step(1.0 / 60.0)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.ID(), component.GlobalTransformComponent.ID()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		global, _ := ecs.Get(w, e, component.GlobalTransformComponent)

		info := ps.createBodyInfo(global, bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, bodyComp)
	}
}

func (ps *PhysicsSystem) createBodyInfo(global component.GlobalTransform, bodyComp component.PhysicsBody) *bodyInfo {
	if bodyComp.Radius <= 0 && (bodyComp.Width <= 0 || bodyComp.Height <= 0) {
		bodyComp.Width, bodyComp.Height = 16, 16
	}
	sizeW, sizeH := bodyComp.Size()
	center := colliderCenter(global, bodyComp, sizeW, sizeH)

	if bodyComp.Kind == component.BodyStatic {
		var shape *cp.Shape
		if bodyComp.Radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, bodyComp.Radius, center)
		} else {
			bb := cp.BB{L: center.X - sizeW/2, B: center.Y - sizeH/2, R: center.X + sizeW/2, T: center.Y + sizeH/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		configureShape(shape, bodyComp)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	var body *cp.Body
	if bodyComp.Kind == component.BodyKinematic {
		body = cp.NewKinematicBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		if bodyComp.Radius > 0 {
			moment = cp.MomentForCircle(mass, 0, bodyComp.Radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, sizeW, sizeH)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(center)
	body.SetAngle(global.Rotation)

	var shape *cp.Shape
	if bodyComp.Radius > 0 {
		shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, sizeW, sizeH, 0)
	}
	configureShape(shape, bodyComp)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

// colliderCenter places the collider relative to the entity position
// according to its anchor and offset.
func colliderCenter(global component.GlobalTransform, bodyComp component.PhysicsBody, sizeW, sizeH float64) cp.Vector {
	c := cp.Vector{X: global.X + bodyComp.OffsetX, Y: global.Y + bodyComp.OffsetY}
	if bodyComp.Anchor == component.AnchorTopLeft {
		c.X += sizeW / 2
		c.Y += sizeH / 2
	}
	return c
}

func configureShape(shape *cp.Shape, bodyComp component.PhysicsBody) {
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetSensor(bodyComp.Sensor)
}

// syncTransforms writes dynamic body positions back as local transforms.
func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		pos := info.body.Position()
		x, y := pos.X-bodyComp.OffsetX, pos.Y-bodyComp.OffsetY
		if bodyComp.Anchor == component.AnchorTopLeft {
			sizeW, sizeH := bodyComp.Size()
			x -= sizeW / 2
			y -= sizeH / 2
		}
		var parentX, parentY float64
		if p, ok := ecs.Get(w, e, ecs.ParentComponent); ok {
			if pg, ok := ecs.Get(w, p.Entity, component.GlobalTransformComponent); ok {
				parentX, parentY = pg.X, pg.Y
			}
		}
		transform.X = x - parentX
		transform.Y = y - parentY
		transform.Rotation = info.body.Angle()
		_ = ecs.Add(w, e, component.TransformComponent, transform)
	}
}

// cleanupEntities drops bodies whose entity is gone or lost its PhysicsBody,
// as happens when a level is despawned.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
