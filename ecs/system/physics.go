package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeHazard
	collisionTypeBounds
)

const (
	defaultGravity = 600.0
	physicsStep    = 1.0 / 60.0
)

type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
	hazardShapes map[*cp.Shape]struct{}
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

type playerContactState struct {
	grounded bool
	hazard   bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	if gravity <= 0 {
		gravity = defaultGravity
	}
	return &PhysicsSystem{
		space:        newSpace(gravity),
		gravity:      gravity,
		entities:     make(map[ecs.Entity]*bodyInfo),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
		hazardShapes: make(map[*cp.Shape]struct{}),
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

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace(ps.gravity)
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.resetPlayerContacts(w)

	ps.space.Step(physicsStep)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, other := range []cp.CollisionType{collisionTypeSolid, collisionTypeHazard, collisionTypeBounds} {
		h := ps.space.NewCollisionHandler(collisionTypePlayer, other)
		h.UserData = ps
		h.PreSolveFunc = groundPreSolve
		if other == collisionTypeHazard {
			h.BeginFunc = hazardBegin
		}
	}

	ps.handlersReady = true
}

// groundPreSolve marks the player grounded when the contact normal points
// from the player down into the surface.
func groundPreSolve(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	st, playerIsA := sys.contactState(arb)
	if st == nil {
		return true
	}
	n := arb.Normal()
	if !playerIsA {
		n = n.Neg()
	}
	if n.Y > 0.5 {
		st.grounded = true
	}
	return true
}

func hazardBegin(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	if st, _ := sys.contactState(arb); st != nil {
		st.hazard = true
	}
	return true
}

func (ps *PhysicsSystem) contactState(arb *cp.Arbiter) (*playerContactState, bool) {
	shapeA, shapeB := arb.Shapes()
	playerEntity, playerIsA := ps.playerShapes[shapeA]
	if !playerIsA {
		var okB bool
		playerEntity, okB = ps.playerShapes[shapeB]
		if !okB {
			return nil, false
		}
	}
	st := ps.playerStates[playerEntity]
	if st == nil {
		st = &playerContactState{}
		ps.playerStates[playerEntity] = st
	}
	return st, playerIsA
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		collisionType := collisionTypeSolid
		if ecs.Has(w, e, component.HazardComponent.Kind()) {
			collisionType = collisionTypeHazard
		}
		if isPlayer {
			collisionType = collisionTypePlayer
		}

		info := ps.createBodyInfo(transform, bodyComp, collisionType)
		if info == nil {
			return
		}
		ps.entities[e] = info
		for _, s := range info.shapes {
			switch collisionType {
			case collisionTypePlayer:
				ps.playerShapes[s] = e
			case collisionTypeHazard:
				ps.hazardShapes[s] = struct{}{}
			}
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, collisionType cp.CollisionType) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}

	topLeftX := transform.X + bodyComp.OffsetX
	topLeftY := transform.Y + bodyComp.OffsetY
	if !bodyComp.AlignTopLeft {
		topLeftX -= width / 2
		topLeftY -= height / 2
	}

	if bodyComp.Static {
		bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + width, T: topLeftY + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionType)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	// infinite moment keeps the body upright
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: topLeftX + width/2, Y: topLeftY + height/2})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionType)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, bounds, ok := ecs.GetFirst(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	worldW, worldH := bounds.Width, bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: worldH}, {X: worldW, Y: worldH}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], 1)
		shape.SetCollisionType(collisionTypeBounds)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, _ *component.PlayerCollision) {
		seen[e] = struct{}{}
		ps.playerStates[e] = &playerContactState{}
	})
	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		if !ok {
			continue
		}
		pc.Grounded = st.grounded
		pc.HazardContact = st.hazard
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X - bodyComp.OffsetX
		transform.Y = pos.Y - bodyComp.OffsetY
		if bodyComp.AlignTopLeft {
			transform.X -= bodyComp.Width / 2
			transform.Y -= bodyComp.Height / 2
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.playerShapes, shape)
			delete(ps.hazardShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
