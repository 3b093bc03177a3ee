package entity

// ID is a unique identifier for an entity
type ID uint32

// Solidity classifies how an entity or tile blocks movement.
type Solidity int

const (
	SolidityNone Solidity = iota
	SolidityFull
	SolidityJumpThrough
)

// String returns the string representation of the solidity
func (s Solidity) String() string {
	switch s {
	case SolidityNone:
		return "none"
	case SolidityFull:
		return "solid"
	case SolidityJumpThrough:
		return "jumpthrough"
	default:
		return "unknown"
	}
}

// ParseSolidity converts a config string into a Solidity.
// Unknown values map to SolidityNone.
func ParseSolidity(s string) Solidity {
	switch s {
	case "solid", "full":
		return SolidityFull
	case "jumpthrough", "platform", "oneway":
		return SolidityJumpThrough
	default:
		return SolidityNone
	}
}

// Options is a set of entity option flags.
type Options uint8

const (
	OptCollidable Options = 1 << iota
	OptVisible
	OptSpawned
	OptKilled
)

// Listener receives collision notifications for the entity that owns it.
// Calls are made synchronously during the collision pass.
type Listener interface {
	OnCollisionStart(other *Entity)
	OnCollisionTick(other *Entity)
	OnCollisionStop(other *Entity)
}

// Entity is the unit that owns a position, a collision box and a touch list.
type Entity struct {
	ID       ID
	Type     string
	Solidity Solidity
	Options  Options
	Path     CollisionPath

	// Layer is the visual layer used for draw-order grouping.
	Layer int

	Listener Listener

	pos      Vec2
	box      BoundingBox
	rect     Rect
	touching []*Entity
}

// New creates an entity at pos with the given box. The entity starts
// collidable and visible but not spawned.
func New(id ID, typ string, pos Vec2, box BoundingBox) *Entity {
	e := &Entity{
		ID:      id,
		Type:    typ,
		Options: OptCollidable | OptVisible,
		pos:     pos,
		box:     box,
	}
	e.rect = box.At(pos)
	return e
}

// Position returns the world position of the entity origin.
func (e *Entity) Position() Vec2 { return e.pos }

// SetPosition moves the entity and recomputes its world rectangle.
func (e *Entity) SetPosition(p Vec2) {
	e.pos = p
	e.rect = e.box.At(p)
}

// Box returns the current bounding box.
func (e *Entity) Box() BoundingBox { return e.box }

// SetBox swaps the bounding box and recomputes the world rectangle.
func (e *Entity) SetBox(b BoundingBox) {
	e.box = b
	e.rect = b.At(e.pos)
}

// Rect returns the world rectangle of the entity.
func (e *Entity) Rect() Rect { return e.rect }

// Has reports whether all the given option flags are set.
func (e *Entity) Has(o Options) bool { return e.Options&o == o }

// Set turns option flags on or off.
func (e *Entity) Set(o Options, on bool) {
	if on {
		e.Options |= o
	} else {
		e.Options &^= o
	}
}

// Collidable reports whether the entity takes part in collision tests.
func (e *Entity) Collidable() bool { return e.Has(OptCollidable) }

// Active reports whether the entity is spawned and not killed.
func (e *Entity) Active() bool { return e.Has(OptSpawned) && !e.Has(OptKilled) }

// Touching returns the entities overlapping this one as of the last
// collision pass. The slice must not be modified.
func (e *Entity) Touching() []*Entity { return e.touching }

// IsTouching reports whether other was overlapping at the last collision pass.
func (e *Entity) IsTouching(other *Entity) bool {
	for _, t := range e.touching {
		if t == other {
			return true
		}
	}
	return false
}

// ReplaceTouching swaps in the current touch list and returns the previous
// one so its backing array can be reused.
func (e *Entity) ReplaceTouching(current []*Entity) (previous []*Entity) {
	previous = e.touching
	e.touching = current
	return previous
}
