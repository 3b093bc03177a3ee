// Package ecs owns the live entities of a level, the controllers attached
// to them and the fixed tick that drives the collision and movement passes.
package ecs

import (
	"fmt"

	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/application/movement"
	"github.com/younwookim/momentum/internal/domain/entity"
)

// Attacher is implemented by controllers that prepare their entity when
// attached, for example by setting its collision box.
type Attacher interface {
	Attach(e *entity.Entity)
}

// World holds the entity registry, controller components and the map
type World struct {
	nextID entity.ID

	// Ordered registry; controllers and collisions run in insertion order.
	entities []*entity.Entity
	byID     map[entity.ID]*entity.Entity

	// Components
	Controllers map[entity.ID]movement.Controller

	// Singleton references
	PlayerID entity.ID

	level      *entity.Map
	collisions *collision.Service
	frame      uint64
}

// NewWorld creates a world over level. A nil level is a configuration
// error.
func NewWorld(level *entity.Map, opts collision.Options) (*World, error) {
	if level == nil {
		return nil, fmt.Errorf("world map: %w", collision.ErrNilCollaborator)
	}
	w := &World{
		nextID:      1, // 0 is "nil"
		byID:        make(map[entity.ID]*entity.Entity),
		Controllers: make(map[entity.ID]movement.Controller),
		level:       level,
	}
	svc, err := collision.NewService(w, w, opts)
	if err != nil {
		return nil, err
	}
	w.collisions = svc
	return w, nil
}

// NewEntity creates, registers and spawns an entity. IDs are never recycled.
func (w *World) NewEntity(typ string, pos entity.Vec2, box entity.BoundingBox) *entity.Entity {
	id := w.nextID
	w.nextID++

	e := entity.New(id, typ, pos, box)
	e.Set(entity.OptSpawned, true)
	w.entities = append(w.entities, e)
	w.byID[id] = e
	return e
}

// Attach sets the controller of an entity.
func (w *World) Attach(id entity.ID, c movement.Controller) error {
	e, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("attach controller: entity %d not found", id)
	}
	if c == nil {
		return fmt.Errorf("attach controller to %d: %w", id, collision.ErrNilCollaborator)
	}
	if a, ok := c.(Attacher); ok {
		a.Attach(e)
	}
	w.Controllers[id] = c
	return nil
}

// Kill marks an entity for removal at the end of the current tick.
func (w *World) Kill(id entity.ID) {
	if e, ok := w.byID[id]; ok {
		e.Set(entity.OptKilled, true)
	}
}

// DestroyEntity removes an entity and its components immediately.
func (w *World) DestroyEntity(id entity.ID) {
	e, ok := w.byID[id]
	if !ok {
		return
	}
	e.Set(entity.OptKilled, true)
	w.sweep()
}

// Exists reports whether id is registered.
func (w *World) Exists(id entity.ID) bool {
	_, ok := w.byID[id]
	return ok
}

// Entity returns the entity with the given id, or nil.
func (w *World) Entity(id entity.ID) *entity.Entity {
	return w.byID[id]
}

// Player returns the player entity, or nil when none is set.
func (w *World) Player() *entity.Entity {
	return w.byID[w.PlayerID]
}

// Entities returns the live entities in insertion order.
func (w *World) Entities() []*entity.Entity {
	return w.entities
}

// CurrentMap returns the level map.
func (w *World) CurrentMap() *entity.Map {
	return w.level
}

// Collisions returns the collision service of the world.
func (w *World) Collisions() *collision.Service {
	return w.collisions
}

// Frame returns the number of completed ticks.
func (w *World) Frame() uint64 {
	return w.frame
}

// Tick runs one fixed step: rebuild the spatial index, dispatch collision
// notifications, advance every controller, then drop killed entities.
func (w *World) Tick(dt float64) {
	w.collisions.OnTickStart()

	for _, e := range w.entities {
		if e.Active() {
			w.collisions.PerformCollisions(e)
		}
	}

	for _, e := range w.entities {
		if !e.Active() {
			continue
		}
		if c, ok := w.Controllers[e.ID]; ok {
			c.Advance(e, w.collisions, dt)
		}
	}

	w.sweep()
	w.frame++
}

func (w *World) sweep() {
	live := w.entities[:0]
	for _, e := range w.entities {
		if e.Has(entity.OptKilled) {
			delete(w.byID, e.ID)
			delete(w.Controllers, e.ID)
			if e.ID == w.PlayerID {
				w.PlayerID = 0
			}
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = live
}
