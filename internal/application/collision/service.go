// Package collision owns the per-tick spatial index and answers box queries,
// entity overlap passes and traceline queries against tiles and entities.
package collision

import (
	"errors"
	"fmt"
	"log"

	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/domain/spatial"
)

// ErrNilCollaborator is returned when a required collaborator is missing.
var ErrNilCollaborator = errors.New("nil collaborator")

// MapProvider returns the map currently being simulated. It may return nil
// while no map is loaded.
type MapProvider interface {
	CurrentMap() *entity.Map
}

// Enumerator yields every live entity in a stable order.
type Enumerator interface {
	Entities() []*entity.Entity
}

// DebugDrawer receives trace and box visualisations when debug drawing is on.
type DebugDrawer interface {
	DrawLine(from, to entity.Vec2, hit bool)
	DrawBox(r entity.Rect)
}

// Logger is the diagnostics sink. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Options configures a Service.
type Options struct {
	MaxItems int
	MaxDepth int
	Logger   Logger
	Debug    DebugDrawer
}

// Service is the collision and traceline service.
type Service struct {
	maps     MapProvider
	entities Enumerator
	tree     *spatial.Quadtree
	log      Logger
	debug    DebugDrawer

	debugTraces bool

	// Scratch buffers reused across calls within a tick.
	candidates []*entity.Entity
	traceHits  []*entity.Entity
}

// NewService creates a collision service. maps and entities are required.
func NewService(maps MapProvider, entities Enumerator, opts Options) (*Service, error) {
	if maps == nil {
		return nil, fmt.Errorf("collision service: map provider: %w", ErrNilCollaborator)
	}
	if entities == nil {
		return nil, fmt.Errorf("collision service: entity enumerator: %w", ErrNilCollaborator)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		maps:     maps,
		entities: entities,
		tree:     spatial.New(entity.Rect{}, opts.MaxItems, opts.MaxDepth),
		log:      logger,
		debug:    opts.Debug,
	}, nil
}

// SetDebugTraces toggles debug drawing of traces.
func (s *Service) SetDebugTraces(on bool) { s.debugTraces = on }

// DebugTraces reports whether traces are drawn.
func (s *Service) DebugTraces() bool { return s.debugTraces }

// Logger returns the diagnostics sink.
func (s *Service) Logger() Logger { return s.log }

// Index exposes the spatial index for inspection.
func (s *Service) Index() *spatial.Quadtree { return s.tree }

// OnTickStart rebuilds the spatial index from every spawned, live entity.
func (s *Service) OnTickStart() {
	var bounds entity.Rect
	if m := s.maps.CurrentMap(); m != nil {
		bounds = m.Bounds()
	}
	s.tree.Reset(bounds)
	for _, e := range s.entities.Entities() {
		if e == nil || !e.Active() {
			continue
		}
		s.tree.Insert(e)
	}
}

// QueryBox returns every indexed entity whose world rectangle overlaps r.
func (s *Service) QueryBox(r entity.Rect) []*entity.Entity {
	return s.appendQuery(nil, r, false, 0)
}

// QueryBoxInLayer is QueryBox restricted to one visual layer.
func (s *Service) QueryBoxInLayer(r entity.Rect, layer int) []*entity.Entity {
	return s.appendQuery(nil, r, true, layer)
}

func (s *Service) appendQuery(dst []*entity.Entity, r entity.Rect, filter bool, layer int) []*entity.Entity {
	s.candidates = s.tree.Candidates(r, s.candidates[:0])
	for _, c := range s.candidates {
		if filter && c.Layer != layer {
			continue
		}
		if entity.Overlaps(c.Rect(), r) {
			dst = append(dst, c)
		}
	}
	clearRefs(s.candidates)
	return dst
}

// PerformCollisions recomputes the touch list of e and notifies its
// listener: start for new overlaps, then tick for every current overlap,
// then stop for overlaps that ended.
func (s *Service) PerformCollisions(e *entity.Entity) {
	if e == nil || !e.Collidable() {
		return
	}
	r := e.Rect()
	var current []*entity.Entity
	s.candidates = s.tree.Candidates(r, s.candidates[:0])
	for _, other := range s.candidates {
		if other == e || !other.Collidable() {
			continue
		}
		if e.Path.Conflicts(other.Path) {
			continue
		}
		if !entity.Overlaps(r, other.Rect()) || containsEntity(current, other) {
			continue
		}
		current = append(current, other)
	}
	clearRefs(s.candidates)

	previous := e.ReplaceTouching(current)
	l := e.Listener
	if l == nil {
		return
	}
	for _, other := range current {
		if !containsEntity(previous, other) {
			l.OnCollisionStart(other)
		}
	}
	for _, other := range current {
		l.OnCollisionTick(other)
	}
	for _, other := range previous {
		if !containsEntity(current, other) {
			l.OnCollisionStop(other)
		}
	}
}

// TraceLine walks the segment of q one grid coordinate at a time and stops
// at the first entity or tile pixel it hits.
func (s *Service) TraceLine(q TraceQuery) TraceResult {
	res := s.trace(q)
	if s.debugTraces && s.debug != nil {
		s.debug.DrawLine(q.From, q.To, res.Hit)
		if res.Hit {
			s.debug.DrawBox(entity.Rect{X: res.ContactPoint.X - 1, Y: res.ContactPoint.Y - 1, W: 2, H: 2})
		}
	}
	return res
}

func (s *Service) trace(q TraceQuery) TraceResult {
	if q.From == q.To {
		return TraceResult{ContactPoint: q.To.Floor()}
	}

	var hits []*entity.Entity
	if !q.Has(IgnoreEntities) {
		hits = s.traceCandidates(q)
	}
	defer func() {
		clearRefs(s.traceHits)
	}()

	var layers []*entity.Layer
	m := s.maps.CurrentMap()
	if !q.Has(IgnoreTiles) && m != nil {
		for _, l := range m.CollisionLayers() {
			if l.Solidity == entity.SolidityNone || l.Path.Conflicts(q.Path) || !blocks(l.Solidity, q.Flags) {
				continue
			}
			layers = append(layers, l)
		}
	}

	w := newWalker(q.From, q.To)
	var last entity.Vec2
	for {
		x, y, ok := w.next()
		if !ok {
			break
		}
		p := entity.Vec2{X: float64(x), Y: float64(y)}
		last = p

		for _, e := range hits {
			if e.Rect().ContainsPoint(p) {
				return TraceResult{Hit: true, ContactPoint: p, Entity: e}
			}
		}

		if len(layers) == 0 {
			continue
		}
		col, row := m.Cell(p)
		for _, l := range layers {
			t := l.Tile(col, row)
			if t == nil || t.Def == nil || t.Def.Solidity == entity.SolidityNone {
				continue
			}
			if !blocks(t.Def.Solidity, q.Flags) {
				continue
			}
			if t.SolidAt(p) {
				return TraceResult{Hit: true, ContactPoint: p, Tile: t}
			}
		}
	}
	return TraceResult{ContactPoint: last}
}

// traceCandidates gathers the entities a trace may hit, once per trace.
func (s *Service) traceCandidates(q TraceQuery) []*entity.Entity {
	bounds := entity.SegmentBounds(q.From.Floor(), q.To.Floor())
	s.candidates = s.tree.Candidates(bounds, s.candidates[:0])
	hits := s.traceHits[:0]
	for _, c := range s.candidates {
		if c == q.Ignore || !c.Collidable() {
			continue
		}
		if !blocks(c.Solidity, q.Flags) {
			continue
		}
		// Non-solid entities are only found by type-filtered traces.
		if c.Solidity == entity.SolidityNone && q.Type == "" {
			continue
		}
		if q.Type != "" && c.Type != q.Type {
			continue
		}
		if c.Path.Conflicts(q.Path) {
			continue
		}
		if !overlapsSegmentBounds(c.Rect(), bounds) || containsEntity(hits, c) {
			continue
		}
		hits = append(hits, c)
	}
	clearRefs(s.candidates)
	s.traceHits = hits
	return hits
}

// overlapsSegmentBounds is Overlaps that accepts a zero-width or zero-height
// segment box.
func overlapsSegmentBounds(r, seg entity.Rect) bool {
	if r.Empty() {
		return false
	}
	return seg.X <= r.Right() && r.X <= seg.Right() && seg.Y <= r.Bottom() && r.Y <= seg.Bottom()
}

func containsEntity(list []*entity.Entity, e *entity.Entity) bool {
	for _, it := range list {
		if it == e {
			return true
		}
	}
	return false
}

func clearRefs(list []*entity.Entity) {
	for i := range list {
		list[i] = nil
	}
}
