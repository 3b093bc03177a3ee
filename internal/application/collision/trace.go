package collision

import "github.com/younwookim/momentum/internal/domain/entity"

// TraceFlags tune what a trace can hit.
type TraceFlags uint8

const (
	IgnoreEntities TraceFlags = 1 << iota
	IgnoreTiles
	SolidOnly
	IgnoreJumpThrough
)

// TraceQuery describes a segment to trace.
type TraceQuery struct {
	From, To entity.Vec2
	Flags    TraceFlags

	// Ignore is excluded from entity hits, usually the tracing entity.
	Ignore *entity.Entity
	// Type, when set, restricts entity hits to entities of that type.
	Type string
	// Path restricts hits to tiles and entities on a compatible path.
	Path entity.CollisionPath
}

// Has reports whether all flags in f are set on the query.
func (q TraceQuery) Has(f TraceFlags) bool { return q.Flags&f == f }

// TraceResult is the outcome of a trace. ContactPoint is always the last
// visited coordinate; Tile and Entity are never both set.
type TraceResult struct {
	Hit          bool
	ContactPoint entity.Vec2
	Tile         *entity.Tile
	Entity       *entity.Entity
}

// blocks reports whether something with solidity s stops a trace with the
// given flags.
func blocks(s entity.Solidity, flags TraceFlags) bool {
	if flags&SolidOnly != 0 && s != entity.SolidityFull {
		return false
	}
	if flags&IgnoreJumpThrough != 0 && s == entity.SolidityJumpThrough {
		return false
	}
	return true
}

// walker visits every integer grid coordinate crossed by a segment, one
// axis step at a time, choosing the axis from accumulated error terms seeded
// by the fractional start position.
type walker struct {
	x, y       int
	xInc, yInc int
	dx, dy     float64
	err        float64
	remaining  int
}

func newWalker(from, to entity.Vec2) walker {
	fx, fy := from.Floor().X, from.Floor().Y
	tx, ty := to.Floor().X, to.Floor().Y

	w := walker{
		x:         int(fx),
		y:         int(fy),
		dx:        abs(to.X - from.X),
		dy:        abs(to.Y - from.Y),
		remaining: 1,
	}

	var errX, errY float64
	switch {
	case w.dx == 0:
	case to.X > from.X:
		w.xInc = 1
		w.remaining += int(tx - fx)
		errX = (fx + 1 - from.X) * w.dy
	default:
		w.xInc = -1
		w.remaining += int(fx - tx)
		errX = (from.X - fx) * w.dy
	}

	switch {
	case w.dy == 0:
	case to.Y > from.Y:
		w.yInc = 1
		w.remaining += int(ty - fy)
		errY = (fy + 1 - from.Y) * w.dx
	default:
		w.yInc = -1
		w.remaining += int(fy - ty)
		errY = (from.Y - fy) * w.dx
	}

	// Vertical segments only step Y, horizontal ones only step X.
	switch {
	case w.dx == 0:
		w.err = 1
	case w.dy == 0:
		w.err = -1
	default:
		w.err = errX - errY
	}
	return w
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// next returns the next coordinate, or false once the step budget is spent.
func (w *walker) next() (int, int, bool) {
	if w.remaining <= 0 {
		return 0, 0, false
	}
	x, y := w.x, w.y
	w.remaining--
	if w.err > 0 {
		w.y += w.yInc
		w.err -= w.dx
	} else {
		w.x += w.xInc
		w.err += w.dy
	}
	return x, y, true
}
