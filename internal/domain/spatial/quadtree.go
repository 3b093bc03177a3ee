// Package spatial provides the per-tick broad phase index for entities.
//
// The tree is rebuilt from scratch every tick, so nodes live in an arena and
// are recycled through a free list instead of being allocated per insert.
package spatial

import "github.com/younwookim/momentum/internal/domain/entity"

const (
	// DefaultMaxItems is the node population that triggers a split.
	DefaultMaxItems = 10
	// DefaultMaxDepth is the deepest level a node may split at.
	DefaultMaxDepth = 8
)

const noNode = -1

// node is an arena slot. children holds handles into Quadtree.nodes.
type node struct {
	level    int
	bounds   entity.Rect
	children [4]int
	split    bool
	items    []*entity.Entity
}

// Quadtree is a region quadtree over entity world rectangles. An entity is
// stored at the shallowest node whose bounds fully contain it; entities that
// straddle a split line stay in the parent's overflow list.
type Quadtree struct {
	nodes    []node
	free     []int
	root     int
	maxItems int
	maxDepth int
	count    int
}

// New creates an empty quadtree covering bounds.
// Non-positive limits fall back to the defaults.
func New(bounds entity.Rect, maxItems, maxDepth int) *Quadtree {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	q := &Quadtree{maxItems: maxItems, maxDepth: maxDepth}
	q.root = q.alloc(0, bounds)
	return q
}

// Bounds returns the root bounds.
func (q *Quadtree) Bounds() entity.Rect { return q.nodes[q.root].bounds }

// Len returns the number of inserted entities.
func (q *Quadtree) Len() int { return q.count }

// Clear empties the tree, returning every non-root node to the free list.
func (q *Quadtree) Clear() {
	q.release(q.root, false)
	q.count = 0
}

// Reset clears the tree and sets new root bounds.
func (q *Quadtree) Reset(bounds entity.Rect) {
	q.Clear()
	q.nodes[q.root].bounds = bounds
}

// Insert adds e using its current world rectangle.
func (q *Quadtree) Insert(e *entity.Entity) {
	if e == nil {
		return
	}
	q.count++
	q.insert(q.root, e)
}

func (q *Quadtree) insert(h int, e *entity.Entity) {
	r := e.Rect()
	for {
		n := &q.nodes[h]
		if !n.split {
			break
		}
		i := q.quadrant(h, r)
		if i < 0 {
			break
		}
		h = n.children[i]
	}

	n := &q.nodes[h]
	n.items = append(n.items, e)
	if n.split || len(n.items) <= q.maxItems || n.level >= q.maxDepth {
		return
	}

	q.subdivide(h)

	// Redistribute: entities that fit a quadrant move down, the rest stay.
	n = &q.nodes[h]
	kept := n.items[:0]
	for _, it := range n.items {
		if i := q.quadrant(h, it.Rect()); i >= 0 {
			q.insert(q.nodes[h].children[i], it)
			continue
		}
		kept = append(kept, it)
	}
	n = &q.nodes[h]
	for i := len(kept); i < len(n.items); i++ {
		n.items[i] = nil
	}
	n.items = kept
}

// Candidates appends to dst every entity that may overlap r and returns the
// extended slice. The result is a superset of the true overlaps; callers
// must re-test exact overlap.
func (q *Quadtree) Candidates(r entity.Rect, dst []*entity.Entity) []*entity.Entity {
	return q.query(q.root, r, dst)
}

func (q *Quadtree) query(h int, r entity.Rect, dst []*entity.Entity) []*entity.Entity {
	n := &q.nodes[h]
	dst = append(dst, n.items...)
	if !n.split {
		return dst
	}
	// Children share their split lines, so a rectangle touching a line can
	// meet items stored on either side of it.
	children := n.children
	for _, c := range children {
		if intersects(q.nodes[c].bounds, r) {
			dst = q.query(c, r, dst)
		}
	}
	return dst
}

// intersects is a closed-interval overlap test that, unlike entity.Overlaps,
// accepts zero-width or zero-height query rectangles such as segment bounds.
func intersects(a, b entity.Rect) bool {
	return a.X <= b.Right() && b.X <= a.Right() && a.Y <= b.Bottom() && b.Y <= a.Bottom()
}

// quadrant returns the index of the child that fully contains r, or -1.
func (q *Quadtree) quadrant(h int, r entity.Rect) int {
	n := &q.nodes[h]
	if !n.split {
		return -1
	}
	for i, c := range n.children {
		if q.nodes[c].bounds.ContainsRect(r) {
			return i
		}
	}
	return -1
}

func (q *Quadtree) subdivide(h int) {
	b := q.nodes[h].bounds
	level := q.nodes[h].level + 1
	hw, hh := b.W/2, b.H/2
	quads := [4]entity.Rect{
		{X: b.X + hw, Y: b.Y, W: hw, H: hh},
		{X: b.X, Y: b.Y, W: hw, H: hh},
		{X: b.X, Y: b.Y + hh, W: hw, H: hh},
		{X: b.X + hw, Y: b.Y + hh, W: hw, H: hh},
	}
	var children [4]int
	for i, qb := range quads {
		children[i] = q.alloc(level, qb)
	}
	n := &q.nodes[h]
	n.children = children
	n.split = true
}

// alloc takes a node from the free list or grows the arena.
func (q *Quadtree) alloc(level int, bounds entity.Rect) int {
	var h int
	if k := len(q.free); k > 0 {
		h = q.free[k-1]
		q.free = q.free[:k-1]
	} else {
		q.nodes = append(q.nodes, node{})
		h = len(q.nodes) - 1
	}
	n := &q.nodes[h]
	n.level = level
	n.bounds = bounds
	n.split = false
	n.children = [4]int{noNode, noNode, noNode, noNode}
	return h
}

// release empties the subtree at h and frees its nodes. The node itself is
// freed only when self is set, so the root handle stays stable.
func (q *Quadtree) release(h int, self bool) {
	n := &q.nodes[h]
	if n.split {
		children := n.children
		for _, c := range children {
			q.release(c, true)
		}
	}
	n = &q.nodes[h]
	for i := range n.items {
		n.items[i] = nil
	}
	n.items = n.items[:0]
	n.split = false
	n.children = [4]int{noNode, noNode, noNode, noNode}
	if self {
		q.free = append(q.free, h)
	}
}

// Depth returns the deepest level currently in use.
func (q *Quadtree) Depth() int {
	return q.depth(q.root)
}

func (q *Quadtree) depth(h int) int {
	n := &q.nodes[h]
	if !n.split {
		return n.level
	}
	d := n.level
	for _, c := range n.children {
		if cd := q.depth(c); cd > d {
			d = cd
		}
	}
	return d
}

// Nodes returns the number of live nodes.
func (q *Quadtree) Nodes() int { return len(q.nodes) - len(q.free) }
