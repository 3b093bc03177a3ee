package entity

import "math"

// Vec2 is a point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Floor returns v with both components rounded down to whole pixels.
func (v Vec2) Floor() Vec2 { return Vec2{math.Floor(v.X), math.Floor(v.Y)} }

// Rect is an axis aligned rectangle. Position is the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the rectangle centre.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p Vec2) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Right() <= r.Right() && o.Y >= r.Y && o.Bottom() <= r.Bottom()
}

// Overlaps reports whether a and b intersect. Intervals are closed, so
// rectangles sharing only an edge overlap. Zero-size rectangles never overlap.
func Overlaps(a, b Rect) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return a.X <= b.Right() && b.X <= a.Right() && a.Y <= b.Bottom() && b.Y <= a.Bottom()
}

// SegmentBounds returns the smallest rectangle containing the segment a-b.
func SegmentBounds(a, b Vec2) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// BoundingBox is a collision box relative to an entity origin.
type BoundingBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxAround returns a box of the given size centred on the origin.
func BoxAround(w, h float64) BoundingBox {
	return BoundingBox{MinX: -w / 2, MinY: -h / 2, MaxX: w / 2, MaxY: h / 2}
}

// Width returns the box width.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// At returns the world rectangle of the box for an origin at pos.
func (b BoundingBox) At(pos Vec2) Rect {
	w, h := b.Width(), b.Height()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: pos.X + b.MinX, Y: pos.Y + b.MinY, W: w, H: h}
}
