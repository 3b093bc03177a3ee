package entity

import "strconv"

// CollisionPath is an optional integer partition tag. Entities and tiles on
// different set paths never interact.
type CollisionPath struct {
	value int
	set   bool
}

// NoPath is the unset path. It interacts with every path.
var NoPath = CollisionPath{}

// PathOf returns a set path with the given value.
func PathOf(v int) CollisionPath {
	return CollisionPath{value: v, set: true}
}

// Get returns the path value and whether it is set.
func (p CollisionPath) Get() (int, bool) { return p.value, p.set }

// IsSet reports whether the path carries a value.
func (p CollisionPath) IsSet() bool { return p.set }

// Conflicts reports whether p and o are both set and differ.
func (p CollisionPath) Conflicts(o CollisionPath) bool {
	return p.set && o.set && p.value != o.value
}

// String returns the string representation of the path
func (p CollisionPath) String() string {
	if !p.set {
		return "none"
	}
	return strconv.Itoa(p.value)
}
