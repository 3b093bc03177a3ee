package entity

import (
	"image"
	"math"
)

// Mode is the walk surface that currently defines "down" for a body.
// The order matches the ground angle slots of a TileDefinition.
type Mode int

const (
	ModeFloor Mode = iota
	ModeRightWall
	ModeLeftWall
	ModeCeiling
	modeCount
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeFloor:
		return "floor"
	case ModeRightWall:
		return "rightwall"
	case ModeLeftWall:
		return "leftwall"
	case ModeCeiling:
		return "ceiling"
	default:
		return "unknown"
	}
}

// BaseAngle returns the ground angle in degrees of a flat surface in mode m.
func (m Mode) BaseAngle() float64 {
	switch m {
	case ModeRightWall:
		return 90
	case ModeCeiling:
		return 180
	case ModeLeftWall:
		return 270
	default:
		return 0
	}
}

// ModeForAngle maps a ground angle in degrees to a mode using the
// 0-45 / 45-135 / 135-225 / 225-315 / 315-360 bands.
func ModeForAngle(deg float64) Mode {
	deg = NormalizeAngle(deg)
	switch {
	case deg < 45:
		return ModeFloor
	case deg < 135:
		return ModeRightWall
	case deg < 225:
		return ModeCeiling
	case deg < 315:
		return ModeLeftWall
	default:
		return ModeFloor
	}
}

// NormalizeAngle wraps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// TileDefinition is the immutable data shared by every placement of a tile.
type TileDefinition struct {
	ID       int
	Source   image.Rectangle
	Solidity Solidity
	Mask     *Mask

	angles   [modeCount]float64
	angleSet [modeCount]bool
}

// SetAngle records the ground angle reported when the tile is sensed in mode m.
func (d *TileDefinition) SetAngle(m Mode, deg float64) {
	if m < 0 || m >= modeCount {
		return
	}
	d.angles[m] = NormalizeAngle(deg)
	d.angleSet[m] = true
}

// Angle returns the ground angle for mode m, or the mode's flat angle when
// the definition does not carry one.
func (d *TileDefinition) Angle(m Mode) float64 {
	if m < 0 || m >= modeCount || !d.angleSet[m] {
		return m.BaseAngle()
	}
	return d.angles[m]
}

// Tile is one placement of a TileDefinition in a layer.
type Tile struct {
	Col, Row int
	Pos      Vec2
	W, H     int
	Def      *TileDefinition
}

// Rect returns the world rectangle covered by the tile.
func (t *Tile) Rect() Rect {
	return Rect{X: t.Pos.X, Y: t.Pos.Y, W: float64(t.W), H: float64(t.H)}
}

// SolidAt reports whether the world point p hits an occupied pixel of the
// tile. Tiles without a mask are fully occupied.
func (t *Tile) SolidAt(p Vec2) bool {
	lx := int(math.Floor(p.X - t.Pos.X))
	ly := int(math.Floor(p.Y - t.Pos.Y))
	if lx < 0 || ly < 0 || lx >= t.W || ly >= t.H {
		return false
	}
	if t.Def == nil || t.Def.Mask == nil {
		return true
	}
	return t.Def.Mask.At(lx, ly)
}

// LayerType distinguishes decorative layers from collision layers.
type LayerType int

const (
	LayerArtwork LayerType = iota
	LayerCollision
)

type cell struct {
	col, row int
}

// Layer is a sparse grid of tiles.
type Layer struct {
	Name     string
	Type     LayerType
	Path     CollisionPath
	Solidity Solidity

	tileW, tileH int
	tiles        map[cell]*Tile
}

// NewLayer creates an empty layer for tiles of the given pixel size.
// Collision layers block as full solids unless Solidity is changed.
func NewLayer(name string, typ LayerType, tileW, tileH int) *Layer {
	return &Layer{
		Name:     name,
		Type:     typ,
		Solidity: SolidityFull,
		tileW:    tileW,
		tileH:    tileH,
		tiles:    make(map[cell]*Tile),
	}
}

// Tile returns the tile at the given grid coordinates, or nil.
func (l *Layer) Tile(col, row int) *Tile {
	return l.tiles[cell{col, row}]
}

// SetTile places def at the given grid coordinates. A nil def clears the cell.
func (l *Layer) SetTile(col, row int, def *TileDefinition) *Tile {
	if def == nil {
		delete(l.tiles, cell{col, row})
		return nil
	}
	t := &Tile{
		Col: col,
		Row: row,
		Pos: Vec2{X: float64(col * l.tileW), Y: float64(row * l.tileH)},
		W:   l.tileW,
		H:   l.tileH,
		Def: def,
	}
	l.tiles[cell{col, row}] = t
	return t
}

// Len returns the number of placed tiles.
func (l *Layer) Len() int { return len(l.tiles) }

// Each calls fn for every placed tile in unspecified order.
func (l *Layer) Each(fn func(t *Tile)) {
	for _, t := range l.tiles {
		fn(t)
	}
}

// Map is the tile map the simulation runs against.
type Map struct {
	Width, Height         int // in tiles
	TileWidth, TileHeight int
	Layers                []*Layer
}

// NewMap creates an empty map.
func NewMap(width, height, tileW, tileH int) *Map {
	return &Map{Width: width, Height: height, TileWidth: tileW, TileHeight: tileH}
}

// AddLayer creates and appends a layer sized for the map tiles.
func (m *Map) AddLayer(name string, typ LayerType) *Layer {
	l := NewLayer(name, typ, m.TileWidth, m.TileHeight)
	m.Layers = append(m.Layers, l)
	return l
}

// CollisionLayers returns the layers that take part in tile tracing.
func (m *Map) CollisionLayers() []*Layer {
	var out []*Layer
	for _, l := range m.Layers {
		if l.Type == LayerCollision {
			out = append(out, l)
		}
	}
	return out
}

// Bounds returns the world rectangle covered by the map.
func (m *Map) Bounds() Rect {
	return Rect{W: float64(m.Width * m.TileWidth), H: float64(m.Height * m.TileHeight)}
}

// Cell returns the grid coordinates of the tile containing p.
func (m *Map) Cell(p Vec2) (col, row int) {
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return 0, 0
	}
	col = int(math.Floor(p.X / float64(m.TileWidth)))
	row = int(math.Floor(p.Y / float64(m.TileHeight)))
	return col, row
}
