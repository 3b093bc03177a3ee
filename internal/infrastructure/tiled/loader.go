// Package tiled builds collision maps from Tiled .tmx files.
//
// Layer properties:
//
//	type      "artwork" makes a decoration layer, anything else collides
//	path      int collision path of the layer
//	solidity  default solidity of the layer's tiles
//
// Tileset tile properties:
//
//	solidity  solid, jumpthrough or none
//	shape     preset mask name (full, half, slope_up_right, slope_up_left)
//	mask      base64 packed 2-bit-per-pixel mask, overrides shape
//	angle     floor angle in degrees
//	angle_rightwall, angle_leftwall, angle_ceiling
package tiled

import (
	"encoding/base64"
	"fmt"
	"image"
	"io/fs"
	"strconv"

	"github.com/lafriks/go-tiled"

	"github.com/younwookim/momentum/internal/domain/entity"
)

type defKey struct {
	tileset  *tiled.Tileset
	id       uint32
	solidity string
}

// LoadMap parses a TMX file from fsys and converts its tile layers.
func LoadMap(fsys fs.FS, tmxPath string) (*entity.Map, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	return Convert(levelMap)
}

// Convert turns a parsed Tiled map into a collision map.
func Convert(levelMap *tiled.Map) (*entity.Map, error) {
	var err error
	m := entity.NewMap(levelMap.Width, levelMap.Height, levelMap.TileWidth, levelMap.TileHeight)
	defs := make(map[defKey]*entity.TileDefinition)

	for _, tl := range levelMap.Layers {
		typ := entity.LayerCollision
		if tl.Properties.GetString("type") == "artwork" {
			typ = entity.LayerArtwork
		}
		layer := m.AddLayer(tl.Name, typ)

		if v, ok := property(tl.Properties, "path"); ok {
			path, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("layer %s path: %w", tl.Name, err)
			}
			layer.Path = entity.PathOf(path)
		}
		defaultSolidity := "solid"
		if v, ok := property(tl.Properties, "solidity"); ok {
			defaultSolidity = v
			layer.Solidity = entity.ParseSolidity(v)
		}

		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				i := y*levelMap.Width + x
				if i >= len(tl.Tiles) {
					continue
				}
				tile := tl.Tiles[i]
				if tile.IsNil() {
					continue
				}

				key := defKey{tile.Tileset, tile.ID, defaultSolidity}
				def, ok := defs[key]
				if !ok {
					def, err = definition(tile, levelMap.TileWidth, levelMap.TileHeight, defaultSolidity)
					if err != nil {
						return nil, fmt.Errorf("layer %s tile %d: %w", tl.Name, tile.ID, err)
					}
					defs[key] = def
				}
				if def != nil {
					layer.SetTile(x, y, def)
				}
			}
		}
	}
	return m, nil
}

// definition builds the shared definition of a tileset tile. Tiles whose
// solidity is none return nil.
func definition(tile *tiled.LayerTile, tw, th int, defaultSolidity string) (*entity.TileDefinition, error) {
	var props tiled.Properties
	if ts, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
		props = ts.Properties
	}

	solidity := defaultSolidity
	if v, ok := property(props, "solidity"); ok {
		solidity = v
	}
	s := entity.ParseSolidity(solidity)
	if s == entity.SolidityNone {
		return nil, nil
	}

	def := &entity.TileDefinition{
		ID:       int(tile.ID),
		Source:   source(tile.Tileset, tile.ID),
		Solidity: s,
		Mask:     entity.MaskShape(props.GetString("shape"), tw, th),
	}
	if v, ok := property(props, "mask"); ok {
		packed, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("mask: %w", err)
		}
		mask, err := entity.DecodeMask(tw, th, packed)
		if err != nil {
			return nil, err
		}
		def.Mask = mask
	}

	angles := map[string]entity.Mode{
		"angle":           entity.ModeFloor,
		"angle_rightwall": entity.ModeRightWall,
		"angle_leftwall":  entity.ModeLeftWall,
		"angle_ceiling":   entity.ModeCeiling,
	}
	for name, mode := range angles {
		if _, ok := property(props, name); ok {
			def.SetAngle(mode, props.GetFloat(name))
		}
	}
	return def, nil
}

// source returns the tile's rectangle in the tileset image.
func source(ts *tiled.Tileset, id uint32) image.Rectangle {
	if ts == nil || ts.Columns <= 0 {
		return image.Rectangle{}
	}
	col := int(id) % ts.Columns
	row := int(id) / ts.Columns
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight)
}

func property(props tiled.Properties, name string) (string, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
