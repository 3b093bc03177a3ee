package system

import (
	"encoding/base64"
	"fmt"
	"image"
	"sort"
	"unicode/utf8"

	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a tile map
func LoadStage(cfg *config.StageConfig) (*entity.Map, error) {
	ts := cfg.Size.TileSize
	if ts <= 0 {
		return nil, fmt.Errorf("stage %s: tileSize must be positive", cfg.ID)
	}

	defs, err := tileDefinitions(cfg.TileMapping, ts)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", cfg.ID, err)
	}

	width, height := cfg.Size.Width/ts, cfg.Size.Height/ts
	for _, l := range cfg.Layers {
		height = max(height, len(l.Rows))
		for _, row := range l.Rows {
			width = max(width, utf8.RuneCountInString(row))
		}
	}

	m := entity.NewMap(width, height, ts, ts)
	for _, lc := range cfg.Layers {
		typ := entity.LayerCollision
		if lc.Type == "artwork" {
			typ = entity.LayerArtwork
		}
		layer := m.AddLayer(lc.Name, typ)
		if lc.Path != nil {
			layer.Path = entity.PathOf(*lc.Path)
		}
		if lc.Solidity != "" {
			layer.Solidity = entity.ParseSolidity(lc.Solidity)
		}

		for y, row := range lc.Rows {
			x := 0
			for _, char := range row {
				if def, ok := defs[string(char)]; ok {
					layer.SetTile(x, y, def)
				}
				x++
			}
		}
	}
	return m, nil
}

// tileDefinitions builds one shared definition per mapped character.
// Mappings with no solidity are decoration and are skipped.
func tileDefinitions(mapping map[string]config.TileMappingConfig, ts int) (map[string]*entity.TileDefinition, error) {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	defs := make(map[string]*entity.TileDefinition, len(mapping))
	for _, k := range keys {
		mc := mapping[k]
		solidity := entity.ParseSolidity(mc.Solidity)
		if solidity == entity.SolidityNone {
			continue
		}

		def := &entity.TileDefinition{
			ID:       mc.TileIndex,
			Source:   image.Rect(mc.TileIndex*ts, 0, (mc.TileIndex+1)*ts, ts),
			Solidity: solidity,
			Mask:     entity.MaskShape(mc.Shape, ts, ts),
		}
		if mc.Mask != "" {
			packed, err := base64.StdEncoding.DecodeString(mc.Mask)
			if err != nil {
				return nil, fmt.Errorf("tile %q mask: %w", k, err)
			}
			mask, err := entity.DecodeMask(ts, ts, packed)
			if err != nil {
				return nil, fmt.Errorf("tile %q mask: %w", k, err)
			}
			def.Mask = mask
		}
		for i, a := range mc.Angles {
			def.SetAngle(entity.Mode(i), a)
		}
		defs[k] = def
	}
	return defs, nil
}
