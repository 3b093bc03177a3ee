package config

// StageConfig is the root config for stage JSON / YAML files
type StageConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	Size        StageSizeConfig              `json:"size" yaml:"size"`
	Tiled       string                       `json:"tiled,omitempty" yaml:"tiled,omitempty"` // optional .tmx replacing Layers
	PlayerSpawn PositionConfig               `json:"playerSpawn" yaml:"playerSpawn"`
	Layers      []LayerConfig                `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
	Entities    []EntitySpawnConfig          `json:"entities" yaml:"entities"`
}

type StageSizeConfig struct {
	Width    int `json:"width" yaml:"width"`
	Height   int `json:"height" yaml:"height"`
	TileSize int `json:"tileSize" yaml:"tileSize"`
}

type PositionConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// LayerConfig is one ASCII tile layer. Each rune is looked up in TileMapping.
type LayerConfig struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"` // "collision" (default) or "artwork"
	Path     *int     `json:"path,omitempty" yaml:"path,omitempty"`
	Solidity string   `json:"solidity,omitempty" yaml:"solidity,omitempty"`
	Rows     []string `json:"rows" yaml:"rows"`
}

type TileMappingConfig struct {
	Type      string    `json:"type" yaml:"type"`
	Solidity  string    `json:"solidity" yaml:"solidity"`
	Shape     string    `json:"shape,omitempty" yaml:"shape,omitempty"` // preset mask name
	Mask      string    `json:"mask,omitempty" yaml:"mask,omitempty"`   // base64, 2 bits per pixel
	Angles    []float64 `json:"angles,omitempty" yaml:"angles,omitempty"` // floor, right wall, left wall, ceiling
	TileIndex int       `json:"tileIndex" yaml:"tileIndex"`
}

type EntitySpawnConfig struct {
	Type       string  `json:"type" yaml:"type"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	Solidity   string  `json:"solidity,omitempty" yaml:"solidity,omitempty"`
	Path       *int    `json:"path,omitempty" yaml:"path,omitempty"`
	Controller string  `json:"controller,omitempty" yaml:"controller,omitempty"` // basic, faller, bouncer
	VX         float64 `json:"vx,omitempty" yaml:"vx,omitempty"`
	VY         float64 `json:"vy,omitempty" yaml:"vy,omitempty"`
}
