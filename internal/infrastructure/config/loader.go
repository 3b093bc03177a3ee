package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
}

// Loader loads game configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from.
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// BasePath returns the directory the loader was created for.
func (l *Loader) BasePath() string {
	return l.basePath
}

var extensions = []string{".json", ".yaml", ".yml"}

// decode picks the codec from the file extension.
func decode(name string, data []byte, v any) error {
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// readAny reads the first of stem.json, stem.yaml, stem.yml that exists.
func (l *Loader) readAny(stem string, v any) (string, error) {
	for _, ext := range extensions {
		name := stem + ext
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return name, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := decode(name, data, v); err != nil {
			return name, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return name, nil
	}
	return stem, fmt.Errorf("failed to read %s: %w", stem, fs.ErrNotExist)
}

// LoadPhysics loads physics.json (or physics.yaml) on top of DefaultPhysicsConfig
// and validates the result.
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	cfg := DefaultPhysicsConfig()
	name, err := l.readAny("physics", cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// LoadStage loads a stage file from stages/
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if _, err := l.readAny("stages/"+name, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("stage %s: tileSize must be positive", name)
	}
	return &cfg, nil
}

// LoadAll loads all base configurations
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
	}, nil
}
