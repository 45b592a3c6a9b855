// Package manifest loads yaml animation-set definitions and applies them onto
// an anim.Registry.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sheetanim/anim"
)

// ErrInvalidGeometry is returned when a manifest declares a non-positive
// sheet or sprite size, or an index outside the sheet grid.
var ErrInvalidGeometry = errors.New("invalid geometry")

// TextureSource resolves image keys to textures. *render.Cache implements it.
type TextureSource interface {
	Load(key string) (*ebiten.Image, error)
}

// Manifest describes a set of sprite-sheet animations.
type Manifest struct {
	Animations []Animation `yaml:"animations"`
}

// Animation is one named animation within a manifest.
type Animation struct {
	Name          string    `yaml:"name"`
	Image         string    `yaml:"image"`
	SheetSize     GridSpec  `yaml:"sheet_size"`
	SpriteSize    SizeSpec  `yaml:"sprite_size"`
	Index         *GridSpec `yaml:"index"`
	Frequency     int       `yaml:"frequency"`
	StartingIndex *GridSpec `yaml:"starting_index"`
}

// GridSpec is a (column, row) pair in the yaml schema.
type GridSpec struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// SizeSpec is a pixel size in the yaml schema.
type SizeSpec struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (g GridSpec) cell() anim.Cell {
	return anim.Cell{Col: g.Col, Row: g.Row}
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: load %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return m, nil
}

// Parse unmarshals and validates manifest yaml.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: unmarshal: %w", err)
	}
	for i := range m.Animations {
		a := &m.Animations[i]
		if a.Name == "" {
			return nil, fmt.Errorf("manifest: animation %d has no name", i)
		}
		if err := a.validate(); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (a *Animation) validate() error {
	if a.SheetSize.Col <= 0 || a.SheetSize.Row <= 0 {
		return fmt.Errorf("manifest: %s: sheet_size %dx%d: %w", a.Name, a.SheetSize.Col, a.SheetSize.Row, ErrInvalidGeometry)
	}
	if a.SpriteSize.W <= 0 || a.SpriteSize.H <= 0 {
		return fmt.Errorf("manifest: %s: sprite_size %dx%d: %w", a.Name, a.SpriteSize.W, a.SpriteSize.H, ErrInvalidGeometry)
	}
	for _, idx := range []*GridSpec{a.Index, a.StartingIndex} {
		if idx == nil {
			continue
		}
		if idx.Col < 0 || idx.Row < 0 || idx.Col >= a.SheetSize.Col || idx.Row >= a.SheetSize.Row {
			return fmt.Errorf("manifest: %s: index (%d,%d) outside %dx%d sheet: %w",
				a.Name, idx.Col, idx.Row, a.SheetSize.Col, a.SheetSize.Row, ErrInvalidGeometry)
		}
	}
	return nil
}

// Apply resolves each animation's image through textures and registers the
// animation on reg, overwriting entries that already exist.
func (m *Manifest) Apply(reg *anim.Registry, textures TextureSource) error {
	for _, a := range m.Animations {
		tex, err := textures.Load(a.Image)
		if err != nil {
			return fmt.Errorf("manifest: %s: %w", a.Name, err)
		}
		opts := []anim.Option{anim.WithFrequency(a.Frequency)}
		if a.Index != nil {
			opts = append(opts, anim.WithIndex(a.Index.cell()))
		}
		if a.StartingIndex != nil {
			opts = append(opts, anim.WithStartingIndex(a.StartingIndex.cell()))
		}
		reg.Add(a.Name,
			tex,
			a.SheetSize.cell(),
			anim.Size{W: a.SpriteSize.W, H: a.SpriteSize.H},
			opts...)
	}
	return nil
}
