// Package anim maintains sprite-sheet animation state for named animations
// and advances frames over time. A Registry maps animation names to sheet
// geometry, a current cell, and an update frequency; Advance steps the cell
// in raster order and binds the resulting source rectangle onto a sprite.
//
// The registry is not safe for concurrent use. It is meant to be owned by a
// single update loop and advanced once per tick.
package anim

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownAnimation is returned when an operation names an animation that
// was never registered (or whose sheet size is still the zero Cell).
var ErrUnknownAnimation = errors.New("unknown animation")

// Cell is a (column, row) coordinate into a sprite-sheet grid. It doubles as
// grid dimensions: a sheet with Cell{Col: 3, Row: 2} has 3 columns and 2 rows.
type Cell struct {
	Col int
	Row int
}

// Size is a width/height pair in pixels.
type Size struct {
	W int
	H int
}

type entry struct {
	texture       *ebiten.Image
	sheetSize     Cell
	spriteSize    Size
	index         Cell
	startingIndex Cell
	endingIndex   Cell // reserved for a bounded playback mode; never read by Advance
	frequency     int
	ticks         int
}

// Registry is a table of named sprite-sheet animations. The zero value is not
// usable; create one with NewRegistry.
type Registry struct {
	entries map[string]*entry
}

// NewRegistry creates an empty animation registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Option configures an animation at Add time.
type Option func(*entry)

// WithIndex sets the initial current cell (default Cell{0, 0}).
func WithIndex(c Cell) Option {
	return func(e *entry) { e.index = c }
}

// WithFrequency sets the number of ticks between frame advances. Zero or
// negative advances on every tick (default 0).
func WithFrequency(n int) Option {
	return func(e *entry) { e.frequency = n }
}

// WithStartingIndex sets the cell the animation loops back to after its last
// frame (default Cell{0, 0}).
func WithStartingIndex(c Cell) Option {
	return func(e *entry) { e.startingIndex = c }
}

// Add registers an animation, overwriting any existing entry with the same
// name. Geometry is not validated; callers are expected to pass positive
// sheet and sprite sizes and in-range indices.
func (r *Registry) Add(name string, texture *ebiten.Image, sheetSize Cell, spriteSize Size, opts ...Option) {
	e := &entry{
		texture:     texture,
		sheetSize:   sheetSize,
		spriteSize:  spriteSize,
		endingIndex: sheetSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ticks = 0
	r.entries[name] = e
}

// Delete removes an animation. Deleting an unknown name is a no-op.
func (r *Registry) Delete(name string) {
	delete(r.entries, name)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of registered animations.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns the registered animation names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Index returns the current cell of the named animation.
func (r *Registry) Index(name string) (Cell, error) {
	e, err := r.lookup(name)
	if err != nil {
		return Cell{}, err
	}
	return e.index, nil
}

// SetFrequency sets the number of ticks between frame advances.
func (r *Registry) SetFrequency(name string, frequency int) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.frequency = frequency
	return nil
}

// SetSpriteSize sets the pixel size of one sheet cell.
func (r *Registry) SetSpriteSize(name string, size Size) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.spriteSize = size
	return nil
}

// SetSheetSize sets the grid dimensions of the sheet.
func (r *Registry) SetSheetSize(name string, size Cell) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.sheetSize = size
	return nil
}

// SetIndex sets the current cell.
func (r *Registry) SetIndex(name string, index Cell) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.index = index
	return nil
}

// SetTexture replaces the sheet texture.
func (r *Registry) SetTexture(name string, texture *ebiten.Image) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.texture = texture
	return nil
}

// SetStartingIndex sets the cell the animation loops back to.
func (r *Registry) SetStartingIndex(name string, index Cell) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.startingIndex = index
	return nil
}

// SetEndingIndex sets the ending cell. The field is stored for callers that
// track it but does not affect Advance.
func (r *Registry) SetEndingIndex(name string, index Cell) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.endingIndex = index
	return nil
}

// ResetIndex rewinds the current cell to the starting index.
func (r *Registry) ResetIndex(name string) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}
	e.index = e.startingIndex
	return nil
}

func (r *Registry) lookup(name string) (*entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, unknownAnimation(name)
	}
	return e, nil
}
