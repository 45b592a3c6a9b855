package anim

import (
	"errors"
	"fmt"
	"image"
)

func unknownAnimation(name string) error {
	return fmt.Errorf("anim: %q: %w", name, ErrUnknownAnimation)
}

// Advance ticks the named animation once. While the animation's tick counter
// has not yet reached its frequency the sprite is left untouched. Once it
// does, the counter resets, the current cell's source rectangle and the sheet
// texture are bound onto sprite, and the current cell steps one frame in
// column-major raster order: down the rows of the current column, then to the
// top of the next column, and from the last cell back to the starting index.
//
// Returns ErrUnknownAnimation when name was never registered or its sheet
// size is still zero; the sprite is not mutated in that case.
func (r *Registry) Advance(name string, sprite Sprite) error {
	e, ok := r.entries[name]
	if !ok || e.sheetSize == (Cell{}) {
		return unknownAnimation(name)
	}

	e.ticks++
	if e.ticks < e.frequency {
		return nil
	}
	e.ticks = 0

	src := image.Rect(
		e.index.Col*e.spriteSize.W,
		e.index.Row*e.spriteSize.H,
		e.index.Col*e.spriteSize.W+e.spriteSize.W,
		e.index.Row*e.spriteSize.H+e.spriteSize.H,
	)
	sprite.SetTexture(e.texture)
	sprite.SetSourceRect(src)

	switch {
	case e.index.Row < e.sheetSize.Row-1:
		e.index.Row++
	case e.index.Col < e.sheetSize.Col-1:
		e.index.Row = 0
		e.index.Col++
	default:
		e.index = e.startingIndex
	}
	return nil
}

// AdvanceAll advances every (name, sprite) pair in sprites. A failure on one
// name does not stop the others; the per-name errors are joined and returned.
func (r *Registry) AdvanceAll(sprites map[string]Sprite) error {
	var errs []error
	for name, sprite := range sprites {
		if err := r.Advance(name, sprite); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
