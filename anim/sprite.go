package anim

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is the surface Advance binds frames onto: a texture and the source
// rectangle selecting which pixels of it are displayed.
type Sprite interface {
	SetTexture(img *ebiten.Image)
	SetSourceRect(r image.Rectangle)
}

// SheetSprite is a minimal Sprite for render loops.
type SheetSprite struct {
	Image  *ebiten.Image
	Source image.Rectangle
}

func (s *SheetSprite) SetTexture(img *ebiten.Image) {
	s.Image = img
}

func (s *SheetSprite) SetSourceRect(r image.Rectangle) {
	s.Source = r
}

// Draw renders the sprite's current frame onto dst. Sprites that have never
// been advanced have no texture yet and draw nothing.
func (s *SheetSprite) Draw(dst *ebiten.Image, opts *ebiten.DrawImageOptions) {
	if s.Image == nil || s.Source.Empty() {
		return
	}
	dst.DrawImage(s.Image.SubImage(s.Source).(*ebiten.Image), opts)
}
