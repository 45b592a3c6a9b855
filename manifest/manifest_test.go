package manifest

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/sheetanim/anim"
)

const validManifest = `
animations:
  - name: walk
    image: sheets/walk.png
    sheet_size: {col: 3, row: 2}
    sprite_size: {w: 16, h: 16}
    frequency: 3
    index: {col: 0, row: 1}
    starting_index: {col: 0, row: 1}
  - name: idle
    image: sheets/idle.png
    sheet_size: {col: 2, row: 2}
    sprite_size: {w: 16, h: 16}
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Animations) != 2 {
		t.Fatalf("parsed %d animations, want 2", len(m.Animations))
	}

	walk := m.Animations[0]
	if walk.Name != "walk" || walk.Image != "sheets/walk.png" {
		t.Fatalf("walk header = %q %q", walk.Name, walk.Image)
	}
	if walk.SheetSize != (GridSpec{Col: 3, Row: 2}) {
		t.Fatalf("walk sheet_size = %+v", walk.SheetSize)
	}
	if walk.SpriteSize != (SizeSpec{W: 16, H: 16}) {
		t.Fatalf("walk sprite_size = %+v", walk.SpriteSize)
	}
	if walk.Frequency != 3 {
		t.Fatalf("walk frequency = %d", walk.Frequency)
	}
	if walk.Index == nil || *walk.Index != (GridSpec{Col: 0, Row: 1}) {
		t.Fatalf("walk index = %+v", walk.Index)
	}

	idle := m.Animations[1]
	if idle.Index != nil || idle.StartingIndex != nil || idle.Frequency != 0 {
		t.Fatalf("idle defaults not preserved: %+v", idle)
	}
}

func TestParseRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			"zero_sheet",
			`animations: [{name: a, image: a.png, sheet_size: {col: 0, row: 2}, sprite_size: {w: 8, h: 8}}]`,
		},
		{
			"negative_sprite",
			`animations: [{name: a, image: a.png, sheet_size: {col: 2, row: 2}, sprite_size: {w: -8, h: 8}}]`,
		},
		{
			"index_out_of_range",
			`animations: [{name: a, image: a.png, sheet_size: {col: 2, row: 2}, sprite_size: {w: 8, h: 8}, index: {col: 2, row: 0}}]`,
		},
		{
			"starting_index_negative",
			`animations: [{name: a, image: a.png, sheet_size: {col: 2, row: 2}, sprite_size: {w: 8, h: 8}, starting_index: {col: -1, row: 0}}]`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("error = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestParseRejectsUnnamedAnimation(t *testing.T) {
	_, err := Parse([]byte(`animations: [{image: a.png, sheet_size: {col: 1, row: 1}, sprite_size: {w: 8, h: 8}}]`))
	if err == nil {
		t.Fatal("expected error for unnamed animation")
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("animations: [oops")); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

// stubSource hands out distinct texture pointers and records requested keys.
type stubSource struct {
	loaded   map[string]*ebiten.Image
	failures map[string]error
}

func newStubSource() *stubSource {
	return &stubSource{loaded: make(map[string]*ebiten.Image), failures: make(map[string]error)}
}

func (s *stubSource) Load(key string) (*ebiten.Image, error) {
	if err := s.failures[key]; err != nil {
		return nil, err
	}
	img, ok := s.loaded[key]
	if !ok {
		img = new(ebiten.Image)
		s.loaded[key] = img
	}
	return img, nil
}

type recordSprite struct {
	tex  *ebiten.Image
	rect image.Rectangle
}

func (s *recordSprite) SetTexture(img *ebiten.Image)    { s.tex = img }
func (s *recordSprite) SetSourceRect(r image.Rectangle) { s.rect = r }

func TestApply(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := anim.NewRegistry()
	src := newStubSource()
	if err := m.Apply(reg, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.Len() != 2 || !reg.Has("walk") || !reg.Has("idle") {
		t.Fatalf("registry after apply: len=%d names=%v", reg.Len(), reg.Names())
	}
	if got, _ := reg.Index("walk"); got != (anim.Cell{Col: 0, Row: 1}) {
		t.Fatalf("walk index = %v, want (0,1)", got)
	}

	// walk has frequency 3: two ticks idle, third binds the declared texture.
	s := &recordSprite{}
	for i := 0; i < 3; i++ {
		if err := reg.Advance("walk", s); err != nil {
			t.Fatalf("advance %d: %v", i+1, err)
		}
	}
	if s.tex != src.loaded["sheets/walk.png"] {
		t.Fatalf("sprite bound wrong texture")
	}
	if want := image.Rect(0, 16, 16, 32); s.rect != want {
		t.Fatalf("sprite rect = %v, want %v", s.rect, want)
	}
}

func TestApplyPropagatesTextureErrors(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := newStubSource()
	src.failures["sheets/walk.png"] = fmt.Errorf("missing file")

	reg := anim.NewRegistry()
	if err := m.Apply(reg, src); err == nil {
		t.Fatal("expected texture load error")
	}
}
