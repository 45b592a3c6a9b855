// Preview renders every animation in a manifest side by side, advancing them
// at their configured frequencies. Manifest edits are picked up live.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/sheetanim/anim"
	"github.com/milk9111/sheetanim/manifest"
	"github.com/milk9111/sheetanim/render"
)

const (
	screenWidth  = 960
	screenHeight = 540
	drawScale    = 4
	cellPadding  = 16
)

// defaultManifest keeps the tool usable with no files on disk; the missing
// image resolves to a generated placeholder sheet.
const defaultManifest = `
animations:
  - name: walk
    image: walk.png
    sheet_size: {col: 3, row: 2}
    sprite_size: {w: 16, h: 16}
    frequency: 12
  - name: idle
    image: idle.png
    sheet_size: {col: 2, row: 2}
    sprite_size: {w: 16, h: 16}
    frequency: 30
`

type Game struct {
	manifestPath string

	reg      *anim.Registry
	textures *render.Cache
	watcher  *manifest.Watcher

	sprites map[string]anim.Sprite
	order   []string
}

func NewGame(manifestPath string) *Game {
	g := &Game{
		manifestPath: manifestPath,
		textures:     render.NewCache(),
	}
	g.reload()

	w, err := manifest.NewWatcher(filepath.Dir(manifestPath))
	if err != nil {
		log.Printf("preview: watch disabled: %v", err)
	} else {
		g.watcher = w
	}
	return g
}

func (g *Game) reload() {
	m, err := manifest.Load(g.manifestPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("preview: %v", err)
		}
		log.Printf("preview: using built-in manifest")
		m, err = manifest.Parse([]byte(defaultManifest))
		if err != nil {
			log.Fatal(err)
		}
	}

	reg := anim.NewRegistry()
	if err := m.Apply(reg, g.textures); err != nil {
		log.Printf("preview: %v; substituting placeholder sheets", err)
		applyWithPlaceholders(m, reg, g.textures)
	}

	g.reg = reg
	g.sprites = make(map[string]anim.Sprite, reg.Len())
	g.order = reg.Names()
	sort.Strings(g.order)
	for _, name := range g.order {
		g.sprites[name] = &anim.SheetSprite{}
	}
}

// applyWithPlaceholders registers every manifest animation over a generated
// sheet sized to its declared geometry, so missing assets never block the tool.
func applyWithPlaceholders(m *manifest.Manifest, reg *anim.Registry, textures *render.Cache) {
	for _, a := range m.Animations {
		tex, err := textures.Load(a.Image)
		if err != nil {
			tex = placeholderSheet(a.SheetSize.Col, a.SheetSize.Row, a.SpriteSize.W, a.SpriteSize.H)
			textures.Register(a.Image, tex)
		}
		opts := []anim.Option{anim.WithFrequency(a.Frequency)}
		if a.Index != nil {
			opts = append(opts, anim.WithIndex(anim.Cell{Col: a.Index.Col, Row: a.Index.Row}))
		}
		if a.StartingIndex != nil {
			opts = append(opts, anim.WithStartingIndex(anim.Cell{Col: a.StartingIndex.Col, Row: a.StartingIndex.Row}))
		}
		reg.Add(a.Name,
			tex,
			anim.Cell{Col: a.SheetSize.Col, Row: a.SheetSize.Row},
			anim.Size{W: a.SpriteSize.W, H: a.SpriteSize.H},
			opts...)
	}
}

// placeholderSheet builds a cols x rows grid where every cell gets a distinct
// hue, so frame order is visible without real art.
func placeholderSheet(cols, rows, cellW, cellH int) *ebiten.Image {
	if cols <= 0 || rows <= 0 || cellW <= 0 || cellH <= 0 {
		return ebiten.NewImage(1, 1)
	}
	sheet := ebiten.NewImage(cols*cellW, rows*cellH)
	n := cols * rows
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			i := col*rows + row
			cell := sheet.SubImage(
				image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH),
			).(*ebiten.Image)
			cell.Fill(color.RGBA{
				R: uint8(55 + 200*i/n),
				G: uint8(200 - 150*i/n),
				B: 0x80,
				A: 0xff,
			})
		}
	}
	return sheet
}

func (g *Game) Update() error {
	if g.watcher != nil {
		select {
		case path, ok := <-g.watcher.Events:
			if ok {
				log.Printf("preview: reloading after change to %s", path)
				g.reload()
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("preview: watcher: %v", err)
			}
		default:
		}
	}

	if err := g.reg.AdvanceAll(g.sprites); err != nil {
		log.Printf("preview: %v", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s    FPS: %.2f", g.manifestPath, ebiten.ActualFPS()))

	x := float64(cellPadding)
	for _, name := range g.order {
		sprite, ok := g.sprites[name].(*anim.SheetSprite)
		if !ok {
			continue
		}
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(drawScale, drawScale)
		opts.GeoM.Translate(x, cellPadding*3)
		sprite.Draw(screen, opts)

		ebitenutil.DebugPrintAt(screen, name, int(x), cellPadding*2)
		x += float64(sprite.Source.Dx()*drawScale + cellPadding)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	manifestPath := flag.String("manifest", "preview.yaml", "animation manifest to preview")
	flag.Parse()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("sheetanim preview")

	game := NewGame(*manifestPath)
	if game.watcher != nil {
		defer game.watcher.Close()
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
