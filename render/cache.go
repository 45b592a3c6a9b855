// Package render caches sheet textures by key and loads them from disk or an
// optional fallback filesystem (typically an embed.FS).
package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Cache stores textures by key.
type Cache struct {
	images map[string]*ebiten.Image
	fsys   fs.FS
}

// NewCache creates an empty cache that loads from the working directory.
func NewCache() *Cache {
	return &Cache{images: make(map[string]*ebiten.Image)}
}

// NewCacheFS creates a cache that falls back to fsys when a key is not
// present on disk. Disk wins so edited assets take effect without a rebuild.
func NewCacheFS(fsys fs.FS) *Cache {
	return &Cache{images: make(map[string]*ebiten.Image), fsys: fsys}
}

// Register stores a texture by key.
func (c *Cache) Register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	c.images[key] = img
}

// Get returns a cached texture, or nil when the key is unknown.
func (c *Cache) Get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return c.images[key]
}

// Load returns the texture for key, decoding it on first use. The key is
// treated as a file path, tried on disk first and then in the fallback
// filesystem.
func (c *Cache) Load(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := c.images[key]; img != nil {
		return img, nil
	}
	data, err := c.read(key)
	if err != nil {
		return nil, fmt.Errorf("render: load %s: %w", key, err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", key, err)
	}
	img := ebiten.NewImageFromImage(decoded)
	c.images[key] = img
	return img, nil
}

func (c *Cache) read(key string) ([]byte, error) {
	if data, err := os.ReadFile(key); err == nil {
		return data, nil
	}
	if c.fsys != nil {
		return fs.ReadFile(c.fsys, key)
	}
	return nil, os.ErrNotExist
}
