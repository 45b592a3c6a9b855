package render

import (
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRegisterGet(t *testing.T) {
	c := NewCache()

	img := new(ebiten.Image)
	c.Register("walk", img)
	if got := c.Get("walk"); got != img {
		t.Fatalf("Get returned %p, want %p", got, img)
	}

	if got := c.Get("missing"); got != nil {
		t.Fatalf("Get of unknown key = %p, want nil", got)
	}
	if got := c.Get(""); got != nil {
		t.Fatalf("Get of empty key = %p, want nil", got)
	}

	// Guarded no-ops.
	c.Register("", img)
	c.Register("nil", nil)
	if c.Get("") != nil || c.Get("nil") != nil {
		t.Fatal("guarded Register stored an entry")
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name  string
		cache *Cache
		key   string
	}{
		{"empty_key", NewCache(), ""},
		{"missing_file", NewCache(), "no/such/sheet.png"},
		{"undecodable", NewCacheFS(fstest.MapFS{
			"bad.png": &fstest.MapFile{Data: []byte("not a png")},
		}), "bad.png"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := c.cache.Load(c.key); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadReturnsRegisteredTexture(t *testing.T) {
	c := NewCache()
	img := new(ebiten.Image)
	c.Register("walk.png", img)

	got, err := c.Load("walk.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != img {
		t.Fatalf("Load returned %p, want cached %p", got, img)
	}
}
