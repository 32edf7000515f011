package ebiten

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/render/fonts"
)

// Loader reads sprites from image files.
type Loader struct{}

// Load implements assets.Loader.
func (Loader) Load(_, path string) (canvas.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite: %w", err)
	}
	return img, nil
}

// PlaceholderLoader builds flat stand-in sprites instead of reading files.
type PlaceholderLoader struct {
	TileSize int
}

// Load implements assets.Loader.
func (l PlaceholderLoader) Load(name, _ string) (canvas.Image, error) {
	img := assets.Placeholder(name, l.TileSize)
	if img == nil {
		return nil, fmt.Errorf("no placeholder for %q", name)
	}
	return ebiten.NewImageFromImage(img), nil
}

// FaceCache wraps the bundled font's faces for ebiten's text renderer.
type FaceCache struct {
	*fonts.Cache
	text map[float64]*text.GoXFace
}

// NewFaceCache parses the bundled font.
func NewFaceCache() (*FaceCache, error) {
	c, err := fonts.NewCache()
	if err != nil {
		return nil, err
	}
	return &FaceCache{Cache: c, text: make(map[float64]*text.GoXFace)}, nil
}

// TextFace returns the face for size, creating it on first use.
func (c *FaceCache) TextFace(size float64) (*text.GoXFace, error) {
	size = fonts.Size(size)
	if f, ok := c.text[size]; ok {
		return f, nil
	}
	xf, err := c.Face(size)
	if err != nil {
		return nil, err
	}
	f := text.NewGoXFace(xf)
	c.text[size] = f
	return f, nil
}

var (
	_ assets.Loader = Loader{}
	_ assets.Loader = PlaceholderLoader{}
)
