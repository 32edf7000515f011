// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/canvas"
)

// FontURL is the virtual file the bundled name font is registered under.
const FontURL = "fonts/goregular.ttf"

// Sprite is an engo texture usable as a canvas.Image.
type Sprite struct {
	*common.Texture
}

// Bounds implements canvas.Image.
func (s *Sprite) Bounds() image.Rectangle {
	if s == nil || s.Texture == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, int(s.Width()), int(s.Height()))
}

// Loader loads sprites through engo's file system. It needs a GL context, so
// it is only usable once the scene is set up.
type Loader struct{}

// Load implements assets.Loader.
func (Loader) Load(_, path string) (canvas.Image, error) {
	if err := engo.Files.Load(path); err != nil {
		return nil, fmt.Errorf("failed to read sprite: %w", err)
	}
	tex, err := common.LoadedSprite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}
	return &Sprite{Texture: tex}, nil
}

// PlaceholderLoader builds flat stand-in textures instead of reading files.
type PlaceholderLoader struct {
	TileSize int
}

// Load implements assets.Loader.
func (l PlaceholderLoader) Load(name, _ string) (canvas.Image, error) {
	img := assets.Placeholder(name, l.TileSize)
	if img == nil {
		return nil, fmt.Errorf("no placeholder for %q", name)
	}
	return &Sprite{Texture: convertToEngoTexture(img)}, nil
}

// convertToEngoTexture uploads an image as a single texture.
func convertToEngoTexture(img *image.NRGBA) *common.Texture {
	obj := common.NewImageObject(img)
	tex := common.NewTextureSingle(obj)
	return &tex
}

// FontCache holds one preloaded face per pixel size. Every family is drawn
// with the bundled Go Regular face.
type FontCache struct {
	registered bool
	fonts      map[float64]*common.Font
}

// NewFontCache creates an empty cache.
func NewFontCache() *FontCache {
	return &FontCache{fonts: make(map[float64]*common.Font)}
}

// Register makes the bundled font available to engo. It is safe to call
// more than once.
func (c *FontCache) Register() error {
	if c.registered {
		return nil
	}
	if err := engo.Files.LoadReaderData(FontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to register font: %w", err)
	}
	c.registered = true
	return nil
}

// Font returns the face for size, creating it on first use.
func (c *FontCache) Font(size float64) (*common.Font, error) {
	if size <= 0 {
		size = canvas.DefaultFont.Size
	}
	if f, ok := c.fonts[size]; ok {
		return f, nil
	}
	if err := c.Register(); err != nil {
		return nil, err
	}

	f := &common.Font{
		URL:  FontURL,
		FG:   color.White,
		Size: size,
	}
	if err := f.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to create %gpx font: %w", size, err)
	}
	c.fonts[size] = f
	return f, nil
}

var (
	_ assets.Loader = Loader{}
	_ assets.Loader = PlaceholderLoader{}
	_ canvas.Image  = (*Sprite)(nil)
)
