// Package fonts provides the bundled name-label font at any pixel size.
package fonts

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/opd-ai/go-tanks/pkg/canvas"
)

// Cache holds one face per pixel size, all built from the bundled Go Regular
// font whatever family is asked for. It is not safe for concurrent use.
type Cache struct {
	src   *opentype.Font
	faces map[float64]font.Face
}

// NewCache parses the bundled font.
func NewCache() (*Cache, error) {
	src, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Cache{src: src, faces: make(map[float64]font.Face)}, nil
}

// Size returns the size a request for size is served at. Non-positive sizes
// use the default font size.
func Size(size float64) float64 {
	if size <= 0 {
		return canvas.DefaultFont.Size
	}
	return size
}

// Face returns the face for size, creating it on first use.
func (c *Cache) Face(size float64) (font.Face, error) {
	size = Size(size)
	if f, ok := c.faces[size]; ok {
		return f, nil
	}

	f, err := opentype.NewFace(c.src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %gpx face: %w", size, err)
	}
	c.faces[size] = f
	return f, nil
}

// Len returns the number of faces created so far.
func (c *Cache) Len() int {
	return len(c.faces)
}
