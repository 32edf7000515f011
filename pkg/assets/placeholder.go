// pkg/assets/placeholder.go
package assets

import (
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
)

// Kind is what a sprite depicts.
type Kind int

const (
	KindUnknown Kind = iota
	KindSelfTank
	KindOtherTank
	KindTurret
	KindBullet
	KindTile
	KindPowerup
)

// Nominal sprite sizes in pixels.
const (
	TankWidth   = 50
	TankHeight  = 60
	PickupSize  = 30
	turretWidth = 6
)

// Classify returns the kind of sprite a logical name refers to.
func Classify(name string) Kind {
	switch name {
	case SelfTank:
		return KindSelfTank
	case OtherTank:
		return KindOtherTank
	case SelfTurret, OtherTurret:
		return KindTurret
	case Bullet:
		return KindBullet
	case Tile:
		return KindTile
	}
	if _, ok := SplitPowerup(name); ok {
		return KindPowerup
	}
	return KindUnknown
}

// Size returns the nominal sprite size for a kind.
func Size(k Kind, tileSize int) (int, int) {
	switch k {
	case KindSelfTank, KindOtherTank, KindTurret:
		return TankWidth, TankHeight
	case KindTile:
		return tileSize, tileSize
	case KindUnknown:
		return 0, 0
	default:
		return PickupSize, PickupSize
	}
}

var (
	selfColor   = color.NRGBA{40, 90, 200, 255}
	otherColor  = color.NRGBA{190, 50, 40, 255}
	treadColor  = color.NRGBA{30, 30, 30, 255}
	turretColor = color.NRGBA{60, 60, 60, 255}
	bulletColor = color.NRGBA{240, 200, 40, 255}
	tileColor   = color.NRGBA{110, 140, 90, 255}
	groutColor  = color.NRGBA{90, 115, 75, 255}
)

// Placeholder draws a flat stand-in for the named sprite, sized like the real
// art, so a client can run without image files. It returns nil for names
// Classify does not know.
func Placeholder(name string, tileSize int) *image.NRGBA {
	kind := Classify(name)
	w, h := Size(kind, tileSize)
	if w <= 0 || h <= 0 {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	switch kind {
	case KindSelfTank, KindOtherTank:
		body := otherColor
		if kind == KindSelfTank {
			body = selfColor
		}
		fill(img, image.Rect(0, 0, w, h), treadColor)
		fill(img, image.Rect(0, 8, w, h-8), body)
	case KindTurret:
		// The barrel points along +x from the pivot at the center.
		cx, cy := w/2, h/2
		fill(img, image.Rect(cx-8, cy-8, cx+8, cy+8), turretColor)
		fill(img, image.Rect(cx, cy-turretWidth/2, w, cy+turretWidth/2), turretColor)
	case KindBullet:
		disc(img, w/2, h/2, w/6, bulletColor)
	case KindTile:
		fill(img, img.Bounds(), groutColor)
		fill(img, image.Rect(1, 1, w-1, h-1), tileColor)
	case KindPowerup:
		diamond(img, powerupColor(name))
	}
	return img
}

// powerupColor derives a stable, saturated color from the sprite name.
func powerupColor(name string) color.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	return color.NRGBA{
		R: uint8(96 + sum%160),
		G: uint8(96 + (sum>>8)%160),
		B: uint8(96 + (sum>>16)%160),
		A: 255,
	}
}

func fill(img *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func disc(img *image.NRGBA, cx, cy, r int, c color.Color) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}

func diamond(img *image.NRGBA, c color.Color) {
	b := img.Bounds()
	cx, cy := b.Dx()/2, b.Dy()/2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if abs(x-cx)+abs(y-cy) <= cx-2 {
				img.Set(x, y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
