package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Baseline is the cell row a rasterized glyph sits on; the row below is left for descenders.
const Baseline = 6

// Threshold is the minimum coverage for a rasterized pixel to be lit.
const Threshold = 0x80

// rowMask keeps rasterized pixels inside the 6 pixel cell.
const rowMask = 0xfc

var ErrNoGlyph = errors.New("glyph: font has no glyph for rune")

// ParseFont parses TrueType font data.
func ParseFont(ttf []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	return f, nil
}

// DefaultFont is the Go Regular font.
func DefaultFont() (*truetype.Font, error) {
	return ParseFont(goregular.TTF)
}

// Rasterize renders r at size points (72 DPI, so points are pixels) into a cell bitmap
// suitable for a control code override.
func Rasterize(f *truetype.Font, size float64, r rune) (Bitmap, error) {
	if f.Index(r) == 0 {
		return Bitmap{}, fmt.Errorf("%w %q", ErrNoGlyph, r)
	}

	dst := image.NewGray(image.Rect(0, 0, Width, Height))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.White)
	if _, err := ctx.DrawString(string(r), freetype.Pt(0, Baseline)); err != nil {
		return Bitmap{}, fmt.Errorf("glyph: draw %q: %w", r, err)
	}

	var b Bitmap
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if dst.GrayAt(x, y).Y >= Threshold {
				b[y] |= 0x80 >> uint(x)
			}
		}
		b[y] &= rowMask
	}
	return b, nil
}
