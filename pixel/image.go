package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is the container used by the image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoImage is a 1-bit per pixel monochrome image, packed row-major with the leftmost pixel of
// every byte in the most significant bit.
type MonoImage struct {
	Buffer
}

func NewMonoImage(w, h int) *MonoImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 7) / 8 // round up to whole bytes
	return &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

// PixAddr returns the byte index and bit mask of the pixel at (x, y). The returned ok is false,
// and index and mask are zero, if (x, y) lies outside the image.
func (p *MonoImage) PixAddr(x, y int) (index int, mask byte, ok bool) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return 0, 0, false
	}
	x -= p.Rect.Min.X
	y -= p.Rect.Min.Y
	return y*p.Stride + x/8, 0x80 >> uint(x%8), true
}

// Bit reports whether the pixel at (x, y) is set. Pixels outside the image are never set.
func (p *MonoImage) Bit(x, y int) bool {
	index, mask, ok := p.PixAddr(x, y)
	return ok && p.Pix[index]&mask != 0
}

// SetBit sets or clears the pixel at (x, y). It returns false, leaving the image untouched, if
// (x, y) lies outside the image.
func (p *MonoImage) SetBit(x, y int, on bool) bool {
	index, mask, ok := p.PixAddr(x, y)
	if !ok {
		return false
	}
	if on {
		p.Pix[index] |= mask
	} else {
		p.Pix[index] &^= mask
	}
	return true
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Bit(x, y)}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, monoModel(c).(Mono).On)
}

func (p *MonoImage) Fill(c color.Color) {
	value := monoModel(c).(Mono).Level()
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
)
