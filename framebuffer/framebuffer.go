// Package framebuffer holds the in-memory image of the whole sign.
//
// The framebuffer is a packed 1-bit bitmap (see [pixel.MonoImage]) plus a reverse mask that is
// applied when the image is shown, never to the stored bits. All pixel addressing is derived
// from the declared dimensions; coordinates outside the sign are rejected before any byte of
// the backing storage is touched.
package framebuffer

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/BeatGlow/ledsign/draw"
	"github.com/BeatGlow/ledsign/pixel"
)

// Panel tiling constraints.
const (
	WidthMultiple  = 32
	HeightMultiple = 16
)

// Reverse mask values.
const (
	Normal   byte = 0x00
	Inverted byte = 0xff
)

// Errors
var (
	ErrBounds   = errors.New("framebuffer: out of display bounds")
	ErrGeometry = errors.New("framebuffer: width must be a multiple of 32 and height a multiple of 16")
)

// Framebuffer is the packed bitmap shown on the sign.
type Framebuffer struct {
	img  *pixel.MonoImage
	mask byte
}

// New returns a cleared framebuffer of width x height pixels.
func New(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 || width%WidthMultiple != 0 || height%HeightMultiple != 0 {
		return nil, fmt.Errorf("%w, got %dx%d", ErrGeometry, width, height)
	}
	return &Framebuffer{
		img: pixel.NewMonoImage(width, height),
	}, nil
}

func (fb *Framebuffer) String() string {
	return fmt.Sprintf("framebuffer %dx%d", fb.Width(), fb.Height())
}

// Width in pixels.
func (fb *Framebuffer) Width() int { return fb.img.Rect.Dx() }

// Height in pixels.
func (fb *Framebuffer) Height() int { return fb.img.Rect.Dy() }

// Stride is the number of bytes per pixel row.
func (fb *Framebuffer) Stride() int { return fb.img.Stride }

// Len is the size of the backing storage in bytes, always width*height/8.
func (fb *Framebuffer) Len() int { return len(fb.img.Pix) }

func (fb *Framebuffer) Bounds() image.Rectangle { return fb.img.Bounds() }

func (fb *Framebuffer) ColorModel() color.Model { return pixel.MonoModel }

// At returns the stored (not displayed) color at (x, y).
func (fb *Framebuffer) At(x, y int) color.Color { return fb.img.At(x, y) }

// Set stores c at (x, y); pixels outside the framebuffer are ignored.
func (fb *Framebuffer) Set(x, y int, c color.Color) { fb.img.Set(x, y, c) }

// SetPixel sets or clears the stored pixel at (x, y).
func (fb *Framebuffer) SetPixel(x, y int, on bool) error {
	if !fb.img.SetBit(x, y, on) {
		return ErrBounds
	}
	return nil
}

// Pixel reports whether the stored pixel at (x, y) is set.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.img.Bit(x, y)
}

// Lit reports whether the pixel at (x, y) is lit once the reverse mask is applied.
func (fb *Framebuffer) Lit(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(fb.img.Rect) {
		return false
	}
	return fb.img.Bit(x, y) != (fb.mask != Normal)
}

// FillRect sets every pixel with x1 <= x < x2 and y1 <= y < y2.
func (fb *Framebuffer) FillRect(x1, y1, x2, y2 int, on bool) {
	// image.Rect would swap reversed corners; a reversed range must stay empty.
	draw.Box(fb, image.Rectangle{Min: image.Pt(x1, y1), Max: image.Pt(x2, y2)}, mono(on))
}

// BlitGlyph copies a packed glyph bitmap of w x h pixels to (x, y). Rows are padded to whole
// bytes, leftmost pixel in the most significant bit.
func (fb *Framebuffer) BlitGlyph(x, y, w, h int, bitmap []byte) {
	draw.Bitmap(fb, x, y, w, h, bitmap)
}

// Clear every stored pixel.
func (fb *Framebuffer) Clear() {
	fb.img.Clear()
}

// Reverse inverts the display polarity. The stored bits are unchanged.
func (fb *Framebuffer) Reverse() {
	fb.mask = ^fb.mask
}

// IsReversed returns the current reverse mask; it is non-zero when the display is inverted.
func (fb *Framebuffer) IsReversed() byte {
	return fb.mask
}

// Mask is the byte XORed into every stored byte on its way to the display.
func (fb *Framebuffer) Mask() byte {
	return fb.mask
}

// Row returns the stored bytes of pixel row y, or nil if y is outside the framebuffer. The
// returned slice aliases the framebuffer and must not be modified.
func (fb *Framebuffer) Row(y int) []byte {
	if y < 0 || y >= fb.Height() {
		return nil
	}
	off := y * fb.img.Stride
	return fb.img.Pix[off : off+fb.img.Stride : off+fb.img.Stride]
}

// Dump writes the displayed image as text, one line per pixel row, '#' for lit and '.' for dark.
func (fb *Framebuffer) Dump(w io.Writer) error {
	out := bufio.NewWriter(w)
	line := make([]byte, fb.Width()+1)
	line[len(line)-1] = '\n'
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.Lit(x, y) {
				line[x] = '#'
			} else {
				line[x] = '.'
			}
		}
		if _, err := out.Write(line); err != nil {
			return err
		}
	}
	return out.Flush()
}

func mono(on bool) pixel.Mono {
	if on {
		return pixel.On
	}
	return pixel.Off
}

// Interface checks.
var (
	_ draw.Image = (*Framebuffer)(nil)
)
