package draw

import (
	"image"
	"image/color"

	"github.com/BeatGlow/ledsign/pixel"
)

// Line draws a line between two points, both inclusive.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w <= 0 {
		return
	}
	bresenham(dst, x, y, x+w-1, y, c)
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h <= 0 {
		return
	}
	bresenham(dst, x, y, x, y+h-1, c)
}

// Rectangle draws the outline of rect. Like [image.Rectangle], Max is exclusive.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	w, h := rect.Dx(), rect.Dy()
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// Box fills every pixel (x, y) with Min.X <= x < Max.X and Min.Y <= y < Max.Y.
//
// The rectangle is not clipped first; pixels outside dst are dropped by dst itself.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.Set(x, y, c)
		}
	}
}

// Bitmap copies a packed 1-bit bitmap of size w x h into dst with its top left corner at
// (x, y). Rows are (w+7)/8 bytes long, leftmost pixel in the most significant bit. Set bits
// are drawn lit, clear bits dark. Rows missing from a short bitmap are left untouched.
func Bitmap(dst Image, x, y, w, h int, bits []byte) {
	if w <= 0 || h <= 0 {
		return
	}
	stride := (w + 7) / 8
	for row := 0; row < h; row++ {
		off := row * stride
		if off+stride > len(bits) {
			return
		}
		for col := 0; col < w; col++ {
			if bits[off+col/8]&(0x80>>uint(col%8)) != 0 {
				dst.Set(x+col, y+row, pixel.On)
			} else {
				dst.Set(x+col, y+row, pixel.Off)
			}
		}
	}
}

func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		dst.Set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
