package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestMonoImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoImage(size.X, size.Y)
	}, MonoModel)
}

func TestMonoImageLayout(t *testing.T) {
	i := NewMonoImage(192, 32)
	if v := len(i.Pix); v != 192*32/8 {
		t.Fatalf("expected %d bytes of pixel storage, got %d", 192*32/8, v)
	}

	tests := []struct {
		x, y  int
		index int
		mask  byte
	}{
		{0, 0, 0, 0x80},
		{7, 0, 0, 0x01},
		{8, 0, 1, 0x80},
		{191, 0, 23, 0x01},
		{0, 1, 24, 0x80},
		{13, 5, 5*24 + 1, 0x04},
		{191, 31, 31*24 + 23, 0x01},
	}
	for _, test := range tests {
		index, mask, ok := i.PixAddr(test.x, test.y)
		if !ok {
			t.Errorf("pixel (%d,%d) reported out of bounds", test.x, test.y)
			continue
		}
		if index != test.index || mask != test.mask {
			t.Errorf("pixel (%d,%d) at index %d mask %#02x, expected index %d mask %#02x",
				test.x, test.y, index, mask, test.index, test.mask)
		}
	}

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {192, 0}, {0, 32}, {1000, 1000}} {
		if _, _, ok := i.PixAddr(p.X, p.Y); ok {
			t.Errorf("pixel %s reported in bounds", p)
		}
	}
}

func TestMonoImageSetBitIsolated(t *testing.T) {
	i := NewMonoImage(64, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 64; x++ {
			i.Clear()
			if !i.SetBit(x, y, true) {
				t.Fatalf("SetBit(%d,%d) rejected an in-bounds pixel", x, y)
			}
			for j, b := range i.Pix {
				index, mask, _ := i.PixAddr(x, y)
				want := byte(0)
				if j == index {
					want = mask
				}
				if b != want {
					t.Fatalf("after SetBit(%d,%d) byte %d is %#02x, expected %#02x", x, y, j, b, want)
				}
			}

			i.Fill(On)
			i.SetBit(x, y, false)
			if i.Bit(x, y) {
				t.Fatalf("pixel (%d,%d) still set after clearing", x, y)
			}
			for yy := 0; yy < 16; yy++ {
				for xx := 0; xx < 64; xx++ {
					if (xx != x || yy != y) && !i.Bit(xx, yy) {
						t.Fatalf("clearing (%d,%d) also cleared (%d,%d)", x, y, xx, yy)
					}
				}
			}
		}
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		image.Point{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(192, 32),
		image.Pt(256, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 || x >= test.X || y >= test.Y {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := monoModel(i.At(x, y)); v != Off {
						itt.Fatalf("pixel (%d,%d) is not dark", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
