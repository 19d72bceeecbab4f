// Package glyph holds the sign's character bitmaps.
//
// Every glyph is an 8-row bitmap, one byte per row, leftmost pixel in the most significant bit,
// drawn in a 6x8 cell. Codes 0x20-0x7E come from a fixed built-in table; codes 0x00-0x1F are
// blank until overridden at runtime.
package glyph

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/ledsign/protocol"
)

// Cell geometry.
const (
	Width  = 6 // including one column of spacing on the right
	Height = 8 // including one row of spacing below
)

// Slots is the number of overridable control codes, one per SET_CHARACTER index.
const Slots = protocol.Slots

// Printable range of the built-in table.
const (
	First byte = 0x20
	Last  byte = 0x7e
)

// Errors
var (
	ErrSlot = errors.New("glyph: control code slot out of range")
)

// Bitmap is one glyph, row 0 at the top.
type Bitmap [Height]byte

// Bit reports whether the pixel at column x, row y is set.
func (b Bitmap) Bit(x, y int) bool {
	if x < 0 || x >= 8 || y < 0 || y >= Height {
		return false
	}
	return b[y]&(0x80>>uint(x)) != 0
}

// Table maps character codes to bitmaps. The zero value has all control codes blank.
type Table struct {
	control [Slots]Bitmap
}

// Lookup returns the bitmap for code. The returned ok is false for codes without a glyph
// (0x7F and above).
func (t *Table) Lookup(code byte) (Bitmap, bool) {
	switch {
	case code < Slots:
		return t.control[code], true
	case code >= First && code <= Last:
		return builtin[code-First], true
	default:
		return Bitmap{}, false
	}
}

// Override replaces the bitmap of control code index with rows. Missing rows are blank and
// rows beyond Height are ignored.
func (t *Table) Override(index byte, rows []byte) error {
	if index >= Slots {
		return fmt.Errorf("%w: %d", ErrSlot, index)
	}
	var b Bitmap
	copy(b[:], rows)
	t.control[index] = b
	return nil
}

// Reset blanks every control code.
func (t *Table) Reset() {
	t.control = [Slots]Bitmap{}
}

// Builtin returns the built-in bitmap for a printable ASCII code.
func Builtin(code byte) (Bitmap, bool) {
	if code < First || code > Last {
		return Bitmap{}, false
	}
	return builtin[code-First], true
}
