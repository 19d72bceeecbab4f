package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/ledsign/protocol"
)

func TestBuiltinSpace(t *testing.T) {
	b, ok := Builtin(' ')
	require.True(t, ok)
	assert.Equal(t, Bitmap{}, b)
}

func TestBuiltinLetterH(t *testing.T) {
	b, ok := Builtin('H')
	require.True(t, ok)
	assert.Equal(t, Bitmap{0x88, 0x88, 0x88, 0xf8, 0x88, 0x88, 0x88, 0x00}, b)
}

func TestBuiltinExclamation(t *testing.T) {
	b, ok := Builtin('!')
	require.True(t, ok)
	assert.Equal(t, Bitmap{0x20, 0x20, 0x20, 0x20, 0x20, 0x00, 0x20, 0x00}, b)
}

func TestBuiltinStaysInCell(t *testing.T) {
	for c := First; c <= Last; c++ {
		b, ok := Builtin(c)
		require.True(t, ok)
		for y, row := range b {
			assert.Zerof(t, row&0x07, "code %#02x row %d uses the spacing column", c, y)
		}
	}
}

func TestBuiltinOutOfRange(t *testing.T) {
	for _, c := range []byte{0x00, 0x1f, 0x7f, 0x80, 0xff} {
		_, ok := Builtin(c)
		assert.False(t, ok, "code %#02x", c)
	}
}

func TestTableLookup(t *testing.T) {
	var tab Table

	b, ok := tab.Lookup(0x05)
	assert.True(t, ok)
	assert.Equal(t, Bitmap{}, b, "control codes start blank")

	a, _ := Builtin('A')
	b, ok = tab.Lookup('A')
	assert.True(t, ok)
	assert.Equal(t, a, b)

	_, ok = tab.Lookup(0x7f)
	assert.False(t, ok)
	_, ok = tab.Lookup(0xa0)
	assert.False(t, ok)
}

func TestTableOverride(t *testing.T) {
	var tab Table
	require.NoError(t, tab.Override(0x01, []byte{0xfc, 0x84, 0x84, 0x84, 0x84, 0x84, 0xfc, 0x00}))

	b, ok := tab.Lookup(0x01)
	require.True(t, ok)
	assert.Equal(t, Bitmap{0xfc, 0x84, 0x84, 0x84, 0x84, 0x84, 0xfc, 0x00}, b)

	other, _ := tab.Lookup(0x02)
	assert.Equal(t, Bitmap{}, other)
}

func TestTableOverrideShortData(t *testing.T) {
	var tab Table
	require.NoError(t, tab.Override(3, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}))
	require.NoError(t, tab.Override(3, []byte{0x10, 0x20}))

	b, _ := tab.Lookup(3)
	assert.Equal(t, Bitmap{0x10, 0x20}, b)
}

func TestTableOverrideLongData(t *testing.T) {
	var tab Table
	require.NoError(t, tab.Override(31, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))

	b, _ := tab.Lookup(31)
	assert.Equal(t, Bitmap{1, 2, 3, 4, 5, 6, 7, 8}, b)
}

func TestTableOverrideSlot(t *testing.T) {
	var tab Table
	err := tab.Override(32, []byte{0xff})
	assert.ErrorIs(t, err, ErrSlot)

	b, _ := tab.Lookup(' ')
	assert.Equal(t, Bitmap{}, b, "builtin glyphs cannot be overridden")
}

func TestTableReset(t *testing.T) {
	var tab Table
	require.NoError(t, tab.Override(0, []byte{0xff}))
	tab.Reset()

	b, _ := tab.Lookup(0)
	assert.Equal(t, Bitmap{}, b)
}

func TestBitmapBit(t *testing.T) {
	b := Bitmap{0x80, 0x04}
	assert.True(t, b.Bit(0, 0))
	assert.False(t, b.Bit(1, 0))
	assert.True(t, b.Bit(5, 1))
	assert.False(t, b.Bit(-1, 0))
	assert.False(t, b.Bit(0, Height))
}

func TestTableSlotsMatchProtocol(t *testing.T) {
	var table Table
	rows := make([]byte, Height)
	for index := 0; index <= Slots; index++ {
		_, encErr := protocol.EncodeSetCharacter(byte(index), rows)
		tableErr := table.Override(byte(index), rows)
		if index < protocol.Slots {
			assert.NoErrorf(t, encErr, "encode slot %d", index)
			assert.NoErrorf(t, tableErr, "override slot %d", index)
		} else {
			assert.ErrorIsf(t, encErr, protocol.ErrSlot, "encode slot %d", index)
			assert.ErrorIsf(t, tableErr, ErrSlot, "override slot %d", index)
		}
	}
}
