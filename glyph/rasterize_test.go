package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterize(t *testing.T) {
	f, err := DefaultFont()
	require.NoError(t, err)

	b, err := Rasterize(f, 8, 'H')
	require.NoError(t, err)
	assert.NotEqual(t, Bitmap{}, b)
	for y, row := range b {
		assert.Zerof(t, row&^rowMask, "row %d outside the cell", y)
		assert.NotEqualf(t, byte(0x02), row, "row %d", y)
		assert.NotEqualf(t, byte(0x03), row, "row %d", y)
	}
}

func TestRasterizeSpace(t *testing.T) {
	f, err := DefaultFont()
	require.NoError(t, err)

	b, err := Rasterize(f, 8, ' ')
	require.NoError(t, err)
	assert.Equal(t, Bitmap{}, b)
}

func TestRasterizeMissingGlyph(t *testing.T) {
	f, err := DefaultFont()
	require.NoError(t, err)

	_, err = Rasterize(f, 8, '\ue000')
	assert.ErrorIs(t, err, ErrNoGlyph)
}

func TestParseFontInvalid(t *testing.T) {
	_, err := ParseFont([]byte("not a font"))
	assert.Error(t, err)
}
