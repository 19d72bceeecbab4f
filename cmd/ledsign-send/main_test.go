package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/ledsign/glyph"
	"github.com/BeatGlow/ledsign/protocol"
)

func execute(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	debugFlag, serialFlag, spiFlag = false, "", ""
	printClearFlag = false
	glyphRuneFlag, glyphFontFlag, glyphSizeFlag = "", "", 8

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return out.Bytes(), err
}

func TestPrint(t *testing.T) {
	out, err := execute(t, "print", "1", "Hi")
	require.NoError(t, err)
	assert.Equal(t, []byte{protocol.STX, 4, 1, 'H', 'i', protocol.ETX}, out)
}

func TestPrintJoinsArgs(t *testing.T) {
	out, err := execute(t, "print", "--clear", "2", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []byte{
		protocol.STX, 6, protocol.ETX,
		protocol.STX, 4, 2, 'a', ' ', 'b', protocol.ETX,
	}, out)
}

func TestPrintTooLong(t *testing.T) {
	_, err := execute(t, "print", "1", string(bytes.Repeat([]byte{'x'}, 64)))
	assert.ErrorIs(t, err, protocol.ErrPayloadTooLong)
}

func TestPrintBadLine(t *testing.T) {
	_, err := execute(t, "print", "first", "x")
	assert.Error(t, err)
}

func TestControlCommands(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want []byte
	}{
		{[]string{"clear"}, []byte{protocol.STX, 6, protocol.ETX}},
		{[]string{"clear-line", "3"}, []byte{protocol.STX, 5, 3, protocol.ETX}},
		{[]string{"on"}, []byte{protocol.STX, 8, protocol.ETX}},
		{[]string{"off"}, []byte{protocol.STX, 9, protocol.ETX}},
		{[]string{"raw", "0xaa", "2", "6", "3"}, []byte{0xaa, protocol.STX, 6, protocol.ETX}},
	} {
		out, err := execute(t, tc.args...)
		require.NoError(t, err, "%v", tc.args)
		assert.Equal(t, tc.want, out, "%v", tc.args)
	}
}

func TestGlyphRows(t *testing.T) {
	out, err := execute(t, "glyph", "1", "0xfc", "0x84", "132")
	require.NoError(t, err)
	assert.Equal(t, []byte{protocol.STX, 7, 1, 0xfc, 0x84, 0x84, protocol.ETX}, out)
}

func TestGlyphErrors(t *testing.T) {
	_, err := execute(t, "glyph", "32", "0xfc")
	assert.ErrorIs(t, err, protocol.ErrSlot)

	_, err = execute(t, "glyph", "1", "0x03")
	assert.ErrorIs(t, err, protocol.ErrFramingByte)

	_, err = execute(t, "glyph", "1", "1", "2", "4", "4", "4", "4", "4", "4", "4")
	assert.Error(t, err)

	_, err = execute(t, "glyph", "--rune", "ab", "1")
	assert.Error(t, err)
}

type glyphRecorder struct {
	index  byte
	bitmap []byte
}

func (r *glyphRecorder) PrintLine(byte, []byte) {}
func (r *glyphRecorder) SetCharacter(index byte, bitmap []byte) {
	r.index, r.bitmap = index, append([]byte(nil), bitmap...)
}
func (r *glyphRecorder) ClearDisplay() {}
func (r *glyphRecorder) DisplayOn()    {}
func (r *glyphRecorder) DisplayOff()   {}

func TestGlyphRune(t *testing.T) {
	out, err := execute(t, "glyph", "--rune", "H", "5")
	require.NoError(t, err)

	rec := new(glyphRecorder)
	d := protocol.NewDecoder(rec)
	_, _ = d.Write(out)
	require.Equal(t, uint64(1), d.Stats().Frames)
	assert.Equal(t, byte(5), rec.index)
	assert.Len(t, rec.bitmap, glyph.Height)
	assert.NotEqual(t, make([]byte, glyph.Height), rec.bitmap)
}

func TestOutputsExclusive(t *testing.T) {
	_, err := execute(t, "--serial", "/dev/null", "--spi", "0.0", "on")
	assert.Error(t, err)
}

func TestParseSPI(t *testing.T) {
	bus, dev, err := parseSPI("1.2")
	require.NoError(t, err)
	assert.Equal(t, 1, bus)
	assert.Equal(t, 2, dev)

	bus, dev, err = parseSPI("0")
	require.NoError(t, err)
	assert.Equal(t, 0, bus)
	assert.Equal(t, 0, dev)

	_, _, err = parseSPI("x.1")
	assert.Error(t, err)
}
