package ledsign

import (
	"fmt"

	"github.com/BeatGlow/ledsign/framebuffer"
)

// Panel module geometry.
const (
	ModuleHeight = 32 // rows per module, also the length of one refresh cycle
	halfHeight   = ModuleHeight / 2
)

// Matrix is the scan engine. Every Step refreshes one row of every module in the chain; 32
// steps refresh the whole sign.
type Matrix struct {
	fb      *framebuffer.Framebuffer
	c       Conn
	row     int
	enabled bool
	tiles   int
	buf     []byte
}

// NewMatrix returns an enabled scan engine showing fb on c, starting at row 0.
func NewMatrix(fb *framebuffer.Framebuffer, c Conn) *Matrix {
	return &Matrix{
		fb:      fb,
		c:       c,
		enabled: true,
		tiles:   (fb.Height() + ModuleHeight - 1) / ModuleHeight,
		buf:     make([]byte, fb.Stride()),
	}
}

func (m *Matrix) String() string {
	return fmt.Sprintf("matrix %d module rows on %s", m.tiles, m.c)
}

// Step shifts out the row at the cursor, latches it and advances the cursor. It does nothing
// while the matrix is disabled.
func (m *Matrix) Step() error {
	if !m.enabled {
		return nil
	}

	line := Upper
	if m.row >= halfHeight {
		line = Lower
	}
	mask := m.fb.Mask()
	for tile := 0; tile < m.tiles; tile++ {
		// A short last module shows blank rows below the framebuffer.
		src := m.fb.Row(tile*ModuleHeight + m.row)
		for i := range m.buf {
			var b byte
			if src != nil {
				b = src[i]
			}
			m.buf[i] = b ^ mask
		}
		if err := m.c.Shift(line, m.buf); err != nil {
			return err
		}
	}

	// Blank while the address lines change.
	if err := m.c.Show(false); err != nil {
		return err
	}
	if err := m.c.Address(uint8(m.row) & 0x0f); err != nil {
		return err
	}
	if err := m.c.Latch(); err != nil {
		return err
	}
	if err := m.c.Show(true); err != nil {
		return err
	}

	m.row = (m.row + 1) % ModuleHeight
	return nil
}

// On resumes scanning at the current row.
func (m *Matrix) On() {
	m.enabled = true
}

// Off stops scanning and blanks the output immediately. The cursor is kept.
func (m *Matrix) Off() error {
	m.enabled = false
	return m.c.Show(false)
}

// Enabled reports whether Step refreshes the output.
func (m *Matrix) Enabled() bool {
	return m.enabled
}

// Row is the cursor, the row refreshed by the next Step.
func (m *Matrix) Row() int {
	return m.row
}
