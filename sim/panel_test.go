package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/ledsign"
	"github.com/BeatGlow/ledsign/protocol"
)

func newTestSign(t *testing.T, w, h int) (*Panel, *ledsign.Sign) {
	t.Helper()
	p := NewPanel(w, h)
	s, err := ledsign.New(p, &ledsign.Config{Width: w, Height: h})
	require.NoError(t, err)
	return p, s
}

func refresh(t *testing.T, s *ledsign.Sign) {
	t.Helper()
	for i := 0; i < ledsign.ModuleHeight; i++ {
		require.NoError(t, s.Poll())
	}
}

func assertShows(t *testing.T, p *Panel, s *ledsign.Sign) {
	t.Helper()
	fb := s.Framebuffer()
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.Lit(x, y) != p.Lit(x, y) {
				t.Fatalf("pixel (%d, %d): panel %t, framebuffer %t", x, y, p.Lit(x, y), fb.Lit(x, y))
			}
		}
	}
}

func TestPanelShowsFramebuffer(t *testing.T) {
	p, s := newTestSign(t, 192, 32)
	s.Print(1, "Where's my bus?")
	s.Print(4, "~{|}~")
	s.Framebuffer().FillRect(100, 10, 150, 20, true)

	refresh(t, s)
	assert.True(t, p.Shown())
	assert.Equal(t, uint64(32), p.Latches())
	assertShows(t, p, s)
}

func TestPanelReversed(t *testing.T) {
	p, s := newTestSign(t, 64, 32)
	s.Print(2, "Hi")
	s.Framebuffer().Reverse()

	refresh(t, s)
	assert.True(t, p.Lit(63, 31))
	assertShows(t, p, s)
}

func TestPanelStackedModules(t *testing.T) {
	p, s := newTestSign(t, 32, 64)
	fb := s.Framebuffer()
	require.NoError(t, fb.SetPixel(0, 0, true))
	require.NoError(t, fb.SetPixel(31, 17, true))
	require.NoError(t, fb.SetPixel(5, 40, true))
	require.NoError(t, fb.SetPixel(9, 63, true))

	refresh(t, s)
	assertShows(t, p, s)
}

func TestPanelHalfHeightModule(t *testing.T) {
	p, s := newTestSign(t, 32, 16)
	s.Framebuffer().FillRect(0, 0, 32, 16, true)

	refresh(t, s)
	assertShows(t, p, s)
}

func TestPanelUpdatesAfterFrame(t *testing.T) {
	p, s := newTestSign(t, 64, 32)
	refresh(t, s)
	assertShows(t, p, s)

	for _, b := range []byte{protocol.STX, 4, 3, 'O', 'K', protocol.ETX} {
		require.True(t, s.Queue().Push(b))
	}
	s.Frames().Add()
	refresh(t, s)
	refresh(t, s)
	assert.Zero(t, s.Frames().Pending())
	assertShows(t, p, s)
	assert.True(t, s.Framebuffer().Pixel(0, 16+1), "O drawn on line 3")
}

func TestPanelOffBlanks(t *testing.T) {
	p, s := newTestSign(t, 64, 32)
	s.Framebuffer().FillRect(0, 0, 64, 32, true)
	refresh(t, s)
	require.True(t, p.Lit(10, 10))

	s.DisplayOff()
	assert.False(t, p.Shown())
	assert.False(t, p.Lit(10, 10))

	latches := p.Latches()
	refresh(t, s)
	assert.Equal(t, latches, p.Latches())

	s.DisplayOn()
	require.NoError(t, s.Poll())
	assert.True(t, p.Lit(10, 10))
}

func TestPanelImage(t *testing.T) {
	p, s := newTestSign(t, 32, 32)
	require.NoError(t, s.Framebuffer().SetPixel(3, 4, true))
	refresh(t, s)

	r, _, _, _ := p.At(3, 4).RGBA()
	assert.NotZero(t, r)
	r, _, _, _ = p.At(4, 4).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, 32, p.Bounds().Dx())
}

func TestPanelClose(t *testing.T) {
	p, s := newTestSign(t, 32, 32)
	refresh(t, s)
	require.NoError(t, s.Close())
	assert.False(t, p.Shown())
}
