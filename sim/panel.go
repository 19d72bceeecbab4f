// Package sim simulates the sign hardware.
//
// A Panel stands in for the chain of panel modules: it receives the same shift, address, latch
// and output enable calls as the GPIO connection and reconstructs the image the LEDs would show.
package sim

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/BeatGlow/ledsign"
	"github.com/BeatGlow/ledsign/pixel"
)

// Panel is a simulated chain of 32 row modules. It is safe to read the image from another
// goroutine while the sign drives the panel.
type Panel struct {
	mu      sync.Mutex
	img     *pixel.MonoImage
	tiles   int
	pending [2][][]byte // shifted since the last latch, per data line
	addr    uint8
	shown   bool
	latches uint64
	closed  bool
}

// NewPanel returns a dark panel of width x height pixels.
func NewPanel(width, height int) *Panel {
	return &Panel{
		img:   pixel.NewMonoImage(width, height),
		tiles: (height + ledsign.ModuleHeight - 1) / ledsign.ModuleHeight,
	}
}

func (p *Panel) String() string {
	return fmt.Sprintf("simulated panel %dx%d", p.img.Rect.Dx(), p.img.Rect.Dy())
}

func (p *Panel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = false
	p.closed = true
	return nil
}

// Shift records one module row worth of data. Only the last segment per module is kept, the
// first segment shifted ends up in the first module.
func (p *Panel) Shift(line ledsign.Line, data []byte) error {
	if line > ledsign.Lower {
		return fmt.Errorf("sim: invalid data line %d", line)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	segs := append(p.pending[line], append([]byte(nil), data...))
	if len(segs) > p.tiles {
		segs = segs[len(segs)-p.tiles:]
	}
	p.pending[line] = segs
	return nil
}

func (p *Panel) Address(row uint8) error {
	p.mu.Lock()
	p.addr = row & 0x0f
	p.mu.Unlock()
	return nil
}

// Latch copies the shifted segments into the addressed rows.
func (p *Panel) Latch() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for line, segs := range p.pending {
		offset := int(p.addr)
		if ledsign.Line(line) == ledsign.Lower {
			offset += ledsign.ModuleHeight / 2
		}
		for tile, seg := range segs {
			y := tile*ledsign.ModuleHeight + offset
			if y >= p.img.Rect.Dy() {
				continue
			}
			copy(p.img.Pix[y*p.img.Stride:(y+1)*p.img.Stride], seg)
		}
		p.pending[line] = p.pending[line][:0]
	}
	p.latches++
	return nil
}

func (p *Panel) Show(show bool) error {
	p.mu.Lock()
	p.shown = show
	p.mu.Unlock()
	return nil
}

// Shown reports whether the output is enabled.
func (p *Panel) Shown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}

// Latches is the number of Latch calls.
func (p *Panel) Latches() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latches
}

// Lit reports whether the LED at (x, y) is lit. Nothing is lit while the output is disabled.
func (p *Panel) Lit(x, y int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown && p.img.Bit(x, y)
}

func (p *Panel) Bounds() image.Rectangle { return p.img.Rect }

func (p *Panel) ColorModel() color.Model { return pixel.MonoModel }

func (p *Panel) At(x, y int) color.Color {
	if p.Lit(x, y) {
		return pixel.On
	}
	return pixel.Off
}

// Interface checks.
var (
	_ ledsign.Conn = (*Panel)(nil)
	_ image.Image  = (*Panel)(nil)
)
