//go:build cgo

package sim

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig tunes the preview window.
type WindowConfig struct {
	Title string
	Scale int // screen pixels per LED
	TPS   int // window updates per second

	// StepsPerTick is the number of times step is called per window update.
	StepsPerTick int
}

// DefaultWindowConfig refreshes the whole sign twice per update at 60 updates per second.
var DefaultWindowConfig = WindowConfig{
	Title:        "ledsign",
	Scale:        4,
	TPS:          60,
	StepsPerTick: 2 * 32,
}

// Lit and dark LED colors.
var (
	LitColor  = color.RGBA{R: 0xff, G: 0x30, B: 0x10, A: 0xff}
	DarkColor = color.RGBA{R: 0x20, G: 0x08, B: 0x08, A: 0xff}
)

// RunWindow shows p in a desktop window, calling step from the window's update loop. It blocks
// until the window is closed, step fails or ctx is done.
func RunWindow(ctx context.Context, p *Panel, step func() error, config *WindowConfig) error {
	if config == nil {
		config = new(WindowConfig)
		*config = DefaultWindowConfig
	}
	if config.Scale <= 0 {
		config.Scale = DefaultWindowConfig.Scale
	}
	if config.TPS <= 0 {
		config.TPS = DefaultWindowConfig.TPS
	}
	if config.StepsPerTick <= 0 {
		config.StepsPerTick = DefaultWindowConfig.StepsPerTick
	}

	r := p.Bounds()
	g := &panelGame{ctx: ctx, p: p, step: step, steps: config.StepsPerTick}
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowSize(r.Dx()*config.Scale, r.Dy()*config.Scale)
	ebiten.SetTPS(config.TPS)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

type panelGame struct {
	ctx   context.Context
	p     *Panel
	step  func() error
	steps int
	img   *image.RGBA
	out   *ebiten.Image
}

func (g *panelGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.step == nil {
		return nil
	}
	for i := 0; i < g.steps; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *panelGame) Draw(screen *ebiten.Image) {
	r := g.p.Bounds()
	if g.img == nil {
		g.img = image.NewRGBA(r)
		g.out = ebiten.NewImage(r.Dx(), r.Dy())
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if g.p.Lit(x, y) {
				g.img.SetRGBA(x, y, LitColor)
			} else {
				g.img.SetRGBA(x, y, DarkColor)
			}
		}
	}
	g.out.WritePixels(g.img.Pix)
	screen.DrawImage(g.out, nil)
}

func (g *panelGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	r := g.p.Bounds()
	return r.Dx(), r.Dy()
}
