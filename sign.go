package ledsign

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/BeatGlow/ledsign/draw"
	"github.com/BeatGlow/ledsign/framebuffer"
	"github.com/BeatGlow/ledsign/glyph"
	"github.com/BeatGlow/ledsign/pixel"
	"github.com/BeatGlow/ledsign/protocol"
	"github.com/BeatGlow/ledsign/ring"
)

// Sign ties the framebuffer, scan engine, glyph table and protocol decoder to one connection.
//
// All methods except those of the returned Queue and Frames producer side must be called from
// the goroutine running the sign's main loop.
type Sign struct {
	c       Conn
	fb      *framebuffer.Framebuffer
	matrix  *Matrix
	glyphs  glyph.Table
	decoder *protocol.Decoder
	queue   *ring.Queue
	frames  ring.FrameCounter
	config  Config
	log     *slog.Logger
	halted  bool

	requests chan func()
}

// New returns a sign driving c. A nil config uses DefaultConfig.
func New(c Conn, config *Config) (*Sign, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if config.Width == 0 {
		config.Width = DefaultWidth
	}
	if config.Height == 0 {
		config.Height = DefaultHeight
	}
	if config.QueueSize == 0 {
		config.QueueSize = ring.DefaultSize
	}
	if config.QueueSize < 2 {
		return nil, fmt.Errorf("ledsign: queue size %d too small", config.QueueSize)
	}

	fb, err := framebuffer.New(config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	if config.Reversed {
		fb.Reverse()
	}

	s := &Sign{
		c:      c,
		fb:     fb,
		matrix: NewMatrix(fb, c),
		queue:  ring.New(config.QueueSize),
		config: *config,
		log:    config.Logger,

		requests: make(chan func()),
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.decoder = protocol.NewDecoder(s)
	if debug {
		s.decoder.OnEvent = s.logEvent
	}
	return s, nil
}

func (s *Sign) String() string {
	return fmt.Sprintf("sign %dx%d (%dx%d characters) on %s", s.fb.Width(), s.fb.Height(), s.Columns(), s.Lines(), s.c)
}

// Close blanks the output and closes the connection.
func (s *Sign) Close() error {
	if !s.halted {
		if err := s.matrix.Off(); err != nil {
			return err
		}
		s.halted = true
	}
	return s.c.Close()
}

// Framebuffer is the sign's image.
func (s *Sign) Framebuffer() *framebuffer.Framebuffer { return s.fb }

// Matrix is the sign's scan engine.
func (s *Sign) Matrix() *Matrix { return s.matrix }

// Glyphs is the sign's character table.
func (s *Sign) Glyphs() *glyph.Table { return &s.glyphs }

// Decoder is the sign's protocol decoder.
func (s *Sign) Decoder() *protocol.Decoder { return s.decoder }

// Queue is the ingest queue. Its producer side may be used from one other goroutine.
func (s *Sign) Queue() *ring.Queue { return s.queue }

// Frames counts frame terminators received but not yet decoded. The producer must call Add for
// every ETX it receives, including one dropped because the queue was full.
func (s *Sign) Frames() *ring.FrameCounter { return &s.frames }

// Columns is the number of characters per text line.
func (s *Sign) Columns() int { return s.fb.Width() / glyph.Width }

// Lines is the number of text lines.
func (s *Sign) Lines() int { return s.fb.Height() / glyph.Height }

// PutChar draws the glyph for code with its top left corner at (x, y). Codes without a glyph
// leave the cell untouched.
func (s *Sign) PutChar(x, y int, code byte) {
	b, ok := s.glyphs.Lookup(code)
	if !ok {
		return
	}
	s.fb.BlitGlyph(x, y, glyph.Width, glyph.Height, b[:])
}

// PrintLine draws text on the 1-based text line, one cell per byte, stopping at a NUL byte or
// the right edge of the sign. Cells past the end of text keep their pixels.
func (s *Sign) PrintLine(line byte, text []byte) {
	y := (int(line) - 1) * glyph.Height
	for i, code := range text {
		if code == 0 || i >= s.Columns() {
			break
		}
		s.PutChar(i*glyph.Width, y, code)
	}
}

// Print is PrintLine for strings.
func (s *Sign) Print(line byte, text string) {
	s.PrintLine(line, []byte(text))
}

// SetCharacter replaces the bitmap of a control code. Indices outside the table are ignored.
func (s *Sign) SetCharacter(index byte, bitmap []byte) {
	if err := s.glyphs.Override(index, bitmap); err != nil {
		s.log.Debug("set character ignored", "index", index, "error", err)
	}
}

// ClearDisplay clears the framebuffer.
func (s *Sign) ClearDisplay() {
	s.fb.Clear()
}

// DisplayOn resumes scanning.
func (s *Sign) DisplayOn() {
	s.matrix.On()
}

// DisplayOff blanks the sign.
func (s *Sign) DisplayOff() {
	if err := s.matrix.Off(); err != nil {
		s.log.Warn("display off failed", "error", err)
	}
}

// TestPattern draws a border around the sign and diagonal stripes inside it, shifted by offset.
func (s *Sign) TestPattern(offset int) {
	r := s.fb.Bounds()
	draw.Box(s.fb, r.Inset(1), pixel.Off)
	draw.Rectangle(s.fb, r, pixel.On)

	// Stripe pixels satisfy x+y == sum, clipped to the inside of the border.
	maxX, maxY := r.Max.X-2, r.Max.Y-2
	for sum := 2; sum <= maxX+maxY; sum++ {
		if (sum+offset)%4 != 0 {
			continue
		}
		x0, x1 := max(1, sum-maxY), min(maxX, sum-1)
		draw.Line(s.fb, image.Pt(x0, sum-x0), image.Pt(x1, sum-x1), pixel.On)
	}
}

// Poll runs one iteration of the main loop: refresh one row, then decode one queued byte if a
// complete frame is waiting.
func (s *Sign) Poll() error {
	if err := s.matrix.Step(); err != nil {
		return err
	}
	if s.frames.Pending() == 0 {
		return nil
	}
	if b, ok := s.queue.Pop(); ok {
		if b == protocol.ETX {
			s.frames.Done()
		}
		s.decoder.Feed(b)
	}
	return nil
}

// Run polls until ctx is done or the connection fails. It returns nil when ctx is done.
func (s *Sign) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if s.config.StepInterval > 0 {
		ticker := time.NewTicker(s.config.StepInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var (
		steps int
		since = time.Now()
	)
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case f := <-s.requests:
				f()
				continue
			case <-tick:
			}
		} else if steps&0x3ff == 0 {
			select {
			case <-ctx.Done():
				return nil
			case f := <-s.requests:
				f()
			default:
			}
		}

		if err := s.Poll(); err != nil {
			return err
		}

		if steps++; steps&0x3ff == 0 {
			if elapsed := time.Since(since); elapsed >= time.Second {
				s.log.Debug("refresh",
					"steps_per_second", int(float64(steps)/elapsed.Seconds()),
					"cycles_per_second", int(float64(steps)/elapsed.Seconds()/ModuleHeight),
					"queued", s.queue.Len(),
					"dropped", s.queue.Dropped())
				steps, since = 0, time.Now()
			}
		}
	}
}

// Do runs f on the goroutine polling the sign and waits for it to return. Polling must be done
// by Run or by a loop calling Service.
func (s *Sign) Do(ctx context.Context, f func()) error {
	done := make(chan struct{})
	select {
	case s.requests <- func() { f(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Service runs a request passed to Do, if one is waiting. Loops calling Poll directly must call
// it regularly.
func (s *Sign) Service() {
	select {
	case f := <-s.requests:
		f()
	default:
	}
}

func (s *Sign) logEvent(ev protocol.Event, act *protocol.Action) {
	s.log.Debug("frame", "event", ev, "command", act.Command, "param", act.Param, "len", act.Len)
}
