// Package ingest is the asynchronous producer side of the sign: it copies bytes from a serial
// port, stdin or any other reader into the ingest queue and counts complete frames.
package ingest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/go-errors/errors"

	"github.com/BeatGlow/ledsign/protocol"
	"github.com/BeatGlow/ledsign/ring"
)

// DefaultReadSize is the default read buffer size.
const DefaultReadSize = 64

// dropLogInterval limits the dropped byte warnings.
const dropLogInterval = time.Second

// Producer feeds one queue. Only one Producer may run per queue.
type Producer struct {
	queue    *ring.Queue
	frames   *ring.FrameCounter
	log      *slog.Logger
	readSize int

	// counters, owned by the goroutine in Run
	bytes, pushed, dropped uint64
}

// NewProducer returns a producer for queue, adding to frames for every ETX received. A nil
// logger uses slog.Default().
func NewProducer(queue *ring.Queue, frames *ring.FrameCounter, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		queue:    queue,
		frames:   frames,
		log:      logger,
		readSize: DefaultReadSize,
	}
}

// Push queues one byte. A byte that does not fit is dropped and Push returns false.
//
// Every ETX is counted, queued or not. A full queue holding no ETX would otherwise never be
// consumed and the sign would stop accepting frames.
func (p *Producer) Push(b byte) bool {
	p.bytes++
	if b == protocol.ETX {
		defer p.frames.Add()
	}
	if !p.queue.Push(b) {
		p.dropped++
		return false
	}
	p.pushed++
	return true
}

// Run copies r into the queue until r is exhausted, fails, or ctx is done. A blocked read is
// only interrupted by closing r. Run returns nil at EOF or when ctx is done.
func (p *Producer) Run(ctx context.Context, r io.Reader) error {
	var (
		buf      = make([]byte, p.readSize)
		lastDrop time.Time
		reported uint64
	)
	defer func() {
		p.log.Debug("ingest stopped", "bytes", p.bytes, "queued", p.pushed, "dropped", p.dropped)
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			p.Push(b)
		}
		if p.dropped != reported && time.Since(lastDrop) >= dropLogInterval {
			p.log.Warn("ingest queue full, bytes dropped", "dropped", p.dropped-reported, "total", p.dropped)
			reported, lastDrop = p.dropped, time.Now()
		}

		if err == io.EOF {
			return nil
		} else if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.WrapPrefix(err, "ingest: read", 0)
		}
	}
}

// Bytes, Queued and Dropped count the bytes read, queued and dropped. They must not be called
// while Run is active.
func (p *Producer) Bytes() uint64 { return p.bytes }

func (p *Producer) Queued() uint64 { return p.pushed }

func (p *Producer) Dropped() uint64 { return p.dropped }
