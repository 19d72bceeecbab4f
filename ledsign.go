// Package ledsign drives a tiled, row-multiplexed LED dot-matrix sign.
//
// A [Sign] owns the framebuffer, the scan engine ([Matrix]), the glyph table and the protocol
// decoder. Bytes arrive asynchronously through a [ring.Queue]; the sign's main loop refreshes
// one row per iteration and consumes queued bytes once a complete frame is pending.
package ledsign

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/BeatGlow/ledsign/ring"
)

var debug bool

func init() {
	debug = os.Getenv("LEDSIGN_DEBUG") != ""
}

// Errors
var (
	ErrPin = errors.New("ledsign: GPIO pin is invalid")
)

// Default sign geometry.
const (
	DefaultWidth  = 192
	DefaultHeight = 32
)

// Config is the sign configuration.
type Config struct {
	// Width of the sign in pixels, a multiple of 32.
	Width int

	// Height of the sign in pixels, a multiple of 16.
	Height int

	// Reversed starts the sign with inverted polarity.
	Reversed bool

	// QueueSize is the number of slots in the ingest queue.
	QueueSize int

	// StepInterval paces the main loop; zero runs it as fast as possible.
	StepInterval time.Duration

	// Logger receives debug output; slog.Default() is used if nil.
	Logger *slog.Logger
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Width:     DefaultWidth,
	Height:    DefaultHeight,
	QueueSize: ring.DefaultSize,
}
