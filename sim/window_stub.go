//go:build !cgo

package sim

import (
	"context"
	"errors"
)

// WindowConfig tunes the preview window.
type WindowConfig struct {
	Title        string
	Scale        int
	TPS          int
	StepsPerTick int
}

var DefaultWindowConfig = WindowConfig{}

func RunWindow(_ context.Context, _ *Panel, _ func() error, _ *WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
