package ingest

import (
	"io"
	"os"

	"github.com/go-errors/errors"
	"golang.org/x/term"
)

// Stdin returns standard input as a byte source. When stdin is a terminal it is switched to raw
// mode so control bytes such as STX (Ctrl-B) and ETX (Ctrl-C) arrive unmodified; restore undoes
// that and must be called before exiting.
func Stdin() (r io.Reader, restore func() error, err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return os.Stdin, func() error { return nil }, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, errors.WrapPrefix(err, "ingest: raw stdin", 0)
	}
	return os.Stdin, func() error { return term.Restore(fd, old) }, nil
}
