package ingest

import (
	"fmt"

	"github.com/go-errors/errors"
	pkgTerm "github.com/pkg/term"
)

// DefaultBaud is the default serial line speed.
const DefaultBaud = 115200

// Serial is a serial port in raw mode.
type Serial struct {
	*pkgTerm.Term
	name string
	baud int
}

// OpenSerial opens the serial device name at baud in raw mode.
func OpenSerial(name string, baud int) (*Serial, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	t, err := pkgTerm.Open(name, pkgTerm.Speed(baud), pkgTerm.RawMode)
	if err != nil {
		return nil, errors.WrapPrefix(err, "ingest: open serial "+name, 0)
	}
	if t == nil {
		return nil, errors.New("ingest: nil serial port")
	}
	return &Serial{Term: t, name: name, baud: baud}, nil
}

func (s *Serial) String() string {
	return fmt.Sprintf("serial %s %d baud", s.name, s.baud)
}

// Close drains pending output and closes the port.
func (s *Serial) Close() error {
	_ = s.Term.Flush()
	return s.Term.Close()
}
