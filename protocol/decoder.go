package protocol

// Handler executes decoded commands.
type Handler interface {
	// PrintLine renders text on the given 1-based text line.
	PrintLine(line byte, text []byte)

	// SetCharacter replaces the bitmap of control code index.
	SetCharacter(index byte, bitmap []byte)

	// ClearDisplay clears the framebuffer.
	ClearDisplay()

	// DisplayOn enables the display.
	DisplayOn()

	// DisplayOff blanks the display.
	DisplayOff()
}

// Stats counts decoder outcomes.
type Stats struct {
	Frames    uint64 // commands dispatched
	Ignored   uint64 // stray bytes between frames
	Unknown   uint64 // frames dropped for an unrecognized command
	Overflows uint64 // frames dropped for an oversized payload
}

// Decoder feeds bytes through [Next] and hands completed commands to a Handler.
type Decoder struct {
	state   State
	handler Handler
	stats   Stats

	// OnEvent, if set, is called after every byte that completes or discards a frame.
	OnEvent func(Event, *Action)
}

// NewDecoder returns a decoder waiting for STX.
func NewDecoder(h Handler) *Decoder {
	return &Decoder{handler: h}
}

// Feed consumes one byte.
func (d *Decoder) Feed(b byte) Event {
	var (
		ev  Event
		act Action
	)
	d.state, ev, act = Next(d.state, b)

	switch ev {
	case Dispatch:
		d.stats.Frames++
		d.dispatch(&act)
	case Ignored:
		d.stats.Ignored++
	case Unknown:
		d.stats.Unknown++
	case Overflow:
		d.stats.Overflows++
	}
	if ev != None && d.OnEvent != nil {
		d.OnEvent(ev, &act)
	}
	return ev
}

// Write feeds every byte of p. It never fails.
func (d *Decoder) Write(p []byte) (int, error) {
	for _, b := range p {
		d.Feed(b)
	}
	return len(p), nil
}

func (d *Decoder) dispatch(act *Action) {
	if d.handler == nil {
		return
	}
	switch act.Command {
	case PrintLine:
		d.handler.PrintLine(act.Param, act.Data())
	case SetCharacter:
		d.handler.SetCharacter(act.Param, act.Data())
	case ClearDisplay:
		d.handler.ClearDisplay()
	case DisplayOn:
		d.handler.DisplayOn()
	case DisplayOff:
		d.handler.DisplayOff()
	case ClearLine:
		// Accepted with no effect.
	}
}

// State returns the current decoder state.
func (d *Decoder) State() State {
	return d.state
}

// Stats returns the outcome counters.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Reset discards any partial frame.
func (d *Decoder) Reset() {
	d.state = State{}
}
