// Package protocol decodes and encodes the sign's framed command stream.
//
// A frame is
//
//	STX(0x02) CMD [PARAM] [DATA...] ETX(0x03)
//
// where PARAM is present only for commands that address a line or a glyph slot and DATA is at
// most [MaxData] raw bytes. There is no escaping, so STX and ETX cannot appear in a payload.
// Frames are fire-and-forget: malformed input is discarded and the decoder returns to waiting
// for the next STX.
package protocol

import "fmt"

// Framing bytes.
const (
	STX byte = 0x02
	ETX byte = 0x03
)

// MaxData is the largest payload a frame can carry.
const MaxData = 63

// Command is a frame opcode.
type Command byte

// Supported commands.
const (
	PrintLine    Command = 4  // param: line number (1-based), data: text
	ClearLine    Command = 5  // param: line number; accepted but has no effect
	ClearDisplay Command = 6  // no param, no data
	SetCharacter Command = 7  // param: control code 0-31, data: 8 bitmap rows
	DisplayOn    Command = 8  // no param, no data
	DisplayOff   Command = 9  // no param, no data
	RGB          Command = 10 // reserved, decoded as unknown
)

func (c Command) String() string {
	switch c {
	case PrintLine:
		return "PRINT_LINE"
	case ClearLine:
		return "CLEAR_LINE"
	case ClearDisplay:
		return "CLEAR_DISP"
	case SetCharacter:
		return "SET_CHARACTER"
	case DisplayOn:
		return "DISPLAY_ON"
	case DisplayOff:
		return "DISPLAY_OFF"
	case RGB:
		return "RGB"
	default:
		return fmt.Sprintf("Command(%d)", byte(c))
	}
}

// HasParam reports whether the command is followed by a parameter byte.
func (c Command) HasParam() bool {
	switch c {
	case PrintLine, ClearLine, SetCharacter:
		return true
	}
	return false
}

// HasData reports whether the command carries a payload terminated by ETX.
func (c Command) HasData() bool {
	return c == PrintLine || c == SetCharacter
}

// Phase is the decoder position within a frame.
type Phase uint8

const (
	WaitForSTX Phase = iota
	GetCommand
	GetParam
	GetData
)

func (p Phase) String() string {
	switch p {
	case WaitForSTX:
		return "WAIT_FOR_STX"
	case GetCommand:
		return "GET_COMMAND"
	case GetParam:
		return "GET_PARAM"
	case GetData:
		return "GET_DATA"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Event tells what consuming a byte did.
type Event uint8

const (
	// None means the byte advanced the current frame.
	None Event = iota

	// Dispatch means a complete command is ready in the returned Action.
	Dispatch

	// Ignored means a stray byte outside of any frame was skipped.
	Ignored

	// Unknown means the frame was discarded because of an unrecognized command.
	Unknown

	// Overflow means the frame was discarded because its payload exceeded MaxData.
	Overflow
)

func (e Event) String() string {
	switch e {
	case None:
		return "none"
	case Dispatch:
		return "dispatch"
	case Ignored:
		return "ignored"
	case Unknown:
		return "unknown command"
	case Overflow:
		return "payload overflow"
	default:
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
}

// State is the complete decoder state. The zero value waits for STX.
type State struct {
	Phase   Phase
	Command Command
	Param   byte
	Len     int
	Data    [MaxData]byte
}

// Action is a decoded command.
type Action struct {
	Command Command
	Param   byte
	Len     int
	Payload [MaxData]byte
}

// Data returns the payload bytes.
func (a *Action) Data() []byte {
	return a.Payload[:a.Len]
}

// Next consumes one byte and returns the following state. When ev is Dispatch, act holds the
// command to execute; otherwise act is the zero Action.
func Next(s State, b byte) (next State, ev Event, act Action) {
	switch s.Phase {
	case WaitForSTX:
		if b != STX {
			return s, Ignored, act
		}
		return State{Phase: GetCommand}, None, act

	case GetCommand:
		cmd := Command(b)
		switch cmd {
		case PrintLine, ClearLine, SetCharacter:
			return State{Phase: GetParam, Command: cmd}, None, act
		case ClearDisplay, DisplayOn, DisplayOff:
			return State{}, Dispatch, Action{Command: cmd}
		default:
			return State{}, Unknown, act
		}

	case GetParam:
		switch s.Command {
		case PrintLine, SetCharacter:
			s.Phase = GetData
			s.Param = b
			return s, None, act
		case ClearLine:
			return State{}, Dispatch, Action{Command: ClearLine, Param: b}
		default:
			return State{}, Unknown, act
		}

	case GetData:
		if b == ETX {
			act = Action{Command: s.Command, Param: s.Param, Len: s.Len, Payload: s.Data}
			return State{}, Dispatch, act
		}
		if s.Len == MaxData {
			return State{}, Overflow, act
		}
		s.Data[s.Len] = b
		s.Len++
		return s, None, act

	default:
		return State{}, Ignored, act
	}
}
