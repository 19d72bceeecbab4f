package protocol

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrPayloadTooLong = errors.New("protocol: payload longer than 63 bytes")
	ErrFramingByte    = errors.New("protocol: payload contains STX or ETX")
	ErrSlot           = errors.New("protocol: character slot must be below 32")
	ErrCommand        = errors.New("protocol: unsupported command")
)

// Slots is the number of overridable control-code glyphs.
const Slots = 32

// Encode builds a frame. Param is only written for commands that take one and data only for
// commands that carry a payload.
func Encode(cmd Command, param byte, data []byte) ([]byte, error) {
	switch cmd {
	case PrintLine, ClearLine, ClearDisplay, SetCharacter, DisplayOn, DisplayOff:
	default:
		return nil, fmt.Errorf("%w %s", ErrCommand, cmd)
	}

	frame := make([]byte, 0, 4+len(data))
	frame = append(frame, STX, byte(cmd))
	if cmd.HasParam() {
		frame = append(frame, param)
	}
	if cmd.HasData() {
		if len(data) > MaxData {
			return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, len(data))
		}
		for i, b := range data {
			if b == STX || b == ETX {
				return nil, fmt.Errorf("%w at offset %d", ErrFramingByte, i)
			}
		}
		frame = append(frame, data...)
	}
	return append(frame, ETX), nil
}

// EncodePrintLine builds a PRINT_LINE frame for the 1-based text line.
func EncodePrintLine(line byte, text string) ([]byte, error) {
	return Encode(PrintLine, line, []byte(text))
}

// EncodeClearLine builds a CLEAR_LINE frame.
func EncodeClearLine(line byte) ([]byte, error) {
	return Encode(ClearLine, line, nil)
}

// EncodeClearDisplay builds a CLEAR_DISP frame.
func EncodeClearDisplay() []byte {
	return []byte{STX, byte(ClearDisplay), ETX}
}

// EncodeSetCharacter builds a SET_CHARACTER frame replacing control code index.
func EncodeSetCharacter(index byte, bitmap []byte) ([]byte, error) {
	if index >= Slots {
		return nil, fmt.Errorf("%w, got %d", ErrSlot, index)
	}
	return Encode(SetCharacter, index, bitmap)
}

// EncodeDisplayOn builds a DISPLAY_ON frame.
func EncodeDisplayOn() []byte {
	return []byte{STX, byte(DisplayOn), ETX}
}

// EncodeDisplayOff builds a DISPLAY_OFF frame.
func EncodeDisplayOff() []byte {
	return []byte{STX, byte(DisplayOff), ETX}
}
