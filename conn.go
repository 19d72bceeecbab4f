package ledsign

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Line selects one of the two serial data inputs of a panel module.
type Line uint8

// Data lines.
const (
	Upper Line = iota // R1, rows 0-15 of every 32 row module
	Lower             // R2, rows 16-31
)

func (l Line) String() string {
	if l == Lower {
		return "R2"
	}
	return "R1"
}

// Conn is the connection interface for driving the panel chain.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Shift clocks data into the panel chain on line, most significant bit first.
	Shift(line Line, data []byte) error

	// Address selects the row pair lit by the next latch, 0-15.
	Address(row uint8) error

	// Latch commits the shifted data to the row drivers.
	Latch() error

	// Show toggles the output enable.
	Show(bool) error
}

// GPIOConfig names the pins of a bit-banged panel connection. Names are resolved with
// gpioreg.ByName, so the host must have been initialised first.
type GPIOConfig struct {
	CLK string
	R1  string
	R2  string
	A   string
	B   string
	C   string
	D   string
	OE  string // active low
	STB string // latch
}

// DefaultGPIOConfig is a Raspberry Pi wiring that leaves the SPI0 and I²C pins free.
var DefaultGPIOConfig = GPIOConfig{
	CLK: "GPIO17",
	R1:  "GPIO5",
	R2:  "GPIO13",
	A:   "GPIO22",
	B:   "GPIO23",
	C:   "GPIO24",
	D:   "GPIO25",
	OE:  "GPIO18",
	STB: "GPIO4",
}

// GPIOPins are the resolved pins of a bit-banged panel connection.
type GPIOPins struct {
	CLK     gpio.PinOut
	R1, R2  gpio.PinOut
	Address [4]gpio.PinOut // A, B, C, D
	OE      gpio.PinOut
	STB     gpio.PinOut
}

type gpioConn struct {
	pins GPIOPins
}

// OpenGPIO resolves the pins named in config and returns a connection driving them.
func OpenGPIO(config *GPIOConfig) (Conn, error) {
	if config == nil {
		config = new(GPIOConfig)
		*config = DefaultGPIOConfig
	}

	var (
		pins GPIOPins
		err  error
	)
	for _, p := range []struct {
		dst  *gpio.PinOut
		name string
		what string
	}{
		{&pins.CLK, config.CLK, "CLK"},
		{&pins.R1, config.R1, "R1"},
		{&pins.R2, config.R2, "R2"},
		{&pins.Address[0], config.A, "A"},
		{&pins.Address[1], config.B, "B"},
		{&pins.Address[2], config.C, "C"},
		{&pins.Address[3], config.D, "D"},
		{&pins.OE, config.OE, "OE"},
		{&pins.STB, config.STB, "STB"},
	} {
		if *p.dst, err = lookupPin(p.what, p.name); err != nil {
			return nil, err
		}
	}
	return NewGPIO(pins)
}

func lookupPin(what, name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil || p == gpio.INVALID {
		return nil, fmt.Errorf("%w: %s pin %q not found", ErrPin, what, name)
	}
	return p, nil
}

// NewGPIO returns a connection driving already resolved pins. The output starts disabled.
func NewGPIO(pins GPIOPins) (Conn, error) {
	for _, p := range append([]gpio.PinOut{pins.CLK, pins.R1, pins.R2, pins.OE, pins.STB}, pins.Address[:]...) {
		if p == nil || p == gpio.INVALID {
			return nil, ErrPin
		}
	}

	c := &gpioConn{pins: pins}
	if err := c.Show(false); err != nil {
		return nil, err
	}
	if err := pins.STB.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := pins.CLK.Out(gpio.High); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *gpioConn) String() string {
	return fmt.Sprintf("GPIO clk=%s r1=%s r2=%s oe=%s stb=%s", c.pins.CLK, c.pins.R1, c.pins.R2, c.pins.OE, c.pins.STB)
}

func (c *gpioConn) Close() error {
	return c.Show(false)
}

func (c *gpioConn) Shift(line Line, data []byte) (err error) {
	out := c.pins.R1
	if line == Lower {
		out = c.pins.R2
	}
	for _, b := range data {
		for bit := 0; bit < 8; bit++ {
			if err = c.pins.CLK.Out(gpio.Low); err != nil {
				return
			}
			if err = out.Out(gpio.Level(b&(0x80>>uint(bit)) != 0)); err != nil {
				return
			}
			if err = c.pins.CLK.Out(gpio.High); err != nil {
				return
			}
		}
	}
	return
}

func (c *gpioConn) Address(row uint8) error {
	for i, p := range c.pins.Address {
		if err := p.Out(gpio.Level(row&(1<<uint(i)) != 0)); err != nil {
			return err
		}
	}
	return nil
}

func (c *gpioConn) Latch() error {
	for _, l := range []gpio.Level{gpio.Low, gpio.High, gpio.Low} {
		if err := c.pins.STB.Out(l); err != nil {
			return err
		}
	}
	return nil
}

func (c *gpioConn) Show(show bool) error {
	return c.pins.OE.Out(gpio.Level(!show))
}
