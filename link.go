package ledsign

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ledsign/conn"
)

// SPIConfig describes the SPI bus used to send frames to a sign controller that listens as an
// SPI slave.
type SPIConfig struct {
	Bus       int
	Device    int
	Mode      conn.SPIMode
	SpeedHz   uint32
	BatchSize uint
	CE        gpio.PinOut // optional, driven low around every write
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	Mode:      conn.SPIMode0,
	SpeedHz:   1_000_000,
	BatchSize: 4096,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
}

// SPILink writes raw frame bytes to the SPI bus.
type SPILink struct {
	bus       *conn.SPI
	cs        gpio.PinOut
	batchSize uint
}

// OpenSPILink opens the SPI bus described by config.
func OpenSPILink(config *SPIConfig) (*SPILink, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("ledsign: invalid SPI speed %dHz", config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}
	if err = c.SetMode(config.Mode); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetBitsPerWord(8); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &SPILink{
		bus:       c,
		cs:        config.CE,
		batchSize: config.BatchSize,
	}, nil
}

func (l *SPILink) String() string {
	return fmt.Sprintf("SPI link %s", l.bus)
}

func (l *SPILink) Close() error {
	return l.bus.Close()
}

func (l *SPILink) updateCS(level gpio.Level) error {
	if l.cs == nil {
		return nil
	}
	return l.cs.Out(level)
}

// Write sends p in one chip select cycle, split into batches of at most BatchSize bytes.
func (l *SPILink) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return
	}
	if err = l.updateCS(gpio.Low); err != nil {
		return
	}
	defer func() {
		if csErr := l.updateCS(gpio.High); err == nil {
			err = csErr
		}
	}()

	if debug && len(p) > int(l.batchSize) {
		log.Printf("write %d bytes of data in %d chunks", len(p), (len(p)+int(l.batchSize)-1)/int(l.batchSize))
	}
	for len(p) > 0 {
		chunk := p
		if len(chunk) > int(l.batchSize) {
			chunk = chunk[:l.batchSize]
		}
		if err = l.bus.Tx(chunk, nil); err != nil {
			return
		}
		n += len(chunk)
		p = p[len(chunk):]
	}
	return
}
