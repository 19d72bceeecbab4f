// Package conn implements the Linux spidev transport used to send frames to a sign controller
// that listens as an SPI slave.
package conn

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"github.com/BeatGlow/ledsign/internal/ioctl"
)

const spiDevPath = "/dev/spidev"

// Definitions from <linux/spi/spidev.h>
const (
	spiCPHA = 0x01
	spiCPOL = 0x02
)

type SPIMode uint8

const (
	SPIMode0 SPIMode = 0
	SPIMode1 SPIMode = spiCPHA
	SPIMode2 SPIMode = spiCPOL
	SPIMode3 SPIMode = spiCPOL | spiCPHA
)

// Request numbers, 'k' << 8 | nr.
const (
	spiIOCMessage     = 0x6b00
	spiIOCMode        = 0x6b01
	spiIOCBitsPerWord = 0x6b03
	spiIOCMaxSpeedHz  = 0x6b04
)

// spiTransfer is struct spi_ioc_transfer.
type spiTransfer struct {
	txBuf       uint64
	rxBuf       uint64
	length      uint32
	speedHz     uint32
	delayUsecs  uint16
	bitsPerWord uint8
	csChange    uint8
	txNBits     uint8
	rxNBits     uint8
	wordDelay   uint8
	_           uint8
}

// SPI is an open spidev device.
type SPI struct {
	f           *os.File
	fd          uintptr
	name        string
	mode        SPIMode
	bitsPerWord uint8
	maxSpeedHz  uint32
}

// OpenSPI opens the numbered spi bus with the numbered device. The device often corresponds to the CS pin for that bus.
func OpenSPI(bus, device int) (*SPI, error) {
	name := fmt.Sprintf("%s%d.%d", spiDevPath, bus, device)
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	c := &SPI{
		f:    f,
		fd:   f.Fd(),
		name: name,
	}
	if err = ioctl.Do(c.fd, ioctl.Read, spiIOCMode, &c.mode); err == nil {
		if err = ioctl.Do(c.fd, ioctl.Read, spiIOCBitsPerWord, &c.bitsPerWord); err == nil {
			err = ioctl.Do(c.fd, ioctl.Read, spiIOCMaxSpeedHz, &c.maxSpeedHz)
		}
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("conn: %s: %w", name, err)
	}
	return c, nil
}

func (c *SPI) Close() error {
	return c.f.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("%s mode=%d bits per word=%d max speed=%dHz", c.name, c.mode, c.bitsPerWord, c.maxSpeedHz)
}

func (c *SPI) Mode() SPIMode {
	return c.mode
}

func (c *SPI) SetMode(mode SPIMode) error {
	mode &= 0x0f
	if err := ioctl.Do(c.fd, ioctl.Write, spiIOCMode, &mode); err != nil {
		return err
	}

	var test SPIMode
	if err := ioctl.Do(c.fd, ioctl.Read, spiIOCMode, &test); err != nil {
		return err
	}
	if test != mode {
		return fmt.Errorf("conn: SPI attempted to set mode %#02x, but mode %#02x is in use", mode, test)
	}

	c.mode = mode
	return nil
}

func (c *SPI) BitsPerWord() uint8 {
	return c.bitsPerWord
}

func (c *SPI) SetBitsPerWord(bits uint8) error {
	if bits < 8 || bits > 32 {
		return fmt.Errorf("conn: SPI bits per word need to be 8 or more and 32 or less, got %d", bits)
	}
	if c.bitsPerWord != bits {
		if err := ioctl.Do(c.fd, ioctl.Write, spiIOCBitsPerWord, &bits); err != nil {
			return err
		}
		c.bitsPerWord = bits
	}
	return nil
}

func (c *SPI) MaxSpeed() int {
	return int(c.maxSpeedHz)
}

func (c *SPI) SetMaxSpeed(v int) error {
	if v <= 0 {
		return nil
	}
	u := uint32(v)
	if c.maxSpeedHz != u {
		if err := ioctl.Do(c.fd, ioctl.Write, spiIOCMaxSpeedHz, &u); err != nil {
			return err
		}
		c.maxSpeedHz = u
	}
	return nil
}

// Tx runs one full duplex transfer. r may be nil; otherwise it must be as long as w.
func (c *SPI) Tx(w, r []byte) error {
	if len(w) == 0 {
		return nil
	}
	if r != nil && len(r) != len(w) {
		return fmt.Errorf("conn: SPI read buffer is %d bytes, need %d", len(r), len(w))
	}
	tr := newTransfer(w, r, c.maxSpeedHz, c.bitsPerWord)
	err := ioctl.Do(c.fd, ioctl.Write, spiIOCMessage, &tr)
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	return err
}

func newTransfer(w, r []byte, speedHz uint32, bits uint8) spiTransfer {
	tr := spiTransfer{
		txBuf:       uint64(uintptr(unsafe.Pointer(unsafe.SliceData(w)))),
		length:      uint32(len(w)),
		speedHz:     speedHz,
		bitsPerWord: bits,
	}
	if r != nil {
		tr.rxBuf = uint64(uintptr(unsafe.Pointer(unsafe.SliceData(r))))
	}
	return tr
}

func (c *SPI) Read(b []byte) (n int, err error) {
	return c.f.Read(b)
}

func (c *SPI) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}
