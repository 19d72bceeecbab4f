// Package ioctl issues Linux ioctl requests.
package ioctl

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Mode is the data direction of a request, seen from user space.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command is an encoded request number.
type Command uintptr

// Encode builds the request number for nr with an argument of size bytes.
func Encode(mode Mode, size uint16, nr uintptr) Command {
	return Command(mode)<<30 | Command(size&0x3fff)<<16 | Command(nr&0xffff)
}

func (c Command) Mode() Mode   { return Mode(c >> 30 & 0x03) }
func (c Command) Size() uint16 { return uint16(c >> 16 & 0x3fff) }

func (c Command) String() string {
	var dir string
	if c.Mode()&Write != 0 {
		dir += " write"
	}
	if c.Mode()&Read != 0 {
		dir += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) 0x%04x", dir, c.Size(), uintptr(c&0xffff))
}

// Do issues request nr on fd with v as its argument; the size is taken from v's type.
func Do[T any](fd uintptr, mode Mode, nr uintptr, v *T) error {
	cmd := Encode(mode, uint16(unsafe.Sizeof(*v)), nr)
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(cmd), uintptr(unsafe.Pointer(v))); errno != 0 {
		return fmt.Errorf("%s failed: %w", cmd, errno)
	}
	return nil
}

// Call is a plain ioctl system call.
func Call(fd uintptr, cmd Command, arg uintptr) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(cmd), arg); errno != 0 {
		return fmt.Errorf("%s failed: %w", cmd, errno)
	}
	return nil
}
