package ioctl

import "testing"

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want Command
	}{
		{"SPI_IOC_RD_MODE", Encode(Read, 1, 0x6b01), 0x80016b01},
		{"SPI_IOC_WR_MODE", Encode(Write, 1, 0x6b01), 0x40016b01},
		{"SPI_IOC_WR_MAX_SPEED_HZ", Encode(Write, 4, 0x6b04), 0x40046b04},
		{"SPI_IOC_MESSAGE(1)", Encode(Write, 32, 0x6b00), 0x40206b00},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if test.cmd != test.want {
				it.Errorf("expected %#08x, got %#08x", uintptr(test.want), uintptr(test.cmd))
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	cmd := Encode(Read|Write, 4, 0x6b04)
	if cmd.Mode() != Read|Write {
		t.Errorf("expected mode %d, got %d", Read|Write, cmd.Mode())
	}
	if cmd.Size() != 4 {
		t.Errorf("expected size 4, got %d", cmd.Size())
	}
	if s, want := cmd.String(), "ioctl write read (4 bytes) 0x6b04"; s != want {
		t.Errorf("expected %q, got %q", want, s)
	}
}
