package conn

import (
	"testing"
	"unsafe"
)

func TestTransferLayout(t *testing.T) {
	if size := unsafe.Sizeof(spiTransfer{}); size != 32 {
		t.Fatalf("expected struct spi_ioc_transfer to be 32 bytes, got %d", size)
	}
	if off := unsafe.Offsetof(spiTransfer{}.length); off != 16 {
		t.Errorf("expected len at offset 16, got %d", off)
	}
	if off := unsafe.Offsetof(spiTransfer{}.bitsPerWord); off != 26 {
		t.Errorf("expected bits_per_word at offset 26, got %d", off)
	}
}

func TestNewTransfer(t *testing.T) {
	w := []byte{0x02, 0x06, 0x03}
	tr := newTransfer(w, nil, 1_000_000, 8)
	if tr.length != 3 {
		t.Errorf("expected length 3, got %d", tr.length)
	}
	if tr.txBuf == 0 {
		t.Error("expected tx buffer address")
	}
	if tr.rxBuf != 0 {
		t.Errorf("expected no rx buffer, got %#x", tr.rxBuf)
	}
	if tr.speedHz != 1_000_000 || tr.bitsPerWord != 8 {
		t.Errorf("expected 1MHz 8 bits, got %dHz %d bits", tr.speedHz, tr.bitsPerWord)
	}
}

func TestOpenSPIMissing(t *testing.T) {
	if _, err := OpenSPI(99, 99); err == nil {
		t.Error("expected error opening a missing device")
	}
}
