package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_RamMirroring(t *testing.T) {
	assert := assert.New(t)

	b := New(nil)

	assert.NoError(b.Write(0x0000, 0x42))
	assert.Equal(byte(0x42), b.Read(0x0000))
	assert.Equal(byte(0x42), b.Read(0x0800))
	assert.Equal(byte(0x42), b.Read(0x1000))
	assert.Equal(byte(0x42), b.Read(0x1800))

	// Writes through a mirror land in the same 2K.
	assert.NoError(b.Write(0x1801, 0x17))
	assert.Equal(byte(0x17), b.Read(0x0001))
}

func TestBus_Words(t *testing.T) {
	assert := assert.New(t)

	b := New(nil)

	assert.NoError(b.WriteWord(0x0010, 0x1234))
	assert.Equal(byte(0x34), b.Read(0x0010))
	assert.Equal(byte(0x12), b.Read(0x0011))
	assert.Equal(uint16(0x1234), b.ReadWord(0x0010))
}

func TestBus_PeripheralStub(t *testing.T) {
	assert := assert.New(t)

	b := New(nil)

	// The register window reads as zero and swallows writes.
	assert.NoError(b.Write(0x2000, 0xFF))
	assert.Equal(byte(0), b.Read(0x2000))
	assert.Equal(byte(0), b.Read(0x3FFF))
}

func TestBus_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	b := New(nil)

	// Diagnostic-only: tolerated, zero on read, discarded on write.
	assert.NoError(b.Write(0x4123, 0xFF))
	assert.Equal(byte(0), b.Read(0x4123))
}

func TestBus_PrgRom(t *testing.T) {
	assert := assert.New(t)

	prg := make([]byte, 2*PRG_ROM_BANK)
	prg[0] = 0xA9
	prg[PRG_ROM_BANK] = 0x60
	b := New(prg)

	assert.Equal(byte(0xA9), b.Read(0x8000))
	assert.Equal(byte(0x60), b.Read(0xC000))
}

func TestBus_PrgRomMirroring(t *testing.T) {
	assert := assert.New(t)

	prg := make([]byte, PRG_ROM_BANK)
	prg[0] = 0xA9
	prg[0x123] = 0x55
	b := New(prg)

	// A 16K image appears in both halves of the top 32K.
	assert.Equal(byte(0xA9), b.Read(0x8000))
	assert.Equal(byte(0xA9), b.Read(0xC000))
	assert.Equal(byte(0x55), b.Read(0x8123))
	assert.Equal(byte(0x55), b.Read(0xC123))
}

func TestBus_PrgRomReadOnly(t *testing.T) {
	assert := assert.New(t)

	b := New(make([]byte, PRG_ROM_BANK))

	err := b.Write(0x8000, 0x01)
	assert.Error(err)
	assert.True(errors.Is(err, ErrReadOnly(0)))

	err = b.WriteWord(0xFFFC, 0x0600)
	assert.Error(err)
}

func TestBus_PointReset(t *testing.T) {
	assert := assert.New(t)

	b := New(nil)
	b.PointReset(0x0600)

	assert.Equal(uint16(0x0600), b.ReadWord(RESET_VECTOR))
}
