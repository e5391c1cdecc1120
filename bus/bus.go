package bus

import (
	"log"
)

// Address range boundaries and mirror masks.
const (
	RAM                = uint16(0x0000)
	RAM_MIRRORS_END    = uint16(0x1FFF)
	PPU_REGISTERS      = uint16(0x2000)
	PPU_REGISTERS_END  = uint16(0x3FFF)
	PRG_ROM            = uint16(0x8000)
	PRG_ROM_BANK       = 0x4000 // A 16K program image mirrors into both halves.
	RAM_MIRROR_MASK    = uint16(0b0000_0111_1111_1111)
	PPU_MIRROR_MASK    = uint16(0b0010_0000_0000_0111)
)

// RESET_VECTOR is the little-endian address the CPU loads into its program
// counter on reset.
const RESET_VECTOR = uint16(0xFFFC)

// Bus routes byte-level reads and writes to work RAM, the peripheral
// register window, and program storage. One CPU exclusively owns one Bus
// for the lifetime of a run.
type Bus struct {
	vram [2048]byte
	prg  []byte

	reset    uint16
	hasReset bool
}

// New creates a Bus backed by the given read-only program image. The image
// is the already-parsed program bank of a cartridge; a nil image leaves
// program storage unmapped, for self-contained test programs.
func New(prg []byte) (b *Bus) {
	b = &Bus{
		prg: prg,
	}

	return
}

// PointReset overrides the reset vector, so that programs loaded into work
// memory can be executed without a full program image.
func (b *Bus) PointReset(addr uint16) {
	b.reset = addr
	b.hasReset = true
}

// readPrg reads one byte from program storage, applying 16K mirroring.
func (b *Bus) readPrg(addr uint16) byte {
	addr -= PRG_ROM
	if len(b.prg) == PRG_ROM_BANK && addr >= PRG_ROM_BANK {
		addr %= PRG_ROM_BANK
	}
	if int(addr) >= len(b.prg) {
		log.Printf("bus: ignoring read of unmapped program storage at 0x%04X", addr+PRG_ROM)
		return 0
	}

	return b.prg[addr]
}

// Read returns the byte at addr, applying the mirroring rules of each range.
// Reads outside every defined range are tolerated and return zero.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr <= RAM_MIRRORS_END:
		return b.vram[addr&RAM_MIRROR_MASK]
	case addr <= PPU_REGISTERS_END:
		// Peripheral stub: registers mirror every 8 bytes
		// (addr & PPU_MIRROR_MASK), but the device model is absent,
		// so every register reads as zero.
		return 0
	case addr >= PRG_ROM:
		if b.hasReset {
			switch addr {
			case RESET_VECTOR:
				return byte(b.reset)
			case RESET_VECTOR + 1:
				return byte(b.reset >> 8)
			}
		}
		return b.readPrg(addr)
	default:
		log.Printf("bus: ignoring read at 0x%04X", addr)
		return 0
	}
}

// Write stores value at addr. Writes into program storage return
// ErrReadOnly; writes outside every defined range are discarded.
func (b *Bus) Write(addr uint16, value byte) (err error) {
	switch {
	case addr <= RAM_MIRRORS_END:
		b.vram[addr&RAM_MIRROR_MASK] = value
	case addr <= PPU_REGISTERS_END:
		// Peripheral stub: the write is discarded.
	case addr >= PRG_ROM:
		err = ErrReadOnly(addr)
	default:
		log.Printf("bus: ignoring write at 0x%04X", addr)
	}

	return
}

// ReadWord reads a little-endian 16-bit value at addr.
func (b *Bus) ReadWord(addr uint16) uint16 {
	low := uint16(b.Read(addr))
	high := uint16(b.Read(addr + 1))

	return (high << 8) | low
}

// WriteWord writes a little-endian 16-bit value at addr.
func (b *Bus) WriteWord(addr uint16, value uint16) (err error) {
	err = b.Write(addr, byte(value))
	if err != nil {
		return
	}
	err = b.Write(addr+1, byte(value>>8))

	return
}
