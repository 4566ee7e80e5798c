// Package bus implements the CPU's view of the NES address space: 2 KiB
// of mirrored internal RAM, the PPU's mirrored 8-register window, and
// whatever the cartridge maps above 0x4020. It is the direct
// generalization of the teacher's memory.Bank to the NES memory map
// (memory.Bank modeled the Atari 2600's chip-select wiring; a single
// Bus here replaces that with the fixed NES dispatch table).
package bus

import (
	"fmt"

	"github.com/nesgo/cpu6502/memory"
)

const (
	ramStart = 0x0000
	ramEnd   = 0x1FFF
	ramMask  = 0x07FF

	ppuStart = 0x2000
	ppuEnd   = 0x3FFF
	ppuMask  = 0x0007

	apuIOStart = 0x4000
	apuIOEnd   = 0x401F

	cartStart = 0x4020
	cartEnd   = 0xFFFF
)

// Cartridge is the bus's collaborator for the 0x4020-0xFFFF window.
// Mirroring and mapper behavior are entirely the collaborator's
// responsibility; the bus never interprets cartridge addresses itself.
type Cartridge interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, data uint8)
}

// PPUWindow is the bus's collaborator for the 8 mirrored PPU registers
// at 0x2000-0x3FFF. It is optional: a nil PPUWindow leaves that range
// on open bus, returning whatever was last read or written anywhere on
// the bus, matching the teacher's DatabusVal() convention in
// memory/memory.go.
type PPUWindow interface {
	ReadRegister(index uint8) uint8
	WriteRegister(index uint8, data uint8)
}

// BusError reports an address the bus could not service. Bus itself
// never returns one: with no Cartridge or PPUWindow installed, reads
// of those windows return the open-bus value (LastValue) and writes
// to them are dropped.
type BusError struct {
	Addr uint16
	Op   string
}

// Error implements the interface for error types.
func (e BusError) Error() string {
	return fmt.Sprintf("bus: %s at %#.4x has no collaborator installed", e.Op, e.Addr)
}

// Bus is the CPU's exclusive owner of RAM, the cartridge handle, and
// (optionally) the PPU register window. It is never shared or aliased;
// the CPU holds the only reference to it.
type Bus struct {
	ram  *memory.RAM
	cart Cartridge
	ppu  PPUWindow

	// lastValue is the last byte observed on the bus by any read or
	// write, the open-bus value returned for unmapped reads.
	lastValue uint8
}

// New constructs a Bus with its own 2 KiB internal RAM and the given
// cartridge. ppu may be nil.
func New(cart Cartridge, ppu PPUWindow) *Bus {
	return &Bus{
		ram:  memory.NewRAM(2048),
		cart: cart,
		ppu:  ppu,
	}
}

// Read returns the byte at addr, applying RAM/PPU mirroring and
// dispatching to the cartridge for the cartridge window.
func (b *Bus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr >= ramStart && addr <= ramEnd:
		v = b.ram.Read(addr & ramMask)
	case addr >= ppuStart && addr <= ppuEnd:
		if b.ppu != nil {
			v = b.ppu.ReadRegister(uint8(addr & ppuMask))
		} else {
			v = b.lastValue
		}
	case addr >= cartStart && addr <= cartEnd:
		if b.cart != nil {
			v = b.cart.CPURead(addr)
		} else {
			v = b.lastValue
		}
	default:
		// APU/IO (0x4000-0x401F) and anything else unmapped: open bus.
		v = b.lastValue
	}
	b.lastValue = v
	return v
}

// Write stores val at addr. A write to cartridge space is forwarded to
// the mapper, which may ignore it or treat it as a bank-select
// register; it is never an error.
func (b *Bus) Write(addr uint16, val uint8) {
	b.lastValue = val
	switch {
	case addr >= ramStart && addr <= ramEnd:
		b.ram.Write(addr&ramMask, val)
	case addr >= ppuStart && addr <= ppuEnd:
		if b.ppu != nil {
			b.ppu.WriteRegister(uint8(addr&ppuMask), val)
		}
	case addr >= cartStart && addr <= cartEnd:
		if b.cart != nil {
			b.cart.CPUWrite(addr, val)
		}
	}
}

// ReadU16 performs a little-endian 16-bit read: low byte from addr,
// high byte from addr+1, with the addition wrapping at 16 bits.
func (b *Bus) ReadU16(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// ReadU16PageWrap performs the 6502's buggy indirect 16-bit read: the
// low byte comes from addr, but the high byte comes from
// (addr & 0xFF00) | ((addr+1) & 0x00FF) -- the fetch never carries
// into the next page. Required for JMP (indirect) and the zero-page
// pointer fetches of (d,X) and (d),Y.
func (b *Bus) ReadU16PageWrap(addr uint16) uint16 {
	lo := b.Read(addr)
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	hi := b.Read(hiAddr)
	return uint16(lo) | uint16(hi)<<8
}

// LastValue returns the most recent byte observed on the bus, the
// open-bus fallback for unmapped reads.
func (b *Bus) LastValue() uint8 {
	return b.lastValue
}
