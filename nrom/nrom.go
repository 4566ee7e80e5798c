// Package nrom implements the simplest real iNES cartridge, mapper 0
// (NROM): a fixed 16 or 32 KiB PRG-ROM window with no bank switching.
// Full mapper dispatch is out of scope for this module (spec.md 1), but
// the bus needs *some* concrete bus.Cartridge to be exercised by tests
// and the nestrace harness, and "64 KiB of raw bytes" throws away real,
// grounded behavior the distillation's source (original_source/
// src/cartridge.rs) actually implements: iNES header parsing, PRG/CHR
// page counts, mapper number, mirroring, and the optional trainer.
// This is the direct port of that parsing logic, adapted from the
// teacher's bank-switching carts in atari2600/cart.go to bus.Cartridge
// instead of memory.Bank.
package nrom

import "fmt"

const (
	prgPageSize = 16384
	chrPageSize = 8192
	headerSize  = 16
	trainerSize = 512
)

var magic = [4]byte{0x4E, 0x45, 0x53, 0x1A} // "NES\x1A"

// Mirroring names the nametable mirroring mode declared by the iNES
// header. The PPU (out of scope) would consume this; nrom only
// surfaces it for a future host to read.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
)

// UnsupportedMapper is returned by Load when the header names a
// mapper other than 0, following the error taxonomy of
// SPEC_FULL.md 8: a decode error, not a panic.
type UnsupportedMapper struct {
	Mapper uint8
}

// Error implements the interface for error types.
func (e UnsupportedMapper) Error() string {
	return fmt.Sprintf("nrom: mapper %d is not mapper 0 (NROM)", e.Mapper)
}

// BadHeader is returned when the file is too short or does not carry
// the iNES magic bytes.
type BadHeader struct {
	Reason string
}

// Error implements the interface for error types.
func (e BadHeader) Error() string {
	return fmt.Sprintf("nrom: bad iNES header: %s", e.Reason)
}

// Cartridge is a mapper-0 (NROM) cartridge: PRG-ROM mirrored across
// 0x8000-0xFFFF when it is 16 KiB, mapped flat when it is 32 KiB.
// Writes to PRG-ROM are accepted and ignored, matching spec.md 3's
// "reads and writes of ROM-mapped addresses are legal".
type Cartridge struct {
	prgROM    []uint8
	chrROM    []uint8
	Mirroring Mirroring
}

// Load parses raw as an iNES file and returns a mapper-0 Cartridge.
// It follows original_source/src/cartridge.rs's parsing exactly:
// magic bytes, PRG-ROM page count at offset 4, CHR-ROM page count at
// offset 5, control byte 6 (mirroring/four-screen/trainer bits) and
// control byte 7 (mapper high nibble).
func Load(raw []byte) (*Cartridge, error) {
	if len(raw) < headerSize {
		return nil, BadHeader{"file shorter than the 16-byte iNES header"}
	}
	for i, m := range magic {
		if raw[i] != m {
			return nil, BadHeader{"missing NES\\x1A magic"}
		}
	}

	control6 := raw[6]
	control7 := raw[7]
	mapper := (control7 & 0xF0) | (control6 >> 4)
	if mapper != 0 {
		return nil, UnsupportedMapper{mapper}
	}

	mirroring := Horizontal
	switch {
	case control6&0b1000 != 0:
		mirroring = FourScreen
	case control6&0b1 != 0:
		mirroring = Vertical
	}

	prgPages := int(raw[4])
	chrPages := int(raw[5])
	prgSize := prgPages * prgPageSize
	chrSize := chrPages * chrPageSize

	prgStart := headerSize
	if control6&0b100 != 0 {
		prgStart += trainerSize
	}
	chrStart := prgStart + prgSize

	if len(raw) < chrStart+chrSize {
		return nil, BadHeader{"file shorter than PRG/CHR sizes declared in header"}
	}

	cart := &Cartridge{
		prgROM:    append([]uint8(nil), raw[prgStart:prgStart+prgSize]...),
		chrROM:    append([]uint8(nil), raw[chrStart:chrStart+chrSize]...),
		Mirroring: mirroring,
	}
	return cart, nil
}

// CPURead implements bus.Cartridge for the 0x4020-0xFFFF window. Only
// 0x8000-0xFFFF is backed by PRG-ROM; everything below that (PRG-RAM,
// expansion ROM) reads as zero, matching the simplest NROM boards that
// carry no battery-backed RAM.
func (c *Cartridge) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	offset := int(addr - 0x8000)
	if len(c.prgROM) == prgPageSize {
		offset %= prgPageSize
	}
	return c.prgROM[offset]
}

// CPUWrite implements bus.Cartridge. Mapper 0 has no bank-select
// registers, so writes to ROM are simply ignored.
func (c *Cartridge) CPUWrite(addr uint16, data uint8) {}
