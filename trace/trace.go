// Package trace formats CPU state as one line per instruction in the
// canonical nestest.log form. It is the generalization of the
// teacher's disassemble/disassemble.go (an ad hoc per-opcode switch
// producing the teacher's own, differently padded format) into a pure
// function over cpu.CPU that matches original_source/src/cpu/trace.rs
// byte-for-byte, since nestest.log is this specification's primary
// correctness oracle.
package trace

import (
	"fmt"
	"strings"

	"github.com/nesgo/cpu6502/cpu"
)

// Line formats one nestest-style trace line for the instruction about
// to execute at c.PC. No register, flag, or memory mutation occurs,
// so it is safe to call from an observer hook before every Step. It
// reads through c.Bus like any other caller, so the bus's open-bus
// value (bus.Bus.LastValue) afterwards is the last byte Line read.
func Line(c *cpu.CPU) string {
	var b strings.Builder
	b.WriteString(pad(programCounterField(c), 6))
	b.WriteString(pad(opcodeBytesField(c), 10))
	b.WriteString(pad(assemblyField(c), 32))
	b.WriteString(registersField(c))
	return b.String()
}

func pad(s string, length int) string {
	for len(s) < length {
		s += " "
	}
	return s
}

func programCounterField(c *cpu.CPU) string {
	return fmt.Sprintf("%04X", c.PC)
}

func opcodeBytesField(c *cpu.CPU) string {
	opcode, info, ok := cpu.Decode(c.Bus.Read(c.PC))
	if !ok {
		return fmt.Sprintf("%02X", opcode)
	}
	switch info.Length {
	case 3:
		return fmt.Sprintf("%02X %02X %02X", opcode, c.Bus.Read(c.PC+1), c.Bus.Read(c.PC+2))
	case 2:
		return fmt.Sprintf("%02X %02X", opcode, c.Bus.Read(c.PC+1))
	default:
		return fmt.Sprintf("%02X", opcode)
	}
}

func assemblyField(c *cpu.CPU) string {
	opcode, info, ok := cpu.Decode(c.Bus.Read(c.PC))
	if !ok {
		return fmt.Sprintf(".DB $%02X", opcode)
	}

	var operand string
	switch info.Mode {
	case cpu.Accumulator:
		operand = " A"
	case cpu.Implied:
		operand = ""
	case cpu.Immediate:
		operand = fmt.Sprintf(" #$%02X", c.Bus.Read(c.PC+1))
	case cpu.ZeroPage:
		zp := c.Bus.Read(c.PC + 1)
		operand = fmt.Sprintf(" $%02X = %02X", zp, c.Bus.Read(uint16(zp)))
	case cpu.ZeroPageX:
		zp := c.Bus.Read(c.PC + 1)
		eff := zp + c.X
		operand = fmt.Sprintf(" $%02X,X @ %02X = %02X", zp, eff, c.Bus.Read(uint16(eff)))
	case cpu.ZeroPageY:
		zp := c.Bus.Read(c.PC + 1)
		eff := zp + c.Y
		operand = fmt.Sprintf(" $%02X,Y @ %02X = %02X", zp, eff, c.Bus.Read(uint16(eff)))
	case cpu.Absolute:
		addr := c.Bus.ReadU16(c.PC + 1)
		if info.Mnemonic == "JMP" || info.Mnemonic == "JSR" {
			operand = fmt.Sprintf(" $%04X", addr)
		} else {
			operand = fmt.Sprintf(" $%04X = %02X", addr, c.Bus.Read(addr))
		}
	case cpu.AbsoluteX:
		base := c.Bus.ReadU16(c.PC + 1)
		eff := base + uint16(c.X)
		operand = fmt.Sprintf(" $%04X,X @ %04X = %02X", base, eff, c.Bus.Read(eff))
	case cpu.AbsoluteY:
		base := c.Bus.ReadU16(c.PC + 1)
		eff := base + uint16(c.Y)
		operand = fmt.Sprintf(" $%04X,Y @ %04X = %02X", base, eff, c.Bus.Read(eff))
	case cpu.Indirect:
		ptr := c.Bus.ReadU16(c.PC + 1)
		eff := c.Bus.ReadU16PageWrap(ptr)
		operand = fmt.Sprintf(" ($%04X) = %04X", ptr, eff)
	case cpu.IndirectX:
		zp := c.Bus.Read(c.PC + 1)
		ptrAddr := zp + c.X
		eff := c.Bus.ReadU16PageWrap(uint16(ptrAddr))
		operand = fmt.Sprintf(" ($%02X,X) @ %02X = %04X = %02X", zp, ptrAddr, eff, c.Bus.Read(eff))
	case cpu.IndirectY:
		zp := c.Bus.Read(c.PC + 1)
		base := c.Bus.ReadU16PageWrap(uint16(zp))
		eff := base + uint16(c.Y)
		operand = fmt.Sprintf(" ($%02X),Y = %04X @ %04X = %02X", zp, base, eff, c.Bus.Read(eff))
	case cpu.Relative:
		offset := int8(c.Bus.Read(c.PC + 1))
		target := uint16(int32(c.PC) + 2 + int32(offset))
		operand = fmt.Sprintf(" $%04X", target)
	}

	return info.Mnemonic + operand
}

func registersField(c *cpu.CPU) string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.A, c.X, c.Y, c.P.Pack(), c.SP)
}
