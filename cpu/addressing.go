package cpu

// resolveAddress computes the effective address for the operand
// following the opcode at cpu.PC, per the table in SPEC_FULL.md 5.4.
// It never mutates PC; Step advances PC separately once execution
// completes. pageCrossed reports whether an indexed mode's effective
// address fell on a different page than its un-indexed base, used by
// Step to apply the +1 cycle penalty on the modes that carry one.
//
// This collapses the teacher's per-tick addrZP/addrZPX/addrIndirectX/...
// state machines (cpu/cpu.go) into single-shot resolvers, since
// cycle-accurate sub-instruction timing is explicitly out of scope
// here; the cycle counts are still tallied, just not modeled as
// individual bus ticks.
func resolveAddress(c *CPU, mode AddressingMode) (addr uint16, pageCrossed bool, err error) {
	operandBase := c.PC + 1

	switch mode {
	case Immediate, Relative:
		return operandBase, false, nil

	case ZeroPage:
		return uint16(c.Bus.Read(operandBase)), false, nil

	case ZeroPageX:
		base := c.Bus.Read(operandBase)
		return uint16(base + c.X), false, nil

	case ZeroPageY:
		base := c.Bus.Read(operandBase)
		return uint16(base + c.Y), false, nil

	case Absolute:
		return c.Bus.ReadU16(operandBase), false, nil

	case AbsoluteX:
		base := c.Bus.ReadU16(operandBase)
		addr := base + uint16(c.X)
		return addr, !samePage(base, addr), nil

	case AbsoluteY:
		base := c.Bus.ReadU16(operandBase)
		addr := base + uint16(c.Y)
		return addr, !samePage(base, addr), nil

	case Indirect:
		ptr := c.Bus.ReadU16(operandBase)
		return c.Bus.ReadU16PageWrap(ptr), false, nil

	case IndirectX:
		zp := c.Bus.Read(operandBase) + c.X
		return c.Bus.ReadU16PageWrap(uint16(zp)), false, nil

	case IndirectY:
		zp := c.Bus.Read(operandBase)
		base := c.Bus.ReadU16PageWrap(uint16(zp))
		addr := base + uint16(c.Y)
		return addr, !samePage(base, addr), nil

	case Implied, Accumulator:
		return 0, false, AddressingModeHasNoAddress{mode}

	default:
		return 0, false, AddressingModeHasNoAddress{mode}
	}
}

func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}
