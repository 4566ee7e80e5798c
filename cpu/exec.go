package cpu

import "github.com/nesgo/cpu6502/status"

// pageCrossPenalty is the set of mnemonics whose indexed addressing
// modes pick up a +1 cycle when the effective address crosses a page,
// per spec.md 4.4: stores and the shift/rotate read-modify-write family
// always use their fixed (worst-case) cycle count instead, so they are
// deliberately absent here even though their modes are pageCrossable.
var pageCrossPenalty = map[string]bool{
	"LDA": true, "LDX": true, "LDY": true,
	"AND": true, "ORA": true, "EOR": true,
	"ADC": true, "SBC": true, "CMP": true,
}

// execute dispatches one decoded instruction. pc is the address the
// opcode byte was fetched from; nextPC is pc + instruction length, the
// address execution advances to unless the instruction is a jump,
// branch, or subroutine return. It returns the cycle penalty beyond
// info.BaseCycles (page-cross and/or branch-taken).
//
// This is the generalization of the teacher's 256-case processOpcode
// switch (cpu/cpu.go), keyed by mnemonic from the opcode table
// instead of the raw byte (the mode only matters to execShift), and with the undocumented-opcode cases
// dropped (out of scope) along with the per-tick interleaving.
func (c *CPU) execute(info OpInfo, pc, addr uint16, pageCrossed bool, nextPC uint16) (int, error) {
	c.PC = nextPC

	switch info.Mnemonic {
	case "LDA":
		c.A = c.Bus.Read(addr)
		c.P.UpdateZN(c.A)
		return indexPenalty(info, pageCrossed), nil
	case "LDX":
		c.X = c.Bus.Read(addr)
		c.P.UpdateZN(c.X)
		return indexPenalty(info, pageCrossed), nil
	case "LDY":
		c.Y = c.Bus.Read(addr)
		c.P.UpdateZN(c.Y)
		return indexPenalty(info, pageCrossed), nil
	case "STA":
		c.Bus.Write(addr, c.A)
		return 0, nil
	case "STX":
		c.Bus.Write(addr, c.X)
		return 0, nil
	case "STY":
		c.Bus.Write(addr, c.Y)
		return 0, nil

	case "TAX":
		c.X = c.A
		c.P.UpdateZN(c.X)
		return 0, nil
	case "TAY":
		c.Y = c.A
		c.P.UpdateZN(c.Y)
		return 0, nil
	case "TXA":
		c.A = c.X
		c.P.UpdateZN(c.A)
		return 0, nil
	case "TYA":
		c.A = c.Y
		c.P.UpdateZN(c.A)
		return 0, nil
	case "TSX":
		c.X = c.SP
		c.P.UpdateZN(c.X)
		return 0, nil
	case "TXS":
		c.SP = c.X
		return 0, nil

	case "PHA":
		c.push(c.A)
		return 0, nil
	case "PLA":
		c.A = c.pop()
		c.P.UpdateZN(c.A)
		return 0, nil
	case "PHP":
		c.push(c.P.PushByte())
		return 0, nil
	case "PLP":
		c.P.UpdateFromPull(c.pop())
		return 0, nil

	case "AND":
		c.A &= c.Bus.Read(addr)
		c.P.UpdateZN(c.A)
		return indexPenalty(info, pageCrossed), nil
	case "ORA":
		c.A |= c.Bus.Read(addr)
		c.P.UpdateZN(c.A)
		return indexPenalty(info, pageCrossed), nil
	case "EOR":
		c.A ^= c.Bus.Read(addr)
		c.P.UpdateZN(c.A)
		return indexPenalty(info, pageCrossed), nil
	case "BIT":
		m := c.Bus.Read(addr)
		c.P.Set(status.Zero, c.A&m == 0)
		c.P.Set(status.Negative, m&0x80 != 0)
		c.P.Set(status.Overflow, m&0x40 != 0)
		return 0, nil

	case "ADC":
		c.execADC(c.Bus.Read(addr))
		return indexPenalty(info, pageCrossed), nil
	case "SBC":
		c.execADC(^c.Bus.Read(addr))
		return indexPenalty(info, pageCrossed), nil

	case "INC":
		v := c.Bus.Read(addr) + 1
		c.Bus.Write(addr, v)
		c.P.UpdateZN(v)
		return 0, nil
	case "DEC":
		v := c.Bus.Read(addr) - 1
		c.Bus.Write(addr, v)
		c.P.UpdateZN(v)
		return 0, nil
	case "INX":
		c.X++
		c.P.UpdateZN(c.X)
		return 0, nil
	case "INY":
		c.Y++
		c.P.UpdateZN(c.Y)
		return 0, nil
	case "DEX":
		c.X--
		c.P.UpdateZN(c.X)
		return 0, nil
	case "DEY":
		c.Y--
		c.P.UpdateZN(c.Y)
		return 0, nil

	case "ASL":
		c.execShift(info, addr, c.shiftASL)
		return 0, nil
	case "LSR":
		c.execShift(info, addr, c.shiftLSR)
		return 0, nil
	case "ROL":
		c.execShift(info, addr, c.shiftROL)
		return 0, nil
	case "ROR":
		c.execShift(info, addr, c.shiftROR)
		return 0, nil

	case "CMP":
		c.execCompare(c.A, c.Bus.Read(addr))
		return indexPenalty(info, pageCrossed), nil
	case "CPX":
		c.execCompare(c.X, c.Bus.Read(addr))
		return 0, nil
	case "CPY":
		c.execCompare(c.Y, c.Bus.Read(addr))
		return 0, nil

	case "BCC":
		return c.execBranch(addr, nextPC, !c.P.Get(status.Carry)), nil
	case "BCS":
		return c.execBranch(addr, nextPC, c.P.Get(status.Carry)), nil
	case "BEQ":
		return c.execBranch(addr, nextPC, c.P.Get(status.Zero)), nil
	case "BNE":
		return c.execBranch(addr, nextPC, !c.P.Get(status.Zero)), nil
	case "BMI":
		return c.execBranch(addr, nextPC, c.P.Get(status.Negative)), nil
	case "BPL":
		return c.execBranch(addr, nextPC, !c.P.Get(status.Negative)), nil
	case "BVC":
		return c.execBranch(addr, nextPC, !c.P.Get(status.Overflow)), nil
	case "BVS":
		return c.execBranch(addr, nextPC, c.P.Get(status.Overflow)), nil

	case "JMP":
		c.PC = addr
		return 0, nil
	case "JSR":
		c.pushU16(nextPC - 1)
		c.PC = addr
		return 0, nil
	case "RTS":
		c.PC = c.popU16() + 1
		return 0, nil

	case "BRK":
		c.pushU16(pc + 2)
		c.push(c.P.PushByte())
		c.P.Set(status.Interrupt, true)
		c.PC = c.Bus.ReadU16(0xFFFE)
		return 0, nil
	case "RTI":
		c.P.UpdateFromPull(c.pop())
		c.PC = c.popU16()
		return 0, nil

	case "CLC":
		c.P.Set(status.Carry, false)
		return 0, nil
	case "SEC":
		c.P.Set(status.Carry, true)
		return 0, nil
	case "CLD":
		c.P.Set(status.Decimal, false)
		return 0, nil
	case "SED":
		c.P.Set(status.Decimal, true)
		return 0, nil
	case "CLI":
		c.P.Set(status.Interrupt, false)
		return 0, nil
	case "SEI":
		c.P.Set(status.Interrupt, true)
		return 0, nil
	case "CLV":
		c.P.Set(status.Overflow, false)
		return 0, nil

	case "NOP":
		return 0, nil

	default:
		return 0, UnknownOpcode{0, pc}
	}
}

// indexPenalty applies the +1 page-cross cycle only for the mnemonics
// whose base cycle count is the cheaper, non-page-crossing case.
func indexPenalty(info OpInfo, pageCrossed bool) int {
	if pageCrossed && pageCrossPenalty[info.Mnemonic] {
		return 1
	}
	return 0
}

// execADC implements ADC(A, M); SBC is ADC(A, ^M) bit for bit,
// matching spec.md 4.4 and invariant 5.
func (c *CPU) execADC(m uint8) {
	carry := uint16(0)
	if c.P.Get(status.Carry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := uint8(sum)

	c.P.Set(status.Carry, sum > 0xFF)
	c.P.Set(status.Overflow, (c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.P.UpdateZN(c.A)
}

// execCompare implements CMP/CPX/CPY: reg - M via 16-bit two's
// complement addition, per spec.md 4.4.
func (c *CPU) execCompare(reg, m uint8) {
	diff := uint16(reg) + uint16(^m) + 1
	result := uint8(diff)
	c.P.Set(status.Carry, reg >= m)
	c.P.Set(status.Zero, result == 0)
	c.P.Set(status.Negative, result&0x80 != 0)
}

// execBranch implements the shared branch machinery: no cycles if not
// taken, +1 if taken, +1 more if the target lands on a different page
// than the instruction after the branch.
func (c *CPU) execBranch(operandAddr, nextPC uint16, taken bool) int {
	if !taken {
		return 0
	}
	offset := int8(c.Bus.Read(operandAddr))
	target := uint16(int32(nextPC) + int32(offset))
	c.PC = target
	if samePage(nextPC, target) {
		return 1
	}
	return 2
}

// execShift applies fn to the accumulator or the memory operand at
// addr depending on info.Mode, covering the single accumulator-vs-
// memory split shared by ASL/LSR/ROL/ROR.
func (c *CPU) execShift(info OpInfo, addr uint16, fn func(uint8) uint8) {
	if info.Mode == Accumulator {
		c.A = fn(c.A)
		return
	}
	v := c.Bus.Read(addr)
	c.Bus.Write(addr, fn(v))
}

func (c *CPU) shiftASL(v uint8) uint8 {
	carryOut := v&0x80 != 0
	result := v << 1
	c.P.Set(status.Carry, carryOut)
	c.P.UpdateZN(result)
	return result
}

func (c *CPU) shiftLSR(v uint8) uint8 {
	carryOut := v&0x01 != 0
	result := v >> 1
	c.P.Set(status.Carry, carryOut)
	c.P.UpdateZN(result)
	return result
}

func (c *CPU) shiftROL(v uint8) uint8 {
	carryIn := c.P.Get(status.Carry)
	carryOut := v&0x80 != 0
	result := v << 1
	if carryIn {
		result |= 0x01
	}
	c.P.Set(status.Carry, carryOut)
	c.P.UpdateZN(result)
	return result
}

func (c *CPU) shiftROR(v uint8) uint8 {
	carryIn := c.P.Get(status.Carry)
	carryOut := v&0x01 != 0
	result := v >> 1
	if carryIn {
		result |= 0x80
	}
	c.P.Set(status.Carry, carryOut)
	c.P.UpdateZN(result)
	return result
}
