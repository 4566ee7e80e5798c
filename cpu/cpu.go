// Package cpu implements the NES's 6502-family CPU core: the opcode
// table, operand addressing, and the fetch-decode-execute loop. It is
// the generalization of the teacher's cpu/cpu.go -- the per-tick
// cycle-accurate Chip state machine is collapsed to whole-instruction
// Step calls (cycle-accurate sub-instruction timing is explicitly out
// of scope), and the 256-case processOpcode switch drops every
// undocumented/illegal opcode case, BCD handling, and the interrupt
// delivery pipeline, none of which this core models.
package cpu

import (
	"github.com/nesgo/cpu6502/bus"
	"github.com/nesgo/cpu6502/irq"
	"github.com/nesgo/cpu6502/status"
)

// RunState names where the CPU sits in its construction/reset/run
// lifecycle, per spec.md 4.4.
type RunState uint8

const (
	StateNew RunState = iota
	StateReady
	StateRunning
	StateHalted
)

func (s RunState) String() string {
	switch s {
	case StateNew:
		return "New"
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateHalted:
		return "Halted"
	default:
		return "Unknown"
	}
}

// InterruptLine is an alias for irq.Sender kept local to this package
// so callers can write cpu.InterruptLine without importing irq
// themselves. No delivery pipeline is modeled (spec.md Non-goals,
// Open Question (b)) -- IRQ/NMI exist purely so a host wiring in real
// interrupt sourcing later has somewhere to plug in.
type InterruptLine = irq.Sender

// CPU holds the 6502 register file, the bus it exclusively owns, and
// the run-state machine of spec.md 4.4. It is never shared across
// concurrent executors; the host must serialize all access, including
// during tracer snapshots (see the trace package).
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       status.P

	Bus *bus.Bus

	State RunState

	// IRQ and NMI are optional interrupt sources. Neither is read
	// during Step -- no component in this module drives them, and the
	// I flag lives in P -- but the fields exist so a host PPU/APU has
	// a place to attach without reshaping CPU.
	IRQ InterruptLine
	NMI InterruptLine
}

// New constructs a CPU bound to b, in the Ready state (spec.md 4.4:
// "new -> Ready on construction"), with P holding I=1/U=1 and every
// other register zero. Call Reset to bring it to Running.
func New(b *bus.Bus) *CPU {
	return &CPU{
		P:     status.Reset(),
		Bus:   b,
		State: StateReady,
	}
}

// Reset performs the 6502 reset sequence: A/X/Y zeroed, SP set to
// 0xFD (modeling the three pre-reset stack decrements real hardware
// performs rather than starting at 0xFF), P with I=1/U=1 and
// everything else clear, and PC loaded from the reset vector at
// 0xFFFC. Legal from any state.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = status.Reset()
	c.PC = c.Bus.ReadU16(0xFFFC)
	c.State = StateRunning
}

// Step executes exactly one instruction: fetch the opcode at PC,
// decode it, resolve its operand address (if any), execute it, and
// advance PC. It returns the number of cycles the instruction took,
// including any page-cross or branch-taken penalty.
func (c *CPU) Step() (int, error) {
	pc := c.PC
	opcode := c.Bus.Read(pc)
	info := opcodes[opcode]
	if !info.known() {
		c.State = StateHalted
		return 0, UnknownOpcode{opcode, pc}
	}

	var addr uint16
	var pageCrossed bool
	if info.Mode.HasAddress() {
		a, crossed, err := resolveAddress(c, info.Mode)
		if err != nil {
			c.State = StateHalted
			return 0, err
		}
		addr, pageCrossed = a, crossed
	}

	nextPC := pc + uint16(info.Length)
	extra, err := c.execute(info, pc, addr, pageCrossed, nextPC)
	if err != nil {
		c.State = StateHalted
		return 0, err
	}

	c.State = StateRunning
	return info.BaseCycles + extra, nil
}

// RunWithObserver drives Step in a loop, invoking observer(c) before
// each fetch. The loop stops when observer returns false or Step
// returns an error; it generalizes the teacher's external Tick/
// TickDone halt convention and the run_with_callback driver of
// original_source/src/bin/nestest.rs into a single blocking call.
func (c *CPU) RunWithObserver(observer func(*CPU) bool) error {
	for observer(c) {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	c.State = StateHalted
	return nil
}

// push writes v to the stack page (0x0100-0x01FF) at the current SP
// and decrements SP, wrapping within the page (invariant 1).
func (c *CPU) push(v uint8) {
	c.Bus.Write(0x0100|uint16(c.SP), v)
	c.SP--
}

// pop increments SP (wrapping within the stack page) and returns the
// byte now at the top of stack.
func (c *CPU) pop() uint8 {
	c.SP++
	return c.Bus.Read(0x0100 | uint16(c.SP))
}

// pushU16 pushes a 16-bit value high byte first then low byte, so a
// matching popU16 -- which reads low then high -- reconstructs it
// (JSR/BRK push this way; RTS/RTI pop this way).
func (c *CPU) pushU16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popU16() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(lo) | uint16(hi)<<8
}
