// Package irq defines the basic interface for a 6502 family interrupt
// source. A future host PPU/APU can implement Sender to signal NMI/IRQ
// without the cpu package depending on either concrete type.
// NOTE: even though real hardware distinguishes level and edge type
// interrupts, the interface here doesn't care; no delivery pipeline
// is modeled, so the distinction would have nowhere to land.
package irq

// Sender defines the interface for an IRQ source.
type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}
