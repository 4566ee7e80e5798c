// nestrace loads an iNES ROM, runs its CPU core, and prints one
// nestest.log-format trace line per instruction to stdout. It is the
// direct generalization of the teacher's disassembler/disassembler.go
// driver idiom (flag-parsed filename, sequential RAM load, per-step
// print loop) to this module's bus/cpu/trace packages, and mirrors
// original_source/src/bin/nestest.rs's run_with_callback entry point.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nesgo/cpu6502/bus"
	"github.com/nesgo/cpu6502/cpu"
	"github.com/nesgo/cpu6502/nrom"
	"github.com/nesgo/cpu6502/trace"
)

var (
	pcOverride = flag.Int("pc", -1, "override the reset vector and start execution here (nestest's automation entry point is 0xC000)")
	count      = flag.Int("count", 0, "stop after this many instructions (0 means run until a decode error or halt)")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-pc <addr>] [-count <n>] <rom.nes>", os.Args[0])
	}
	fn := flag.Args()[0]

	raw, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("can't open %s: %v", fn, err)
	}
	cart, err := nrom.Load(raw)
	if err != nil {
		log.Fatalf("can't load %s: %v", fn, err)
	}

	b := bus.New(cart, nil)
	c := cpu.New(b)
	c.Reset()
	if *pcOverride >= 0 {
		c.PC = uint16(*pcOverride)
	}

	executed := 0
	runErr := c.RunWithObserver(func(c *cpu.CPU) bool {
		if *count > 0 && executed >= *count {
			return false
		}
		fmt.Println(trace.Line(c))
		executed++
		return true
	})
	if runErr != nil {
		log.Printf("stopped after %d instructions: %v", executed, runErr)
		os.Exit(1)
	}
}
