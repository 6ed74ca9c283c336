// Command nesrun loads an iNES cartridge image, runs it against the
// NES 6502 core and reports the Blargg instr_test_v5 conformance
// result. It is a thin CLI wrapper; all of the actual work lives in
// the cartridge, memory, cpu and harness packages.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/nesquik/nescore/cartridge"
	"github.com/nesquik/nescore/cpu"
	"github.com/nesquik/nescore/disassemble"
	"github.com/nesquik/nescore/harness"
	"github.com/nesquik/nescore/memory"
)

var (
	cart            = flag.String("cart", "", "Path to an iNES cartridge image to load")
	trace           = flag.Bool("trace", false, "If true, print a trace line before every instruction")
	maxInstructions = flag.Int("timeout", 100000000, "Maximum instructions to execute before giving up")
	strict          = flag.Bool("strict", false, "If true, writes to PRG-ROM are a fatal error instead of a silent no-op")
)

func main() {
	flag.Parse()

	if *cart == "" {
		log.Fatalf("-cart is required")
	}

	// Luckily carts are tiny by modern standards, so just read it in.
	rom, err := ioutil.ReadFile(*cart)
	if err != nil {
		log.Fatalf("can't read cart: %v from path: %s", err, *cart)
	}

	parsed, err := cartridge.Load(rom)
	if err != nil {
		log.Fatalf("can't parse cart: %v", err)
	}

	mem := memory.NewMap()
	mem.Strict = *strict
	if err := mem.LoadPRG(parsed.PRG); err != nil {
		log.Fatalf("can't load PRG-ROM: %v", err)
	}

	c := cpu.New(mem)
	c.Reset()

	step := c.Step
	if *trace {
		step = func() (int, error) {
			snap := harness.RegisterSnapshot{PC: c.PC, A: c.A, X: c.X, Y: c.Y, P: c.P(), SP: c.SP}
			asm, _ := disassemble.Step(c.PC, mem)
			fmt.Printf("%-20s %s\n", asm, harness.TraceLine(snap))
			return c.Step()
		}
	}
	if *strict {
		inner := step
		step = func() (int, error) {
			cycles, err := inner()
			if err == nil && mem.LastError != nil {
				err = mem.LastError
			}
			return cycles, err
		}
	}

	res, err := harness.Run(mem, step, *maxInstructions)
	if err != nil {
		log.Fatalf("harness run failed after %d instructions: %v", res.Instructions, err)
	}

	fmt.Printf("status=%#02x passed=%v instructions=%d cycles=%d\n", res.Status, res.Passed, res.Instructions, res.Cycles)
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	if !res.Passed {
		log.Fatalf("conformance test failed: status %#02x", res.Status)
	}
}
