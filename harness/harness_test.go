package harness

import (
	"testing"

	"github.com/nesquik/nescore/cpu"
)

// scriptedBus is a minimal memory.Bus wrapper used to drive a cpu.CPU
// under test while also exposing the raw bytes harness.Run polls.
type scriptedBus struct {
	mem [65536]uint8
}

func (b *scriptedBus) Read(addr uint16) uint8     { return b.mem[addr] }
func (b *scriptedBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func TestRunPass(t *testing.T) {
	bus := &scriptedBus{}
	bus.mem[0x6001], bus.mem[0x6002], bus.mem[0x6003] = sig0, sig1, sig2
	bus.mem[0x6000] = statusRunning

	// Program: a couple of NOPs, then one instruction (STA $6000) that
	// flips status to pass.
	bus.mem[0x0200] = 0xEA // NOP
	bus.mem[0x0201] = 0xEA // NOP
	bus.mem[0x0202] = 0xA9 // LDA #$00
	bus.mem[0x0203] = 0x00
	bus.mem[0x0204] = 0x8D // STA $6000
	bus.mem[0x0205] = 0x00
	bus.mem[0x0206] = 0x60

	c := cpu.New(bus)
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x02
	c.Reset()

	res, err := Run(bus, c.Step, 100)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Passed {
		t.Errorf("Passed = false, want true (status=%#02x)", res.Status)
	}
	if res.Instructions != 4 {
		t.Errorf("Instructions = %d, want 4", res.Instructions)
	}
}

func TestRunFailureCapturesMessage(t *testing.T) {
	bus := &scriptedBus{}
	bus.mem[0x6001], bus.mem[0x6002], bus.mem[0x6003] = sig0, sig1, sig2
	bus.mem[0x6000] = 0x01 // Failure code.
	msg := "boom"
	for i, ch := range msg {
		bus.mem[messageAddr+i] = uint8(ch)
	}

	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x02
	bus.mem[0x0200] = 0xEA // NOP

	c := cpu.New(bus)
	c.Reset()

	res, err := Run(bus, c.Step, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Passed {
		t.Error("Passed = true, want false")
	}
	if res.Status != 0x01 {
		t.Errorf("Status = %#02x, want 0x01", res.Status)
	}
	if res.Message != msg {
		t.Errorf("Message = %q, want %q", res.Message, msg)
	}
}

func TestRunTimeout(t *testing.T) {
	bus := &scriptedBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x02
	bus.mem[0x0200] = 0xEA // NOP, signature never appears.

	c := cpu.New(bus)
	c.Reset()

	_, err := Run(bus, c.Step, 5)
	if _, ok := err.(TimeoutError); !ok {
		t.Fatalf("expected TimeoutError, got %T: %v", err, err)
	}
}

func TestTraceLine(t *testing.T) {
	got := TraceLine(RegisterSnapshot{PC: 0x8000, A: 0x01, X: 0x02, Y: 0x03, P: 0x24, SP: 0xFD})
	want := "8000 A:01 X:02 Y:03 P:24 SP:FD"
	if got != want {
		t.Errorf("TraceLine = %q, want %q", got, want)
	}
}

func TestSnapshotFromLiveCPU(t *testing.T) {
	bus := &scriptedBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := cpu.New(bus)
	c.Reset()

	snap := RegisterSnapshot{PC: c.PC, A: c.A, X: c.X, Y: c.Y, P: c.P(), SP: c.SP}
	if snap.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", snap.PC)
	}
	if snap.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", snap.SP)
	}
}
