package disassemble

import (
	"strings"
	"testing"
)

type flatRAM struct {
	mem [65536]uint8
}

func (r *flatRAM) Read(addr uint16) uint8     { return r.mem[addr] }
func (r *flatRAM) Write(addr uint16, v uint8) { r.mem[addr] = v }

func TestStepImmediate(t *testing.T) {
	r := &flatRAM{}
	r.mem[0x0200] = 0xA9 // LDA #$42
	r.mem[0x0201] = 0x42
	out, count := Step(0x0200, r)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if !strings.Contains(out, "LDA") || !strings.Contains(out, "#42") {
		t.Errorf("disassembly = %q, want it to mention LDA #42", out)
	}
}

func TestStepAbsolute(t *testing.T) {
	r := &flatRAM{}
	r.mem[0x0300] = 0x4C // JMP $1234
	r.mem[0x0301] = 0x34
	r.mem[0x0302] = 0x12
	out, count := Step(0x0300, r)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if !strings.Contains(out, "JMP") || !strings.Contains(out, "1234") {
		t.Errorf("disassembly = %q, want it to mention JMP 1234", out)
	}
}

func TestStepImplied(t *testing.T) {
	r := &flatRAM{}
	r.mem[0x0400] = 0xEA // NOP
	out, count := Step(0x0400, r)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if !strings.Contains(out, "NOP") {
		t.Errorf("disassembly = %q, want it to mention NOP", out)
	}
}

func TestStepRelative(t *testing.T) {
	r := &flatRAM{}
	r.mem[0x00F0] = 0x90 // BCC $20
	r.mem[0x00F1] = 0x20
	out, _ := Step(0x00F0, r)
	if !strings.Contains(out, "BCC") {
		t.Errorf("disassembly = %q, want it to mention BCC", out)
	}
	if !strings.Contains(out, "0112") {
		t.Errorf("disassembly = %q, want it to show the resolved target 0112", out)
	}
}
