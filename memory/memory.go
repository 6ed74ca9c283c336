// Package memory implements the NES CPU's logical 64 KiB address space:
// mirrored system RAM, the PPU/APU register windows, cartridge SRAM and
// the PRG-ROM banks. It has no notion of cycles; it is purely the bus
// the cpu package drives on every read/write.
package memory

import "fmt"

// Bus is the interface the cpu package drives for every memory access.
// Implementations route addresses by range; see Map for the stock NES
// layout.
type Bus interface {
	// Read returns the byte at addr.
	Read(addr uint16) uint8
	// Write stores val at addr. Implementations may treat some ranges
	// (PRG-ROM) as no-ops.
	Write(addr uint16, val uint8)
}

// IOHandler lets an external collaborator (PPU, APU, controller input)
// observe or override accesses that land in its register window.
// Read/Write return (value, true) to claim the access; returning false
// leaves the Map's default byte-array behavior in place. Handlers must
// be side-effect quick: they run synchronously inside Map.Read/Write.
type IOHandler interface {
	Read(addr uint16) (val uint8, handled bool)
	Write(addr uint16, val uint8) (handled bool)
}

const (
	ramSize  = 0x0800 // 2 KiB system RAM, mirrored through 0x1FFF.
	ppuSize  = 8       // 8 physical PPU registers, mirrored through 0x3FFF.
	apuSize  = 0x20     // APU/IO registers, 0x4000-0x401F.
	sramSize = 0x2000   // 8 KiB battery-backed cartridge SRAM.
	prgSize  = 0x8000   // 32 KiB PRG-ROM window, 0x8000-0xFFFF.

	ramTop   = 0x1FFF
	ppuBase  = 0x2000
	ppuTop   = 0x3FFF
	apuBase  = 0x4000
	apuTop   = 0x401F
	sramBase = 0x6000
	sramTop  = 0x7FFF
	prgBase  = 0x8000
)

// ROMWriteError is returned via Map.LastError when Strict is set and
// code attempts to write into the PRG-ROM window.
type ROMWriteError struct {
	Addr uint16
	Val  uint8
}

func (e ROMWriteError) Error() string {
	return fmt.Sprintf("write of 0x%02X to read-only PRG-ROM at 0x%04X", e.Val, e.Addr)
}

// Map implements Bus as the stock NES CPU memory map described in the
// core's data model: mirrored RAM, mirrored PPU window, flat APU
// window, cartridge SRAM and a fixed 32 KiB PRG-ROM window.
type Map struct {
	ram  [ramSize]uint8
	ppu  [ppuSize]uint8
	apu  [apuSize]uint8
	sram [sramSize]uint8
	prg  [prgSize]uint8

	// PPUHandler/APUHandler, if set, are consulted before falling back
	// to the plain byte arrays above. They are the hook external
	// collaborators (a real PPU/APU) use to interpose semantics; the
	// core itself never sets these.
	PPUHandler IOHandler
	APUHandler IOHandler

	// Strict, when true, turns writes to PRG-ROM into a recorded error
	// (LastError) rather than a silent drop.
	Strict    bool
	LastError error
}

// NewMap returns a Map with RAM/SRAM zeroed and no PRG loaded. Use
// LoadPRG with the buffer cartridge.Load returns to populate PRG
// before running the CPU.
func NewMap() *Map {
	return &Map{}
}

// Read implements Bus.
func (m *Map) Read(addr uint16) uint8 {
	switch {
	case addr <= ramTop:
		return m.ram[addr%ramSize]
	case addr <= ppuTop:
		idx := (addr - ppuBase) % ppuSize
		if m.PPUHandler != nil {
			if v, ok := m.PPUHandler.Read(idx); ok {
				return v
			}
		}
		return m.ppu[idx]
	case addr <= apuTop:
		idx := addr - apuBase
		if m.APUHandler != nil {
			if v, ok := m.APUHandler.Read(idx); ok {
				return v
			}
		}
		return m.apu[idx]
	case addr < sramBase:
		// Cartridge expansion area. No device is modeled; reads as 0.
		return 0
	case addr <= sramTop:
		return m.sram[addr-sramBase]
	default:
		return m.prg[addr-prgBase]
	}
}

// Write implements Bus.
func (m *Map) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramTop:
		m.ram[addr%ramSize] = val
	case addr <= ppuTop:
		idx := (addr - ppuBase) % ppuSize
		if m.PPUHandler != nil && m.PPUHandler.Write(idx, val) {
			return
		}
		m.ppu[idx] = val
	case addr <= apuTop:
		idx := addr - apuBase
		if m.APUHandler != nil && m.APUHandler.Write(idx, val) {
			return
		}
		m.apu[idx] = val
	case addr < sramBase:
		// Expansion area writes are dropped: no device is modeled
		// and no bytes are kept, so reads of this range return 0.
	case addr <= sramTop:
		m.sram[addr-sramBase] = val
	default:
		if m.Strict {
			m.LastError = ROMWriteError{addr, val}
			return
		}
		// PRG-ROM is read-only at runtime; ignore.
	}
}

// LoadPRG copies prg (which must be exactly 32 KiB) into the PRG-ROM
// window. Used by package cartridge after mirroring/validating a bank.
func (m *Map) LoadPRG(prg []uint8) error {
	if len(prg) != prgSize {
		return fmt.Errorf("LoadPRG: want %d bytes, got %d", prgSize, len(prg))
	}
	copy(m.prg[:], prg)
	return nil
}

// Peek reads a byte without consulting I/O handlers, for test harnesses
// that need to inspect memory without tripping PPU/APU side effects.
func (m *Map) Peek(addr uint16) uint8 {
	switch {
	case addr <= ramTop:
		return m.ram[addr%ramSize]
	case addr <= ppuTop:
		return m.ppu[(addr-ppuBase)%ppuSize]
	case addr <= apuTop:
		return m.apu[addr-apuBase]
	case addr < sramBase:
		return 0
	case addr <= sramTop:
		return m.sram[addr-sramBase]
	default:
		return m.prg[addr-prgBase]
	}
}

// Poke writes a byte directly, bypassing ROM write protection and any
// I/O handler. Used by test harnesses to seed state.
func (m *Map) Poke(addr uint16, val uint8) {
	switch {
	case addr <= ramTop:
		m.ram[addr%ramSize] = val
	case addr <= ppuTop:
		m.ppu[(addr-ppuBase)%ppuSize] = val
	case addr <= apuTop:
		m.apu[addr-apuBase] = val
	case addr < sramBase:
	case addr <= sramTop:
		m.sram[addr-sramBase] = val
	default:
		m.prg[addr-prgBase] = val
	}
}
