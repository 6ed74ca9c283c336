package cartridge

import (
	"testing"

	"github.com/go-test/deep"
)

func buildImage(prgBanks, chrBanks int, mapperLo, mapperHi uint8, trainer bool, fill uint8) []uint8 {
	flags6 := mapperLo << 4
	if trainer {
		flags6 |= flagsTrainerBit
	}
	hdr := []uint8{'N', 'E', 'S', 0x1A, uint8(prgBanks), uint8(chrBanks), flags6, mapperHi << 4, 0, 0, 0, 0, 0, 0, 0, 0}
	img := append([]uint8{}, hdr...)
	if trainer {
		img = append(img, make([]uint8, trainerSize)...)
	}
	prg := make([]uint8, prgBanks*prgBankSize)
	for i := range prg {
		prg[i] = fill
	}
	img = append(img, prg...)
	chr := make([]uint8, chrBanks*0x2000)
	img = append(img, chr...)
	return img
}

func TestLoadSingleBankMirrors(t *testing.T) {
	img := buildImage(1, 1, 0, 0, false, 0xAB)
	rom, err := Load(img)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rom.PRG) != prgWindow {
		t.Fatalf("PRG length = %d, want %d", len(rom.PRG), prgWindow)
	}
	for i := 0; i < prgBankSize; i++ {
		if rom.PRG[i] != 0xAB || rom.PRG[i+prgBankSize] != 0xAB {
			t.Fatalf("single 16KiB bank not mirrored into both halves at offset %d", i)
			break
		}
	}
	want := Header{PRGBanks: 1, CHRBanks: 1, Mapper: 0, Trainer: false}
	if diff := deep.Equal(rom.Header, want); diff != nil {
		t.Errorf("header mismatch: %v", diff)
	}
}

func TestLoadDualBankVerbatim(t *testing.T) {
	img := buildImage(2, 0, 0, 0, false, 0)
	// Make the two banks distinguishable.
	for i := 0; i < prgBankSize; i++ {
		img[headerSize+i] = 0x11
		img[headerSize+prgBankSize+i] = 0x22
	}
	rom, err := Load(img)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rom.PRG[0] != 0x11 || rom.PRG[prgBankSize] != 0x22 {
		t.Fatalf("two-bank PRG not copied verbatim: PRG[0]=%#02x PRG[bank]=%#02x", rom.PRG[0], rom.PRG[prgBankSize])
	}
}

func TestLoadWithTrainer(t *testing.T) {
	img := buildImage(1, 0, 0, 0, true, 0x55)
	rom, err := Load(img)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !rom.Header.Trainer {
		t.Error("Trainer flag not parsed")
	}
	if rom.PRG[0] != 0x55 {
		t.Errorf("PRG[0] = %#02x, want 0x55 (trainer bytes must be skipped, not counted as PRG)", rom.PRG[0])
	}
}

func TestLoadBadMagic(t *testing.T) {
	img := buildImage(1, 0, 0, 0, false, 0)
	img[0] = 'X'
	if _, err := Load(img); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestLoadUnsupportedMapper(t *testing.T) {
	img := buildImage(1, 0, 1, 0, false, 0) // mapper 1 (MMC1)
	if _, err := Load(img); err == nil {
		t.Fatal("expected error for unsupported mapper")
	}
}

func TestLoadBadBankCount(t *testing.T) {
	img := buildImage(3, 0, 0, 0, false, 0)
	if _, err := Load(img); err == nil {
		t.Fatal("expected error for prg_banks outside {1,2}")
	}
}

func TestLoadTruncatedImage(t *testing.T) {
	img := buildImage(2, 0, 0, 0, false, 0)
	img = img[:headerSize+prgBankSize] // Claim 2 banks but only provide 1.
	if _, err := Load(img); err == nil {
		t.Fatal("expected error for truncated PRG data")
	}
}

func TestMapperNumberSpansBothNibbles(t *testing.T) {
	// Mapper 0x10 has its low nibble in byte 6 bits 4-7 (0) and high
	// nibble in byte 7 bits 4-7 (1) -- this should fail as unsupported
	// but must report 16, not 0 or 1, to prove both nibbles combine.
	img := buildImage(1, 0, 0, 1, false, 0)
	_, err := Load(img)
	if err == nil {
		t.Fatal("expected error for mapper 16")
	}
	he, ok := err.(HeaderError)
	if !ok {
		t.Fatalf("expected HeaderError, got %T", err)
	}
	if want := "unsupported mapper 16"; !contains(he.Reason, want) {
		t.Errorf("HeaderError.Reason = %q, want it to mention %q", he.Reason, want)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
