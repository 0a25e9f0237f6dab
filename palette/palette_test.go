package palette

import "testing"

func TestRGBAMasksToSixBits(t *testing.T) {
	if RGBA(0x00) != Table[0] {
		t.Fatal("index 0 mismatch")
	}
	if RGBA(0x40) != Table[0] {
		t.Fatal("index 0x40 should mask down to 0")
	}
	if RGBA(0x3F) != Table[0x3F] {
		t.Fatal("index 0x3F mismatch")
	}
}

func TestTableHas64Entries(t *testing.T) {
	if len(Table) != 64 {
		t.Fatalf("len(Table) = %d, want 64", len(Table))
	}
}
