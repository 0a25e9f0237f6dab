package rom

import (
	"errors"
	"testing"
)

func buildImage(prgBanks, chrBanks, flags6, flags7 byte, trainer bool) []byte {
	header := make([]byte, 16)
	copy(header[0:4], "NES\x1A")
	header[4] = prgBanks
	header[5] = chrBanks
	header[6] = flags6
	header[7] = flags7

	var buf []byte
	buf = append(buf, header...)
	if trainer {
		buf = append(buf, make([]byte, trainerSize)...)
	}
	buf = append(buf, make([]byte, int(prgBanks)*prgBankSize)...)
	buf = append(buf, make([]byte, int(chrBanks)*chrBankSize)...)
	return buf
}

func TestNewFromBytesParsesNROM(t *testing.T) {
	img := buildImage(2, 1, 0x00, 0x00, false)
	r, err := NewFromBytes(img)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if len(r.PRG) != 2*prgBankSize {
		t.Errorf("len(PRG) = %d, want %d", len(r.PRG), 2*prgBankSize)
	}
	if len(r.CHR) != chrBankSize {
		t.Errorf("len(CHR) = %d, want %d", len(r.CHR), chrBankSize)
	}
	if r.MapperNum() != 0 {
		t.Errorf("MapperNum() = %d, want 0", r.MapperNum())
	}
}

func TestNewFromBytesRejectsBadMagic(t *testing.T) {
	img := buildImage(1, 1, 0, 0, false)
	img[0] = 'X'
	_, err := NewFromBytes(img)
	if !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestNewFromBytesRejectsTruncatedPRG(t *testing.T) {
	img := buildImage(2, 1, 0, 0, false)
	img = img[:len(img)-chrBankSize-100] // drop all CHR data and the end of PRG data
	_, err := NewFromBytes(img)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestMapperNumCombinesNibbles(t *testing.T) {
	img := buildImage(1, 1, 0x10, 0x20, false)
	r, err := NewFromBytes(img)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if got, want := r.MapperNum(), uint8(0x21); got != want {
		t.Errorf("MapperNum() = %#02x, want %#02x", got, want)
	}
}

func TestTrainerIsReadWhenPresent(t *testing.T) {
	img := buildImage(1, 1, flagTrainer, 0, true)
	r, err := NewFromBytes(img)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if len(r.Trainer) != trainerSize {
		t.Errorf("len(Trainer) = %d, want %d", len(r.Trainer), trainerSize)
	}
}

func TestMirroringModeHonorsFourScreenOverride(t *testing.T) {
	img := buildImage(1, 1, flagMirroring|flagFourScreen, 0, false)
	r, err := NewFromBytes(img)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if got := r.MirroringMode(); got != MirrorFourScreen {
		t.Errorf("MirroringMode() = %d, want MirrorFourScreen", got)
	}
}
