package dma

import "testing"

type fakeBus struct {
	mem [0x10000]byte
}

func (b *fakeBus) Read(addr uint16) byte { return b.mem[addr] }

type fakeSink struct {
	writes []byte
}

func (s *fakeSink) OAMDMAWrite(v byte) { s.writes = append(s.writes, v) }

func newFakeBusPage(page byte) *fakeBus {
	b := &fakeBus{}
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.mem[base+uint16(i)] = byte(i)
	}
	return b
}

func TestOAMDMAEvenStartTakes513Cycles(t *testing.T) {
	bus := newFakeBusPage(0x02)
	sink := &fakeSink{}
	ledger := NewLedger()
	o := NewOAM()

	o.Trigger(0x02, 1000) // even cycle: halt cycle only, no alignment stall
	cycles := 0
	for o.Active {
		o.Tick(bus, sink, ledger)
		cycles++
		if cycles > 1000 {
			t.Fatal("OAM DMA never completed")
		}
	}
	if cycles != 513 {
		t.Errorf("cycles = %d, want 513", cycles)
	}
	if len(sink.writes) != 256 {
		t.Fatalf("writes = %d, want 256", len(sink.writes))
	}
	for i, v := range sink.writes {
		if v != byte(i) {
			t.Errorf("writes[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestOAMDMAOddStartTakes514Cycles(t *testing.T) {
	bus := newFakeBusPage(0x02)
	sink := &fakeSink{}
	ledger := NewLedger()
	o := NewOAM()

	o.Trigger(0x02, 1001) // odd cycle: halt cycle plus one alignment stall
	cycles := 0
	for o.Active {
		o.Tick(bus, sink, ledger)
		cycles++
		if cycles > 1000 {
			t.Fatal("OAM DMA never completed")
		}
	}
	if cycles != 514 {
		t.Errorf("cycles = %d, want 514", cycles)
	}
}

func TestOAMDMAPauseResumeDuplicatesByte(t *testing.T) {
	bus := newFakeBusPage(0x03)
	sink := &fakeSink{}
	ledger := NewLedger()
	o := NewOAM()

	o.Trigger(0x03, 1000)
	o.Tick(bus, sink, ledger) // halt cycle, no bus access
	o.Tick(bus, sink, ledger) // read byte 0
	o.Pause(ledger, 1001)     // freeze before the write lands
	if !o.Paused() {
		t.Fatal("OAM not paused after Pause")
	}
	preLen := len(sink.writes)
	o.Tick(bus, sink, ledger) // must be a no-op while paused
	if len(sink.writes) != preLen {
		t.Fatal("OAM advanced while paused")
	}

	o.Resume(ledger, 1005)
	o.Tick(bus, sink, ledger) // duplicate write of the interrupted byte
	if len(sink.writes) != preLen+1 {
		t.Fatal("resume did not perform the duplicate write")
	}
	if sink.writes[len(sink.writes)-1] != ledger.InterruptedByte {
		t.Errorf("duplicate write = %d, want interrupted byte %d", sink.writes[len(sink.writes)-1], ledger.InterruptedByte)
	}

	// Drain the rest; total writes should still be 256 real bytes plus the
	// one duplicate.
	for o.Active {
		o.Tick(bus, sink, ledger)
	}
	if len(sink.writes) != 257 {
		t.Errorf("total writes = %d, want 257 (256 real + 1 duplicate)", len(sink.writes))
	}
}

func TestDMCTriggerStallsThenReadsSample(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[0xC000] = 0x42
	ledger := NewLedger()
	d := NewDMC()

	d.Trigger(0xC000, 1000, ledger) // even cycle: 4-cycle stall
	var sample byte
	var done bool
	cycles := 0
	for d.Active {
		sample, done = d.Tick(bus)
		cycles++
		if cycles > 10 {
			t.Fatal("DMC DMA never completed")
		}
	}
	if cycles != 4 {
		t.Errorf("stall cycles = %d, want 4", cycles)
	}
	if !done || sample != 0x42 {
		t.Errorf("sample = %#02x, done = %v, want 0x42 true", sample, done)
	}
	if ledger.LastDMCActiveCycle != 1000 {
		t.Errorf("LastDMCActiveCycle = %d, want 1000", ledger.LastDMCActiveCycle)
	}
}

func TestDMCOddStartStallsThreeCycles(t *testing.T) {
	bus := &fakeBus{}
	ledger := NewLedger()
	d := NewDMC()

	d.Trigger(0xC000, 1001, ledger)
	cycles := 0
	for d.Active {
		d.Tick(bus)
		cycles++
	}
	if cycles != 3 {
		t.Errorf("stall cycles = %d, want 3", cycles)
	}
}

func TestDMCCompleteTimestampsLedger(t *testing.T) {
	ledger := NewLedger()
	d := NewDMC()
	d.Complete(ledger, 2000)
	if ledger.LastDMCInactiveCycle != 2000 {
		t.Errorf("LastDMCInactiveCycle = %d, want 2000", ledger.LastDMCInactiveCycle)
	}
}
