package dma

// Bus is the read side of the CPU bus that OAM DMA pulls source bytes from.
type Bus interface {
	Read(addr uint16) byte
}

// OAMSink receives OAM DMA bytes at the PPU's current OAMADDR, which
// auto-increments after each write (mirroring writes through $2004).
type OAMSink interface {
	OAMDMAWrite(value byte)
}

type oamPhase int

const (
	oamIdle oamPhase = iota
	oamHalt
	oamAlign
	oamRead
	oamWrite
	oamPaused
	oamResuming
)

// OAM is the 513-514 cycle $4014 sequencer. It advances one CPU cycle per
// Tick call and exposes the three-phase shape spec.md section 9 calls out:
// query (pure), execute (single side effect), update (bookkeeping) are
// kept as separate private steps even though Tick runs all three, so the
// side-effecting step is never entangled with state transitions.
type OAM struct {
	Active bool

	page   byte
	offset int
	buffer byte

	phase      oamPhase
	resumeTo   oamPhase
	needsAlign bool
}

// NewOAM returns an idle OAM DMA sequencer.
func NewOAM() *OAM {
	return &OAM{phase: oamIdle}
}

// Trigger starts a DMA from CPU page $xx00-$xxFF, sourced from writing page
// to $4014. The CPU always loses one cycle getting off the bus before the
// transfer starts; an odd starting CPU cycle costs one further alignment
// cycle on top of that, for 513 cycles total on an even start and 514 on
// an odd one (256 read/write pairs either way).
func (o *OAM) Trigger(page byte, cpuCycle uint64) {
	o.Active = true
	o.page = page
	o.offset = 0
	o.phase = oamHalt
	o.needsAlign = cpuCycle%2 == 1
}

// Paused reports whether DMC DMA has the sequencer frozen mid-read or
// mid-write.
func (o *OAM) Paused() bool {
	return o.phase == oamPaused
}

// Pause freezes the sequencer because DMC DMA has just activated. The
// in-flight read/write position is captured in the ledger for the
// duplication-write quirk on resume.
func (o *OAM) Pause(ledger *Ledger, cpuCycle uint64) {
	if !o.Active || o.phase == oamPaused {
		return
	}
	o.resumeTo = o.phase
	o.phase = oamPaused
	ledger.OAMPauseCycle = cpuCycle
	ledger.InterruptedByte = o.buffer
	ledger.InterruptedTarget = uint16(o.page)<<8 | uint16(o.offset)
}

// Resume is called when DMC DMA goes inactive. It does not immediately
// continue the sequence: the next Tick performs the duplicated write the
// real hardware performs on the cycle it regains the bus.
func (o *OAM) Resume(ledger *Ledger, cpuCycle uint64) {
	if o.phase != oamPaused {
		return
	}
	ledger.OAMResumeCycle = cpuCycle
	ledger.NeedsAlignmentAfterDMC = true
	o.phase = oamResuming
}

type oamAction int

const (
	oamActionNone oamAction = iota
	oamActionRead
	oamActionWrite
	oamActionDuplicateWrite
)

type oamQuery struct {
	action oamAction
	addr   uint16
	value  byte
}

// query inspects state only; it performs no bus access.
func (o *OAM) query(ledger *Ledger) oamQuery {
	switch o.phase {
	case oamRead:
		return oamQuery{action: oamActionRead, addr: uint16(o.page)<<8 | uint16(o.offset)}
	case oamWrite:
		return oamQuery{action: oamActionWrite, value: o.buffer}
	case oamResuming:
		return oamQuery{action: oamActionDuplicateWrite, value: ledger.InterruptedByte}
	default: // oamHalt, oamAlign, oamPaused, oamIdle
		return oamQuery{action: oamActionNone}
	}
}

// execute performs exactly the one bus access query decided on.
func (o *OAM) execute(bus Bus, sink OAMSink, q oamQuery) {
	switch q.action {
	case oamActionRead:
		o.buffer = bus.Read(q.addr)
	case oamActionWrite, oamActionDuplicateWrite:
		sink.OAMDMAWrite(q.value)
	}
}

// update advances phase/offset bookkeeping only.
func (o *OAM) update(ledger *Ledger, q oamQuery) {
	switch o.phase {
	case oamHalt:
		if o.needsAlign {
			o.phase = oamAlign
		} else {
			o.phase = oamRead
		}
	case oamAlign:
		o.phase = oamRead
	case oamRead:
		o.phase = oamWrite
	case oamWrite:
		o.offset++
		if o.offset >= 256 {
			o.Active = false
			o.phase = oamIdle
		} else {
			o.phase = oamRead
		}
	case oamResuming:
		// The duplicated write is a free cycle: it does not advance offset.
		if ledger.NeedsAlignmentAfterDMC {
			o.phase = oamAlign
			ledger.NeedsAlignmentAfterDMC = false
		} else {
			o.phase = o.resumeTo
		}
	case oamPaused, oamIdle:
		// Ticked while paused/idle should not happen; the orchestrator
		// gates calls to Tick on Active && !Paused().
	}
}

// Tick runs one CPU cycle of the sequencer: query, execute, update.
func (o *OAM) Tick(bus Bus, sink OAMSink, ledger *Ledger) {
	if !o.Active || o.phase == oamPaused {
		return
	}
	q := o.query(ledger)
	o.execute(bus, sink, q)
	o.update(ledger, q)
}
