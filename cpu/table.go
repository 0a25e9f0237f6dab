package cpu

import "github.com/golang/glog"

// Addressing modes, named like the teacher's mos6502 addressing-mode
// constants.
const (
	modeImplicit byte = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
)

// instrClass groups opcodes by the microstep shape they need, independent
// of which specific operation they perform.
type instrClass byte

const (
	clsRead instrClass = iota
	clsWrite
	clsStoreUnstable
	clsRMW
	clsAccumulator
	clsImplied
	clsBranch
	clsJump
	clsJumpIndirect
	clsJSR
	clsRTS
	clsRTI
	clsBRK
	clsPush
	clsPull
	clsJam
)

// opcodeEntry is one row of the 256-entry dispatch table: which pure
// operation function to call (by instruction id) and which microstep
// shape (mode, class) produces the right cycle count and bus accesses.
type opcodeEntry struct {
	name  string
	mode  byte
	class instrClass
	inst  uint8
}

// Instruction ids. The official 151 are named exactly as the teacher's
// mos6502 instruction constants; the 105 unofficial opcodes are added
// after, named per the byte-to-mnemonic table in jmchacon-6502's cpu.go
// and the wider NESdev "unofficial opcodes" convention it documents.
const (
	instADC uint8 = iota
	instAND
	instASL
	instBCC
	instBCS
	instBEQ
	instBIT
	instBMI
	instBNE
	instBPL
	instBRK
	instBVC
	instBVS
	instCLC
	instCLD
	instCLI
	instCLV
	instCMP
	instCPX
	instCPY
	instDEC
	instDEX
	instDEY
	instEOR
	instINC
	instINX
	instINY
	instJMP
	instJSR
	instLDA
	instLDX
	instLDY
	instLSR
	instNOP
	instORA
	instPHA
	instPHP
	instPLA
	instPLP
	instROL
	instROR
	instRTI
	instRTS
	instSBC
	instSEC
	instSED
	instSEI
	instSTA
	instSTX
	instSTY
	instTAX
	instTAY
	instTSX
	instTXA
	instTXS
	instTYA

	// Unofficial/undocumented opcodes.
	instSLO // ASL + ORA
	instRLA // ROL + AND
	instSRE // LSR + EOR
	instRRA // ROR + ADC
	instSAX // store A&X
	instLAX // load A and X from the same value
	instDCP // DEC + CMP
	instISC // INC + SBC
	instANC // AND, then C = bit 7 of result
	instALR // AND, then LSR A
	instARR // AND, then ROR A with quirky V/C
	instXAA // unstable: A = (A | magic) & X & imm
	instLXA // unstable: A = X = (A | magic) & imm
	instSBX // (A & X) - imm -> X, sets C like CMP
	instSHA // unstable high-byte-AND store (A & X & (hi+1))
	instSHX // unstable high-byte-AND store (X & (hi+1))
	instSHY // unstable high-byte-AND store (Y & (hi+1))
	instSHS // unstable: SP = A & X, then SHA-style store with SP
	instLAS // (mem & SP) -> A, X, SP
	instJAM // halts the CPU
)

var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry

	set := func(op byte, name string, mode byte, class instrClass, inst uint8) {
		t[op] = opcodeEntry{name: name, mode: mode, class: class, inst: inst}
	}

	// Official opcodes, grounded on the teacher's opcodes map byte
	// assignments.
	set(0x69, "ADC", modeImmediate, clsRead, instADC)
	set(0x65, "ADC", modeZeroPage, clsRead, instADC)
	set(0x75, "ADC", modeZeroPageX, clsRead, instADC)
	set(0x6D, "ADC", modeAbsolute, clsRead, instADC)
	set(0x7D, "ADC", modeAbsoluteX, clsRead, instADC)
	set(0x79, "ADC", modeAbsoluteY, clsRead, instADC)
	set(0x61, "ADC", modeIndirectX, clsRead, instADC)
	set(0x71, "ADC", modeIndirectY, clsRead, instADC)

	set(0x29, "AND", modeImmediate, clsRead, instAND)
	set(0x25, "AND", modeZeroPage, clsRead, instAND)
	set(0x35, "AND", modeZeroPageX, clsRead, instAND)
	set(0x2D, "AND", modeAbsolute, clsRead, instAND)
	set(0x3D, "AND", modeAbsoluteX, clsRead, instAND)
	set(0x39, "AND", modeAbsoluteY, clsRead, instAND)
	set(0x21, "AND", modeIndirectX, clsRead, instAND)
	set(0x31, "AND", modeIndirectY, clsRead, instAND)

	set(0x0A, "ASL", modeAccumulator, clsAccumulator, instASL)
	set(0x06, "ASL", modeZeroPage, clsRMW, instASL)
	set(0x16, "ASL", modeZeroPageX, clsRMW, instASL)
	set(0x0E, "ASL", modeAbsolute, clsRMW, instASL)
	set(0x1E, "ASL", modeAbsoluteX, clsRMW, instASL)

	set(0x90, "BCC", modeRelative, clsBranch, instBCC)
	set(0xB0, "BCS", modeRelative, clsBranch, instBCS)
	set(0xF0, "BEQ", modeRelative, clsBranch, instBEQ)
	set(0x30, "BMI", modeRelative, clsBranch, instBMI)
	set(0xD0, "BNE", modeRelative, clsBranch, instBNE)
	set(0x10, "BPL", modeRelative, clsBranch, instBPL)
	set(0x50, "BVC", modeRelative, clsBranch, instBVC)
	set(0x70, "BVS", modeRelative, clsBranch, instBVS)

	set(0x24, "BIT", modeZeroPage, clsRead, instBIT)
	set(0x2C, "BIT", modeAbsolute, clsRead, instBIT)

	set(0x00, "BRK", modeImplicit, clsBRK, instBRK)

	set(0x18, "CLC", modeImplicit, clsImplied, instCLC)
	set(0xD8, "CLD", modeImplicit, clsImplied, instCLD)
	set(0x58, "CLI", modeImplicit, clsImplied, instCLI)
	set(0xB8, "CLV", modeImplicit, clsImplied, instCLV)

	set(0xC9, "CMP", modeImmediate, clsRead, instCMP)
	set(0xC5, "CMP", modeZeroPage, clsRead, instCMP)
	set(0xD5, "CMP", modeZeroPageX, clsRead, instCMP)
	set(0xCD, "CMP", modeAbsolute, clsRead, instCMP)
	set(0xDD, "CMP", modeAbsoluteX, clsRead, instCMP)
	set(0xD9, "CMP", modeAbsoluteY, clsRead, instCMP)
	set(0xC1, "CMP", modeIndirectX, clsRead, instCMP)
	set(0xD1, "CMP", modeIndirectY, clsRead, instCMP)

	set(0xE0, "CPX", modeImmediate, clsRead, instCPX)
	set(0xE4, "CPX", modeZeroPage, clsRead, instCPX)
	set(0xEC, "CPX", modeAbsolute, clsRead, instCPX)
	set(0xC0, "CPY", modeImmediate, clsRead, instCPY)
	set(0xC4, "CPY", modeZeroPage, clsRead, instCPY)
	set(0xCC, "CPY", modeAbsolute, clsRead, instCPY)

	set(0xC6, "DEC", modeZeroPage, clsRMW, instDEC)
	set(0xD6, "DEC", modeZeroPageX, clsRMW, instDEC)
	set(0xCE, "DEC", modeAbsolute, clsRMW, instDEC)
	set(0xDE, "DEC", modeAbsoluteX, clsRMW, instDEC)
	set(0xCA, "DEX", modeImplicit, clsImplied, instDEX)
	set(0x88, "DEY", modeImplicit, clsImplied, instDEY)

	set(0x49, "EOR", modeImmediate, clsRead, instEOR)
	set(0x45, "EOR", modeZeroPage, clsRead, instEOR)
	set(0x55, "EOR", modeZeroPageX, clsRead, instEOR)
	set(0x4D, "EOR", modeAbsolute, clsRead, instEOR)
	set(0x5D, "EOR", modeAbsoluteX, clsRead, instEOR)
	set(0x59, "EOR", modeAbsoluteY, clsRead, instEOR)
	set(0x41, "EOR", modeIndirectX, clsRead, instEOR)
	set(0x51, "EOR", modeIndirectY, clsRead, instEOR)

	set(0xE6, "INC", modeZeroPage, clsRMW, instINC)
	set(0xF6, "INC", modeZeroPageX, clsRMW, instINC)
	set(0xEE, "INC", modeAbsolute, clsRMW, instINC)
	set(0xFE, "INC", modeAbsoluteX, clsRMW, instINC)
	set(0xE8, "INX", modeImplicit, clsImplied, instINX)
	set(0xC8, "INY", modeImplicit, clsImplied, instINY)

	set(0x4C, "JMP", modeAbsolute, clsJump, instJMP)
	set(0x6C, "JMP", modeIndirect, clsJumpIndirect, instJMP)
	set(0x20, "JSR", modeAbsolute, clsJSR, instJSR)

	set(0xA9, "LDA", modeImmediate, clsRead, instLDA)
	set(0xA5, "LDA", modeZeroPage, clsRead, instLDA)
	set(0xB5, "LDA", modeZeroPageX, clsRead, instLDA)
	set(0xAD, "LDA", modeAbsolute, clsRead, instLDA)
	set(0xBD, "LDA", modeAbsoluteX, clsRead, instLDA)
	set(0xB9, "LDA", modeAbsoluteY, clsRead, instLDA)
	set(0xA1, "LDA", modeIndirectX, clsRead, instLDA)
	set(0xB1, "LDA", modeIndirectY, clsRead, instLDA)

	set(0xA2, "LDX", modeImmediate, clsRead, instLDX)
	set(0xA6, "LDX", modeZeroPage, clsRead, instLDX)
	set(0xB6, "LDX", modeZeroPageY, clsRead, instLDX)
	set(0xAE, "LDX", modeAbsolute, clsRead, instLDX)
	set(0xBE, "LDX", modeAbsoluteY, clsRead, instLDX)

	set(0xA0, "LDY", modeImmediate, clsRead, instLDY)
	set(0xA4, "LDY", modeZeroPage, clsRead, instLDY)
	set(0xB4, "LDY", modeZeroPageX, clsRead, instLDY)
	set(0xAC, "LDY", modeAbsolute, clsRead, instLDY)
	set(0xBC, "LDY", modeAbsoluteX, clsRead, instLDY)

	set(0x4A, "LSR", modeAccumulator, clsAccumulator, instLSR)
	set(0x46, "LSR", modeZeroPage, clsRMW, instLSR)
	set(0x56, "LSR", modeZeroPageX, clsRMW, instLSR)
	set(0x4E, "LSR", modeAbsolute, clsRMW, instLSR)
	set(0x5E, "LSR", modeAbsoluteX, clsRMW, instLSR)

	set(0xEA, "NOP", modeImplicit, clsImplied, instNOP)

	set(0x09, "ORA", modeImmediate, clsRead, instORA)
	set(0x05, "ORA", modeZeroPage, clsRead, instORA)
	set(0x15, "ORA", modeZeroPageX, clsRead, instORA)
	set(0x0D, "ORA", modeAbsolute, clsRead, instORA)
	set(0x1D, "ORA", modeAbsoluteX, clsRead, instORA)
	set(0x19, "ORA", modeAbsoluteY, clsRead, instORA)
	set(0x01, "ORA", modeIndirectX, clsRead, instORA)
	set(0x11, "ORA", modeIndirectY, clsRead, instORA)

	set(0x48, "PHA", modeImplicit, clsPush, instPHA)
	set(0x08, "PHP", modeImplicit, clsPush, instPHP)
	set(0x68, "PLA", modeImplicit, clsPull, instPLA)
	set(0x28, "PLP", modeImplicit, clsPull, instPLP)

	set(0x2A, "ROL", modeAccumulator, clsAccumulator, instROL)
	set(0x26, "ROL", modeZeroPage, clsRMW, instROL)
	set(0x36, "ROL", modeZeroPageX, clsRMW, instROL)
	set(0x2E, "ROL", modeAbsolute, clsRMW, instROL)
	set(0x3E, "ROL", modeAbsoluteX, clsRMW, instROL)

	set(0x6A, "ROR", modeAccumulator, clsAccumulator, instROR)
	set(0x66, "ROR", modeZeroPage, clsRMW, instROR)
	set(0x76, "ROR", modeZeroPageX, clsRMW, instROR)
	set(0x6E, "ROR", modeAbsolute, clsRMW, instROR)
	set(0x7E, "ROR", modeAbsoluteX, clsRMW, instROR)

	set(0x40, "RTI", modeImplicit, clsRTI, instRTI)
	set(0x60, "RTS", modeImplicit, clsRTS, instRTS)

	set(0xE9, "SBC", modeImmediate, clsRead, instSBC)
	set(0xE5, "SBC", modeZeroPage, clsRead, instSBC)
	set(0xF5, "SBC", modeZeroPageX, clsRead, instSBC)
	set(0xED, "SBC", modeAbsolute, clsRead, instSBC)
	set(0xFD, "SBC", modeAbsoluteX, clsRead, instSBC)
	set(0xF9, "SBC", modeAbsoluteY, clsRead, instSBC)
	set(0xE1, "SBC", modeIndirectX, clsRead, instSBC)
	set(0xF1, "SBC", modeIndirectY, clsRead, instSBC)
	set(0xEB, "SBC", modeImmediate, clsRead, instSBC) // USBC, the undocumented SBC #imm alias

	set(0x38, "SEC", modeImplicit, clsImplied, instSEC)
	set(0xF8, "SED", modeImplicit, clsImplied, instSED)
	set(0x78, "SEI", modeImplicit, clsImplied, instSEI)

	set(0x85, "STA", modeZeroPage, clsWrite, instSTA)
	set(0x95, "STA", modeZeroPageX, clsWrite, instSTA)
	set(0x8D, "STA", modeAbsolute, clsWrite, instSTA)
	set(0x9D, "STA", modeAbsoluteX, clsWrite, instSTA)
	set(0x99, "STA", modeAbsoluteY, clsWrite, instSTA)
	set(0x81, "STA", modeIndirectX, clsWrite, instSTA)
	set(0x91, "STA", modeIndirectY, clsWrite, instSTA)

	set(0x86, "STX", modeZeroPage, clsWrite, instSTX)
	set(0x96, "STX", modeZeroPageY, clsWrite, instSTX)
	set(0x8E, "STX", modeAbsolute, clsWrite, instSTX)

	set(0x84, "STY", modeZeroPage, clsWrite, instSTY)
	set(0x94, "STY", modeZeroPageX, clsWrite, instSTY)
	set(0x8C, "STY", modeAbsolute, clsWrite, instSTY)

	set(0xAA, "TAX", modeImplicit, clsImplied, instTAX)
	set(0xA8, "TAY", modeImplicit, clsImplied, instTAY)
	set(0xBA, "TSX", modeImplicit, clsImplied, instTSX)
	set(0x8A, "TXA", modeImplicit, clsImplied, instTXA)
	set(0x9A, "TXS", modeImplicit, clsImplied, instTXS)
	set(0x98, "TYA", modeImplicit, clsImplied, instTYA)

	// Unofficial opcodes; byte assignments per jmchacon-6502's cpu.go
	// switch and the NESdev "unofficial opcodes" convention it cites.
	set(0x07, "SLO", modeZeroPage, clsRMW, instSLO)
	set(0x17, "SLO", modeZeroPageX, clsRMW, instSLO)
	set(0x0F, "SLO", modeAbsolute, clsRMW, instSLO)
	set(0x1F, "SLO", modeAbsoluteX, clsRMW, instSLO)
	set(0x1B, "SLO", modeAbsoluteY, clsRMW, instSLO)
	set(0x03, "SLO", modeIndirectX, clsRMW, instSLO)
	set(0x13, "SLO", modeIndirectY, clsRMW, instSLO)

	set(0x27, "RLA", modeZeroPage, clsRMW, instRLA)
	set(0x37, "RLA", modeZeroPageX, clsRMW, instRLA)
	set(0x2F, "RLA", modeAbsolute, clsRMW, instRLA)
	set(0x3F, "RLA", modeAbsoluteX, clsRMW, instRLA)
	set(0x3B, "RLA", modeAbsoluteY, clsRMW, instRLA)
	set(0x23, "RLA", modeIndirectX, clsRMW, instRLA)
	set(0x33, "RLA", modeIndirectY, clsRMW, instRLA)

	set(0x47, "SRE", modeZeroPage, clsRMW, instSRE)
	set(0x57, "SRE", modeZeroPageX, clsRMW, instSRE)
	set(0x4F, "SRE", modeAbsolute, clsRMW, instSRE)
	set(0x5F, "SRE", modeAbsoluteX, clsRMW, instSRE)
	set(0x5B, "SRE", modeAbsoluteY, clsRMW, instSRE)
	set(0x43, "SRE", modeIndirectX, clsRMW, instSRE)
	set(0x53, "SRE", modeIndirectY, clsRMW, instSRE)

	set(0x67, "RRA", modeZeroPage, clsRMW, instRRA)
	set(0x77, "RRA", modeZeroPageX, clsRMW, instRRA)
	set(0x6F, "RRA", modeAbsolute, clsRMW, instRRA)
	set(0x7F, "RRA", modeAbsoluteX, clsRMW, instRRA)
	set(0x7B, "RRA", modeAbsoluteY, clsRMW, instRRA)
	set(0x63, "RRA", modeIndirectX, clsRMW, instRRA)
	set(0x73, "RRA", modeIndirectY, clsRMW, instRRA)

	set(0x87, "SAX", modeZeroPage, clsWrite, instSAX)
	set(0x97, "SAX", modeZeroPageY, clsWrite, instSAX)
	set(0x8F, "SAX", modeAbsolute, clsWrite, instSAX)
	set(0x83, "SAX", modeIndirectX, clsWrite, instSAX)

	set(0xA7, "LAX", modeZeroPage, clsRead, instLAX)
	set(0xB7, "LAX", modeZeroPageY, clsRead, instLAX)
	set(0xAF, "LAX", modeAbsolute, clsRead, instLAX)
	set(0xBF, "LAX", modeAbsoluteY, clsRead, instLAX)
	set(0xA3, "LAX", modeIndirectX, clsRead, instLAX)
	set(0xB3, "LAX", modeIndirectY, clsRead, instLAX)

	set(0xC7, "DCP", modeZeroPage, clsRMW, instDCP)
	set(0xD7, "DCP", modeZeroPageX, clsRMW, instDCP)
	set(0xCF, "DCP", modeAbsolute, clsRMW, instDCP)
	set(0xDF, "DCP", modeAbsoluteX, clsRMW, instDCP)
	set(0xDB, "DCP", modeAbsoluteY, clsRMW, instDCP)
	set(0xC3, "DCP", modeIndirectX, clsRMW, instDCP)
	set(0xD3, "DCP", modeIndirectY, clsRMW, instDCP)

	set(0xE7, "ISC", modeZeroPage, clsRMW, instISC)
	set(0xF7, "ISC", modeZeroPageX, clsRMW, instISC)
	set(0xEF, "ISC", modeAbsolute, clsRMW, instISC)
	set(0xFF, "ISC", modeAbsoluteX, clsRMW, instISC)
	set(0xFB, "ISC", modeAbsoluteY, clsRMW, instISC)
	set(0xE3, "ISC", modeIndirectX, clsRMW, instISC)
	set(0xF3, "ISC", modeIndirectY, clsRMW, instISC)

	set(0x0B, "ANC", modeImmediate, clsRead, instANC)
	set(0x2B, "ANC", modeImmediate, clsRead, instANC)
	set(0x4B, "ALR", modeImmediate, clsRead, instALR)
	set(0x6B, "ARR", modeImmediate, clsRead, instARR)
	set(0x8B, "XAA", modeImmediate, clsRead, instXAA)
	set(0xAB, "LXA", modeImmediate, clsRead, instLXA)
	set(0xCB, "SBX", modeImmediate, clsRead, instSBX)

	set(0x9F, "SHA", modeAbsoluteY, clsStoreUnstable, instSHA)
	set(0x93, "SHA", modeIndirectY, clsStoreUnstable, instSHA)
	set(0x9E, "SHX", modeAbsoluteY, clsStoreUnstable, instSHX)
	set(0x9C, "SHY", modeAbsoluteX, clsStoreUnstable, instSHY)
	set(0x9B, "SHS", modeAbsoluteY, clsStoreUnstable, instSHS)

	set(0xBB, "LAS", modeAbsoluteY, clsRead, instLAS)

	// Unofficial NOPs: implied (1-byte), zero page, zero page,X,
	// absolute, absolute,X, and immediate widths, all behaving as NOP
	// but consuming the table's documented cycle/byte counts.
	for _, op := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "NOP", modeImplicit, clsImplied, instNOP)
	}
	for _, op := range []byte{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "NOP", modeImmediate, clsRead, instNOP)
	}
	for _, op := range []byte{0x04, 0x44, 0x64} {
		set(op, "NOP", modeZeroPage, clsRead, instNOP)
	}
	for _, op := range []byte{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "NOP", modeZeroPageX, clsRead, instNOP)
	}
	for _, op := range []byte{0x0C} {
		set(op, "NOP", modeAbsolute, clsRead, instNOP)
	}
	for _, op := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "NOP", modeAbsoluteX, clsRead, instNOP)
	}

	// JAM/KIL: these byte values never return from execution on real
	// hardware. Byte list per jmchacon-6502's cpu.go halt cases.
	for _, op := range []byte{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, "JAM", modeImplicit, clsJam, instJAM)
	}

	// Every one of the 256 opcode bytes must be assigned; an unset entry's
	// zero value (name "") would silently decode as a bogus ADC/implicit
	// instruction instead of the impossible-state it actually is.
	for op, entry := range t {
		if entry.name == "" {
			glog.Fatalf("cpu: opcode %#02x has no table entry", op)
		}
	}

	return t
}
