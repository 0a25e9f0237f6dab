package cpu

// buildSchedule turns one opcodeTable entry into the queue of per-cycle
// bus accesses that reproduce real 6502 timing: dummy reads on indexed
// addressing, the RMW dummy-write-then-write, and the JSR/RTS/RTI/BRK/
// push/pull hand-coded sequences SPEC_FULL.md calls out by name.
func buildSchedule(e opcodeEntry) []microstep {
	switch e.class {
	case clsImplied:
		return []microstep{impliedStep(e.inst)}
	case clsAccumulator:
		return []microstep{accumulatorStep(e.inst)}
	case clsBranch:
		return branchSchedule(e.inst)
	case clsJump:
		return jumpSchedule()
	case clsJumpIndirect:
		return jumpIndirectSchedule()
	case clsJSR:
		return jsrSchedule()
	case clsRTS:
		return rtsSchedule()
	case clsRTI:
		return rtiSchedule()
	case clsBRK:
		return brkSchedule()
	case clsPush:
		return pushSchedule(e.inst)
	case clsPull:
		return pullSchedule(e.inst)
	case clsRead:
		return append(addressSteps(e.mode, false), finalReadStep(e.inst))
	case clsWrite:
		return append(addressSteps(e.mode, true), finalWriteStep(e.inst))
	case clsStoreUnstable:
		return append(addressSteps(e.mode, true), finalStoreUnstableStep(e.inst))
	case clsRMW:
		return append(addressSteps(e.mode, true), rmwSteps(e.inst)...)
	}
	return nil
}

// addressSteps resolves c.effectiveAddress, leaving the final data access
// to the caller. forceDummy controls whether indexed addressing always
// performs the "wrong page" read (write/RMW classes always do; read-class
// instructions pass forceDummy=false, and without a page cross their
// wrong-page step skips the bus access but still takes its cycle, so an
// indexed read takes the page-crossing cycle count either way; there is no
// same-cycle fallthrough into finalReadStep -- see DESIGN.md Open Question
// decision 1).
func addressSteps(mode byte, forceDummy bool) []microstep {
	switch mode {
	case modeZeroPage:
		return []microstep{
			func(c *State, bus BusPort) bool {
				c.effectiveAddress = uint16(bus.Read(c.PC))
				c.PC++
				return false
			},
		}
	case modeZeroPageX:
		return indexedZeroPage(func(c *State) byte { return c.X })
	case modeZeroPageY:
		return indexedZeroPage(func(c *State) byte { return c.Y })
	case modeAbsolute:
		return []microstep{
			func(c *State, bus BusPort) bool {
				c.operandLow = bus.Read(c.PC)
				c.PC++
				return false
			},
			func(c *State, bus BusPort) bool {
				c.operandHigh = bus.Read(c.PC)
				c.PC++
				c.effectiveAddress = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
				return false
			},
		}
	case modeAbsoluteX:
		return indexedAbsolute(func(c *State) byte { return c.X }, forceDummy)
	case modeAbsoluteY:
		return indexedAbsolute(func(c *State) byte { return c.Y }, forceDummy)
	case modeIndirectX:
		return []microstep{
			func(c *State, bus BusPort) bool {
				c.operandLow = bus.Read(c.PC)
				c.PC++
				return false
			},
			func(c *State, bus BusPort) bool {
				_ = bus.Read(uint16(c.operandLow)) // dummy read before indexing
				c.operandLow += c.X
				return false
			},
			func(c *State, bus BusPort) bool {
				c.tempValue = bus.Read(uint16(c.operandLow))
				return false
			},
			func(c *State, bus BusPort) bool {
				hi := bus.Read(uint16(byte(c.operandLow + 1)))
				c.effectiveAddress = uint16(hi)<<8 | uint16(c.tempValue)
				return false
			},
		}
	case modeIndirectY:
		return indirectY(forceDummy)
	}
	return nil
}

func indexedZeroPage(index func(c *State) byte) []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(c.PC)
			c.PC++
			return false
		},
		func(c *State, bus BusPort) bool {
			_ = bus.Read(uint16(c.operandLow))
			c.effectiveAddress = uint16(byte(c.operandLow + index(c)))
			return false
		},
	}
}

func indexedAbsolute(index func(c *State) byte, forceDummy bool) []microstep {
	steps := []microstep{
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(c.PC)
			c.PC++
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = bus.Read(c.PC)
			c.PC++
			base := uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			c.tempAddress = base // unindexed base, for SHA/SHX/SHY/SHS
			idx := uint16(index(c))
			c.effectiveAddress = base + idx
			c.pageCrossed = (base & 0xFF00) != (c.effectiveAddress & 0xFF00)
			return false
		},
	}
	if forceDummy {
		steps = append(steps, func(c *State, bus BusPort) bool {
			_ = bus.Read(wrongPageAddress(c))
			return false
		})
	} else {
		steps = append(steps, func(c *State, bus BusPort) bool {
			if !c.pageCrossed {
				return false // no page cross: no bus access, but this cycle is still spent
			}
			_ = bus.Read(wrongPageAddress(c))
			return false
		})
	}
	return steps
}

// wrongPageAddress recomputes the "same low byte, uncarried high byte"
// address indexed addressing always touches before (or instead of, when
// no page crossing happens) the corrected address.
func wrongPageAddress(c *State) uint16 {
	base := c.tempAddress
	lowPlusIndex := (c.effectiveAddress & 0xFF)
	return (base & 0xFF00) | lowPlusIndex
}

func indirectY(forceDummy bool) []microstep {
	steps := []microstep{
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(c.PC)
			c.PC++
			return false
		},
		func(c *State, bus BusPort) bool {
			c.tempValue = bus.Read(uint16(c.operandLow))
			return false
		},
		func(c *State, bus BusPort) bool {
			hi := bus.Read(uint16(byte(c.operandLow + 1)))
			base := uint16(hi)<<8 | uint16(c.tempValue)
			c.tempAddress = base
			c.effectiveAddress = base + uint16(c.Y)
			c.pageCrossed = (base & 0xFF00) != (c.effectiveAddress & 0xFF00)
			return false
		},
	}
	if forceDummy {
		steps = append(steps, func(c *State, bus BusPort) bool {
			_ = bus.Read(wrongPageAddress(c))
			return false
		})
	} else {
		steps = append(steps, func(c *State, bus BusPort) bool {
			if !c.pageCrossed {
				return false
			}
			_ = bus.Read(wrongPageAddress(c))
			return false
		})
	}
	return steps
}

// finalReadStep performs the data access (immediate operands read
// directly from PC; everything else reads c.effectiveAddress) and applies
// the instruction's pure Delta. For indexed addressing without a page
// cross, this runs one cycle after the idle wrong-page step, not in that
// step's cycle, so such reads take one cycle more than on hardware.
func finalReadStep(inst uint8) microstep {
	return func(c *State, bus BusPort) bool {
		var operand byte
		if c.mode == modeImmediate {
			operand = bus.Read(c.PC)
			c.PC++
		} else {
			operand = bus.Read(c.effectiveAddress)
		}
		applyDelta(c, bus, readOps[inst](*c, operand))
		return true
	}
}

func finalWriteStep(inst uint8) microstep {
	return func(c *State, bus BusPort) bool {
		bus.Write(c.effectiveAddress, writeOps[inst](*c))
		return true
	}
}

func finalStoreUnstableStep(inst uint8) microstep {
	return func(c *State, bus BusPort) bool {
		hiPlus1 := byte((c.tempAddress>>8)+1)
		bus.Write(c.effectiveAddress, storeUnstableOps[inst](c, hiPlus1))
		return true
	}
}

func rmwSteps(inst uint8) []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			c.tempValue = bus.Read(c.effectiveAddress)
			return false
		},
		func(c *State, bus BusPort) bool {
			bus.Write(c.effectiveAddress, c.tempValue) // dummy write of old value
			return false
		},
		func(c *State, bus BusPort) bool {
			d := rmwOps[inst](*c, c.tempValue)
			bus.Write(c.effectiveAddress, d.Value)
			applyDelta(c, bus, d)
			return true
		},
	}
}

func accumulatorStep(inst uint8) microstep {
	return func(c *State, bus BusPort) bool {
		_ = bus.Read(c.PC) // internal cycle, same bus timing as a dummy read
		d := rmwOps[inst](*c, c.A)
		c.A = d.Value
		applyDelta(c, bus, d)
		return true
	}
}

func impliedStep(inst uint8) microstep {
	return func(c *State, bus BusPort) bool {
		_ = bus.Read(c.PC)
		if inst == instNOP {
			return true
		}
		applyDelta(c, bus, impliedOps[inst](*c))
		return true
	}
}

func pushSchedule(inst uint8) []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			_ = bus.Read(c.PC)
			return false
		},
		func(c *State, bus BusPort) bool {
			var v byte
			if inst == instPHP {
				v = c.P | FlagBreak | FlagUnused
			} else {
				v = c.A
			}
			c.push(bus, v)
			return true
		},
	}
}

func pullSchedule(inst uint8) []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			_ = bus.Read(c.PC)
			return false
		},
		func(c *State, bus BusPort) bool {
			_ = bus.Read(stackPage + uint16(c.SP))
			return false
		},
		func(c *State, bus BusPort) bool {
			v := c.pull(bus)
			if inst == instPLP {
				c.P = (v &^ FlagBreak) | FlagUnused
			} else {
				c.A = v
				c.P = setNZ(c.P, c.A)
			}
			return true
		},
	}
}

func branchSchedule(inst uint8) []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			offset := int8(bus.Read(c.PC))
			c.PC++
			if !branchTaken(inst, c.P) {
				return true
			}
			c.tempAddress = uint16(int32(c.PC) + int32(offset))
			return false
		},
		func(c *State, bus BusPort) bool {
			_ = bus.Read(c.PC)
			if (c.PC & 0xFF00) == (c.tempAddress & 0xFF00) {
				c.PC = c.tempAddress
				return true
			}
			return false
		},
		func(c *State, bus BusPort) bool {
			wrong := (c.PC & 0xFF00) | (c.tempAddress & 0xFF)
			_ = bus.Read(wrong)
			c.PC = c.tempAddress
			return true
		},
	}
}

func branchTaken(inst uint8, p byte) bool {
	switch inst {
	case instBCC:
		return p&FlagCarry == 0
	case instBCS:
		return p&FlagCarry != 0
	case instBEQ:
		return p&FlagZero != 0
	case instBNE:
		return p&FlagZero == 0
	case instBMI:
		return p&FlagNegative != 0
	case instBPL:
		return p&FlagNegative == 0
	case instBVC:
		return p&FlagOverflow == 0
	case instBVS:
		return p&FlagOverflow != 0
	}
	return false
}

func jumpSchedule() []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(c.PC)
			c.PC++
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = bus.Read(c.PC)
			c.PC = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			return true
		},
	}
}

func jumpIndirectSchedule() []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(c.PC)
			c.PC++
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = bus.Read(c.PC)
			c.PC++
			c.tempAddress = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			return false
		},
		func(c *State, bus BusPort) bool {
			c.tempValue = bus.Read(c.tempAddress)
			return false
		},
		func(c *State, bus BusPort) bool {
			// The page-wrap bug: the high byte is fetched from
			// $xx00 when the pointer's low byte is $FF, instead
			// of crossing into the next page.
			hiAddr := (c.tempAddress & 0xFF00) | uint16(byte(c.tempAddress+1))
			hi := bus.Read(hiAddr)
			c.PC = uint16(hi)<<8 | uint16(c.tempValue)
			return true
		},
	}
}

func jsrSchedule() []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(c.PC)
			c.PC++
			return false
		},
		func(c *State, bus BusPort) bool {
			_ = bus.Read(stackPage + uint16(c.SP))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.push(bus, byte(c.PC>>8))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.push(bus, byte(c.PC&0xFF))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = bus.Read(c.PC)
			c.PC = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			return true
		},
	}
}

func rtsSchedule() []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			_ = bus.Read(c.PC)
			return false
		},
		func(c *State, bus BusPort) bool {
			_ = bus.Read(stackPage + uint16(c.SP))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandLow = c.pull(bus)
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = c.pull(bus)
			c.tempAddress = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			return false
		},
		func(c *State, bus BusPort) bool {
			_ = bus.Read(c.tempAddress)
			c.PC = c.tempAddress + 1
			return true
		},
	}
}

func rtiSchedule() []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			_ = bus.Read(c.PC)
			return false
		},
		func(c *State, bus BusPort) bool {
			_ = bus.Read(stackPage + uint16(c.SP))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.P = (c.pull(bus) &^ FlagBreak) | FlagUnused
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandLow = c.pull(bus)
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = c.pull(bus)
			c.PC = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			return true
		},
	}
}

func brkSchedule() []microstep {
	return []microstep{
		func(c *State, bus BusPort) bool {
			_ = bus.Read(c.PC) // padding byte, discarded
			c.PC++
			return false
		},
		func(c *State, bus BusPort) bool {
			c.push(bus, byte(c.PC>>8))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.push(bus, byte(c.PC&0xFF))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.push(bus, c.P|FlagBreak|FlagUnused)
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(VectorBRK)
			c.P |= FlagInterrupt
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = bus.Read(VectorBRK + 1)
			c.PC = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			return true
		},
	}
}

// interruptSequence is the 6-microstep tail of the 7-cycle NMI/IRQ
// handling; the opcode-fetch hijack's dummy read is cycle 0 and happens
// in State.fetchOpcode before this queue starts.
func interruptSequence(kind interruptKind) []microstep {
	vector := uint16(VectorIRQ)
	if kind == intNMI {
		vector = VectorNMI
	}
	return []microstep{
		func(c *State, bus BusPort) bool {
			c.push(bus, byte(c.PC>>8))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.push(bus, byte(c.PC&0xFF))
			return false
		},
		func(c *State, bus BusPort) bool {
			c.push(bus, (c.P&^FlagBreak)|FlagUnused)
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandLow = bus.Read(vector)
			c.P |= FlagInterrupt
			return false
		},
		func(c *State, bus BusPort) bool {
			c.operandHigh = bus.Read(vector + 1)
			return false
		},
		func(c *State, bus BusPort) bool {
			c.PC = uint16(c.operandHigh)<<8 | uint16(c.operandLow)
			return true
		},
	}
}
