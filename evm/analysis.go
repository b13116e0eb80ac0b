package evm

// bitvec is a bit vector which maps bytes in a program.
// A set bit marks an offset holding a JUMPDEST instruction (as opposed to a
// 0x5b byte inside PUSH data).
type bitvec []byte

func (bits bitvec) set1(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

// isSet checks if the position is marked.
func (bits bitvec) isSet(pos uint64) bool {
	return ((bits[pos/8] >> (pos % 8)) & 1) == 1
}

// jumpdestAnalysis collects the valid jump destinations in code in a single
// forward pass. PUSH immediates are skipped without being inspected.
func jumpdestAnalysis(code []byte) bitvec {
	dests := make(bitvec, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			dests.set1(pc)
			continue
		}
		if op.IsPush() {
			pc += uint64(op - PUSH0)
		}
	}
	return dests
}

// validJumpdest reports whether dest is a JUMPDEST outside of push data.
func (bits bitvec) validJumpdest(code []byte, dest *Word) bool {
	udest, overflow := dest.Uint64WithOverflow()
	// PC cannot go beyond len(code) and certainly can't be bigger than 63bits.
	// Don't bother checking for JUMPDEST in that case.
	if overflow || udest >= uint64(len(code)) {
		return false
	}
	return bits.isSet(udest)
}
