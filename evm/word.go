package evm

import (
	"math"

	"github.com/entropyio/go-evmlite/config"
	"github.com/holiman/uint256"
)

// Word is the 256-bit unsigned machine word. Arithmetic wraps modulo 2^256;
// signed opcodes reinterpret the same bits as two's complement.
type Word = uint256.Int

// gasSentinel is what GAS reports: execution is never metered.
var gasSentinel = new(uint256.Int).SetAllOne()

// toWordSize returns the ceiled word size required for memory expansion.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-config.WordSize+1 {
		return math.MaxUint64/config.WordSize + 1
	}
	return (size + config.WordSize - 1) / config.WordSize
}

// memoryRegion converts a stack (offset, length) pair into a memory region,
// reporting whether the rounded end of the region would overflow uint64.
func memoryRegion(off, l *uint256.Int) (uint64, uint64, bool) {
	if !l.IsUint64() {
		return 0, 0, true
	}
	return memoryRegionWithUint(off, l.Uint64())
}

// memoryRegionWithUint is memoryRegion with a fixed length.
func memoryRegionWithUint(off *uint256.Int, length64 uint64) (uint64, uint64, bool) {
	// a zero length touches nothing, regardless of offset
	if length64 == 0 {
		return 0, 0, false
	}
	offset64, overflow := off.Uint64WithOverflow()
	if overflow {
		return 0, 0, true
	}
	end := offset64 + length64
	if end < offset64 || end > math.MaxUint64-config.WordSize+1 {
		return 0, 0, true
	}
	return offset64, length64, false
}
