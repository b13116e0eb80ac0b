package evm

import (
	"github.com/entropyio/go-evmlite/config"
	"github.com/holiman/uint256"
)

// Memory implements a simple memory model for the ethereum virtual machine.
// Its length is always a multiple of 32 and never shrinks.
type Memory struct {
	store []byte
}

// NewMemory returns a new memory model.
func NewMemory() *Memory {
	return &Memory{}
}

// Set32 sets the 32 bytes starting at offset to the value of val, left-padded with zeroes to
// 32 bytes.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	// length of store may never be less than offset + size.
	// The store should be resized PRIOR to setting the memory
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	b32 := val.Bytes32()
	copy(m.store[offset:], b32[:])
}

// Resize grows the memory to size bytes. Callers pass word-aligned sizes;
// smaller sizes are ignored.
func (m *Memory) Resize(size uint64) {
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
	}
}

// Expand grows the memory so it covers [offset, offset+size), rounded up to a
// whole word. A zero size never grows the memory. The caller guarantees that
// offset+size does not overflow; memoryRegion checks it.
func (m *Memory) Expand(offset, size uint64) {
	if size == 0 {
		return
	}
	m.Resize(toWordSize(offset+size) * config.WordSize)
}

// GetCopy returns offset + size as a new slice
func (m *Memory) GetCopy(offset, size uint64) (cpy []byte) {
	if size == 0 {
		return nil
	}
	cpy = make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return
}

// GetPtr returns the offset + size
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len returns the length of the backing slice
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the backing slice
func (m *Memory) Data() []byte {
	return m.store
}
