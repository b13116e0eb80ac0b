package evm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledStack(vals ...uint64) *Stack {
	st := newstack()
	for _, v := range vals {
		st.push(uint256.NewInt(v))
	}
	return st
}

func TestStackPushPop(t *testing.T) {
	st := filledStack(1, 2, 3)
	defer returnStack(st)

	require.Equal(t, 3, st.len())
	assert.Equal(t, uint64(3), st.peek().Uint64())
	assert.Equal(t, uint64(2), st.Back(1).Uint64())
	assert.Equal(t, uint64(1), st.Back(2).Uint64())

	x, y := st.pop2()
	assert.Equal(t, uint64(3), x.Uint64())
	assert.Equal(t, uint64(2), y.Uint64())
	assert.Equal(t, 1, st.len())
}

func TestStackDupSwap(t *testing.T) {
	st := filledStack(1, 2, 3)
	defer returnStack(st)

	st.dup(3)
	require.Equal(t, 4, st.len())
	assert.Equal(t, uint64(1), st.peek().Uint64())

	st.swap(4)
	data := st.Data()
	assert.Equal(t, uint64(1), data[0].Uint64())
	assert.Equal(t, uint64(1), data[3].Uint64())

	st.push(uint256.NewInt(9))
	st.swap(2)
	assert.Equal(t, uint64(1), st.peek().Uint64())
	assert.Equal(t, uint64(9), st.Back(1).Uint64())
}

func TestStackPushCopies(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	v := uint256.NewInt(7)
	st.push(v)
	v.SetUint64(8)
	assert.Equal(t, uint64(7), st.peek().Uint64())
}

func TestStackSnapshot(t *testing.T) {
	st := filledStack(4, 5)
	snap := st.snapshot()
	returnStack(st)

	reused := filledStack(6)
	defer returnStack(reused)

	require.Len(t, snap, 2)
	assert.Equal(t, uint64(4), snap[0].Uint64())
	assert.Equal(t, uint64(5), snap[1].Uint64())
}

func TestStackPoolReset(t *testing.T) {
	st := filledStack(1, 2, 3)
	returnStack(st)
	assert.Equal(t, 0, st.len())
}

func TestCheckStack(t *testing.T) {
	st := filledStack(1)
	defer returnStack(st)

	err := checkStack(st, instructionSet[ADD], false)
	var underflow *ErrStackUnderflow
	require.ErrorAs(t, err, &underflow)
	assert.Contains(t, err.Error(), "stack underflow")

	st.push(uint256.NewInt(2))
	assert.NoError(t, checkStack(st, instructionSet[ADD], true))
}
