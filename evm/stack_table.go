package evm

import (
	"github.com/entropyio/go-evmlite/config"
)

// Swap bounds take the deepest slot touched, i.e. n+1 for SWAPn.
func minSwapStack(n int) int {
	return minStack(n, n)
}
func maxSwapStack(n int) int {
	return maxStack(n, n)
}

func minDupStack(n int) int {
	return minStack(n, n+1)
}
func maxDupStack(n int) int {
	return maxStack(n, n+1)
}

// maxStack is the deepest stack an operation popping pop and pushing push
// items may start from without breaking the ceiling.
func maxStack(pop, push int) int {
	return int(config.StackLimit) + pop - push
}
func minStack(pops, _ int) int {
	return pops
}

// checkStack validates the stack depth before op runs. The ceiling is
// only enforced when limited is set; the floor always is.
func checkStack(st *Stack, op *operation, limited bool) error {
	sLen := st.len()
	if sLen < op.minStack {
		return &ErrStackUnderflow{stackLen: sLen, required: op.minStack}
	}
	if limited && sLen > op.maxStack {
		return &ErrStackOverflow{stackLen: sLen, limit: op.maxStack}
	}
	return nil
}
