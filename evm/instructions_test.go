package evm

import (
	"fmt"
	"testing"

	"github.com/entropyio/go-evmlite/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	maxWord    = "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	maxWordM1  = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"
	minSigned  = "8000000000000000000000000000000000000000000000000000000000000000"
	maxSigned  = "7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	minusThree = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd"
	minusTen   = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff6"
)

// word parses a hex string of any length into a Word.
func word(hex string) *uint256.Int {
	return new(uint256.Int).SetBytes(common.FromHex(hex))
}

// operandTest describes one handler invocation: args are listed in pop order,
// so args[0] is the top of the stack.
type operandTest struct {
	args     []string
	expected string
}

func testOperandOp(t *testing.T, tests []operandTest, opFn executionFunc, name string) {
	t.Helper()
	var (
		pc          = uint64(0)
		interpreter = NewEVMInterpreter(Config{}, &instructionSet)
	)
	for i, test := range tests {
		scope := &ScopeContext{Memory: NewMemory(), Stack: newstack()}
		for j := len(test.args) - 1; j >= 0; j-- {
			scope.Stack.push(word(test.args[j]))
		}
		require.NoError(t, opFn(&pc, interpreter, scope), "%s testcase %d", name, i)
		require.Equal(t, 1, scope.Stack.len(), "%s testcase %d: expected one result", name, i)

		actual := scope.Stack.pop()
		assert.Equal(t, word(test.expected).Hex(), actual.Hex(), "%s testcase %d %v", name, i, test.args)
	}
}

func TestAdd(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"01", "02"}, "03"},
		{[]string{maxWord, "01"}, "00"},
		{[]string{maxWord, maxWord}, maxWordM1},
		{[]string{"00", "00"}, "00"},
	}, opAdd, "add")
}

func TestSub(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"03", "01"}, "02"},
		{[]string{"01", "02"}, maxWord},
		{[]string{"00", maxWord}, "01"},
	}, opSub, "sub")
}

func TestMul(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"06", "07"}, "2a"},
		{[]string{maxWord, "02"}, maxWordM1},
		{[]string{"0100000000000000000000000000000000", "0100000000000000000000000000000000"}, "00"},
	}, opMul, "mul")
}

func TestDiv(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"0a", "03"}, "03"},
		{[]string{"0a", "00"}, "00"},
		{[]string{"00", "00"}, "00"},
		{[]string{maxWord, maxWord}, "01"},
	}, opDiv, "div")
}

func TestSdiv(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{minusTen, "03"}, minusThree},
		{[]string{minusTen, minusThree}, "03"},
		{[]string{"0a", "00"}, "00"},
		// The signed minimum divided by -1 wraps back to itself.
		{[]string{minSigned, maxWord}, minSigned},
		{[]string{maxSigned, maxWord}, "8000000000000000000000000000000000000000000000000000000000000001"},
	}, opSdiv, "sdiv")
}

func TestMod(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"0a", "03"}, "01"},
		{[]string{"0a", "00"}, "00"},
		{[]string{maxWord, "02"}, "01"},
	}, opMod, "mod")
}

func TestSmod(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{minusTen, "03"}, maxWord},
		{[]string{"0a", minusThree}, "01"},
		{[]string{minusTen, "00"}, "00"},
		{[]string{minSigned, maxWord}, "00"},
	}, opSmod, "smod")
}

func TestAddmod(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"0a", "0a", "08"}, "04"},
		{[]string{"01", "02", "00"}, "00"},
		// (2^256 - 1 + 2) mod 3 keeps the carry: 2, not 1.
		{[]string{maxWord, "02", "03"}, "02"},
		{[]string{maxWord, maxWord, maxWord}, "00"},
	}, opAddmod, "addmod")
}

func TestMulmod(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"0a", "0a", "08"}, "04"},
		{[]string{"0a", "0a", "00"}, "00"},
		// (2^256 - 1)^2 mod 12 computed on the full 512-bit product.
		{[]string{maxWord, maxWord, "0c"}, "09"},
		{[]string{maxWord, maxWord, maxWordM1}, "01"},
	}, opMulmod, "mulmod")
}

func TestExp(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"02", "ff"}, minSigned},
		{[]string{"02", "0100"}, "00"},
		{[]string{"03", "00"}, "01"},
		{[]string{"00", "00"}, "01"},
		{[]string{"00", "05"}, "00"},
		{[]string{maxWord, "02"}, "01"},
	}, opExp, "exp")
}

func TestSignExtend(t *testing.T) {
	testOperandOp(t, []operandTest{
		{[]string{"00", "ff"}, maxWord},
		{[]string{"00", "7f"}, "7f"},
		{[]string{"00", "017f"}, "7f"},
		{[]string{"00", "01ff"}, maxWord},
		{[]string{"01", "8000"}, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff8000"},
		{[]string{"1e", minSigned}, "00"},
		{[]string{"1f", minSigned}, minSigned},
		{[]string{"1f", "0123"}, "0123"},
		{[]string{maxWord, "ff"}, "ff"},
	}, opSignExtend, "signextend")
}

func TestComparison(t *testing.T) {
	tests := map[string]struct {
		fn    executionFunc
		cases []operandTest
	}{
		"lt": {opLt, []operandTest{
			{[]string{"01", "02"}, "01"},
			{[]string{"02", "01"}, "00"},
			{[]string{"01", "01"}, "00"},
			{[]string{maxWord, "01"}, "00"},
		}},
		"gt": {opGt, []operandTest{
			{[]string{"02", "01"}, "01"},
			{[]string{"01", "02"}, "00"},
			{[]string{maxWord, "01"}, "01"},
		}},
		"slt": {opSlt, []operandTest{
			{[]string{maxWord, "01"}, "01"},
			{[]string{"01", maxWord}, "00"},
			{[]string{minSigned, maxSigned}, "01"},
		}},
		"sgt": {opSgt, []operandTest{
			{[]string{maxWord, "01"}, "00"},
			{[]string{"01", maxWord}, "01"},
			{[]string{maxSigned, minSigned}, "01"},
		}},
		"eq": {opEq, []operandTest{
			{[]string{maxWord, maxWord}, "01"},
			{[]string{"01", "02"}, "00"},
		}},
		"iszero": {opIszero, []operandTest{
			{[]string{"00"}, "01"},
			{[]string{"01"}, "00"},
			{[]string{maxWord}, "00"},
		}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testOperandOp(t, tt.cases, tt.fn, name)
		})
	}
}

func TestBitwise(t *testing.T) {
	tests := map[string]struct {
		fn    executionFunc
		cases []operandTest
	}{
		"and": {opAnd, []operandTest{
			{[]string{"0f", "ff"}, "0f"},
			{[]string{maxWord, "00"}, "00"},
		}},
		"or": {opOr, []operandTest{
			{[]string{"f0", "0f"}, "ff"},
			{[]string{minSigned, maxSigned}, maxWord},
		}},
		"xor": {opXor, []operandTest{
			{[]string{"ff", "0f"}, "f0"},
			{[]string{maxWord, maxWord}, "00"},
		}},
		"not": {opNot, []operandTest{
			{[]string{"00"}, maxWord},
			{[]string{maxWord}, "00"},
			{[]string{minSigned}, maxSigned},
		}},
		"byte": {opByte, []operandTest{
			{[]string{"1f", "ff"}, "ff"},
			{[]string{"00", "ff"}, "00"},
			{[]string{"00", minSigned}, "80"},
			{[]string{"1e", "abcd"}, "ab"},
			{[]string{"20", maxWord}, "00"},
			{[]string{maxWord, maxWord}, "00"},
		}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testOperandOp(t, tt.cases, tt.fn, name)
		})
	}
}

func TestShifts(t *testing.T) {
	tests := map[string]struct {
		fn    executionFunc
		cases []operandTest
	}{
		"shl": {opSHL, []operandTest{
			{[]string{"01", "01"}, "02"},
			{[]string{"ff", "01"}, minSigned},
			{[]string{"0100", "01"}, "00"},
			{[]string{"0101", "01"}, "00"},
			{[]string{"01", maxWord}, maxWordM1},
			{[]string{"00", "2a"}, "2a"},
		}},
		"shr": {opSHR, []operandTest{
			{[]string{"01", "02"}, "01"},
			{[]string{"ff", minSigned}, "01"},
			{[]string{"0100", maxWord}, "00"},
			{[]string{"01", maxWord}, maxSigned},
		}},
		"sar": {opSAR, []operandTest{
			{[]string{"01", minSigned}, "c000000000000000000000000000000000000000000000000000000000000000"},
			{[]string{"ff", minSigned}, maxWord},
			{[]string{"0100", minSigned}, maxWord},
			{[]string{"0100", maxSigned}, "00"},
			{[]string{maxWord, maxWord}, maxWord},
			{[]string{"04", "0100"}, "10"},
			{[]string{"01", minusTen}, "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffb"},
		}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testOperandOp(t, tt.cases, tt.fn, name)
		})
	}
}

func TestOpMstoreMload(t *testing.T) {
	var (
		interpreter = NewEVMInterpreter(Config{}, &instructionSet)
		mem         = NewMemory()
		scope       = &ScopeContext{Memory: mem, Stack: newstack()}
		pc          = uint64(0)
		v           = "abcdef00000000000000abba000000000deaf000000c0de00100000000133700"
	)
	mem.Resize(64)
	scope.Stack.push(word(v))
	scope.Stack.push(new(uint256.Int))
	require.NoError(t, opMstore(&pc, interpreter, scope))
	assert.Equal(t, v, common.Bytes2Hex(mem.GetCopy(0, 32)))

	scope.Stack.push(new(uint256.Int).SetOne())
	scope.Stack.push(new(uint256.Int))
	require.NoError(t, opMstore(&pc, interpreter, scope))
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000001", common.Bytes2Hex(mem.GetCopy(0, 32)))

	scope.Stack.push(new(uint256.Int))
	require.NoError(t, opMload(&pc, interpreter, scope))
	top := scope.Stack.pop()
	assert.Equal(t, uint64(1), top.Uint64())
}

func TestOpMstore8(t *testing.T) {
	var (
		interpreter = NewEVMInterpreter(Config{}, &instructionSet)
		mem         = NewMemory()
		scope       = &ScopeContext{Memory: mem, Stack: newstack()}
		pc          = uint64(0)
	)
	mem.Resize(32)
	scope.Stack.push(word("abcd"))
	scope.Stack.push(new(uint256.Int).SetUint64(3))
	require.NoError(t, opMstore8(&pc, interpreter, scope))
	assert.Equal(t, byte(0xcd), mem.Data()[3], "only the low byte is written")
	assert.Equal(t, 0, scope.Stack.len())
}

func TestOpKeccak256(t *testing.T) {
	var (
		interpreter = NewEVMInterpreter(Config{}, &instructionSet)
		mem         = NewMemory()
		scope       = &ScopeContext{Memory: mem, Stack: newstack()}
		pc          = uint64(0)
	)
	mem.Resize(32)
	for i, want := range []string{
		"290decd9548b62a8d60345a988386fc84ba6bc95484008f6362f93160ef3e563",
		"290decd9548b62a8d60345a988386fc84ba6bc95484008f6362f93160ef3e563",
	} {
		scope.Stack.push(new(uint256.Int).SetUint64(32))
		scope.Stack.push(new(uint256.Int))
		require.NoError(t, opKeccak256(&pc, interpreter, scope))
		got := scope.Stack.pop()
		assert.Equal(t, word(want).Hex(), got.Hex(), fmt.Sprintf("hash %d", i))
	}
}

func TestMakePushTruncated(t *testing.T) {
	tests := []struct {
		code     string
		op       OpCode
		expected string
		nextPc   uint64
	}{
		{"61", PUSH2, "00", 2},
		{"6101", PUSH2, "0100", 2},
		{"610102", PUSH2, "0102", 2},
		{"7f", PUSH32, "00", 32},
		{"7fff", PUSH32, "ff"+"00000000000000000000000000000000000000000000000000000000000000", 32},
		{"6301020304ff", PUSH4, "01020304", 4},
	}
	interpreter := NewEVMInterpreter(Config{}, &instructionSet)
	for i, tt := range tests {
		var (
			pc    = uint64(0)
			code  = common.FromHex(tt.code)
			scope = &ScopeContext{Memory: NewMemory(), Stack: newstack(), Code: code}
		)
		require.NoError(t, instructionSet[tt.op].execute(&pc, interpreter, scope), "testcase %d", i)
		got := scope.Stack.pop()
		assert.Equal(t, word(tt.expected).Hex(), got.Hex(), "testcase %d", i)
		assert.Equal(t, tt.nextPc, pc, "testcase %d", i)
	}
}

func BenchmarkOpAdd256(b *testing.B) {
	var (
		interpreter = NewEVMInterpreter(Config{}, &instructionSet)
		scope       = &ScopeContext{Memory: NewMemory(), Stack: newstack()}
		pc          = uint64(0)
		x           = word(maxWord)
		y           = word(minSigned)
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scope.Stack.push(x)
		scope.Stack.push(y)
		opAdd(&pc, interpreter, scope)
		scope.Stack.pop()
	}
}
