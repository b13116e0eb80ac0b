package evm

import (
	"github.com/entropyio/go-evmlite/common/crypto"
	"github.com/holiman/uint256"
)

func opAdd(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Add(&x, y)
	return nil
}

func opSub(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Sub(&x, y)
	return nil
}

func opMul(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mul(&x, y)
	return nil
}

func opDiv(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Div(&x, y)
	return nil
}

func opSdiv(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.SDiv(&x, y)
	return nil
}

func opMod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mod(&x, y)
	return nil
}

func opSmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.SMod(&x, y)
	return nil
}

func opExp(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	base, exponent := scope.Stack.pop(), scope.Stack.peek()
	exponent.Exp(&base, exponent)
	return nil
}

func opSignExtend(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	back, num := scope.Stack.pop(), scope.Stack.peek()
	num.ExtendSign(num, &back)
	return nil
}

func opNot(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x := scope.Stack.peek()
	x.Not(x)
	return nil
}

func opLt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opGt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSlt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSgt(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opEq(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opIszero(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x := scope.Stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

func opAnd(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.And(&x, y)
	return nil
}

func opOr(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Or(&x, y)
	return nil
}

func opXor(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Xor(&x, y)
	return nil
}

func opByte(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	th, val := scope.Stack.pop(), scope.Stack.peek()
	val.Byte(&th)
	return nil
}

// opAddmod and opMulmod reduce the full-width intermediate, so a carry out of
// 256 bits still takes part in the modulo.
func opAddmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop2()
	z := scope.Stack.peek()
	z.AddMod(&x, &y, z)
	return nil
}

func opMulmod(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	x, y := scope.Stack.pop2()
	z := scope.Stack.peek()
	z.MulMod(&x, &y, z)
	return nil
}

// opSHL implements Shift Left
// The SHL instruction (shift left) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the left by arg1 number of bits.
func opSHL(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	// Note, second operand is left in the stack; accumulate result into it, and no need to push it afterwards
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

// opSHR implements Logical Shift Right
// The SHR instruction (logical shift right) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the right by arg1 number of bits with zero fill.
func opSHR(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	// Note, second operand is left in the stack; accumulate result into it, and no need to push it afterwards
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

// opSAR implements Arithmetic Shift Right
// The SAR instruction (arithmetic shift right) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the right by arg1 number of bits with sign extension.
func opSAR(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if !shift.LtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			// Max negative shift: all bits set
			value.SetAllOne()
		}
		return nil
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
	return nil
}

func opKeccak256(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	offset, size := scope.Stack.pop(), scope.Stack.peek()
	data := scope.Memory.GetPtr(offset.Uint64(), size.Uint64())

	if interpreter.hasher == nil {
		interpreter.hasher = crypto.NewKeccakState()
	}
	interpreter.hasherBuf = crypto.HashData(interpreter.hasher, data)

	size.SetBytes(interpreter.hasherBuf[:])
	return nil
}

func opPop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	scope.Stack.pop()
	return nil
}

func opMload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	v := scope.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(scope.Memory.GetPtr(offset, 32))
	return nil
}

func opMstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	mStart, val := scope.Stack.pop2()
	scope.Memory.Set32(mStart.Uint64(), &val)
	return nil
}

func opMstore8(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	off, val := scope.Stack.pop2()
	scope.Memory.store[off.Uint64()] = byte(val.Uint64())
	return nil
}

func opJump(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	pos := scope.Stack.pop()
	if !scope.jumpdests.validJumpdest(scope.Code, &pos) {
		return ErrInvalidJump
	}
	*pc = pos.Uint64() - 1 // pc will be increased by the interpreter loop
	return nil
}

// opJumpi pops the destination first and the condition second.
func opJumpi(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	pos, cond := scope.Stack.pop2()
	if !cond.IsZero() {
		if !scope.jumpdests.validJumpdest(scope.Code, &pos) {
			return ErrInvalidJump
		}
		*pc = pos.Uint64() - 1 // pc will be increased by the interpreter loop
	}
	return nil
}

func opJumpdest(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	return nil
}

func opPc(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	scope.Stack.push(new(uint256.Int).SetUint64(*pc))
	return nil
}

func opMsize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return nil
}

// opGas pushes a constant: gas is not metered.
func opGas(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	scope.Stack.push(gasSentinel)
	return nil
}

func opStop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	return errStopToken
}

func opInvalid(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	return &ErrInvalidOpCode{opcode: INVALID}
}

// opPush0 implements the PUSH0 opcode
func opPush0(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	scope.Stack.push(new(uint256.Int))
	return nil
}

// opPush1 is a specialized version of pushN
func opPush1(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
	var (
		codeLen = uint64(len(scope.Code))
		integer = new(uint256.Int)
	)
	*pc += 1
	if *pc < codeLen {
		scope.Stack.push(integer.SetUint64(uint64(scope.Code[*pc])))
	} else {
		scope.Stack.push(integer.Clear())
	}
	return nil
}

// make push instruction function. Immediates cut off by the end of the code
// read as trailing zero bytes.
func makePush(size uint64, pushByteSize int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
		var (
			codeLen = len(scope.Code)
			start   = min(codeLen, int(*pc+1))
			end     = min(codeLen, start+pushByteSize)
		)
		a := new(uint256.Int).SetBytes(scope.Code[start:end])

		// Missing bytes: pushByteSize - len(pushData)
		if missing := pushByteSize - (end - start); missing > 0 {
			a.Lsh(a, uint(8*missing))
		}
		scope.Stack.push(a)
		*pc += size
		return nil
	}
}

// make dup instruction function
func makeDup(size int64) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
		scope.Stack.dup(int(size))
		return nil
	}
}

// make swap instruction function
func makeSwap(size int64) executionFunc {
	// switch n + 1 otherwise n would be swapped with n
	size++
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) error {
		scope.Stack.swap(int(size))
		return nil
	}
}
