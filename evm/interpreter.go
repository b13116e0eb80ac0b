package evm

import (
	"github.com/entropyio/go-evmlite/common"
	"github.com/entropyio/go-evmlite/common/crypto"
	"github.com/entropyio/go-evmlite/config"
	"github.com/entropyio/go-evmlite/logger"
	"github.com/holiman/uint256"
)

var log = logger.NewLogger("[evm]")

// Config are the configuration options for the Interpreter
type Config struct {
	Debug            bool   // Logs every executed instruction at debug level
	EnableStackLimit bool   // Enforces the 1024 item stack ceiling
	MemoryLimit      uint64 // Maximum memory in bytes, 0 selects config.DefaultMemoryLimit
	Tracer           Tracer // Opcode tracer, nil disables tracing
}

// ScopeContext contains the things that are per-execution, such as stack and
// memory, but not transients like pc
type ScopeContext struct {
	Memory *Memory
	Stack  *Stack
	Code   []byte

	jumpdests bitvec
}

// MemoryData returns the underlying memory slice. Callers must not modify the contents
// of the returned data.
func (ctx *ScopeContext) MemoryData() []byte {
	if ctx.Memory == nil {
		return nil
	}
	return ctx.Memory.Data()
}

// StackData returns the stack data, bottom first. Callers must not modify the
// contents of the returned data.
func (ctx *ScopeContext) StackData() []uint256.Int {
	if ctx.Stack == nil {
		return nil
	}
	return ctx.Stack.Data()
}

// EVMInterpreter represents an EVM interpreter. It is owned by a single
// execution and must not be shared.
type EVMInterpreter struct {
	cfg   Config
	table *JumpTable

	hasher    crypto.KeccakState // Keccak256 hasher instance shared across opcodes
	hasherBuf common.Hash        // Keccak256 hasher result array shared across opcodes
}

// NewEVMInterpreter returns a new instance of the Interpreter.
func NewEVMInterpreter(cfg Config, table *JumpTable) *EVMInterpreter {
	if cfg.MemoryLimit == 0 {
		cfg.MemoryLimit = config.DefaultMemoryLimit
	}
	return &EVMInterpreter{cfg: cfg, table: table}
}

// Run loops and evaluates the code until STOP, the end of the code or an
// error. On success it returns the final stack, bottom first.
//
// Any error returned by the interpreter means the execution failed; no
// partial state is returned with it.
func (in *EVMInterpreter) Run(code []byte) (ret []uint256.Int, err error) {
	var (
		op          OpCode // current opcode
		mem         = NewMemory()
		stack       = newstack()
		callContext = &ScopeContext{
			Memory:    mem,
			Stack:     stack,
			Code:      code,
			jumpdests: jumpdestAnalysis(code),
		}
		// For optimisation reason we're using uint64 as the program counter.
		// It's theoretically possible to go above 2^64. The YP defines the PC
		// to be uint256. Practically much less so feasible.
		pc     = uint64(0) // program counter
		tracer = in.cfg.Tracer
	)
	// Don't move this deferred function, it's placed before the capture-end
	// method so that the stack is returned to the pool only after tracing.
	defer returnStack(stack)

	if tracer != nil {
		tracer.CaptureStart(code)
		defer func() {
			tracer.CaptureEnd(err == nil, err)
		}()
	}
	// The Interpreter main run loop. Running off the end of the code is an
	// implicit STOP.
	for pc < uint64(len(code)) {
		op = OpCode(code[pc])
		operation := in.table[op]
		if operation == nil {
			err = &ErrInvalidOpCode{opcode: op}
			break
		}
		// Validate stack
		if err = checkStack(stack, operation, in.cfg.EnableStackLimit); err != nil {
			break
		}
		if tracer != nil {
			if err = tracer.CaptureState(pc, op, callContext); err != nil {
				break
			}
		}
		// Expand memory before the handler touches it
		if operation.memorySize != nil {
			offset, size, overflow := operation.memorySize(stack)
			if err = in.expandMemory(mem, offset, size, overflow); err != nil {
				break
			}
		}
		if in.cfg.Debug {
			log.Debugf("pc=%05d op=%-10v stack=%d memory=%d", pc, op, stack.len(), mem.Len())
		}
		// execute the operation
		if err = operation.execute(&pc, in, callContext); err != nil {
			break
		}
		pc++
	}

	if err == errStopToken {
		err = nil // clear stop token error
	}
	if err != nil {
		log.Debugf("execution failed pc=%d op=%v: %v", pc, op, err)
		return nil, err
	}
	return stack.snapshot(), nil
}

// expandMemory grows mem to cover the region an operation is about to touch,
// failing when the region cannot be addressed or breaks the memory limit.
func (in *EVMInterpreter) expandMemory(mem *Memory, offset, size uint64, overflow bool) error {
	if overflow {
		return ErrMemoryLimit
	}
	if size == 0 {
		return nil
	}
	if toWordSize(offset+size)*config.WordSize > in.cfg.MemoryLimit {
		return ErrMemoryLimit
	}
	mem.Expand(offset, size)
	return nil
}
