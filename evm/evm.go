package evm

// Result is the outcome of one execution. Stack is ordered bottom-to-top and
// is always empty when Success is false.
type Result struct {
	Success bool
	Stack   []Word
}

// EVM is the Entropy Virtual Machine base object and provides the
// configuration and instruction set needed to run bytecode.
//
// An EVM holds no per-execution state, so one instance may serve concurrent
// Execute calls; each call owns its stack, memory and program counter.
type EVM struct {
	// Config holds the interpreter options
	Config Config

	table *JumpTable
}

// NewEVM returns a new EVM. The returned EVM is safe for concurrent use.
func NewEVM(cfg Config) *EVM {
	return &EVM{
		Config: cfg,
		table:  &instructionSet,
	}
}

// Execute runs code from offset 0 and reports whether it halted successfully
// together with the final stack.
func (evm *EVM) Execute(code []byte) *Result {
	stack, err := NewEVMInterpreter(evm.Config, evm.table).Run(code)
	if err != nil {
		return &Result{Success: false, Stack: []Word{}}
	}
	return &Result{Success: true, Stack: stack}
}
