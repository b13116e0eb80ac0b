package evm

import (
	"fmt"
	"io"
	"strings"

	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
)

// Tracer is notified of every instruction the interpreter is about to
// execute. Returning an error from CaptureState halts the execution as a
// failure, which lets callers bound the number of executed steps.
//
// The ScopeContext passed to CaptureState is only valid during the call.
type Tracer interface {
	CaptureStart(code []byte)
	CaptureState(pc uint64, op OpCode, scope *ScopeContext) error
	CaptureEnd(success bool, err error)
}

// StructLog is emitted to the EVM each cycle and lists information about the current internal state
// prior to the execution of the statement.
type StructLog struct {
	Pc         uint64        `json:"pc"`
	Op         OpCode        `json:"op"`
	Stack      []uint256.Int `json:"stack"`
	MemorySize int           `json:"memSize"`
	Memory     []byte        `json:"memory,omitempty"`
}

// OpName formats the operand name in a human-readable format.
func (s *StructLog) OpName() string {
	return s.Op.String()
}

// StructLogger is a Tracer that collects a StructLog per executed step.
//
// Limit bounds the number of steps; 0 means unbounded. A StructLogger is not
// safe for concurrent use and should be used for a single execution.
type StructLogger struct {
	Limit        int  // maximum number of steps before the execution is aborted
	EnableMemory bool // copy memory into every log

	logs    []StructLog
	success bool
	err     error
}

// NewStructLogger returns a new logger
func NewStructLogger(limit int, enableMemory bool) *StructLogger {
	return &StructLogger{Limit: limit, EnableMemory: enableMemory}
}

// CaptureStart resets the logger for a new execution.
func (l *StructLogger) CaptureStart(code []byte) {
	l.logs = l.logs[:0]
	l.success, l.err = false, nil
}

// CaptureState logs a new structured log message and aborts the execution
// once the step limit is exceeded.
func (l *StructLogger) CaptureState(pc uint64, op OpCode, scope *ScopeContext) error {
	if l.Limit != 0 && len(l.logs) >= l.Limit {
		return ErrStepLimitReached
	}
	entry := StructLog{
		Pc:         pc,
		Op:         op,
		Stack:      append([]uint256.Int(nil), scope.StackData()...),
		MemorySize: len(scope.MemoryData()),
	}
	if l.EnableMemory {
		entry.Memory = scope.Memory.GetCopy(0, uint64(scope.Memory.Len()))
	}
	l.logs = append(l.logs, entry)
	return nil
}

// CaptureEnd records the outcome of the execution.
func (l *StructLogger) CaptureEnd(success bool, err error) {
	l.success, l.err = success, err
}

// StructLogs returns the captured log entries.
func (l *StructLogger) StructLogs() []StructLog { return l.logs }

// Error returns the error that ended the execution, if any.
func (l *StructLogger) Error() error { return l.err }

// Success reports whether the traced execution halted successfully.
func (l *StructLogger) Success() bool { return l.success }

// WriteTrace writes a formatted trace to the given writer
func WriteTrace(writer io.Writer, logs []StructLog) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Step", "PC", "Op", "Memory", "Stack"})
	for i, entry := range logs {
		stack := make([]string, len(entry.Stack))
		for j := range entry.Stack {
			stack[j] = entry.Stack[len(entry.Stack)-1-j].Hex()
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%05d", entry.Pc),
			entry.OpName(),
			fmt.Sprintf("%d", entry.MemorySize),
			strings.Join(stack, " "),
		})
	}
	table.Render()
}
