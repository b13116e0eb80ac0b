/*
Package evm implements a deterministic subset of the Entropy Virtual Machine.

The evm package executes byte code over 256-bit words: a stack machine with
word-aligned, auto-growing memory, jump destinations validated by a single
pass over the code, and a Keccak-256 hashing opcode. Gas, storage, logs,
calls and contract creation are not part of this machine.

Every execution is a pure function of its code: the result is either a
successful halt together with the final stack, or a failure with an empty
stack.

An execution fails on a stack underflow, an invalid jump destination, an
undefined or INVALID opcode, or a memory access beyond Config.MemoryLimit.
The limit defaults to config.DefaultMemoryLimit (64 MiB), so a program such
as PUSH1 1, PUSH4 0x04000000, MSTORE fails unless the limit is raised. A
zero-length access never grows memory and never fails.
*/
package evm
