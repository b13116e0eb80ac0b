package entropy

import (
	"testing"

	"github.com/entropyio/go-evmlite/common"
	"github.com/entropyio/go-evmlite/common/crypto"
	"github.com/entropyio/go-evmlite/evm"
	"github.com/entropyio/go-evmlite/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEVM_Call(t *testing.T) {
	// MSTORE(0, 0x616263 << 232); KECCAK256(0, 3)
	code := common.Hex2Bytes("7f" + "6162630000000000000000000000000000000000000000000000000000000000" + "600052" + "60036000" + "20" + "00")

	tracer := evm.NewStructLogger(0, false)
	cfg := runtime.Config{
		Debug:  true,
		Tracer: tracer,
	}
	res := runtime.Execute(code, &cfg)
	require.True(t, res.Success)
	require.Len(t, res.Stack, 1)

	want := crypto.Keccak256Hash([]byte("abc"))
	assert.Equal(t, want, common.BytesToHash(res.Stack[0].Bytes()))
	assert.Equal(t, "0x4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45", want.Hex())

	logs := tracer.StructLogs()
	require.Len(t, logs, 7)
	assert.Equal(t, evm.KECCAK256, logs[5].Op)
	assert.Equal(t, 32, logs[5].MemorySize)
}

func TestEVM_Loop(t *testing.T) {
	// sum 5+4+3+2+1 with a JUMPI back-edge
	code := common.Hex2Bytes("60006005" + "5b" + "80910190600190038060045750" + "00")

	res := runtime.Execute(code, nil)
	require.True(t, res.Success)
	require.Len(t, res.Stack, 1)
	assert.Equal(t, uint64(15), res.Stack[0].Uint64())
}
