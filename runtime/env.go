package runtime

import (
	"github.com/entropyio/go-evmlite/evm"
)

// NewEnv builds the machine described by cfg.
func NewEnv(cfg *Config) *evm.EVM {
	return evm.NewEVM(evm.Config{
		Debug:            cfg.Debug,
		EnableStackLimit: cfg.EnableStackLimit,
		MemoryLimit:      cfg.MemoryLimit,
		Tracer:           cfg.Tracer,
	})
}
