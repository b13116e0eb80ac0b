package runtime

import (
	"context"
	"runtime"

	"github.com/entropyio/go-evmlite/common"
	"github.com/entropyio/go-evmlite/config"
	"github.com/entropyio/go-evmlite/evm"
	"github.com/entropyio/go-evmlite/logger"
	"golang.org/x/sync/errgroup"
)

var log = logger.NewLogger("[runtime]")

// Config is a basic type specifying certain configuration flags for running
// the EVM.
type Config struct {
	Debug            bool
	EnableStackLimit bool
	MemoryLimit      uint64
	LogLevel         string
	Workers          int // concurrent executions in ExecuteBatch

	Tracer evm.Tracer `toml:"-"`
}

// sets defaults on the config
func setDefaults(cfg *Config) {
	if cfg.MemoryLimit == 0 {
		cfg.MemoryLimit = config.DefaultMemoryLimit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "INFO"
	}
}

// LoadConfig reads a TOML configuration file and applies its log level. The
// returned LogLevel is the canonical level name, e.g. "warning" becomes "WARNING".
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if err := config.LoadFile(file, cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	cfg.LogLevel = logger.GetLevel()
	return cfg, nil
}

// Execute executes the code and returns the execution result.
//
// Execute sets up a fresh stack and memory for the execution; nothing is
// carried over between calls.
func Execute(code []byte, cfg *Config) *evm.Result {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	log.Debugf("execute code:%s", common.Bytes2Hex(code))
	return NewEnv(cfg).Execute(code)
}

// ExecuteBatch executes every program independently, running up to
// cfg.Workers of them at once. Results are index-aligned with codes.
//
// A configured Tracer is shared by every execution and therefore must be
// safe for concurrent use. The only error returned is ctx's, when it is
// cancelled before every program has run.
func ExecuteBatch(ctx context.Context, codes [][]byte, cfg *Config) ([]*evm.Result, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	var (
		vmenv   = NewEnv(cfg)
		results = make([]*evm.Result, len(codes))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, code := range codes {
		if gctx.Err() != nil {
			break
		}
		i, code := i, code
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = vmenv.Execute(code)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, res := range results {
		if res == nil {
			return nil, ctx.Err()
		}
	}
	log.Debugf("executed batch of %d programs", len(codes))
	return results, nil
}
