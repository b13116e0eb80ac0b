// Package logger provides module-tagged leveled loggers backed by go-logging.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

const defaultFormat = `%{time:15:04:05.000} %{level:.4s} %{module} %{message}`

var (
	mu      sync.Mutex
	level   = logging.INFO
	leveled logging.LeveledBackend
)

func init() {
	SetOutput(os.Stderr)
}

// NewLogger returns the logger registered for module, e.g. "[evm]".
func NewLogger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// SetOutput redirects every logger to w, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultFormat))
	leveled = logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

// SetLevel sets the global level by name: DEBUG, INFO, NOTICE, WARNING, ERROR or CRITICAL.
func SetLevel(name string) error {
	lvl, err := logging.LogLevel(name)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	level = lvl
	leveled.SetLevel(lvl, "")
	return nil
}

// GetLevel returns the name of the current global level.
func GetLevel() string {
	mu.Lock()
	defer mu.Unlock()
	return level.String()
}
