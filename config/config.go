// Package config holds the engine limits and the TOML configuration loader.
package config

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

const (
	WordSize uint64 = 32 // Size of an EVM word and the memory growth granularity in bytes

	StackLimit uint64 = 1024 // Maximum size of VM stack allowed when the ceiling is enabled

	DefaultMemoryLimit uint64 = 64 * 1024 * 1024 // Maximum memory in bytes a single execution may grow to
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// LoadFile decodes the TOML file into cfg. Keys must match the Go field names.
func LoadFile(file string, cfg interface{}) error {
	f, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		return errors.Wrapf(err, "%s", file)
	}
	return errors.Wrapf(err, "decode %s", file)
}
