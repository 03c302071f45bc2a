package hashtable

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DuplicatePolicy decides what Insert does with a key that is already stored.
type DuplicatePolicy int

const (
	// DuplicateAppend stores another entry under the same key. Lookups keep
	// returning the first one found scanning from the chain head.
	DuplicateAppend DuplicatePolicy = iota
	// DuplicateOverwrite replaces the value of the stored entry in place.
	DuplicateOverwrite
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateAppend:
		return "append"
	case DuplicateOverwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "append", "":
		return DuplicateAppend, nil
	case "overwrite":
		return DuplicateOverwrite, nil
	default:
		return DuplicateAppend, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// Config defines configurable Table options.
type Config struct {
	duplicates   DuplicatePolicy
	strictLookup bool
	logger       *zap.Logger
}

func WithDuplicatePolicy(p DuplicatePolicy) func(*Config) {
	return func(c *Config) {
		c.duplicates = p
	}
}

// WithStrictLookup makes Get and Delete compare the key of a single-entry
// bucket instead of trusting the bucket index alone. It also stops a Delete
// that misses inside a chain from decrementing Len.
func WithStrictLookup() func(*Config) {
	return func(c *Config) {
		c.strictLookup = true
	}
}

// WithLogger sets the logger used for resize events, logged at debug level.
func WithLogger(logger *zap.Logger) func(*Config) {
	return func(c *Config) {
		c.logger = logger
	}
}
