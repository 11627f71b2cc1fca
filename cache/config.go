// Package cache provides a data-cache directory simulator: tag, valid,
// dirty, and replacement state per line, with hit/miss/write-back
// accounting. No line contents are stored or compared; correctness is
// entirely tag/valid/dirty bookkeeping and replacement-state transitions.
package cache

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"os"
)

// Replacement selects the victim-selection scheme for a directory.
type Replacement string

// Replacement schemes.
const (
	// ReplacementLastServed keeps one state value per set recording the way
	// most recently serviced; the victim is the following way. For a 2-way
	// cache this is exactly "replace the other way".
	ReplacementLastServed Replacement = "last-served"

	// ReplacementTreePLRU keeps one binary decision-tree bit per branch
	// point (the classic 3-bit scheme at 4 ways).
	ReplacementTreePLRU Replacement = "tree-plru"

	// ReplacementLRU is true least-recently-used, built on the Akita cache
	// components.
	ReplacementLRU Replacement = "lru"
)

// Config holds cache directory geometry parameters.
type Config struct {
	// Size in bytes.
	Size int `json:"size"`
	// Associativity (number of ways).
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size).
	BlockSize int `json:"block_size"`
	// Replacement selects the victim-selection scheme.
	Replacement Replacement `json:"replacement"`
}

// DefaultConfig returns the directory geometry the simulator models by
// default: 2-way, 64 sets, 8-byte lines, with the one-bit last-serviced
// replacement state.
func DefaultConfig() Config {
	return Config{
		Size:          1024, // 2 ways x 64 sets x 8 B
		Associativity: 2,
		BlockSize:     8,
		Replacement:   ReplacementLastServed,
	}
}

// DocumentedConfig returns the 4 KiB, 4-way, 32-byte-line geometry with
// tree pseudo-LRU replacement (the Intel Embedded Pentium three-bit
// scheme).
func DocumentedConfig() Config {
	return Config{
		Size:          4 * 1024,
		Associativity: 4,
		BlockSize:     32,
		Replacement:   ReplacementTreePLRU,
	}
}

// NumSets returns the number of sets implied by the geometry.
func (c Config) NumSets() int {
	return c.Size / (c.Associativity * c.BlockSize)
}

// offsetBits returns log2(BlockSize).
func (c Config) offsetBits() uint {
	return uint(bits.TrailingZeros(uint(c.BlockSize)))
}

// indexBits returns log2(NumSets).
func (c Config) indexBits() uint {
	return uint(bits.TrailingZeros(uint(c.NumSets())))
}

// Validate checks the geometry: positive power-of-two block size, set
// count, and associativity, and a size that divides evenly into sets.
func (c Config) Validate() error {
	if c.BlockSize <= 0 || bits.OnesCount(uint(c.BlockSize)) != 1 {
		return fmt.Errorf("block_size must be a positive power of two, got %d", c.BlockSize)
	}
	if c.Associativity <= 0 || bits.OnesCount(uint(c.Associativity)) != 1 {
		return fmt.Errorf("associativity must be a positive power of two, got %d", c.Associativity)
	}
	if c.Size <= 0 || c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("size %d is not a multiple of associativity x block_size", c.Size)
	}
	numSets := c.NumSets()
	if numSets <= 0 || bits.OnesCount(uint(numSets)) != 1 {
		return fmt.Errorf("geometry implies %d sets, want a positive power of two", numSets)
	}
	switch c.Replacement {
	case ReplacementLastServed, ReplacementTreePLRU, ReplacementLRU:
	default:
		return fmt.Errorf("unknown replacement scheme %q", c.Replacement)
	}
	return nil
}

// LoadConfig loads a Config from a JSON file. Missing fields keep the
// default geometry.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse cache config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}
	return nil
}

// Model is the common surface of the directory variants.
type Model interface {
	// Access records one read (write=false) or write (write=true) to the
	// given byte address, updating hit/miss/write-back state.
	Access(addr uint32, write bool)
	// Stats returns the counters. Reading them is idempotent.
	Stats() Stats
	// Reset invalidates every line and zeroes the counters.
	Reset()
}

// New creates the directory variant selected by the config's replacement
// scheme.
func New(config Config) (Model, error) {
	if config.Replacement == ReplacementLRU {
		return NewLRUDirectory(config)
	}
	return NewDirectory(config)
}
