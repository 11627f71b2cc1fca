// Package cache provides a data-cache directory simulator.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// LRUDirectory models the directory with true least-recently-used
// replacement, using the Akita cache directory for tag/state management.
// It exists so runs under the one-bit replacement state can be compared
// against a full LRU ordering over the same geometry.
type LRUDirectory struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Stats
}

// NewLRUDirectory creates an LRU directory for the given geometry.
func NewLRUDirectory(config Config) (*LRUDirectory, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &LRUDirectory{
		config: config,
		directory: akitacache.NewDirectory(
			config.NumSets(),
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}, nil
}

// Config returns the directory geometry.
func (d *LRUDirectory) Config() Config {
	return d.config
}

// Stats returns the counters.
func (d *LRUDirectory) Stats() Stats {
	return d.stats
}

// Access records one read or write to the given byte address. Semantics
// match Directory.Access except that the victim among valid ways is the
// least recently used one.
func (d *LRUDirectory) Access(addr uint32, write bool) {
	if write {
		d.stats.Writes++
	} else {
		d.stats.Reads++
	}

	// The Akita directory keys blocks by block-aligned address.
	blockAddr := uint64(addr) / uint64(d.config.BlockSize) * uint64(d.config.BlockSize)

	block := d.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		d.stats.Hits++
		d.directory.Visit(block)
		if write {
			block.IsDirty = true
		}
		return
	}

	d.stats.Misses++

	victim := d.directory.FindVictim(blockAddr)
	if victim == nil {
		return
	}
	if victim.IsValid && victim.IsDirty {
		d.stats.WriteBacks++
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = write
	d.directory.Visit(victim)
}

// Reset invalidates every block and zeroes the counters.
func (d *LRUDirectory) Reset() {
	d.directory.Reset()
	d.stats = Stats{}
}
