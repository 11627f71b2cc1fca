// Package cache provides a data-cache directory simulator.
package cache

import "fmt"

// Stats holds cache directory statistics.
type Stats struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	WriteBacks uint64
}

// HitRate returns hits/(hits+misses), derived at read time.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// line is one directory entry. The tag is meaningful only when valid is
// set; dirty implies valid.
type line struct {
	valid bool
	dirty bool
	tag   uint32
}

// Directory is a set-associative cache directory with per-set replacement
// state. Entries start invalid and become valid on first fill.
type Directory struct {
	config     Config
	offsetBits uint
	indexBits  uint
	indexMask  uint32

	sets   [][]line
	policy policy
	stats  Stats
}

// NewDirectory creates a directory for the given geometry. The LRU scheme
// is served by LRUDirectory, not here.
func NewDirectory(config Config) (*Directory, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var p policy
	switch config.Replacement {
	case ReplacementLastServed:
		p = newLastServed(config.NumSets(), config.Associativity)
	case ReplacementTreePLRU:
		p = newTreePLRU(config.NumSets(), config.Associativity)
	default:
		return nil, fmt.Errorf("replacement scheme %q is not served by Directory", config.Replacement)
	}

	sets := make([][]line, config.NumSets())
	for i := range sets {
		sets[i] = make([]line, config.Associativity)
	}

	return &Directory{
		config:     config,
		offsetBits: config.offsetBits(),
		indexBits:  config.indexBits(),
		indexMask:  uint32(config.NumSets() - 1),
		sets:       sets,
		policy:     p,
	}, nil
}

// Config returns the directory geometry.
func (d *Directory) Config() Config {
	return d.config
}

// Stats returns the counters.
func (d *Directory) Stats() Stats {
	return d.stats
}

// Access records one read or write to the given byte address.
//
// The address splits into tag (high bits), set index (middle bits), and
// block offset (low bits). A valid way with a matching tag is a hit. On a
// miss the victim is any invalid way, else the policy's choice; a valid
// dirty victim counts a write-back. The replacement state records the
// serviced way on every access, hit or fill, and a write dirties the
// serviced way.
func (d *Directory) Access(addr uint32, write bool) {
	if write {
		d.stats.Writes++
	} else {
		d.stats.Reads++
	}

	index := int((addr >> d.offsetBits) & d.indexMask)
	tag := addr >> (d.offsetBits + d.indexBits)
	set := d.sets[index]

	way := -1
	for w := range set {
		if set[w].valid && set[w].tag == tag {
			way = w
			break
		}
	}

	if way >= 0 {
		d.stats.Hits++
	} else {
		d.stats.Misses++

		for w := range set {
			if !set[w].valid {
				way = w
				break
			}
		}
		if way < 0 {
			way = d.policy.victim(index)
		}

		if set[way].valid && set[way].dirty {
			d.stats.WriteBacks++
		}
		set[way] = line{valid: true, tag: tag}
	}

	d.policy.touch(index, way)

	if write {
		set[way].dirty = true
	}
}

// Reset invalidates every entry, clears the replacement state, and zeroes
// the counters. Call it once before the first access.
func (d *Directory) Reset() {
	for _, set := range d.sets {
		for w := range set {
			set[w] = line{}
		}
	}
	d.policy.reset()
	d.stats = Stats{}
}
