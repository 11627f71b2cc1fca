// Package cache provides a data-cache directory simulator.
package cache

import "math/bits"

// policy picks a victim way when every way of a set is valid, and records
// the way serviced by each access.
type policy interface {
	victim(set int) int
	touch(set, way int)
	reset()
}

// lastServed keeps one state value per set: the way most recently filled
// or referenced. The victim is the next way in sequence, which for two
// ways is exactly "the way not last serviced".
type lastServed struct {
	ways int
	last []int
}

func newLastServed(sets, ways int) *lastServed {
	return &lastServed{ways: ways, last: make([]int, sets)}
}

func (p *lastServed) victim(set int) int {
	return (p.last[set] + 1) % p.ways
}

func (p *lastServed) touch(set, way int) {
	p.last[set] = way
}

func (p *lastServed) reset() {
	for i := range p.last {
		p.last[i] = 0
	}
}

// treePLRU keeps ways-1 decision-tree bits per set in heap order: node 0
// is the root, node n's children are 2n+1 and 2n+2, and the leaves map to
// ways. A bit's value points down the victim path; touching a way flips
// every node on its path to point away from it.
type treePLRU struct {
	ways   int
	levels int
	state  []uint32 // one bitset of node bits per set
}

func newTreePLRU(sets, ways int) *treePLRU {
	return &treePLRU{
		ways:   ways,
		levels: bits.TrailingZeros(uint(ways)),
		state:  make([]uint32, sets),
	}
}

func (p *treePLRU) victim(set int) int {
	s := p.state[set]
	node := 0
	for l := 0; l < p.levels; l++ {
		node = 2*node + 1 + int((s>>node)&1)
	}
	return node - (p.ways - 1)
}

func (p *treePLRU) touch(set, way int) {
	node := 0
	for l := p.levels - 1; l >= 0; l-- {
		direction := uint32(way>>l) & 1
		if direction == 0 {
			p.state[set] |= 1 << node
		} else {
			p.state[set] &^= 1 << node
		}
		node = 2*node + 1 + int(direction)
	}
}

func (p *treePLRU) reset() {
	for i := range p.state {
		p.state[i] = 0
	}
}
