// Package emu provides functional MC88100-subset emulation.
package emu

// DefaultMemWords is the default memory capacity in 32-bit words (1 MiB).
const DefaultMemWords = 256 * 1024

// Memory is a flat store of 32-bit words addressed by word index
// (byte address right-shifted by 2). Accesses are word-aligned; an
// out-of-range word index is a fault, never a silent access.
type Memory struct {
	words []uint32
}

// NewMemory creates a zero-filled memory with the default capacity.
func NewMemory() *Memory {
	return NewMemorySized(DefaultMemWords)
}

// NewMemorySized creates a zero-filled memory holding the given number of
// 32-bit words.
func NewMemorySized(words int) *Memory {
	return &Memory{words: make([]uint32, words)}
}

// Words returns the memory capacity in words.
func (m *Memory) Words() int {
	return len(m.words)
}

// ReadWord reads the word at a byte address.
func (m *Memory) ReadWord(addr uint32) (uint32, *Fault) {
	idx := addr >> 2
	if idx >= uint32(len(m.words)) {
		return 0, &Fault{Kind: FaultMemBounds, Addr: addr}
	}
	return m.words[idx], nil
}

// WriteWord writes the word at a byte address.
func (m *Memory) WriteWord(addr uint32, value uint32) *Fault {
	idx := addr >> 2
	if idx >= uint32(len(m.words)) {
		return &Fault{Kind: FaultMemBounds, Addr: addr}
	}
	m.words[idx] = value
	return nil
}

// SetWord stores a word by word index. Used by image loading, before
// execution begins.
func (m *Memory) SetWord(index int, value uint32) {
	m.words[index] = value
}

// WordAt reads a word by word index.
func (m *Memory) WordAt(index int) uint32 {
	return m.words[index]
}
