// Package emu provides functional MC88100-subset emulation.
package emu

import "github.com/sarchlab/m88sim/insts"

// DataCache receives the effective address of every data access when cache
// modeling is enabled. It is consulted as a side effect of the
// memory-referencing instructions only.
type DataCache interface {
	Access(addr uint32, write bool)
}

// LoadStoreUnit implements the memory-referencing instructions and the
// three addressing modes:
//
//	register indirect with zero-extended immediate:  reg[s1] + imm16
//	register indirect with index:                    reg[s1] + reg[s2]
//	register indirect with scaled index:             reg[s1] + (reg[s2] << 2)
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
	stats   *Stats
	cache   DataCache // nil when cache modeling is disabled
	tracer  Tracer
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file, memory, and statistics counters.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory, stats *Stats) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile, memory: memory, stats: stats}
}

// EffAddr computes the effective byte address for an immediate or triadic
// memory-referencing instruction.
func (l *LoadStoreUnit) EffAddr(inst *insts.Instruction) uint32 {
	base := l.regFile.ReadReg(inst.S1)
	if inst.Format == insts.FormatImm {
		return base + uint32(inst.Imm16)
	}

	index := l.regFile.ReadReg(inst.S2)
	if inst.Scaled {
		index <<= 2
	}
	return base + index
}

// Load reads the word at addr into the destination register and probes the
// cache directory with a read access.
func (l *LoadStoreUnit) Load(inst *insts.Instruction, addr uint32) *Fault {
	if l.tracer != nil {
		l.tracer.Access(addr, false)
	}

	value, fault := l.memory.ReadWord(addr)
	if fault != nil {
		return fault
	}
	l.regFile.WriteReg(inst.D, value)
	l.stats.MemReads++

	if l.cache != nil {
		l.cache.Access(addr, false)
	}
	return nil
}

// Store writes the destination register's value to the word at addr and
// probes the cache directory with a write access.
func (l *LoadStoreUnit) Store(inst *insts.Instruction, addr uint32) *Fault {
	if l.tracer != nil {
		l.tracer.Access(addr, true)
	}

	if fault := l.memory.WriteWord(addr, l.regFile.ReadReg(inst.D)); fault != nil {
		return fault
	}
	l.stats.MemWrites++

	if l.cache != nil {
		l.cache.Access(addr, true)
	}
	return nil
}

// LoadAddress stores the effective address itself into the destination
// register. It performs no memory or cache access.
func (l *LoadStoreUnit) LoadAddress(inst *insts.Instruction, addr uint32) {
	l.regFile.WriteReg(inst.D, addr)
}
