// Package emu provides functional MC88100-subset emulation.
package emu

import "github.com/sarchlab/m88sim/insts"

// BranchUnit implements control transfer. Branch targets are computed from
// XIP, the address of the branch instruction itself, not the already
// advanced fetch pointer. Delayed branching is not used.
type BranchUnit struct {
	regFile *RegFile
	stats   *Stats
}

// NewBranchUnit creates a new BranchUnit connected to the given register
// file and statistics counters.
func NewBranchUnit(regFile *RegFile, stats *Stats) *BranchUnit {
	return &BranchUnit{regFile: regFile, stats: stats}
}

// Br performs an unconditional branch: FIP = XIP + 4*disp, with the 26-bit
// word displacement sign-extended. Always counted as a taken branch. A zero
// displacement is a self-loop and faults.
func (b *BranchUnit) Br(inst *insts.Instruction) *Fault {
	if inst.WordDisp == 0 {
		return &Fault{Kind: FaultZeroDisplacement, Addr: b.regFile.XIP, Inst: inst}
	}

	b.stats.Branches++
	b.stats.TakenBranches++
	b.regFile.FIP = uint32(int32(b.regFile.XIP) + inst.WordDisp<<2)
	return nil
}

// Bcnd performs a conditional branch. The source register's sign bit and
// zero status form a 2-bit condition code; bit `code` of the mask field
// selects whether the branch is taken. Counted as a branch always, and as
// taken only when the mask test passes.
func (b *BranchUnit) Bcnd(inst *insts.Instruction) *Fault {
	if inst.WordDisp == 0 {
		return &Fault{Kind: FaultZeroDisplacement, Addr: b.regFile.XIP, Inst: inst}
	}

	b.stats.Branches++

	code := ConditionCode(b.regFile.ReadReg(inst.S1))
	if (inst.Mask()>>code)&1 == 1 {
		b.stats.TakenBranches++
		b.regFile.FIP = uint32(int32(b.regFile.XIP) + inst.WordDisp<<2)
	}
	return nil
}

// ConditionCode computes the 2-bit condition code for a register value:
// bit 1 is the sign bit, bit 0 is the zero flag. The zero flag is computed
// as (value << 1) == 0, so 0x80000000 sets both bits.
func ConditionCode(value uint32) uint8 {
	sign := uint8(value >> 31)
	zero := uint8(0)
	if value<<1 == 0 {
		zero = 1
	}
	return sign<<1 | zero
}
