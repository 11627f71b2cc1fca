// Package emu provides functional MC88100-subset emulation.
package emu

import (
	"fmt"

	"github.com/sarchlab/m88sim/insts"
)

// FaultKind identifies a class of execution fault.
type FaultKind uint8

// Fault kinds. Every detected fault terminates the run; there is no retry
// or skip-and-continue policy.
const (
	// FaultDecode is an unrecognized opcode combination.
	FaultDecode FaultKind = iota + 1
	// FaultMemBounds is an effective address outside the configured memory.
	FaultMemBounds
	// FaultZeroDisplacement is a branch encoding with a zero displacement,
	// which signals a malformed or unintended encoding.
	FaultZeroDisplacement
	// FaultInstLimit is the instruction-count guard used by test harnesses.
	FaultInstLimit
)

// Fault describes an unrecoverable execution fault. It is carried in a
// StepResult instead of terminating the process, so the caller of the
// execution loop decides whether to abort or log.
type Fault struct {
	Kind FaultKind

	// Addr is the executing instruction address, or the offending effective
	// address for FaultMemBounds.
	Addr uint32

	// Inst is the decoded instruction, when decoding got that far.
	Inst *insts.Instruction
}

// Error renders the fault; decode faults dump all decoded fields for
// diagnosis, matching the field set the decoder extracted.
func (f *Fault) Error() string {
	switch f.Kind {
	case FaultDecode:
		return fmt.Sprintf(
			"unknown instruction %08x op1=%x op2=%x d=%x s1=%x s2=%x",
			f.Inst.Word, f.Inst.Op1, f.Inst.Op2, f.Inst.D, f.Inst.S1, f.Inst.S2)
	case FaultMemBounds:
		return fmt.Sprintf("memory access out of range at address %x", f.Addr)
	case FaultZeroDisplacement:
		return fmt.Sprintf("zero-displacement branch at %x", f.Addr)
	case FaultInstLimit:
		return "max instructions reached"
	}
	return fmt.Sprintf("fault %d at %x", f.Kind, f.Addr)
}
