// Package emu provides functional MC88100-subset emulation.
package emu

import (
	"fmt"
	"io"

	"github.com/sarchlab/m88sim/insts"
)

// Tracer receives per-instruction and per-access events from the emulator.
// The core exposes the hooks; what gets rendered (and where) is owned by
// the caller.
type Tracer interface {
	// Instruction is called once per executed instruction with the address
	// it was fetched from and its decoded form.
	Instruction(xip uint32, inst *insts.Instruction)

	// Access is called for every data memory access with the effective
	// byte address.
	Access(addr uint32, write bool)

	// Registers is called after every completed instruction with the
	// register file state.
	Registers(regFile *RegFile)
}

// TextTracer renders trace events as text in the classic simulator format.
type TextTracer struct {
	w io.Writer

	// DumpRegisters enables a register dump after every instruction.
	DumpRegisters bool
}

// NewTextTracer creates a TextTracer writing to w.
func NewTextTracer(w io.Writer) *TextTracer {
	return &TextTracer{w: w}
}

// Instruction prints the fetch address and the decoded mnemonic.
func (t *TextTracer) Instruction(xip uint32, inst *insts.Instruction) {
	fmt.Fprintf(t.w, "at %02x, %s\n", xip, inst)
}

// Access echoes the effective address of a data access.
func (t *TextTracer) Access(addr uint32, write bool) {
	kind := "read"
	if write {
		kind = "write"
	}
	fmt.Fprintf(t.w, "  %s access at address %x\n", kind, addr)
}

// Registers dumps the register file when DumpRegisters is set.
func (t *TextTracer) Registers(regFile *RegFile) {
	if t.DumpRegisters {
		WriteRegisters(t.w, regFile)
	}
}

// WriteRegisters writes the 32 general registers as four columns of eight.
func WriteRegisters(w io.Writer, regFile *RegFile) {
	for i := 0; i < 8; i++ {
		fmt.Fprintf(w, "  r%x: %08x", i, regFile.R[i])
		fmt.Fprintf(w, "  r%x: %08x", i+8, regFile.R[i+8])
		fmt.Fprintf(w, "  r%x: %08x", i+16, regFile.R[i+16])
		fmt.Fprintf(w, "  r%x: %08x\n", i+24, regFile.R[i+24])
	}
}
