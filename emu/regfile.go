// Package emu provides functional MC88100-subset emulation.
package emu

// RegFile represents the processor register state: 32 general-purpose
// 32-bit registers plus the two instruction address pointers.
type RegFile struct {
	// R holds general-purpose registers r0-r31. r0 is hard-wired to zero;
	// the emulator re-pins it after every executed instruction.
	R [32]uint32

	// XIP is the execute instruction pointer: the address of the
	// instruction currently being interpreted.
	XIP uint32

	// FIP is the fetch instruction pointer: the address of the next
	// instruction. Branch handlers overwrite it using XIP as the base.
	FIP uint32
}

// ReadReg reads a register value.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	return r.R[reg&0x1f]
}

// WriteReg writes a value to a register. Writes to r0 land but are undone
// by PinZero at the end of the instruction, matching the hardware behavior
// of a hard-wired zero register.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	r.R[reg&0x1f] = value
}

// PinZero forces r0 back to zero.
func (r *RegFile) PinZero() {
	r.R[0] = 0
}
