// Package emu provides functional MC88100-subset emulation.
package emu

// ALU implements the register-to-register data-processing operations.
// None of them touch memory, and no carry or borrow flags are maintained.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// AddImm performs rd = rs1 + imm16 with the immediate zero-extended.
func (a *ALU) AddImm(rd, rs1 uint8, imm16 uint16) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs1)+uint32(imm16))
}

// SubImm performs rd = rs1 - imm16 with the immediate zero-extended.
func (a *ALU) SubImm(rd, rs1 uint8, imm16 uint16) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs1)-uint32(imm16))
}

// Add performs rd = rs1 + rs2.
func (a *ALU) Add(rd, rs1, rs2 uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs1)+a.regFile.ReadReg(rs2))
}

// Sub performs rd = rs1 - rs2.
func (a *ALU) Sub(rd, rs1, rs2 uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs1)-a.regFile.ReadReg(rs2))
}

// Ext performs an arithmetic right shift: rd = rs1 >> n (sign-filling).
// The shift amount comes from the 5-bit second source field (0-31).
func (a *ALU) Ext(rd, rs1, n uint8) {
	a.regFile.WriteReg(rd, uint32(int32(a.regFile.ReadReg(rs1))>>n))
}

// Extu performs a logical right shift: rd = rs1 >> n (zero-filling).
func (a *ALU) Extu(rd, rs1, n uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs1)>>n)
}

// Mak performs a logical left shift: rd = rs1 << n. The full make-bit-field
// semantics collapse to a plain shift in this subset (w5 = 0).
func (a *ALU) Mak(rd, rs1, n uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs1)<<n)
}

// Rot performs a right rotate: rd = (rs1 << (32-n)) | (rs1 >> n).
// n = 0 must return the value unchanged; the 32-bit left-shift component
// is special-cased rather than computed.
func (a *ALU) Rot(rd, rs1, n uint8) {
	value := a.regFile.ReadReg(rs1)
	if n != 0 {
		value = (value << (32 - n)) | (value >> n)
	}
	a.regFile.WriteReg(rd, value)
}
