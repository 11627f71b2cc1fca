// Package insts provides MC88100-subset instruction definitions and decoding.
//
// This package implements decoding of raw 32-bit instruction words into
// structured instruction representations. The subset covers 20 instructions
// derived from 12 base operations plus halt:
//   - Immediate forms: LD, ST, LDA, ADD, SUB with a zero-extended imm16
//   - Triadic forms: LD, ST, LDA, ADD, SUB over three registers
//     (LD/ST/LDA honor the word-scaling bit)
//   - Bit-field forms: EXT, EXTU, MAK, ROT used as shifts/rotates
//   - Control transfer: BR (26-bit displacement), BCND (mask + 16-bit
//     displacement)
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x14200010) // ld r1,r0,0x10
//	fmt.Printf("Op: %v, D: %d, S1: %d, Imm16: 0x%x\n", inst.Op, inst.D, inst.S1, inst.Imm16)
package insts
