// Package insts provides MC88100-subset instruction definitions and decoding.
package insts

import "fmt"

// Op represents a base operation of the simulated subset.
type Op uint8

// Base operations. The immediate and triadic encodings of LD, ST, LDA, ADD,
// and SUB share an Op and are distinguished by Format.
const (
	OpUnknown Op = iota
	OpHALT
	OpLD
	OpST
	OpLDA
	OpADD
	OpSUB
	OpBR
	OpBCND
	OpEXT
	OpEXTU
	OpMAK
	OpROT
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown    Format = iota
	FormatHalt              // op1 = 0, no operands
	FormatImm               // two registers and a zero-extended imm16
	FormatBranch            // single sign-extended 26-bit word displacement
	FormatBranchCond        // condition mask, register, 16-bit word displacement
	FormatBitField          // two registers and a 5-bit shift amount
	FormatTriadic           // three registers, optional word scaling
)

// Primary opcodes (bits [31:26]).
const (
	op1Halt    = 0x00
	op1LDImm   = 0x05
	op1STImm   = 0x09
	op1LDAImm  = 0x0d
	op1ADDImm  = 0x1c
	op1SUBImm  = 0x1d
	op1BR      = 0x30
	op1BCND    = 0x3a
	op1BitFld  = 0x3c
	op1Triadic = 0x3d
)

// Secondary opcodes (bits [15:10]) for the bit-field and triadic groups.
const (
	op2EXT  = 0x24
	op2EXTU = 0x26
	op2MAK  = 0x28
	op2ROT  = 0x2a
	op2LD   = 0x05
	op2ST   = 0x09
	op2LDA  = 0x0d
	op2ADD  = 0x1c
	op2SUB  = 0x1d
)

// BCND condition masks with dedicated mnemonics. The mask field reuses the
// destination-register bit positions; any other value is legal and simply
// tests against whichever flag bit results.
const (
	MaskNever  = 0x0
	MaskGT0    = 0x1
	MaskEQ0    = 0x2
	MaskGE0    = 0x3
	MaskLT0    = 0xc
	MaskNE0    = 0xd
	MaskLE0    = 0xe
	MaskAlways = 0xf
)

// Instruction represents a decoded instruction word.
type Instruction struct {
	Op     Op     // Base operation
	Format Format // Encoding format

	// Register fields
	D  uint8 // Destination register (also the condition mask for BCND)
	S1 uint8 // First source register
	S2 uint8 // Second source register / 5-bit shift amount

	// Immediate operand (zero-extended at use sites)
	Imm16 uint16

	// Scaled is the word-scaling bit (bit 9) of triadic LD/ST/LDA.
	Scaled bool

	// WordDisp is the sign-extended branch displacement in words
	// (26-bit field for BR, 16-bit field for BCND).
	WordDisp int32

	// Raw fields, kept for diagnostics on unknown encodings.
	Word uint32
	Op1  uint8
	Op2  uint8
}

// Mask returns the BCND condition mask (the D field position).
func (i *Instruction) Mask() uint8 {
	return i.D
}

// Decoder decodes raw instruction words.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word. Field extraction is a pure
// function of the word; unknown opcode combinations yield OpUnknown with
// all raw fields populated.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		D:      uint8((word >> 21) & 0x1f),
		S1:     uint8((word >> 16) & 0x1f),
		S2:     uint8(word & 0x1f),
		Imm16:  uint16(word & 0xffff),
		Scaled: (word>>9)&1 == 1,
		Word:   word,
		Op1:    uint8((word >> 26) & 0x3f),
		Op2:    uint8((word >> 10) & 0x3f),
	}

	switch inst.Op1 {
	case op1Halt:
		inst.Op = OpHALT
		inst.Format = FormatHalt
	case op1LDImm:
		inst.Op = OpLD
		inst.Format = FormatImm
	case op1STImm:
		inst.Op = OpST
		inst.Format = FormatImm
	case op1LDAImm:
		inst.Op = OpLDA
		inst.Format = FormatImm
	case op1ADDImm:
		inst.Op = OpADD
		inst.Format = FormatImm
	case op1SUBImm:
		inst.Op = OpSUB
		inst.Format = FormatImm
	case op1BR:
		inst.Op = OpBR
		inst.Format = FormatBranch
		inst.WordDisp = signExtend26(word & 0x03ffffff)
	case op1BCND:
		inst.Op = OpBCND
		inst.Format = FormatBranchCond
		inst.WordDisp = signExtend16(word & 0xffff)
	case op1BitFld:
		d.decodeBitField(inst)
	case op1Triadic:
		d.decodeTriadic(inst)
	}

	return inst
}

// decodeBitField decodes the EXT/EXTU/MAK/ROT group on the secondary opcode.
func (d *Decoder) decodeBitField(inst *Instruction) {
	switch inst.Op2 {
	case op2EXT:
		inst.Op = OpEXT
	case op2EXTU:
		inst.Op = OpEXTU
	case op2MAK:
		inst.Op = OpMAK
	case op2ROT:
		inst.Op = OpROT
	default:
		return
	}
	inst.Format = FormatBitField
}

// decodeTriadic decodes the three-register LD/ST/LDA/ADD/SUB group on the
// secondary opcode.
func (d *Decoder) decodeTriadic(inst *Instruction) {
	switch inst.Op2 {
	case op2LD:
		inst.Op = OpLD
	case op2ST:
		inst.Op = OpST
	case op2LDA:
		inst.Op = OpLDA
	case op2ADD:
		inst.Op = OpADD
	case op2SUB:
		inst.Op = OpSUB
	default:
		return
	}
	inst.Format = FormatTriadic
}

// signExtend26 sign-extends a 26-bit field to 32 bits.
func signExtend26(v uint32) int32 {
	return int32(v<<6) >> 6
}

// signExtend16 sign-extends a 16-bit field to 32 bits.
func signExtend16(v uint32) int32 {
	return int32(v<<16) >> 16
}

// mnemonic returns the base mnemonic for an operation.
func (op Op) mnemonic() string {
	switch op {
	case OpHALT:
		return "halt"
	case OpLD:
		return "ld"
	case OpST:
		return "st"
	case OpLDA:
		return "lda"
	case OpADD:
		return "add"
	case OpSUB:
		return "sub"
	case OpBR:
		return "br"
	case OpBCND:
		return "bcnd"
	case OpEXT:
		return "ext"
	case OpEXTU:
		return "extu"
	case OpMAK:
		return "mak"
	case OpROT:
		return "rot"
	}
	return "unknown"
}

// String returns the base mnemonic.
func (op Op) String() string {
	return op.mnemonic()
}

// condName returns the mnemonic for a BCND condition mask.
func condName(mask uint8) string {
	switch mask {
	case MaskEQ0:
		return "eq0"
	case MaskNE0:
		return "ne0"
	case MaskGT0:
		return "gt0"
	case MaskLT0:
		return "lt0"
	case MaskGE0:
		return "ge0"
	case MaskLE0:
		return "le0"
	case 0x8:
		return "mask=8"
	case MaskAlways:
		return "always"
	case MaskNever:
		return "never"
	}
	return fmt.Sprintf("mask=%x", mask)
}

// String renders the instruction in the trace format: operands in hex,
// scaled triadic addressing as r%x[r%x].
func (i *Instruction) String() string {
	switch i.Format {
	case FormatHalt:
		return "halt"
	case FormatImm:
		return fmt.Sprintf("%-4s r%x,r%x,%x", i.Op.mnemonic(), i.D, i.S1, i.Imm16)
	case FormatBranch:
		return fmt.Sprintf("br   %x", i.Word&0x03ffffff)
	case FormatBranchCond:
		return fmt.Sprintf("bcnd %s,r%d,%x", condName(i.Mask()), i.S1, i.Imm16)
	case FormatBitField:
		return fmt.Sprintf("%-4s r%x,r%x,%x", i.Op.mnemonic(), i.D, i.S1, i.S2)
	case FormatTriadic:
		if i.Scaled && (i.Op == OpLD || i.Op == OpST || i.Op == OpLDA) {
			return fmt.Sprintf("%-4s r%x,r%x[r%x]", i.Op.mnemonic(), i.D, i.S1, i.S2)
		}
		return fmt.Sprintf("%-4s r%x,r%x,r%x", i.Op.mnemonic(), i.D, i.S1, i.S2)
	}
	return fmt.Sprintf("unknown %08x", i.Word)
}
