// Package emu provides functional MC88100-subset emulation.
package emu

import "github.com/sarchlab/m88sim/insts"

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true if the halt instruction has executed.
	Halted bool

	// Fault is set if an unrecoverable fault occurred during execution.
	Fault *Fault
}

// Emulator executes MC88100-subset instructions functionally. It is
// single-threaded and fully synchronous: every fetch, decode, execute,
// memory access, and cache lookup runs to completion before the next
// begins.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	cache  DataCache
	tracer Tracer

	stats  Stats
	halted bool

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
	memWords         int
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMemWords sets the memory capacity in 32-bit words.
func WithMemWords(words int) EmulatorOption {
	return func(e *Emulator) {
		e.memWords = words
	}
}

// WithDataCache attaches a cache directory model. Every load and store
// probes it with the effective address; nil disables cache modeling.
func WithDataCache(cache DataCache) EmulatorOption {
	return func(e *Emulator) {
		e.cache = cache
	}
}

// WithTracer attaches a tracer for per-instruction and per-access events.
func WithTracer(tracer Tracer) EmulatorOption {
	return func(e *Emulator) {
		e.tracer = tracer
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new emulator. Registers, memory, and both
// instruction pointers start at zero.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile:  &RegFile{},
		decoder:  insts.NewDecoder(),
		memWords: DefaultMemWords,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.memory = NewMemorySized(e.memWords)
	e.alu = NewALU(e.regFile)
	e.branchUnit = NewBranchUnit(e.regFile, &e.stats)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory, &e.stats)
	e.lsu.cache = e.cache
	e.lsu.tracer = e.tracer

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Stats returns a snapshot of the execution statistics.
func (e *Emulator) Stats() Stats {
	return e.stats
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Halted reports whether the halt instruction has executed.
func (e *Emulator) Halted() bool {
	return e.halted
}

// LoadImage stores the program image at consecutive word addresses
// starting at 0. Execution begins at address 0.
func (e *Emulator) LoadImage(words []uint32) *Fault {
	if len(words) > e.memory.Words() {
		return &Fault{Kind: FaultMemBounds, Addr: uint32(len(words)-1) << 2}
	}
	for i, w := range words {
		e.memory.SetWord(i, w)
	}
	return nil
}

// Step executes a single instruction: fetch the word at FIP, advance the
// pointers, decode, dispatch, and re-pin r0.
func (e *Emulator) Step() StepResult {
	if e.halted {
		return StepResult{Halted: true}
	}
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Fault: &Fault{Kind: FaultInstLimit, Addr: e.regFile.FIP}}
	}

	// Fetch
	word, fault := e.memory.ReadWord(e.regFile.FIP)
	if fault != nil {
		return StepResult{Fault: fault}
	}
	e.regFile.XIP = e.regFile.FIP
	e.regFile.FIP = e.regFile.XIP + 4
	e.stats.InstFetches++

	// Decode
	inst := e.decoder.Decode(word)
	if e.tracer != nil {
		e.tracer.Instruction(e.regFile.XIP, inst)
	}

	// Execute
	fault = e.execute(inst)
	e.regFile.PinZero()
	if fault != nil {
		return StepResult{Fault: fault}
	}

	e.instructionCount++
	if e.tracer != nil {
		e.tracer.Registers(e.regFile)
	}

	return StepResult{Halted: e.halted}
}

// Run executes instructions until the program halts or a fault occurs.
// It returns nil on a clean halt.
func (e *Emulator) Run() *Fault {
	for {
		result := e.Step()
		if result.Fault != nil {
			return result.Fault
		}
		if result.Halted {
			return nil
		}
	}
}

// execute dispatches a decoded instruction to its handler.
func (e *Emulator) execute(inst *insts.Instruction) *Fault {
	switch inst.Op {
	case insts.OpHALT:
		e.halted = true
	case insts.OpLD:
		return e.lsu.Load(inst, e.lsu.EffAddr(inst))
	case insts.OpST:
		return e.lsu.Store(inst, e.lsu.EffAddr(inst))
	case insts.OpLDA:
		e.lsu.LoadAddress(inst, e.lsu.EffAddr(inst))
	case insts.OpADD:
		if inst.Format == insts.FormatImm {
			e.alu.AddImm(inst.D, inst.S1, inst.Imm16)
		} else {
			e.alu.Add(inst.D, inst.S1, inst.S2)
		}
	case insts.OpSUB:
		if inst.Format == insts.FormatImm {
			e.alu.SubImm(inst.D, inst.S1, inst.Imm16)
		} else {
			e.alu.Sub(inst.D, inst.S1, inst.S2)
		}
	case insts.OpEXT:
		e.alu.Ext(inst.D, inst.S1, inst.S2)
	case insts.OpEXTU:
		e.alu.Extu(inst.D, inst.S1, inst.S2)
	case insts.OpMAK:
		e.alu.Mak(inst.D, inst.S1, inst.S2)
	case insts.OpROT:
		e.alu.Rot(inst.D, inst.S1, inst.S2)
	case insts.OpBR:
		return e.branchUnit.Br(inst)
	case insts.OpBCND:
		return e.branchUnit.Bcnd(inst)
	default:
		return &Fault{Kind: FaultDecode, Addr: e.regFile.XIP, Inst: inst}
	}
	return nil
}
