// Package emu provides functional MC88100-subset emulation.
package emu

// Stats holds dynamic execution statistics. All counters are monotonically
// non-decreasing within a run.
type Stats struct {
	InstFetches   uint64
	MemReads      uint64
	MemWrites     uint64
	Branches      uint64
	TakenBranches uint64
}

// TakenRate returns the fraction of executed branches that were taken.
// It is derived at read time, not stored.
func (s Stats) TakenRate() float64 {
	if s.Branches == 0 {
		return 0
	}
	return float64(s.TakenBranches) / float64(s.Branches)
}
