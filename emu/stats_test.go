package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m88sim/emu"
)

var _ = Describe("Stats", func() {
	It("should derive the taken rate from the branch counters", func() {
		stats := emu.Stats{Branches: 4, TakenBranches: 3}
		Expect(stats.TakenRate()).To(BeNumerically("~", 0.75))
	})

	It("should report zero when no branches executed", func() {
		Expect(emu.Stats{}.TakenRate()).To(Equal(0.0))
	})
})

var _ = Describe("RegFile", func() {
	It("should mask register numbers to five bits", func() {
		regFile := &emu.RegFile{}
		regFile.WriteReg(0x21, 99)

		Expect(regFile.ReadReg(1)).To(Equal(uint32(99)))
	})

	It("should force r0 back to zero on PinZero", func() {
		regFile := &emu.RegFile{}
		regFile.WriteReg(0, 42)

		regFile.PinZero()

		Expect(regFile.ReadReg(0)).To(Equal(uint32(0)))
	})
})
