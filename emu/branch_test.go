package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m88sim/emu"
)

// wordNop is add r0,r0,0: a filler word that leaves all state unchanged.
const wordNop = uint32(0x70000000)

var _ = Describe("BranchUnit", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	load := func(words ...uint32) {
		Expect(e.LoadImage(words)).To(BeNil())
	}

	Describe("br", func() {
		It("should branch forward relative to the branch's own address", func() {
			load(encodeBr(3), wordNop, wordNop, encodeImm(opADDImm, 1, 0, 7), wordHalt)

			e.Step()
			Expect(e.RegFile().FIP).To(Equal(uint32(0xc)))

			e.Step()
			Expect(e.RegFile().ReadReg(1)).To(Equal(uint32(7)))
		})

		It("should branch backward with a sign-extended displacement", func() {
			load(wordNop, wordNop, encodeBr(-2), wordHalt)

			e.Step()
			e.Step()
			e.Step() // br at address 8, displacement -2 words

			Expect(e.RegFile().FIP).To(Equal(uint32(0)))
		})

		It("should count the branch as both executed and taken", func() {
			load(encodeBr(1), wordHalt)

			e.Step()

			Expect(e.Stats().Branches).To(Equal(uint64(1)))
			Expect(e.Stats().TakenBranches).To(Equal(uint64(1)))
		})

		It("should fault on a zero displacement without counting the branch", func() {
			load(encodeBr(0))

			result := e.Step()

			Expect(result.Fault).NotTo(BeNil())
			Expect(result.Fault.Kind).To(Equal(emu.FaultZeroDisplacement))
			Expect(e.Stats().Branches).To(Equal(uint64(0)))
		})
	})

	Describe("bcnd", func() {
		It("should take the branch when the condition holds", func() {
			load(encodeBcnd(0x2, 1, 2), wordHalt, encodeImm(opADDImm, 3, 0, 9), wordHalt)
			e.RegFile().WriteReg(1, 0) // eq0 holds

			e.Step()
			Expect(e.RegFile().FIP).To(Equal(uint32(8)))

			e.Step()
			Expect(e.RegFile().ReadReg(3)).To(Equal(uint32(9)))
			Expect(e.Stats().Branches).To(Equal(uint64(1)))
			Expect(e.Stats().TakenBranches).To(Equal(uint64(1)))
		})

		It("should fall through when the condition fails", func() {
			load(encodeBcnd(0x2, 1, 2), wordHalt)
			e.RegFile().WriteReg(1, 5) // eq0 fails

			e.Step()

			Expect(e.RegFile().FIP).To(Equal(uint32(4)))
			Expect(e.Stats().Branches).To(Equal(uint64(1)))
			Expect(e.Stats().TakenBranches).To(Equal(uint64(0)))
		})

		It("should sign-extend a negative 16-bit displacement", func() {
			load(wordNop, wordNop, encodeBcnd(0xf, 1, -2), wordHalt)

			e.Step()
			e.Step()
			e.Step() // bcnd at address 8 with mask always

			Expect(e.RegFile().FIP).To(Equal(uint32(0)))
		})

		It("should fault on a zero displacement", func() {
			load(encodeBcnd(0xf, 1, 0))

			result := e.Step()

			Expect(result.Fault).NotTo(BeNil())
			Expect(result.Fault.Kind).To(Equal(emu.FaultZeroDisplacement))
		})

		DescribeTable("condition evaluation",
			func(mask uint8, value uint32, taken bool) {
				e = emu.NewEmulator()
				Expect(e.LoadImage([]uint32{
					encodeBcnd(mask, 1, 2),
					wordHalt,
					wordHalt,
				})).To(BeNil())
				e.RegFile().WriteReg(1, value)

				e.Step()

				if taken {
					Expect(e.RegFile().FIP).To(Equal(uint32(8)))
				} else {
					Expect(e.RegFile().FIP).To(Equal(uint32(4)))
				}
			},
			Entry("eq0 taken on zero", uint8(0x2), uint32(0), true),
			Entry("eq0 not taken on positive", uint8(0x2), uint32(1), false),
			Entry("ne0 taken on positive", uint8(0xd), uint32(1), true),
			Entry("ne0 not taken on zero", uint8(0xd), uint32(0), false),
			Entry("gt0 taken on positive", uint8(0x1), uint32(42), true),
			Entry("gt0 not taken on zero", uint8(0x1), uint32(0), false),
			Entry("gt0 not taken on negative", uint8(0x1), uint32(0xffffffff), false),
			Entry("lt0 taken on negative", uint8(0xc), uint32(0xffffffff), true),
			Entry("lt0 not taken on zero", uint8(0xc), uint32(0), false),
			Entry("ge0 taken on zero", uint8(0x3), uint32(0), true),
			Entry("ge0 not taken on negative", uint8(0x3), uint32(0x80000001), false),
			Entry("le0 taken on negative", uint8(0xe), uint32(0xfffffffe), true),
			Entry("le0 not taken on positive", uint8(0xe), uint32(3), false),
			Entry("always taken on anything", uint8(0xf), uint32(12345), true),
			Entry("never not taken on zero", uint8(0x0), uint32(0), false),
		)

		Context("with the minimum signed value", func() {
			// 0x80000000 doubles to zero in the flag computation, so it
			// reads as both negative and zero.
			It("should take lt0, le0, and ne0 but not eq0", func() {
				for _, tc := range []struct {
					mask  uint8
					taken bool
				}{
					{0xc, true},  // lt0
					{0xe, true},  // le0
					{0xd, true},  // ne0
					{0x2, false}, // eq0
					{0x1, false}, // gt0
				} {
					e = emu.NewEmulator()
					Expect(e.LoadImage([]uint32{
						encodeBcnd(tc.mask, 1, 2),
						wordHalt,
						wordHalt,
					})).To(BeNil())
					e.RegFile().WriteReg(1, 0x80000000)

					e.Step()

					if tc.taken {
						Expect(e.RegFile().FIP).To(Equal(uint32(8)),
							"mask %x should take on 0x80000000", tc.mask)
					} else {
						Expect(e.RegFile().FIP).To(Equal(uint32(4)),
							"mask %x should fall through on 0x80000000", tc.mask)
					}
				}
			})
		})
	})

	Describe("ConditionCode", func() {
		It("should combine the sign and zero flags", func() {
			Expect(emu.ConditionCode(0)).To(Equal(uint8(1)))
			Expect(emu.ConditionCode(1)).To(Equal(uint8(0)))
			Expect(emu.ConditionCode(0xffffffff)).To(Equal(uint8(2)))
			Expect(emu.ConditionCode(0x80000000)).To(Equal(uint8(3)))
		})
	})
})
