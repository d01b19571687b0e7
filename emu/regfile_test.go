package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/armdbg/emu"
	"github.com/sarchlab/armdbg/insts"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should satisfy the decoder's register reader", func() {
		var reader insts.RegisterReader = regFile
		regFile.WriteReg(5, 0x1234)
		Expect(reader.ReadReg(5)).To(Equal(uint32(0x1234)))
	})

	It("should mask register indices to 4 bits", func() {
		regFile.WriteReg(0x12, 7)
		Expect(regFile.ReadReg(2)).To(Equal(uint32(7)))
		Expect(regFile.ReadReg(0xF2)).To(Equal(uint32(7)))
	})

	It("should expose PC and SP", func() {
		regFile.SetPC(0x8000)
		regFile.WriteReg(13, 0x3000)

		Expect(regFile.PC()).To(Equal(uint32(0x8000)))
		Expect(regFile.ReadReg(15)).To(Equal(uint32(0x8000)))
		Expect(regFile.SP()).To(Equal(uint32(0x3000)))
	})

	It("should track the Thumb bit", func() {
		Expect(regFile.Thumb()).To(BeFalse())

		regFile.SetThumb(true)
		Expect(regFile.Thumb()).To(BeTrue())
		Expect(regFile.CPSR).To(Equal(emu.CPSRThumb))

		regFile.SetThumb(false)
		Expect(regFile.Thumb()).To(BeFalse())
	})

	It("should decode the condition flags", func() {
		regFile.CPSR = emu.CPSRNegative | emu.CPSRCarry

		flags := regFile.Flags()
		Expect(flags.N).To(BeTrue())
		Expect(flags.Z).To(BeFalse())
		Expect(flags.C).To(BeTrue())
		Expect(flags.V).To(BeFalse())
	})

	It("should take an independent snapshot", func() {
		regFile.WriteReg(0, 1)
		snap := regFile.Snapshot()
		regFile.WriteReg(0, 2)

		Expect(snap.ReadReg(0)).To(Equal(uint32(1)))
	})

	DescribeTable("ParseRegister",
		func(name string, want uint8, ok bool) {
			reg, found := emu.ParseRegister(name)
			Expect(found).To(Equal(ok))
			if ok {
				Expect(reg).To(Equal(want))
			}
		},
		Entry("r0", "r0", uint8(0), true),
		Entry("upper case", "R12", uint8(12), true),
		Entry("sp", "sp", uint8(13), true),
		Entry("lr", "LR", uint8(14), true),
		Entry("pc", "pc", uint8(15), true),
		Entry("r15", "r15", uint8(15), true),
		Entry("r16", "r16", uint8(0), false),
		Entry("garbage", "x0", uint8(0), false),
		Entry("empty number", "r", uint8(0), false),
	)

	Describe("Set", func() {
		It("should set registers by name", func() {
			Expect(regFile.Set("sp", 0x100)).To(Succeed())
			Expect(regFile.Set("r3", 0x200)).To(Succeed())

			Expect(regFile.SP()).To(Equal(uint32(0x100)))
			Expect(regFile.ReadReg(3)).To(Equal(uint32(0x200)))
		})

		It("should set the CPSR", func() {
			Expect(regFile.Set("CPSR", emu.CPSRThumb)).To(Succeed())
			Expect(regFile.Thumb()).To(BeTrue())
		})

		It("should reject unknown names", func() {
			err := regFile.Set("x9", 1)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown register"))
		})
	})
})
