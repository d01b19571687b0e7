package insts_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/armdbg/insts"
)

var _ = Describe("Registers", func() {
	Describe("RegName", func() {
		It("should name the aliased registers", func() {
			Expect(insts.RegName(13)).To(Equal("SP"))
			Expect(insts.RegName(14)).To(Equal("LR"))
			Expect(insts.RegName(15)).To(Equal("PC"))
		})

		It("should name R0-R12 by index", func() {
			for i := uint8(0); i <= 12; i++ {
				Expect(insts.RegName(i)).To(Equal(fmt.Sprintf("R%d", i)))
			}
		})

		It("should give every register a unique name", func() {
			seen := map[string]uint8{}
			for i := uint8(0); i < insts.NumRegisters; i++ {
				name := insts.RegName(i)
				Expect(seen).NotTo(HaveKey(name))
				seen[name] = i
			}
		})

		It("should mask out-of-range indices to 4 bits", func() {
			Expect(insts.RegName(0x13)).To(Equal("R3"))
			Expect(insts.RegName(0xFD)).To(Equal("SP"))
		})
	})

	Describe("RegList", func() {
		It("should render an empty mask as an empty list", func() {
			Expect(insts.RegList(0)).To(BeEmpty())
		})

		It("should render registers in ascending order without a trailing comma", func() {
			Expect(insts.RegList(0x0030)).To(Equal("R4,R5"))
		})

		It("should include SP, LR and PC", func() {
			Expect(insts.RegList(0xE001)).To(Equal("R0,SP,LR,PC"))
		})

		It("should render every register", func() {
			Expect(insts.RegList(0xFFFF)).To(Equal(
				"R0,R1,R2,R3,R4,R5,R6,R7,R8,R9,R10,R11,R12,SP,LR,PC"))
		})

		It("should append to an existing buffer", func() {
			out := insts.AppendRegList([]byte("{"), 0x4002)
			Expect(string(out)).To(Equal("{R1,LR"))
		})
	})
})
