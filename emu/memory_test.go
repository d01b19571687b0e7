package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/armdbg/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	It("should read unwritten memory as zero", func() {
		Expect(memory.Read32(0x12345678)).To(BeZero())
		Expect(memory.Mapped(0x12345678)).To(BeFalse())
	})

	It("should store words little-endian", func() {
		memory.Write32(0x1000, 0xE12FFF13)

		Expect(memory.Read8(0x1000)).To(Equal(uint8(0x13)))
		Expect(memory.Read8(0x1003)).To(Equal(uint8(0xE1)))
		Expect(memory.Read16(0x1000)).To(Equal(uint16(0xFF13)))
		Expect(memory.Read16(0x1002)).To(Equal(uint16(0xE12F)))
		Expect(memory.Read32(0x1000)).To(Equal(uint32(0xE12FFF13)))
	})

	It("should handle accesses that span pages", func() {
		memory.Write32(0x1FFE, 0xAABBCCDD)

		Expect(memory.Read32(0x1FFE)).To(Equal(uint32(0xAABBCCDD)))
		Expect(memory.Read8(0x2000)).To(Equal(uint8(0xBB)))
	})

	It("should wrap at the top of the address space", func() {
		memory.Write32(0xFFFFFFFE, 0x11223344)

		Expect(memory.Read16(0xFFFFFFFE)).To(Equal(uint16(0x3344)))
		Expect(memory.Read16(0x00000000)).To(Equal(uint16(0x1122)))
	})

	It("should load programs", func() {
		memory.LoadProgram(0x8000, []byte{0x13, 0xFF, 0x2F, 0xE1})

		Expect(memory.Read32(0x8000)).To(Equal(uint32(0xE12FFF13)))
		Expect(memory.Mapped(0x8000)).To(BeTrue())
	})
})
