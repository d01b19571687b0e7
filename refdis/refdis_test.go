package refdis_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/armdbg/refdis"
)

var _ = Describe("Refdis", func() {
	Describe("Op", func() {
		DescribeTable("base mnemonics",
			func(word uint32, expected string) {
				op, ok := refdis.Op(word)
				Expect(ok).To(BeTrue())
				Expect(op).To(Equal(expected))
			},
			Entry("BX R3", uint32(0xE12FFF13), "BX"),
			Entry("MOVSEQ R0, #5", uint32(0x03B00005), "MOV"),
			Entry("ADD R0, R1, #1", uint32(0xE2810001), "ADD"),
			Entry("SUB R2, R2, #4", uint32(0xE2422004), "SUB"),
			Entry("STR R1, [R0]", uint32(0xE5801000), "STR"),
			Entry("LDR R1, [R0]", uint32(0xE5901000), "LDR"),
			Entry("B .", uint32(0xEAFFFFFE), "B"),
			Entry("BL .", uint32(0xEBFFFFFE), "BL"),
		)

		It("should strip the condition suffix", func() {
			op, ok := refdis.Op(0x1A000000) // BNE
			Expect(ok).To(BeTrue())
			Expect(op).To(Equal("B"))
		})
	})

	Describe("Disassemble", func() {
		It("should render GNU syntax", func() {
			text, ok := refdis.Disassemble(0xE12FFF13)
			Expect(ok).To(BeTrue())
			Expect(strings.ToUpper(text)).To(HavePrefix("BX"))
			Expect(strings.ToUpper(text)).To(ContainSubstring("R3"))
		})

		It("should agree with Op on decodability", func() {
			for _, word := range []uint32{0xE12FFF13, 0xE5801000, 0xE92D0030} {
				_, textOK := refdis.Disassemble(word)
				_, opOK := refdis.Op(word)
				Expect(textOK).To(Equal(opOK))
			}
		})
	})

	Describe("Block", func() {
		It("should return one line per word", func() {
			lines := refdis.Block([]uint32{0xE12FFF13, 0xE5801000})
			Expect(lines).To(HaveLen(2))
			Expect(strings.ToUpper(lines[1])).To(HavePrefix("STR"))
		})
	})
})
