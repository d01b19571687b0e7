package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/armdbg/insts"
	"github.com/sarchlab/armdbg/refdis"
)

// Words armasm and the decoder both understand must name the same operation.
var _ = Describe("Cross-check against armasm", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	DescribeTable("operation names",
		func(word uint32, accepted []string) {
			inst := decoder.Decode(word, 0x8000, nil)
			Expect(inst.Decoded()).To(BeTrue())

			ref, ok := refdis.Op(word)
			Expect(ok).To(BeTrue())
			Expect(accepted).To(ContainElement(inst.Op.String()))
			Expect(accepted).To(ContainElement(ref))
		},
		Entry("MOV", encodeDPImm(condAL, opMOV, false, 0, 0, 0x5), []string{"MOV"}),
		Entry("MOVS", encodeDPImm(condEQ, opMOV, true, 0, 0, 0x5), []string{"MOV"}),
		Entry("ADD", encodeDPImm(condAL, opADD, false, 1, 0, 0x10), []string{"ADD"}),
		Entry("SUB", encodeDPImm(condAL, opSUB, false, 2, 2, 0x4), []string{"SUB"}),
		Entry("STR", encodeSDT(condAL, true, false, false, 0, 1, 0), []string{"STR"}),
		Entry("LDR", encodeSDT(condAL, true, false, true, 0, 1, 0), []string{"LDR"}),
		Entry("B", encodeBranch(condAL, false, -2), []string{"B"}),
		Entry("BL", encodeBranch(condAL, true, 16), []string{"BL"}),
		Entry("BX", encodeBX(condAL, 3), []string{"BX"}),
		Entry("STMDB SP!", encodeBDT(condAL, modeDB, true, false, 13, 0x0030), []string{"STM", "STMDB", "PUSH"}),
	)
})
