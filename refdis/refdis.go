// Package refdis renders ARM instructions with golang.org/x/arch/arm/armasm.
//
// The output is used as a reference column next to the debugger's own
// disassembly and to cross-check the decoder in tests. armasm decodes the
// whole ARMv7 instruction set, so it also names instructions the debugger
// reports as unknown.
package refdis

import (
	"encoding/binary"
	"strings"

	"golang.org/x/arch/arm/armasm"
)

// Decode decodes a single ARM-mode instruction word.
func Decode(word uint32) (armasm.Inst, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], word)
	return armasm.Decode(buf[:], armasm.ModeARM)
}

// Disassemble returns the GNU assembler syntax of word. ok is false when
// armasm cannot decode the word.
func Disassemble(word uint32) (text string, ok bool) {
	inst, err := Decode(word)
	if err != nil {
		return "", false
	}
	return armasm.GNUSyntax(inst), true
}

// Op returns the base mnemonic of word without flag-setting or condition
// suffixes, e.g. "ADD" for ADDS.EQ.
func Op(word uint32) (op string, ok bool) {
	inst, err := Decode(word)
	if err != nil {
		return "", false
	}
	name := inst.Op.String()
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name, true
}

// Block disassembles consecutive words starting at the first element of
// words. Words armasm cannot decode render as "?".
func Block(words []uint32) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		text, ok := Disassemble(w)
		if !ok {
			text = "?"
		}
		out = append(out, text)
	}
	return out
}
