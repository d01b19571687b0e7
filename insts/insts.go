// Package insts provides ARM (32-bit) instruction decoding and disassembly
// for the debugger listing.
//
// This package turns raw instruction words into structured Instruction
// values and renders them as mnemonic text. It supports:
//   - Branch and exchange: BX
//   - Data processing (immediate): ADD, SUB, MOV, with S and condition suffixes
//   - Single data transfer (immediate offset): LDR, STR, LDRB, STRB
//   - Block data transfer (decrement before): LDMDB, STMDB, STMFD
//   - Branch: B, BL
//
// Every other encoding decodes to an Instruction carrying a Fault that names
// the classification step which did not recognise it. Thumb decoding is a
// placeholder that always reports an unknown thumb instruction.
//
// Usage:
//
//	text := insts.Disassemble(0xE12FFF13, 0x8000, regs) // "BX R3"
//
//	decoder := insts.NewDecoder()
//	var inst insts.Instruction
//	decoder.DecodeInto(0xE92D0030, 0x8000, regs, &inst)
//	fmt.Println(inst.Op, inst.RegList) // STM 48
package insts
