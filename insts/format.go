package insts

import "strconv"

// Disassemble decodes a 32-bit ARM instruction word fetched from pc and
// returns its text. regs may be nil. The result is never empty: encodings
// that are not recognised render as the text of their Fault.
func Disassemble(word, pc uint32, regs RegisterReader) string {
	var inst Instruction
	var d Decoder
	d.DecodeInto(word, pc, regs, &inst)
	return inst.String()
}

// DisassembleThumb decodes a 16-bit Thumb instruction fetched from pc.
func DisassembleThumb(half uint16, pc uint32) string {
	var inst Instruction
	var d Decoder
	d.DecodeThumbInto(half, pc, &inst)
	return inst.String()
}

// String renders the instruction as assembly text, e.g. "STMFD SP!, {R4,R5}".
func (i *Instruction) String() string {
	var buf [64]byte
	return string(i.AppendText(buf[:0]))
}

// Mnemonic returns the operator part of the text, including the mode, S and
// condition suffixes. It is empty for undecoded instructions.
func (i *Instruction) Mnemonic() string {
	var buf [16]byte
	return string(i.appendMnemonic(buf[:0]))
}

// Operands returns the operand part of the text, or the fault text for
// undecoded instructions.
func (i *Instruction) Operands() string {
	var buf [64]byte
	return string(i.appendOperands(buf[:0]))
}

// AppendText appends the rendered instruction to dst.
func (i *Instruction) AppendText(dst []byte) []byte {
	if i.Fault != FaultNone {
		return append(dst, i.Fault.String()...)
	}
	dst = i.appendMnemonic(dst)
	dst = append(dst, ' ')
	return i.appendOperands(dst)
}

func (i *Instruction) appendMnemonic(dst []byte) []byte {
	if i.Fault != FaultNone {
		return dst
	}

	dst = append(dst, i.Op.String()...)

	switch i.Category {
	case CategoryDataProcessing:
		if i.SetFlags {
			dst = append(dst, 'S')
		}
	case CategorySingleDataTransfer:
		if i.Byte {
			dst = append(dst, 'B')
		}
	case CategoryBlockDataTransfer:
		dst = append(dst, i.blockModeSuffix()...)
	default:
	}

	cond, _ := i.Cond.Suffix()
	return append(dst, cond...)
}

func (i *Instruction) appendOperands(dst []byte) []byte {
	if i.Fault != FaultNone {
		return append(dst, i.Fault.String()...)
	}

	switch i.Category {
	case CategoryVarious:
		dst = append(dst, RegName(i.Rm)...)

	case CategoryDataProcessing:
		dst = append(dst, RegName(i.Rd)...)
		if i.Op != OpMOV {
			dst = append(dst, ", "...)
			dst = append(dst, RegName(i.Rn)...)
		}
		dst = append(dst, ", #"...)
		dst = appendHex(dst, i.Imm)

	case CategorySingleDataTransfer:
		dst = append(dst, RegName(i.Rd)...)
		if i.Imm == 0 {
			dst = append(dst, ", ["...)
			dst = append(dst, RegName(i.Rn)...)
			dst = append(dst, ']')
		} else {
			dst = append(dst, ", ="...)
			dst = appendHex(dst, i.Target)
		}

	case CategoryBlockDataTransfer:
		dst = append(dst, RegName(i.Rn)...)
		if i.WriteBack {
			dst = append(dst, '!')
		}
		dst = append(dst, ", {"...)
		dst = AppendRegList(dst, i.RegList)
		dst = append(dst, '}')

	case CategoryBranch:
		dst = appendHex(dst, i.Target)

	default:
		dst = append(dst, FaultCategory.String()...)
	}

	return dst
}

// blockModeSuffix returns the addressing mode suffix of LDM/STM. Stores
// through SP use the full-descending stack name.
func (i *Instruction) blockModeSuffix() string {
	switch i.Mode {
	case AddrModeDB:
		if i.Rn == RegSP && !i.Load {
			return "FD"
		}
		return "DB"
	case AddrModeDA:
		return "DA"
	case AddrModeIA:
		return "IA"
	default:
		return "IB"
	}
}

// appendHex appends v as upper-case hexadecimal with a 0x prefix.
func appendHex(dst []byte, v uint32) []byte {
	dst = append(dst, "0x"...)
	start := len(dst)
	dst = strconv.AppendUint(dst, uint64(v), 16)
	for j := start; j < len(dst); j++ {
		if c := dst[j]; c >= 'a' && c <= 'f' {
			dst[j] = c - 'a' + 'A'
		}
	}
	return dst
}
