package insts

// Register aliases.
const (
	RegSP uint8 = 13 // Stack pointer
	RegLR uint8 = 14 // Link register
	RegPC uint8 = 15 // Program counter
)

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 16

// PipelineOffset is how far ahead of the fetch address the PC reads when it
// is used as an operand.
const PipelineOffset = 8

// RegisterReader gives read-only access to the general-purpose registers.
type RegisterReader interface {
	ReadReg(reg uint8) uint32
}

var regNames = [NumRegisters]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "R12", "SP", "LR", "PC",
}

// RegName returns the display name of a register. Only the low 4 bits of
// reg are used.
func RegName(reg uint8) string {
	return regNames[reg&0xF]
}

// AppendRegList appends the registers named in mask, in ascending order and
// separated by commas, to dst.
func AppendRegList(dst []byte, mask uint16) []byte {
	first := true
	for i := uint8(0); i < NumRegisters; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		if !first {
			dst = append(dst, ',')
		}
		dst = append(dst, regNames[i]...)
		first = false
	}
	return dst
}

// RegList renders a register list mask, e.g. "R4,R5,LR". An empty mask
// renders as an empty string.
func RegList(mask uint16) string {
	var buf [64]byte
	return string(AppendRegList(buf[:0], mask))
}

func readReg(regs RegisterReader, reg uint8) uint32 {
	if regs == nil {
		return 0
	}
	return regs.ReadReg(reg & 0xF)
}
