package insts

// Cond represents an ARM condition code.
type Cond uint8

// ARM condition codes.
const (
	CondEQ Cond = 0b0000 // Equal (Z == 1)
	CondNE Cond = 0b0001 // Not Equal (Z == 0)
	CondCS Cond = 0b0010 // Carry Set / Unsigned higher or same (C == 1)
	CondCC Cond = 0b0011 // Carry Clear / Unsigned lower (C == 0)
	CondMI Cond = 0b0100 // Minus / Negative (N == 1)
	CondPL Cond = 0b0101 // Plus / Positive or zero (N == 0)
	CondVS Cond = 0b0110 // Overflow (V == 1)
	CondVC Cond = 0b0111 // No overflow (V == 0)
	CondHI Cond = 0b1000 // Unsigned higher (C == 1 && Z == 0)
	CondLS Cond = 0b1001 // Unsigned lower or same (C == 0 || Z == 1)
	CondGE Cond = 0b1010 // Signed greater than or equal (N == V)
	CondLT Cond = 0b1011 // Signed less than (N != V)
	CondGT Cond = 0b1100 // Signed greater than (Z == 0 && N == V)
	CondLE Cond = 0b1101 // Signed less than or equal (Z == 1 || N != V)
	CondAL Cond = 0b1110 // Always (unconditional)
	CondNV Cond = 0b1111 // Reserved
)

var condSuffixes = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "", "",
}

// Suffix returns the mnemonic suffix for the condition. Always has an empty
// suffix. ok is false for the reserved condition, which has no suffix.
func (c Cond) Suffix() (suffix string, ok bool) {
	c &= 0xF
	if c == CondNV {
		return "", false
	}
	return condSuffixes[c], true
}

// Reserved reports whether c is the reserved 0b1111 condition.
func (c Cond) Reserved() bool {
	return c&0xF == CondNV
}

// String returns the two-letter condition name ("AL" for always, "NV" for
// the reserved value).
func (c Cond) String() string {
	switch c & 0xF {
	case CondAL:
		return "AL"
	case CondNV:
		return "NV"
	default:
		return condSuffixes[c&0xF]
	}
}
