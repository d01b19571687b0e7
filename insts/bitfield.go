package insts

// Bits extracts width bits of value starting at bit offset.
// A zero width yields 0. Fields running past bit 31 are truncated.
func Bits(value uint32, offset, width uint) uint32 {
	if width == 0 || offset >= 32 {
		return 0
	}
	value >>= offset
	if width >= 32 {
		return value
	}
	return value & (1<<width - 1)
}

// SignedBits extracts width bits of value starting at bit offset and
// sign-extends the result from the field's top bit.
func SignedBits(value uint32, offset, width uint) int32 {
	if width == 0 || offset >= 32 {
		return 0
	}
	if offset+width > 32 {
		width = 32 - offset
	}
	shift := 32 - width
	return int32(Bits(value, offset, width)<<shift) >> shift
}

// Bit reports whether bit n of value is set.
func Bit(value uint32, n uint) bool {
	return Bits(value, n, 1) == 1
}
