// Package emu provides the ARM processor state inspected by the debugger:
// the register file and a sparse memory image.
package emu

import (
	"fmt"
	"strconv"
	"strings"
)

// Register aliases.
const (
	RegSP = 13
	RegLR = 14
	RegPC = 15
)

// CPSR bits.
const (
	CPSRThumb    uint32 = 1 << 5  // T: executing Thumb instructions
	CPSROverflow uint32 = 1 << 28 // V
	CPSRCarry    uint32 = 1 << 29 // C
	CPSRZero     uint32 = 1 << 30 // Z
	CPSRNegative uint32 = 1 << 31 // N
)

// RegFile represents the ARM register file.
// It contains 16 general-purpose registers (R0-R15, where R13 is SP,
// R14 is LR and R15 is PC) and the current program status register.
type RegFile struct {
	// R holds general-purpose registers R0-R15.
	R [16]uint32

	// CPSR is the current program status register.
	CPSR uint32
}

// Flags represents the condition flags held in the CPSR.
type Flags struct {
	// N is the negative flag.
	N bool
	// Z is the zero flag.
	Z bool
	// C is the carry flag.
	C bool
	// V is the overflow flag.
	V bool
}

// ReadReg reads a register value. Only the low 4 bits of reg are used.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	return r.R[reg&0xF]
}

// WriteReg writes a register value. Only the low 4 bits of reg are used.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	r.R[reg&0xF] = value
}

// PC returns the program counter.
func (r *RegFile) PC() uint32 {
	return r.R[RegPC]
}

// SetPC sets the program counter.
func (r *RegFile) SetPC(pc uint32) {
	r.R[RegPC] = pc
}

// SP returns the stack pointer.
func (r *RegFile) SP() uint32 {
	return r.R[RegSP]
}

// Thumb reports whether the CPSR T bit is set.
func (r *RegFile) Thumb() bool {
	return r.CPSR&CPSRThumb != 0
}

// SetThumb sets or clears the CPSR T bit.
func (r *RegFile) SetThumb(thumb bool) {
	if thumb {
		r.CPSR |= CPSRThumb
	} else {
		r.CPSR &^= CPSRThumb
	}
}

// Flags returns the condition flags.
func (r *RegFile) Flags() Flags {
	return Flags{
		N: r.CPSR&CPSRNegative != 0,
		Z: r.CPSR&CPSRZero != 0,
		C: r.CPSR&CPSRCarry != 0,
		V: r.CPSR&CPSROverflow != 0,
	}
}

// Snapshot returns a copy of the register file.
func (r *RegFile) Snapshot() RegFile {
	return *r
}

// ParseRegister converts a register name ("r0"-"r15", "sp", "lr", "pc",
// case-insensitive) to its index.
func ParseRegister(name string) (uint8, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "sp":
		return RegSP, true
	case "lr":
		return RegLR, true
	case "pc":
		return RegPC, true
	}

	if !strings.HasPrefix(name, "r") {
		return 0, false
	}
	n, err := strconv.ParseUint(name[1:], 10, 8)
	if err != nil || n > 15 {
		return 0, false
	}
	return uint8(n), true
}

// Set writes a register or the CPSR by name.
func (r *RegFile) Set(name string, value uint32) error {
	if strings.EqualFold(strings.TrimSpace(name), "cpsr") {
		r.CPSR = value
		return nil
	}

	reg, ok := ParseRegister(name)
	if !ok {
		return fmt.Errorf("unknown register %q", name)
	}
	r.WriteReg(reg, value)
	return nil
}
