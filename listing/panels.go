package listing

import (
	"fmt"

	"github.com/sarchlab/armdbg/emu"
	"github.com/sarchlab/armdbg/insts"
)

// RegisterPanel renders the general-purpose registers followed by the CPSR,
// one per line: "R0: 0x0" ... "PC: 0x8000", "CPSR: 0x10".
func RegisterPanel(regs *emu.RegFile) []string {
	lines := make([]string, 0, insts.NumRegisters+1)
	for i := uint8(0); i < insts.NumRegisters; i++ {
		lines = append(lines, fmt.Sprintf("%s: 0x%X", insts.RegName(i), regs.ReadReg(i)))
	}
	return append(lines, fmt.Sprintf("CPSR: 0x%X", regs.CPSR))
}

// StackRow is one word of the stack panel.
type StackRow struct {
	Address uint32
	Value   uint32
}

func (r StackRow) String() string {
	return fmt.Sprintf("0x%08X: 0x%08X", r.Address, r.Value)
}

// WordReader reads 32-bit words.
type WordReader interface {
	Read32(addr uint32) uint32
}

// StackRows returns the stack panel: words from top downwards while the
// address is at or above sp, at most limit of them. top is aligned down to a
// word.
func StackRows(mem WordReader, sp, top uint32, limit int) []StackRow {
	var rows []StackRow
	for addr := top &^ 3; addr >= sp && len(rows) < limit; addr -= 4 {
		rows = append(rows, StackRow{Address: addr, Value: mem.Read32(addr)})
		if addr < 4 {
			break
		}
	}
	return rows
}
