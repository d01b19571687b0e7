// Package listing builds the text panels of the debugger: the disassembly
// listing around the program counter, the register panel and the stack
// panel.
//
// Rendering (windows, fonts, scrolling widgets) is left to the caller; a
// listing is plain rows of text.
package listing

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/armdbg/insts"
	"github.com/sarchlab/armdbg/refdis"
)

// Instruction widths in bytes.
const (
	ARMWidth   = 4
	ThumbWidth = 2
)

// MemoryReader gives read access to the program image.
type MemoryReader interface {
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
}

// Registers is the processor state a view is rendered against.
type Registers interface {
	insts.RegisterReader
	PC() uint32
	Thumb() bool
}

// Row is one line of the disassembly listing.
type Row struct {
	Address uint32
	Word    uint32 // Instruction word (a halfword in Thumb state)
	Size    int    // Instruction width in bytes
	Bytes   string // Encoding, most significant byte first: "E1 2F FF 13"
	Text    string // Disassembly
	// Reference is the armasm rendering, when the reference column is on.
	Reference string
	IsPC      bool
}

// String renders the row as a listing line.
func (r Row) String() string {
	marker := "  "
	if r.IsPC {
		marker = "> "
	}

	line := fmt.Sprintf("%s0x%08X  %-11s  %s", marker, r.Address, r.Bytes, r.Text)
	if r.Reference != "" {
		line = fmt.Sprintf("%-56s; %s", line, r.Reference)
	}
	return line
}

// View renders listing rows from memory and a register snapshot.
type View struct {
	mem     MemoryReader
	regs    Registers
	decoder *insts.Decoder

	cache     *LineCache
	reference bool
	logger    logrus.FieldLogger
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger used for window and cache diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(v *View) {
		v.logger = logger
	}
}

// WithReference enables the armasm reference column.
func WithReference() Option {
	return func(v *View) {
		v.reference = true
	}
}

// WithCache sets the rendered row cache.
func WithCache(cache *LineCache) Option {
	return func(v *View) {
		v.cache = cache
	}
}

// NewView creates a view over mem and regs.
func NewView(mem MemoryReader, regs Registers, opts ...Option) *View {
	v := &View{
		mem:     mem,
		regs:    regs,
		decoder: insts.NewDecoder(),
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Width returns the instruction width selected by CPSR.T.
func (v *View) Width() uint32 {
	if v.regs.Thumb() {
		return ThumbWidth
	}
	return ARMWidth
}

// RowOf returns the listing row index of addr, used to scroll the listing
// to the program counter.
func (v *View) RowOf(addr uint32) uint32 {
	return addr / v.Width()
}

// Row renders the instruction at addr.
func (v *View) Row(addr uint32) Row {
	row := v.render(addr)
	row.IsPC = addr == v.regs.PC()
	return row
}

// Rows renders count consecutive instructions starting at start. A count
// of zero or less renders nothing.
func (v *View) Rows(start uint32, count int) []Row {
	if count <= 0 {
		return nil
	}

	width := v.Width()
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, v.Row(start+uint32(i)*width))
	}
	return rows
}

// Window renders rows instructions with center in the middle. The window
// starts at address 0 when center is too close to it.
func (v *View) Window(center uint32, rows int) []Row {
	if rows <= 0 {
		return nil
	}

	width := v.Width()
	center -= center % width

	start := uint32(0)
	if before := uint32(rows/2) * width; center >= before {
		start = center - before
	}

	window := v.Rows(start, rows)

	fields := logrus.Fields{
		"start": fmt.Sprintf("0x%X", start),
		"rows":  rows,
		"width": width,
	}
	if v.cache != nil {
		stats := v.cache.Stats()
		fields["hits"] = stats.Hits
		fields["misses"] = stats.Misses
	}
	v.logger.WithFields(fields).Debug("built listing window")

	return window
}

func (v *View) render(addr uint32) Row {
	var (
		size int
		word uint32
	)
	if v.regs.Thumb() {
		size = ThumbWidth
		word = uint32(v.mem.Read16(addr))
	} else {
		size = ARMWidth
		word = v.mem.Read32(addr)
	}

	if v.cache != nil {
		if row, ok := v.cache.Get(addr, word, size); ok {
			return row
		}
	}

	row := Row{
		Address: addr,
		Word:    word,
		Size:    size,
		Bytes:   formatBytes(word, size),
	}

	var inst insts.Instruction
	if size == ThumbWidth {
		v.decoder.DecodeThumbInto(uint16(word), addr, &inst)
	} else {
		v.decoder.DecodeInto(word, addr, v.regs, &inst)
		if v.reference {
			row.Reference, _ = refdis.Disassemble(word)
		}
	}
	row.Text = inst.String()

	v.store(row, &inst)
	return row
}

func (v *View) store(row Row, inst *insts.Instruction) {
	if v.cache == nil {
		return
	}

	if inst.DependsOnRegisters() {
		v.cache.Bypass()
		return
	}

	if evictedAddr, evicted := v.cache.Put(row); evicted {
		v.logger.WithFields(logrus.Fields{
			"address": fmt.Sprintf("0x%X", row.Address),
			"evicted": fmt.Sprintf("0x%X", evictedAddr),
		}).Debug("listing cache eviction")
	}
}

// formatBytes renders the instruction bytes most significant first.
func formatBytes(word uint32, size int) string {
	if size == ThumbWidth {
		return fmt.Sprintf("%02X %02X", byte(word>>8), byte(word))
	}
	return fmt.Sprintf("%02X %02X %02X %02X",
		byte(word>>24), byte(word>>16), byte(word>>8), byte(word))
}
