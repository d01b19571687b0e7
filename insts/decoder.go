package insts

// Op represents an ARM opcode.
type Op uint8

// ARM opcodes.
const (
	OpUnknown Op = iota
	OpBX
	OpSUB
	OpADD
	OpMOV
	OpLDR
	OpSTR
	OpLDM
	OpSTM
	OpB
	OpBL
)

var opNames = [...]string{
	OpUnknown: "UNKNOWN",
	OpBX:      "BX",
	OpSUB:     "SUB",
	OpADD:     "ADD",
	OpMOV:     "MOV",
	OpLDR:     "LDR",
	OpSTR:     "STR",
	OpLDM:     "LDM",
	OpSTM:     "STM",
	OpB:       "B",
	OpBL:      "BL",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Category is the top-level encoding group of an instruction, selected by
// bits [27:25] and held as (word >> 24) & 0xE.
type Category uint8

// Encoding categories, as (word >> 24) & 0xE.
const (
	CategoryVarious            Category = 0x0
	CategoryDataProcessing     Category = 0x2
	CategorySingleDataTransfer Category = 0x4
	CategoryBlockDataTransfer  Category = 0x8
	CategoryBranch             Category = 0xA
	CategoryUnknown            Category = 0xFF
)

func (c Category) String() string {
	switch c {
	case CategoryVarious:
		return "various"
	case CategoryDataProcessing:
		return "data processing"
	case CategorySingleDataTransfer:
		return "single data transfer"
	case CategoryBlockDataTransfer:
		return "block data transfer"
	case CategoryBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Fault identifies the classification step that failed to recognise an
// encoding. FaultNone means the instruction decoded.
type Fault uint8

// Decode faults.
const (
	FaultNone Fault = iota
	FaultReservedCond
	FaultVariousOp
	FaultMiscCategory
	FaultMiscOther
	FaultDataProcessing
	FaultAddressingMode
	FaultSPLoadMultiple
	FaultCategory
	FaultThumb
)

var faultTexts = [...]string{
	FaultNone:           "",
	FaultReservedCond:   "0b1111 condition",
	FaultVariousOp:      "Unknown various op",
	FaultMiscCategory:   "Unknown misc category",
	FaultMiscOther:      "Unknown misc other",
	FaultDataProcessing: "Unknown data processing",
	FaultAddressingMode: "Unknown addressing mode",
	FaultSPLoadMultiple: "Unknown SP load multiple",
	FaultCategory:       "Unknown",
	FaultThumb:          "Unknown thumb instruction",
}

// String returns the text displayed in place of an instruction with this
// fault.
func (f Fault) String() string {
	if int(f) < len(faultTexts) {
		return faultTexts[f]
	}
	return faultTexts[FaultCategory]
}

// AddrMode is the block data transfer addressing mode, bits [24:23] (P, U).
type AddrMode uint8

// Block data transfer addressing modes.
const (
	AddrModeDA AddrMode = 0b00 // Decrement after
	AddrModeIA AddrMode = 0b01 // Increment after
	AddrModeDB AddrMode = 0b10 // Decrement before
	AddrModeIB AddrMode = 0b11 // Increment before
)

// Field values used while classifying.
const (
	variousMisc = 0b10 // bits [24:23] of the miscellaneous group

	miscBranchZeros = 0b0001 // bits [7:4] of BX
	miscOpBX        = 0b01   // bits [22:21] of BX

	dpSUB = 0x2
	dpADD = 0x4
	dpMOV = 0xD
)

// Instruction represents a decoded ARM instruction.
type Instruction struct {
	Word     uint32   // Raw instruction word
	Addr     uint32   // Fetch address
	Thumb    bool     // true for a 16-bit Thumb instruction
	Category Category // Encoding category
	Op       Op       // Operation code
	Cond     Cond     // Condition code
	Fault    Fault    // Why decoding stopped, FaultNone on success

	SetFlags  bool     // S suffix
	Load      bool     // L bit of data transfers
	Byte      bool     // B bit of single data transfers
	Up        bool     // U bit of single data transfers
	WriteBack bool     // W bit of block data transfers
	Mode      AddrMode // Block data transfer addressing mode

	Rd uint8 // Destination (or transferred) register
	Rn uint8 // Base / first operand register
	Rm uint8 // Register operand of BX

	Imm     uint32 // Data processing operand or transfer offset
	RegList uint16 // Block data transfer register list

	// Target is the branch destination or the display address of a single
	// data transfer.
	Target uint32
}

// Decoded reports whether the instruction was recognised.
func (i *Instruction) Decoded() bool {
	return i.Fault == FaultNone
}

// DependsOnRegisters reports whether the rendered text of the instruction
// depends on register values rather than only on the word and its address.
func (i *Instruction) DependsOnRegisters() bool {
	return i.Fault == FaultNone &&
		i.Category == CategorySingleDataTransfer &&
		i.Imm != 0
}

// Decoder decodes ARM machine code into instructions.
// A Decoder holds no state and is safe for concurrent use.
type Decoder struct{}

// NewDecoder creates a new ARM instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit ARM instruction word fetched from pc. regs is
// consulted for the display address of single data transfers and may be nil.
func (d *Decoder) Decode(word, pc uint32, regs RegisterReader) *Instruction {
	inst := &Instruction{}
	d.DecodeInto(word, pc, regs, inst)
	return inst
}

// DecodeInto decodes a 32-bit ARM instruction word into inst, overwriting
// every field. It does not allocate.
func (d *Decoder) DecodeInto(word, pc uint32, regs RegisterReader, inst *Instruction) {
	*inst = Instruction{
		Word:     word,
		Addr:     pc,
		Cond:     Cond(Bits(word, 28, 4)),
		Category: CategoryUnknown,
	}

	if inst.Cond.Reserved() {
		inst.Fault = FaultReservedCond
		return
	}

	switch id3 := Category(Bits(word, 24, 4) & 0xE); id3 {
	case CategoryVarious:
		inst.Category = id3
		d.decodeVarious(word, inst)
	case CategoryDataProcessing:
		inst.Category = id3
		d.decodeDataProcessing(word, inst)
	case CategorySingleDataTransfer:
		inst.Category = id3
		d.decodeSingleDataTransfer(word, regs, inst)
	case CategoryBlockDataTransfer:
		inst.Category = id3
		d.decodeBlockDataTransfer(word, inst)
	case CategoryBranch:
		inst.Category = id3
		d.decodeBranch(word, pc, inst)
	default:
		inst.Fault = FaultCategory
	}
}

// DecodeThumb decodes a 16-bit Thumb instruction. Thumb encodings are not
// supported yet, so the result always carries FaultThumb.
func (d *Decoder) DecodeThumb(half uint16, pc uint32) *Instruction {
	inst := &Instruction{}
	d.DecodeThumbInto(half, pc, inst)
	return inst
}

// DecodeThumbInto is the non-allocating form of DecodeThumb.
func (d *Decoder) DecodeThumbInto(half uint16, pc uint32, inst *Instruction) {
	*inst = Instruction{
		Word:     uint32(half),
		Addr:     pc,
		Thumb:    true,
		Cond:     CondAL,
		Category: CategoryUnknown,
		Fault:    FaultThumb,
	}
}

// decodeVarious decodes the miscellaneous group of bits [27:25] == 000.
// Only BX is recognised.
// Format: cond | 00010 | op | 0 | ... | id4 | Rm
func (d *Decoder) decodeVarious(word uint32, inst *Instruction) {
	id2 := Bits(word, 23, 2) // bits [24:23]
	update := Bit(word, 20)  // bit 20
	id4 := Bits(word, 4, 4)  // bits [7:4]
	op := Bits(word, 21, 2)  // bits [22:21]

	switch {
	case update || id2 != variousMisc:
		inst.Fault = FaultVariousOp
	case id4 != miscBranchZeros:
		inst.Fault = FaultMiscCategory
	case op != miscOpBX:
		inst.Fault = FaultMiscOther
	default:
		inst.Op = OpBX
		inst.Rm = uint8(Bits(word, 0, 4))
	}
}

// decodeDataProcessing decodes data processing with an immediate operand.
// Format: cond | 001 | opcode | S | Rn | Rd | operand12
//
// The 12-bit operand is kept as a plain immediate; the rotate field is not
// applied.
func (d *Decoder) decodeDataProcessing(word uint32, inst *Instruction) {
	inst.SetFlags = Bit(word, 20)
	inst.Rn = uint8(Bits(word, 16, 4))
	inst.Rd = uint8(Bits(word, 12, 4))
	inst.Imm = Bits(word, 0, 12)

	switch Bits(word, 21, 4) {
	case dpSUB:
		inst.Op = OpSUB
	case dpADD:
		inst.Op = OpADD
	case dpMOV:
		inst.Op = OpMOV
	default:
		inst.Fault = FaultDataProcessing
	}
}

// decodeSingleDataTransfer decodes LDR/STR with an immediate offset.
// Format: cond | 010 | P | U | B | W | L | Rn | Rd | offset12
func (d *Decoder) decodeSingleDataTransfer(word uint32, regs RegisterReader, inst *Instruction) {
	inst.Up = Bit(word, 23)
	inst.Byte = Bit(word, 22)
	inst.Load = Bit(word, 20)
	inst.Rn = uint8(Bits(word, 16, 4))
	inst.Rd = uint8(Bits(word, 12, 4))
	inst.Imm = Bits(word, 0, 12)

	if inst.Load {
		inst.Op = OpLDR
	} else {
		inst.Op = OpSTR
	}

	// The snapshot holds the PC of the stopped instruction; an operand
	// read of PC sees it PipelineOffset bytes ahead.
	base := readReg(regs, inst.Rn)
	if inst.Rn == RegPC {
		base += PipelineOffset
	}

	if inst.Up {
		inst.Target = base + inst.Imm
	} else {
		inst.Target = base - inst.Imm
	}
}

// decodeBlockDataTransfer decodes LDM/STM.
// Format: cond | 100 | P | U | S | W | L | Rn | register_list
func (d *Decoder) decodeBlockDataTransfer(word uint32, inst *Instruction) {
	inst.Mode = AddrMode(Bits(word, 23, 2))
	inst.WriteBack = Bit(word, 21)
	inst.Load = Bit(word, 20)
	inst.Rn = uint8(Bits(word, 16, 4))
	inst.RegList = uint16(Bits(word, 0, 16))

	if inst.Load {
		inst.Op = OpLDM
	} else {
		inst.Op = OpSTM
	}

	switch inst.Mode {
	case AddrModeDB:
		// A pop from SP needs increment-after, which is not decoded.
		if inst.Rn == RegSP && inst.Load {
			inst.Fault = FaultSPLoadMultiple
		}
	default:
		inst.Fault = FaultAddressingMode
	}
}

// decodeBranch decodes B and BL.
// Format: cond | 101 | L | imm24
func (d *Decoder) decodeBranch(word, pc uint32, inst *Instruction) {
	if Bit(word, 24) {
		inst.Op = OpBL
	} else {
		inst.Op = OpB
	}

	offset := SignedBits(word, 0, 24) << 2
	inst.Imm = uint32(offset)
	inst.Target = pc + PipelineOffset + uint32(offset)
}
