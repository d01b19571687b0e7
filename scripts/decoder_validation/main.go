// Validate decoder allocations - DecodeInto must not allocate and
// Disassemble should allocate only its result string.
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/armdbg/emu"
	"github.com/sarchlab/armdbg/insts"
)

type measurement struct {
	allocations uint64
	bytes       uint64
	elapsed     time.Duration
}

func measure(iterations int, fn func()) measurement {
	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	return measurement{
		allocations: m2.Mallocs - m1.Mallocs,
		bytes:       m2.TotalAlloc - m1.TotalAlloc,
		elapsed:     elapsed,
	}
}

func report(name string, m measurement, ops int) {
	fmt.Printf("%s:\n", name)
	fmt.Printf("  Operations: %d\n", ops)
	fmt.Printf("  Time elapsed: %v\n", m.elapsed)
	fmt.Printf("  Operations per second: %.0f\n", float64(ops)/m.elapsed.Seconds())
	fmt.Printf("  Allocations per operation: %.3f\n", float64(m.allocations)/float64(ops))
	fmt.Printf("  Bytes per operation: %.1f\n", float64(m.bytes)/float64(ops))
}

func main() {
	regFile := &emu.RegFile{}
	regFile.WriteReg(0, 0x100)
	regFile.WriteReg(emu.RegSP, 0xFFFFF0)

	words := []uint32{
		0xE12FFF13, // BX R3
		0x03B00005, // MOVSEQ R0, #0x5
		0xE5801000, // STR R1, [R0]
		0xE5901004, // LDR R1, =0x104
		0xE92D0030, // STMFD SP!, {R4,R5}
		0xEBFFFFFE, // BL
	}

	decoder := insts.NewDecoder()
	var inst insts.Instruction

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.DecodeInto(words[i%len(words)], 0x8000, regFile, &inst)
	}

	iterations := 100000
	ops := iterations * len(words)

	decodeInto := measure(iterations, func() {
		for i, w := range words {
			decoder.DecodeInto(w, 0x8000+uint32(i)*4, regFile, &inst)
		}
	})

	var buf [64]byte
	appendText := measure(iterations, func() {
		for i, w := range words {
			decoder.DecodeInto(w, 0x8000+uint32(i)*4, regFile, &inst)
			_ = inst.AppendText(buf[:0])
		}
	})

	disassemble := measure(iterations, func() {
		for i, w := range words {
			_ = insts.Disassemble(w, 0x8000+uint32(i)*4, regFile)
		}
	})

	fmt.Printf("Decoder Allocation Validation Results:\n")
	fmt.Printf("======================================\n")
	report("DecodeInto", decodeInto, ops)
	report("DecodeInto + AppendText", appendText, ops)
	report("Disassemble", disassemble, ops)

	perOp := float64(disassemble.allocations) / float64(ops)
	switch {
	case decodeInto.allocations != 0 || appendText.allocations != 0:
		fmt.Printf("\nWARNING: decoding allocates\n")
	case perOp <= 1.0:
		fmt.Printf("\nSUCCESS: zero-allocation decode, %.3f allocations per Disassemble\n", perOp)
	default:
		fmt.Printf("\nWARNING: Disassemble allocates more than its result string\n")
	}
}
