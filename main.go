// Package main provides the entry point for armdbg.
// armdbg is the instruction decoder and text panels of an ARM debugger.
//
// For the full CLI, use: go run ./cmd/armdbg
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("armdbg - ARM Debugger Disassembly Panels")
	fmt.Println("")
	fmt.Println("Usage: armdbg [options] <program.elf|image.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config       Path to view configuration JSON file")
	fmt.Println("  -save-config  Write the effective configuration to a JSON file")
	fmt.Println("  -base         Load address for flat binary images")
	fmt.Println("  -start        Center the listing on an address")
	fmt.Println("  -count        Number of listing rows")
	fmt.Println("  -thumb        Start in Thumb state")
	fmt.Println("  -regs         Initial registers, e.g. sp=0xFFFF00,r0=5")
	fmt.Println("  -stack        Number of stack rows")
	fmt.Println("  -ref          Show the armasm reference column")
	fmt.Println("  -v            Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/armdbg' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/armdbg' instead.")
	}
}
