// Package main provides a profiling wrapper that renders listing windows of
// a program repeatedly to find hot spots in decoding and formatting.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/armdbg/emu"
	"github.com/sarchlab/armdbg/listing"
	"github.com/sarchlab/armdbg/loader"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	duration   = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	iterations = flag.Int("iterations", 100000, "number of listing windows to render")
	rows       = flag.Int("rows", 32, "rows per listing window")
	cached     = flag.Bool("cached", false, "render through the row cache")
	base       = flag.Uint("base", 0x8000, "load address for flat binary images")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program.elf|image.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *rows <= 0 || *iterations < 0 {
		fmt.Fprintf(os.Stderr, "Error: -rows must be > 0 and -iterations >= 0\n")
		os.Exit(1)
	}

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	programPath := flag.Arg(0)

	prog, err := loadProgram(programPath, uint32(*base))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s\n", programPath)
	fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)

	start := time.Now()

	// Set timeout
	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping\n", *duration)
		os.Exit(2)
	}()

	rendered, cache := renderProfile(prog)

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Rows rendered: %d\n", rendered)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if rendered > 0 {
		fmt.Printf("Rows/second: %.0f\n", float64(rendered)/elapsed.Seconds())
	}
	if cache != nil {
		stats := cache.Stats()
		fmt.Printf("Cache hits: %d / %d lookups (%d bypassed, %d evictions)\n",
			stats.Hits, stats.Lookups, stats.Bypassed, stats.Evictions)
	}
}

func loadProgram(path string, base uint32) (*loader.Program, error) {
	isELF, err := loader.IsELF(path)
	if err != nil {
		return nil, err
	}
	if isELF {
		return loader.Load(path)
	}
	return loader.LoadRaw(path, base)
}

// renderProfile renders windows that sweep over the first segment of the
// program.
func renderProfile(prog *loader.Program) (uint64, *listing.LineCache) {
	memory := emu.NewMemory()
	prog.LoadInto(memory)

	regs := &emu.RegFile{}
	regs.SetPC(prog.EntryPoint)
	regs.WriteReg(emu.RegSP, prog.InitialSP)
	regs.SetThumb(prog.Thumb)

	var (
		opts  []listing.Option
		cache *listing.LineCache
	)
	if *cached {
		cache = listing.NewLineCache(64, 4)
		opts = append(opts, listing.WithCache(cache))
	}
	view := listing.NewView(memory, regs, opts...)

	first, size := prog.EntryPoint, uint32(4)
	if len(prog.Segments) > 0 {
		first, size = prog.Segments[0].VirtAddr, prog.Segments[0].MemSize
	}
	if size == 0 {
		size = view.Width()
	}

	var rendered uint64
	for i := 0; i < *iterations; i++ {
		center := first + (uint32(i)*view.Width())%size
		rendered += uint64(len(view.Window(center, *rows)))
	}
	return rendered, cache
}
