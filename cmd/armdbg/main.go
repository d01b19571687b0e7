// Package main provides the armdbg command, which prints the debugger panels
// for an ARM program: registers, the disassembly around the program counter
// and the stack.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/armdbg/config"
)

var (
	configPath = flag.String("config", "", "Path to view configuration JSON file")
	saveConfig = flag.String("save-config", "", "Write the effective configuration to this JSON file")
	base       = flag.String("base", "", "Load address for flat binary images")
	start      = flag.String("start", "", "Center the listing on this address instead of the PC")
	count      = flag.Int("count", 0, "Number of listing rows")
	thumb      = flag.Bool("thumb", false, "Start in Thumb state")
	initRegs   = flag.String("regs", "", "Initial registers, e.g. sp=0xFFFF00,r0=5")
	stack      = flag.Int("stack", 0, "Number of stack rows (0 hides the stack panel)")
	reference  = flag.Bool("ref", false, "Show the armasm reference column")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: armdbg [options] <program.elf|image.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		if err := cfg.SaveConfig(*saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
	}

	programPath := flag.Arg(0)
	sess, err := newSession(programPath, cfg, logrus.StandardLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	center := sess.regs.PC()
	if *start != "" {
		center, err = parseAddress(*start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	sess.render(os.Stdout, center)
}

func loadConfig(path string) (*config.ViewConfig, error) {
	if path == "" {
		return config.DefaultViewConfig(), nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logrus.WithField("path", path).Debug("loaded view config")
	return cfg, nil
}

// applyFlags overrides config values with the flags given on the command
// line.
func applyFlags(cfg *config.ViewConfig) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "base":
			cfg.BaseAddress, err = parseAddress(*base)
		case "count":
			cfg.Rows = *count
		case "thumb":
			cfg.Thumb = *thumb
		case "stack":
			cfg.StackRows = *stack
		case "ref":
			cfg.ShowReference = *reference
		case "regs":
			var values map[string]uint32
			values, err = parseRegisters(*initRegs)
			if cfg.Registers == nil {
				cfg.Registers = make(map[string]uint32)
			}
			for name, v := range values {
				cfg.Registers[name] = v
			}
		}
	})
	return err
}

func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}
