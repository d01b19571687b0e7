package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/armdbg/config"
	"github.com/sarchlab/armdbg/emu"
	"github.com/sarchlab/armdbg/listing"
	"github.com/sarchlab/armdbg/loader"
)

// session is a loaded program and the views over it.
type session struct {
	cfg    *config.ViewConfig
	prog   *loader.Program
	memory *emu.Memory
	regs   *emu.RegFile
	cache  *listing.LineCache
	view   *listing.View
	logger logrus.FieldLogger
}

func newSession(path string, cfg *config.ViewConfig, logger logrus.FieldLogger) (*session, error) {
	prog, err := loadProgram(path, cfg.BaseAddress)
	if err != nil {
		return nil, err
	}

	memory := emu.NewMemory()
	prog.LoadInto(memory)

	regs := &emu.RegFile{}
	regs.SetPC(prog.EntryPoint)
	regs.WriteReg(emu.RegSP, prog.InitialSP)
	regs.SetThumb(prog.Thumb || cfg.Thumb)
	if err := cfg.ApplyRegisters(regs); err != nil {
		return nil, err
	}

	cache := listing.NewLineCache(cfg.CacheSets, cfg.CacheWays)
	opts := []listing.Option{
		listing.WithCache(cache),
		listing.WithLogger(logger),
	}
	if cfg.ShowReference {
		opts = append(opts, listing.WithReference())
	}

	logger.WithFields(logrus.Fields{
		"path":     path,
		"entry":    fmt.Sprintf("0x%X", prog.EntryPoint),
		"segments": len(prog.Segments),
		"thumb":    regs.Thumb(),
	}).Debug("loaded program")

	return &session{
		cfg:    cfg,
		prog:   prog,
		memory: memory,
		regs:   regs,
		cache:  cache,
		view:   listing.NewView(memory, regs, opts...),
		logger: logger,
	}, nil
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

// render prints the register panel, the listing window around center and
// the stack panel.
func (s *session) render(w io.Writer, center uint32) {
	fmt.Fprintf(w, "Registers:\n")
	for _, line := range listing.RegisterPanel(s.regs) {
		fmt.Fprintf(w, "  %s\n", line)
	}

	fmt.Fprintf(w, "\nDisassembly:\n")
	for _, row := range s.view.Window(center, s.cfg.Rows) {
		fmt.Fprintf(w, "%s\n", row)
	}

	if s.cfg.StackRows > 0 {
		fmt.Fprintf(w, "\nStack:\n")
		for _, row := range listing.StackRows(s.memory, s.regs.SP(), s.cfg.StackTop, s.cfg.StackRows) {
			fmt.Fprintf(w, "  %s\n", row)
		}
	}

	stats := s.cache.Stats()
	s.logger.WithFields(logrus.Fields{
		"lookups":   stats.Lookups,
		"hits":      stats.Hits,
		"evictions": stats.Evictions,
		"bypassed":  stats.Bypassed,
	}).Debug("listing cache statistics")
}

// parseRegisters parses "name=value" pairs separated by commas.
func parseRegisters(s string) (map[string]uint32, error) {
	values := make(map[string]uint32)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid register assignment %q", pair)
		}

		v, err := parseAddress(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		values[strings.ToLower(strings.TrimSpace(name))] = v
	}
	return values, nil
}
