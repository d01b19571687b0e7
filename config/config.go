// Package config holds the debugger view settings that can be stored as JSON
// and overridden from the command line.
package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/sarchlab/armdbg/emu"
)

// ViewConfig describes what the debugger shows and how the listing cache is
// sized.
type ViewConfig struct {
	// BaseAddress is the load address for flat binary images and the
	// default start of the listing. Default: 0x8000.
	BaseAddress uint32 `json:"base_address"`

	// Rows is the number of disassembly rows in a listing window.
	// Default: 32.
	Rows int `json:"rows"`

	// Thumb starts the view in Thumb state (CPSR.T set).
	Thumb bool `json:"thumb"`

	// StackTop is the address the stack panel counts down from.
	// Default: 0xFFFFFC.
	StackTop uint32 `json:"stack_top"`

	// StackRows limits the stack panel. Zero hides it. Default: 16.
	StackRows int `json:"stack_rows"`

	// CacheSets and CacheWays size the rendered row cache. Default: 64x4.
	CacheSets int `json:"cache_sets"`
	CacheWays int `json:"cache_ways"`

	// ShowReference adds the armasm reference column to the listing.
	ShowReference bool `json:"show_reference"`

	// Registers holds initial register values keyed by name
	// ("r0".."r15", "sp", "lr", "pc", "cpsr").
	Registers map[string]uint32 `json:"registers,omitempty"`
}

// RegisterSetter is the register file a ViewConfig is applied to.
type RegisterSetter interface {
	Set(name string, value uint32) error
}

// DefaultViewConfig returns a ViewConfig with default values.
func DefaultViewConfig() *ViewConfig {
	return &ViewConfig{
		BaseAddress: 0x8000,
		Rows:        32,
		StackTop:    0xFFFFFC,
		StackRows:   16,
		CacheSets:   64,
		CacheWays:   4,
	}
}

// LoadConfig loads a ViewConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*ViewConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read view config file: %w", err)
	}

	config := DefaultViewConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse view config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a ViewConfig to a JSON file.
func (c *ViewConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize view config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write view config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a view.
func (c *ViewConfig) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("rows must be > 0")
	}
	if c.StackRows < 0 {
		return fmt.Errorf("stack_rows must be >= 0")
	}
	if c.CacheSets <= 0 {
		return fmt.Errorf("cache_sets must be > 0")
	}
	if c.CacheWays <= 0 {
		return fmt.Errorf("cache_ways must be > 0")
	}
	if c.StackTop&0x3 != 0 {
		return fmt.Errorf("stack_top must be word aligned")
	}

	align := uint32(0x3)
	if c.Thumb {
		align = 0x1
	}
	if c.BaseAddress&align != 0 {
		return fmt.Errorf("base_address 0x%x is not aligned to the instruction width", c.BaseAddress)
	}

	for name := range c.Registers {
		if strings.EqualFold(name, "cpsr") {
			continue
		}
		if _, ok := emu.ParseRegister(name); !ok {
			return fmt.Errorf("unknown register %q", name)
		}
	}
	return nil
}

// ApplyRegisters writes the configured register values in name order.
func (c *ViewConfig) ApplyRegisters(regs RegisterSetter) error {
	for _, name := range slices.Sorted(maps.Keys(c.Registers)) {
		if err := regs.Set(name, c.Registers[name]); err != nil {
			return fmt.Errorf("failed to set register: %w", err)
		}
	}
	return nil
}

// Clone returns a deep copy of the ViewConfig.
func (c *ViewConfig) Clone() *ViewConfig {
	clone := *c
	clone.Registers = maps.Clone(c.Registers)
	return &clone
}
