package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// simConfig describes a randomized allocator workload.
type simConfig struct {
	ArenaSize   int   `toml:"arena_size"`
	Seed        int64 `toml:"seed"`
	Operations  int   `toml:"operations"`
	MaxRequest  int   `toml:"max_request"`
	FreePercent int   `toml:"free_percent"`
	CheckEvery  int   `toml:"check_every"`
}

func defaultSimConfig() simConfig {
	return simConfig{
		ArenaSize:   64 * 1024,
		Seed:        1,
		Operations:  10000,
		MaxRequest:  512,
		FreePercent: 40,
		CheckEvery:  256,
	}
}

// loadSimConfig reads a workload file, overlaying defined keys onto the
// defaults.
func loadSimConfig(path string) (simConfig, error) {
	cfg := defaultSimConfig()
	if path == "" {
		return cfg, nil
	}

	var raw simConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return simConfig{}, fmt.Errorf("load workload config: %w", err)
	}
	if meta.IsDefined("arena_size") {
		cfg.ArenaSize = raw.ArenaSize
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("operations") {
		cfg.Operations = raw.Operations
	}
	if meta.IsDefined("max_request") {
		cfg.MaxRequest = raw.MaxRequest
	}
	if meta.IsDefined("free_percent") {
		cfg.FreePercent = raw.FreePercent
	}
	if meta.IsDefined("check_every") {
		cfg.CheckEvery = raw.CheckEvery
	}
	return cfg, cfg.validate()
}

func (c simConfig) validate() error {
	switch {
	case c.ArenaSize < 64:
		return fmt.Errorf("arena_size %d is too small", c.ArenaSize)
	case c.Operations <= 0:
		return fmt.Errorf("operations must be positive, got %d", c.Operations)
	case c.MaxRequest <= 0:
		return fmt.Errorf("max_request must be positive, got %d", c.MaxRequest)
	case c.FreePercent < 0 || c.FreePercent > 100:
		return fmt.Errorf("free_percent %d out of range [0,100]", c.FreePercent)
	case c.CheckEvery <= 0:
		return fmt.Errorf("check_every must be positive, got %d", c.CheckEvery)
	}
	return nil
}

// registerFile is the on-disk format of the load command: a list of named
// register values to install into a fresh store.
type registerFile struct {
	ArenaSize int            `toml:"arena_size"`
	Registers []registerSpec `toml:"register"`
}

type registerSpec struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

func loadRegisterFile(path string) (registerFile, error) {
	rf := registerFile{ArenaSize: 64 * 1024}
	meta, err := toml.DecodeFile(path, &rf)
	if err != nil {
		return registerFile{}, fmt.Errorf("load register file: %w", err)
	}
	if meta.IsDefined("arena_size") && rf.ArenaSize < 64 {
		return registerFile{}, fmt.Errorf("arena_size %d is too small", rf.ArenaSize)
	}
	return rf, nil
}
