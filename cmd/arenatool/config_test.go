package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSimConfig_Defaults(t *testing.T) {
	cfg, err := loadSimConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultSimConfig(), cfg)
}

func TestLoadSimConfig_Overlay(t *testing.T) {
	path := writeConfig(t, `
arena_size = 8192
seed = 7
free_percent = 25
`)
	cfg, err := loadSimConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8192, cfg.ArenaSize)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 25, cfg.FreePercent)
	// Undefined keys keep their defaults.
	assert.Equal(t, defaultSimConfig().Operations, cfg.Operations)
	assert.Equal(t, defaultSimConfig().MaxRequest, cfg.MaxRequest)
}

func TestLoadSimConfig_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"tiny arena", "arena_size = 16"},
		{"zero operations", "operations = 0"},
		{"bad free percent", "free_percent = 150"},
		{"negative request", "max_request = -1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadSimConfig(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRegisterFile(t *testing.T) {
	path := writeConfig(t, `
arena_size = 4096

[[register]]
name = "uavcan.node.id"
value = "42"

[[register]]
name = "uavcan.node.description"
value = "flight controller"
`)
	rf, err := loadRegisterFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, rf.ArenaSize)
	require.Len(t, rf.Registers, 2)
	assert.Equal(t, "uavcan.node.id", rf.Registers[0].Name)
	assert.Equal(t, "flight controller", rf.Registers[1].Value)
}

func TestRunSim_SmallWorkload(t *testing.T) {
	cfg := simConfig{
		ArenaSize:   4096,
		Seed:        1,
		Operations:  500,
		MaxRequest:  128,
		FreePercent: 50,
		CheckEvery:  64,
	}
	require.NoError(t, runSim(cfg))
}
