package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/cyphalkit/cyphalkit/arena"
	"github.com/cyphalkit/cyphalkit/internal/mmbuf"
)

var simConfigPath string

func init() {
	cmd := newSimCmd()
	cmd.Flags().StringVar(&simConfigPath, "config", "", "Workload config file (TOML)")
	rootCmd.AddCommand(cmd)
}

func newSimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sim",
		Short: "Run a randomized allocator workload",
		Long: `The sim command replays a seeded random alloc/free workload against a
fresh arena, auditing the allocator invariants at a configurable interval,
and reports the final diagnostics.

Example:
  arenatool sim
  arenatool sim --config workload.toml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSimConfig(simConfigPath)
			if err != nil {
				return err
			}
			return runSim(cfg)
		},
	}
}

// simReport is the machine-readable outcome of a workload run.
type simReport struct {
	Config      simConfig         `json:"config"`
	Allocations int               `json:"allocations"`
	Failures    int               `json:"failures"`
	Frees       int               `json:"frees"`
	Diagnostics arena.Diagnostics `json:"diagnostics"`
}

func runSim(cfg simConfig) error {
	log := initLogger()

	buf, release, err := mmbuf.Alloc(cfg.ArenaSize)
	if err != nil {
		return err
	}
	defer release()

	h, err := arena.New(buf)
	if err != nil {
		return err
	}
	log.Info().
		Int("capacity", h.Capacity()).
		Int64("seed", cfg.Seed).
		Int("operations", cfg.Operations).
		Msg("starting workload")

	rng := rand.New(rand.NewSource(cfg.Seed))
	var live []arena.Ref
	report := simReport{Config: cfg}

	for i := 0; i < cfg.Operations; i++ {
		if len(live) > 0 && rng.Intn(100) < cfg.FreePercent {
			k := rng.Intn(len(live))
			if err := h.Free(live[k]); err != nil {
				return fmt.Errorf("free at step %d: %w", i, err)
			}
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
			report.Frees++
		} else {
			n := 1 + rng.Intn(cfg.MaxRequest)
			ref, _, err := h.Allocate(n)
			if err != nil {
				report.Failures++
				log.Debug().Int("step", i).Int("request", n).Msg("allocation failed")
				continue
			}
			live = append(live, ref)
			report.Allocations++
		}
		if i%cfg.CheckEvery == 0 && !h.CheckInvariants() {
			return fmt.Errorf("allocator invariants violated at step %d", i)
		}
	}

	for _, ref := range live {
		if err := h.Free(ref); err != nil {
			return fmt.Errorf("drain: %w", err)
		}
	}
	if !h.CheckInvariants() {
		return fmt.Errorf("allocator invariants violated after drain")
	}
	report.Diagnostics = h.Diagnostics()

	if jsonOut {
		return printJSON(report)
	}
	d := report.Diagnostics
	log.Info().
		Int("allocations", report.Allocations).
		Int("failures", report.Failures).
		Int("frees", report.Frees).
		Int64("peak_allocated", d.PeakAllocated).
		Int64("peak_request", d.PeakRequestSize).
		Int64("oom_count", d.OOMCount).
		Msg("workload complete")
	fmt.Printf("capacity=%d peak_allocated=%d peak_request=%d oom=%d\n",
		d.Capacity, d.PeakAllocated, d.PeakRequestSize, d.OOMCount)
	return nil
}
