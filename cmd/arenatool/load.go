package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyphalkit/cyphalkit/arena"
	"github.com/cyphalkit/cyphalkit/internal/mmbuf"
	"github.com/cyphalkit/cyphalkit/registry"
)

func init() {
	rootCmd.AddCommand(newLoadCmd())
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <registers.toml>",
		Short: "Install register definitions into an arena-backed store",
		Long: `The load command reads named register values from a TOML file, installs
them into a register store backed by a fresh arena, then lists the resulting
registers with their storage diagnostics. Useful for sizing an arena against
a real register set.

Example:
  arenatool load registers.toml
  arenatool load registers.toml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args[0])
		},
	}
}

type loadReport struct {
	Registers   []loadedRegister  `json:"registers"`
	Diagnostics arena.Diagnostics `json:"diagnostics"`
}

type loadedRegister struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func runLoad(path string) error {
	log := initLogger()

	rf, err := loadRegisterFile(path)
	if err != nil {
		return err
	}

	buf, release, err := mmbuf.Alloc(rf.ArenaSize)
	if err != nil {
		return err
	}
	defer release()

	h, err := arena.New(buf)
	if err != nil {
		return err
	}
	store := registry.NewStore(h)

	for _, spec := range rf.Registers {
		if _, err := store.Set(spec.Name, []byte(spec.Value)); err != nil {
			return fmt.Errorf("register %q: %w", spec.Name, err)
		}
		log.Debug().Str("name", spec.Name).Int("size", len(spec.Value)).Msg("register installed")
	}
	if !h.CheckInvariants() {
		return fmt.Errorf("allocator invariants violated after load")
	}

	report := loadReport{Diagnostics: h.Diagnostics()}
	store.Walk(func(r *registry.Register) bool {
		report.Registers = append(report.Registers, loadedRegister{
			Name: r.Name(),
			Size: len(r.Value()),
		})
		return true
	})

	if jsonOut {
		return printJSON(report)
	}
	for _, r := range report.Registers {
		fmt.Printf("%-48s %d bytes\n", r.Name, r.Size)
	}
	d := report.Diagnostics
	fmt.Printf("\n%d registers, %d/%d bytes allocated (peak %d)\n",
		len(report.Registers), d.Allocated, d.Capacity, d.PeakAllocated)
	return nil
}
