package main

import (
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/quarkonium/internal/experiment"
	"github.com/san-kum/quarkonium/internal/meson"
	"github.com/san-kum/quarkonium/internal/optim"
	"github.com/san-kum/quarkonium/internal/viz"
)

func scanEnergies(cmd *cobra.Command, args []string) error {
	cfg, err := loadPlan(cmd, args)
	if err != nil {
		return err
	}
	v := newViper(cmd)
	l := v.GetInt("l")
	if l < 0 {
		return fmt.Errorf("%w: l must be >= 0, got %d", meson.ErrInvalidQuantumNumber, l)
	}
	scanner, err := optim.NewScanner(v.GetFloat64("from"), v.GetFloat64("to"), v.GetInt("points"))
	if err != nil {
		return err
	}

	preset, err := cfg.MesonPreset()
	if err != nil {
		return err
	}
	solver, err := experiment.NewRegistry().Solver(cfg.Integrator, cfg.SolverConfig())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	m, err := meson.New(ctx, preset, meson.Options{Solver: solver, Search: cfg.SearchConfig(), Logger: logger})
	if err != nil {
		return err
	}
	brackets, err := scanner.Scan(ctx, m.Evaluator(l), cfg.Workers)
	if err != nil {
		return err
	}

	p := m.Params()
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s, l=%d, b=%.6f, mu=%.4f", preset.Name, l, p.Slope, p.Mu)))
	if len(brackets) == 0 {
		fmt.Println("no signature change in range")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LO (GeV)\tHI (GeV)\tSIG LO\tSIG HI")
	for _, b := range brackets {
		fmt.Fprintf(w, "%.6g\t%.6g\t%s\t%s\n", b.Lo, b.Hi, b.SigLo, b.SigHi)
	}
	return w.Flush()
}
