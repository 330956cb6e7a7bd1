package main

import (
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/quarkonium/internal/config"
	"github.com/san-kum/quarkonium/internal/experiment"
	"github.com/san-kum/quarkonium/internal/storage"
	"github.com/san-kum/quarkonium/internal/viz"
)

func solvePlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadPlan(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Println(viz.Title.Render(fmt.Sprintf("solving %s (%s-%s) with %s", cfg.Name, cfg.Quarks[0], cfg.Quarks[1], cfg.Integrator)))

	res, err := experiment.New(cfg, experiment.NewRegistry(), logger).Run(ctx)
	if err != nil {
		fmt.Println(viz.Bad.Render("failed"))
		return err
	}

	fmt.Printf("%s %s\n\n", viz.MetricLabel.Render("slope b ="), viz.MetricValue.Render(fmt.Sprintf("%.6f GeV²", res.Slope)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tENERGY (GeV)\tMASS (GeV)\tITER\tSTOP\t<r> (1/GeV)")
	for _, wf := range res.Wavefunctions {
		fmt.Fprintf(w, "%s\t%.6f\t%.4f\t%d\t%s\t%.4f\n",
			wf.Label(),
			wf.Energy,
			wf.Mass,
			wf.Iterations,
			wf.Stop,
			wf.Metrics()["mean_radius"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	table := &storage.Table{R: res.Wavefunctions[0].Grid}
	cols := make([]int, len(res.Wavefunctions))
	for i, wf := range res.Wavefunctions {
		table.Labels = append(table.Labels, wf.Label())
		table.U = append(table.U, wf.U)
		cols[i] = i
	}
	fmt.Println()
	fmt.Println(viz.Chart(table, cols, 80, 15, "u(r), all states", theme.Series))
	fmt.Println()

	if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%.2fs)\n", viz.Good.Render("saved"), runID, res.Elapsed.Seconds())
	return nil
}

// loadPlan picks the plan file or named preset, then applies flags and
// QUARKONIUM_* variables that were set explicitly.
func loadPlan(cmd *cobra.Command, args []string) (*config.Config, error) {
	v := newViper(cmd)

	var cfg *config.Config
	if path := v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		name := "charmonium"
		if len(args) == 1 {
			name = args[0]
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if v.IsSet("integrator") {
		cfg.Integrator = v.GetString("integrator")
	}
	if v.IsSet("tolerance") {
		cfg.Tolerance = v.GetFloat64("tolerance")
	}
	if v.IsSet("substeps") {
		cfg.Substeps = v.GetInt("substeps")
	}
	if v.IsSet("threshold") {
		cfg.Search.Threshold = v.GetFloat64("threshold")
	}
	if v.IsSet("max-iter") {
		cfg.Search.MaxIterations = v.GetInt("max-iter")
	}
	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
