package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/quarkonium/internal/config"
	"github.com/san-kum/quarkonium/internal/export"
	"github.com/san-kum/quarkonium/internal/meson"
	"github.com/san-kum/quarkonium/internal/storage"
	"github.com/san-kum/quarkonium/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAN\tQUARKS\tTIME\tINTEG\tSLOPE\tSTATES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s-%s\t%s\t%s\t%.6f\t%d\n",
			run.ID,
			run.Name,
			run.Quarks[0], run.Quarks[1],
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Slope,
			len(run.States),
		)
	}

	return w.Flush()
}

// openRun loads the run named in args, or the newest one.
func openRun(args []string) (*storage.RunMetadata, *storage.Table, error) {
	st := storage.New(dataDir)
	var runID string
	if len(args) == 1 {
		runID = args[0]
	} else {
		latest, err := st.Latest()
		if err != nil {
			return nil, nil, fmt.Errorf("no stored runs in %s: %w", dataDir, err)
		}
		runID = latest
	}

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	table, err := st.LoadWavefunctions(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(table.R) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, table, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, table, err := openRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("plan: %s (%s-%s)\n", meta.Name, meta.Quarks[0], meta.Quarks[1])
	fmt.Printf("samples: %d\n\n", len(table.R))

	colors := theme.Series
	if overlay, _ := cmd.Flags().GetBool("overlay"); overlay {
		cols := make([]int, len(table.U))
		for i := range cols {
			cols[i] = i
		}
		fmt.Println(viz.Chart(table, cols, 80, 15, "u(r), all states", colors))
		return nil
	}

	for i, label := range table.Labels {
		caption := "u(r) " + label
		if i < len(meta.States) {
			caption = fmt.Sprintf("u(r) %s, E = %.5f GeV", label, meta.States[i].Energy)
		}
		fmt.Println(viz.Chart(table, []int{i}, 80, 10, caption, colors[i%len(colors):]))
		fmt.Println()
	}
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	meta, table, err := openRun(args)
	if err != nil {
		return err
	}
	return viz.RunBrowser(meta, table, theme.Name)
}

// output opens the --out file, or stdout.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, table, err := openRun(args)
	if err != nil {
		return err
	}
	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, meta, table); err != nil {
		done()
		return err
	}
	return done()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, table, err := openRun(args)
	if err != nil {
		return err
	}
	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if err := table.WriteCSV(w); err != nil {
		done()
		return err
	}
	return done()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, table, err := openRun(args)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, export.TableToSVG(table, width, height)); err != nil {
		done()
		return err
	}
	return done()
}

func exportPNG(cmd *cobra.Command, args []string) error {
	meta, table, err := openRun(args)
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("out"); path == "" {
		if err := cmd.Flags().Set("out", meta.ID+".png"); err != nil {
			return err
		}
	}

	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s, b = %.5f GeV²", meta.Name, meta.Slope)
	if err := export.WritePlot(w, table, title, "png"); err != nil {
		done()
		return err
	}
	if err := done(); err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("out")
	fmt.Fprintln(os.Stderr, "wrote", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAN\tQUARKS\tSTATES")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		states := ""
		for i, s := range cfg.States {
			if i > 0 {
				states += "  "
			}
			states += fmt.Sprintf("(%d,%d)[%g,%g]", s.N, s.L, s.Bracket[0], s.Bracket[1])
		}
		fmt.Fprintf(w, "%s\t%s-%s\t%s\n", name, cfg.Quarks[0], cfg.Quarks[1], states)
	}
	return w.Flush()
}

func listPairs(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQUARKS\tMU (GeV)\tE0 (GeV)\tA\tGRID\tSLOPE BRACKET")
	for _, p := range meson.Presets() {
		fmt.Fprintf(w, "%s\t%s-%s\t%.4f\t%.4f\t%g\t%d pts [%g, %g)\t[%g, %g]\n",
			p.Name,
			p.Quarks[0], p.Quarks[1],
			p.ReducedMass(),
			p.ReferenceEnergy(),
			p.Coulomb,
			len(p.Grid()), p.RMin, p.RMax,
			p.SlopeBracket[0], p.SlopeBracket[1],
		)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	name := "charmonium"
	if len(args) == 1 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if path, _ := cmd.Flags().GetString("out"); path != "" {
		return config.Save(path, cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
