package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/quarkonium/internal/viz"
)

var (
	dataDir string
	verbose bool
	theme   = viz.Themes[0]
	logger  = slog.New(slog.DiscardHandler)
)

// main registers the commands and exits with status 1 when the selected
// command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "quarkonium",
		Short:        "heavy meson spectra by the shooting method",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := newViper(cmd)
			dataDir = v.GetString("data")
			theme = viz.GetTheme(v.GetString("theme"))
			level := slog.LevelWarn
			if v.GetBool("verbose") {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".quarkonium", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every bisection step")
	rootCmd.PersistentFlags().String("theme", viz.Themes[0].Name, "color theme ("+strings.Join(viz.ThemeNames(), "|")+")")

	solveCmd := &cobra.Command{
		Use:   "solve [preset]",
		Short: "solve the states of a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solvePlan,
	}
	addPlanFlags(solveCmd)
	solveCmd.Flags().Bool("no-save", false, "do not store the run")

	scanCmd := &cobra.Command{
		Use:   "scan [preset]",
		Short: "sweep energies for signature changes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  scanEnergies,
	}
	addPlanFlags(scanCmd)
	scanCmd.Flags().Int("l", 0, "angular momentum")
	scanCmd.Flags().Float64("from", 0, "lowest energy (GeV)")
	scanCmd.Flags().Float64("to", 2, "highest energy (GeV)")
	scanCmd.Flags().Int("points", 41, "energies sampled")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored wavefunctions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().Bool("overlay", false, "draw all states on one chart")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a stored run interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export wavefunctions as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export wavefunctions as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Int("width", 800, "image width")
	exportSVGCmd.Flags().Int("height", 400, "image height")
	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render wavefunctions to png",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPNG,
	}
	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd, exportSVGCmd, exportPNGCmd} {
		c.Flags().StringP("out", "o", "", "output file (default stdout, png: <run_id>.png)")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named plans",
		RunE:  listPresets,
	}

	pairsCmd := &cobra.Command{
		Use:   "pairs",
		Short: "list quark pairs",
		RunE:  listPairs,
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "write a plan as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	configCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(solveCmd, scanCmd, listCmd, plotCmd, viewCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, exportPNGCmd,
		presetsCmd, pairsCmd, configCmd)
	return rootCmd
}

func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "plan file (yaml)")
	cmd.Flags().String("integrator", "rk45", "integrator (euler|rk4|rk45|verlet|leapfrog|dopri)")
	cmd.Flags().Float64("tolerance", 1e-8, "adaptive step tolerance")
	cmd.Flags().Int("substeps", 4, "fixed steps per grid interval")
	cmd.Flags().Float64("threshold", 1e-10, "bisection threshold")
	cmd.Flags().Int("max-iter", 200, "bisection iteration cap")
	cmd.Flags().Int("workers", 1, "parallel workers")
}

// newViper layers QUARKONIUM_* environment variables over the flags of cmd.
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("QUARKONIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	return v
}
