package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
	"github.com/san-kum/isingsim/internal/viz"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	// Run configuration
	configFile  string
	preset      string
	runName     string
	size        int
	temp        float64
	tFactor     float64
	field       float64
	coupling    float64
	steps       int
	sweeps      int
	seed        int64
	recording   string
	rule        string
	sampleEvery int
	burnin      int
	metricNames []string
	// Sweep
	fromFactor float64
	toFactor   float64
	points     int
	replicas   int
	workers    int
	// Live view
	batch int
	theme string
	// Export
	outFile string
	svgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "isingsim",
		Short: "2D Ising model Monte Carlo lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its results",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and magnetization of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the energy trace as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "autocorrelation and error analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	spinsCmd := &cobra.Command{
		Use:   "spins [run_id]",
		Short: "render the final lattice of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showSpins,
	}
	spinsCmd.Flags().StringVar(&svgFile, "svg", "", "also write the lattice as SVG")
	spinsCmd.Flags().StringVar(&theme, "theme", viz.ThemeClassic.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep temperature across the transition",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&fromFactor, "from", 0.5, "lowest T/Tc")
	sweepCmd.Flags().Float64Var(&toFactor, "to", 1.5, "highest T/Tc")
	sweepCmd.Flags().IntVar(&points, "points", 11, "number of temperatures")
	sweepCmd.Flags().IntVar(&replicas, "replicas", 1, "independent chains per temperature")
	sweepCmd.Flags().IntVar(&workers, "workers", 4, "temperatures run concurrently")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&batch, "batch", 0, "attempts per frame (default N²/4)")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeClassic.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	tcritCmd := &cobra.Command{
		Use:   "tcrit",
		Short: "print the critical temperature for a coupling",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Tc(J=%g) = %.12f\n", coupling, lattice.Tcrit(coupling))
			return nil
		},
	}
	tcritCmd.Flags().Float64Var(&coupling, "j", config.DefaultJ, "exchange coupling")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, spinsCmd, sweepCmd, liveCmd, presetsCmd, tcritCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&runName, "name", "", "run name")
	f.IntVarP(&size, "size", "n", config.DefaultSize, "lattice side N")
	f.Float64Var(&temp, "t", 0, "absolute temperature (overrides --t-factor)")
	f.Float64Var(&tFactor, "t-factor", config.DefaultTFactor, "temperature as a multiple of Tc")
	f.Float64Var(&field, "field", 0, "external field H")
	f.Float64Var(&coupling, "j", config.DefaultJ, "exchange coupling")
	f.IntVar(&steps, "steps", 0, "single-spin attempts")
	f.IntVar(&sweeps, "sweeps", 0, "attempts in units of N² (ignored with --steps)")
	f.Int64Var(&seed, "seed", 0, "random seed (0 draws one)")
	f.StringVar(&recording, "recording", sim.Full.String(), "full or final")
	f.StringVar(&rule, "rule", lattice.Metropolis.String(), "metropolis or glauber")
	f.IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "attempts between metric samples")
	f.IntVar(&burnin, "burnin", 0, "attempts before metrics start sampling")
	f.StringSliceVar(&metricNames, "metrics", nil, "metrics to compute (default all)")
}

// buildConfig layers defaults, preset, config file, ISING_* environment and
// explicitly set flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("name") {
		cfg.Name = runName
	}
	if f.Changed("size") {
		cfg.Size = size
	}
	if f.Changed("t-factor") {
		cfg.TFactor = tFactor
		cfg.T = 0
	}
	if f.Changed("t") {
		cfg.T = temp
	}
	if f.Changed("field") {
		cfg.H = field
	}
	if f.Changed("j") {
		cfg.J = coupling
	}
	switch {
	case f.Changed("steps"):
		cfg.Steps = steps
	case f.Changed("sweeps"):
		cfg.Steps = sweeps * cfg.Size * cfg.Size
	case f.Changed("size") && preset == "" && configFile == "":
		cfg.Steps = cfg.Size * cfg.Size * config.DefaultSweeps
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("recording") {
		cfg.Recording = recording
	}
	if f.Changed("rule") {
		cfg.Rule = rule
	}
	if f.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if f.Changed("burnin") {
		cfg.Burnin = burnin
	}
	if f.Changed("metrics") {
		cfg.Metrics = metricNames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"config": fmt.Sprintf("%+v", *cfg)}).Debug("resolved configuration")
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	r, err := cfg.AcceptanceRule()
	if err != nil {
		return err
	}

	lat := lattice.New(cfg.Size, cfg.Temperature(), cfg.H, cfg.J)
	lat.SetRule(r)

	s := cfg.Seed
	if s == 0 {
		s = sim.EntropySeed()
	}
	b := batch
	if b <= 0 {
		b = max(cfg.Size*cfg.Size/4, 1)
	}

	m := viz.NewModel(lat, s, b).WithTheme(theme)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("available presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("  %-10s N=%-3d T=%.2f·Tc H=%-4g steps=%-9d %s/%s\n",
			name, p.Size, p.TFactor, p.H, p.Steps, p.Rule, p.Recording)
	}
	return nil
}
