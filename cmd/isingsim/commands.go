package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isingsim/internal/analysis"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/export"
	"github.com/san-kum/isingsim/internal/sim"
	"github.com/san-kum/isingsim/internal/storage"
	"github.com/san-kum/isingsim/internal/sweep"
	"github.com/san-kum/isingsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(28)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

const blockCount = 10

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d×%d lattice at T=%.4f for %d steps...\n", cfg.Size, cfg.Size, cfg.Temperature(), cfg.Steps)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	runID, err := st.Save(exp.Metadata(), result, exp.Lattice())
	if err != nil {
		return err
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	b.WriteString(titleStyle.Render(runID) + "\n\n")
	row("elapsed", exp.Elapsed().String())
	row("seed", fmt.Sprintf("%d", exp.Seed()))
	row("records", fmt.Sprintf("%d", len(result.Records)))
	row("acceptance", fmt.Sprintf("%.4f", result.AcceptanceRate()))
	row("final energy", fmt.Sprintf("%g", result.Final.Energy))
	row("final magnetization", fmt.Sprintf("%g", result.Final.Magnetization))
	row("up / down", fmt.Sprintf("%d / %d", result.Final.Up, result.Final.Down))
	if len(result.Metrics) > 0 {
		b.WriteString("\n")
		for _, name := range sortedKeys(result.Metrics) {
			row(name, fmt.Sprintf("%.6f", result.Metrics[name]))
		}
	}
	fmt.Println(boxStyle.Render(strings.TrimRight(b.String(), "\n")))

	return nil
}

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
	fmt.Fprintln(w, "ID\tTIME\tN\tT\tH\tSTEPS\tRULE\tACCEPT")

	for _, run := range runs {
		accept := 0.0
		if run.Attempts > 0 {
			accept = float64(run.Accepted) / float64(run.Attempts)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%g\t%d\t%s\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Size,
			run.Temperature,
			run.Config.H,
			run.Config.Steps,
			run.Config.Rule,
			accept,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(records) < 2 {
		return fmt.Errorf("no series to plot (recording %q)", meta.Config.Recording)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("T: %.4f  H: %g  N: %d\n", meta.Temperature, meta.Config.H, meta.Config.Size)
	fmt.Printf("samples: %d\n\n", len(records))

	sites := float64(meta.Config.Size * meta.Config.Size)
	res := sim.Result{Records: records}
	series := []struct {
		caption string
		data    []float64
	}{
		{"energy per site", scale(res.Energies(), sites)},
		{"magnetization per site", scale(res.Magnetizations(), sites)},
	}

	for _, s := range series {
		graph := asciigraph.Plot(downsample(s.data, 800),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgFile != "" {
		return writeFile(svgFile, func(w io.Writer) error {
			return export.WriteSVG(w, export.SeriesSVG(downsample(series[0].data, 2000), 800, 300, "#00ff88"))
		})
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(records) < 2*blockCount {
		return fmt.Errorf("%w: %d records", analysis.ErrTooFewSamples, len(records))
	}

	burn := meta.Config.Burnin
	if burn >= len(records) {
		burn = 0
	}
	records = records[burn:]

	fmt.Printf("autocorrelation analysis: %s\n", meta.ID)
	fmt.Printf("samples after burn-in: %d\n\n", len(records))

	sites := float64(meta.Config.Size * meta.Config.Size)
	res := sim.Result{Records: records}
	energy := scale(res.Energies(), sites)
	magnet := scale(res.Magnetizations(), sites)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTDERR\tTAU_INT")
	for _, s := range []struct {
		name string
		data []float64
	}{{"energy", energy}, {"magnetization", magnet}} {
		mean, stderr, err := analysis.BlockError(s.data, blockCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.1f\n", s.name, mean, stderr, analysis.IntegratedTime(s.data))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	maxLag := min(len(energy)-1, 400)
	graph := asciigraph.PlotMany([][]float64{
		analysis.Autocorrelation(energy, maxLag),
		analysis.Autocorrelation(magnet, maxLag),
	},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("autocorrelation (green: energy, blue: magnetization)"),
	)
	fmt.Println(graph)
	fmt.Println()

	ps := analysis.PowerSpectrum(magnet)
	graph = asciigraph.Plot(downsample(ps[1:len(ps)/4], 800),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (magnetization)"),
	)
	fmt.Println(graph)

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	return withOutput(func(w io.Writer) error {
		return storage.WriteSeriesCSV(w, records)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return withOutput(func(w io.Writer) error {
		return storage.ExportJSON(w, meta, records)
	})
}

func showSpins(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	lat, err := st.LoadSpins(runID)
	if err != nil {
		return err
	}

	up, down := lat.SpinCounts()
	fmt.Printf("run: %s  N=%d  up=%d down=%d  M=%g  E=%g\n\n", runID, lat.Size(), up, down, lat.Magnetization(), lat.Energy())

	th := viz.GetTheme(theme)
	if svgFile != "" {
		err := writeFile(svgFile, func(w io.Writer) error {
			return export.WriteSVG(w, export.LatticeSVG(lat, 8, string(th.Up), string(th.Down)))
		})
		if err != nil {
			return err
		}
	}

	if lat.Size() > 128 {
		c := viz.NewLatticeCanvas(lat.Size())
		c.DrawLattice(lat)
		fmt.Println(c.String())
		return nil
	}
	fmt.Println(viz.RenderHalfBlocks(lat, th))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	factors := sweep.Range(fromFactor, toFactor, points)
	fmt.Printf("sweeping %d temperatures on %d×%d (%d replicas, %d steps each)...\n", len(factors), cfg.Size, cfg.Size, replicas, cfg.Steps)

	pts, err := sweep.New(factors, replicas, workers).Run(ctx, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T/Tc\tT\tE/N²\t|M|/N²\tC\tCHI\tU\tACCEPT")
	for _, p := range pts {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.3f\n",
			p.Factor, p.T, p.Energy, p.AbsMagnetization, p.SpecificHeat, p.Susceptibility, p.Binder, p.Acceptance)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	if len(pts) < 2 {
		return nil
	}
	mag := make([]float64, len(pts))
	heat := make([]float64, len(pts))
	for i, p := range pts {
		mag[i] = p.AbsMagnetization
		heat[i] = p.SpecificHeat
	}
	fmt.Println(asciigraph.Plot(mag, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("|m| vs T/Tc")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(heat, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("C vs T/Tc")))
	return nil
}

func withOutput(write func(io.Writer) error) error {
	if outFile == "" {
		return write(os.Stdout)
	}
	return writeFile(outFile, write)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
