package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skoram/emgrid/internal/boundary"
	"github.com/skoram/emgrid/internal/compute"
	"github.com/skoram/emgrid/internal/config"
	"github.com/skoram/emgrid/internal/fdtd"
	"github.com/skoram/emgrid/internal/probe"
	"github.com/skoram/emgrid/internal/storage"
	"github.com/skoram/emgrid/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	steps      int
	nx, ny, nz int
	spacing    float64
	epsilon    float64
	mu         float64
	courant    float64
	period     int
	power      float64
	phase      float64
	serial     bool
	noProgress bool
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emgrid",
		Short: "FDTD electromagnetic wave simulation on a 3D Yee grid",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".emgrid", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the probe trace",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of timesteps (overrides config)")
	runCmd.Flags().IntVar(&nx, "nx", 0, "grid cells along x (overrides config)")
	runCmd.Flags().IntVar(&ny, "ny", 0, "grid cells along y (overrides config)")
	runCmd.Flags().IntVar(&nz, "nz", 0, "grid cells along z (overrides config)")
	runCmd.Flags().Float64Var(&spacing, "spacing", 0, "grid spacing in meters (overrides config)")
	runCmd.Flags().Float64Var(&epsilon, "permittivity", 0, "relative permittivity (overrides config)")
	runCmd.Flags().Float64Var(&mu, "permeability", 0, "relative permeability (overrides config)")
	runCmd.Flags().Float64Var(&courant, "courant", 0, "courant number (default: CFL-derived)")
	runCmd.Flags().IntVar(&period, "period", 0, "source period in timesteps (overrides config)")
	runCmd.Flags().Float64Var(&power, "power", 0, "source power (overrides config)")
	runCmd.Flags().Float64Var(&phase, "phase", 0, "source phase shift in radians")
	runCmd.Flags().BoolVar(&serial, "serial", false, "use the serial compute backend")
	runCmd.Flags().BoolVar(&noProgress, "no-progress", false, "suppress the progress line")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the probe trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trace as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step the simulation in a live terminal view",
		RunE:  liveView,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames (timesteps) per second")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers preset < config file < explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("nx") {
		cfg.Shape[0] = nx
	}
	if cmd.Flags().Changed("ny") {
		cfg.Shape[1] = ny
	}
	if cmd.Flags().Changed("nz") {
		cfg.Shape[2] = nz
	}
	if cmd.Flags().Changed("spacing") {
		cfg.GridSpacing = spacing
	}
	if cmd.Flags().Changed("permittivity") {
		cfg.Permittivity = epsilon
	}
	if cmd.Flags().Changed("permeability") {
		cfg.Permeability = mu
	}
	if cmd.Flags().Changed("courant") {
		cfg.CourantNumber = courant
	}
	if cmd.Flags().Changed("period") {
		cfg.Source.Period = period
	}
	if cmd.Flags().Changed("power") {
		cfg.Source.Power = power
	}
	if cmd.Flags().Changed("phase") {
		cfg.Source.PhaseShift = phase
	}

	return cfg, cfg.Validate()
}

// buildGrid assembles a grid with the configured source, probe and
// boundaries attached.
func buildGrid(cfg *config.Config) (*fdtd.Grid, *probe.FieldProbe, error) {
	var backend compute.Backend
	if serial {
		backend = compute.NewSerial()
	}

	g, err := fdtd.New(
		[]fdtd.Distance{
			fdtd.Cells(cfg.Shape[0]),
			fdtd.Cells(cfg.Shape[1]),
			fdtd.Cells(cfg.Shape[2]),
		},
		&fdtd.Options{
			GridSpacing:   cfg.GridSpacing,
			Permittivity:  cfg.Permittivity,
			Permeability:  cfg.Permeability,
			CourantNumber: cfg.CourantNumber,
			Backend:       backend,
		},
	)
	if err != nil {
		return nil, nil, err
	}

	src := fdtd.NewLineSource(fdtd.Steps(cfg.Source.Period), cfg.Source.Power, cfg.Source.PhaseShift, "source")
	srcKeys := make([]fdtd.Key, 3)
	for i := range srcKeys {
		if cfg.Source.From[i] == cfg.Source.To[i] {
			srcKeys[i] = fdtd.At(fdtd.Cells(cfg.Source.From[i]))
		} else {
			srcKeys[i] = fdtd.Span(fdtd.Cells(cfg.Source.From[i]), fdtd.Cells(cfg.Source.To[i]))
		}
	}
	if err := g.Attach(src, srcKeys...); err != nil {
		return nil, nil, err
	}

	for _, axis := range cfg.PeriodicAxes {
		keys := []fdtd.Key{fdtd.Whole(), fdtd.Whole(), fdtd.Whole()}
		switch axis {
		case "x":
			keys[0] = fdtd.At(fdtd.Cells(0))
		case "y":
			keys[1] = fdtd.At(fdtd.Cells(0))
		case "z":
			keys[2] = fdtd.At(fdtd.Cells(0))
		}
		if err := g.Attach(boundary.NewPeriodic("periodic-"+axis), keys...); err != nil {
			return nil, nil, err
		}
	}

	p := probe.NewFieldProbe("probe")
	err = g.Attach(p,
		fdtd.At(fdtd.Cells(cfg.Probe.At[0])),
		fdtd.At(fdtd.Cells(cfg.Probe.At[1])),
		fdtd.At(fdtd.Cells(cfg.Probe.At[2])),
	)
	if err != nil {
		return nil, nil, err
	}

	return g, p, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	g, p, err := buildGrid(cfg)
	if err != nil {
		return err
	}

	var progress func(done, total int)
	if !noProgress {
		progress = func(done, total int) {
			if done%10 == 0 || done == total {
				fmt.Fprintf(os.Stderr, "\rstep %d/%d", done, total)
			}
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	if err := g.Run(context.Background(), fdtd.Steps(cfg.Steps), progress); err != nil {
		return err
	}

	trace := p.TraceEZ(0)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	peak := 0.0
	for _, v := range trace {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	runNx, runNy, runNz := g.Shape()
	runID, err := st.Save(storage.RunMetadata{
		Shape:         [3]int{runNx, runNy, runNz},
		GridSpacing:   g.GridSpacing(),
		CourantNumber: g.CourantNumber(),
		Timestep:      g.Timestep(),
		Steps:         g.TimestepsPassed(),
		Metrics:       map[string]float64{"peak_e_z": peak},
	}, trace)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(g))
	fmt.Println(viz.PlotTrace(trace, "probe E_z"))
	fmt.Printf("saved as %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSHAPE\tSTEPS\tCOURANT\tPEAK E_Z")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t(%d,%d,%d)\t%d\t%.4f\t%.3g\n",
			r.ID, r.Shape[0], r.Shape[1], r.Shape[2], r.Steps, r.CourantNumber, r.Metrics["peak_e_z"])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.PlotTrace(trace, "probe E_z — "+args[0]))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		storage.RunMetadata
		Trace []float64 `json:"trace"`
	}{meta, trace})
}

func liveView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	g, _, err := buildGrid(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(g, frameRate)
}
