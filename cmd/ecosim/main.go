package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/ecosim/internal/census"
	"github.com/san-kum/ecosim/internal/config"
	"github.com/san-kum/ecosim/internal/sim"
	"github.com/san-kum/ecosim/internal/storage"
	"github.com/san-kum/ecosim/internal/viz"
)

var (
	dataDir  string
	logLevel string

	depth      int
	width      int
	steps      int
	seed       int64
	fps        int
	configFile string
	preset     string
	csvOut     bool
	noSave     bool
	theme      string

	runs    int
	workers int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ecosim",
		Short:        "fox and rabbit predator-prey simulation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ecosim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print a census per step",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addFieldFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "print the census as csv")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store a run summary")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the field evolve in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)
	liveCmd.Flags().IntVar(&steps, "steps", 0, "stop after this many steps (0 runs until a species dies out)")
	liveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "steps per second")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeClassic.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run summary as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDEPTH\tWIDTH\tSTEPS\tFPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", name, p.Depth, p.Width, p.Steps, p.FPS)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of seeds and report throughput",
		Args:  cobra.NoArgs,
		RunE:  benchEnsemble,
	}
	addFieldFlags(benchCmd)
	benchCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "steps per run")
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of runs")
	benchCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "runs executed in parallel")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, exportCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&depth, "depth", config.DefaultDepth, "field depth (rows)")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "field width (columns)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func setupLogging(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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

	flags := cmd.Flags()
	if flags.Changed("depth") || (preset == "" && configFile == "") {
		cfg.Depth = depth
	}
	if flags.Changed("width") || (preset == "" && configFile == "") {
		cfg.Width = width
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	// steps has a per-command default, so read it from this command's flag set.
	if f := flags.Lookup("steps"); f != nil && (f.Changed || (preset == "" && configFile == "")) {
		n, err := flags.GetInt("steps")
		if err != nil {
			return nil, err
		}
		cfg.Steps = n
	}
	if f := flags.Lookup("fps"); f != nil && (f.Changed || (preset == "" && configFile == "")) {
		cfg.FPS = fps
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	format := viz.FormatText
	if csvOut {
		format = viz.FormatCSV
	}
	printer := viz.NewPrinter(os.Stdout, format)
	metrics := census.DefaultMetrics()

	opts := []sim.Option{
		sim.WithSeed(cfg.Seed),
		sim.WithActivity(census.Viable),
		sim.WithObserver(printer),
	}
	for _, m := range metrics {
		opts = append(opts, sim.WithMetric(m))
	}
	s := sim.New(cfg.Depth, cfg.Width, opts...)
	s.Reset()

	slog.Info("starting simulation",
		"depth", s.Depth(), "width", s.Width(), "steps", cfg.Steps, "seed", s.Seed())

	n, runErr := s.RunSteps(ctx, cfg.Steps)
	if err := printer.Err(); err != nil {
		return err
	}

	final := census.Count(s.View())
	stopped := ""
	switch {
	case errors.Is(runErr, context.Canceled):
		stopped = "interrupted"
	case runErr != nil:
		return runErr
	case n < cfg.Steps:
		stopped = "inactive"
	}
	slog.Info("simulation finished", "steps", n, "stopped", stopped, "census", final)

	if noSave {
		return nil
	}
	runID, err := storage.New(dataDir).Save(storage.RunMetadata{
		Seed:      s.Seed(),
		Depth:     s.Depth(),
		Width:     s.Width(),
		Requested: cfg.Steps,
		Steps:     n,
		Stopped:   stopped,
		Final:     final,
		Metrics:   s.MetricValues(),
	})
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	slog.Info("run saved", "id", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !viz.SetTheme(theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}

	// Log lines would tear the alternate screen.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := sim.New(cfg.Depth, cfg.Width, sim.WithSeed(cfg.Seed), sim.WithLogger(logger))
	s.Reset()

	m := viz.NewModel(s, cfg.FPS, cfg.Steps, census.Viable)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
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
	fmt.Fprintln(w, "ID\tTIME\tFIELD\tSEED\tSTEPS\tFOXES\tRABBITS\tSTOPPED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d/%d\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Depth, run.Width,
			run.Seed,
			run.Steps, run.Requested,
			run.Final.Foxes,
			run.Final.Rabbits,
			run.Stopped,
		)
	}

	return w.Flush()
}

func benchEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := sim.NewEnsemble(cfg.Depth, cfg.Width, runs, cfg.Seed,
		sim.WithActivity(census.Viable),
		sim.WithLogger(slog.Default())).
		WithWorkers(workers).
		WithMetrics(census.DefaultMetrics)

	fmt.Printf("benchmarking %d runs of %d steps on %dx%d\n\n", runs, cfg.Steps, cfg.Depth, cfg.Width)

	start := time.Now()
	outcomes, err := e.Run(ctx, cfg.Steps)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tFOXES\tRABBITS\tPEAK FOX\tPEAK RABBIT\tEATEN")
	total := 0
	for _, o := range outcomes {
		total += o.Steps
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.0f\t%.0f\t%.0f\n",
			o.Seed, o.Steps, o.Foxes, o.Rabbits,
			o.Metrics["peak_fox"], o.Metrics["peak_rabbit"], o.Metrics["deaths_eaten"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d steps in %v (%.0f steps/sec)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}
