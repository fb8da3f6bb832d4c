package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/arrayviz/internal/analysis"
	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/config"
	"github.com/san-kum/arrayviz/internal/export"
	"github.com/san-kum/arrayviz/internal/logging"
	"github.com/san-kum/arrayviz/internal/server"
	"github.com/san-kum/arrayviz/internal/session"
	"github.com/san-kum/arrayviz/internal/steps"
	"github.com/san-kum/arrayviz/internal/storage"
	"github.com/san-kum/arrayviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string

	size   int
	speed  int
	seed   int64
	preset string
	mode   string
	theme  string
	values string

	value int
	index int
	save  bool

	addr string

	runs      int
	stepIndex int
	output    string
	profile   bool
)

// settings is the resolved configuration plus the pieces derived from it.
type settings struct {
	cfg *config.Config
	rng *rand.Rand
	log *slog.Logger
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "arrayviz",
		Short:        "step through and animate array operations",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for runs and logs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")
	pf.IntVar(&size, "size", config.DefaultArraySize, "array size (1-20)")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "animation speed (1-10)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	pf.StringVar(&preset, "preset", "", "start from a preset array")
	pf.StringVar(&values, "values", "", "start from explicit values, e.g. \"5,3,8,1\"")

	rootCmd.Flags().StringVar(&mode, "mode", config.DefaultMode, "execution mode (direct, step)")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "print a random array",
		Args:  cobra.NoArgs,
		RunE:  createArray,
	}

	stepsCmd := &cobra.Command{
		Use:   "steps [operation]",
		Short: "print the step trace of an operation",
		Args:  cobra.ExactArgs(1),
		RunE:  printSteps,
	}
	stepsCmd.Flags().IntVar(&value, "value", 0, "operation value")
	stepsCmd.Flags().IntVar(&index, "index", 0, "operation index")
	stepsCmd.Flags().BoolVar(&save, "save", false, "record the trace in the data directory")

	animateCmd := &cobra.Command{
		Use:   "animate [operation]",
		Short: "run a search or sort animation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  animate,
	}
	animateCmd.Flags().IntVar(&value, "value", 0, "search target")

	playCmd := &cobra.Command{
		Use:   "play [operation]",
		Short: "open the TUI in step mode on an operation",
		Args:  cobra.ExactArgs(1),
		RunE:  play,
	}
	playCmd.Flags().IntVar(&value, "value", 0, "operation value")
	playCmd.Flags().IntVar(&index, "index", 0, "operation index")
	playCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the JSON and WebSocket API",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot inversions per step of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a recorded run's steps as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one step of a recorded run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&stepIndex, "step", 0, "step number (1-based, 0 for the last step)")
	exportSVGCmd.Flags().BoolVar(&profile, "profile", false, "render the inversion profile instead of a step")
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [operation]",
		Short: "summarise an operation over many random arrays",
		Args:  cobra.ExactArgs(1),
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&runs, "runs", 100, "number of random arrays")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset arrays",
		Args:  cobra.NoArgs,
		Run:   listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(createCmd, stepsCmd, animateCmd, playCmd, serveCmd, listCmd, showCmd,
		plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings layers the config file (if any) and explicitly set flags over
// the defaults.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("size") {
		cfg.ArraySize = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &settings{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		log: logging.New(logging.Config{Level: level, Format: cfg.LogFormat, Output: os.Stderr}),
	}, nil
}

// initialArray resolves --values, then the preset, and falls back to a
// random array of the configured size.
func (s *settings) initialArray() (array.Array, error) {
	if values != "" {
		a, err := array.Parse(values)
		if err != nil {
			return nil, err
		}
		if err := array.Validate(a); err != nil {
			return nil, fmt.Errorf("--values: %w", err)
		}
		return a, nil
	}
	if s.cfg.Preset != "" {
		a := config.GetPreset(s.cfg.Preset)
		if a == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", s.cfg.Preset, strings.Join(config.ListPresets(), ", "))
		}
		return a, nil
	}
	return session.New(session.WithRand(s.rng)).CreateArray(s.cfg.ArraySize)
}

// fileLogger sends logs to a file so they don't tear the TUI.
func (s *settings) fileLogger() (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(s.cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log, f, err := logging.OpenFile(s.cfg.DataDir, "arrayviz", level)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { f.Close() }, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	m, err := session.ParseMode(s.cfg.Mode)
	if err != nil {
		return err
	}
	return launch(s, viz.Options{Mode: m})
}

func play(cmd *cobra.Command, args []string) error {
	op, err := steps.ParseOperation(args[0])
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return launch(s, viz.Options{Mode: session.Step, Op: op, Value: value, Index: index})
}

func launch(s *settings, opts viz.Options) error {
	initial, err := s.initialArray()
	if err != nil {
		return err
	}

	log, closeLog, err := s.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info("tui started", "mode", opts.Mode.String(), "seed", s.cfg.Seed)

	opts.Size = s.cfg.ArraySize
	opts.Speed = s.cfg.Speed
	opts.Theme = s.cfg.Theme
	opts.Initial = initial
	opts.Rand = s.rng
	opts.Logger = log
	return viz.Run(opts)
}

func createArray(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	a, err := s.initialArray()
	if err != nil {
		return err
	}
	fmt.Println(a)
	return nil
}

func printSteps(cmd *cobra.Command, args []string) error {
	op, err := steps.ParseOperation(args[0])
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	a, err := s.initialArray()
	if err != nil {
		return err
	}
	if op == steps.OpBinarySearch {
		a = a.Sorted()
	}

	seq, err := steps.Generate(op, a, steps.Params{Value: value, Index: index})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tARRAY\tDESCRIPTION")
	for i, st := range seq {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, st.Array, st.Description)
	}
	w.Flush()

	stats := analysis.Summarize(seq)
	fmt.Printf("\n%s\n", stats)

	if !save {
		return nil
	}
	store := storage.New(s.cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	id, err := store.Save(storage.RunMetadata{
		Operation: op.String(),
		Timestamp: time.Now(),
		Seed:      s.cfg.Seed,
		Input:     a,
		Value:     value,
		Index:     index,
		Steps:     len(seq),
		Metrics:   stats.Metrics(),
	}, seq)
	if err != nil {
		return err
	}
	s.log.Info("run saved", "id", id, "op", op.String(), "steps", len(seq))
	fmt.Printf("saved: %s\n", id)
	return nil
}

func animate(cmd *cobra.Command, args []string) error {
	op, err := steps.ParseOperation(args[0])
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	a, err := s.initialArray()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := array.NewStore(s.rng)
	store.Set(a)
	done := make(chan struct{})
	runner := anim.NewRunner(store,
		anim.WithLogger(s.log),
		anim.WithInterval(s.cfg.Interval()),
		anim.WithFrameHandler(func(f anim.Frame) {
			fmt.Printf("[%3d] %-48s %s\n", f.Tick, f.Array, f.Message)
			if f.Done {
				close(done)
			}
		}),
	)
	if _, err := runner.Start(op, value); err != nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
		runner.Stop()
		fmt.Println("interrupted")
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	runs := storage.New(s.cfg.DataDir)
	if err := runs.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Logger: s.log,
		Rand:   s.rng,
		Speed:  s.cfg.Speed,
		Runs:   runs,
	})
	return srv.Run(ctx, s.cfg.Addr)
}

func listRuns(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(s.cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOPERATION\tSTEPS\tINPUT\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Operation, r.Steps, r.Input, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	store := storage.New(s.cfg.DataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	seq, err := store.LoadSteps(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run:       %s\n", meta.ID)
	fmt.Printf("operation: %s\n", meta.Operation)
	fmt.Printf("input:     %s\n", meta.Input)
	fmt.Printf("value:     %d\n", meta.Value)
	fmt.Printf("index:     %d\n", meta.Index)
	fmt.Printf("recorded:  %s\n\n", meta.Timestamp.Format(time.RFC3339))
	for i, st := range seq {
		fmt.Printf("%3d  %-48s %s\n", i+1, st.Array, st.Description)
	}
	fmt.Printf("\n%s\n", analysis.Summarize(seq))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	seq, err := storage.New(s.cfg.DataDir).LoadSteps(args[0])
	if err != nil {
		return err
	}
	graph := analysis.Plot(seq, asciigraph.Height(10), asciigraph.Width(80))
	if graph == "" {
		return fmt.Errorf("run %s has no steps", args[0])
	}
	fmt.Println(graph)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	store := storage.New(s.cfg.DataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	seq, err := store.LoadSteps(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, seq)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	seq, err := storage.New(s.cfg.DataDir).LoadSteps(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, seq)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	seq, err := storage.New(s.cfg.DataDir).LoadSteps(args[0])
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		return fmt.Errorf("run %s has no steps", args[0])
	}

	var svg string
	if profile {
		svg = export.ProfileToSVG(analysis.Profile(seq), 640, 240, "#32cd32")
		if svg == "" {
			return fmt.Errorf("run %s is too short to plot", args[0])
		}
	} else {
		n := stepIndex
		if n == 0 {
			n = len(seq)
		}
		if n < 1 || n > len(seq) {
			return fmt.Errorf("step %d out of range 1-%d", n, len(seq))
		}
		svg = export.StepToSVG(seq[n-1], 640, 320)
	}

	if output == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	op, err := steps.ParseOperation(args[0])
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := analysis.NewEnsemble(op, s.cfg.ArraySize, runs, s.cfg.Seed).Run(ctx)
	if err != nil {
		return err
	}
	sum := analysis.Aggregate(stats)
	s.log.Debug("bench finished", "op", op.String(), "runs", sum.Runs, "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "operation\t%s\n", op)
	fmt.Fprintf(w, "array size\t%d\n", s.cfg.ArraySize)
	fmt.Fprintf(w, "runs\t%d\n", sum.Runs)
	fmt.Fprintf(w, "steps (min/mean/max)\t%d / %.2f / %d\n", sum.MinSteps, sum.MeanSteps, sum.MaxSteps)
	fmt.Fprintf(w, "mean comparisons\t%.2f\n", sum.MeanComparisons)
	fmt.Fprintf(w, "mean swaps\t%.2f\n", sum.MeanSwaps)
	fmt.Fprintf(w, "mean shifts\t%.2f\n", sum.MeanShifts)
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tVALUES")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name))
	}
	w.Flush()

	fmt.Println("\noperations:", strings.Join(steps.ListOperations(), ", "))
	fmt.Println("themes:    ", strings.Join(viz.ThemeNames(), ", "))
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "arrayviz.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
