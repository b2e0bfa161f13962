package main

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/boxsim/internal/automation"
	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/export"
	"github.com/san-kum/boxsim/internal/metrics"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/replay"
	"github.com/san-kum/boxsim/internal/session"
	"github.com/san-kum/boxsim/internal/storage"
	"github.com/san-kum/boxsim/internal/viz"
	"github.com/san-kum/boxsim/internal/watch"
)

var (
	dataDir    string
	configFile string
	preset     string

	maxFrame    int
	intervalMs  int
	gravity     float64
	restitution float64
	friction    float64
	mass        float64

	watchConfig bool
	runName     string
	saveRun     bool

	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	atFrame    int

	mcParams       []string
	mcTrials       int
	mcPerturbation float64
	seed           int64

	svgEvery int
	svgScale float64
)

// main registers the commands and runs the live view when no subcommand
// is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "boxsim",
		Short: "keyframed 2d rigid-body simulator",
		RunE:  runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".boxsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&maxFrame, "frames", config.DefaultMaxFrame, "last frame of the timeline")
	pf.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "tick interval in milliseconds")
	pf.Float64Var(&gravity, "gravity", 0.3, "gravity")
	pf.Float64Var(&restitution, "restitution", 0.999, "restitution")
	pf.Float64Var(&friction, "friction", 0.3, "friction")
	pf.Float64Var(&mass, "mass", 1, "mass")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive playback and authoring",
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&watchConfig, "watch", false, "reload --config when it changes")
	rootCmd.Flags().AddFlag(liveCmd.Flags().Lookup("watch"))

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "play the timeline headless and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}

	scrubCmd := &cobra.Command{
		Use:   "scrub [frame]",
		Short: "reconstruct and print the state at a frame",
		Args:  cobra.ExactArgs(1),
		RunE:  scrubFrame,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a run's path and body outlines as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgEvery, "every", 30, "frames between body outlines")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 1, "pixels per arena unit")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a yaml authoring script",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&saveRun, "save", false, "play the authored timeline and store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep a parameter's frame 0 value",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value (display units)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value (display units)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&atFrame, "at", 300, "frame to reconstruct")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb frame 0 values at random and check the outcome",
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().StringSliceVar(&mcParams, "params", []string{"vx", "vy", "angular_velocity"}, "parameters to perturb")
	mcCmd.Flags().IntVar(&mcTrials, "trials", 50, "number of trials")
	mcCmd.Flags().Float64Var(&mcPerturbation, "perturbation", 0.05, "perturbation as a fraction of each bounds range")
	mcCmd.Flags().IntVar(&atFrame, "at", 300, "frame to reconstruct")
	mcCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "list parameters and their bounds",
		RunE:  listParams,
	}

	rootCmd.AddCommand(liveCmd, runCmd, scrubCmd, listCmd, plotCmd, exportCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, scriptCmd, sweepCmd, mcCmd, presetsCmd, paramsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the preset, the config file and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.MaxFrame = maxFrame
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("gravity") {
		cfg.Body.Gravity = gravity
	}
	if flags.Changed("restitution") {
		cfg.Body.Restitution = restitution
	}
	if flags.Changed("friction") {
		cfg.Body.Friction = friction
	}
	if flags.Changed("mass") {
		cfg.Body.Mass = mass
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg)
	if err != nil {
		return err
	}

	if !watchConfig {
		return viz.Run(sess, nil, nil)
	}
	if configFile == "" {
		return fmt.Errorf("--watch needs --config")
	}

	w, err := watch.NewWatcher(configFile)
	if err != nil {
		return err
	}
	defer w.Close()

	base := config.DefaultConfig()
	if preset != "" {
		base = config.GetPreset(preset)
	}
	applyFlags(cmd, base)
	reloads, errs := watch.Configs(w, base)
	return viz.Run(sess, reloads, errs)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// record plays the session's timeline with the standard metrics attached
// and stores the result.
func record(sess *session.Session, name string) error {
	for _, m := range metrics.Standard(sess.Arena(), sess.Config().RestThresholds()) {
		sess.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("playing %d frames...\n", sess.MaxFrame())
	start := time.Now()
	trace, err := sess.Playback(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	values := metrics.Values(sess.Metrics())
	runID, err := st.Save(name, sess.Store().Len(), trace, values)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", trace.Len())
	fmt.Printf("contacts: %d\n", trace.Contacts())
	fmt.Println("\nmetrics:")
	for _, name := range slices.Sorted(maps.Keys(values)) {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg)
	if err != nil {
		return err
	}

	name := "run"
	if preset != "" {
		name = preset
	}
	if len(args) == 1 {
		name = args[0]
	}
	return record(sess, name)
}

func scrubFrame(cmd *cobra.Command, args []string) error {
	frame, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid frame %q: %w", args[0], err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg)
	if err != nil {
		return err
	}

	got := sess.Seek(frame)
	if got != frame {
		fmt.Printf("frame %d clamped to %d\n", frame, got)
	}
	return printState(sess)
}

func printState(sess *session.Session) error {
	state := sess.State()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FRAME\t%d\n", sess.Frame())
	for _, k := range param.All() {
		fmt.Fprintf(w, "%s\t%.4f\n", strings.ToUpper(k.String()), k.ToDisplay(param.FromState(k, state)))
	}
	fmt.Fprintf(w, "ENERGY\t%.4f\n", state.Energy(sess.Arena()))
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFRAMES\tCONTACTS\tKEYS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Contacts,
			run.Authored,
		)
	}

	return w.Flush()
}

var plotKinds = []param.Kind{param.X, param.Y, param.VX, param.VY, param.Orientation, param.AngularVelocity}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	for _, k := range plotKinds {
		fmt.Println(asciigraph.Plot(column(frames, k),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(k.Label()),
		))
		fmt.Println()
	}
	return nil
}

func column(frames []replay.Frame, k param.Kind) []float64 {
	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = k.ToDisplay(param.FromState(k, f.State))
	}
	return data
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	opts := export.DefaultSVGOptions()
	opts.Every = svgEvery
	opts.Scale = svgScale
	return export.TraceToSVG(os.Stdout, body.Arena{Width: meta.ArenaW, Height: meta.ArenaH}, frames, opts)
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}

	var cfg *config.Config
	if script.Preset != "" && preset == "" && configFile == "" {
		if cfg, err = script.Config(); err != nil {
			return err
		}
		applyFlags(cmd, cfg)
	} else if cfg, err = loadConfig(cmd); err != nil {
		return err
	}

	sess, err := session.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("script: %s\n", script.Name)
	if script.Description != "" {
		fmt.Printf("%s\n", script.Description)
	}
	results, err := automation.Run(ctx, sess, script, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tOP\tFRAME\tX\tY\tVX\tVY")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.2f\t%.3f\t%.3f\n",
			r.Index+1, r.Op, r.Frame, r.State.X, r.State.Y, r.State.VX, r.State.VY)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nauthored keys: %d\n", sess.Store().Len())

	if !saveRun {
		return nil
	}
	name := script.Name
	if name == "" {
		name = "script"
	}
	return record(sess, name)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Param: args[0],
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
		Frame: atFrame,
	}
	results, err := automation.RunSweep(ctx, cfg, sweep, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\tX\tY\tVX\tVY\tENERGY\n", strings.ToUpper(args[0]))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.2f\t%.2f\t%.3f\t%.3f\t%.4f\n",
			r.ParamValue, r.FinalState.X, r.FinalState.Y, r.FinalState.VX, r.FinalState.VY, r.Energy)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	mc := &automation.MonteCarloConfig{
		Params:       mcParams,
		Perturbation: mcPerturbation,
		NumTrials:    mcTrials,
		Frame:        atFrame,
		Seed:         seed,
	}
	results, err := automation.RunMonteCarlo(ctx, cfg, mc, os.Stdout)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("inside arena: %d\n", stable)
	fmt.Printf("escaped or non-finite: %d\n", unstable)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tMASS\tRESTITUTION\tFRICTION\tGRAVITY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%gx%g\t%g\t%g\t%g\t%g\n",
			name, p.Body.Width, p.Body.Height, p.Body.Mass, p.Body.Restitution, p.Body.Friction, p.Body.Gravity)
	}
	return w.Flush()
}

func listParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bounds := cfg.ParamBounds()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tKIND\tMIN\tMAX\tSTEP")
	for _, k := range param.All() {
		kind := "physical"
		if k.Kinematic() {
			kind = "kinematic"
		}
		b := bounds[k]
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\n", k, k.Label(), kind, b.Min, b.Max, b.Step)
	}
	return w.Flush()
}
