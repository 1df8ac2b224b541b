package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/eulercauchy/internal/automation"
	"github.com/san-kum/eulercauchy/internal/config"
	"github.com/san-kum/eulercauchy/internal/dynamo"
	"github.com/san-kum/eulercauchy/internal/experiment"
	"github.com/san-kum/eulercauchy/internal/export"
	"github.com/san-kum/eulercauchy/internal/storage"
	"github.com/san-kum/eulercauchy/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	t0     float64
	h      float64
	tfinal float64
	y0     float64
	params []string

	configFile string
	preset     string
	noSave     bool

	outPath   string
	svgWidth  int
	svgHeight int
	width     int
	height    int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func main() {
	env := config.LoadEnv()

	rootCmd := newRootCmd(env)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(env config.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "eulercauchy",
		Short:        "fixed-step forward euler integration lab",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := env.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = config.ParseLogLevel(logLevel)
			}
			logger = config.NewLogger(cmd.ErrOrStderr(), level)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel.String(), "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate dy/dt = F(y) and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegration,
	}
	runCmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "start time")
	runCmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	runCmd.Flags().Float64Var(&tfinal, "tfinal", config.DefaultTFinal, "end time")
	runCmd.Flags().Float64Var(&y0, "y0", config.DefaultY0, "initial value")
	runCmd.Flags().StringArrayVar(&params, "param", nil, "model parameter as name=value (repeatable)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print the solution without saving the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&width, "width", viz.DefaultPlotWidth, "plot width")
	plotCmd.Flags().IntVar(&height, "height", viz.DefaultPlotHeight, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Fprintf(out, "  %-12s t0=%g h=%g tfinal=%g y0=%g\n", p, cfg.T0, cfg.H, cfg.TFinal, cfg.Y0)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list right-hand sides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tRHS")
			for _, name := range registry.ListModels() {
				desc, _ := registry.Describe(name)
				fmt.Fprintf(w, "%s\t%s\n", name, desc)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark integration throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a yaml scenario and save the runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one model parameter over a range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "start time")
	sweepCmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	sweepCmd.Flags().Float64Var(&tfinal, "tfinal", config.DefaultTFinal, "end time")
	sweepCmd.Flags().Float64Var(&y0, "y0", config.DefaultY0, "initial value")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "k", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -1.0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of parameter values")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, modelsCmd, benchCmd, scenarioCmd, sweepCmd)
	return rootCmd
}

// resolveConfig layers preset, config file and explicit flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.LoadWithBase(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 && fileCfg.Model != args[0] {
			logger.Warn("model argument overrides config file", "config", fileCfg.Model, "model", args[0])
			fileCfg.Model = args[0]
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	if flags.Changed("h") {
		cfg.H = h
	}
	if flags.Changed("tfinal") {
		cfg.TFinal = tfinal
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}

	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 && cfg.Params == nil {
		cfg.Params = make(map[string]float64, len(overrides))
	}
	for k, v := range overrides {
		cfg.Params[k] = v
	}

	return cfg, nil
}

func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: param %q is not name=value", dynamo.ErrInvalidArgument, kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: param %s: %v", dynamo.ErrInvalidArgument, name, err)
		}
		out[name] = v
	}
	return out, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	model, err := registry.GetModel(cfg.Model, cfg.Params)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Model:   cfg.Model,
		Params:  cfg.Params,
		Problem: cfg.Problem(),
	})
	if err := exp.Setup(model); err != nil {
		return err
	}

	logger.Debug("integrating", "model", cfg.Model, "t0", cfg.T0, "h", cfg.H, "tfinal", cfg.TFinal, "y0", cfg.Y0)
	start := time.Now()

	result, err := exp.Run()
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	out := cmd.OutOrStdout()

	if !result.IsValid() {
		fmt.Fprintln(out, viz.Warning.Render("solution diverged (non-finite values)"))
	}

	if noSave {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "T\tY")
		for i := range result.Values {
			fmt.Fprintf(w, "%g\t%g\n", result.Times[i], result.Values[i])
		}
		return w.Flush()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Model:   cfg.Model,
		Params:  exp.Params(),
		Problem: cfg.Problem(),
	}, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "dir", dataDir, "points", len(result.Values))

	fmt.Fprintln(out, viz.HeaderStyle.Render(fmt.Sprintf("%s run", cfg.Model)))
	fmt.Fprintln(out, viz.Metric("run id", runID))
	fmt.Fprintln(out, viz.Metric("completed in", elapsed.String()))
	fmt.Fprintln(out, viz.Metric("points", strconv.Itoa(len(result.Values))))
	fmt.Fprintln(out, viz.Metric("evaluations", strconv.Itoa(result.Evaluations)))
	fmt.Fprintln(out, viz.Metric("y(final)", strconv.FormatFloat(result.Final(), 'g', 10, 64)))
	fmt.Fprintln(out, viz.SparklineChart(result.Values, 40))

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tT0\tTFINAL\tH\tY0\tPOINTS\tFINAL")

	for _, run := range runs {
		final := strconv.FormatFloat(run.Final, 'g', 6, 64)
		if run.Diverged {
			final = "diverged"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%g\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Problem.T0,
			run.Problem.TFinal,
			run.Problem.H,
			run.Problem.Y0,
			run.Points,
			final,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if len(result.Values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.HeaderStyle.Render("run "+meta.ID))
	fmt.Fprintln(out, viz.Metric("model", meta.Model))
	fmt.Fprintln(out, viz.Metric("samples", strconv.Itoa(len(result.Values))))
	fmt.Fprintln(out)

	caption := fmt.Sprintf("y vs t, t in [%g, %g], h=%g", meta.Problem.T0, result.Times[len(result.Times)-1], meta.Problem.H)
	graph := viz.Plot(result.Values, caption, width, height)
	if graph == "" {
		return fmt.Errorf("no finite samples to plot")
	}
	fmt.Fprintln(out, graph)

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return export.JSON(cmd.OutOrStdout(), *meta, result)
	}
	if err := export.JSONFile(outPath, *meta, result); err != nil {
		return err
	}
	logger.Info("exported", "id", meta.ID, "path", outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return export.SVG(cmd.OutOrStdout(), result, svgWidth, svgHeight, "#00ff88")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.SVG(f, result, svgWidth, svgHeight, "#00ff88"); err != nil {
		return err
	}
	logger.Info("exported", "id", meta.ID, "path", outPath)
	return f.Close()
}

func benchModel(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	model, err := registry.GetModel(args[0], nil)
	if err != nil {
		return err
	}

	durations := []float64{1.0, 10.0}
	steps := []float64{0.01, 0.001, 0.0001}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TFINAL\tH\tPOINTS\tTIME\tPOINTS/SEC")

	for _, dur := range durations {
		for _, step := range steps {
			exp := experiment.New(experiment.Config{
				Model:   args[0],
				Problem: dynamo.Problem{T0: 0, H: step, TFinal: dur, Y0: 0.5},
			})
			if err := exp.Setup(model); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run()
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			points := len(result.Values)
			pointsPerSec := float64(points) / elapsed.Seconds()

			fmt.Fprintf(w, "%.1f\t%g\t%d\t%v\t%.0f\n",
				dur, step, points, elapsed, pointsPerSec)
		}
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	results, runErr := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tMODEL\tRUN ID\tPOINTS\tFINAL")
	for i, r := range results {
		runID, err := st.Save(storage.RunMetadata{
			Model:   r.Step.Model,
			Params:  r.Params,
			Problem: r.Step.Problem(),
		}, r.Result)
		if err != nil {
			return err
		}
		logger.Debug("scenario step saved", "step", i+1, "id", runID)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%g\n", i+1, r.Step.SaveAs, r.Step.Model, runID, len(r.Result.Values), r.Result.Final())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.ParameterSweep{
		Model:     args[0],
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Problem:   dynamo.Problem{T0: t0, H: h, TFinal: tfinal, Y0: y0},
	}

	results, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL\tMIN\tMAX\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		if r.Diverged {
			fmt.Fprintf(w, "%g\tdiverged\t-\t-\n", r.ParamValue)
			continue
		}
		fmt.Fprintf(w, "%g\t%g\t%g\t%g\n", r.ParamValue, r.Final, r.Min, r.Max)
	}
	return w.Flush()
}
