// Command algofit fits the learnable parameters of an adjustable signal
// processor so its output matches a ground-truth processor, by per-sample
// stochastic gradient descent over rendered audio blocks.
//
// The three processors are given as built-in specs (see the proc package),
// for example:
//
//	algofit --input sine:220 --gt gain:0.5 --adjustable gain:1.0
//	algofit --input noise:1,7 --gt onepole:0.3 --adjustable onepole:0.9 -l l1
//	algofit --config run.yaml --csv fit.csv
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-fit/dsp/core"
	"github.com/cwbudde/algo-fit/dsp/graph"
	"github.com/cwbudde/algo-fit/dsp/proc"
	"github.com/cwbudde/algo-fit/dsp/render"
	"github.com/cwbudde/algo-fit/fit/loss"
	"github.com/cwbudde/algo-fit/fit/params"
	"github.com/cwbudde/algo-fit/fit/report"
	"github.com/cwbudde/algo-fit/fit/sgd"
	"github.com/cwbudde/algo-fit/measure/residual"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := defaultRunConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:           "algofit",
		Short:         "Fit DSP processor parameters by streaming gradient descent",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags, configPath)
			if err != nil {
				return err
			}
			return runFit(cfg)
		},
	}

	cmd.Flags().StringVar(&flags.Input, "input", "", "input generator spec (e.g. sine:220)")
	cmd.Flags().StringVar(&flags.GroundTruth, "gt", "", "ground truth processor spec (e.g. gain:0.5)")
	cmd.Flags().StringVar(&flags.Adjustable, "adjustable", "", "adjustable processor spec (e.g. gain:1.0)")
	cmd.Flags().StringVarP(&flags.LossFunction, "lossfunction", "l", flags.LossFunction, "loss function: l1 or l2")
	cmd.Flags().Float64VarP(&flags.LearningRate, "learningrate", "r", flags.LearningRate, "gradient descent step size")
	cmd.Flags().Float64Var(&flags.Sensitivity, "sensitivity", flags.Sensitivity, "convergence threshold on the per-frame loss")
	cmd.Flags().IntVar(&flags.Iterations, "iterations", flags.Iterations, "maximum number of rendered blocks")
	cmd.Flags().IntVar(&flags.StreakLimit, "streak-limit", flags.StreakLimit, "consecutive low-loss frames before the run halts")
	cmd.Flags().Float64Var(&flags.SampleRate, "sample-rate", flags.SampleRate, "render sample rate in Hz")
	cmd.Flags().IntVar(&flags.BlockSize, "block-size", flags.BlockSize, "render block size in frames")
	cmd.Flags().StringVar(&flags.CSVPath, "csv", flags.CSVPath, "CSV log path, empty to disable")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress the per-frame console trace")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML run file; explicit flags override it")

	return cmd
}

// resolveConfig layers an optional YAML run file under the explicitly set
// flags.
func resolveConfig(cmd *cobra.Command, flags runConfig, configPath string) (runConfig, error) {
	if configPath == "" {
		return flags, nil
	}

	cfg, err := loadRunConfig(configPath)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("input") {
		cfg.Input = flags.Input
	}
	if cmd.Flags().Changed("gt") {
		cfg.GroundTruth = flags.GroundTruth
	}
	if cmd.Flags().Changed("adjustable") {
		cfg.Adjustable = flags.Adjustable
	}
	if cmd.Flags().Changed("lossfunction") {
		cfg.LossFunction = flags.LossFunction
	}
	if cmd.Flags().Changed("learningrate") {
		cfg.LearningRate = flags.LearningRate
	}
	if cmd.Flags().Changed("sensitivity") {
		cfg.Sensitivity = flags.Sensitivity
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = flags.Iterations
	}
	if cmd.Flags().Changed("streak-limit") {
		cfg.StreakLimit = flags.StreakLimit
	}
	if cmd.Flags().Changed("sample-rate") {
		cfg.SampleRate = flags.SampleRate
	}
	if cmd.Flags().Changed("block-size") {
		cfg.BlockSize = flags.BlockSize
	}
	if cmd.Flags().Changed("csv") {
		cfg.CSVPath = flags.CSVPath
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet = flags.Quiet
	}
	return cfg, nil
}

func runFit(cfg runConfig) error {
	if cfg.Input == "" || cfg.GroundTruth == "" || cfg.Adjustable == "" {
		return fmt.Errorf("--input, --gt and --adjustable are required")
	}

	lf, err := loss.Parse(cfg.LossFunction)
	if err != nil {
		return err
	}

	procCfg := core.ApplyProcessorOptions(
		core.WithSampleRate(cfg.SampleRate),
		core.WithBlockSize(cfg.BlockSize),
	)

	input, err := proc.Build(cfg.Input, procCfg)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	groundTruth, err := proc.Build(cfg.GroundTruth, procCfg)
	if err != nil {
		return fmt.Errorf("ground truth: %w", err)
	}
	adjustable, err := proc.Build(cfg.Adjustable, procCfg)
	if err != nil {
		return fmt.Errorf("adjustable: %w", err)
	}

	diffable, ok := adjustable.(proc.Differentiable)
	if !ok {
		return fmt.Errorf("adjustable processor %q has no differentiated variant", cfg.Adjustable)
	}
	differentiated, err := diffable.Differentiate()
	if err != nil {
		return fmt.Errorf("differentiate %q: %w", cfg.Adjustable, err)
	}

	fitGraph, err := graph.NewFitGraph(input, groundTruth, adjustable, differentiated)
	if err != nil {
		return err
	}

	ren, err := render.New(fitGraph,
		core.WithSampleRate(procCfg.SampleRate),
		core.WithBlockSize(procCfg.BlockSize),
	)
	if err != nil {
		return err
	}

	store, err := params.NewStore(adjustable, fitGraph)
	if err != nil {
		return err
	}

	slog.Info("fitting", "loss", lf.String(),
		"learning_rate", cfg.LearningRate, "sensitivity", cfg.Sensitivity,
		"iterations", cfg.Iterations, "block_size", procCfg.BlockSize)
	for _, p := range store.Snapshot() {
		slog.Info("learnable parameter", "address", p.Address, "value", p.Value)
	}

	col := residual.NewCollector()
	reporters := report.Multi{col}
	if !cfg.Quiet {
		reporters = append(reporters, report.NewConsole(os.Stdout))
	}
	if cfg.CSVPath != "" {
		csvRep, err := report.CreateCSV(cfg.CSVPath)
		if err != nil {
			return err
		}
		reporters = append(reporters, csvRep)
	}

	engine, err := sgd.New(ren, store, reporters, sgd.Config{
		Loss:         lf,
		LearningRate: cfg.LearningRate,
		Sensitivity:  cfg.Sensitivity,
		Iterations:   cfg.Iterations,
		StreakLimit:  cfg.StreakLimit,
	})
	if err != nil {
		return err
	}

	res, err := engine.Run()
	if err != nil {
		return err
	}

	slog.Info("run finished", "converged", res.Converged,
		"iterations", res.Iterations, "frames", res.Frames, "final_loss", res.FinalLoss)
	for _, p := range store.Snapshot() {
		slog.Info("fitted parameter", "address", p.Address, "value", p.Value)
	}

	sum, err := col.Summary(procCfg.SampleRate)
	if err != nil {
		return err
	}
	slog.Info("residual", "rms", sum.RMS, "peak", sum.Peak, "dominant_hz", sum.DominantHz)

	return nil
}
