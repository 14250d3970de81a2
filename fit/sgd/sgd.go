// Package sgd implements the streaming gradient-descent engine. It pulls
// blocks of audio through a fitting graph and walks the frames in strict
// order: each frame's loss decides whether the parameters step, and every
// step is pushed to the live processors before the next frame is consumed,
// so later frames within the same block already reflect it.
package sgd

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fit/dsp/graph"
	"github.com/cwbudde/algo-fit/dsp/render"
	"github.com/cwbudde/algo-fit/fit/loss"
	"github.com/cwbudde/algo-fit/fit/params"
	"github.com/cwbudde/algo-fit/fit/report"
)

// ErrConfig is returned for invalid engine configuration.
var ErrConfig = errors.New("sgd: invalid config")

// ErrChannelLayout is returned when the rendered graph exposes fewer
// channels than the fitting layout requires.
var ErrChannelLayout = errors.New("sgd: rendered graph does not match fitting channel layout")

// Config holds the optimizer settings.
type Config struct {
	// Loss selects the per-sample loss function.
	Loss loss.Function

	// LearningRate is the fixed step size. Must be positive.
	LearningRate float64

	// Sensitivity is the convergence threshold: frames whose loss does not
	// exceed it skip the parameter step. Must not be negative.
	Sensitivity float64

	// Iterations is the block budget. Must be positive.
	Iterations int

	// StreakLimit is the number of consecutive low-loss frames after which
	// the run halts. Must be positive.
	StreakLimit int
}

// DefaultConfig returns the default optimizer settings.
func DefaultConfig() Config {
	return Config{
		Loss:         loss.L2,
		LearningRate: 0.1,
		Sensitivity:  1e-4,
		Iterations:   1000,
		StreakLimit:  20,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("%w: learning rate %v must be positive", ErrConfig, c.LearningRate)
	}
	if c.Sensitivity < 0 {
		return fmt.Errorf("%w: sensitivity %v must not be negative", ErrConfig, c.Sensitivity)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iteration budget %d must be positive", ErrConfig, c.Iterations)
	}
	if c.StreakLimit <= 0 {
		return fmt.Errorf("%w: streak limit %d must be positive", ErrConfig, c.StreakLimit)
	}
	return nil
}

// state is the engine's position in its run lifecycle. The stopped state is
// terminal and checked after every frame, so the low-loss exit abandons the
// remaining frames of the current block and all remaining blocks at once.
type state int

const (
	running state = iota
	stopped
)

// Result summarizes a completed run.
type Result struct {
	// Iterations is the number of blocks rendered.
	Iterations int

	// Frames is the number of frames processed.
	Frames int

	// Converged reports whether the run ended on the low-loss streak rather
	// than by exhausting the iteration budget.
	Converged bool

	// FinalLoss is the loss of the last processed frame.
	FinalLoss float64
}

// Engine is the single-threaded optimizer loop.
type Engine struct {
	cfg   Config
	ren   *render.Renderer
	store *params.Store
	rep   report.Reporter

	state  state
	streak int
	derivs []float64
}

// New creates an engine over a renderer whose processor follows the fitting
// channel layout: ground truth, learned, then one derivative channel per
// store parameter. A nil reporter discards the trace.
func New(ren *render.Renderer, store *params.Store, rep report.Reporter, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if got, want := len(ren.Output()), graph.ChanDerivative+store.Len(); got != want {
		return nil, fmt.Errorf("%w: %d channels, want %d for %d parameters",
			ErrChannelLayout, got, want, store.Len())
	}
	if rep == nil {
		rep = report.Nop{}
	}
	return &Engine{
		cfg:    cfg,
		ren:    ren,
		store:  store,
		rep:    rep,
		derivs: make([]float64, store.Len()),
	}, nil
}

// Run executes the optimizer until the low-loss streak exceeds the limit or
// the iteration budget is exhausted. No error is recoverable: the first
// failure aborts the run.
func (e *Engine) Run() (Result, error) {
	if err := e.rep.Begin(e.store.Addresses()); err != nil {
		_ = e.rep.Close()
		return Result{}, err
	}

	var res Result
	for i := 1; i <= e.cfg.Iterations && e.state == running; i++ {
		e.ren.Render()
		out := e.ren.Output()
		res.Iterations = i

		for frame := 0; frame < e.ren.BlockSize() && e.state == running; frame++ {
			lossValue, err := e.step(i, out, frame)
			if err != nil {
				_ = e.rep.Close()
				return res, err
			}
			res.Frames++
			res.FinalLoss = lossValue
		}
	}

	res.Converged = e.state == stopped
	return res, e.rep.Close()
}

// step processes one frame: evaluate the loss, step or skip the parameters,
// report, and check the stopping rule.
func (e *Engine) step(iteration int, out [][]float64, frame int) (float64, error) {
	delta := out[graph.ChanLearned][frame] - out[graph.ChanGroundTruth][frame]
	lossValue := e.cfg.Loss.Loss(delta)

	updated := lossValue > e.cfg.Sensitivity
	if updated {
		e.streak = 0

		for k := 0; k < e.store.Len(); k++ {
			e.derivs[k] = out[graph.ChanDerivative+k][frame]
			e.store.SetGradient(k, e.cfg.Loss.Gradient(delta, e.derivs[k]))
		}
		for k := 0; k < e.store.Len(); k++ {
			p := e.store.At(k)
			if err := e.store.Update(k, p.Value-e.cfg.LearningRate*p.Gradient); err != nil {
				return lossValue, err
			}
		}
	} else {
		e.streak++
	}

	err := e.rep.Frame(report.Frame{
		Iteration:   iteration,
		GroundTruth: out[graph.ChanGroundTruth][frame],
		Learned:     out[graph.ChanLearned][frame],
		Loss:        lossValue,
		Updated:     updated,
		Params:      e.store.Snapshot(),
		Derivs:      e.derivs,
	})
	if err != nil {
		return lossValue, err
	}

	if e.streak > e.cfg.StreakLimit {
		e.state = stopped
	}
	return lossValue, nil
}
