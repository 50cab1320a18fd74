// Package bench drives the framework on a reproducible synthetic
// regression task: a fixed random linear teacher generates noisy batches,
// and a hybrid configuration is trained against them for a bounded number
// of steps.
package bench

import (
	"fmt"

	"github.com/loci-ml/loci/internal/learner"
	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
	"github.com/loci-ml/loci/internal/trainer"
)

// movingWindow is the span of the moving-average loss reported in StepLog.
const movingWindow = 20

// LinearTeacher is a fixed random linear transform that labels inputs.
// Inputs and label noise stream from a seeded generator, so the whole
// data distribution is a pure function of the seed.
type LinearTeacher struct {
	M     *tensor.Tensor // [out, in]
	noise float64
	rng   *tensor.RNG
	in    int
}

// NewLinearTeacher builds a teacher with a Randn transform. noise is the
// standard deviation added to each label component.
func NewLinearTeacher(f tensor.Factory, in, out int, noise float64, seed uint32) *LinearTeacher {
	return &LinearTeacher{
		M:     f.Randn(tensor.Shape{Rows: out, Cols: in}, seed),
		noise: noise,
		rng:   tensor.NewRNG(seed + 1),
		in:    in,
	}
}

// Batch draws the next example: x ~ N(0, I), y = M·x + noise*eps.
func (lt *LinearTeacher) Batch() trainer.Batch {
	x := tensor.Zeros(tensor.Shape{Rows: lt.in, Cols: 1})
	for i := range x.Data() {
		x.Data()[i] = lt.rng.NormFloat64()
	}
	y := lt.M.MatMul(x)
	if lt.noise > 0 {
		for i := range y.Data() {
			y.Data()[i] += lt.noise * lt.rng.NormFloat64()
		}
	}
	return trainer.Batch{X: x, Y: y}
}

// Config describes one benchmark run.
type Config struct {
	// Sizes and Activations define the student model; Sizes[0] is the
	// teacher's input width and Sizes[len-1] its output width.
	Sizes       []int
	Activations []nn.Activation
	// Steps is the bounded step count of the run.
	Steps int
	// Noise is the teacher's label-noise standard deviation.
	Noise float64
	// Seed derives every random quantity of the run: teacher transform,
	// data stream and model initialization.
	Seed uint32
	// Hybrid selects the learners.
	Hybrid trainer.HybridConfig
	// LogEvery emits a StepLog every n steps (0 disables logging).
	LogEvery int
}

// StepLog is one logging-cadence snapshot handed to the observer.
type StepLog struct {
	Step    int
	Loss    float64
	AvgLoss float64 // moving average over the last movingWindow steps
	Audit   *trainer.AuditReport
}

// Result summarizes a finished run.
type Result struct {
	Steps        int
	InitialLoss  float64 // moving average over the first window
	FinalLoss    float64 // moving average over the last window
	FinalStep    float64 // raw loss of the last step
	AuditReports []*trainer.AuditReport
}

// Run trains a fresh model against a fresh teacher for cfg.Steps steps.
// observe may be nil; otherwise it is called on the logging cadence and on
// every step that produced an audit report.
func Run(cfg Config, observe func(StepLog)) (*Result, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("bench: steps must be > 0, got %d", cfg.Steps)
	}
	if err := cfg.Hybrid.Validate(); err != nil {
		return nil, err
	}

	f := tensor.NewFactory()
	in := cfg.Sizes[0]
	out := cfg.Sizes[len(cfg.Sizes)-1]
	teacher := NewLinearTeacher(f, in, out, cfg.Noise, cfg.Seed)
	model, err := nn.InitMLP(f, cfg.Sizes, cfg.Activations, cfg.Seed+100)
	if err != nil {
		return nil, err
	}

	res := &Result{Steps: cfg.Steps}
	window := make([]float64, 0, movingWindow)
	var firstWindowSum float64
	firstWindowN := 0

	for step := 0; step < cfg.Steps; step++ {
		batch := teacher.Batch()
		sr, err := trainer.TrainStep(f, model, batch, cfg.Hybrid, step)
		if err != nil {
			return nil, fmt.Errorf("bench: step %d: %w", step, err)
		}

		if len(window) == movingWindow {
			window = window[1:]
		}
		window = append(window, sr.Loss)
		if firstWindowN < movingWindow {
			firstWindowSum += sr.Loss
			firstWindowN++
		}
		if sr.Audit != nil {
			res.AuditReports = append(res.AuditReports, sr.Audit)
		}

		if observe != nil {
			logging := cfg.LogEvery > 0 && (step+1)%cfg.LogEvery == 0
			if logging || sr.Audit != nil {
				observe(StepLog{
					Step:    step,
					Loss:    sr.Loss,
					AvgLoss: mean(window),
					Audit:   sr.Audit,
				})
			}
		}
		res.FinalStep = sr.Loss
	}

	res.InitialLoss = firstWindowSum / float64(firstWindowN)
	res.FinalLoss = mean(window)
	return res, nil
}

// DefaultHybrid is the reference experiment: DFA as the primary rule,
// predictive coding as a periodic refiner and equilibrium propagation as a
// periodic non-mutating auditor.
func DefaultHybrid(f tensor.Factory, sizes []int, seed uint32) trainer.HybridConfig {
	beta := 0.05
	return trainer.HybridConfig{
		Primary: trainer.Slot{Kind: learner.DFA, Opts: learner.Options{
			LR:       0.02,
			Feedback: learner.NewDirectFeedback(f, sizes, seed+200),
		}},
		Refine: &trainer.Cadence{Every: 10, Slot: trainer.Slot{Kind: learner.PC, Opts: learner.Options{
			LR:     0.005,
			Settle: &learner.Settle{T: 12, Alpha: 0.05},
		}}},
		Audit: &trainer.Cadence{Every: 50, Slot: trainer.Slot{Kind: learner.EP, Opts: learner.Options{
			Settle: &learner.Settle{T: 15, Alpha: 0.05, Beta: &beta},
		}}},
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
