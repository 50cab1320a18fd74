// Package trainer orchestrates the hybrid training policy: a primary
// learning rule on every step, a secondary "refine" rule on a cadence, and
// a non-mutating "audit" rule on a slower cadence.
package trainer

import (
	"fmt"

	"github.com/loci-ml/loci/internal/learner"
	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/optim"
	"github.com/loci-ml/loci/internal/tensor"
)

// Slot binds a learning rule to the options it runs with.
type Slot struct {
	Kind learner.Kind
	Opts learner.Options
}

// Cadence is a Slot that fires every Every-th step.
//
// Cadences are 1-indexed over steps: with a 0-based stepIndex, Every=n
// fires on the n-th, 2n-th, ... steps, i.e. when (stepIndex+1)%n == 0.
type Cadence struct {
	Every int
	Slot
}

// HybridConfig selects the learners of one experiment. Primary is
// mandatory; Refine and Audit are optional cadenced slots.
type HybridConfig struct {
	Primary Slot
	Refine  *Cadence
	Audit   *Cadence
}

// Validate checks the structural parts of the configuration. Learner-level
// requirements (feedback matrices, settle options) are validated by the
// learners themselves at invocation.
func (c HybridConfig) Validate() error {
	if c.Refine != nil && c.Refine.Every <= 0 {
		return fmt.Errorf("trainer: refine.every must be > 0, got %d", c.Refine.Every)
	}
	if c.Audit != nil && c.Audit.Every <= 0 {
		return fmt.Errorf("trainer: audit.every must be > 0, got %d", c.Audit.Every)
	}
	return nil
}

// AuditReport carries the audit learner's diagnostics for one step. The
// audit pass never mutates weights.
type AuditReport struct {
	Kind      learner.Kind
	StepIndex int
	Diag      learner.Diagnostics
}

// StepResult is the outcome of one training step.
type StepResult struct {
	// Loss is the squared-error loss of the primary forward pass, before
	// any update of this step.
	Loss float64
	// Refined reports whether the refine slot fired on this step.
	Refined bool
	// Audit holds the audit diagnostics when the audit slot fired.
	Audit *AuditReport
}

// Batch is one training example: column vectors x [in, 1] and y [out, 1].
type Batch struct {
	X *tensor.Tensor
	Y *tensor.Tensor
}

// TrainStep runs one step of the hybrid policy.
//
// The primary learner always runs on a fresh forward cache and its
// gradients are applied by plain gradient descent. When the refine cadence
// fires, the forward pass is recomputed against the updated model and the
// refine learner's gradients are applied at its own rate. When the audit
// cadence fires, the audit learner runs on another fresh cache at learning
// rate 0: diagnostics only, no mutation.
//
// A learner invoked without its required options fails with a
// *learner.ConfigError; TrainStep propagates it immediately and never
// retries, so a misconfigured experiment is visible rather than silently
// degraded.
func TrainStep(f tensor.Factory, m *nn.MLP, batch Batch, cfg HybridConfig, stepIndex int) (StepResult, error) {
	if err := cfg.Validate(); err != nil {
		return StepResult{}, err
	}

	res := StepResult{}

	// Primary: forward, learn, descend.
	yHat, cache := m.Forward(batch.X)
	res.Loss = nn.MSE(yHat, batch.Y)
	dLdy := nn.MSEGrad(yHat, batch.Y)

	primary, err := learner.New(cfg.Primary.Kind)
	if err != nil {
		return StepResult{}, err
	}
	out, err := primary.Step(m, cache, dLdy, cfg.Primary.Opts)
	if err != nil {
		return StepResult{}, fmt.Errorf("trainer: primary %s: %w", cfg.Primary.Kind, err)
	}
	if err := optim.NewSGD(cfg.Primary.Opts.LR).Step(m, out.Grads); err != nil {
		return StepResult{}, err
	}

	// Refine: recompute the cache against the updated weights, then
	// descend at the refine slot's own rate.
	if cfg.Refine != nil && due(stepIndex, cfg.Refine.Every) {
		yHat, cache = m.Forward(batch.X)
		dLdy = nn.MSEGrad(yHat, batch.Y)

		refine, err := learner.New(cfg.Refine.Kind)
		if err != nil {
			return StepResult{}, err
		}
		out, err := refine.Step(m, cache, dLdy, cfg.Refine.Opts)
		if err != nil {
			return StepResult{}, fmt.Errorf("trainer: refine %s: %w", cfg.Refine.Kind, err)
		}
		if err := optim.NewSGD(cfg.Refine.Opts.LR).Step(m, out.Grads); err != nil {
			return StepResult{}, err
		}
		res.Refined = true
	}

	// Audit: fresh cache, learning rate 0, diagnostics only.
	if cfg.Audit != nil && due(stepIndex, cfg.Audit.Every) {
		yHat, cache = m.Forward(batch.X)
		dLdy = nn.MSEGrad(yHat, batch.Y)

		audit, err := learner.New(cfg.Audit.Kind)
		if err != nil {
			return StepResult{}, err
		}
		out, err := audit.Step(m, cache, dLdy, cfg.Audit.Opts)
		if err != nil {
			return StepResult{}, fmt.Errorf("trainer: audit %s: %w", cfg.Audit.Kind, err)
		}
		res.Audit = &AuditReport{
			Kind:      cfg.Audit.Kind,
			StepIndex: stepIndex,
			Diag:      out.Diag,
		}
	}

	return res, nil
}

// due reports whether a 1-indexed cadence fires at the 0-based stepIndex.
func due(stepIndex, every int) bool {
	return (stepIndex+1)%every == 0
}
