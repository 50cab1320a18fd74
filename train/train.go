// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
	"github.com/loci-ml/loci/internal/trainer"
)

// Slot binds a learning rule to the options it runs with.
type Slot = trainer.Slot

// Cadence is a Slot that fires every Every-th step.
type Cadence = trainer.Cadence

// HybridConfig selects the learners of one experiment.
type HybridConfig = trainer.HybridConfig

// Batch is one training example: column vectors x [in, 1] and y [out, 1].
type Batch = trainer.Batch

// StepResult is the outcome of one training step.
type StepResult = trainer.StepResult

// AuditReport carries the audit learner's diagnostics for one step.
type AuditReport = trainer.AuditReport

// Step runs one step of the hybrid policy against the model.
func Step(f tensor.Factory, m *nn.MLP, batch Batch, cfg HybridConfig, stepIndex int) (StepResult, error) {
	return trainer.TrainStep(f, m, batch, cfg, stepIndex)
}
