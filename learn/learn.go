// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package learn

import (
	"github.com/loci-ml/loci/internal/learner"
	"github.com/loci-ml/loci/internal/tensor"
)

// Kind identifies a learning rule.
type Kind = learner.Kind

// The closed set of learning rules.
const (
	FA  Kind = learner.FA
	DFA Kind = learner.DFA
	PC  Kind = learner.PC
	EP  Kind = learner.EP
)

// ParseKind maps a short name ("fa", "dfa", "pc", "ep") to its Kind.
func ParseKind(name string) (Kind, error) {
	return learner.ParseKind(name)
}

// Learner is the shared strategy contract all four rules implement.
type Learner = learner.Learner

// GradLayer holds the weight and bias gradients for one layer.
type GradLayer = learner.GradLayer

// Diagnostics carries per-step measurements emitted alongside gradients.
type Diagnostics = learner.Diagnostics

// Result is the output of one learner invocation.
type Result = learner.Result

// Options carries per-invocation configuration.
type Options = learner.Options

// Modulation is a scalar three-factor gate on the produced gradients.
type Modulation = learner.Modulation

// Settle configures the relaxation dynamics of PC and EP.
type Settle = learner.Settle

// ConfigError reports a rule invoked without its required options.
type ConfigError = learner.ConfigError

// New returns the learner implementing the given rule.
func New(kind Kind) (Learner, error) {
	return learner.New(kind)
}

// NewChainedFeedback builds the fixed random matrices FA needs, one per
// hidden layer, chained backward from the layer above.
func NewChainedFeedback(f tensor.Factory, sizes []int, seed uint32) []*tensor.Tensor {
	return learner.NewChainedFeedback(f, sizes, seed)
}

// NewDirectFeedback builds the fixed random matrices DFA needs, one per
// hidden layer, each projecting straight from the output error.
func NewDirectFeedback(f tensor.Factory, sizes []int, seed uint32) []*tensor.Tensor {
	return learner.NewDirectFeedback(f, sizes, seed)
}
