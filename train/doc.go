// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for the hybrid training policy:
// a primary learning rule on every step, an optional "refine" rule on a
// cadence, and an optional non-mutating "audit" rule on a slower cadence.
//
// # Training Loop Pattern
//
//	cfg := train.HybridConfig{
//	    Primary: train.Slot{Kind: learn.DFA, Opts: learn.Options{
//	        LR:       0.02,
//	        Feedback: learn.NewDirectFeedback(f, model.Sizes(), seed),
//	    }},
//	    Refine: &train.Cadence{Every: 10, Slot: train.Slot{
//	        Kind: learn.PC,
//	        Opts: learn.Options{LR: 0.005, Settle: &learn.Settle{T: 12, Alpha: 0.05}},
//	    }},
//	}
//
//	for step := 0; step < steps; step++ {
//	    res, err := train.Step(f, model, nextBatch(), cfg, step)
//	    if err != nil {
//	        return err
//	    }
//	    log.Printf("step %d loss %.6f", step, res.Loss)
//	}
package train
