package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loci-ml/loci/internal/bench"
	"github.com/loci-ml/loci/internal/learner"
	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
	"github.com/loci-ml/loci/internal/trainer"
)

// experimentFile is the on-disk YAML schema of one benchmark experiment.
//
// Example:
//
//	sizes: [6, 16, 4]
//	activations: [tanh, linear]
//	steps: 300
//	noise: 0.05
//	seed: 7
//	log_every: 25
//	primary:
//	  kind: dfa
//	  lr: 0.02
//	  feedback_seed: 207
//	refine:
//	  every: 10
//	  kind: pc
//	  lr: 0.005
//	  settle: {t: 12, alpha: 0.05}
//	audit:
//	  every: 50
//	  kind: ep
//	  settle: {t: 15, alpha: 0.05, beta: 0.05}
type experimentFile struct {
	Sizes       []int        `yaml:"sizes"`
	Activations []string     `yaml:"activations"`
	Steps       int          `yaml:"steps"`
	Noise       float64      `yaml:"noise"`
	Seed        uint32       `yaml:"seed"`
	LogEvery    int          `yaml:"log_every"`
	Primary     *slotFile    `yaml:"primary"`
	Refine      *cadenceFile `yaml:"refine"`
	Audit       *cadenceFile `yaml:"audit"`
}

type slotFile struct {
	Kind         string      `yaml:"kind"`
	LR           float64     `yaml:"lr"`
	FeedbackSeed *uint32     `yaml:"feedback_seed"`
	Modulation   *float64    `yaml:"modulation"`
	Settle       *settleFile `yaml:"settle"`
}

type cadenceFile struct {
	Every    int `yaml:"every"`
	slotFile `yaml:",inline"`
}

type settleFile struct {
	T     int      `yaml:"t"`
	Alpha float64  `yaml:"alpha"`
	Beta  *float64 `yaml:"beta"`
}

// LoadExperiment reads a YAML experiment file into a benchmark config.
func LoadExperiment(path string) (*bench.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ef experimentFile
	if err := yaml.Unmarshal(raw, &ef); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ef.toConfig()
}

func (ef *experimentFile) toConfig() (*bench.Config, error) {
	if len(ef.Sizes) < 2 {
		return nil, fmt.Errorf("sizes: need at least input and output, got %v", ef.Sizes)
	}
	if ef.Primary == nil {
		return nil, fmt.Errorf("primary: required")
	}

	activations := make([]nn.Activation, 0, len(ef.Activations))
	for _, name := range ef.Activations {
		a, err := nn.ParseActivation(name)
		if err != nil {
			return nil, err
		}
		activations = append(activations, a)
	}

	f := tensor.NewFactory()
	primary, err := ef.Primary.toSlot(f, ef.Sizes)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}

	cfg := &bench.Config{
		Sizes:       ef.Sizes,
		Activations: activations,
		Steps:       ef.Steps,
		Noise:       ef.Noise,
		Seed:        ef.Seed,
		Hybrid:      trainer.HybridConfig{Primary: primary},
		LogEvery:    ef.LogEvery,
	}
	if ef.Refine != nil {
		slot, err := ef.Refine.toSlot(f, ef.Sizes)
		if err != nil {
			return nil, fmt.Errorf("refine: %w", err)
		}
		cfg.Hybrid.Refine = &trainer.Cadence{Every: ef.Refine.Every, Slot: slot}
	}
	if ef.Audit != nil {
		slot, err := ef.Audit.toSlot(f, ef.Sizes)
		if err != nil {
			return nil, fmt.Errorf("audit: %w", err)
		}
		cfg.Hybrid.Audit = &trainer.Cadence{Every: ef.Audit.Every, Slot: slot}
	}
	return cfg, nil
}

func (sf *slotFile) toSlot(f tensor.Factory, sizes []int) (trainer.Slot, error) {
	kind, err := learner.ParseKind(sf.Kind)
	if err != nil {
		return trainer.Slot{}, err
	}

	opts := learner.Options{LR: sf.LR}
	switch kind {
	case learner.FA:
		if sf.FeedbackSeed == nil {
			return trainer.Slot{}, fmt.Errorf("fa: feedback_seed required")
		}
		opts.Feedback = learner.NewChainedFeedback(f, sizes, *sf.FeedbackSeed)
	case learner.DFA:
		if sf.FeedbackSeed == nil {
			return trainer.Slot{}, fmt.Errorf("dfa: feedback_seed required")
		}
		opts.Feedback = learner.NewDirectFeedback(f, sizes, *sf.FeedbackSeed)
	case learner.PC, learner.EP:
		if sf.Settle == nil {
			return trainer.Slot{}, fmt.Errorf("%s: settle required", kind)
		}
		opts.Settle = &learner.Settle{T: sf.Settle.T, Alpha: sf.Settle.Alpha, Beta: sf.Settle.Beta}
	}
	if sf.Modulation != nil {
		opts.Modulation = &learner.Modulation{Scalar: *sf.Modulation}
	}
	return trainer.Slot{Kind: kind, Opts: opts}, nil
}
