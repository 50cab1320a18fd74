// Package main provides the Loci CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/loci-ml/loci/internal/bench"
	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

const version = "v0.1.0-dev"

func usage() {
	fmt.Println("Loci - Biologically Plausible Learning for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  bench      Run the synthetic regression benchmark")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Run 'loci bench -h' for benchmark flags.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Loci %s\n", version)
	case "bench":
		runBench(os.Args[2:])
	default:
		fmt.Printf("unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func runBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML experiment file (overrides the other flags)")
	sizes := fs.String("sizes", "6,16,4", "Comma-separated layer sizes, input first")
	acts := fs.String("acts", "tanh,linear", "Comma-separated per-layer activations")
	steps := fs.Int("steps", 300, "Number of training steps")
	noise := fs.Float64("noise", 0.05, "Label noise standard deviation")
	seed := fs.Uint("seed", 7, "Seed for teacher, data and model")
	logEvery := fs.Int("log-every", 25, "Log cadence in steps (0 disables)")
	fs.Parse(args)

	var cfg bench.Config
	if *configPath != "" {
		loaded, err := LoadExperiment(*configPath)
		if err != nil {
			log.Fatalf("load experiment: %v", err)
		}
		cfg = *loaded
	} else {
		var err error
		cfg, err = flagConfig(*sizes, *acts, *steps, *noise, uint32(*seed), *logEvery)
		if err != nil {
			log.Fatalf("bad flags: %v", err)
		}
	}

	fmt.Printf("Loci synthetic benchmark: sizes=%v steps=%d seed=%d\n", cfg.Sizes, cfg.Steps, cfg.Seed)

	res, err := bench.Run(cfg, func(sl bench.StepLog) {
		if sl.Audit != nil {
			fmt.Printf("step %4d  loss %.6f  avg %.6f  audit[%s] grad-norm %.6f\n",
				sl.Step, sl.Loss, sl.AvgLoss, sl.Audit.Kind, sl.Audit.Diag.GradNorm)
			return
		}
		fmt.Printf("step %4d  loss %.6f  avg %.6f\n", sl.Step, sl.Loss, sl.AvgLoss)
	})
	if err != nil {
		log.Fatalf("benchmark failed: %v", err)
	}

	fmt.Println()
	fmt.Printf("steps:        %d\n", res.Steps)
	fmt.Printf("initial loss: %.6f (first-window average)\n", res.InitialLoss)
	fmt.Printf("final loss:   %.6f (last-window average)\n", res.FinalLoss)
	if res.InitialLoss > 0 {
		fmt.Printf("ratio:        %.4f\n", res.FinalLoss/res.InitialLoss)
	}
}

// flagConfig assembles a run from the plain flags, using the reference
// hybrid (DFA primary, PC refine, EP audit).
func flagConfig(sizesCSV, actsCSV string, steps int, noise float64, seed uint32, logEvery int) (bench.Config, error) {
	parts := strings.Split(sizesCSV, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return bench.Config{}, fmt.Errorf("sizes: %w", err)
		}
		sizes = append(sizes, n)
	}

	actParts := strings.Split(actsCSV, ",")
	activations := make([]nn.Activation, 0, len(actParts))
	for _, p := range actParts {
		a, err := nn.ParseActivation(strings.TrimSpace(p))
		if err != nil {
			return bench.Config{}, err
		}
		activations = append(activations, a)
	}

	f := tensor.NewFactory()
	return bench.Config{
		Sizes:       sizes,
		Activations: activations,
		Steps:       steps,
		Noise:       noise,
		Seed:        seed,
		Hybrid:      bench.DefaultHybrid(f, sizes, seed),
		LogEvery:    logEvery,
	}, nil
}
