package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/limaJavier/maxwalksat/internal/exact"
	"github.com/limaJavier/maxwalksat/pkg/sat"
)

type InstanceMetadata struct {
	Name              string
	Vars              int
	Clauses           int
	LiteralsPerClause int
	Satisfiable       bool
	Optimum           int // Minimum number of unsatisfied clauses
}

type BenchmarkResult struct {
	Instance InstanceMetadata
	Noise    float64
	Best     int // Unsatisfied clauses left by the best assignment, -1 when none was produced
	Duration time.Duration
	Retries  int
	Flips    int
	Outcome  sat.Outcome
}

// Gap is the distance between the best assignment found and the optimum.
func (r BenchmarkResult) Gap() int {
	if r.Best < 0 {
		return -1
	}
	return r.Best - r.Instance.Optimum
}

var (
	outFile   = pflag.StringP("out", "o", "benchmark_results.csv", "CSV file the results are written to")
	timeout   = pflag.DurationP("timeout", "t", time.Second, "time budget per solve")
	seed      = pflag.Uint64("seed", 1, "seed for instance generation and search")
	instances = pflag.IntP("instances", "n", 3, "instances generated per size")
	noises    = pflag.Float64Slice("noise", []float64{0, 0.1, 0.5}, "noise values to compare")
	dumpDir   = pflag.String("dump_dimacs", "", "directory the generated instances are written to as DIMACS files")
)

// Sizes kept small enough for the exact solver; ratios around 4.26 sit near the 3-SAT phase transition
var sizes = [][2]int{
	{10, 30},
	{15, 64},
	{20, 85},
	{25, 150},
}

func main() {
	pflag.Parse()
	logger := logrus.New()

	rng := rand.New(rand.NewPCG(*seed, *seed))
	tests := getInstances(rng, *instances)
	if *dumpDir != "" {
		if err := dumpInstances(*dumpDir, tests); err != nil {
			logger.Fatalf("cannot dump instances: %v", err)
		}
	}
	results := make([]BenchmarkResult, 0, len(tests)*len(*noises))

	for _, test := range tests {
		for _, noise := range *noises {
			logger.Infof("Benchmarking instance %q with noise %v", test.meta.Name, noise)

			solver, err := sat.NewWalkSATSolver(sat.WithSeed(*seed), sat.WithNoise(noise), sat.WithTimeout(*timeout))
			if err != nil {
				logger.Fatalf("cannot build solver: %v", err)
			}
			result, err := solver.Solve(context.Background(), test.formula)
			if err != nil {
				logger.WithError(err).Errorf("instance %q failed", test.meta.Name)
			}

			best := -1
			if result.HasAssignment() {
				best = test.formula.NumClauses - result.SatisfiedCount
			}
			results = append(results, BenchmarkResult{
				Instance: test.meta,
				Noise:    noise,
				Best:     best,
				Duration: result.Elapsed,
				Retries:  result.Retries,
				Flips:    result.Flips,
				Outcome:  result.Outcome,
			})
		}
	}

	file, err := os.Create(*outFile)
	if err != nil {
		logger.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	if err := toCsv(file, results); err != nil {
		logger.Fatalf("cannot write CSV file: %v", err)
	}
}

type instance struct {
	meta    InstanceMetadata
	formula sat.Formula
}

func getInstances(rng *rand.Rand, perSize int) []instance {
	tests := make([]instance, 0, len(sizes)*perSize)
	for _, size := range sizes {
		for i := range perSize {
			formula := sat.GenerateFormula(rng, size[0], size[1], 3)
			optimum, _ := exact.Optimum(formula)
			tests = append(tests, instance{
				meta: InstanceMetadata{
					Name:              fmt.Sprintf("random-%d-%d-%d", size[0], size[1], i),
					Vars:              formula.NumVars,
					Clauses:           formula.NumClauses,
					LiteralsPerClause: formula.LiteralsPerClause,
					Satisfiable:       exact.Satisfiable(formula),
					Optimum:           optimum,
				},
				formula: formula,
			})
		}
	}
	return tests
}

func dumpInstances(dir string, tests []instance) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, test := range tests {
		file, err := os.Create(filepath.Join(dir, test.meta.Name+".cnf"))
		if err != nil {
			return err
		}
		err = test.formula.WriteDIMACS(file)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func toCsv(out io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(out)

	header := []string{"Instance", "Vars", "Clauses", "Arity", "Satisfiable", "Optimum", "Noise", "Best", "Gap", "Duration(ms)", "Retries", "Flips", "Outcome"}
	records := lo.Map(results, func(result BenchmarkResult, _ int) []string {
		return []string{
			result.Instance.Name,
			fmt.Sprintf("%d", result.Instance.Vars),
			fmt.Sprintf("%d", result.Instance.Clauses),
			fmt.Sprintf("%d", result.Instance.LiteralsPerClause),
			fmt.Sprintf("%v", result.Instance.Satisfiable),
			fmt.Sprintf("%d", result.Instance.Optimum),
			fmt.Sprintf("%.2f", result.Noise),
			fmt.Sprintf("%d", result.Best),
			fmt.Sprintf("%d", result.Gap()),
			fmt.Sprintf("%d", result.Duration.Milliseconds()),
			fmt.Sprintf("%d", result.Retries),
			fmt.Sprintf("%d", result.Flips),
			result.Outcome.String(),
		}
	})

	if err := writer.WriteAll(append([][]string{header}, records...)); err != nil {
		return err
	}
	return writer.Error()
}
