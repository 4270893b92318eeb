package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/limaJavier/maxwalksat/internal/batch"
	"github.com/limaJavier/maxwalksat/internal/config"
	"github.com/limaJavier/maxwalksat/internal/metrics"
	"github.com/limaJavier/maxwalksat/internal/report"
	"github.com/limaJavier/maxwalksat/internal/signals"
	"github.com/limaJavier/maxwalksat/pkg/sat"
)

type options struct {
	configPath string
	config     config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{config: config.Default()}

	cmd := &cobra.Command{
		Use:          "maxwalksat",
		Short:        "Approximate MAX-SAT with the MaxWalkSAT local search",
		Long:         `Solves every problem file of a directory, printing the best assignment found for each within the time budget.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			logger := logrus.New()
			if cfg.Debug {
				logger.SetLevel(logrus.DebugLevel)
			}

			ctx, cancel := signals.Context(context.Background())
			defer cancel()

			return run(ctx, cfg, logger)
		},
	}

	o.bindFlags(cmd.Flags())
	return cmd
}

func (o *options) bindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.config.Directory, "absolute_path", "d", "", "directory holding the problem files to solve")
	flags.IntVarP(&o.config.TimeoutInSeconds, "timeout_in_seconds", "t", o.config.TimeoutInSeconds, "wall-clock budget per file, in seconds")
	flags.Float64VarP(&o.config.Noise, "noise", "p", o.config.Noise, "probability of a random move when no free move exists")
	flags.IntVarP(&o.config.MaxFlips, "max_flips", "m", o.config.MaxFlips, "flips per restart; when not set, no_clauses/2+1 is used")
	flags.Uint64Var(&o.config.Seed, "seed", 0, "random seed, 0 picks a fresh one per solve")
	flags.StringVar(&o.configPath, "config", "", "JSON configuration file; explicit flags take precedence")
	flags.BoolVar(&o.config.Debug, "debug", false, "use debug log level")
	flags.StringVar(&o.config.MetricsFile, "metrics_file", "", "write Prometheus metrics in textfile format to this path")
}

// resolve merges the optional config file with the flags the user actually set.
func (o *options) resolve(flags *pflag.FlagSet) (config.Config, error) {
	cfg := o.config
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		overrides := map[string]func(){
			"absolute_path":      func() { loaded.Directory = o.config.Directory },
			"timeout_in_seconds": func() { loaded.TimeoutInSeconds = o.config.TimeoutInSeconds },
			"noise":              func() { loaded.Noise = o.config.Noise },
			"max_flips":          func() { loaded.MaxFlips = o.config.MaxFlips },
			"seed":               func() { loaded.Seed = o.config.Seed },
			"debug":              func() { loaded.Debug = o.config.Debug },
			"metrics_file":       func() { loaded.MetricsFile = o.config.MetricsFile },
		}
		flags.Visit(func(flag *pflag.Flag) {
			if override, ok := overrides[flag.Name]; ok {
				override()
			}
		})
		cfg = loaded
	}
	if flags.Changed("max_flips") {
		cfg.PinMaxFlips = true
	}
	return cfg, cfg.Validate()
}

func solverOptions(cfg config.Config, logger logrus.FieldLogger) []sat.Option {
	options := []sat.Option{
		sat.WithTimeout(cfg.Timeout()),
		sat.WithNoise(cfg.Noise),
		sat.WithLogger(logger),
	}
	if cfg.PinMaxFlips {
		options = append(options, sat.WithMaxFlips(cfg.MaxFlips))
	}
	if cfg.Seed != 0 {
		options = append(options, sat.WithSeed(cfg.Seed))
	}
	return options
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	solver, err := sat.NewWalkSATSolver(solverOptions(cfg, logger)...)
	if err != nil {
		return errors.Wrap(err, "cannot build solver")
	}

	reporter := report.NewReporter(os.Stdout)
	recorder := metrics.NewRecorder()
	if err := batch.NewRunner(solver, reporter, recorder, logger).Run(ctx, cfg.Directory); err != nil {
		return err
	}
	reporter.Summary()

	if cfg.MetricsFile != "" {
		if err := recorder.WriteToTextfile(cfg.MetricsFile); err != nil {
			logger.WithError(err).Warn("cannot write metrics file")
		}
	}
	return nil
}
