package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/limaJavier/maxwalksat/pkg/sat"
)

// Recorder collects per-file batch statistics on its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	solves      *prometheus.CounterVec
	parseErrors prometheus.Counter
	retries     prometheus.Counter
	flips       prometheus.Counter
	duration    prometheus.Histogram
	unsatisfied prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maxwalksat_solves_total",
			Help: "Number of finished solves by outcome",
		}, []string{"outcome"}),
		parseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maxwalksat_parse_errors_total",
			Help: "Number of problem files rejected by the parser",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maxwalksat_retries_total",
			Help: "Number of restarts across all solves",
		}),
		flips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maxwalksat_flips_total",
			Help: "Number of variable flips across all solves",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maxwalksat_solve_duration_seconds",
			Help:    "Wall-clock time spent per solve",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		unsatisfied: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "maxwalksat_last_unsatisfied_clauses",
			Help: "Unsatisfied clauses left by the best assignment of the last solve",
		}),
	}
	r.registry.MustRegister(r.solves, r.parseErrors, r.retries, r.flips, r.duration, r.unsatisfied)
	return r
}

func (r *Recorder) ObserveResult(formula sat.Formula, result sat.Result) {
	r.solves.WithLabelValues(result.Outcome.String()).Inc()
	r.retries.Add(float64(result.Retries))
	r.flips.Add(float64(result.Flips))
	r.duration.Observe(result.ElapsedSeconds())
	if result.HasAssignment() {
		r.unsatisfied.Set(float64(formula.NumClauses - result.SatisfiedCount))
	}
}

func (r *Recorder) ObserveParseError() {
	r.parseErrors.Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteToTextfile dumps the current values in the node-exporter textfile format.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
