// Package metrics records per-run lint statistics in a private Prometheus
// registry and writes them in the text exposition format, for scraping by a
// node_exporter textfile collector or for CI artifacts.
package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fsutil"
	"github.com/yaklabco/gojslint/pkg/lint"
)

const namespace = "gojslint"

// Recorder holds the run metrics. All methods are safe for concurrent use;
// a nil Recorder ignores observations.
type Recorder struct {
	registry *prometheus.Registry

	FilesTotal      *prometheus.CounterVec
	ProblemsTotal   *prometheus.CounterVec
	FixedFilesTotal prometheus.Counter
	FixLimitTotal   prometheus.Counter
	FixPasses       prometheus.Histogram
	LintDuration    prometheus.Histogram
}

// New returns a Recorder backed by a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		FilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files linted, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ProblemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "problems_total",
			Help:      "Problems reported, by rule and severity.",
		}, []string{"rule", "severity"}),
		FixedFilesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixed_files_total",
			Help:      "Files whose text was changed by autofix.",
		}),
		FixLimitTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fix_limit_reached_total",
			Help:      "Files whose autofix stopped at the pass cap.",
		}),
		FixPasses: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fix_passes",
			Help:      "Applied fix passes per file.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		}),
		LintDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lint_duration_seconds",
			Help:      "Wall time spent linting one file.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
}

// ObserveResult records one linted file.
func (r *Recorder) ObserveResult(kind string, result *lint.Result, elapsed time.Duration) {
	if r == nil || result == nil {
		return
	}
	r.FilesTotal.WithLabelValues(kind, "linted").Inc()
	r.LintDuration.Observe(elapsed.Seconds())
	r.FixPasses.Observe(float64(result.FixPasses))
	if result.Fixed {
		r.FixedFilesTotal.Inc()
	}
	if result.FixLimitReached {
		r.FixLimitTotal.Inc()
	}
	for _, msg := range result.Messages {
		rule := msg.RuleID
		if rule == "" {
			rule = "none"
		}
		r.ProblemsTotal.WithLabelValues(rule, severityLabel(msg)).Inc()
	}
}

// ObserveFailure records a file that could not be linted.
func (r *Recorder) ObserveFailure(kind string) {
	if r == nil {
		return
	}
	r.FilesTotal.WithLabelValues(kind, "failed").Inc()
}

func severityLabel(p lint.Problem) string {
	if p.Fatal {
		return "fatal"
	}
	if p.Severity == config.SeverityError {
		return "error"
	}
	return "warning"
}

// Write encodes every metric family in the Prometheus text format.
func (r *Recorder) Write(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("encode %s: %w", family.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes the metrics to path atomically.
func (r *Recorder) WriteFile(ctx context.Context, path string) error {
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, path, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
