package report

import (
	"fmt"
	"time"

	"fleet-stats/domain/asset"
	"fleet-stats/domain/metrics"
)

// Report is one render cycle: the selection it was built from, the metrics
// and the filtered rows with the column projection to show them in.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Selection   asset.Selection  `json:"selection"`
	Metrics     metrics.Snapshot `json:"metrics"`
	Columns     []string         `json:"columns"`
	Rows        []asset.Record   `json:"rows"`
}

// Sink renders or exports a report (console summary, CSV file, JSON snapshot).
type Sink interface {
	Emit(r Report) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r Report) error

func (f SinkFunc) Emit(r Report) error { return f(r) }

// Build filters records with sel at now and computes the metrics.
func Build(records []asset.Record, sel asset.Selection, policy metrics.Policy, columns []string, now time.Time) Report {
	filtered := asset.Filter(records, sel, now)
	return Report{
		GeneratedAt: now,
		Selection:   sel,
		Metrics:     metrics.Compute(filtered, policy),
		Columns:     columns,
		Rows:        filtered,
	}
}

// Publish hands r to every sink in order and stops at the first failure.
func Publish(r Report, sinks ...Sink) error {
	for i, s := range sinks {
		if err := s.Emit(r); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}
