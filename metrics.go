package imputego

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordRound is called after each imputation round.
	RecordRound(round int, duration time.Duration)

	// RecordFit is called after each per-column model fit.
	RecordFit(column int, duration time.Duration)

	// RecordComplete is called after each full-matrix completion.
	// err is nil if successful.
	RecordComplete(duration time.Duration, err error)

	// RecordRowComplete is called after each out-of-sample row completion.
	RecordRowComplete(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRound(int, time.Duration)         {}
func (NoopMetricsCollector) RecordFit(int, time.Duration)           {}
func (NoopMetricsCollector) RecordComplete(time.Duration, error)    {}
func (NoopMetricsCollector) RecordRowComplete(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RoundCount            atomic.Int64
	RoundTotalNanos       atomic.Int64
	FitCount              atomic.Int64
	FitTotalNanos         atomic.Int64
	CompleteCount         atomic.Int64
	CompleteErrors        atomic.Int64
	CompleteTotalNanos    atomic.Int64
	RowCompleteCount      atomic.Int64
	RowCompleteErrors     atomic.Int64
	RowCompleteTotalNanos atomic.Int64
}

func (m *BasicMetricsCollector) RecordRound(_ int, d time.Duration) {
	m.RoundCount.Add(1)
	m.RoundTotalNanos.Add(int64(d))
}

func (m *BasicMetricsCollector) RecordFit(_ int, d time.Duration) {
	m.FitCount.Add(1)
	m.FitTotalNanos.Add(int64(d))
}

func (m *BasicMetricsCollector) RecordComplete(d time.Duration, err error) {
	m.CompleteCount.Add(1)
	m.CompleteTotalNanos.Add(int64(d))
	if err != nil {
		m.CompleteErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordRowComplete(d time.Duration, err error) {
	m.RowCompleteCount.Add(1)
	m.RowCompleteTotalNanos.Add(int64(d))
	if err != nil {
		m.RowCompleteErrors.Add(1)
	}
}

// metricsObserver adapts a MetricsCollector to the engine's observer
// interface.
type metricsObserver struct {
	mc MetricsCollector
}

func (o metricsObserver) RecordRound(round int, d time.Duration) { o.mc.RecordRound(round, d) }
func (o metricsObserver) RecordFit(column int, d time.Duration)  { o.mc.RecordFit(column, d) }
