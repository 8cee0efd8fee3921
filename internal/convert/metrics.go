package convert

import (
	"sync"
	"time"

	"github.com/conneroisu/s2l/internal/types"
)

// Metrics tracks conversion totals across batches. The watch loop keeps one
// instance for the whole session.
type Metrics struct {
	Batches         int64
	TotalFiles      int64
	ConvertedFiles  int64
	FailedFiles     int64
	FailuresByKind  map[types.FailureKind]int64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	LastBatch       time.Duration
	mutex           sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{FailuresByKind: make(map[types.FailureKind]int64)}
}

// RecordConversion records one per-file result.
func (m *Metrics) RecordConversion(result types.ConversionResult) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.TotalFiles++
	m.TotalDuration += result.Duration

	if result.OK() {
		m.ConvertedFiles++
	} else {
		m.FailedFiles++
		m.FailuresByKind[result.Failure]++
	}

	m.AverageDuration = m.TotalDuration / time.Duration(m.TotalFiles)
}

// RecordBatch records the end of a batch.
func (m *Metrics) RecordBatch(summary types.ConversionSummary) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.Batches++
	m.LastBatch = summary.Elapsed
}

// GetSnapshot returns a copy of the current metrics.
func (m *Metrics) GetSnapshot() Metrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	byKind := make(map[types.FailureKind]int64, len(m.FailuresByKind))
	for k, v := range m.FailuresByKind {
		byKind[k] = v
	}
	return Metrics{
		Batches:         m.Batches,
		TotalFiles:      m.TotalFiles,
		ConvertedFiles:  m.ConvertedFiles,
		FailedFiles:     m.FailedFiles,
		FailuresByKind:  byKind,
		TotalDuration:   m.TotalDuration,
		AverageDuration: m.AverageDuration,
		LastBatch:       m.LastBatch,
	}
}

// GetSuccessRate returns the success rate as a percentage
func (m *Metrics) GetSuccessRate() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.TotalFiles == 0 {
		return 0.0
	}
	return float64(m.ConvertedFiles) / float64(m.TotalFiles) * 100.0
}
