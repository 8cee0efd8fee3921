package convert

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/conneroisu/s2l/internal/types"
)

func TestMetricsRecordConversion(t *testing.T) {
	m := NewMetrics()

	ok := types.Success("a.svg", "a.liquid")
	ok.Duration = 10 * time.Millisecond
	failed := types.Failure("b.svg", types.FailureIO, fmt.Errorf("disk full"))
	failed.Duration = 30 * time.Millisecond

	m.RecordConversion(ok)
	m.RecordConversion(failed)

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.TotalFiles)
	assert.Equal(t, int64(1), snap.ConvertedFiles)
	assert.Equal(t, int64(1), snap.FailedFiles)
	assert.Equal(t, int64(1), snap.FailuresByKind[types.FailureIO])
	assert.Equal(t, 40*time.Millisecond, snap.TotalDuration)
	assert.Equal(t, 20*time.Millisecond, snap.AverageDuration)
	assert.InDelta(t, 50.0, m.GetSuccessRate(), 0.001)
}

func TestMetricsRecordBatch(t *testing.T) {
	m := NewMetrics()

	m.RecordBatch(types.ConversionSummary{Elapsed: time.Second})
	m.RecordBatch(types.ConversionSummary{Elapsed: 2 * time.Second})

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.Batches)
	assert.Equal(t, 2*time.Second, snap.LastBatch)
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.RecordConversion(types.Failure("a.svg", types.FailureCancelled, nil))

	snap := m.GetSnapshot()
	snap.FailuresByKind[types.FailureCancelled] = 99

	assert.Equal(t, int64(1), m.GetSnapshot().FailuresByKind[types.FailureCancelled])
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.RecordConversion(types.Success("a.svg", "a.liquid"))
				_ = m.GetSnapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), m.GetSnapshot().TotalFiles)
	assert.InDelta(t, 100.0, m.GetSuccessRate(), 0.001)
}
