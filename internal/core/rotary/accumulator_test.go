package rotary

import (
	"sync/atomic"
	"testing"
	"time"

	"talkwatch/internal/core/model"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	accumulator *Accumulator
	clock       *clockwork.FakeClock
	announced   *atomic.Int64
}

func newHarness(t *testing.T) harness {
	t.Helper()
	clock := clockwork.NewFakeClock()
	announced := &atomic.Int64{}
	accumulator := New(model.DefaultRotaryConfig(), clock, func() {
		announced.Add(1)
	})
	t.Cleanup(accumulator.Close)
	return harness{accumulator: accumulator, clock: clock, announced: announced}
}

func (h harness) settle(t *testing.T, flushes uint64) {
	t.Helper()
	h.clock.Advance(500 * time.Millisecond)
	require.Eventually(t, func() bool {
		return h.accumulator.Stats().Flushes == flushes
	}, time.Second, time.Millisecond)
}

func TestOnSample_ThresholdReachedAnnouncesOnce(t *testing.T) {
	h := newHarness(t)

	h.accumulator.OnSample(12)
	h.accumulator.OnSample(24)
	assert.Equal(t, 24.0, h.accumulator.CumulativeDelta())

	h.settle(t, 1)

	assert.Equal(t, int64(1), h.announced.Load())
	assert.Equal(t, 0.0, h.accumulator.CumulativeDelta())
	assert.Equal(t, uint64(1), h.accumulator.Stats().Triggers)
}

func TestOnSample_BelowThresholdDoesNotAnnounce(t *testing.T) {
	h := newHarness(t)

	h.accumulator.OnSample(10)
	h.accumulator.OnSample(23.99)

	h.settle(t, 1)

	assert.Equal(t, int64(0), h.announced.Load())
	assert.Equal(t, 0.0, h.accumulator.CumulativeDelta())
	assert.Equal(t, uint64(0), h.accumulator.Stats().Triggers)
}

func TestOnSample_CounterClockwiseRotationCounts(t *testing.T) {
	h := newHarness(t)

	h.accumulator.OnSample(-5)
	h.accumulator.OnSample(-30)

	h.settle(t, 1)

	assert.Equal(t, int64(1), h.announced.Load())
}

func TestOnSample_OpposingRotationCancelsOut(t *testing.T) {
	h := newHarness(t)

	h.accumulator.OnSample(20)
	h.accumulator.OnSample(0)
	h.accumulator.OnSample(-20)

	h.settle(t, 1)

	assert.Equal(t, int64(0), h.announced.Load())
}

func TestOnSample_RapidSamplesRescheduleFlush(t *testing.T) {
	h := newHarness(t)

	h.accumulator.OnSample(10)
	h.clock.Advance(400 * time.Millisecond)
	h.accumulator.OnSample(20)
	h.clock.Advance(400 * time.Millisecond)
	h.accumulator.OnSample(30)
	h.clock.Advance(400 * time.Millisecond)

	assert.Never(t, func() bool {
		return h.accumulator.Stats().Flushes > 0
	}, 50*time.Millisecond, 5*time.Millisecond)
	assert.True(t, h.accumulator.Pending())
	assert.Equal(t, 30.0, h.accumulator.CumulativeDelta())

	h.clock.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool {
		return h.accumulator.Stats().Flushes == 1
	}, time.Second, time.Millisecond)

	assert.Equal(t, int64(1), h.announced.Load())
	assert.False(t, h.accumulator.Pending())
}

func TestOnSample_EachBurstIsJudgedSeparately(t *testing.T) {
	h := newHarness(t)

	h.accumulator.OnSample(30)
	h.settle(t, 1)
	h.accumulator.OnSample(40)
	h.settle(t, 2)
	h.accumulator.OnSample(70)
	h.settle(t, 3)

	assert.Equal(t, int64(2), h.announced.Load())
	assert.Equal(t, 70.0, h.accumulator.LastPosition())
	assert.Equal(t, uint64(3), h.accumulator.Stats().Samples)
}

func TestClose_CancelsPendingFlush(t *testing.T) {
	h := newHarness(t)

	h.accumulator.OnSample(50)
	h.accumulator.Close()
	h.clock.Advance(time.Second)
	h.accumulator.OnSample(100)

	assert.Never(t, func() bool {
		return h.announced.Load() > 0
	}, 50*time.Millisecond, 5*time.Millisecond)
	assert.False(t, h.accumulator.Pending())
	assert.Equal(t, uint64(1), h.accumulator.Stats().Samples)
}

func TestUpdateConfig_AppliesNewThreshold(t *testing.T) {
	h := newHarness(t)
	h.accumulator.UpdateConfig(model.RotaryConfig{Threshold: 5, Debounce: 500 * time.Millisecond})

	h.accumulator.OnSample(6)
	h.settle(t, 1)

	assert.Equal(t, int64(1), h.announced.Load())
}

func TestNew_AppliesDefaults(t *testing.T) {
	accumulator := New(model.RotaryConfig{}, nil, nil)
	defer accumulator.Close()

	assert.Equal(t, 24.0, accumulator.config.Threshold)
	assert.Equal(t, 500*time.Millisecond, accumulator.config.Debounce)
}
