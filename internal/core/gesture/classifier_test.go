package gesture

import (
	"sync/atomic"
	"testing"
	"time"

	"talkwatch/internal/core/model"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters struct {
	starts  atomic.Int64
	resets  atomic.Int64
	doubles atomic.Int64
}

func newTestClassifier(t *testing.T) (*Classifier, *clockwork.FakeClock, *counters) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	counts := &counters{}
	classifier := New(model.DefaultGestureConfig(), clock, Handlers{
		OnStart:     func() { counts.starts.Add(1) },
		OnReset:     func() { counts.resets.Add(1) },
		OnDoubleTap: func() { counts.doubles.Add(1) },
	})
	return classifier, clock, counts
}

func TestRelease_ShortHoldStarts(t *testing.T) {
	classifier, clock, counts := newTestClassifier(t)

	classifier.Press()
	clock.Advance(600 * time.Millisecond)
	kind, ok := classifier.Release()

	require.True(t, ok)
	assert.Equal(t, KindShortPress, kind)
	assert.Equal(t, int64(1), counts.starts.Load())
	assert.Equal(t, int64(0), counts.resets.Load())
}

func TestPress_LongHoldResetsBeforeRelease(t *testing.T) {
	classifier, clock, counts := newTestClassifier(t)

	classifier.Press()
	clock.Advance(1500 * time.Millisecond)

	require.Eventually(t, func() bool {
		return counts.resets.Load() == 1
	}, time.Second, time.Millisecond)

	_, ok := classifier.Release()
	assert.False(t, ok)
	assert.Equal(t, int64(0), counts.starts.Load())
	assert.Equal(t, int64(1), counts.resets.Load())
}

func TestRelease_QuickTapsWithinWindowDoubleTap(t *testing.T) {
	classifier, clock, counts := newTestClassifier(t)

	classifier.Press()
	clock.Advance(50 * time.Millisecond)
	_, ok := classifier.Release()
	assert.False(t, ok)

	clock.Advance(100 * time.Millisecond)
	classifier.Press()
	clock.Advance(50 * time.Millisecond)
	kind, ok := classifier.Release()

	require.True(t, ok)
	assert.Equal(t, KindDoubleTap, kind)
	assert.Equal(t, int64(1), counts.doubles.Load())
}

func TestRelease_SlowTapsAreNotDoubleTap(t *testing.T) {
	classifier, clock, counts := newTestClassifier(t)

	classifier.Press()
	clock.Advance(50 * time.Millisecond)
	classifier.Release()

	clock.Advance(time.Second)
	classifier.Press()
	clock.Advance(50 * time.Millisecond)
	_, ok := classifier.Release()

	assert.False(t, ok)
	assert.Equal(t, int64(0), counts.doubles.Load())
}

func TestRelease_ThirdTapStartsNewPair(t *testing.T) {
	classifier, clock, counts := newTestClassifier(t)

	for i := 0; i < 3; i++ {
		classifier.Press()
		clock.Advance(20 * time.Millisecond)
		classifier.Release()
		clock.Advance(20 * time.Millisecond)
	}

	assert.Equal(t, int64(1), counts.doubles.Load())
}

func TestCancel_DropsPressAndPendingTap(t *testing.T) {
	classifier, clock, counts := newTestClassifier(t)

	classifier.Press()
	clock.Advance(20 * time.Millisecond)
	classifier.Release()
	classifier.Press()
	classifier.Cancel()
	clock.Advance(2 * time.Second)

	_, ok := classifier.Release()
	assert.False(t, ok)
	assert.Never(t, func() bool {
		return counts.resets.Load() > 0
	}, 50*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, int64(0), counts.doubles.Load())
}

func TestNew_RepairsInvertedWindows(t *testing.T) {
	classifier := New(model.GestureConfig{ShortPress: 2 * time.Second, LongPress: time.Second}, nil, Handlers{})

	assert.Greater(t, classifier.config.LongPress, classifier.config.ShortPress)
	assert.Equal(t, 300*time.Millisecond, classifier.config.DoubleTapWindow)
}
