package speech

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatedSynth struct {
	mu     sync.Mutex
	spoken []string
	gate   chan struct{}
	began  chan string
}

func newGatedSynth() *gatedSynth {
	return &gatedSynth{gate: make(chan struct{}), began: make(chan string, 8)}
}

func (synth *gatedSynth) Synthesize(ctx context.Context, text string) error {
	synth.began <- text
	select {
	case <-synth.gate:
	case <-ctx.Done():
		return ctx.Err()
	}
	synth.mu.Lock()
	synth.spoken = append(synth.spoken, text)
	synth.mu.Unlock()
	return nil
}

func (synth *gatedSynth) recorded() []string {
	synth.mu.Lock()
	defer synth.mu.Unlock()
	return append([]string(nil), synth.spoken...)
}

func startAnnouncer(t *testing.T, synth Synthesizer) *Announcer {
	t.Helper()
	announcer := NewAnnouncer(synth, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- announcer.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
	return announcer
}

func TestAnnouncer_NewestPendingWins(t *testing.T) {
	synth := newGatedSynth()
	announcer := startAnnouncer(t, synth)

	announcer.Speak("1 second")
	require.Equal(t, "1 second", <-synth.began)

	announcer.Speak("2 seconds")
	announcer.Speak("3 seconds")
	close(synth.gate)

	require.Equal(t, "3 seconds", <-synth.began)
	require.Eventually(t, func() bool {
		return len(synth.recorded()) == 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, []string{"1 second", "3 seconds"}, synth.recorded())
}

func TestAnnouncer_IgnoresEmptyText(t *testing.T) {
	calls := make(chan string, 1)
	announcer := startAnnouncer(t, SynthesizerFunc(func(_ context.Context, text string) error {
		calls <- text
		return nil
	}))

	announcer.Speak("")

	select {
	case text := <-calls:
		assert.Failf(t, "unexpected utterance", "%q", text)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestAnnouncer_ContinuesAfterFailure(t *testing.T) {
	calls := make(chan string, 2)
	announcer := startAnnouncer(t, SynthesizerFunc(func(_ context.Context, text string) error {
		calls <- text
		if text == "broken" {
			return errors.New("engine crashed")
		}
		return nil
	}))

	announcer.Speak("broken")
	assert.Equal(t, "broken", <-calls)
	announcer.Speak("5 seconds")
	assert.Equal(t, "5 seconds", <-calls)
}

func TestAnnouncer_SetSynthesizerSwapsEngine(t *testing.T) {
	first := make(chan string, 1)
	second := make(chan string, 1)
	announcer := startAnnouncer(t, SynthesizerFunc(func(_ context.Context, text string) error {
		first <- text
		return nil
	}))

	announcer.SetSynthesizer(SynthesizerFunc(func(_ context.Context, text string) error {
		second <- text
		return nil
	}))
	announcer.Speak("0 seconds")

	assert.Equal(t, "0 seconds", <-second)
	assert.Empty(t, first)
}

func TestLogSynthesizer_NeverFails(t *testing.T) {
	assert.NoError(t, LogSynthesizer{}.Synthesize(context.Background(), "1 minute"))
}

func TestEspeakArgs(t *testing.T) {
	assert.Equal(t, []string{"hello"}, espeakArgs("", "hello"))
	assert.Equal(t, []string{"-v", "en-us", "hello"}, espeakArgs("en-US", "hello"))
}

func TestCommand_RunsEngine(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true binary not available")
	}
	command := &Command{path: path, args: espeakArgs}

	assert.Equal(t, "true", command.Name())
	assert.NoError(t, command.Synthesize(context.Background(), "7 milliseconds"))
}

func TestCommand_ReportsEngineFailure(t *testing.T) {
	path, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false binary not available")
	}
	command := &Command{path: path, args: espeakArgs}

	assert.Error(t, command.Synthesize(context.Background(), "7 milliseconds"))
}
