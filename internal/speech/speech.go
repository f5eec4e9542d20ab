package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoEngine indicates that no local speech engine is installed.
var ErrNoEngine = errors.New("no speech engine available")

// Synthesizer speaks text and returns once the utterance has been played.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) error
}

// SynthesizerFunc adapts a function to Synthesizer.
type SynthesizerFunc func(ctx context.Context, text string) error

// Synthesize calls fn.
func (fn SynthesizerFunc) Synthesize(ctx context.Context, text string) error {
	return fn(ctx, text)
}

// Announcer serialises utterances onto one worker. Speak never blocks; while
// an utterance is playing only the newest request is kept.
type Announcer struct {
	mu      sync.Mutex
	synth   Synthesizer
	logger  *zap.SugaredLogger
	timeout time.Duration
	pending string
	queued  bool
	notify  chan struct{}
}

// NewAnnouncer creates an Announcer. Call Run to start speaking.
func NewAnnouncer(synth Synthesizer, logger *zap.SugaredLogger) *Announcer {
	return &Announcer{
		synth:   synth,
		logger:  logger,
		timeout: 30 * time.Second,
		notify:  make(chan struct{}, 1),
	}
}

// SetSynthesizer swaps the engine used for subsequent utterances.
func (announcer *Announcer) SetSynthesizer(synth Synthesizer) {
	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	announcer.synth = synth
}

// Speak queues text, replacing any utterance still waiting to be spoken.
func (announcer *Announcer) Speak(text string) {
	if text == "" {
		return
	}
	announcer.mu.Lock()
	announcer.pending = text
	announcer.queued = true
	announcer.mu.Unlock()

	select {
	case announcer.notify <- struct{}{}:
	default:
	}
}

// Run speaks queued utterances until ctx is cancelled.
func (announcer *Announcer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-announcer.notify:
			announcer.speakPending(ctx)
		}
	}
}

func (announcer *Announcer) speakPending(ctx context.Context) {
	announcer.mu.Lock()
	if !announcer.queued {
		announcer.mu.Unlock()
		return
	}
	text := announcer.pending
	synth := announcer.synth
	announcer.pending = ""
	announcer.queued = false
	announcer.mu.Unlock()

	if synth == nil {
		return
	}

	speakCtx, cancel := context.WithTimeout(ctx, announcer.timeout)
	defer cancel()
	started := time.Now()
	if err := synth.Synthesize(speakCtx, text); err != nil {
		if announcer.logger != nil {
			announcer.logger.Warnw("Announcement failed", "text", text, "error", err)
		}
		return
	}
	if announcer.logger != nil {
		announcer.logger.Debugw("Announcement spoken", "text", text, "took", time.Since(started).String())
	}
}

// LogSynthesizer writes utterances to the log instead of the speaker.
type LogSynthesizer struct {
	Logger *zap.SugaredLogger
}

// Synthesize logs text.
func (synth LogSynthesizer) Synthesize(_ context.Context, text string) error {
	if synth.Logger != nil {
		synth.Logger.Infow("Speech", "text", text)
	}
	return nil
}
