package player

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// SampleRate is the fixed output rate of the audio session.
const SampleRate = beep.SampleRate(44100)

const resampleQuality = 4

var (
	// ErrSessionInactive indicates the audio device could not be opened.
	ErrSessionInactive = errors.New("audio session inactive")
	// ErrUnsupportedFormat indicates a payload the player cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported format for direct playback; use mp3 or wav")
)

// Player plays an encoded audio stream to completion.
type Player interface {
	Play(format string, r io.ReadCloser) error
}

// Session owns the speaker device. It is activated once; playback on an
// inactive session is skipped.
type Session struct {
	mu        sync.Mutex
	logger    *zap.SugaredLogger
	volumeDB  float64
	activated bool
	active    bool

	initSpeaker func(beep.SampleRate, int) error
	playSpeaker func(...beep.Streamer)
}

// NewSession creates an inactive audio session.
func NewSession(logger *zap.SugaredLogger) *Session {
	return &Session{
		logger:      logger,
		initSpeaker: speaker.Init,
		playSpeaker: speaker.Play,
	}
}

// Activate opens the speaker. A failure is logged and leaves the session
// inactive; the application keeps running without audio.
func (session *Session) Activate() bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.activated {
		return session.active
	}
	session.activated = true

	if err := session.initSpeaker(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		if session.logger != nil {
			session.logger.Warnw("Audio session activation failed, continuing without sound", "error", err)
		}
		return false
	}
	session.active = true
	return true
}

// Active reports whether the speaker is open.
func (session *Session) Active() bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.active
}

// SetVolume sets the playback gain in dB; negative is quieter.
func (session *Session) SetVolume(db float64) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.volumeDB = db
}

// Play decodes an mp3 or wav stream and blocks until playback finishes.
func (session *Session) Play(format string, r io.ReadCloser) error {
	defer r.Close()

	session.mu.Lock()
	active := session.active
	volume := session.volumeDB
	session.mu.Unlock()
	if !active {
		return ErrSessionInactive
	}

	var (
		streamer beep.StreamSeekCloser
		decoded  beep.Format
		err      error
	)
	switch strings.ToLower(format) {
	case "wav":
		streamer, decoded, err = wav.Decode(r)
	case "mp3":
		streamer, decoded, err = mp3.Decode(r)
	default:
		return fmt.Errorf("play %q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", format, err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if decoded.SampleRate != SampleRate {
		source = beep.Resample(resampleQuality, decoded.SampleRate, SampleRate, streamer)
	}

	done := make(chan struct{})
	session.playSpeaker(beep.Seq(withVolume(source, volume), beep.Callback(func() { close(done) })))
	<-done
	return nil
}

// Tone plays a short sine click without waiting for it to finish.
func (session *Session) Tone(frequency float64, duration time.Duration) {
	session.mu.Lock()
	active := session.active
	volume := session.volumeDB
	session.mu.Unlock()
	if !active {
		return
	}
	session.playSpeaker(withVolume(sine(SampleRate, frequency, duration), volume))
}

func withVolume(streamer beep.Streamer, db float64) beep.Streamer {
	return &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   db,
		Silent:   false,
	}
}

func sine(rate beep.SampleRate, frequency float64, duration time.Duration) beep.Streamer {
	total := rate.N(duration)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if position >= total {
				break
			}
			value := 0.3 * math.Sin(2*math.Pi*frequency*float64(position)/float64(rate))
			samples[i][0] = value
			samples[i][1] = value
			position++
			n++
		}
		return n, true
	})
}
