package preferences

import (
	"time"

	"talkwatch/internal/core/model"
	"talkwatch/internal/speech/google"
)

// Speech engines selectable in preferences.
const (
	EngineGoogle = "google"
	EngineLocal  = "local"
	EngineLog    = "log"
)

// Settings defines editable user preferences.
type Settings struct {
	SpeechEngine  string
	VoiceLanguage string
	VoiceName     string
	SpeakingRate  float64
	VolumeDB      float64

	HapticsEnabled bool
	KeepAwake      bool

	RotaryThreshold float64
	RotaryDebounce  time.Duration
}

// DefaultSettings returns default settings for talkwatch.
func DefaultSettings() Settings {
	rotary := model.DefaultRotaryConfig()
	return Settings{
		SpeechEngine:    EngineLocal,
		VoiceLanguage:   "en-US",
		VoiceName:       "en-US-Standard-C",
		SpeakingRate:    1.0,
		VolumeDB:        0,
		HapticsEnabled:  true,
		KeepAwake:       true,
		RotaryThreshold: rotary.Threshold,
		RotaryDebounce:  rotary.Debounce,
	}
}

// RotaryConfig converts settings to the crown accumulator configuration.
func (settings Settings) RotaryConfig() model.RotaryConfig {
	return model.RotaryConfig{
		Threshold: settings.RotaryThreshold,
		Debounce:  settings.RotaryDebounce,
	}
}

// GoogleConfig converts settings to the Google voice configuration.
func (settings Settings) GoogleConfig() google.Config {
	return google.Config{
		Language:     settings.VoiceLanguage,
		Voice:        settings.VoiceName,
		SpeakingRate: settings.SpeakingRate,
	}
}

// ValidEngine reports whether engine names a known speech engine.
func ValidEngine(engine string) bool {
	switch engine {
	case EngineGoogle, EngineLocal, EngineLog:
		return true
	}
	return false
}
