package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSave_AppliesValidInput(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = &settings
	})

	prefs.engine.SetSelected(EngineGoogle)
	prefs.language.SetText("fr-FR")
	prefs.threshold.SetText("12.5")
	prefs.debounce.SetText("800")
	prefs.haptics.SetChecked(false)
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.Equal(t, EngineGoogle, saved.SpeechEngine)
	assert.Equal(t, "fr-FR", saved.VoiceLanguage)
	assert.Equal(t, 12.5, saved.RotaryThreshold)
	assert.Equal(t, 800*time.Millisecond, saved.RotaryDebounce)
	assert.False(t, saved.HapticsEnabled)
}

func TestHandleSave_IgnoresInvalidNumbers(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = settings
	})

	prefs.threshold.SetText("-4")
	prefs.debounce.SetText("soon")
	prefs.language.SetText("   ")
	prefs.handleSave()

	defaults := DefaultSettings()
	assert.Equal(t, defaults.RotaryThreshold, saved.RotaryThreshold)
	assert.Equal(t, defaults.RotaryDebounce, saved.RotaryDebounce)
	assert.Equal(t, defaults.VoiceLanguage, saved.VoiceLanguage)
}

func TestSettings_Conversions(t *testing.T) {
	settings := DefaultSettings()

	rotary := settings.RotaryConfig()
	assert.Equal(t, 24.0, rotary.Threshold)
	assert.Equal(t, 500*time.Millisecond, rotary.Debounce)

	voice := settings.GoogleConfig()
	assert.Equal(t, "en-US", voice.Language)
	assert.Equal(t, 1.0, voice.SpeakingRate)

	assert.True(t, ValidEngine(EngineLog))
	assert.False(t, ValidEngine("morse"))
}
