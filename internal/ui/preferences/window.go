package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	engine    *widget.Select
	language  *widget.Entry
	voice     *widget.Entry
	rate      *widget.Slider
	volume    *widget.Slider
	haptics   *widget.Check
	keepAwake *widget.Check
	threshold *widget.Entry
	debounce  *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Stopwatch Settings")

	engine := widget.NewSelect([]string{EngineLocal, EngineGoogle, EngineLog}, nil)
	language := widget.NewEntry()
	voice := widget.NewEntry()

	rate := widget.NewSlider(0.5, 2.0)
	rate.Step = 0.05

	volume := widget.NewSlider(-20, 6)
	volume.Step = 1

	haptics := widget.NewCheck("Haptic clicks", nil)
	keepAwake := widget.NewCheck("Keep screen awake", nil)

	threshold := widget.NewEntry()
	debounce := widget.NewEntry()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Speech", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Engine"), engine),
		container.NewHBox(widget.NewLabel("Language"), language),
		container.NewHBox(widget.NewLabel("Google voice"), voice),
		widget.NewLabel("Speaking rate"),
		rate,
		widget.NewLabel("Volume (dB)"),
		volume,
		widget.NewLabelWithStyle("Crown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Announce after turning"), threshold, widget.NewLabel("units")),
		container.NewHBox(widget.NewLabel("Settle time"), debounce, widget.NewLabel("ms")),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		haptics,
		keepAwake,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 480))

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		engine:    engine,
		language:  language,
		voice:     voice,
		rate:      rate,
		volume:    volume,
		haptics:   haptics,
		keepAwake: keepAwake,
		threshold: threshold,
		debounce:  debounce,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.engine.SetSelected(settings.SpeechEngine)
	prefs.language.SetText(settings.VoiceLanguage)
	prefs.voice.SetText(settings.VoiceName)
	prefs.rate.SetValue(settings.SpeakingRate)
	prefs.volume.SetValue(settings.VolumeDB)
	prefs.haptics.SetChecked(settings.HapticsEnabled)
	prefs.keepAwake.SetChecked(settings.KeepAwake)
	prefs.threshold.SetText(strconv.FormatFloat(settings.RotaryThreshold, 'f', -1, 64))
	prefs.debounce.SetText(fmt.Sprintf("%d", int(settings.RotaryDebounce/time.Millisecond)))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if ValidEngine(prefs.engine.Selected) {
		settings.SpeechEngine = prefs.engine.Selected
	}
	if language := strings.TrimSpace(prefs.language.Text); language != "" {
		settings.VoiceLanguage = language
	}
	if voice := strings.TrimSpace(prefs.voice.Text); voice != "" {
		settings.VoiceName = voice
	}
	settings.SpeakingRate = prefs.rate.Value
	settings.VolumeDB = prefs.volume.Value
	settings.HapticsEnabled = prefs.haptics.Checked
	settings.KeepAwake = prefs.keepAwake.Checked

	if threshold, ok := parsePositiveFloat(prefs.threshold.Text); ok {
		settings.RotaryThreshold = threshold
	}
	if millis, ok := parsePositiveInt(prefs.debounce.Text); ok {
		settings.RotaryDebounce = time.Duration(millis) * time.Millisecond
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parsePositiveFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
