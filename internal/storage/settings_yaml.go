package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"talkwatch/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	SpeechEngine    string  `yaml:"speech_engine"`
	VoiceLanguage   string  `yaml:"voice_language"`
	VoiceName       string  `yaml:"voice_name"`
	SpeakingRate    float64 `yaml:"speaking_rate"`
	VolumeDB        float64 `yaml:"volume_db"`
	HapticsEnabled  *bool   `yaml:"haptics_enabled"`
	KeepAwake       *bool   `yaml:"keep_awake"`
	RotaryThreshold float64 `yaml:"rotary_threshold"`
	DebounceMillis  int     `yaml:"rotary_debounce_ms"`
}

// Store reads and writes preferences under a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at the user config dir for appName.
func NewStore(appName string) (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return &Store{dir: filepath.Join(configDir, appName)}, nil
}

// NewStoreAt returns a Store rooted at dir.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return filepath.Join(store.dir, settingsFileName)
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *Store) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		SpeechEngine:    settings.SpeechEngine,
		VoiceLanguage:   settings.VoiceLanguage,
		VoiceName:       settings.VoiceName,
		SpeakingRate:    settings.SpeakingRate,
		VolumeDB:        settings.VolumeDB,
		HapticsEnabled:  &settings.HapticsEnabled,
		KeepAwake:       &settings.KeepAwake,
		RotaryThreshold: settings.RotaryThreshold,
		DebounceMillis:  int(settings.RotaryDebounce / time.Millisecond),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.Path(), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if preferences.ValidEngine(fileData.SpeechEngine) {
		settings.SpeechEngine = fileData.SpeechEngine
	}
	if fileData.VoiceLanguage != "" {
		settings.VoiceLanguage = fileData.VoiceLanguage
	}
	if fileData.VoiceName != "" {
		settings.VoiceName = fileData.VoiceName
	}
	if fileData.SpeakingRate >= 0.25 && fileData.SpeakingRate <= 4.0 {
		settings.SpeakingRate = fileData.SpeakingRate
	}
	if fileData.VolumeDB >= -20 && fileData.VolumeDB <= 6 {
		settings.VolumeDB = fileData.VolumeDB
	}
	if fileData.HapticsEnabled != nil {
		settings.HapticsEnabled = *fileData.HapticsEnabled
	}
	if fileData.KeepAwake != nil {
		settings.KeepAwake = *fileData.KeepAwake
	}
	if fileData.RotaryThreshold > 0 {
		settings.RotaryThreshold = fileData.RotaryThreshold
	}
	if fileData.DebounceMillis > 0 {
		settings.RotaryDebounce = time.Duration(fileData.DebounceMillis) * time.Millisecond
	}
}
