package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"talkwatch/internal/config"
	"talkwatch/internal/core/gesture"
	"talkwatch/internal/core/model"
	"talkwatch/internal/core/rotary"
	"talkwatch/internal/core/timekeeper"
	"talkwatch/internal/logging"
	"talkwatch/internal/platform"
	"talkwatch/internal/speech"
	"talkwatch/internal/speech/google"
	"talkwatch/internal/speech/player"
	"talkwatch/internal/storage"
	"talkwatch/internal/ui/face"
	"talkwatch/internal/ui/preferences"
	"talkwatch/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"
)

const (
	appName = "talkwatch"
	appID   = "com.talkwatch.app"
	hint    = "hold to start · long hold to reset · double tap or turn to speak"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Dir:         cfg.LogDir,
		Development: cfg.DebugMode,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() {
		_ = closeLog()
	}()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Errorw("Single instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings := preferences.DefaultSettings()
	store, err := storage.NewStore(appName)
	if err != nil {
		logger.Warnw("Preferences unavailable, using defaults", "error", err)
	} else if settings, err = store.Load(); err != nil {
		logger.Warnw("Load preferences failed, using defaults", "path", store.Path(), "error", err)
	}

	audio := player.NewSession(logger)
	audio.Activate()
	audio.SetVolume(settings.VolumeDB)

	haptics := platform.NewHaptics(audio, nil, logger)
	haptics.SetEnabled(settings.HapticsEnabled)

	keeper := timekeeper.New(model.StopwatchConfig{TickInterval: cfg.TickInterval}, timekeeper.Config{Haptics: haptics})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	announcer := speech.NewAnnouncer(nil, logger)
	synth, closeSynth := buildSynthesizer(settings, audio, logger)
	announcer.SetSynthesizer(synth)
	go func() {
		if err := announcer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorw("Announcer stopped", "error", err)
		}
	}()

	announce := func() {
		announcer.Speak(keeper.FormattedSpoken())
	}

	accumulator := rotary.New(settings.RotaryConfig(), nil, announce)
	classifier := gesture.New(model.DefaultGestureConfig(), nil, gesture.Handlers{
		OnStart: func() {
			if !keeper.IsRunning() {
				keeper.Start()
			}
		},
		OnReset: keeper.Reset,
		OnDoubleTap: func() {
			keeper.Stop()
			announce()
		},
	})

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.MediaPlayIcon())

	desktopApp, hasTray := fyneApp.(desktop.App)
	faceWindow := face.New(fyneApp, face.Config{
		Title:       "Stopwatch",
		Compact:     cfg.Compact,
		Hint:        hint,
		HideOnClose: hasTray,
	}, classifier, accumulator.OnSample)

	awake := newWakeLock(settings.KeepAwake, logger)
	faceWindow.SetOnClosed(awake.Release)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if store != nil {
			if err := store.Save(updated); err != nil {
				logger.Warnw("Save preferences failed", "path", store.Path(), "error", err)
			}
		}
		accumulator.UpdateConfig(updated.RotaryConfig())
		haptics.SetEnabled(updated.HapticsEnabled)
		audio.SetVolume(updated.VolumeDB)
		_ = closeSynth()
		synth, closeSynth = buildSynthesizer(updated, audio, logger)
		announcer.SetSynthesizer(synth)
		awake.SetEnabled(updated.KeepAwake)
	})

	var trayManager *tray.Manager
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnStartStop: func() {
				if keeper.IsRunning() {
					keeper.Stop()
				} else {
					keeper.Start()
				}
			},
			OnReset:    keeper.Reset,
			OnAnnounce: announce,
			OnShowFace: func() {
				faceWindow.Show()
				awake.Acquire()
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
	} else {
		logger.Infow("System tray unsupported on this platform")
	}

	events := keeper.Subscribe(64)
	go func() {
		for event := range events {
			running := event.State == timekeeper.StateRunning
			faceWindow.SetDisplay(event.Display, running, event.Elapsed)
			if event.Type == timekeeper.EventTick {
				continue
			}
			logger.Debugw("Stopwatch transition", "type", event.Type, "state", event.State, "elapsed", event.Display)
			if trayManager != nil {
				display := event.Display
				fyne.Do(func() {
					trayManager.SetRunning(running)
					trayManager.SetStatus(display)
				})
			}
		}
	}()

	awake.Acquire()
	faceWindow.ShowAndRun()

	keeper.Close()
	accumulator.Close()
	awake.Release()
	_ = closeSynth()
}

func buildSynthesizer(settings preferences.Settings, audio *player.Session, logger *zap.SugaredLogger) (speech.Synthesizer, func() error) {
	noop := func() error { return nil }

	switch settings.SpeechEngine {
	case preferences.EngineGoogle:
		client := google.New(settings.GoogleConfig(), audio, logger)
		return client, client.Close
	case preferences.EngineLocal:
		command, err := speech.LookupCommand(settings.VoiceLanguage)
		if err == nil {
			logger.Infow("Using local speech engine", "engine", command.Name())
			return command, noop
		}
		logger.Warnw("Local speech engine unavailable, logging announcements", "error", err)
	}
	return speech.LogSynthesizer{Logger: logger}, noop
}
