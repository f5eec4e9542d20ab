package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStartStop   func()
	OnReset       func()
	OnAnnounce    func()
	OnShowFace    func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	resetItem   *fyne.MenuItem
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "00:00.00",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStartStop))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning flips the start/stop item.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	if running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshStatus()
}

// Running reports the state last passed to SetRunning.
func (manager *Manager) Running() bool {
	return manager.running
}

func (manager *Manager) refreshStatus() {
	state := "stopped"
	if manager.running {
		state = "running"
	}
	manager.statusItem.Label = fmt.Sprintf("%s (%s)", manager.statusLabel, state)
	manager.refreshMenu()
}

func (manager *Manager) menu() *fyne.Menu {
	return fyne.NewMenu("Stopwatch",
		manager.statusItem,
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItem("Announce time", invoke(&manager.callbacks.OnAnnounce)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show stopwatch", invoke(&manager.callbacks.OnShowFace)),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu())
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
