// Package app is the terminal demo: a long list scrolled by the motion
// engine, with live config reload.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/supervisor"
	"github.com/andyrewlee/glide/internal/ui/common"
	"github.com/andyrewlee/glide/internal/ui/scrollview"
)

const (
	listID        = "glide-list"
	demoLineCount = 400

	// header, status and help rows
	chromeRows = 3
)

// App is the root Bubble Tea model.
type App struct {
	config  *config.Config
	version string

	width    int
	height   int
	ready    bool
	quitting bool

	list    *scrollview.Model
	toast   *common.ToastModel
	zone    *zone.Manager
	keymap  KeyMap
	styles  common.Styles
	lastEnd *messages.ScrollEnded

	watcher    *config.Watcher
	watcherCh  chan messages.ConfigReloaded
	watcherErr error
	sup        *supervisor.Supervisor

	copy func(string) error
}

// New creates the app. A failing config watcher only disables live reload.
func New(cfg *config.Config, version string) (*App, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, err
		}
	}

	z := zone.New()
	list := scrollview.New(listID, cfg, nil)
	list.SetZone(z)
	list.SetLines(demoLines(demoLineCount))

	a := &App{
		config:    cfg,
		version:   version,
		list:      list,
		toast:     common.NewToastModel(nil),
		zone:      z,
		keymap:    DefaultKeyMap(),
		styles:    common.DefaultStyles(),
		watcherCh: make(chan messages.ConfigReloaded, 4),
		copy:      common.CopyToClipboard,
	}

	w, err := config.NewWatcher(cfg.Paths, func(c *config.Config, err error) {
		select {
		case a.watcherCh <- messages.ConfigReloaded{Config: c, Err: err}:
		default:
			// a newer event will follow
		}
	})
	if err != nil {
		logging.Warn("Config watcher disabled: %v", err)
		a.watcherErr = err
		return a, nil
	}
	a.watcher = w
	a.sup = supervisor.New(context.Background())
	a.sup.Start("config.watcher", w.Run,
		supervisor.WithRestartPolicy(supervisor.RestartOnError),
		supervisor.WithMaxRestarts(5),
		supervisor.WithErrorHandler(func(name string, err error) {
			logging.Warn("%s stopped: %v", name, err)
		}),
	)
	return a, nil
}

// Init starts the reload pump.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.list.Init(), a.waitForReload()}
	if a.watcherErr != nil {
		cmds = append(cmds, a.toast.ShowMsg(messages.Toast{Message: "Config reload disabled", Level: messages.ToastWarning}))
	}
	return common.SafeBatch(cmds...)
}

func (a *App) waitForReload() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	ch := a.watcherCh
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// Shutdown stops the config watcher.
func (a *App) Shutdown() {
	a.sup.Stop()
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.ready = true
		a.list.SetOrigin(0, 1)
		a.list.SetSize(a.width, max(1, a.height-chromeRows))
		return a, nil

	case tea.KeyPressMsg:
		if matchesQuit(a.keymap, msg) {
			a.quitting = true
			a.Shutdown()
			return a, tea.Quit
		}
		_, cmd := a.list.Update(msg)
		return a, cmd

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg,
		messages.FrameTick, messages.IndicatorTick:
		_, cmd := a.list.Update(msg)
		return a, cmd

	case messages.ScrollEnded:
		end := msg
		a.lastEnd = &end
		logging.Debug("scroll ended at %.1f settled=%v", msg.Offset, msg.Settled)
		return a, nil

	case messages.ConfigReloaded:
		return a, common.SafeBatch(a.applyReload(msg), a.waitForReload())

	case messages.CopyStatus:
		return a, a.copyStatus(msg.Text)

	case messages.Toast:
		return a, a.toast.ShowMsg(msg)

	case messages.Error:
		if !msg.Logged {
			logging.Error("%s", msg.Error())
		}
		return a, a.toast.ShowMsg(messages.Toast{Message: msg.Error(), Level: messages.ToastError})

	case common.ToastDismissed:
		a.toast.Update(msg)
		return a, nil
	}
	return a, nil
}

func (a *App) applyReload(msg messages.ConfigReloaded) tea.Cmd {
	if msg.Err != nil {
		return common.ReportError("config reload", msg.Err, "Config reload failed")
	}
	if msg.Config == nil {
		return nil
	}
	a.config = msg.Config
	a.list.ApplyConfig(msg.Config)
	logging.SetLevel(logging.ParseLevel(msg.Config.LogLevel))
	return common.Notify("Config reloaded", messages.ToastInfo)
}

func (a *App) copyStatus(text string) tea.Cmd {
	copyFn := a.copy
	return common.SafeCmd(func() tea.Msg {
		if err := copyFn(text); err != nil {
			logging.WithError(err, "copy status")
			return messages.Error{Err: err, Context: "copy status", Logged: true}
		}
		return messages.Toast{Message: "Status copied", Level: messages.ToastSuccess}
	})
}
