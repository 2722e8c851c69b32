package common

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/safego"
)

// SafeCmd wraps a command with panic recovery. A panic becomes a logged
// messages.Error.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return guard("command", cmd)
	}
}

// SafeBatch wraps commands in panic recovery before batching.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	safe := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		safe = append(safe, SafeCmd(cmd))
	}
	switch len(safe) {
	case 0:
		return nil
	case 1:
		return safe[0]
	}
	return tea.Batch(safe...)
}

// SafeTick wraps tea.Tick with panic recovery in the callback.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return guard("tick", func() tea.Msg { return fn(t) })
	})
}

func guard(context string, fn func() tea.Msg) (msg tea.Msg) {
	err := safego.Recover(context, func() error {
		msg = fn()
		return nil
	})
	if err != nil {
		return messages.Error{Err: err, Context: context, Logged: true}
	}
	return msg
}
