package common

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
)

// ReportError logs err and returns commands that surface it as an Error
// message and an error toast. toastMessage overrides the toast text.
func ReportError(context string, err error, toastMessage string) tea.Cmd {
	if err == nil {
		return nil
	}
	logging.WithError(err, context)
	if toastMessage == "" {
		toastMessage = err.Error()
	}
	return SafeBatch(
		func() tea.Msg {
			return messages.Error{Err: err, Context: context, Logged: true}
		},
		Notify(toastMessage, messages.ToastError),
	)
}

// Notify returns a command that requests a toast.
func Notify(message string, level messages.ToastLevel) tea.Cmd {
	return func() tea.Msg {
		return messages.Toast{Message: message, Level: level}
	}
}
