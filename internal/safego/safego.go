package safego

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/andyrewlee/glide/internal/logging"
)

// PanicHandler receives panic details from recovered callbacks.
type PanicHandler func(name string, recovered any, stack []byte)

// PanicError carries a recovered panic value out of Recover.
type PanicError struct {
	Name  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Name, e.Value)
}

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// Run executes fn, logs any panic, and reports whether one was recovered.
// Runtime-fatal errors (e.g., concurrent map writes) are not recoverable.
func Run(name string, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			report(labelFor(name), r, debug.Stack())
		}
	}()
	fn()
	return false
}

// Recover executes fn and converts a panic into a *PanicError.
func Recover(name string, fn func() error) (err error) {
	label := labelFor(name)
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			report(label, r, stack)
			err = &PanicError{Name: label, Value: r, Stack: stack}
		}
	}()
	return fn()
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}

func labelFor(name string) string {
	if name == "" {
		return "goroutine"
	}
	return name
}

func report(label string, r any, stack []byte) {
	logging.Error("panic in %s: %v\n%s", label, r, stack)
	panicHandlerMu.RLock()
	handler := panicHandler
	panicHandlerMu.RUnlock()
	if handler != nil {
		func() {
			defer func() { _ = recover() }()
			handler(label, r, stack)
		}()
	}
}
