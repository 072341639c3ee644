package utils

import (
	"fmt"
	"sync/atomic"
)

// Warning is a process diagnostic: something is probably wrong but nothing failed.
type Warning struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("{ id: %q, message: %q }", w.ID, w.Message)
}

// WarningHandler receives process warnings.
type WarningHandler func(message string, id string)

var warningHandler atomic.Pointer[WarningHandler]

// SetWarningHandler installs the process-wide warning handler and returns the previous
// one. A nil handler uninstalls it.
func SetWarningHandler(handler WarningHandler) WarningHandler {
	var next *WarningHandler
	if handler != nil {
		next = &handler
	}
	if prev := warningHandler.Swap(next); prev != nil {
		return *prev
	}
	return nil
}

// EmitWarning hands the warning to the installed handler. It returns false when no
// handler is installed, leaving delivery to the caller.
func EmitWarning(message string, id string) bool {
	handler := warningHandler.Load()
	if handler == nil {
		return false
	}
	(*handler)(message, id)
	return true
}
