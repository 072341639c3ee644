package events

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/alessiofrittoli/event-emitter/errors"
	"github.com/alessiofrittoli/event-emitter/utils"
)

const (
	// Unlimited disables the max listeners warning.
	Unlimited = math.MaxInt

	// MaxListenersExceededWarning identifies the possible leak warning.
	MaxListenersExceededWarning = "MaxListenersExceededWarning"
)

// defaultMaxListeners is read by New; changing it never affects existing emitters.
var defaultMaxListeners atomic.Int64

func init() {
	defaultMaxListeners.Store(10)
}

// DefaultMaxListeners returns the max listeners given to emitters created from now on.
func DefaultMaxListeners() int {
	return int(defaultMaxListeners.Load())
}

// SetDefaultMaxListeners changes the max listeners given to emitters created from now on.
// A negative value makes New fail until it is corrected.
func SetDefaultMaxListeners(n int) {
	defaultMaxListeners.Store(int64(n))
}

func (e *emitter[E]) SetMaxListeners(n int) EventEmitter[E] {
	if n < 0 {
		panic(errors.NewRangeError("n", n, "a non-negative number"))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.maxListeners = n
	return e
}

func (e *emitter[E]) GetMaxListeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.maxListeners
}

// checkMaxListeners reports the leak warning for evt the first time its listeners
// outnumber the ceiling. The caller holds e.mu.
func (e *emitter[E]) checkMaxListeners(evt E) (string, bool) {
	if e.maxListeners == 0 || e.maxListeners == Unlimited || e.warned[evt] {
		return "", false
	}

	count := len(e.evtListeners[evt])
	if count == 0 || count <= e.maxListeners {
		return "", false
	}

	e.warned[evt] = true
	return fmt.Sprintf(
		"Possible EventEmitter memory leak detected. %d %s listeners added to [%s]. MaxListeners is %d. Use emitter.setMaxListeners() to increase limit",
		count, evt, e.name, e.maxListeners,
	), true
}

func emitWarning(message string) {
	if utils.EmitWarning(message, MaxListenersExceededWarning) {
		return
	}
	emitter_log.Warning("%v", utils.Warning{ID: MaxListenersExceededWarning, Message: message})
}
