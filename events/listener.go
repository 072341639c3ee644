package events

import (
	"sync/atomic"
	"unsafe"
)

type (
	// Listener is a callback registered for one event. Returning a non-nil error reports a
	// failure; returning a *types.Deferred reports work that completes asynchronously.
	Listener func(args ...any) error

	// RawListener is a registry entry as exposed by RawListeners: either a Listener or a
	// *OnceWrapper.
	RawListener interface {
		Call(args ...any) error
	}
)

// Call invokes the listener.
func (l Listener) Call(args ...any) error {
	return l(args...)
}

// listenerPointer identifies a listener by its function value, so copies of one func
// value match while two closures built from the same literal do not.
func listenerPointer(l Listener) uintptr {
	if l == nil {
		return 0
	}
	return uintptr(*(*unsafe.Pointer)(unsafe.Pointer(&l)))
}

// SameListener reports whether a and b are the same listener.
func SameListener(a, b Listener) bool {
	return listenerPointer(a) == listenerPointer(b)
}

// OnceWrapper is the registry entry created by Once and PrependOnce. The first call
// removes the wrapper from its emitter and then invokes the wrapped listener; later calls
// do nothing.
type OnceWrapper[E Key] struct {
	fired atomic.Bool

	evt      E
	emitter  *emitter[E]
	listener Listener
	ptr      uintptr
}

// Listener returns the wrapped listener.
func (w *OnceWrapper[E]) Listener() Listener {
	return w.listener
}

func (w *OnceWrapper[E]) Call(args ...any) error {
	if !w.fired.CompareAndSwap(false, true) {
		return nil
	}
	w.emitter.removeWrapper(w.evt, w)
	return w.listener(args...)
}

type entry[E Key] struct {
	fn   Listener
	ptr  uintptr
	once *OnceWrapper[E]

	// set when the entry leaves the registry so a running Emit skips it
	removed atomic.Bool
}

func (en *entry[E]) raw() RawListener {
	if en.once != nil {
		return en.once
	}
	return en.fn
}

func (en *entry[E]) call(args []any) error {
	if en.once != nil {
		return en.once.Call(args...)
	}
	return en.fn(args...)
}
