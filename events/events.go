// Package events provides a generically keyed EventEmitter.
//
// Listeners are called synchronously, in registration order, on the goroutine that calls
// Emit. A listener reports failure through its error result. By default that error aborts
// the emission and is returned from Emit; with capture rejections enabled it is emitted
// as the "error" event instead, and asynchronous failures reported through a
// *types.Deferred are routed the same way.
//
// Example:
//
//	e, _ := events.NewEventEmitter(nil)
//	e.On("greet", func(args ...any) error {
//		fmt.Println("hello", args[0])
//		return nil
//	})
//	e.Emit("greet", "world") // Output: hello world
package events

import (
	"slices"
	"sync"

	"github.com/alessiofrittoli/event-emitter/config"
	"github.com/alessiofrittoli/event-emitter/errors"
	"github.com/alessiofrittoli/event-emitter/log"
	"github.com/alessiofrittoli/event-emitter/types"
)

// ErrorEvent is the event listener failures are routed to when capture rejections is on.
const ErrorEvent = "error"

var emitter_log = log.NewLog("events:emitter")

type (
	// Key is the type of event names. A dedicated string type with a set of constants
	// describes the events an emitter supports.
	Key interface {
		~string
	}

	// EventName is the default event name type, accepting any name.
	EventName string

	// Events maps event names to listeners, for registering many at once.
	Events[E Key] map[E][]Listener

	// EventEmitter is the message/or/event manager
	EventEmitter[E Key] interface {
		// AddListener is an alias for .On(eventName, listener).
		AddListener(E, Listener) EventEmitter[E]
		// On appends listener to the listeners of the event. The same listener may be
		// added any number of times; each registration is called once per emission.
		On(E, Listener) EventEmitter[E]
		// Prepend inserts listener before every listener already registered for the event.
		Prepend(E, Listener) EventEmitter[E]
		// PrependListener is an alias for .Prepend(eventName, listener).
		PrependListener(E, Listener) EventEmitter[E]
		// Once adds a one time listener function for the event named eventName.
		// The next time eventName is triggered, this listener is removed and then invoked.
		Once(E, Listener) EventEmitter[E]
		// PrependOnce is Once, inserting at the front.
		PrependOnce(E, Listener) EventEmitter[E]
		// PrependOnceListener is an alias for .PrependOnce(eventName, listener).
		PrependOnceListener(E, Listener) EventEmitter[E]
		// Off removes one registration of listener from the event. When the listener was
		// also added with Once, the most recent once registration goes first.
		Off(E, Listener) EventEmitter[E]
		// RemoveListener is an alias for .Off(eventName, listener).
		RemoveListener(E, Listener) EventEmitter[E]
		// RemoveAllListeners removes every listener of the given events, or of all events
		// when called without arguments.
		RemoveAllListeners(...E) EventEmitter[E]
		// RemoveListeners removes every registration of listener from the event.
		RemoveListeners(E, Listener) EventEmitter[E]
		// Emit fires a particular event,
		// Synchronously calls each of the listeners registered for the event named
		// eventName, in the order they were registered,
		// passing the supplied arguments to each.
		// Listeners removed during the emission are skipped, listeners added during it
		// are first called by the next emission.
		// It reports whether the event had listeners.
		Emit(E, ...any) (bool, error)
		// EventNames returns the events that have listeners, in order of first registration.
		EventNames() []E
		// ListenerCount returns the number of listeners of the event, or with a listener
		// argument the number of registrations of that listener.
		ListenerCount(E, ...Listener) int
		// Listeners returns a copy of the listeners of the event, once listeners unwrapped.
		Listeners(E) []Listener
		// RawListeners returns a copy of the listeners of the event, once wrappers included.
		RawListeners(E) []RawListener
		// SetMaxListeners sets the count above which registering warns of a leak.
		// Zero or Unlimited disables the warning.
		SetMaxListeners(int) EventEmitter[E]
		// GetMaxListeners returns the max listeners for this emmiter
		// see SetMaxListeners
		GetMaxListeners() int
	}

	emitter[E Key] struct {
		mu sync.Mutex

		evtListeners  map[E][]*entry[E]
		evtNames      *types.Set[E]
		onceListeners map[E][]*OnceWrapper[E]
		warned        map[E]bool
		maxListeners  int

		captureRejections bool
		name              string
	}
)

// CopyTo copies the event listeners to an EventEmitter
func (e Events[E]) CopyTo(emitter EventEmitter[E]) {
	for evt, listeners := range e {
		for _, listener := range listeners {
			emitter.On(evt, listener)
		}
	}
}

// New returns a new, empty, EventEmitter. It fails when the process wide default max
// listeners is negative.
func New[E Key](opts config.EmitterOptionsInterface) (EventEmitter[E], error) {
	options := config.DefaultEmitterOptions()
	options.Assign(opts)

	maxListeners := DefaultMaxListeners()
	if maxListeners < 0 {
		return nil, errors.NewRangeError("defaultMaxListeners", maxListeners, "a non-negative number").Err()
	}

	return &emitter[E]{
		evtListeners:      map[E][]*entry[E]{},
		evtNames:          types.NewSet[E](),
		onceListeners:     map[E][]*OnceWrapper[E]{},
		warned:            map[E]bool{},
		maxListeners:      maxListeners,
		captureRejections: options.CaptureRejections(),
		name:              options.Name(),
	}, nil
}

// NewEventEmitter returns an EventEmitter accepting any event name.
func NewEventEmitter(opts config.EmitterOptionsInterface) (EventEmitter[EventName], error) {
	return New[EventName](opts)
}

func (e *emitter[E]) addListener(evt E, en *entry[E], prepend bool) EventEmitter[E] {
	e.mu.Lock()
	if prepend {
		e.evtListeners[evt] = append([]*entry[E]{en}, e.evtListeners[evt]...)
	} else {
		e.evtListeners[evt] = append(e.evtListeners[evt], en)
	}
	if en.once != nil {
		if prepend {
			e.onceListeners[evt] = append([]*OnceWrapper[E]{en.once}, e.onceListeners[evt]...)
		} else {
			e.onceListeners[evt] = append(e.onceListeners[evt], en.once)
		}
	}
	e.evtNames.Add(evt)
	warning, exceeded := e.checkMaxListeners(evt)
	e.mu.Unlock()

	if exceeded {
		emitWarning(warning)
	}
	return e
}

func (e *emitter[E]) AddListener(evt E, listener Listener) EventEmitter[E] {
	return e.On(evt, listener)
}

func (e *emitter[E]) On(evt E, listener Listener) EventEmitter[E] {
	if listener == nil {
		return e
	}
	return e.addListener(evt, &entry[E]{fn: listener, ptr: listenerPointer(listener)}, false)
}

func (e *emitter[E]) Prepend(evt E, listener Listener) EventEmitter[E] {
	if listener == nil {
		return e
	}
	return e.addListener(evt, &entry[E]{fn: listener, ptr: listenerPointer(listener)}, true)
}

func (e *emitter[E]) PrependListener(evt E, listener Listener) EventEmitter[E] {
	return e.Prepend(evt, listener)
}

func (e *emitter[E]) onceEntry(evt E, listener Listener) *entry[E] {
	ptr := listenerPointer(listener)
	return &entry[E]{
		fn:   listener,
		ptr:  ptr,
		once: &OnceWrapper[E]{evt: evt, emitter: e, listener: listener, ptr: ptr},
	}
}

func (e *emitter[E]) Once(evt E, listener Listener) EventEmitter[E] {
	if listener == nil {
		return e
	}
	return e.addListener(evt, e.onceEntry(evt, listener), false)
}

func (e *emitter[E]) PrependOnce(evt E, listener Listener) EventEmitter[E] {
	if listener == nil {
		return e
	}
	return e.addListener(evt, e.onceEntry(evt, listener), true)
}

func (e *emitter[E]) PrependOnceListener(evt E, listener Listener) EventEmitter[E] {
	return e.PrependOnce(evt, listener)
}

func (e *emitter[E]) Emit(evt E, args ...any) (bool, error) {
	e.mu.Lock()
	listeners := slices.Clone(e.evtListeners[evt])
	e.mu.Unlock()

	if len(listeners) == 0 {
		return false, nil
	}

	capture := e.captureRejections && evt != E(ErrorEvent)
	for _, listener := range listeners {
		if listener.removed.Load() {
			continue
		}

		err := listener.call(args)
		if err == nil {
			continue
		}

		if deferred, ok := err.(*types.Deferred); ok {
			if capture && deferred != nil {
				e.watch(deferred)
			}
			continue
		}

		if !capture {
			return true, err
		}
		emitter_log.Debug(`listener of "%s" failed, emitting "%s": %v`, evt, ErrorEvent, err)
		if _, err := e.Emit(E(ErrorEvent), err); err != nil {
			return true, err
		}
	}
	return true, nil
}

// watch emits "error" once the deferred fails.
func (e *emitter[E]) watch(deferred *types.Deferred) {
	go func() {
		<-deferred.Done()
		failure := deferred.Err()
		if failure == nil {
			return
		}
		if _, err := e.Emit(E(ErrorEvent), failure); err != nil {
			emitter_log.Error(`unobserved failure of an "%s" listener: %v`, ErrorEvent, err)
		}
	}()
}

// remove drops the entry at index i. The caller holds e.mu.
func (e *emitter[E]) remove(evt E, i int) {
	listeners := e.evtListeners[evt]
	en := listeners[i]
	en.removed.Store(true)

	if listeners = slices.Delete(listeners, i, i+1); len(listeners) == 0 {
		delete(e.evtListeners, evt)
		e.evtNames.Delete(evt)
	} else {
		e.evtListeners[evt] = listeners
	}

	if en.once == nil {
		return
	}
	wrappers := e.onceListeners[evt]
	if j := slices.Index(wrappers, en.once); j >= 0 {
		wrappers = slices.Delete(wrappers, j, j+1)
	}
	if len(wrappers) == 0 {
		delete(e.onceListeners, evt)
	} else {
		e.onceListeners[evt] = wrappers
	}
}

// removeListener removes one registration of the listener identified by ptr. The caller
// holds e.mu.
func (e *emitter[E]) removeListener(evt E, ptr uintptr) bool {
	listeners := e.evtListeners[evt]
	if len(listeners) == 0 {
		return false
	}

	var target *OnceWrapper[E]
	wrappers := e.onceListeners[evt]
	for i := len(wrappers) - 1; i >= 0; i-- {
		if wrappers[i].ptr == ptr {
			target = wrappers[i]
			break
		}
	}

	for i := len(listeners) - 1; i >= 0; i-- {
		en := listeners[i]
		if (target != nil && en.once == target) || (target == nil && en.once == nil && en.ptr == ptr) {
			e.remove(evt, i)
			return true
		}
	}
	return false
}

func (e *emitter[E]) removeWrapper(evt E, wrapper *OnceWrapper[E]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := slices.IndexFunc(e.evtListeners[evt], func(en *entry[E]) bool { return en.once == wrapper }); i >= 0 {
		e.remove(evt, i)
	}
}

func (e *emitter[E]) Off(evt E, listener Listener) EventEmitter[E] {
	if listener == nil {
		return e
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.removeListener(evt, listenerPointer(listener))
	return e
}

func (e *emitter[E]) RemoveListener(evt E, listener Listener) EventEmitter[E] {
	return e.Off(evt, listener)
}

func (e *emitter[E]) RemoveAllListeners(evts ...E) EventEmitter[E] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(evts) == 0 {
		for _, listeners := range e.evtListeners {
			for _, en := range listeners {
				en.removed.Store(true)
			}
		}
		e.evtListeners = map[E][]*entry[E]{}
		e.onceListeners = map[E][]*OnceWrapper[E]{}
		e.evtNames.Clear()
		return e
	}

	for _, evt := range evts {
		for _, en := range e.evtListeners[evt] {
			en.removed.Store(true)
		}
		delete(e.evtListeners, evt)
		delete(e.onceListeners, evt)
		e.evtNames.Delete(evt)
	}
	return e
}

func (e *emitter[E]) RemoveListeners(evt E, listener Listener) EventEmitter[E] {
	if listener == nil {
		return e
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ptr := listenerPointer(listener)
	for range e.countListener(evt, ptr) {
		e.removeListener(evt, ptr)
	}
	return e
}

func (e *emitter[E]) EventNames() []E {
	return e.evtNames.Keys()
}

// countListener counts the registrations of ptr. The caller holds e.mu.
func (e *emitter[E]) countListener(evt E, ptr uintptr) (n int) {
	for _, en := range e.evtListeners[evt] {
		if en.ptr == ptr {
			n++
		}
	}
	return n
}

func (e *emitter[E]) ListenerCount(evt E, listener ...Listener) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(listener) == 0 {
		return len(e.evtListeners[evt])
	}
	return e.countListener(evt, listenerPointer(listener[0]))
}

func (e *emitter[E]) Listeners(evt E) []Listener {
	e.mu.Lock()
	defer e.mu.Unlock()

	listeners := make([]Listener, len(e.evtListeners[evt]))
	for i, en := range e.evtListeners[evt] {
		listeners[i] = en.fn
	}
	return listeners
}

func (e *emitter[E]) RawListeners(evt E) []RawListener {
	e.mu.Lock()
	defer e.mu.Unlock()

	listeners := make([]RawListener, len(e.evtListeners[evt]))
	for i, en := range e.evtListeners[evt] {
		listeners[i] = en.raw()
	}
	return listeners
}
