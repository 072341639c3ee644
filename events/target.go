package events

// Target is an emitter view bound to a single event name.
type Target[E Key] struct {
	emitter EventEmitter[E]
	evt     E
}

func NewTarget[E Key](emitter EventEmitter[E], evt E) *Target[E] {
	return &Target[E]{emitter: emitter, evt: evt}
}

func (t *Target[E]) EventName() E {
	return t.evt
}

func (t *Target[E]) Emitter() EventEmitter[E] {
	return t.emitter
}

func (t *Target[E]) On(listener Listener) *Target[E] {
	t.emitter.On(t.evt, listener)
	return t
}

func (t *Target[E]) Once(listener Listener) *Target[E] {
	t.emitter.Once(t.evt, listener)
	return t
}

func (t *Target[E]) Off(listener Listener) *Target[E] {
	t.emitter.Off(t.evt, listener)
	return t
}

func (t *Target[E]) RemoveAllListeners() *Target[E] {
	t.emitter.RemoveAllListeners(t.evt)
	return t
}

func (t *Target[E]) ListenerCount() int {
	return t.emitter.ListenerCount(t.evt)
}

func (t *Target[E]) Emit(args ...any) (bool, error) {
	return t.emitter.Emit(t.evt, args...)
}
