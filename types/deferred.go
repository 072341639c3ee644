package types

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Deferred is the pending outcome of a task running on its own goroutine.
//
// It implements error so that a listener may return it through its ordinary error
// result; a non-nil *Deferred means "not finished yet", never "failed".
type Deferred struct {
	done chan struct{}
	once sync.Once
	err  error
}

// Defer starts fn on a new goroutine. A panic inside fn settles the Deferred with an
// error describing the panic.
func Defer(fn func() error) *Deferred {
	d := &Deferred{done: make(chan struct{})}
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("deferred task panicked: %v", r)
			}
			d.settle(err)
		}()
		err = fn()
	}()
	return d
}

// Rejected returns a Deferred already settled with err.
func Rejected(err error) *Deferred {
	d := &Deferred{done: make(chan struct{})}
	d.settle(err)
	return d
}

// Resolved returns a Deferred already settled successfully.
func Resolved() *Deferred {
	return Rejected(nil)
}

func (d *Deferred) settle(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Done is closed once the task has finished.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Err returns the task failure, or nil while pending or after success.
func (d *Deferred) Err() error {
	select {
	case <-d.done:
		return d.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes or ctx is done.
func (d *Deferred) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Deferred) Error() string {
	select {
	case <-d.done:
		if d.err != nil {
			return "deferred: " + d.err.Error()
		}
		return "deferred: resolved"
	default:
		return "deferred: pending"
	}
}

func (d *Deferred) Unwrap() error {
	return d.Err()
}
