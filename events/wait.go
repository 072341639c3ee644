package events

import (
	"context"
	"fmt"
)

type waitResult struct {
	args []any
	err  error
}

// Wait blocks until evt is emitted and returns its arguments. While waiting for any
// event other than "error", an "error" emission ends the wait with its first argument
// as the failure. Both listeners are removed before Wait returns.
func Wait[E Key](ctx context.Context, emitter EventEmitter[E], evt E) ([]any, error) {
	done := make(chan waitResult, 1)
	settle := func(r waitResult) {
		select {
		case done <- r:
		default:
		}
	}

	onEvent := Listener(func(args ...any) error {
		settle(waitResult{args: args})
		return nil
	})
	emitter.Once(evt, onEvent)
	defer emitter.Off(evt, onEvent)

	if evt != E(ErrorEvent) {
		onError := Listener(func(args ...any) error {
			settle(waitResult{err: errorArgument(args)})
			return nil
		})
		emitter.Once(E(ErrorEvent), onError)
		defer emitter.Off(E(ErrorEvent), onError)
	}

	select {
	case r := <-done:
		return r.args, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func errorArgument(args []any) error {
	if len(args) == 0 {
		return fmt.Errorf(`"%s" event emitted without a value`, ErrorEvent)
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf(`"%s" event emitted with %v`, ErrorEvent, args[0])
}
