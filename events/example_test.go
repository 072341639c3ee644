package events_test

import (
	"errors"
	"fmt"

	"github.com/alessiofrittoli/event-emitter/config"
	"github.com/alessiofrittoli/event-emitter/events"
)

func ExampleEventEmitter() {
	e, _ := events.NewEventEmitter(nil)

	e.On("user_joined", func(payload ...any) error {
		fmt.Printf("%s joined to room: %s\n", payload[0], payload[1])
		return nil
	})
	e.Once("user_joined", func(payload ...any) error {
		fmt.Println("first join")
		return nil
	})

	e.Emit("user_joined", "user1", "room1")
	e.Emit("user_joined", "user2", "room1")

	// Output:
	// user1 joined to room: room1
	// first join
	// user2 joined to room: room1
}

func ExampleEventEmitter_captureRejections() {
	opts := config.DefaultEmitterOptions()
	opts.SetCaptureRejections(true)
	e, _ := events.NewEventEmitter(opts)

	e.On(events.ErrorEvent, func(args ...any) error {
		fmt.Println("handled:", args[0])
		return nil
	})
	e.On("save", func(...any) error {
		return errors.New("disk full")
	})

	ok, err := e.Emit("save")
	fmt.Println(ok, err)

	// Output:
	// handled: disk full
	// true <nil>
}
