package domain

// Event is a domain event emitted by a store after a successful mutation.
type Event interface {
	Type() string
}

// EventDispatcher delivers domain events to interested subscribers.
// Dispatch errors never fail the operation that produced the event.
type EventDispatcher interface {
	Dispatch(event Event) error
}
