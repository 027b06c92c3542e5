// Package pubsub fans typed change notifications out to the menu.
// The repository publishes car changes on it and the logger publishes log lines.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
)

// Event is one notification. Payload is a copy owned by the receiver.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out a channel that closes when ctx ends or the source shuts down.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher is the write side the repository and logger depend on.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
