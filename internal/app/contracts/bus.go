package contracts

import (
	"context"

	"clinic-booking-service/internal/pkg/messages"
)

type CommandHandler func(ctx context.Context, envelope messages.Envelope) error

type EventHandler func(ctx context.Context, envelope messages.Envelope) error

// CommandBus is point-to-point: exactly one handler per command name. Send
// is synchronous and linearized per envelope Key, so the caller observes the
// domain error of the handler (or its absence) directly. Handlers must be
// idempotent with respect to redelivery.
type CommandBus interface {
	Send(ctx context.Context, envelope messages.Envelope) error
	RegisterHandler(commandName string, handler CommandHandler)
}

// QueuePublisher puts an envelope on a durable broker queue. Publishing
// returns only after the broker has confirmed the message.
type QueuePublisher interface {
	PublishToQueue(ctx context.Context, queueName string, envelope messages.Envelope) error
}

// EventBus broadcasts to all subscribers of an event name. Delivery is
// asynchronous and at-least-once; envelopes sharing a Key are observed by
// each subscriber in publication order. No ordering holds across keys.
type EventBus interface {
	Publish(ctx context.Context, envelope messages.Envelope) error
	Subscribe(eventName string, handler EventHandler)
}
