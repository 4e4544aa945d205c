package bus

import (
	"context"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

// IntegrationForwarder copies booking outcome events from the local bus onto
// a broker queue so other services can observe them.
type IntegrationForwarder struct {
	log       *zap.Logger
	publisher contracts.QueuePublisher
	queueName string
}

func NewIntegrationForwarder(logger *zap.Logger, publisher contracts.QueuePublisher, queueName string) *IntegrationForwarder {
	return &IntegrationForwarder{
		log:       logger,
		publisher: publisher,
		queueName: queueName,
	}
}

func (f *IntegrationForwarder) Subscribe(eventBus contracts.EventBus) {
	eventBus.Subscribe(messages.EventBookingCompleted, f.forward)
	eventBus.Subscribe(messages.EventBookingRejected, f.forward)
}

func (f *IntegrationForwarder) forward(ctx context.Context, envelope messages.Envelope) error {
	err := f.publisher.PublishToQueue(ctx, f.queueName, envelope)
	if err != nil {
		f.log.Warn("IntegrationForwarder publish failed",
			zap.String(constvars.LoggingMessageNameKey, envelope.Name),
			zap.String(constvars.LoggingMessageKeyKey, envelope.Key),
			zap.Error(err),
		)
	}
	return err
}
