package bus

import (
	"context"
	"fmt"
	"sync"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitMQQueueService publishes envelopes to durable queues and consumes
// them back into the in-process event bus. Outbound collaborator commands and
// integration events leave through here; replies from collaborator services
// arrive on the inbound queue and are republished locally.
type RabbitMQQueueService struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation

	mu       sync.Mutex
	declared map[string]bool
	cancels  []context.CancelFunc
	wg       sync.WaitGroup
}

// NewRabbitMQQueueService opens a channel, enables publisher confirms, and
// sets QoS so at most prefetch deliveries are in flight per consumer.
func NewRabbitMQQueueService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*RabbitMQQueueService, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &RabbitMQQueueService{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		declared: make(map[string]bool),
	}, nil
}

func (s *RabbitMQQueueService) declareQueue(name string) error {
	if s.declared[name] {
		return nil
	}
	_, err := s.ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return err
	}
	s.declared[name] = true
	return nil
}

// PublishToQueue publishes an envelope to a durable queue with persistence
// and waits for the broker confirm.
func (s *RabbitMQQueueService) PublishToQueue(ctx context.Context, queueName string, envelope messages.Envelope) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.declareQueue(queueName); err != nil {
		return exceptions.ErrBusPublish(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return exceptions.ErrBusPublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrBusPublish(fmt.Errorf("message to %s not confirmed", queueName))
		}
	case <-ctx.Done():
		return exceptions.ErrBusPublish(ctx.Err())
	}
	return nil
}

// ConsumeIntoEventBus consumes a queue and republishes each decoded envelope
// on the local event bus. Deliveries are acked after a successful republish
// and nacked with requeue otherwise; malformed bodies are acked and dropped
// to avoid a poison message loop.
func (s *RabbitMQQueueService) ConsumeIntoEventBus(queueName string, eventBus contracts.EventBus) error {
	s.mu.Lock()
	if err := s.declareQueue(queueName); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	deliveries, err := s.ch.Consume(
		queueName,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				s.handleDelivery(ctx, queueName, eventBus, d)
			}
		}
	}()
	return nil
}

func (s *RabbitMQQueueService) handleDelivery(ctx context.Context, queueName string, eventBus contracts.EventBus, d amqp.Delivery) {
	var envelope messages.Envelope
	if err := json.Unmarshal(d.Body, &envelope); err != nil {
		s.log.Error("RabbitMQQueueService dropping malformed delivery",
			zap.String("queue", queueName),
			zap.Error(err),
		)
		_ = d.Ack(false)
		return
	}

	if err := eventBus.Publish(ctx, envelope); err != nil {
		s.log.Warn("RabbitMQQueueService failed to republish delivery, requeueing",
			zap.String("queue", queueName),
			zap.String(constvars.LoggingMessageNameKey, envelope.Name),
			zap.Error(err),
		)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

// Stop cancels all consumers and waits for in-flight deliveries.
func (s *RabbitMQQueueService) Stop() {
	s.mu.Lock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.mu.Unlock()
	s.wg.Wait()
}
