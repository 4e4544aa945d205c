package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/services/shared/metrics"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

const (
	mailboxBuffer   = 256
	maxAttempts     = 3
	redeliveryDelay = 25 * time.Millisecond
)

// MemoryBus is the in-process command and event bus.
//
// Commands are point-to-point and synchronous: Send dispatches to the single
// registered handler and returns its error, so HTTP callers observe domain
// conflicts directly. Events are asynchronous: each subscriber owns one
// mailbox per envelope Key, so events for one aggregate instance are handled
// in publication order while distinct instances proceed in parallel. Failed
// event handlers are redelivered up to maxAttempts times.
type MemoryBus struct {
	log     *zap.Logger
	metrics *metrics.Metrics

	mu              sync.RWMutex
	commandHandlers map[string]contracts.CommandHandler
	subscriptions   map[string][]*subscription
	closed          bool

	keysMu      sync.Mutex
	commandKeys map[string]*sync.Mutex

	inflight sync.WaitGroup
	quit     chan struct{}
}

type subscription struct {
	handler contracts.EventHandler

	mu        sync.Mutex
	mailboxes map[string]chan messages.Envelope
}

func NewMemoryBus(logger *zap.Logger, m *metrics.Metrics) *MemoryBus {
	return &MemoryBus{
		log:             logger,
		metrics:         m,
		commandHandlers: make(map[string]contracts.CommandHandler),
		subscriptions:   make(map[string][]*subscription),
		commandKeys:     make(map[string]*sync.Mutex),
		quit:            make(chan struct{}),
	}
}

func (b *MemoryBus) RegisterHandler(commandName string, handler contracts.CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commandHandlers[commandName] = handler
}

func (b *MemoryBus) Send(ctx context.Context, envelope messages.Envelope) error {
	b.mu.RLock()
	handler, ok := b.commandHandlers[envelope.Name]
	b.mu.RUnlock()
	if !ok {
		return exceptions.ErrBusNoHandler(fmt.Errorf("command %s", envelope.Name))
	}

	// Commands targeting the same aggregate instance run one at a time.
	lock := b.commandKeyLock(envelope.Key)
	lock.Lock()
	defer lock.Unlock()

	b.metrics.IncrementBusDelivery(envelope.Name)
	return handler(ctx, envelope)
}

func (b *MemoryBus) commandKeyLock(key string) *sync.Mutex {
	b.keysMu.Lock()
	defer b.keysMu.Unlock()
	lock, ok := b.commandKeys[key]
	if !ok {
		lock = &sync.Mutex{}
		b.commandKeys[key] = lock
	}
	return lock
}

func (b *MemoryBus) Subscribe(eventName string, handler contracts.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[eventName] = append(b.subscriptions[eventName], &subscription{
		handler:   handler,
		mailboxes: make(map[string]chan messages.Envelope),
	})
}

func (b *MemoryBus) Publish(ctx context.Context, envelope messages.Envelope) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return exceptions.ErrBusPublish(fmt.Errorf("bus is stopped"))
	}
	subs := b.subscriptions[envelope.Name]
	b.mu.RUnlock()

	for _, sub := range subs {
		b.inflight.Add(1)
		sub.mailbox(b, envelope.Key) <- envelope
	}
	return nil
}

// Stop rejects further publishes and waits for queued events to drain.
func (b *MemoryBus) Stop() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.inflight.Wait()
	close(b.quit)
}

func (s *subscription) mailbox(b *MemoryBus, key string) chan messages.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.mailboxes[key]
	if !ok {
		ch = make(chan messages.Envelope, mailboxBuffer)
		s.mailboxes[key] = ch
		go s.run(b, ch)
	}
	return ch
}

func (s *subscription) run(b *MemoryBus, ch chan messages.Envelope) {
	for {
		select {
		case envelope := <-ch:
			s.deliver(b, envelope)
			b.inflight.Done()
		case <-b.quit:
			return
		}
	}
}

func (s *subscription) deliver(b *MemoryBus, envelope messages.Envelope) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		b.metrics.IncrementBusDelivery(envelope.Name)
		err := s.handler(context.Background(), envelope)
		if err == nil {
			return
		}

		b.log.Warn("bus.deliver handler failed",
			zap.String(constvars.LoggingMessageNameKey, envelope.Name),
			zap.String(constvars.LoggingMessageKeyKey, envelope.Key),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < maxAttempts {
			b.metrics.IncrementBusRedelivery(envelope.Name)
			time.Sleep(redeliveryDelay * time.Duration(attempt))
		}
	}

	b.metrics.IncrementBusDropped(envelope.Name)
	b.log.Error("bus.deliver dropping envelope after exhausting redelivery attempts",
		zap.String(constvars.LoggingMessageNameKey, envelope.Name),
		zap.String(constvars.LoggingMessageKeyKey, envelope.Key),
	)
}
