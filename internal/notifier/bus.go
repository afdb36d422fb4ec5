package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler receives an emitted event. It runs on the emitter's goroutine.
type Handler func(ctx context.Context, e Event)

// Publisher is the emitting half of the bus, which is all services need.
type Publisher interface {
	Emit(ctx context.Context, e Event)
}

type subscription struct {
	id      uint64
	filter  EventType
	handler Handler
}

// Bus is an in-process publish/subscribe hub. Delivery is synchronous and
// follows subscription order; nothing is persisted or replayed.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	nextID uint64
	logger *slog.Logger
	now    func() time.Time
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger, now: time.Now}
}

// Subscribe registers h for eventType (or Wildcard) and returns a func that
// removes the subscription. Calling it more than once is harmless.
func (b *Bus) Subscribe(eventType EventType, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	sub := &subscription{id: b.nextID, filter: eventType, handler: h}
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub.id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Emit stamps e with an id and time when missing and delivers it to every
// matching subscriber. A panicking handler is logged and skipped.
func (b *Bus) Emit(ctx context.Context, e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = b.now().UTC()
	}

	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.filter == Wildcard || s.filter == e.Type {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range targets {
		b.deliver(ctx, s, e)
	}
}

func (b *Bus) deliver(ctx context.Context, s *subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked",
				"event_type", e.Type,
				"event_id", e.ID,
				"subscription", s.id,
				"panic", r,
			)
		}
	}()
	s.handler(ctx, e)
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
