package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-tms/internal/domain/load"
	"freight-tms/internal/logger"
)

// Type classifies domain notifications consumers can subscribe to.
type Type string

const (
	TypeStatusChanged Type = "load.status_changed"
	TypeLoadDelivered Type = "load.delivered" // invoicing eligibility signal
	TypeOfferAccepted Type = "load.offer_accepted"
)

// Event is a domain notification emitted after a committed state change.
// Delivery is at-least-once and best-effort: losing an event never rolls
// back the change that produced it.
type Event struct {
	Type       Type
	LoadID     uuid.UUID
	TenantID   uuid.UUID
	OldStatus  load.Status
	NewStatus  load.Status
	Reason     string
	ActorID    *uuid.UUID
	OccurredAt time.Time
}

// Subscriber consumes events. Subscribers must not block for long; slow
// consumers delay everyone behind the same dispatcher.
type Subscriber func(Event)

// Publisher fans events out to subscribers from a single background
// goroutine. Publish never blocks the caller: when the buffer is full the
// event is dropped and logged.
type Publisher struct {
	mu          sync.RWMutex
	subscribers []Subscriber

	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

func NewPublisher(bufferSize int) *Publisher {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	p := &Publisher{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.dispatch()

	return p
}

// Subscribe registers a consumer for all subsequent events.
func (p *Publisher) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Publish enqueues an event without blocking.
func (p *Publisher) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return
	}

	select {
	case p.events <- e:
	default:
		logger.Warn("Event buffer full, dropping event",
			zap.String("type", string(e.Type)),
			zap.String("load_id", e.LoadID.String()),
		)
	}
}

func (p *Publisher) dispatch() {
	defer p.wg.Done()
	for {
		select {
		case e := <-p.events:
			p.deliver(e)
		case <-p.done:
			// Drain what is already buffered before exiting.
			for {
				select {
				case e := <-p.events:
					p.deliver(e)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) deliver(e Event) {
	p.mu.RLock()
	subs := make([]Subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Event subscriber panicked",
						zap.String("type", string(e.Type)),
						zap.Any("panic", r),
					)
				}
			}()
			fn(e)
		}()
	}
}

// Close stops the dispatcher after draining buffered events.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
}
