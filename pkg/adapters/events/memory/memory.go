package memory

import (
	"context"
	"sync"

	"github.com/aescanero/treed/pkg/domain"
	"github.com/aescanero/treed/pkg/ports"
)

// InMemoryEventBus implements EventBus using in-process handler fan-out.
type InMemoryEventBus struct {
	subscribers map[string][]subscription
	nextSubID   int
	mu          sync.RWMutex
}

type subscription struct {
	id      int
	handler ports.EventHandler
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[string][]subscription),
	}
}

// Publish publishes an event to all subscribers of a topic
func (e *InMemoryEventBus) Publish(ctx context.Context, topic string, event domain.Event) error {
	e.mu.RLock()
	subs := make([]subscription, len(e.subscribers[topic]))
	copy(subs, e.subscribers[topic])
	e.mu.RUnlock()

	// Handlers run asynchronously; handler errors are the handler's problem.
	for _, sub := range subs {
		go func(h ports.EventHandler) {
			_ = h(ctx, event)
		}(sub.handler)
	}

	return nil
}

// Subscribe subscribes to events on a specific topic
func (e *InMemoryEventBus) Subscribe(ctx context.Context, topic string, handler ports.EventHandler) error {
	e.mu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[topic] = append(e.subscribers[topic], subscription{id: id, handler: handler})
	e.mu.Unlock()

	// Clean up the subscription when the subscriber's context ends.
	go func() {
		<-ctx.Done()
		e.unsubscribe(topic, id)
	}()

	return nil
}

// Close closes the event bus and cleans up resources
func (e *InMemoryEventBus) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subscribers = make(map[string][]subscription)
	return nil
}

// unsubscribe removes a single subscription from a topic
func (e *InMemoryEventBus) unsubscribe(topic string, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.subscribers[topic]
	for i, sub := range subs {
		if sub.id == id {
			e.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}
