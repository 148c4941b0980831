package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives the payload published with an event. Payloads may be nil;
// the core's own events carry none and consumers re-query current state.
type Handler func(payload any)

// Subscription identifies one registered handler and can cancel it.
type Subscription struct {
	bus   *Bus
	event string
	id    string
}

// Cancel removes the subscription from its bus. Cancel is idempotent.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Unsubscribe(s)
}

// Bus defines a public type used by prayerkit APIs.
//
// Bus instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[string]Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[string]map[string]Handler)}
}

// Subscribe registers a handler for an event and returns its handle.
// A nil handler returns a handle that delivers nothing.
func (b *Bus) Subscribe(event string, h Handler) *Subscription {
	sub := &Subscription{bus: b, event: event, id: uuid.NewString()}
	if h == nil {
		return sub
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	handlers, ok := b.subs[event]
	if !ok {
		handlers = make(map[string]Handler)
		b.subs[event] = handlers
	}
	handlers[sub.id] = h
	return sub
}

// Unsubscribe removes a previously returned subscription. Unknown or
// already-cancelled handles are no-ops.
func (b *Bus) Unsubscribe(s *Subscription) {
	if b == nil || s == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if handlers, ok := b.subs[s.event]; ok {
		delete(handlers, s.id)
		if len(handlers) == 0 {
			delete(b.subs, s.event)
		}
	}
}

// Publish delivers payload to every handler currently subscribed to event,
// synchronously, on the calling goroutine. The subscriber set is snapshotted
// under lock before dispatch so handlers may subscribe or cancel without
// deadlocking.
func (b *Bus) Publish(event string, payload any) {
	if b == nil {
		return
	}

	b.mu.RLock()
	snapshot := make([]Handler, 0, len(b.subs[event]))
	for _, h := range b.subs[event] {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(payload)
	}
}

// SubscriberCount reports how many handlers are registered for event.
func (b *Bus) SubscriberCount(event string) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[event])
}
