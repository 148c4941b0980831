package bus

import (
	"testing"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	b := New()

	var first, second int
	b.Subscribe("session.expired", func(any) { first++ })
	b.Subscribe("session.expired", func(any) { second++ })

	b.Publish("session.expired", nil)

	if first != 1 || second != 1 {
		t.Fatalf("expected one delivery each, got %d and %d", first, second)
	}
}

func TestPublishIsScopedToEventName(t *testing.T) {
	b := New()

	var hits int
	b.Subscribe("tier.resolved", func(any) { hits++ })

	b.Publish("session.expired", nil)

	if hits != 0 {
		t.Fatalf("handler received a foreign event %d times", hits)
	}
}

func TestLateSubscriberSeesNothing(t *testing.T) {
	b := New()

	b.Publish("session.expired", nil)

	var hits int
	b.Subscribe("session.expired", func(any) { hits++ })
	if hits != 0 {
		t.Fatalf("late subscriber replayed %d events", hits)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()

	var hits int
	sub := b.Subscribe("session.expired", func(any) { hits++ })
	b.Publish("session.expired", nil)
	sub.Cancel()
	sub.Cancel() // idempotent
	b.Publish("session.expired", nil)

	if hits != 1 {
		t.Fatalf("expected one delivery before cancel, got %d", hits)
	}
	if b.SubscriberCount("session.expired") != 0 {
		t.Fatalf("expected no subscribers, got %d", b.SubscriberCount("session.expired"))
	}
}

func TestPayloadIsForwarded(t *testing.T) {
	b := New()

	var got any
	b.Subscribe("custom", func(payload any) { got = payload })
	b.Publish("custom", 42)

	if got != 42 {
		t.Fatalf("expected payload 42, got %v", got)
	}
}

func TestHandlerMaySubscribeDuringDispatch(t *testing.T) {
	b := New()

	var nested int
	b.Subscribe("session.expired", func(any) {
		b.Subscribe("session.expired", func(any) { nested++ })
	})

	// Must not deadlock; the nested handler joins for later publishes only.
	b.Publish("session.expired", nil)
	if nested != 0 {
		t.Fatalf("nested handler ran during its own registration publish: %d", nested)
	}
	b.Publish("session.expired", nil)
	if nested != 1 {
		t.Fatalf("expected nested delivery on the next publish, got %d", nested)
	}
}

func TestHandlerMayCancelItselfDuringDispatch(t *testing.T) {
	b := New()

	var hits int
	var sub *Subscription
	sub = b.Subscribe("session.expired", func(any) {
		hits++
		sub.Cancel()
	})

	b.Publish("session.expired", nil)
	b.Publish("session.expired", nil)

	if hits != 1 {
		t.Fatalf("self-cancelling handler ran %d times", hits)
	}
}

func TestNilHandlerIsInert(t *testing.T) {
	b := New()

	sub := b.Subscribe("session.expired", nil)
	b.Publish("session.expired", nil)
	sub.Cancel()
}
