// Package bus is a minimal process-wide publish/subscribe channel used to
// decouple the session core from its observers.
//
// Dispatch is synchronous on the publishing goroutine and handlers must not
// block. Past events are never replayed: a subscriber registered after a
// publish does not see it. Delivery is at-least-once to every handler
// subscribed at publish time, so handlers are expected to be idempotent.
package bus
