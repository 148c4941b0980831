// Package prayerkit is the session, authorization, and tier-enforcement core
// of the prayer-tracking client. It owns the single authenticated session for
// the process, stamps outbound requests with that session's bearer token,
// reacts to server-declared session invalidation (HTTP 401), and reconciles
// locally held resources against the active subscription tier.
//
// The package is designed for concurrent client workloads: Core methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// prayerkit is the public surface. It exposes [Core], [Builder], [Config],
// [SessionManager], [RequestAuthorizer], [ResponseInterceptor], [Transport],
// and value types (User, Settings, RequestDescriptor, MetricsSnapshot). Flow
// orchestration and audit dispatch live under internal/ and are never
// exported. Durable storage, the event bus, and the tier table live in the
// credstore, bus, and tier sub-packages.
//
// # What this package must NOT do
//
//   - Expose storage clients or persisted key layouts in its public API.
//   - Refresh or re-validate tokens locally: a bearer token is trusted until
//     the server answers 401. There is no refresh flow in this protocol.
//   - Leave the session tuple partially populated: token, user, and state
//     are always set and cleared as a unit.
package prayerkit
