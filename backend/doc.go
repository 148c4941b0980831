// Package backend is the HTTP boundary to the prayer service: the
// authentication exchange that yields a (token, user) pair, profile and
// settings retrieval, resource counts for tier reconciliation, and the voice
// catalog metadata.
//
// Every call goes through the core's transport, so authorization stamping
// and 401-driven session invalidation are structural rather than per-call
// discipline. The login exchange itself is marked anonymous via
// [prayerkit.WithoutAuthorization].
package backend
