// Package credstore is the durable key-value persistence surface for the
// session core: the bearer token, the user identity fields, the entitlement
// snapshot, and the collaborator-owned resource caches cleared on logout.
//
// The store holds no policy. Login replaces the whole session key set
// atomically, logout deletes it atomically; partial writes are never
// observable across process restarts. Three implementations ship: a
// Redis-backed store for hosted deployments, a JSON file store for
// single-device use, and an in-memory store for tests.
package credstore
