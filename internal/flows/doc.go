// Package flows contains the persistence orchestration for the session
// lifecycle: restoring a session at process start, committing a login, and
// clearing everything on logout. Flows hold no session state of their own;
// the host passes dependencies explicitly and owns the in-memory tuple.
package flows
