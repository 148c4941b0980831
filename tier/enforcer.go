package tier

import "sync"

// Enforcer drives the blocking enforcement flow: it is armed when an
// evaluation comes back over-limit and re-checked after every deletion the
// user performs. There is deliberately no dismiss or bypass; the only
// transition out of an active enforcement is WithinLimits becoming true, at
// which point the resolved callback fires once for that episode.
type Enforcer struct {
	mu         sync.Mutex
	reconciler *Reconciler
	onResolved func()

	active bool
	tier   Tier
	last   EnforcementState
}

// NewEnforcer wires an enforcer over a reconciler. onResolved may be nil;
// the host normally points it at an event-bus publish.
func NewEnforcer(r *Reconciler, onResolved func()) *Enforcer {
	if r == nil {
		r = NewReconciler(nil)
	}
	return &Enforcer{reconciler: r, onResolved: onResolved}
}

// Begin evaluates the given tier and counts and arms enforcement when any
// overage exists. Calling Begin while already enforcing re-bases the episode
// on the new tier (a mid-flow downgrade tightens, never loosens, the gate).
func (e *Enforcer) Begin(t Tier, c Counts) EnforcementState {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.reconciler.Evaluate(t, c)
	e.tier = t
	e.last = state
	e.active = !state.WithinLimits
	return state
}

// Recheck re-evaluates the armed tier against fresh counts. On the edge from
// over-limit to within-limits it disarms and invokes the resolved callback
// exactly once. Recheck outside an active episode is a plain evaluation with
// no side effects.
func (e *Enforcer) Recheck(c Counts) EnforcementState {
	e.mu.Lock()
	state := e.reconciler.Evaluate(e.tier, c)
	e.last = state
	resolved := e.active && state.WithinLimits
	if resolved {
		e.active = false
	}
	cb := e.onResolved
	e.mu.Unlock()

	if resolved && cb != nil {
		cb()
	}
	return state
}

// Enforcing reports whether an enforcement episode is currently active.
func (e *Enforcer) Enforcing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Last returns the most recent evaluation of this enforcer.
func (e *Enforcer) Last() EnforcementState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}
