package prayerkit

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lumenworks/prayerkit/bus"
	"github.com/lumenworks/prayerkit/credstore"
	internalaudit "github.com/lumenworks/prayerkit/internal/audit"
	"github.com/lumenworks/prayerkit/tier"
)

// Core defines a public type used by prayerkit APIs.
//
// Core instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// One Core exists per process; it is constructed once at startup through
// [Builder.Build] and handed to every component that needs session or
// entitlement data.
type Core struct {
	config      Config
	logger      zerolog.Logger
	store       credstore.Store
	events      *bus.Bus
	metrics     *Metrics
	audit       *internalaudit.Dispatcher
	session     *SessionManager
	authorizer  *RequestAuthorizer
	interceptor *ResponseInterceptor
	reconciler  *tier.Reconciler
	enforcer    *tier.Enforcer
}

// Session returns the session manager.
func (c *Core) Session() *SessionManager {
	return c.session
}

// Authorizer returns the request authorizer.
func (c *Core) Authorizer() *RequestAuthorizer {
	return c.authorizer
}

// Interceptor returns the response interceptor.
func (c *Core) Interceptor() *ResponseInterceptor {
	return c.interceptor
}

// Bus returns the process-wide event bus.
func (c *Core) Bus() *bus.Bus {
	return c.events
}

// Reconciler returns the tier reconciler.
func (c *Core) Reconciler() *tier.Reconciler {
	return c.reconciler
}

// Enforcer returns the tier enforcer bound to this core's bus.
func (c *Core) Enforcer() *tier.Enforcer {
	return c.enforcer
}

// Transport wraps base into the authorizing round tripper. A nil base uses
// [http.DefaultTransport].
func (c *Core) Transport(base http.RoundTripper) *Transport {
	return &Transport{
		base:        base,
		authorizer:  c.authorizer,
		interceptor: c.interceptor,
		userAgent:   c.config.HTTP.UserAgent,
		logger:      c.logger,
	}
}

// HTTPClient returns a ready client over [Core.Transport] with the
// configured timeout.
func (c *Core) HTTPClient(base http.RoundTripper) *http.Client {
	return &http.Client{
		Transport: c.Transport(base),
		Timeout:   c.config.HTTP.Timeout,
	}
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Core) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

// AuditDropped reports audit events discarded under buffer pressure.
func (c *Core) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// Close flushes and stops the audit dispatcher. The credential store is
// caller-owned and left open.
func (c *Core) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// publishTierResolved is the enforcer's resolved callback: the episode ended
// because every count converged under its ceiling.
func (c *Core) publishTierResolved() {
	c.metrics.Inc(MetricEnforcementResolved)
	emitAudit(c.audit, auditEventEnforcementResolved, c.currentUserOrZero(), true, "")
	c.events.Publish(EventTierResolved, nil)
}

// BeginEnforcement evaluates the current user's tier against counts and arms
// the blocking enforcement flow when any ceiling is exceeded. An anonymous
// session evaluates as free tier, the explicit absent-entitlement policy.
func (c *Core) BeginEnforcement(counts tier.Counts) tier.EnforcementState {
	t := tier.Free
	if user, ok := c.session.CurrentUser(); ok {
		t = user.Tier
	}
	state := c.enforcer.Begin(t, counts)
	if !state.WithinLimits {
		c.metrics.Inc(MetricEnforcementEntered)
		emitAudit(c.audit, auditEventEnforcementEntered, c.currentUserOrZero(), false, "")
		c.logger.Info().Interface("overage", state.Overage).Msg("tier enforcement entered")
	}
	return state
}

func (c *Core) currentUserOrZero() User {
	user, _ := c.session.CurrentUser()
	return user
}
