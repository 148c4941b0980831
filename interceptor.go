package prayerkit

import (
	"context"
	"net/http"
)

// ResponseInterceptor watches every response status and corrects the global
// session state when the server declares the session dead. 401 is the sole
// trigger; no other status is treated as an authorization signal.
//
// The check is unconditional: it runs whether or not the calling feature
// treats the 401 as a domain error, so session state always reflects
// server-declared reality no matter which endpoint surfaced it. Invalidate
// is idempotent, so concurrent observers of simultaneous 401s serialize into
// one net transition and one session-expired event.
type ResponseInterceptor struct {
	session *SessionManager
	metrics *Metrics
}

func newResponseInterceptor(session *SessionManager, metrics *Metrics) *ResponseInterceptor {
	return &ResponseInterceptor{session: session, metrics: metrics}
}

// Observe must be called with the response status of every API call, before
// the payload is interpreted.
func (i *ResponseInterceptor) Observe(statusCode int) {
	if statusCode != http.StatusUnauthorized {
		return
	}
	i.metrics.Inc(MetricUnauthorizedObserved)
	_ = i.session.Invalidate(context.Background())
}
