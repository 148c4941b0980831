package prayerkit

import "net/http"

// RequestAuthorizer builds outbound request descriptors from the current
// session. It is stateless beyond that read: Authorize performs no I/O and
// has no side effects, so it is safe on any goroutine.
type RequestAuthorizer struct {
	session *SessionManager
	metrics *Metrics
}

func newRequestAuthorizer(session *SessionManager, metrics *Metrics) *RequestAuthorizer {
	return &RequestAuthorizer{session: session, metrics: metrics}
}

// Authorize returns the descriptor for an authenticated request: the bearer
// authorization header and a JSON content type. When no token is held it
// fails fast with [ErrUnauthorized] before any network round trip is wasted.
func (a *RequestAuthorizer) Authorize(targetURL, method string) (RequestDescriptor, error) {
	token, ok := a.session.Token()
	if !ok {
		a.metrics.Inc(MetricAuthorizeDenied)
		return RequestDescriptor{}, ErrUnauthorized
	}

	header := make(http.Header, 2)
	header.Set("Authorization", "Bearer "+token)
	header.Set("Content-Type", "application/json")

	return RequestDescriptor{
		Method: method,
		URL:    targetURL,
		Header: header,
	}, nil
}
