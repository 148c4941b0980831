package prayerkit

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Transport is an [http.RoundTripper] that makes the authorization contract
// structural: every request through it is stamped by the authorizer before
// I/O and every response status is fed to the interceptor before the caller
// sees the payload. A new endpoint integration cannot forget the 401 check
// because it never sees a response the interceptor has not.
type Transport struct {
	base        http.RoundTripper
	authorizer  *RequestAuthorizer
	interceptor *ResponseInterceptor
	userAgent   string
	logger      zerolog.Logger
}

// RoundTrip implements [http.RoundTripper]. Requests whose context carries
// [WithoutAuthorization] go out unstamped; everything else fails fast with
// [ErrUnauthorized] when no session is held.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if skipAuthFromContext(req.Context()) {
		if out.Header.Get("Content-Type") == "" {
			out.Header.Set("Content-Type", "application/json")
		}
	} else {
		desc, err := t.authorizer.Authorize(req.URL.String(), req.Method)
		if err != nil {
			return nil, err
		}
		for name, values := range desc.Header {
			out.Header[name] = values
		}
	}

	if t.userAgent != "" && out.Header.Get("User-Agent") == "" {
		out.Header.Set("User-Agent", t.userAgent)
	}
	if id := requestIDFromContext(req.Context()); id != "" {
		out.Header.Set("X-Request-ID", id)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	t.interceptor.Observe(resp.StatusCode)
	if resp.StatusCode == http.StatusUnauthorized {
		t.logger.Debug().Str("url", req.URL.Path).Msg("401 observed, session invalidated")
	}
	return resp, nil
}
