package webdav

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// newTransport returns an http.Transport whose connection pool holds at
// least concurrency connections per host, so workers never queue for one.
func newTransport(concurrency int) *http.Transport {
	// copied from net/http
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          max(100, concurrency),
		MaxIdleConnsPerHost:   concurrency,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// authRoundTripper adds basic auth and the user agent to every request
// and logs the round trip at debug level.
type authRoundTripper struct {
	rt        http.RoundTripper
	user      string
	password  string
	userAgent string
	logger    *slog.Logger
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.user, t.password)
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.rt.RoundTrip(req)
	if err != nil {
		t.logger.Debug("request failed", "method", req.Method, "url", req.URL.Redacted(), "error", err)
		return nil, err
	}
	t.logger.Debug("request done",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	return resp, nil
}
