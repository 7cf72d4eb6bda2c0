package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r)
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Middleware wraps an outgoing transport
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain applies middlewares so that the first one is outermost
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// Logging creates logging middleware that logs outgoing HTTP requests.
// Headers and bodies are never logged since they carry credentials.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(r)

			duration := time.Since(start)
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("host", r.URL.Host),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", duration),
			}

			if err != nil {
				logger.Warn("http request failed", append(attrs, slog.String("error", err.Error()))...)
				return nil, err
			}

			logger.Debug("http request", append(attrs, slog.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}
