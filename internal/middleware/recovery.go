package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery creates middleware that turns a panicking transport into an error
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (resp *http.Response, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						slog.Any("error", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					resp = nil
					if e, ok := rec.(error); ok {
						err = fmt.Errorf("transport panic: %w", e)
					} else {
						err = fmt.Errorf("transport panic: %v", rec)
					}
				}
			}()

			return next.RoundTrip(r)
		})
	}
}
