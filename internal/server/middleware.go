package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"beacon/internal/logging"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps inbound IDs we are willing to echo back
const maxRequestIDLength = 128

// requestIDMiddleware reuses the caller's request ID or generates one, echoes
// it on the response and stores it in the request context
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("http.request_id", id))

		next.ServeHTTP(w, r.WithContext(setRequestIDContext(r.Context(), id)))
	})
}

// accessLogMiddleware logs one debug line per request
func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		logging.Debug("%s %s %d %dB %s request_id=%s",
			r.Method, r.URL.Path, m.Code, m.Written, m.Duration, RequestIDFromContext(r.Context()))
	})
}

// recoverMiddleware turns a handler panic into a 500 response
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logging.Error("Panic serving %s %s (request_id=%s): %v\n%s",
				r.Method, r.URL.Path, RequestIDFromContext(r.Context()), rec, debug.Stack())
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
