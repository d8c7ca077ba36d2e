package testutil

import (
	"net/http"
	"time"

	"unitbridge/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock, as the request-time
// middleware would.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestID sets the request id, as the request-id middleware would.
func WithRequestID(req *http.Request, id string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), id))
}
