package webclient

import (
	"net/http"
	"time"
)

// Request is a transport-agnostic HTTP request.
type Request struct {
	// Method is the HTTP verb; empty defaults to GET.
	Method string

	// URL is the absolute target URL.
	URL string

	// Headers are added to the outgoing request as-is.
	Headers http.Header

	// Body is the raw request body, if any.
	Body []byte
}

// Response is the transport-agnostic result of executing a Request.
type Response struct {
	// Request points back to the originating request.
	Request *Request

	// Body is the fully read response body.
	Body []byte

	// Headers are the response headers.
	Headers http.Header

	// StatusCode is the HTTP status code.
	StatusCode int

	// FetchedAt is when the response was received.
	FetchedAt time.Time
}
