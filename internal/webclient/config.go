package webclient

import "time"

// Backend names a registered transport implementation.
type Backend string

const (
	BackendNetHTTP Backend = "nethttp"
)

// Config is the minimal configuration required for constructing a WebClient.
type Config struct {
	// Backend selects the registered transport; empty means nethttp.
	Backend Backend

	// Timeout bounds a single round trip. Zero means the backend default.
	Timeout time.Duration
}
