// Package webclient abstracts the HTTP transport used to reach the scoring
// service. Backends register themselves by name; the default is the net/http
// implementation.
package webclient

import "context"

type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
