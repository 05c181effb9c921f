package client

import (
	"context"
	"net/url"
)

// API is the request surface consumed by the domain services.
type API interface {
	Do(ctx context.Context, req *Request) (*Response, error)
	DoJSON(ctx context.Context, req *Request, out any) error
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
	Refresh(ctx context.Context) error
}

var _ API = (*HTTPClient)(nil)
