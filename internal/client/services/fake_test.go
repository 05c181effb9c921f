package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/docmind/internal/client/client"
)

// fakeAPI implements client.API for unit tests.
type fakeAPI struct {
	// behaviour
	RespBody string
	Err      error

	// captured
	Calls        int
	LastRequest  *client.Request
	RefreshCalls int
}

func (f *fakeAPI) Do(_ context.Context, req *client.Request) (*client.Response, error) {
	f.Calls++
	f.LastRequest = req
	if f.Err != nil {
		return nil, f.Err
	}
	return &client.Response{Status: http.StatusOK, Body: []byte(f.RespBody)}, nil
}

func (f *fakeAPI) DoJSON(ctx context.Context, req *client.Request, out any) error {
	resp, err := f.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (f *fakeAPI) Get(ctx context.Context, path string, query url.Values, out any) error {
	return f.DoJSON(ctx, &client.Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (f *fakeAPI) Post(ctx context.Context, path string, in, out any) error {
	return f.DoJSON(ctx, &client.Request{Method: http.MethodPost, Path: path, JSON: in}, out)
}

func (f *fakeAPI) Put(ctx context.Context, path string, in, out any) error {
	return f.DoJSON(ctx, &client.Request{Method: http.MethodPut, Path: path, JSON: in}, out)
}

func (f *fakeAPI) Delete(ctx context.Context, path string, out any) error {
	return f.DoJSON(ctx, &client.Request{Method: http.MethodDelete, Path: path}, out)
}

func (f *fakeAPI) Refresh(context.Context) error {
	f.RefreshCalls++
	return nil
}

var _ client.API = (*fakeAPI)(nil)
