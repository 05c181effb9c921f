package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/storage"
	"github.com/dmitrijs2005/docmind/internal/common"
	"github.com/dmitrijs2005/docmind/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Navigator performs the forced redirect after a failed refresh.
type Navigator interface {
	Navigate(path string)
}

// Options configures an HTTPClient. BaseURL and Storage are required.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Storage     storage.Storage
	Navigator   Navigator
	LoginPath   string
	RefreshPath string
	Logger      logging.Logger

	// HTTPClient overrides the transport; its Timeout is replaced by Timeout
	// when that is set.
	HTTPClient *http.Client
}

// HTTPClient is the single request pipeline used by every service.
//
// Outbound, it attaches the stored access token and a request id. Inbound, it
// maps failures to NetworkError or HTTPError and, on a 401, refreshes the
// token once and replays the request once.
type HTTPClient struct {
	baseURL     *url.URL
	http        *http.Client
	storage     storage.Storage
	navigator   Navigator
	loginPath   string
	refreshPath string
	logger      logging.Logger

	refreshGroup singleflight.Group
}

// New validates opts and builds an HTTPClient.
func New(opts Options) (*HTTPClient, error) {
	if opts.Storage == nil {
		return nil, errors.New("client: storage is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must be http or https", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	} else {
		cp := *hc
		hc = &cp
	}
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}

	c := &HTTPClient{
		baseURL:     base,
		http:        hc,
		storage:     opts.Storage,
		navigator:   opts.Navigator,
		loginPath:   opts.LoginPath,
		refreshPath: opts.RefreshPath,
		logger:      opts.Logger,
	}
	if c.loginPath == "" {
		c.loginPath = "/login"
	}
	if c.refreshPath == "" {
		c.refreshPath = "/auth/refresh"
	}
	if c.logger == nil {
		c.logger = logging.NopLogger{}
	}
	return c, nil
}

// Do sends req and returns the response of a 2xx reply.
func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := req.encode()
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, body)
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized && !req.SkipAuth {
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		// replayed once; a second 401 is reported as is
		resp, err = c.send(ctx, req, body)
		if err != nil {
			return nil, err
		}
	}

	if resp.Status < 200 || resp.Status > 299 {
		return resp, &HTTPError{Status: resp.Status, Message: errorMessage(resp.Body)}
	}
	return resp, nil
}

// DoJSON sends req and decodes a successful body into out (which may be nil).
func (c *HTTPClient) DoJSON(ctx context.Context, req *Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// Get is DoJSON for a GET with query parameters.
func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.DoJSON(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post is DoJSON for a POST with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, in, out any) error {
	return c.DoJSON(ctx, &Request{Method: http.MethodPost, Path: path, JSON: in}, out)
}

// Put is DoJSON for a PUT with a JSON body.
func (c *HTTPClient) Put(ctx context.Context, path string, in, out any) error {
	return c.DoJSON(ctx, &Request{Method: http.MethodPut, Path: path, JSON: in}, out)
}

// Delete is DoJSON for a DELETE.
func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	return c.DoJSON(ctx, &Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// send performs one round trip. The access token is read from storage at
// this moment, so a token rotated by a concurrent refresh is picked up by the
// replay.
func (c *HTTPClient) send(ctx context.Context, req *Request, body *encodedBody) (*Response, error) {
	var rdr io.Reader
	if len(body.data) > 0 {
		rdr = bytes.NewReader(body.data)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, c.endpoint(req.Path, req.Query), rdr)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("Accept", "application/json")
	if body.contentType != "" {
		hreq.Header.Set("Content-Type", body.contentType)
	}

	requestID := uuid.NewString()
	hreq.Header.Set(common.RequestIDHeaderName, requestID)

	if !req.SkipAuth {
		if token, ok := c.storage.Get(ctx, common.AccessTokenKey); ok && token != "" {
			hreq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	hresp, err := c.http.Do(hreq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Debug(ctx, "request failed", "method", req.Method, "path", req.Path, "request_id", requestID, "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer hresp.Body.Close()

	data, err := io.ReadAll(hresp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &NetworkError{Err: err}
	}

	c.logger.Debug(ctx, "request finished",
		"method", req.Method, "path", req.Path, "status", hresp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	return &Response{Status: hresp.StatusCode, Header: hresp.Header, Body: data}, nil
}

// TokenPair is the body of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// refresh obtains a new access token. Concurrent callers share one refresh
// call. The shared call is detached from any single caller's cancellation;
// a caller whose ctx ends stops waiting but does not abort the others.
func (c *HTTPClient) refresh(ctx context.Context) error {
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		rctx := context.WithoutCancel(ctx)
		if c.http.Timeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(rctx, c.http.Timeout)
			defer cancel()
		}
		return nil, c.doRefresh(rctx)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (c *HTTPClient) doRefresh(ctx context.Context) error {
	err := c.exchangeRefreshToken(ctx)
	if err == nil {
		return nil
	}

	c.logger.Warn(ctx, "token refresh failed, ending session", "error", err)
	storage.RemoveKeys(ctx, c.storage, common.SessionKeys...)
	if c.navigator != nil {
		c.navigator.Navigate(c.loginPath)
	}
	return &AuthError{Err: err}
}

func (c *HTTPClient) exchangeRefreshToken(ctx context.Context) error {
	rt, ok := c.storage.Get(ctx, common.RefreshTokenKey)
	if !ok || rt == "" {
		return ErrNoRefreshToken
	}

	req := &Request{
		Method:   http.MethodPost,
		Path:     c.refreshPath,
		JSON:     map[string]string{"refresh_token": rt},
		SkipAuth: true,
	}
	body, err := req.encode()
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, req, body)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return &HTTPError{Status: resp.Status, Message: errorMessage(resp.Body)}
	}

	var pair TokenPair
	if err := json.Unmarshal(resp.Body, &pair); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" {
		return errors.New("refresh response has no access token")
	}

	c.storage.Set(ctx, common.AccessTokenKey, pair.AccessToken)
	if pair.RefreshToken != "" {
		c.storage.Set(ctx, common.RefreshTokenKey, pair.RefreshToken)
	}
	c.logger.Info(ctx, "access token refreshed")
	return nil
}

// Refresh forces a token refresh outside the 401 path. Failure tears the
// session down exactly like a failed automatic refresh.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	return c.refresh(ctx)
}
