// Package client is the HTTP request pipeline shared by every docmind
// service.
//
// # Overview
//
// HTTPClient sends JSON, form or multipart requests to the backend under a
// configured base URL and timeout. Each outbound request carries the access
// token currently held in storage (read per request, not cached) and a fresh
// X-Request-ID.
//
// # Refresh and retry
//
// A 401 on a request that is not marked SkipAuth triggers exactly one
// refresh via POST {RefreshPath} with the stored refresh token. Concurrent
// 401s share a single refresh call. On success the new token is stored and
// the original request is replayed once; a second 401 is returned as an
// HTTPError. On failure all session keys are removed from storage, the
// Navigator is sent to the login path and the caller receives *AuthError.
//
// # Error Handling
//
//   - *NetworkError: no response (errors.Is ErrUnavailable)
//   - *HTTPError: non-2xx, Message from "detail" or "message"
//   - *ValidationError: raised by services before any request is made
//   - *AuthError: refresh failed, session torn down (errors.Is ErrUnauthorized)
//   - context.Canceled is returned unchanged
//
// UserMessage turns any of these into display text.
package client
