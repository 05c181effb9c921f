// Package storage is the client's persistent key/value adapter.
//
// Every operation is best-effort: failures of the backing repository are
// logged and swallowed, never returned. An Adapter without a repository
// behaves as a headless environment where nothing is stored.
package storage

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/docmind/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docmind/internal/logging"
)

// Storage is the contract shared by the HTTP client and the stores.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

// Adapter implements Storage over a metadata.Repository.
type Adapter struct {
	repo   metadata.Repository
	logger logging.Logger
}

// New returns an Adapter. A nil repo yields a no-op adapter.
func New(repo metadata.Repository, logger logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Adapter{repo: repo, logger: logger}
}

// Headless returns an adapter that stores nothing.
func Headless() *Adapter {
	return New(nil, nil)
}

// Available reports whether values survive the call.
func (a *Adapter) Available() bool {
	return a != nil && a.repo != nil
}

func (a *Adapter) Get(ctx context.Context, key string) (string, bool) {
	if !a.Available() {
		return "", false
	}
	v, err := a.repo.Get(ctx, key)
	if err != nil {
		a.logger.Warn(ctx, "storage get failed", "key", key, "error", err)
		return "", false
	}
	if v == nil {
		return "", false
	}
	return string(v), true
}

func (a *Adapter) Set(ctx context.Context, key, value string) {
	if !a.Available() {
		return
	}
	if err := a.repo.Set(ctx, key, []byte(value)); err != nil {
		a.logger.Warn(ctx, "storage set failed", "key", key, "error", err)
	}
}

func (a *Adapter) Remove(ctx context.Context, key string) {
	if !a.Available() {
		return
	}
	if err := a.repo.Delete(ctx, key); err != nil {
		a.logger.Warn(ctx, "storage remove failed", "key", key, "error", err)
	}
}

// RemoveAll drops keys in one repository call.
func (a *Adapter) RemoveAll(ctx context.Context, keys ...string) {
	if !a.Available() {
		return
	}
	if err := a.repo.DeleteMany(ctx, keys...); err != nil {
		a.logger.Warn(ctx, "storage remove failed", "keys", keys, "error", err)
	}
}

// RemoveKeys removes keys from s, batching when s is an *Adapter.
func RemoveKeys(ctx context.Context, s Storage, keys ...string) {
	if a, ok := s.(*Adapter); ok {
		a.RemoveAll(ctx, keys...)
		return
	}
	for _, k := range keys {
		s.Remove(ctx, k)
	}
}

// LoadJSON decodes the value under key into dst. It reports false when the
// key is absent or its value does not decode; a corrupted blob is treated as
// missing.
func LoadJSON(ctx context.Context, s Storage, key string, dst any) bool {
	raw, ok := s.Get(ctx, key)
	if !ok || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

// SaveJSON stores v encoded as JSON. Encoding failures are dropped like any
// other storage fault.
func SaveJSON(ctx context.Context, s Storage, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(ctx, key, string(b))
}
