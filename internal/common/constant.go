// Package common contains shared constants and sentinel errors used across
// docmind components.
package common

// Header names attached to every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Keys of the local persistent store.
//
// AccessTokenKey, RefreshTokenKey and UserKey hold raw session values read by
// the HTTP client on every request. AuthStateKey and SettingsStateKey hold the
// whitelisted JSON blobs used to rehydrate stores after a restart.
const (
	AccessTokenKey   = "access_token"
	RefreshTokenKey  = "refresh_token"
	UserKey          = "user"
	AuthStateKey     = "auth-storage"
	SettingsStateKey = "settings-storage"
)

// SessionKeys lists every key that belongs to the authenticated session and
// must be wiped on logout or failed refresh.
var SessionKeys = []string{AccessTokenKey, RefreshTokenKey, UserKey, AuthStateKey}
