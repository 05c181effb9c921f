// Package tokens reads claims from backend access tokens.
//
// Tokens are parsed without signature verification: the client never holds
// the signing key and only uses the claims for display and for building the
// local user record. Every trust decision stays on the server.
package tokens

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/docmind/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by the backend's access token. Subject is the user's email.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Email returns the subject claim.
func (c *Claims) Email() string {
	return c.Subject
}

// Expiry returns the expiry, or the zero time when the claim is absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Expired reports whether the token has an expiry at or before now.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !now.Before(exp)
}

// Parse extracts claims from a compact JWT without verifying it.
func Parse(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}
