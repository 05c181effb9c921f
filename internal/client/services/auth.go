package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
)

// LoginError reports a failed credential exchange.
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string { return fmt.Sprintf("login error: %v", e.Err) }
func (e *LoginError) Unwrap() error { return e.Err }

// UserMessage keeps the server's wording for rejected credentials.
func (e *LoginError) UserMessage() string {
	var he *client.HTTPError
	if errors.As(e.Err, &he) && he.Status == http.StatusUnauthorized {
		return "Invalid email or password"
	}
	return client.UserMessage(e.Err)
}

// AuthService talks to /auth.
type AuthService struct {
	api client.API
}

func NewAuthService(api client.API) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for tokens. The backend expects an OAuth2
// password form where username carries the email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*client.TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &LoginError{Err: client.NewValidationError("credentials", "email and password are required")}
	}

	var pair client.TokenPair
	err := s.api.DoJSON(ctx, &client.Request{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Form:     url.Values{"username": {email}, "password": {password}},
		SkipAuth: true,
	}, &pair)
	if err != nil {
		return nil, &LoginError{Err: err}
	}
	if pair.AccessToken == "" {
		return nil, &LoginError{Err: errors.New("no access token in response")}
	}
	return &pair, nil
}

// ValidateRegistration checks what the backend would reject anyway.
func ValidateRegistration(req models.RegisterRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return client.NewValidationError("full_name", "is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil || !strings.Contains(req.Email, "@") {
		return client.NewValidationError("email", "is not a valid address")
	}
	if len(req.Password) < models.MinPasswordLength {
		return client.NewValidationError("password", "must be at least %d characters", models.MinPasswordLength)
	}
	return nil
}

// Register creates the account and returns the created user.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.api.DoJSON(ctx, &client.Request{
		Method:   http.MethodPost,
		Path:     "/auth/register",
		JSON:     req,
		SkipAuth: true,
	}, &user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

// Refresh posts refreshToken and returns the new pair. An empty
// refreshToken fails without a request.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*client.TokenPair, error) {
	if refreshToken == "" {
		return nil, client.ErrNoRefreshToken
	}

	var pair client.TokenPair
	err := s.api.DoJSON(ctx, &client.Request{
		Method:   http.MethodPost,
		Path:     "/auth/refresh",
		JSON:     map[string]string{"refresh_token": refreshToken},
		SkipAuth: true,
	}, &pair)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, errors.New("refresh: no access token in response")
	}
	return &pair, nil
}
