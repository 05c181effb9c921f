package stores

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/storage"
	"github.com/dmitrijs2005/docmind/internal/client/tokens"
	"github.com/dmitrijs2005/docmind/internal/common"
	"github.com/dmitrijs2005/docmind/internal/logging"
)

// AuthStatus is the position of the session in its lifecycle.
type AuthStatus string

const (
	StatusAnonymous      AuthStatus = "anonymous"
	StatusAuthenticating AuthStatus = "authenticating"
	StatusAuthenticated  AuthStatus = "authenticated"
)

// AuthAPI is the part of services.AuthService the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.TokenPair, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*client.TokenPair, error)
}

// AuthState is a snapshot of the auth store.
type AuthState struct {
	Status  AuthStatus
	Session models.Session
	Error   string
}

// AuthStore owns the session.
type AuthStore struct {
	mu    sync.RWMutex
	state AuthState

	api     AuthAPI
	storage storage.Storage
	logger  logging.Logger
}

func NewAuthStore(api AuthAPI, st storage.Storage, logger logging.Logger) *AuthStore {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &AuthStore{
		state:   AuthState{Status: StatusAnonymous},
		api:     api,
		storage: st,
		logger:  logger,
	}
}

func (s *AuthStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.Session.User != nil {
		u := *st.Session.User
		st.Session.User = &u
	}
	return st
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Session.IsAuthenticated
}

// ClearError drops the recorded error message.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

// Login exchanges credentials and builds the session. The user record is
// synthesized from email and the token's user_id claim; the profile is not
// fetched.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	prev := s.state.Status
	s.state.Status = StatusAuthenticating
	s.state.Error = ""
	s.mu.Unlock()

	pair, err := s.api.Login(ctx, email, password)
	if cancelled(ctx) {
		s.mu.Lock()
		s.state.Status = prev
		s.mu.Unlock()
		return ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.state.Status = prev
		s.state.Error = userMessage(err)
		s.mu.Unlock()
		s.logger.Info(ctx, "login failed", "error", err)
		return err
	}

	user := synthesizeUser(strings.TrimSpace(email), pair.AccessToken)
	sess := models.Session{User: user, AccessToken: pair.AccessToken, IsAuthenticated: true}
	s.persist(ctx, sess, pair.RefreshToken)

	s.mu.Lock()
	s.state = AuthState{Status: StatusAuthenticated, Session: sess}
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

func synthesizeUser(email, accessToken string) *models.User {
	u := &models.User{Email: email, IsActive: true}
	if claims, err := tokens.Parse(accessToken); err == nil {
		u.ID = claims.UserID
	}
	return u
}

func (s *AuthStore) persist(ctx context.Context, sess models.Session, refreshToken string) {
	s.storage.Set(ctx, common.AccessTokenKey, sess.AccessToken)
	if refreshToken != "" {
		s.storage.Set(ctx, common.RefreshTokenKey, refreshToken)
	}
	storage.SaveJSON(ctx, s.storage, common.UserKey, sess.User)
	storage.SaveJSON(ctx, s.storage, common.AuthStateKey, sess)
}

// Register creates the account and then logs in with the same credentials.
// Failures come back as *RegistrationError.
func (s *AuthStore) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()

	user, err := s.api.Register(ctx, req)
	if err != nil {
		if cancelled(ctx) {
			return nil, ctx.Err()
		}
		rerr := &RegistrationError{Err: err}
		s.setError(rerr)
		return nil, rerr
	}

	if err := s.Login(ctx, req.Email, req.Password); err != nil {
		rerr := &RegistrationError{AccountCreated: true, Err: err}
		if !cancelled(ctx) {
			s.setError(rerr)
		}
		s.logger.Warn(ctx, "account created, auto-login failed", "error", err)
		return user, rerr
	}
	return user, nil
}

func (s *AuthStore) setError(err error) {
	s.mu.Lock()
	s.state.Error = userMessage(err)
	s.mu.Unlock()
}

// Logout wipes the session keys and resets to anonymous.
func (s *AuthStore) Logout(ctx context.Context) {
	storage.RemoveKeys(ctx, s.storage, common.SessionKeys...)

	s.mu.Lock()
	s.state = AuthState{Status: StatusAnonymous}
	s.mu.Unlock()
}

// CheckAuth reconciles the in-memory session with storage. It reports true
// and rehydrates the session when both a token and a user are stored;
// otherwise the session is cleared.
func (s *AuthStore) CheckAuth(ctx context.Context) bool {
	token, ok := s.storage.Get(ctx, common.AccessTokenKey)
	var user models.User
	if ok && token != "" && storage.LoadJSON(ctx, s.storage, common.UserKey, &user) && user.Email != "" {
		s.mu.Lock()
		s.state.Status = StatusAuthenticated
		s.state.Session = models.Session{User: &user, AccessToken: token, IsAuthenticated: true}
		s.mu.Unlock()
		return true
	}

	s.mu.Lock()
	s.state.Status = StatusAnonymous
	s.state.Session = models.Session{}
	s.mu.Unlock()
	return false
}

// Restore rehydrates from the persisted session blob at startup, filling
// raw keys that are missing, and then runs CheckAuth.
func (s *AuthStore) Restore(ctx context.Context) bool {
	var sess models.Session
	if storage.LoadJSON(ctx, s.storage, common.AuthStateKey, &sess) && sess.IsAuthenticated && sess.Valid() {
		if _, ok := s.storage.Get(ctx, common.AccessTokenKey); !ok {
			s.storage.Set(ctx, common.AccessTokenKey, sess.AccessToken)
		}
		if _, ok := s.storage.Get(ctx, common.UserKey); !ok {
			storage.SaveJSON(ctx, s.storage, common.UserKey, sess.User)
		}
	}
	return s.CheckAuth(ctx)
}

// RefreshToken swaps the stored access token for a new one. On failure the
// session is torn down before the error is returned.
func (s *AuthStore) RefreshToken(ctx context.Context) error {
	rt, _ := s.storage.Get(ctx, common.RefreshTokenKey)

	pair, err := s.api.Refresh(ctx, rt)
	if cancelled(ctx) {
		return ctx.Err()
	}
	if err != nil {
		s.logger.Warn(ctx, "token refresh failed, logging out", "error", err)
		s.Logout(ctx)
		s.setError(&client.AuthError{Err: err})
		return err
	}

	s.storage.Set(ctx, common.AccessTokenKey, pair.AccessToken)
	if pair.RefreshToken != "" {
		s.storage.Set(ctx, common.RefreshTokenKey, pair.RefreshToken)
	}

	s.mu.Lock()
	s.state.Session.AccessToken = pair.AccessToken
	sess := s.state.Session
	s.mu.Unlock()

	if sess.IsAuthenticated {
		storage.SaveJSON(ctx, s.storage, common.AuthStateKey, sess)
	}
	return nil
}
