package router

import "context"

// Authenticator answers whether a valid session exists. stores.AuthStore
// implements it.
type Authenticator interface {
	CheckAuth(ctx context.Context) bool
}

// Decision is the outcome of a guard check. Redirect is set when the
// request must land elsewhere.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Guard decides access to paths before they are rendered.
type Guard struct {
	auth        Authenticator
	loginPath   string
	defaultPath string
}

func NewGuard(auth Authenticator, loginPath, defaultPath string) *Guard {
	if loginPath == "" {
		loginPath = PathLogin
	}
	if defaultPath == "" {
		defaultPath = PathDashboard
	}
	return &Guard{auth: auth, loginPath: loginPath, defaultPath: defaultPath}
}

// Check reconciles the session and classifies p. Protected paths without a
// session go to the login route carrying p; logged-in users asking for the
// login or register page go to the default route.
func (g *Guard) Check(ctx context.Context, p string) Decision {
	authed := g.auth.CheckAuth(ctx)

	switch path := pathOf(p); {
	case IsProtected(path) && !authed:
		return Decision{Redirect: LoginURL(g.loginPath, path)}
	case authed && (path == g.loginPath || path == PathRegister):
		return Decision{Redirect: g.defaultPath}
	default:
		return Decision{Allowed: true}
	}
}
