package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/router"
	"github.com/dmitrijs2005/docmind/internal/client/stores"
	"github.com/dmitrijs2005/docmind/internal/client/tokens"
	"github.com/dmitrijs2005/docmind/internal/common"
)

// Register prompts for name, email and password and creates the account.
// The account is signed in right away; if only that second step fails the
// user is sent to the login page.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := getText(a.reader, a.out, "Full name")
	if err != nil {
		return err
	}
	email, err := getText(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Register(ctx, models.RegisterRequest{FullName: name, Email: email, Password: string(password)})
	if err != nil {
		var regErr *stores.RegistrationError
		if errors.As(err, &regErr) && regErr.AccountCreated {
			a.enter(ctx, router.PathLogin)
		}
		return err
	}

	a.toasts.Success("Welcome, " + user.DisplayName() + "!")
	_, err = a.router.Open(ctx, router.PathDashboard)
	return err
}

// Login prompts for credentials and, on success, continues to the page the
// user was originally sent away from.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getText(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		return err
	}

	landed, err := a.router.AfterLogin(ctx)
	if err != nil {
		return err
	}
	a.toasts.Success("Logged in as " + email)
	a.printf("Now at %s\n", landed)
	return nil
}

// Logout drops the session and every per-user cache.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.auth.Logout(ctx)
	a.chat.Clear()
	_, err := a.router.Open(ctx, router.PathLogin)
	if err != nil {
		return err
	}
	a.toasts.Info("Logged out")
	return nil
}

// WhoAmI prints the session user and the access token's expiry.
func (a *App) WhoAmI(_ context.Context, _ []string) error {
	st := a.auth.State()
	if st.Status != stores.StatusAuthenticated || st.Session.User == nil {
		a.printf("Not logged in\n")
		return nil
	}
	u := st.Session.User
	a.printf("%s <%s>\n", u.DisplayName(), u.Email)
	if u.ID != "" {
		a.printf("  id:      %s\n", u.ID)
	}
	if claims, err := tokens.Parse(st.Session.AccessToken); err == nil {
		if exp := claims.Expiry(); !exp.IsZero() {
			a.printf("  expires: %s\n", exp.Local().Format(time.DateTime))
		}
	}
	return nil
}
