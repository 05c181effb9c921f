package router

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docmind/internal/common"
)

// Router runs the guard and records where navigation ended up.
type Router struct {
	guard   *Guard
	history *History
}

func New(guard *Guard, history *History) *Router {
	return &Router{guard: guard, history: history}
}

// Open navigates to p and returns the path actually shown.
func (r *Router) Open(ctx context.Context, p string) (string, error) {
	if !Known(p) {
		return r.history.Current(), fmt.Errorf("%w: route %s", common.ErrorNotFound, p)
	}
	d := r.guard.Check(ctx, p)
	target := p
	if !d.Allowed {
		target = d.Redirect
	}
	r.history.Navigate(target)
	return target, nil
}

// AfterLogin leaves the login route for the path it was carrying, or the
// guard's default route.
func (r *Router) AfterLogin(ctx context.Context) (string, error) {
	return r.Open(ctx, ReturnTo(r.history.Current(), r.guard.defaultPath))
}

func (r *Router) Current() string { return r.history.Current() }

func (r *Router) History() *History { return r.history }
