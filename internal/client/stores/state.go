package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/docmind/internal/client/client"
)

func userMessage(err error) string { return client.UserMessage(err) }

// flags carries the loading and error state shared by every store. Callers
// hold the owning store's lock.
type flags struct {
	pending int
	message string
}

// start marks an action as running and clears the previous error.
func (f *flags) start() {
	f.pending++
	f.message = ""
}

// finish ends an action. Errors of cancelled calls are not recorded.
func (f *flags) finish(ctx context.Context, err error) {
	if f.pending > 0 {
		f.pending--
	}
	if err != nil && ctx.Err() == nil {
		f.message = userMessage(err)
	}
}

func (f *flags) loading() bool { return f.pending > 0 }

// cancelled reports whether the result of a call made with ctx must be
// dropped.
func cancelled(ctx context.Context) bool { return ctx.Err() != nil }

// guard rejects a second concurrent action on the same id.
type guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// acquire reserves id and returns the release func.
func (g *guard) acquire(id string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy == nil {
		g.busy = make(map[string]struct{})
	}
	if _, ok := g.busy[id]; ok {
		return nil, ErrInFlight
	}
	g.busy[id] = struct{}{}

	return func() {
		g.mu.Lock()
		delete(g.busy, id)
		g.mu.Unlock()
	}, nil
}

// settle folds cancellation into err. A call whose context is done reports
// the context error even if the request itself went through.
func settle(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	return ctx.Err()
}
