package cli

import (
	"context"
)

// Open navigates to a route through the guard.
func (a *App) Open(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "open <path>"); err != nil {
		return err
	}
	landed, err := a.router.Open(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Now at %s\n", landed)
	return nil
}

// Back returns to the previous route, re-running the guard on it.
func (a *App) Back(ctx context.Context, _ []string) error {
	prev, ok := a.router.History().Back()
	if !ok {
		a.printf("No previous route\n")
		return nil
	}
	landed, err := a.router.Open(ctx, prev)
	if err != nil {
		return err
	}
	a.printf("Now at %s\n", landed)
	return nil
}

func (a *App) Where(_ context.Context, _ []string) error {
	a.printf("%s\n", a.router.Current())
	return nil
}
