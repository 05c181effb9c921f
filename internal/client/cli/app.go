package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/payment"
	"github.com/dmitrijs2005/docmind/internal/client/router"
	"github.com/dmitrijs2005/docmind/internal/client/services"
	"github.com/dmitrijs2005/docmind/internal/client/stores"
	"github.com/dmitrijs2005/docmind/internal/logging"
)

// Deps is everything the App is built from.
type Deps struct {
	Auth          *stores.AuthStore
	Documents     *stores.DocumentStore
	Chat          *stores.ChatStore
	Notes         *stores.NoteStore
	Analytics     *stores.AnalyticsStore
	Settings      *stores.SettingsStore
	Notifications *stores.NotificationStore

	DocumentService *services.DocumentService
	ChatService     *services.ChatService

	Router  *router.Router
	Gateway payment.Gateway
	Logger  logging.Logger

	// Currency labels subscription prices.
	Currency string

	In  io.Reader
	Out io.Writer
}

// App is the terminal client.
type App struct {
	auth      *stores.AuthStore
	docs      *stores.DocumentStore
	chat      *stores.ChatStore
	notes     *stores.NoteStore
	analytics *stores.AnalyticsStore
	settings  *stores.SettingsStore
	toasts    *stores.NotificationStore

	docService  *services.DocumentService
	chatService *services.ChatService

	router  *router.Router
	gateway payment.Gateway
	logger  logging.Logger

	currency string
	reader   *bufio.Reader
	out      io.Writer
	cmds     []command
}

func NewApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = logging.NopLogger{}
	}
	reader := bufio.NewReader(d.In)
	if d.Gateway == nil {
		d.Gateway = payment.NewPromptGateway(reader, d.Out)
	}
	a := &App{
		auth:        d.Auth,
		docs:        d.Documents,
		chat:        d.Chat,
		notes:       d.Notes,
		analytics:   d.Analytics,
		settings:    d.Settings,
		toasts:      d.Notifications,
		docService:  d.DocumentService,
		chatService: d.ChatService,
		router:      d.Router,
		gateway:     d.Gateway,
		logger:      d.Logger,
		currency:    d.Currency,
		reader:      reader,
		out:         d.Out,
	}
	a.cmds = a.commandTable()
	return a
}

// Run restores the persisted state and starts the REPL.
func (a *App) Run(ctx context.Context) {
	if a.auth.Restore(ctx) {
		a.logger.Info(ctx, "session restored")
	}
	a.settings.Restore(ctx)

	a.printf("Welcome to docmind (type 'help' for commands)\n")
	start := router.PathHome
	if a.auth.IsAuthenticated() {
		start = router.PathDashboard
	}
	a.enter(ctx, start)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool { return a.auth.IsAuthenticated() }

func (a *App) commands() []command { return a.cmds }

func (a *App) status() string {
	s := a.router.Current()
	if u := a.auth.State().Session.User; u != nil {
		s = u.Email + " " + s
	}
	return s
}

// enter opens route through the guard. It reports false when the guard
// sent the user elsewhere.
func (a *App) enter(ctx context.Context, route string) bool {
	if route == "" {
		return true
	}
	// Staying on the current page keeps its query, e.g. the redirect
	// carried by the login route.
	target := route
	if cur := a.router.Current(); pathOnly(cur) == route {
		target = cur
	}
	got, err := a.router.Open(ctx, target)
	if err != nil {
		a.printf("%s\n", err)
		return false
	}
	if got != target {
		a.printf("Redirected to %s\n", got)
		return false
	}
	return true
}

func pathOnly(p string) string {
	p, _, _ = strings.Cut(p, "?")
	return p
}

// afterCommand turns the command's error into a notification and prints
// everything queued.
func (a *App) afterCommand(ctx context.Context, err error) {
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, payment.ErrCancelled):
		a.toasts.Info(client.UserMessage(err))
	default:
		a.logger.Debug(ctx, "command failed", "error", err)
		a.toasts.Error(client.UserMessage(err))
	}

	var authErr *client.AuthError
	if errors.As(err, &authErr) {
		a.auth.CheckAuth(ctx)
	}

	for _, n := range a.toasts.Drain() {
		a.printf("[%s] %s\n", n.Kind, n.Message)
	}
}
