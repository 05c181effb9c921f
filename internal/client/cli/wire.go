package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/config"
	"github.com/dmitrijs2005/docmind/internal/client/payment"
	"github.com/dmitrijs2005/docmind/internal/client/router"
	"github.com/dmitrijs2005/docmind/internal/client/services"
	"github.com/dmitrijs2005/docmind/internal/client/storage"
	"github.com/dmitrijs2005/docmind/internal/client/stores"
	"github.com/dmitrijs2005/docmind/internal/filex"
	"github.com/dmitrijs2005/docmind/internal/logging"
	"github.com/facebookgo/clock"
)

// Env carries what Build takes from the process rather than the config.
type Env struct {
	In     io.Reader
	Out    io.Writer
	Logger logging.Logger

	// Optional overrides, used by tests.
	Storage    storage.Storage
	Clock      clock.Clock
	HTTPClient *http.Client
	Gateway    payment.Gateway
}

// Build wires the HTTP client, services, stores and router from cfg. The
// returned close func releases the state database; it is a no-op when
// env.Storage is set.
func Build(ctx context.Context, cfg *config.Config, env Env) (*App, func() error, error) {
	closeFn := func() error { return nil }
	if env.Logger == nil {
		env.Logger = logging.NopLogger{}
	}
	if env.Clock == nil {
		env.Clock = clock.New()
	}

	st := env.Storage
	if st == nil {
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("data dir: %w", err)
		}
		repo, closeDB, err := storage.OpenRepository(ctx, filepath.Join(dir, cfg.StorageFile))
		if err != nil {
			env.Logger.Warn(ctx, "persistent state unavailable, using headless storage", "error", err)
			st = storage.Headless()
		} else {
			st = storage.New(repo, env.Logger)
			closeFn = closeDB
		}
	}

	history := router.NewHistory(router.PathHome)
	api, err := client.New(client.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.RequestTimeout,
		Storage:    st,
		Navigator:  history,
		LoginPath:  cfg.Routes.Login,
		Logger:     env.Logger.With("component", "http"),
		HTTPClient: env.HTTPClient,
	})
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	features := cfg.Features()
	limits := services.UploadLimits{MaxSize: cfg.Upload.MaxSize, AllowedExtensions: cfg.Upload.AllowedExtensions}
	docService := services.NewDocumentService(api, features.Documents, limits)
	chatService := services.NewChatService(api, features.Chat)
	analyticsService := services.NewAnalyticsService(api, features.Analytics, env.Logger.With("component", "analytics"))

	auth := stores.NewAuthStore(services.NewAuthService(api), st, env.Logger.With("component", "auth"))
	guard := router.NewGuard(auth, cfg.Routes.Login, cfg.Routes.Default)

	app := NewApp(Deps{
		Auth:            auth,
		Documents:       stores.NewDocumentStore(docService, analyticsService, cfg.PageSize),
		Chat:            stores.NewChatStore(chatService, analyticsService, env.Clock, cfg.PageSize),
		Notes:           stores.NewNoteStore(services.NewNoteService(api, features.Notes), cfg.PageSize),
		Analytics:       stores.NewAnalyticsStore(analyticsService),
		Settings:        stores.NewSettingsStore(services.NewSettingsService(api, features.Subscription), st, cfg.Currency),
		Notifications:   stores.NewNotificationStore(env.Clock, cfg.ToastDuration),
		DocumentService: docService,
		ChatService:     chatService,
		Router:          router.New(guard, history),
		Gateway:         env.Gateway,
		Logger:          env.Logger,
		Currency:        cfg.Currency,
		In:              env.In,
		Out:             env.Out,
	})
	return app, closeFn, nil
}
