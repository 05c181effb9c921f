package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/config"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/payment"
	"github.com/dmitrijs2005/docmind/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docmind/internal/client/storage"
	"github.com/dmitrijs2005/docmind/internal/common"
	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is a minimal API server. Protected endpoints answer 401 once
// expired is set; refresh always fails.
type backend struct {
	expired atomic.Bool
	uploads atomic.Int32

	lastVerification models.PaymentVerification
}

func (b *backend) authed(w http.ResponseWriter, r *http.Request) bool {
	if b.expired.Load() || r.Header.Get(common.AuthorizationHeaderName) != "Bearer T1" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	return true
}

func (b *backend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "secret1234" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"T1","refresh_token":"R1","token_type":"bearer"}`)
	})
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Invalid refresh token"}`)
	})
	mux.HandleFunc("GET /api/v1/documents/{$}", func(w http.ResponseWriter, r *http.Request) {
		if b.authed(w, r) {
			_, _ = io.WriteString(w, `[{"id":"d1","name":"Attention.pdf","type":"PDF","size":"2.1 MB","status":"completed"}]`)
		}
	})
	mux.HandleFunc("POST /api/v1/documents/{$}", func(w http.ResponseWriter, r *http.Request) {
		if !b.authed(w, r) {
			return
		}
		b.uploads.Add(1)
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		_ = f.Close()
		assert.Equal(t, "My Paper", r.FormValue("title"))
		_, _ = io.WriteString(w, `{"id":"d2","name":"`+hdr.Filename+`","type":"PDF","size":"0.1 MB","status":"processing"}`)
	})
	mux.HandleFunc("POST /api/v1/settings/subscription/upgrade", func(w http.ResponseWriter, r *http.Request) {
		if b.authed(w, r) {
			_, _ = io.WriteString(w, `{"success":true,"requires_payment":true,"order_id":"order_1",
				"amount":499,"amount_in_paise":49900,"currency":"INR","plan_name":"Pro","key_id":"rzp_test"}`)
		}
	})
	mux.HandleFunc("POST /api/v1/settings/subscription/verify-payment", func(w http.ResponseWriter, r *http.Request) {
		if !b.authed(w, r) {
			return
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&b.lastVerification))
		_, _ = io.WriteString(w, `{"success":true,"message":"Payment verified","invoice_number":"INV-9"}`)
	})
	mux.HandleFunc("GET /api/v1/settings/subscription", func(w http.ResponseWriter, r *http.Request) {
		if b.authed(w, r) {
			_, _ = io.WriteString(w, `{"plan_name":"Pro","price":499,"period":"month","active":true,"documents_used":2,"documents_limit":100}`)
		}
	})
	mux.HandleFunc("GET /api/v1/settings/billing-history", func(w http.ResponseWriter, r *http.Request) {
		if b.authed(w, r) {
			_, _ = io.WriteString(w, `[{"id":1,"invoice_number":"INV-9","amount":499,"status":"Paid","date":"2025-01-01T00:00:00"}]`)
		}
	})
	// analytics events and anything else are accepted and ignored
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	})
	return mux
}

type fakeGateway struct {
	Result      *payment.CheckoutResult
	Err         error
	LastRequest payment.CheckoutRequest
}

func (f *fakeGateway) Checkout(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutResult, error) {
	f.LastRequest = req
	return f.Result, f.Err
}

type harness struct {
	app     *App
	out     *strings.Builder
	store   *storage.Adapter
	gateway *fakeGateway
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:     baseURL,
		RequestTimeout: 5 * time.Second,
		PageSize:       50,
		ToastDuration:  5 * time.Second,
		Currency:       "INR",
		Routes:         config.RouteConfig{Login: "/login", Default: "/dashboard"},
		Upload:         config.UploadConfig{MaxSize: 1 << 20, AllowedExtensions: []string{"pdf", "txt"}},
	}
}

// newHarness builds the real stack against b and feeds input to the REPL.
func newHarness(t *testing.T, b *backend, input string) *harness {
	t.Helper()
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)

	oldPw := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("secret1234"), nil }
	t.Cleanup(func() { readPassword = oldPw })

	var out strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	t.Cleanup(func() { printlnFn = orig })

	st := storage.New(metadata.NewMemoryRepository(), nil)
	gw := &fakeGateway{Result: &payment.CheckoutResult{PaymentID: "pay_1", Signature: "sig_1"}}
	app, closeFn, err := Build(context.Background(), testConfig(srv.URL+"/api/v1"), Env{
		In:      strings.NewReader(input),
		Out:     &out,
		Storage: st,
		Clock:   clock.NewMock(),
		Gateway: gw,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	return &harness{app: app, out: &out, store: st, gateway: gw}
}

func lines(s ...string) string { return strings.Join(s, "\n") + "\n" }

func TestApp_ProtectedCommandRedirectsThenResumesAfterLogin(t *testing.T) {
	h := newHarness(t, &backend{}, lines(
		"docs",
		"login",
		"a@x.com",
		"where",
		"docs",
		"exit",
	))
	h.app.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "Redirected to /login?redirect=/documents")
	assert.Contains(t, out, "Now at /documents")
	assert.Contains(t, out, "[success] Logged in as a@x.com")
	assert.Contains(t, out, "Attention.pdf")
	assert.Equal(t, "/documents", h.app.router.Current())

	token, ok := h.store.Get(context.Background(), common.AccessTokenKey)
	assert.True(t, ok)
	assert.Equal(t, "T1", token)
}

func TestApp_LoginFailureShowsMessage(t *testing.T) {
	b := &backend{}
	h := newHarness(t, b, lines("login", "a@x.com", "exit"))
	readPassword = func(int) ([]byte, error) { return []byte("wrong"), nil }

	h.app.Run(context.Background())

	assert.Contains(t, h.out.String(), "[error] Invalid email or password")
	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, "/login", h.app.router.Current())
}

func TestApp_LogoutProtectsRoutesAgain(t *testing.T) {
	h := newHarness(t, &backend{}, lines(
		"login",
		"a@x.com",
		"logout",
		"docs",
		"exit",
	))
	h.app.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "[info] Logged out")
	assert.Contains(t, out, "Redirected to /login?redirect=/documents")
	assert.False(t, h.app.isLoggedIn())

	_, ok := h.store.Get(context.Background(), common.AccessTokenKey)
	assert.False(t, ok)
}

func TestApp_ExpiredSessionLandsOnLogin(t *testing.T) {
	b := &backend{}
	h := newHarness(t, b, "")
	ctx := context.Background()
	h.app.Run(ctx)

	require.NoError(t, h.app.auth.Login(ctx, "a@x.com", "secret1234"))
	b.expired.Store(true)

	h.app.afterCommand(ctx, h.app.ListDocuments(ctx, nil))

	assert.Contains(t, h.out.String(), "[error] Your session has expired. Please log in again.")
	assert.True(t, strings.HasPrefix(h.app.router.Current(), "/login"))
	assert.False(t, h.app.isLoggedIn())
}

func TestApp_Upload(t *testing.T) {
	dir := t.TempDir()
	paper := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(paper, []byte("%PDF-1.4"), 0o600))
	bad := filepath.Join(dir, "tool.exe")
	require.NoError(t, os.WriteFile(bad, []byte("MZ"), 0o600))

	b := &backend{}
	h := newHarness(t, b, lines(
		"login",
		"a@x.com",
		"upload "+bad,
		"upload "+paper+" My Paper",
		"exit",
	))
	h.app.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, `type "exe" is not allowed`)
	assert.Contains(t, out, "[success] Uploaded paper.pdf (processing)")
	assert.EqualValues(t, 1, b.uploads.Load())

	docs := h.app.docs.State().Documents
	require.NotEmpty(t, docs)
	assert.Equal(t, "d2", docs[0].ID)
}

func TestApp_UpgradeRunsCheckout(t *testing.T) {
	b := &backend{}
	h := newHarness(t, b, lines(
		"login",
		"a@x.com",
		"upgrade Pro",
		"plan",
		"exit",
	))
	h.app.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "[success] Payment verified (invoice INV-9)")
	assert.Contains(t, out, "Plan Pro, 499.00 INR/month")
	assert.Contains(t, out, "INV-9")

	assert.Equal(t, int64(49900), h.gateway.LastRequest.Amount)
	assert.Equal(t, "rzp_test", h.gateway.LastRequest.KeyID)
	assert.Equal(t, models.PaymentVerification{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig_1"}, b.lastVerification)
	assert.False(t, h.app.settings.State().Payment.IsOpen)
}

func TestApp_CancelledCheckoutClosesDialog(t *testing.T) {
	b := &backend{}
	h := newHarness(t, b, lines("login", "a@x.com", "upgrade Pro", "exit"))
	h.gateway.Err = payment.ErrCancelled

	h.app.Run(context.Background())

	assert.Contains(t, h.out.String(), "[info] checkout: payment cancelled")
	assert.False(t, h.app.settings.State().Payment.IsOpen)
	assert.Empty(t, b.lastVerification.OrderID)
}

func TestApp_ThemePersists(t *testing.T) {
	h := newHarness(t, &backend{}, lines("login", "a@x.com", "theme dark", "theme neon", "exit"))
	h.app.Run(context.Background())

	assert.Equal(t, models.ThemeDark, h.app.settings.State().UI.Theme)
	assert.Contains(t, h.out.String(), "[error] theme")

	raw, ok := h.store.Get(context.Background(), common.SettingsStateKey)
	require.True(t, ok)
	assert.Contains(t, raw, `"theme":"dark"`)
}

func TestBuild_SessionSurvivesRestart(t *testing.T) {
	srv := httptest.NewServer((&backend{}).handler(t))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL + "/api/v1")
	cfg.DataDir = t.TempDir()
	cfg.StorageFile = "state.db"
	ctx := context.Background()

	first, closeFirst, err := Build(ctx, cfg, Env{In: strings.NewReader(""), Out: io.Discard})
	require.NoError(t, err)
	require.NoError(t, first.auth.Login(ctx, "a@x.com", "secret1234"))
	require.NoError(t, first.settings.SetTheme(ctx, models.ThemeLight))
	require.NoError(t, closeFirst())

	second, closeSecond, err := Build(ctx, cfg, Env{In: strings.NewReader(""), Out: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeSecond() })

	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })

	second.Run(ctx)
	assert.True(t, second.isLoggedIn())
	assert.Equal(t, "a@x.com", second.auth.State().Session.User.Email)
	assert.Equal(t, models.ThemeLight, second.settings.State().UI.Theme)
	assert.Equal(t, "/dashboard", second.router.Current())
}
