package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/docmind/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(flagx.ConfigPathEnv, "")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ".docmind", cfg.DataDir)
	assert.Equal(t, "state.db", cfg.StorageFile)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 5*time.Second, cfg.ToastDuration)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, "/login", cfg.Routes.Login)
	assert.Equal(t, "/dashboard", cfg.Routes.Default)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"pdf", "docx", "doc", "txt", "md"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, AllFeatures(), cfg.Features())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(flagx.ConfigPathEnv, "")
	t.Setenv("DOCMIND_API_URL", "https://api.example.com/api/v1/")
	t.Setenv("DOCMIND_DISABLED_FEATURES", "analytics,Chat")
	t.Setenv("DOCMIND_UPLOAD_EXTENSIONS", ".PDF, txt")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, []string{"pdf", "txt"}, cfg.Upload.AllowedExtensions)

	f := cfg.Features()
	assert.False(t, f.Analytics)
	assert.False(t, f.Chat)
	assert.True(t, f.Documents)
	assert.True(t, f.Notes)
	assert.True(t, f.Subscription)
}

func TestLoad_FileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docmind.yaml")
	content := []byte(`api_base_url: https://file.example.com/api/v1
request_timeout: 12s
page_size: 20
disabled_features: [notes]
log:
  format: zap
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load([]string{"-c", path, "-t", "3"})
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "zap", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Features().Notes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			APIBaseURL:     "http://localhost:8000/api/v1",
			RequestTimeout: time.Second,
			PageSize:       10,
			Routes:         RouteConfig{Login: "/login", Default: "/dashboard"},
			Upload:         UploadConfig{MaxSize: 1, AllowedExtensions: []string{"pdf"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "bad scheme", mutate: func(c *Config) { c.APIBaseURL = "ftp://x" }, wantErr: "unsupported scheme"},
		{name: "empty url", mutate: func(c *Config) { c.APIBaseURL = "" }, wantErr: "api_base_url is required"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "request_timeout"},
		{name: "page size too large", mutate: func(c *Config) { c.PageSize = 101 }, wantErr: "page_size"},
		{name: "no extensions", mutate: func(c *Config) { c.Upload.AllowedExtensions = nil }, wantErr: "allowed_extensions"},
		{name: "unknown feature", mutate: func(c *Config) { c.DisabledFeatures = []string{"media"} }, wantErr: "unknown feature"},
		{name: "relative route", mutate: func(c *Config) { c.Routes.Login = "login" }, wantErr: "routes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
