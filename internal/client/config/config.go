package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Config holds runtime settings for the docmind client.
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"     json:"api_base_url"     env:"DOCMIND_API_URL"         env-default:"http://localhost:8000/api/v1"`
	RequestTimeout time.Duration `yaml:"request_timeout"  json:"request_timeout"  env:"DOCMIND_REQUEST_TIMEOUT" env-default:"30s"`
	DataDir        string        `yaml:"data_dir"         json:"data_dir"         env:"DOCMIND_DATA_DIR"        env-default:".docmind"`
	StorageFile    string        `yaml:"storage_file"     json:"storage_file"     env:"DOCMIND_STORAGE_FILE"    env-default:"state.db"`
	PageSize       int           `yaml:"page_size"        json:"page_size"        env:"DOCMIND_PAGE_SIZE"       env-default:"50"`
	ToastDuration  time.Duration `yaml:"toast_duration"   json:"toast_duration"   env:"DOCMIND_TOAST_DURATION"  env-default:"5s"`
	Currency       string        `yaml:"currency"         json:"currency"         env:"DOCMIND_CURRENCY"        env-default:"INR"`

	// DisabledFeatures switches whole services off at the client boundary.
	// Known names: documents, chat, notes, analytics, subscription.
	DisabledFeatures []string `yaml:"disabled_features" json:"disabled_features" env:"DOCMIND_DISABLED_FEATURES" env-separator:","`

	Log    LogConfig    `yaml:"log"    json:"log"`
	Routes RouteConfig  `yaml:"routes" json:"routes"`
	Upload UploadConfig `yaml:"upload" json:"upload"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string `yaml:"format" json:"format" env:"DOCMIND_LOG_FORMAT" env-default:"text"`
	Level  string `yaml:"level"  json:"level"  env:"DOCMIND_LOG_LEVEL"  env-default:"info"`
}

// RouteConfig names the navigation targets used by the guard and the HTTP
// client's forced logout.
type RouteConfig struct {
	Login   string `yaml:"login"   json:"login"   env:"DOCMIND_LOGIN_ROUTE"   env-default:"/login"`
	Default string `yaml:"default" json:"default" env:"DOCMIND_DEFAULT_ROUTE" env-default:"/dashboard"`
}

// UploadConfig holds client-side upload pre-validation limits.
type UploadConfig struct {
	MaxSize           int64    `yaml:"max_size"           json:"max_size"           env:"DOCMIND_UPLOAD_MAX_SIZE"   env-default:"10485760"`
	AllowedExtensions []string `yaml:"allowed_extensions" json:"allowed_extensions" env:"DOCMIND_UPLOAD_EXTENSIONS" env-separator:"," env-default:"pdf,docx,doc,txt,md"`
}

// Feature names accepted in DisabledFeatures.
const (
	FeatureDocuments    = "documents"
	FeatureChat         = "chat"
	FeatureNotes        = "notes"
	FeatureAnalytics    = "analytics"
	FeatureSubscription = "subscription"
)

var knownFeatures = []string{FeatureDocuments, FeatureChat, FeatureNotes, FeatureAnalytics, FeatureSubscription}

// Features is the resolved on/off state of each service.
type Features struct {
	Documents    bool
	Chat         bool
	Notes        bool
	Analytics    bool
	Subscription bool
}

// AllFeatures returns Features with everything enabled.
func AllFeatures() Features {
	return Features{Documents: true, Chat: true, Notes: true, Analytics: true, Subscription: true}
}

// Features resolves DisabledFeatures.
func (c *Config) Features() Features {
	f := AllFeatures()
	for _, name := range c.DisabledFeatures {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case FeatureDocuments:
			f.Documents = false
		case FeatureChat:
			f.Chat = false
		case FeatureNotes:
			f.Notes = false
		case FeatureAnalytics:
			f.Analytics = false
		case FeatureSubscription:
			f.Subscription = false
		}
	}
	return f
}

// normalize lower-cases extensions and strips leading dots.
func (c *Config) normalize() {
	exts := make([]string, 0, len(c.Upload.AllowedExtensions))
	for _, e := range c.Upload.AllowedExtensions {
		e = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), ".")
		if e != "" && !slices.Contains(exts, e) {
			exts = append(exts, e)
		}
	}
	c.Upload.AllowedExtensions = exts
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
}

// Validate reports every problem found in c.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	switch {
	case c.APIBaseURL == "":
		errs = append(errs, errors.New("api_base_url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("api_base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api_base_url: unsupported scheme %q", u.Scheme))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		errs = append(errs, errors.New("page_size must be between 1 and 100"))
	}
	if c.ToastDuration < 0 {
		errs = append(errs, errors.New("toast_duration must not be negative"))
	}
	if c.Upload.MaxSize <= 0 {
		errs = append(errs, errors.New("upload.max_size must be positive"))
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		errs = append(errs, errors.New("upload.allowed_extensions must not be empty"))
	}
	for _, name := range c.DisabledFeatures {
		if !slices.Contains(knownFeatures, strings.ToLower(strings.TrimSpace(name))) {
			errs = append(errs, fmt.Errorf("disabled_features: unknown feature %q", name))
		}
	}
	if !strings.HasPrefix(c.Routes.Login, "/") || !strings.HasPrefix(c.Routes.Default, "/") {
		errs = append(errs, errors.New("routes must be absolute paths"))
	}

	return errors.Join(errs...)
}
