package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	EnvNotionAPIKey     = "NOTION_API_KEY"
	EnvNotionDatabaseID = "NOTION_DATABASE_ID"
	EnvSerperAPIKey     = "SERPER_API_KEY"
	EnvParamPrefix      = "PARAM_PREFIX"
	EnvSearchTimeout    = "SEARCH_TIMEOUT"
	EnvPublishTimeout   = "PUBLISH_TIMEOUT"
	EnvSerperBaseURL    = "SERPER_BASE_URL"
	EnvNotionBaseURL    = "NOTION_BASE_URL"

	DefaultSerperBaseURL = "https://google.serper.dev"
	DefaultNotionBaseURL = "https://api.notion.com"
	NotionVersion        = "2022-06-28"

	defaultSearchTimeout  = "10s"
	defaultPublishTimeout = "30s"
)

// Config is built once per run and handed to each component.
type Config struct {
	NotionAPIKey     string `env:"NOTION_API_KEY" validate:"required"`
	NotionDatabaseID string `env:"NOTION_DATABASE_ID" validate:"required"`
	// SerperAPIKey is optional; without it the news fetch is skipped.
	SerperAPIKey string `env:"SERPER_API_KEY"`

	SerperBaseURL  string
	NotionBaseURL  string
	NotionVersion  string
	SearchTimeout  time.Duration
	PublishTimeout time.Duration
	ParamPrefix    string
}

// SearchEnabled reports whether a search-provider key is configured.
func (c Config) SearchEnabled() bool {
	return c.SerperAPIKey != ""
}

// ConfigurationError reports required values that could not be resolved.
type ConfigurationError struct {
	Missing []string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	msg := "config: missing required configuration"
	if len(e.Missing) > 0 {
		msg += ": " + strings.Join(e.Missing, ", ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ParamGetter resolves secrets that are not present in the environment.
type ParamGetter interface {
	GetParameters(ctx context.Context, names []string) (map[string]string, error)
}

// Loader reads Config from the process environment, optionally falling back
// to Parameter Store for secrets under PARAM_PREFIX.
type Loader struct {
	lookup   LookupFunc
	params   ParamGetter
	validate *validator.Validate
}

// NewLoader returns a Loader. A nil lookup reads the real environment; a nil
// params disables the Parameter Store fallback.
func NewLoader(lookup LookupFunc, params ParamGetter) *Loader {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return &Loader{lookup: lookup, params: params, validate: v}
}

// Load builds the Config. It returns *ConfigurationError when a required
// value is absent after every source has been consulted.
func (l *Loader) Load(ctx context.Context) (Config, error) {
	cfg := Config{
		NotionAPIKey:     l.getEnv(EnvNotionAPIKey, ""),
		NotionDatabaseID: l.getEnv(EnvNotionDatabaseID, ""),
		SerperAPIKey:     l.getEnv(EnvSerperAPIKey, ""),
		SerperBaseURL:    strings.TrimRight(l.getEnv(EnvSerperBaseURL, DefaultSerperBaseURL), "/"),
		NotionBaseURL:    strings.TrimRight(l.getEnv(EnvNotionBaseURL, DefaultNotionBaseURL), "/"),
		NotionVersion:    NotionVersion,
		SearchTimeout:    l.getDuration(EnvSearchTimeout, defaultSearchTimeout),
		PublishTimeout:   l.getDuration(EnvPublishTimeout, defaultPublishTimeout),
		ParamPrefix:      strings.TrimRight(l.getEnv(EnvParamPrefix, ""), "/"),
	}

	if err := l.fillFromParams(ctx, &cfg); err != nil {
		return Config{}, &ConfigurationError{Missing: missingSecrets(cfg), Err: err}
	}

	if err := l.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return Config{}, &ConfigurationError{Missing: missing}
		}
		return Config{}, &ConfigurationError{Err: err}
	}
	return cfg, nil
}

// fillFromParams resolves unset secrets from Parameter Store in one call.
func (l *Loader) fillFromParams(ctx context.Context, cfg *Config) error {
	if l.params == nil || cfg.ParamPrefix == "" {
		return nil
	}

	targets := map[string]*string{}
	if cfg.NotionAPIKey == "" {
		targets[cfg.ParamPrefix+"/notion_api_key"] = &cfg.NotionAPIKey
	}
	if cfg.NotionDatabaseID == "" {
		targets[cfg.ParamPrefix+"/notion_database_id"] = &cfg.NotionDatabaseID
	}
	if cfg.SerperAPIKey == "" {
		targets[cfg.ParamPrefix+"/serper_api_key"] = &cfg.SerperAPIKey
	}
	if len(targets) == 0 {
		return nil
	}

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	values, err := l.params.GetParameters(ctx, names)
	if err != nil {
		return fmt.Errorf("resolve secrets under %s: %w", cfg.ParamPrefix, err)
	}
	for name, dst := range targets {
		*dst = strings.TrimSpace(values[name])
	}
	return nil
}

func missingSecrets(cfg Config) []string {
	var out []string
	if cfg.NotionAPIKey == "" {
		out = append(out, EnvNotionAPIKey)
	}
	if cfg.NotionDatabaseID == "" {
		out = append(out, EnvNotionDatabaseID)
	}
	return out
}

func (l *Loader) getEnv(key, fallback string) string {
	if v, ok := l.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (l *Loader) getDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(l.getEnv(key, fallback))
	if err != nil || d <= 0 {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
