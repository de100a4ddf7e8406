package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"

	"github.com/goliatone/go-leadform/internal/logging/gologger"
	"github.com/goliatone/go-leadform/pkg/extraction"
)

const (
	// FileName is the config file base name searched for by NewViper.
	FileName = "leadform"
	// EnvPrefix prefixes every environment override, e.g. LEADFORM_SERVER_ADDR.
	EnvPrefix = "LEADFORM"
)

// Config is the complete runtime configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" json:"server"`
	Extraction ExtractionConfig `mapstructure:"extraction" json:"extraction"`
	HTTP       HTTPConfig       `mapstructure:"http" json:"http"`
	Logging    LoggingConfig    `mapstructure:"logging" json:"logging"`
	Locale     LocaleConfig     `mapstructure:"locale" json:"locale"`
	Theme      ThemeConfig      `mapstructure:"theme" json:"theme"`
}

// ServerConfig drives the HTTP front end.
type ServerConfig struct {
	Addr string `mapstructure:"addr" json:"addr"`
	// SessionTTL is how long an idle visitor session is kept.
	SessionTTL    time.Duration `mapstructure:"session_ttl" json:"session_ttl"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace" json:"shutdown_grace"`
	// RateLimit is the sustained submissions per second allowed per client.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" json:"rate_burst"`
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool `mapstructure:"secure_cookies" json:"secure_cookies"`
	// Metrics exposes /metrics when true.
	Metrics bool `mapstructure:"metrics" json:"metrics"`
}

// ExtractionConfig points at the solution extraction service.
type ExtractionConfig struct {
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
	// ValidateContract checks requests and responses against the embedded
	// OpenAPI contract.
	ValidateContract bool `mapstructure:"validate_contract" json:"validate_contract"`
}

// HTTPConfig holds outbound HTTP settings. A zero Timeout means none.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`
	UserAgent string        `mapstructure:"user_agent" json:"user_agent"`
}

// LoggingConfig selects the go-logger level and format.
type LoggingConfig struct {
	Level     string   `mapstructure:"level" json:"level"`
	Format    string   `mapstructure:"format" json:"format"`
	AddSource bool     `mapstructure:"add_source" json:"add_source"`
	Focus     []string `mapstructure:"focus" json:"focus"`
}

// LocaleConfig sets the fallback locale and an optional directory of
// catalog overrides (<locale>.yaml files).
type LocaleConfig struct {
	Default string `mapstructure:"default" json:"default"`
	Dir     string `mapstructure:"dir" json:"dir"`
}

// ThemeConfig feeds the page renderer theme context.
type ThemeConfig struct {
	Name    string            `mapstructure:"name" json:"name"`
	Variant string            `mapstructure:"variant" json:"variant"`
	Tokens  map[string]string `mapstructure:"tokens" json:"tokens"`
	CSSVars map[string]string `mapstructure:"css_vars" json:"css_vars"`
	// AssetPrefix, when set, resolves theme asset keys to AssetPrefix/key.
	AssetPrefix string `mapstructure:"asset_prefix" json:"asset_prefix"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:          ":8080",
			SessionTTL:    30 * time.Minute,
			ShutdownGrace: 5 * time.Second,
			RateLimit:     1,
			RateBurst:     5,
			Metrics:       true,
		},
		Extraction: ExtractionConfig{
			Endpoint:         extraction.DefaultEndpoint,
			ValidateContract: true,
		},
		HTTP: HTTPConfig{
			UserAgent: "leadform",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Locale: LocaleConfig{
			Default: "pt-BR",
		},
	}
}

// SetDefaults registers every default on v so environment overrides resolve
// for keys missing from the config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.session_ttl", d.Server.SessionTTL)
	v.SetDefault("server.shutdown_grace", d.Server.ShutdownGrace)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.rate_burst", d.Server.RateBurst)
	v.SetDefault("server.secure_cookies", d.Server.SecureCookies)
	v.SetDefault("server.metrics", d.Server.Metrics)
	v.SetDefault("extraction.endpoint", d.Extraction.Endpoint)
	v.SetDefault("extraction.validate_contract", d.Extraction.ValidateContract)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.add_source", d.Logging.AddSource)
	v.SetDefault("logging.focus", []string{})
	v.SetDefault("locale.default", d.Locale.Default)
	v.SetDefault("locale.dir", d.Locale.Dir)
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.asset_prefix", "")
}

// NewViper returns a viper instance with defaults, environment binding and
// the config search path applied. An explicit file wins over the search in
// the working directory and ~/.config/leadform.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, when one exists, and decodes v into a
// validated Config. A missing file in the search path is not an error; an
// explicit file that cannot be read is.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = NewViper("")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	return ozzo.ValidateStruct(&c,
		ozzo.Field(&c.Server),
		ozzo.Field(&c.Extraction),
		ozzo.Field(&c.HTTP),
		ozzo.Field(&c.Logging),
		ozzo.Field(&c.Locale),
	)
}

func (s ServerConfig) Validate() error {
	return ozzo.ValidateStruct(&s,
		ozzo.Field(&s.Addr, ozzo.Required),
		ozzo.Field(&s.SessionTTL, ozzo.Required, ozzo.Min(time.Second)),
		ozzo.Field(&s.ShutdownGrace, ozzo.Min(time.Duration(0))),
		ozzo.Field(&s.RateLimit, ozzo.Min(0.0)),
		ozzo.Field(&s.RateBurst, ozzo.When(s.RateLimit > 0, ozzo.Required, ozzo.Min(1))),
	)
}

func (e ExtractionConfig) Validate() error {
	return ozzo.ValidateStruct(&e,
		ozzo.Field(&e.Endpoint, ozzo.Required, is.URL),
	)
}

func (h HTTPConfig) Validate() error {
	return ozzo.ValidateStruct(&h,
		ozzo.Field(&h.Timeout, ozzo.Min(time.Duration(0))),
	)
}

func (l LoggingConfig) Validate() error {
	return ozzo.ValidateStruct(&l,
		ozzo.Field(&l.Level, ozzo.In("trace", "debug", "info", "warn", "error", "fatal")),
		ozzo.Field(&l.Format, ozzo.In("json", "console", "pretty")),
	)
}

func (l LocaleConfig) Validate() error {
	return ozzo.ValidateStruct(&l,
		ozzo.Field(&l.Default, ozzo.Required),
	)
}

// LoggerConfig maps the logging section onto the go-logger provider config.
func (l LoggingConfig) LoggerConfig() gologger.Config {
	return gologger.Config{
		Level:     l.Level,
		Format:    l.Format,
		AddSource: l.AddSource,
		Focus:     append([]string(nil), l.Focus...),
	}
}

// RendererConfig builds the go-theme renderer config, or nil when no theme
// is configured.
func (t ThemeConfig) RendererConfig() *theme.RendererConfig {
	if t.Name == "" && len(t.Tokens) == 0 && len(t.CSSVars) == 0 && t.AssetPrefix == "" {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  t.Tokens,
		CSSVars: t.CSSVars,
	}
	if prefix := strings.TrimRight(t.AssetPrefix, "/"); prefix != "" {
		cfg.AssetURL = func(key string) string {
			if key == "" {
				return ""
			}
			return prefix + "/" + key
		}
	}
	return cfg
}
