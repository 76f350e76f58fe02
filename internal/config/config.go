// Package config loads the service configuration from defaults, an optional YAML
// file, a .env file and FOLIO_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	envPrefix           = "FOLIO_"
	defaultConfigFile   = "folio.yaml"
	defaultEnvFile      = ".env"
	defaultAddr         = ":8080"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultFetchTimeout = 5 * time.Second
)

// Config is the top-level configuration, corresponding to folio.yaml.
type Config struct {
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Content ContentConfig `yaml:"content" koanf:"content"`
	Site    SiteConfig    `yaml:"site" koanf:"site"`
	I18n    I18nConfig    `yaml:"i18n" koanf:"i18n"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr         string   `yaml:"addr" koanf:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout" koanf:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
}

// ContentConfig selects where the shell, fragments and documents come from. A
// non-empty BaseURL takes precedence over Dir.
type ContentConfig struct {
	Dir               string   `yaml:"dir" koanf:"dir"`
	BaseURL           string   `yaml:"base_url" koanf:"base_url"`
	Timeout           Duration `yaml:"timeout" koanf:"timeout"`
	CacheTTL          Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	SanitizeFragments bool     `yaml:"sanitize_fragments" koanf:"sanitize_fragments"`
}

// SiteConfig describes the public site.
type SiteConfig struct {
	URL         string `yaml:"url" koanf:"url"`
	DefaultLang string `yaml:"default_lang" koanf:"default_lang"`
}

// I18nConfig points at the interface label dictionaries.
type I18nConfig struct {
	Dir string `yaml:"dir" koanf:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         defaultAddr,
			ReadTimeout:  Duration(defaultReadTimeout),
			WriteTimeout: Duration(defaultWriteTimeout),
			IdleTimeout:  Duration(defaultIdleTimeout),
		},
		Content: ContentConfig{
			Dir:               "public",
			Timeout:           Duration(defaultFetchTimeout),
			SanitizeFragments: true,
		},
		Site: SiteConfig{DefaultLang: "fr"},
		I18n: I18nConfig{Dir: "locales"},
		Log:  LogConfig{Level: "info"},
	}
}

// Remote reports whether content is fetched from a remote origin.
func (c *Config) Remote() bool { return strings.TrimSpace(c.Content.BaseURL) != "" }

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	file         string
	fileRequired bool
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithFile reads the YAML configuration from path. The file must exist.
func WithFile(path string) Option {
	return func(o *loaderOptions) {
		o.file = path
		o.fileRequired = path != ""
	}
}

// WithEnvFile overrides the .env file path. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap injects variables that take precedence over the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load assembles the configuration and validates it.
func Load(opts ...Option) (*Config, error) {
	options := loaderOptions{
		file:         defaultConfigFile,
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	k := koanf.New(".")
	cfg := Default()

	if options.file != "" {
		if _, err := os.Stat(options.file); err == nil {
			if err := k.Load(file.Provider(options.file), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", options.file, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) || options.fileRequired {
			return nil, fmt.Errorf("config: access %s: %w", options.file, err)
		}
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return nil, err
	}
	for key, value := range dotEnv {
		if options.useSystemEnv {
			if _, ok := os.LookupEnv(key); ok {
				continue
			}
		}
		if path, ok := envKey(key); ok {
			if err := k.Set(path, value); err != nil {
				return nil, fmt.Errorf("config: apply %s: %w", key, err)
			}
		}
	}
	if options.useSystemEnv {
		if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
			path, _ := envKey(s)
			return path
		}), nil); err != nil {
			return nil, fmt.Errorf("config: load env overrides: %w", err)
		}
	}
	for key, value := range options.envMap {
		if path, ok := envKey(key); ok {
			if err := k.Set(path, value); err != nil {
				return nil, fmt.Errorf("config: apply %s: %w", key, err)
			}
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if !k.Exists("server.addr") {
		lookup := func(key string) string {
			if v, ok := options.envMap[key]; ok {
				return v
			}
			if options.useSystemEnv {
				if v, ok := os.LookupEnv(key); ok {
					return v
				}
			}
			return dotEnv[key]
		}
		if port := strings.TrimSpace(lookup("PORT")); port != "" {
			cfg.Server.Addr = ":" + port
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps FOLIO_SERVER_READ_TIMEOUT to server.read_timeout: the first underscore
// after the prefix separates the section from the key.
func envKey(name string) (string, bool) {
	if !strings.HasPrefix(name, envPrefix) {
		return "", false
	}
	rest := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if !strings.Contains(rest, "_") {
		return "", false
	}
	return strings.Replace(rest, "_", ".", 1), true
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var invalid []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		invalid = append(invalid, "server.addr")
	}
	for name, d := range map[string]Duration{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"server.idle_timeout":  c.Server.IdleTimeout,
		"content.timeout":      c.Content.Timeout,
		"content.cache_ttl":    c.Content.CacheTTL,
	} {
		if d < 0 {
			invalid = append(invalid, name)
		}
	}
	if c.Remote() {
		if !isHTTPURL(c.Content.BaseURL) {
			invalid = append(invalid, "content.base_url")
		}
	} else if strings.TrimSpace(c.Content.Dir) == "" {
		invalid = append(invalid, "content.dir")
	}
	if c.Site.URL != "" && !isHTTPURL(c.Site.URL) {
		invalid = append(invalid, "site.url")
	}
	switch c.Site.DefaultLang {
	case "fr", "en":
	default:
		invalid = append(invalid, "site.default_lang")
	}
	if strings.TrimSpace(c.I18n.Dir) == "" {
		invalid = append(invalid, "i18n.dir")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		invalid = append(invalid, "log.level")
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return &ValidationError{fields: invalid}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
