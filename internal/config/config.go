// Package config loads the houseprice runtime configuration from YAML with
// environment overrides applied on top.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-houseprice/pkg/predict"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "houseprice.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HOUSEPRICE_"

// Config is the full runtime configuration.
type Config struct {
	Endpoint Endpoint `yaml:"endpoint"`
	Server   Server   `yaml:"server"`
	Log      Log      `yaml:"log"`
	Theme    Theme    `yaml:"theme"`
}

// Endpoint locates the prediction service.
type Endpoint struct {
	BaseURL     string        `yaml:"base_url"`
	// PredictPath pins the prediction route. When empty the route comes from
	// the endpoint contract, then predict.DefaultPredictPath.
	PredictPath string        `yaml:"predict_path"`
	InfoPath    string        `yaml:"info_path"`
	Timeout     time.Duration `yaml:"timeout"`
	// Contract optionally points at an OpenAPI document describing the
	// prediction operation; the embedded one is used otherwise.
	Contract string `yaml:"contract"`
}

// Server configures the HTTP front end.
type Server struct {
	Addr     string `yaml:"addr"`
	Sessions int    `yaml:"sessions"`
}

// Log configures diagnostics.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Theme selects the widget theme and CSS variable overrides.
type Theme struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	CSSVars map[string]string `yaml:"css_vars"`
	// TemplatesDir replaces the bundled HTML templates with
	// <dir>/templates/form.tmpl.
	TemplatesDir string `yaml:"templates_dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Endpoint: Endpoint{
			BaseURL:  predict.DefaultBaseURL,
			InfoPath: predict.DefaultInfoPath,
			Timeout:  10 * time.Second,
		},
		Server: Server{
			Addr:     ":8080",
			Sessions: 1024,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// silently falls back to the defaults when it does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys absent from data keep their value.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, cfg)
}

// ApplyEnv overrides cfg from HOUSEPRICE_* variables using lookup, normally
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("BASE_URL"); ok {
		c.Endpoint.BaseURL = v
	}
	if v, ok := get("PREDICT_PATH"); ok {
		c.Endpoint.PredictPath = v
	}
	if v, ok := get("INFO_PATH"); ok {
		c.Endpoint.InfoPath = v
	}
	if v, ok := get("CONTRACT"); ok {
		c.Endpoint.Contract = v
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Endpoint.Timeout = d
	}
	if v, ok := get("ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := get("SESSIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sSESSIONS: %w", EnvPrefix, err)
		}
		c.Server.Sessions = n
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := get("THEME"); ok {
		c.Theme.Name = v
	}
	if v, ok := get("THEME_VARIANT"); ok {
		c.Theme.Variant = v
	}
	if v, ok := get("TEMPLATES_DIR"); ok {
		c.Theme.TemplatesDir = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: endpoint.base_url %q is not an absolute URL", c.Endpoint.BaseURL)
	}
	if c.Endpoint.PredictPath != "" && !strings.HasPrefix(c.Endpoint.PredictPath, "/") {
		return fmt.Errorf("config: endpoint.predict_path %q must start with /", c.Endpoint.PredictPath)
	}
	if c.Endpoint.Timeout <= 0 {
		return fmt.Errorf("config: endpoint.timeout must be positive")
	}
	if c.Server.Sessions <= 0 {
		return fmt.Errorf("config: server.sessions must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// PredictOptions translates the endpoint settings into client options.
func (c Config) PredictOptions() []predict.Option {
	opts := []predict.Option{
		predict.WithBaseURL(c.Endpoint.BaseURL),
		predict.WithInfoPath(c.Endpoint.InfoPath),
	}
	if c.Endpoint.PredictPath != "" {
		opts = append(opts, predict.WithPredictPath(c.Endpoint.PredictPath))
	}
	if c.Endpoint.Timeout > 0 {
		opts = append(opts, predict.WithTimeout(c.Endpoint.Timeout))
	}
	return opts
}

// RendererTheme resolves the theme section for the HTML renderer. It returns
// nil when no theme is configured.
func (c Config) RendererTheme(assetBase string) *theme.RendererConfig {
	if c.Theme.Name == "" && len(c.Theme.CSSVars) == 0 {
		return nil
	}
	name := c.Theme.Name
	base := strings.TrimRight(assetBase, "/")
	vars := make(map[string]string, len(c.Theme.CSSVars))
	for key, value := range c.Theme.CSSVars {
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		vars[key] = value
	}
	return &theme.RendererConfig{
		Theme:   name,
		Variant: c.Theme.Variant,
		CSSVars: vars,
		AssetURL: func(key string) string {
			if key == "" || base == "" {
				return ""
			}
			return base + "/" + key
		},
	}
}
