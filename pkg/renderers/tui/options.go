package tui

import (
	"io"

	"go.uber.org/zap"
)

// Theme captures optional message prefixes. Keep minimal to avoid coupling
// session logic to ANSI specifics.
type Theme struct {
	InfoPrefix   string
	NoticePrefix string
	ResultPrefix string
}

// Option configures the TUI renderer and session.
type Option func(*config)

type config struct {
	driver PromptDriver
	out    io.Writer
	theme  Theme
	logger *zap.Logger
}

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *config) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutput sets where the survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(c *config) {
		if out != nil {
			c.out = out
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *config) {
		c.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = newSurveyDriver(cfg.out)
	}
	return cfg
}
