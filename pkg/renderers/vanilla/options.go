package vanilla

import (
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	theme      *theme.RendererConfig
	stylesheet string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. The directory
// must hold templates/form.tmpl.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTheme applies a resolved go-theme configuration: CSS variables on the
// widget root, theme/variant markers and the theme stylesheet asset.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithStylesheet links an external stylesheet instead of the theme asset.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = href
	}
}
