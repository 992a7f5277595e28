package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-houseprice/pkg/render"
)

// Name identifies the terminal renderer in a render.Registry.
const Name = "tui"

// Renderer prints a View as plain text, one field per line followed by the
// price line when present.
type Renderer struct {
	theme Theme
}

// Ensure the implementation satisfies the public interface.
var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(options ...Option) *Renderer {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{theme: cfg.theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the view as text.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(view.Title)
	b.WriteString("\n")
	for _, field := range view.Fields {
		value := field.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "  %s: %s\n", field.Label, value)
	}
	if view.Notice != "" {
		b.WriteString(r.theme.NoticePrefix + view.Notice + "\n")
	}
	if view.HasPrice {
		b.WriteString(r.theme.ResultPrefix + view.PriceLine + "\n")
	}
	return []byte(b.String()), nil
}
