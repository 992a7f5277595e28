package vanilla

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-houseprice/pkg/render"
	rendertemplate "github.com/goliatone/go-houseprice/pkg/render/template"
	"github.com/goliatone/go-houseprice/pkg/render/template/gotemplate"
)

// Name identifies the HTML renderer in a render.Registry.
const Name = "vanilla"

// Renderer draws the widget as a server-rendered HTML fragment.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     themeContext
}

// Ensure the implementation satisfies the public interface.
var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}

	return &Renderer{
		templates: engine,
		theme:     buildThemeContext(cfg.theme, cfg.stylesheet),
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes templates/form.tmpl with the view.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", templateData(view, r.theme))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// templateData pre-formats numbers; pongo2 prints floats with six decimals.
func templateData(view render.View, th themeContext) map[string]any {
	fields := make([]map[string]any, 0, len(view.Fields))
	for _, field := range view.Fields {
		fields = append(fields, map[string]any{
			"id":          controlID(field.Name),
			"name":        field.Name,
			"label":       field.Label,
			"value":       field.Value,
			"placeholder": field.Placeholder,
			"help":        sanitizeHelp(field.Help),
			"min":         strconv.FormatFloat(field.Minimum, 'f', -1, 64),
			"required":    field.Required,
		})
	}

	hidden := make([]map[string]any, 0, len(view.Hidden))
	for _, h := range view.Hidden {
		hidden = append(hidden, map[string]any{"name": h.Name, "value": h.Value})
	}

	return map[string]any{
		"view": map[string]any{
			"title":          view.Title,
			"subtitle":       view.Subtitle,
			"action":         view.Action,
			"field_endpoint": view.FieldEndpoint,
			"submit_label":   view.SubmitLabel,
			"has_price":      view.HasPrice,
			"price_line":     view.PriceLine,
			"notice":         view.Notice,
		},
		"fields": fields,
		"hidden": hidden,
		"theme": map[string]any{
			"name":       th.Name,
			"variant":    th.Variant,
			"style":      th.Style,
			"stylesheet": th.Stylesheet,
		},
	}
}
