package houseprice

import (
	"context"

	"github.com/goliatone/go-houseprice/pkg/orchestrator"
	"github.com/goliatone/go-houseprice/pkg/predict"
	"github.com/goliatone/go-houseprice/pkg/render"
	"github.com/goliatone/go-houseprice/pkg/submit"
)

// Widget is one house price form instance.
type Widget = orchestrator.Orchestrator

// Outcome aliases submit.Outcome for callers inspecting submissions.
type Outcome = submit.Outcome

// NewWidget exposes the orchestrator constructor from the top-level module.
func NewWidget(options ...orchestrator.Option) *Widget {
	return orchestrator.New(options...)
}

// NewWidgetForEndpoint builds a widget whose prediction client targets
// baseURL instead of the default local service.
func NewWidgetForEndpoint(baseURL string, options ...orchestrator.Option) *Widget {
	client := predict.New(predict.WithBaseURL(baseURL))
	return orchestrator.New(append([]orchestrator.Option{orchestrator.WithClient(client)}, options...)...)
}

// Estimate fills a fresh widget with size, bedrooms and age, submits it and
// returns the outcome with the rendered widget. It is the simplest entry
// point for callers that just want HTML output.
func Estimate(ctx context.Context, size, bedrooms, age string, options ...orchestrator.Option) (Outcome, []byte, error) {
	widget := orchestrator.New(options...)
	for name, value := range map[string]string{"size": size, "bedrooms": bedrooms, "age": age} {
		if err := widget.SetField(name, value); err != nil {
			return Outcome{}, nil, err
		}
	}
	outcome := widget.Submit(ctx)
	out, err := widget.Render(ctx, orchestrator.Request{})
	if err != nil {
		return outcome, nil, err
	}
	return outcome, out.Body, nil
}

// FormatPrice renders a price with the currency symbol and two decimals.
func FormatPrice(v float64) string {
	return render.FormatPrice(v)
}
