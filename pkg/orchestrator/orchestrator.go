package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/openapi"
	"github.com/goliatone/go-houseprice/pkg/predict"
	"github.com/goliatone/go-houseprice/pkg/render"
	"github.com/goliatone/go-houseprice/pkg/renderers/tui"
	"github.com/goliatone/go-houseprice/pkg/renderers/vanilla"
	"github.com/goliatone/go-houseprice/pkg/state"
	"github.com/goliatone/go-houseprice/pkg/submit"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithClient injects the prediction client.
func WithClient(client predict.Client) Option {
	return func(o *Orchestrator) {
		o.client = client
	}
}

// WithHolder binds the widget to an existing holder.
func WithHolder(holder *state.Holder) Option {
	return func(o *Orchestrator) {
		o.holder = holder
	}
}

// WithContract supplies a pre-loaded endpoint contract, skipping the embedded
// document. An *predict.HTTPClient without an explicit predict path posts to
// the contract's operation path.
func WithContract(contract openapi.Contract) Option {
	return func(o *Orchestrator) {
		o.contract = contract
		o.contractSet = true
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render is called
// without a name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger sets the logger passed to the submission controller.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNotifier forwards blocking notices to n in addition to attaching them
// to the next render.
func WithNotifier(n submit.Notifier) Option {
	return func(o *Orchestrator) {
		o.notifier = n
	}
}

// WithViewOptions applies view options to every render.
func WithViewOptions(options ...render.ViewOption) Option {
	return func(o *Orchestrator) {
		o.viewOptions = append(o.viewOptions, options...)
	}
}

// Orchestrator is one widget instance. It applies sensible defaults (HTTP
// client on the default endpoint, embedded contract, vanilla and tui
// renderers) while remaining open to dependency injection.
type Orchestrator struct {
	holder          *state.Holder
	client          predict.Client
	controller      *submit.Controller
	contract        openapi.Contract
	contractSet     bool
	registry        *render.Registry
	defaultRenderer string
	logger          *zap.Logger
	notifier        submit.Notifier
	viewOptions     []render.ViewOption
	initialiseErr   error

	mu     sync.Mutex
	notice string
}

var _ submit.Notifier = (*Orchestrator)(nil)

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Err reports a failure while initialising the default renderers.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Holder exposes the widget's input state.
func (o *Orchestrator) Holder() *state.Holder {
	return o.holder
}

// Contract reports the endpoint contract the widget renders from.
func (o *Orchestrator) Contract() openapi.Contract {
	return o.contract
}

// SetField updates one input by its wire name.
func (o *Orchestrator) SetField(name, value string) error {
	field, err := model.ParseField(name)
	if err != nil {
		return err
	}
	return o.holder.SetField(field, value)
}

// Submit runs the submission controller on the current values.
func (o *Orchestrator) Submit(ctx context.Context) submit.Outcome {
	return o.controller.SubmitCurrent(ctx)
}

// Notify records message for the next render and forwards it to the
// configured notifier.
func (o *Orchestrator) Notify(ctx context.Context, message string) {
	o.mu.Lock()
	o.notice = message
	o.mu.Unlock()
	if o.notifier != nil {
		o.notifier.Notify(ctx, message)
	}
}

// Request selects a renderer and per-call view options.
type Request struct {
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Options are applied after the orchestrator-wide view options.
	Options []render.ViewOption
}

// Output is a rendered widget.
type Output struct {
	Body        []byte
	ContentType string
}

// Render draws the current snapshot. A pending notice is attached once and
// then cleared.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	options := make([]render.ViewOption, 0, len(o.viewOptions)+len(req.Options)+1)
	options = append(options, o.viewOptions...)
	options = append(options, req.Options...)
	if notice := o.takeNotice(); notice != "" {
		options = append(options, render.WithNotice(notice))
	}

	view := render.NewView(o.holder.Snapshot(), o.contract.Fields, options...)
	body, err := renderer.Render(ctx, view)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Output{Body: body, ContentType: renderer.ContentType()}, nil
}

func (o *Orchestrator) takeNotice() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	notice := o.notice
	o.notice = ""
	return notice
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.holder == nil {
		o.holder = state.New()
	}
	if o.client == nil {
		o.client = predict.New()
	}
	if !o.contractSet {
		contract, err := openapi.Default(context.Background())
		if err != nil {
			o.logger.Warn("embedded contract unavailable, using built-in fields", zap.Error(err))
			contract = openapi.Fallback()
		}
		o.contract = contract
	}
	if len(o.contract.Fields) == 0 {
		o.contract.Fields = model.DefaultFieldSpecs()
	}
	if hc, ok := o.client.(*predict.HTTPClient); ok && o.contract.Path != "" && !hc.PredictPathSet() {
		o.client = hc.Derive(predict.WithPredictPath(o.contract.Path))
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.controller = submit.New(o.holder, o.client,
		submit.WithLogger(o.logger),
		submit.WithNotifier(o),
	)
}

// DefaultRegistry returns a registry holding the vanilla HTML renderer,
// configured with vanillaOptions, and the plain text tui renderer.
func DefaultRegistry(vanillaOptions ...vanilla.Option) (*render.Registry, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New(vanillaOptions...)
	if err != nil {
		return registry, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	if err := registry.Register(html); err != nil {
		return registry, fmt.Errorf("orchestrator: register %s: %w", html.Name(), err)
	}
	if err := registry.Register(tui.New()); err != nil {
		return registry, fmt.Errorf("orchestrator: register %s: %w", tui.Name, err)
	}
	return registry, nil
}
