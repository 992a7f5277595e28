// Package submit validates form input, dispatches it to the prediction client
// and writes the result back into the state holder.
package submit

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/predict"
	"github.com/goliatone/go-houseprice/pkg/state"
)

// Phase is a step of the submission state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSending    Phase = "sending"
	PhaseInvalid    Phase = "invalid"
	PhaseSucceeded  Phase = "succeeded"
	PhaseStale      Phase = "stale"
	PhaseFailed     Phase = "failed"
)

// Outcome describes how one submission ended. Err is a *ValidationError for
// PhaseInvalid and a *predict.TransportError for PhaseFailed.
type Outcome struct {
	Phase Phase
	Token state.Token
	Price float64
	Err   error
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger used for failed submissions.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNotifier sets the notifier used for validation failures.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// Controller runs submissions for one holder. Overlapping calls are allowed;
// only the most recently dispatched one can update the price.
type Controller struct {
	holder   *state.Holder
	client   predict.Client
	logger   *zap.Logger
	notifier Notifier

	mu    sync.Mutex
	phase Phase
}

// New constructs a Controller bound to holder and client.
func New(holder *state.Holder, client predict.Client, options ...Option) *Controller {
	c := &Controller{
		holder:   holder,
		client:   client,
		logger:   zap.NewNop(),
		notifier: NotifierFunc(func(context.Context, string) {}),
		phase:    PhaseIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Phase reports the phase of the most recent submission step. Terminal phases
// return to idle once the submission finishes, so callers normally observe
// idle, validating or sending.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Submit validates data and, when complete, sends it for prediction. It never
// panics on remote failures; the outcome carries any error.
func (c *Controller) Submit(ctx context.Context, data model.HouseData) Outcome {
	c.setPhase(PhaseValidating)

	if missing := data.Missing(); len(missing) > 0 {
		c.notifier.Notify(ctx, MissingFieldsNotice)
		c.setPhase(PhaseIdle)
		return Outcome{Phase: PhaseInvalid, Err: &ValidationError{Missing: missing}}
	}

	token := c.holder.BeginSubmission()
	c.setPhase(PhaseSending)
	defer c.setPhase(PhaseIdle)

	prediction, err := c.client.Predict(ctx, data)
	if err != nil {
		c.logger.Warn("price prediction failed",
			zap.Uint64("token", uint64(token)),
			zap.Error(err),
		)
		return Outcome{Phase: PhaseFailed, Token: token, Err: err}
	}

	if !c.holder.SetPriceFor(token, prediction.PredictedPrice) {
		c.logger.Debug("discarding superseded prediction",
			zap.Uint64("token", uint64(token)),
			zap.Float64("predicted_price", prediction.PredictedPrice),
		)
		return Outcome{Phase: PhaseStale, Token: token, Price: prediction.PredictedPrice}
	}

	c.logger.Info("price predicted",
		zap.Uint64("token", uint64(token)),
		zap.Float64("predicted_price", prediction.PredictedPrice),
		zap.String("service_timestamp", prediction.Timestamp),
	)
	return Outcome{Phase: PhaseSucceeded, Token: token, Price: prediction.PredictedPrice}
}

// SubmitCurrent submits the holder's current HouseData.
func (c *Controller) SubmitCurrent(ctx context.Context) Outcome {
	return c.Submit(ctx, c.holder.Snapshot().Data)
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}
