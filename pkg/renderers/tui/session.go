package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/render"
	"github.com/goliatone/go-houseprice/pkg/state"
	"github.com/goliatone/go-houseprice/pkg/submit"
)

// Submitter runs one submission of the holder's current values.
type Submitter interface {
	SubmitCurrent(ctx context.Context) submit.Outcome
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context) submit.Outcome

func (f SubmitterFunc) SubmitCurrent(ctx context.Context) submit.Outcome {
	return f(ctx)
}

// Session drives the interactive form: it prompts each field, writes every
// answer into the holder and submits on confirmation. While running it
// subscribes to the holder and prints the price line whenever a price is
// applied. A Session is also the submit.Notifier for its controller.
type Session struct {
	holder *state.Holder
	specs  []model.FieldSpec
	driver PromptDriver
	theme  Theme
	logger *zap.Logger
}

// NewSession binds a session to holder. Specs default to
// model.DefaultFieldSpecs.
func NewSession(holder *state.Holder, specs []model.FieldSpec, options ...Option) *Session {
	cfg := newConfig(options)
	if len(specs) == 0 {
		specs = model.DefaultFieldSpecs()
	}
	return &Session{
		holder: holder,
		specs:  specs,
		driver: cfg.driver,
		theme:  cfg.theme,
		logger: cfg.logger,
	}
}

var _ submit.Notifier = (*Session)(nil)

// Notify shows a blocking notice through the prompt driver.
func (s *Session) Notify(ctx context.Context, message string) {
	if err := s.driver.Info(ctx, s.theme.NoticePrefix+message); err != nil {
		s.logger.Debug("notice not shown", zap.Error(err))
	}
}

// Run loops until the user declines another estimate. ErrAborted is returned
// when the user interrupts a prompt.
func (s *Session) Run(ctx context.Context, submitter Submitter) error {
	cancel := s.holder.Subscribe(s.priceWatcher(ctx))
	defer cancel()

	for {
		if err := s.promptFields(ctx); err != nil {
			return err
		}

		submitNow, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: render.DefaultSubmitLabel + "?",
			Default: true,
		})
		if err != nil {
			return err
		}
		if submitNow {
			// Failures were already recorded by the controller and leave the
			// previous price in place; a success reaches the price watcher.
			submitter.SubmitCurrent(ctx)
		}

		again, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Estimate another house?",
			Default: false,
		})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) promptFields(ctx context.Context) error {
	current := s.holder.Snapshot().Data
	for _, spec := range s.specs {
		value, err := current.Get(spec.Field)
		if err != nil {
			return err
		}
		answer, err := s.driver.Input(ctx, InputConfig{
			Message:     spec.Label,
			Default:     value,
			Help:        spec.Help,
			Placeholder: spec.Placeholder,
			Validator:   numericValidator(spec.Minimum),
		})
		if err != nil {
			return err
		}
		if err := s.holder.SetField(spec.Field, strings.TrimSpace(answer)); err != nil {
			return err
		}
	}
	return nil
}

// priceWatcher returns a holder listener that prints the price line once per
// applied price. Field edits are ignored.
func (s *Session) priceWatcher(ctx context.Context) state.Listener {
	var mu sync.Mutex
	seen := s.holder.Snapshot().PriceVersion
	return func(snap state.Snapshot) {
		mu.Lock()
		if snap.PriceVersion <= seen {
			mu.Unlock()
			return
		}
		seen = snap.PriceVersion
		mu.Unlock()

		line := render.PriceLine(snap.Price)
		if line == "" {
			return
		}
		if err := s.driver.Info(ctx, s.theme.ResultPrefix+line); err != nil {
			s.logger.Debug("price not shown", zap.Error(err))
		}
	}
}

// numericValidator accepts "" so the submission gate can report missing
// fields, and otherwise requires a number no lower than minimum.
func numericValidator(minimum float64) func(string) error {
	return func(raw string) error {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("enter a number")
		}
		if v < minimum {
			return fmt.Errorf("must be at least %s", strconv.FormatFloat(minimum, 'f', -1, 64))
		}
		return nil
	}
}
