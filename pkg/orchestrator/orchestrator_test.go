package orchestrator_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/openapi"
	"github.com/goliatone/go-houseprice/pkg/orchestrator"
	"github.com/goliatone/go-houseprice/pkg/predict"
	"github.com/goliatone/go-houseprice/pkg/render"
	"github.com/goliatone/go-houseprice/pkg/renderers/tui"
	"github.com/goliatone/go-houseprice/pkg/submit"
	"github.com/goliatone/go-houseprice/pkg/testsupport"
)

func TestOrchestrator_RoundTrip(t *testing.T) {
	ctx := testsupport.Context()
	predictor := testsupport.NewPredictor(t, 254321.5)

	widget := orchestrator.New(orchestrator.WithClient(predictor.Client()))
	if err := widget.Err(); err != nil {
		t.Fatalf("init: %v", err)
	}

	before, err := widget.Render(ctx, orchestrator.Request{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(before.Body), "Estimated Price") {
		t.Fatalf("price section should be absent before the first success")
	}
	if before.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", before.ContentType)
	}

	for name, value := range map[string]string{"size": "1800", "bedrooms": "3", "age": "8"} {
		if err := widget.SetField(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	outcome := widget.Submit(ctx)
	if outcome.Phase != submit.PhaseSucceeded {
		t.Fatalf("expected success, got %s (%v)", outcome.Phase, outcome.Err)
	}

	want := []model.HouseData{{Size: "1800", Bedrooms: "3", Age: "8"}}
	if diff := testsupport.CompareGolden(want, predictor.Requests()); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}

	after, err := widget.Render(ctx, orchestrator.Request{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(after.Body), "Estimated Price: $254321.50") {
		t.Fatalf("expected price line in output:\n%s", after.Body)
	}
}

func TestOrchestrator_NoticeShownOnce(t *testing.T) {
	ctx := testsupport.Context()
	predictor := testsupport.NewPredictor(t, 1)

	var forwarded []string
	widget := orchestrator.New(
		orchestrator.WithClient(predictor.Client()),
		orchestrator.WithNotifier(submit.NotifierFunc(func(_ context.Context, msg string) {
			forwarded = append(forwarded, msg)
		})),
	)
	_ = widget.SetField("size", "1800")

	outcome := widget.Submit(ctx)
	if outcome.Phase != submit.PhaseInvalid {
		t.Fatalf("expected invalid, got %s", outcome.Phase)
	}
	if len(predictor.Requests()) != 0 {
		t.Fatalf("validation failure must not reach the service")
	}
	if diff := cmp.Diff([]string{submit.MissingFieldsNotice}, forwarded); diff != "" {
		t.Fatalf("forwarded notices mismatch (-want +got):\n%s", diff)
	}

	first, err := widget.Render(ctx, orchestrator.Request{Renderer: tui.Name})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(first.Body), "Please fill all the fields") {
		t.Fatalf("expected notice in first render:\n%s", first.Body)
	}

	second, err := widget.Render(ctx, orchestrator.Request{Renderer: tui.Name})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(second.Body), "Please fill all the fields") {
		t.Fatalf("notice should be cleared after one render:\n%s", second.Body)
	}
}

func TestOrchestrator_FailureKeepsPrice(t *testing.T) {
	ctx := testsupport.Context()
	predictor := testsupport.NewPredictor(t, 300000)
	widget := orchestrator.New(orchestrator.WithClient(predictor.Client()))
	_ = widget.SetField("size", "1800")
	_ = widget.SetField("bedrooms", "3")
	_ = widget.SetField("age", "8")

	if out := widget.Submit(ctx); out.Phase != submit.PhaseSucceeded {
		t.Fatalf("expected success, got %s", out.Phase)
	}

	predictor.Fail(http.StatusInternalServerError)
	out := widget.Submit(ctx)
	if out.Phase != submit.PhaseFailed {
		t.Fatalf("expected failure, got %s", out.Phase)
	}

	rendered, err := widget.Render(ctx, orchestrator.Request{Renderer: tui.Name})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(rendered.Body), "Estimated Price: $300000.00") {
		t.Fatalf("expected previous price kept:\n%s", rendered.Body)
	}
}

func TestOrchestrator_UnknownField(t *testing.T) {
	widget := orchestrator.New()
	if err := widget.SetField("garage", "1"); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	widget := orchestrator.New()
	_, err := widget.Render(testsupport.Context(), orchestrator.Request{Renderer: "preact"})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_ContractLabels(t *testing.T) {
	contract := openapi.Fallback()
	contract.Fields = []model.FieldSpec{
		{Field: model.FieldSize, Label: "Living area"},
		{Field: model.FieldBedrooms, Label: "Rooms"},
		{Field: model.FieldAge, Label: "Years"},
	}
	widget := orchestrator.New(
		orchestrator.WithContract(contract),
		orchestrator.WithDefaultRenderer(tui.Name),
	)

	out, err := widget.Render(testsupport.Context(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "House Price Predictor\n  Living area: -\n  Rooms: -\n  Years: -\n"
	if diff := cmp.Diff(want, string(out.Body)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_PostsToContractPath(t *testing.T) {
	ctx := testsupport.Context()
	predictor := testsupport.NewPredictor(t, 410000)
	predictor.Route("/v2/estimate")

	doc := strings.Replace(string(openapi.EmbeddedDocument()), "/api/predict/:", "/v2/estimate:", 1)
	contract, err := openapi.Load(ctx, []byte(doc), openapi.DefaultOperationID)
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}

	widget := orchestrator.New(
		orchestrator.WithClient(predictor.Client()),
		orchestrator.WithContract(contract),
	)
	for name, value := range map[string]string{"size": "2100", "bedrooms": "4", "age": "2"} {
		if err := widget.SetField(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	if outcome := widget.Submit(ctx); outcome.Phase != submit.PhaseSucceeded {
		t.Fatalf("expected success, got %s (%v)", outcome.Phase, outcome.Err)
	}
	if diff := cmp.Diff([]string{"/v2/estimate"}, predictor.Paths()); diff != "" {
		t.Fatalf("request paths mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_ExplicitPredictPathWins(t *testing.T) {
	ctx := testsupport.Context()
	predictor := testsupport.NewPredictor(t, 1)

	contract := openapi.Fallback()
	contract.Path = "/v2/estimate"
	client := predictor.Client().Derive(predict.WithPredictPath(predict.DefaultPredictPath))

	widget := orchestrator.New(
		orchestrator.WithClient(client),
		orchestrator.WithContract(contract),
	)
	for name, value := range map[string]string{"size": "1", "bedrooms": "1", "age": "1"} {
		_ = widget.SetField(name, value)
	}

	if outcome := widget.Submit(ctx); outcome.Phase != submit.PhaseSucceeded {
		t.Fatalf("expected success, got %s (%v)", outcome.Phase, outcome.Err)
	}
	if diff := cmp.Diff([]string{predict.DefaultPredictPath}, predictor.Paths()); diff != "" {
		t.Fatalf("request paths mismatch (-want +got):\n%s", diff)
	}
}
