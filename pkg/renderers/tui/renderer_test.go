package tui

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/render"
	"github.com/goliatone/go-houseprice/pkg/state"
)

func TestRenderer_Render(t *testing.T) {
	holder := state.New()
	_ = holder.SetField(model.FieldSize, "1800")
	_ = holder.SetField(model.FieldAge, "8")
	holder.SetPrice(254321.5)

	view := render.NewView(holder.Snapshot(), model.DefaultFieldSpecs(), render.WithNotice("check the form"))
	r := New(WithTheme(Theme{NoticePrefix: "! ", ResultPrefix: "> "}))

	out, err := r.Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "House Price Predictor\n" +
		"  House Size (sq ft): 1800\n" +
		"  Number of bedrooms: -\n" +
		"  House Age (years): 8\n" +
		"! check the form\n" +
		"> Estimated Price: $254321.50\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_NoPriceLineWhenAbsent(t *testing.T) {
	view := render.NewView(state.New().Snapshot(), model.DefaultFieldSpecs())
	out, err := New().Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "House Price Predictor\n  House Size (sq ft): -\n  Number of bedrooms: -\n  House Age (years): -\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Render(ctx, render.View{}); err == nil {
		t.Fatalf("expected context error")
	}
}
