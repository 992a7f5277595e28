package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/render"
	"github.com/goliatone/go-houseprice/pkg/state"
)

func TestNewView_BindsSnapshot(t *testing.T) {
	snap := state.Snapshot{
		Data:  model.HouseData{Size: "1800", Bedrooms: "3", Age: ""},
		Price: model.PriceOf(254321.5),
	}

	view := render.NewView(snap, nil,
		render.WithNotice("Please fill all the fields"),
		render.WithAction("/predict"),
		render.WithHiddenFields(render.HiddenField{Name: "session", Value: "abc"}, render.HiddenField{}),
	)

	wantFields := []render.FieldView{
		{Name: "size", Label: "House Size (sq ft)", Value: "1800", Placeholder: "e.g. 1800", Required: true},
		{Name: "bedrooms", Label: "Number of bedrooms", Value: "3", Placeholder: "e.g. 3", Required: true},
		{Name: "age", Label: "House Age (years)", Value: "", Placeholder: "e.g. 8", Required: true},
	}
	if diff := cmp.Diff(wantFields, view.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !view.HasPrice || view.PriceLine != "Estimated Price: $254321.50" || view.Price != "$254321.50" {
		t.Fatalf("unexpected price rendering %+v", view)
	}
	if view.Notice != "Please fill all the fields" || view.Action != "/predict" {
		t.Fatalf("options not applied: %+v", view)
	}
	if diff := cmp.Diff([]render.HiddenField{{Name: "session", Value: "abc"}}, view.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
}

func TestNewView_NoPriceBeforePrediction(t *testing.T) {
	view := render.NewView(state.Snapshot{}, nil)
	if view.HasPrice || view.PriceLine != "" || view.Price != "" {
		t.Fatalf("expected no price section, got %+v", view)
	}
	if view.Title != render.DefaultTitle || view.SubmitLabel != render.DefaultSubmitLabel {
		t.Fatalf("unexpected defaults %+v", view)
	}
}
