package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-houseprice/pkg/model"
)

func TestHouseData_WithPreservesOtherFields(t *testing.T) {
	base := model.HouseData{Size: "1800", Bedrooms: "3", Age: "8"}

	cases := []struct {
		field model.Field
		value string
		want  model.HouseData
	}{
		{model.FieldSize, "2000", model.HouseData{Size: "2000", Bedrooms: "3", Age: "8"}},
		{model.FieldBedrooms, "", model.HouseData{Size: "1800", Bedrooms: "", Age: "8"}},
		{model.FieldAge, "12.5", model.HouseData{Size: "1800", Bedrooms: "3", Age: "12.5"}},
	}

	for _, tc := range cases {
		got, err := base.With(tc.field, tc.value)
		if err != nil {
			t.Fatalf("with %s: %v", tc.field, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("with %s mismatch (-want +got):\n%s", tc.field, diff)
		}
	}

	if diff := cmp.Diff(model.HouseData{Size: "1800", Bedrooms: "3", Age: "8"}, base); diff != "" {
		t.Fatalf("receiver mutated (-want +got):\n%s", diff)
	}
}

func TestHouseData_WithUnknownField(t *testing.T) {
	base := model.HouseData{Size: "1"}
	got, err := base.With(model.Field("garage"), "2")
	if !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got != base {
		t.Fatalf("expected unchanged data, got %+v", got)
	}
}

func TestHouseData_Missing(t *testing.T) {
	cases := map[string]struct {
		data model.HouseData
		want []model.Field
	}{
		"empty":    {model.HouseData{}, []model.Field{model.FieldSize, model.FieldBedrooms, model.FieldAge}},
		"age only": {model.HouseData{Size: "1", Bedrooms: "2"}, []model.Field{model.FieldAge}},
		"zero set": {model.HouseData{Size: "0", Bedrooms: "0", Age: "0"}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.data.Missing()); diff != "" {
				t.Fatalf("missing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	got, err := model.ParseField(" Bedrooms ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != model.FieldBedrooms {
		t.Fatalf("expected bedrooms, got %q", got)
	}
	if _, err := model.ParseField("price"); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}
