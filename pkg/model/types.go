package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a field name is not one of size, bedrooms
// or age.
var ErrUnknownField = errors.New("model: unknown field")

// Field identifies one of the three house attributes collected by the form.
type Field string

const (
	FieldSize     Field = "size"
	FieldBedrooms Field = "bedrooms"
	FieldAge      Field = "age"
)

// Fields returns the form fields in display order.
func Fields() []Field {
	return []Field{FieldSize, FieldBedrooms, FieldAge}
}

// ParseField resolves a field name, ignoring surrounding whitespace and case.
func ParseField(name string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(name))) {
	case FieldSize:
		return FieldSize, nil
	case FieldBedrooms:
		return FieldBedrooms, nil
	case FieldAge:
		return FieldAge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

func (f Field) String() string {
	return string(f)
}

// HouseData is the three-field record entered by the user. An empty string
// means the field is unset.
type HouseData struct {
	Size     string `json:"size"`
	Bedrooms string `json:"bedrooms"`
	Age      string `json:"age"`
}

// Get returns the value stored for field.
func (d HouseData) Get(field Field) (string, error) {
	switch field {
	case FieldSize:
		return d.Size, nil
	case FieldBedrooms:
		return d.Bedrooms, nil
	case FieldAge:
		return d.Age, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
}

// With returns a copy of d with field replaced by value. The receiver is left
// untouched.
func (d HouseData) With(field Field, value string) (HouseData, error) {
	next := d
	switch field {
	case FieldSize:
		next.Size = value
	case FieldBedrooms:
		next.Bedrooms = value
	case FieldAge:
		next.Age = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return next, nil
}

// Missing lists the fields that are still empty, in display order.
func (d HouseData) Missing() []Field {
	var out []Field
	for _, field := range Fields() {
		value, _ := d.Get(field)
		if value == "" {
			out = append(out, field)
		}
	}
	return out
}

// Complete reports whether every field carries a value.
func (d HouseData) Complete() bool {
	return len(d.Missing()) == 0
}

// Price is the nullable estimate returned by the prediction service. The zero
// value means no prediction has been received yet.
type Price struct {
	Value float64
	Valid bool
}

// PriceOf wraps v as a present price.
func PriceOf(v float64) Price {
	return Price{Value: v, Valid: true}
}

// Prediction is the decoded success payload of the prediction endpoint. Any
// extra fields in the response are ignored.
type Prediction struct {
	PredictedPrice float64 `json:"predicted_price"`
	Timestamp      string  `json:"timestamp,omitempty"`
}

// ModelInfo mirrors the service's model metadata route.
type ModelInfo struct {
	Status      string        `json:"status"`
	Metadata    ModelMetadata `json:"metadata"`
	CurrentTime string        `json:"current_time,omitempty"`
}

// ModelMetadata describes the model currently serving predictions.
type ModelMetadata struct {
	TrainedAt       string   `json:"trained_at"`
	TrainingSamples *int     `json:"training_samples,omitempty"`
	MarketTrend     *float64 `json:"market_trend,omitempty"`
	DataSource      string   `json:"data_source"`
}

// FieldSpec carries the rendering metadata for one form input.
type FieldSpec struct {
	Field       Field   `json:"field"`
	Label       string  `json:"label"`
	Placeholder string  `json:"placeholder,omitempty"`
	Help        string  `json:"help,omitempty"`
	Minimum     float64 `json:"minimum"`
	Required    bool    `json:"required"`
}

// DefaultFieldSpecs returns the built-in labels used when no endpoint contract
// overrides them.
func DefaultFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Field: FieldSize, Label: "House Size (sq ft)", Placeholder: "e.g. 1800", Required: true},
		{Field: FieldBedrooms, Label: "Number of bedrooms", Placeholder: "e.g. 3", Required: true},
		{Field: FieldAge, Label: "House Age (years)", Placeholder: "e.g. 8", Required: true},
	}
}
