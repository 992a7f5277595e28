package render

import (
	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/state"
)

const (
	DefaultTitle       = "House Price Predictor"
	DefaultSubtitle    = "Enter property details to estimate market value."
	DefaultSubmitLabel = "Predict Price"
)

// FieldView is one numeric input as presented to the user.
type FieldView struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Placeholder string  `json:"placeholder,omitempty"`
	Help        string  `json:"help,omitempty"`
	Minimum     float64 `json:"minimum"`
	Required    bool    `json:"required"`
}

// HiddenField is a hidden form input emitted alongside the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// View is everything a renderer needs to draw the widget once.
type View struct {
	Title         string        `json:"title"`
	Subtitle      string        `json:"subtitle"`
	Action        string        `json:"action"`
	FieldEndpoint string        `json:"field_endpoint,omitempty"`
	SubmitLabel   string        `json:"submit_label"`
	Fields        []FieldView   `json:"fields"`
	Hidden        []HiddenField `json:"hidden,omitempty"`
	HasPrice      bool          `json:"has_price"`
	Price         string        `json:"price,omitempty"`
	PriceLine     string        `json:"price_line,omitempty"`
	Notice        string        `json:"notice,omitempty"`
}

// NewView binds snap to the supplied field specs. Specs default to
// model.DefaultFieldSpecs when empty.
func NewView(snap state.Snapshot, specs []model.FieldSpec, options ...ViewOption) View {
	if len(specs) == 0 {
		specs = model.DefaultFieldSpecs()
	}

	view := View{
		Title:       DefaultTitle,
		Subtitle:    DefaultSubtitle,
		Action:      "/",
		SubmitLabel: DefaultSubmitLabel,
		Fields:      make([]FieldView, 0, len(specs)),
	}

	for _, spec := range specs {
		value, err := snap.Data.Get(spec.Field)
		if err != nil {
			continue
		}
		view.Fields = append(view.Fields, FieldView{
			Name:        spec.Field.String(),
			Label:       spec.Label,
			Value:       value,
			Placeholder: spec.Placeholder,
			Help:        spec.Help,
			Minimum:     spec.Minimum,
			Required:    spec.Required,
		})
	}

	if snap.Price.Valid {
		view.HasPrice = true
		view.Price = FormatPrice(snap.Price.Value)
		view.PriceLine = PriceLine(snap.Price)
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&view)
	}
	return view
}
