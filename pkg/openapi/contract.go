package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-houseprice/pkg/model"
)

// DefaultOperationID names the prediction operation in the contract.
const DefaultOperationID = "predictPrice"

// Contract is the subset of the endpoint description the widget needs.
type Contract struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
	Fields      []model.FieldSpec
}

// Default loads the embedded contract.
func Default(ctx context.Context) (Contract, error) {
	return Load(ctx, embeddedContract, DefaultOperationID)
}

// LoadFile reads an OpenAPI document from disk and extracts operationID.
func LoadFile(ctx context.Context, path, operationID string) (Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Contract{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Load(ctx, data, operationID)
}

// Load parses an OpenAPI document and extracts the operation identified by
// operationID. Fields absent from the request schema keep their built-in
// specs; unknown properties are ignored.
func Load(ctx context.Context, data []byte, operationID string) (Contract, error) {
	if err := ctx.Err(); err != nil {
		return Contract{}, err
	}
	if len(data) == 0 {
		return Contract{}, errors.New("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Contract{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return Contract{}, errors.New("openapi: document does not contain any paths")
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			if !strings.EqualFold(method, http.MethodPost) {
				return Contract{}, fmt.Errorf("openapi: operation %q uses %s, predictions are sent with POST", operationID, strings.ToUpper(method))
			}
			return Contract{
				OperationID: op.OperationID,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     op.Summary,
				Fields:      fieldSpecs(requestSchema(op.RequestBody)),
			}, nil
		}
	}
	return Contract{}, fmt.Errorf("openapi: operation %q not found", operationID)
}

// Fallback returns the contract used when no document can be loaded.
func Fallback() Contract {
	return Contract{
		OperationID: DefaultOperationID,
		Method:      http.MethodPost,
		Path:        "/api/predict/",
		Fields:      model.DefaultFieldSpecs(),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldSpecs(schema *openapi3.Schema) []model.FieldSpec {
	specs := model.DefaultFieldSpecs()
	if schema == nil {
		return specs
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	for i, spec := range specs {
		ref, ok := schema.Properties[spec.Field.String()]
		if !ok || ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if title := strings.TrimSpace(prop.Title); title != "" {
			spec.Label = title
		}
		if desc := strings.TrimSpace(prop.Description); desc != "" {
			spec.Help = desc
		}
		if prop.Example != nil {
			spec.Placeholder = "e.g. " + fmt.Sprint(prop.Example)
		}
		if prop.Min != nil {
			spec.Minimum = *prop.Min
		}
		_, spec.Required = required[spec.Field.String()]
		specs[i] = spec
	}
	return specs
}
