package openapi

import _ "embed"

//go:embed predict.yaml
var embeddedContract []byte

// EmbeddedDocument returns the bundled contract document.
func EmbeddedDocument() []byte {
	out := make([]byte, len(embeddedContract))
	copy(out, embeddedContract)
	return out
}
