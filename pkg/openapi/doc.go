// Package openapi reads the prediction endpoint contract from an OpenAPI 3
// document using kin-openapi. The contract supplies the endpoint path, which
// the prediction client posts to unless a path was configured explicitly, and
// the per-field labels, placeholders and bounds the renderers display. The
// operation must be a POST. A copy of
// the contract is embedded so the widget works without any external file.
package openapi
