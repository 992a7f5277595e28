// Package predict talks to the remote house price prediction service. The
// endpoint location is injected through options; the request body carries the
// form values verbatim as JSON strings.
package predict
