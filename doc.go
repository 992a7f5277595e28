// Package houseprice is a small house price estimation widget: three numeric
// inputs (size, bedrooms, age), a submission that asks a prediction service
// for a price, and renderers that show "Estimated Price: $X.XX" as HTML or
// plain text.
//
// NewWidget returns a ready-to-use widget; Estimate runs one submission and
// renders the result in a single call.
package houseprice
