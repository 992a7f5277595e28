package predict

import (
	"errors"
	"fmt"
)

// ErrMissingPrice is wrapped when a success response lacks a numeric
// predicted_price.
var ErrMissingPrice = errors.New("predict: response missing predicted_price")

// TransportError describes any failure of a prediction round trip: network
// errors, non-2xx statuses and undecodable responses. Status is zero when no
// response was received.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("predict: %s: status %d: %v", e.URL, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("predict: %s: unexpected status %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("predict: %s: %v", e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
