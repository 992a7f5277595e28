package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-houseprice/pkg/model"
)

// Client performs a single prediction call.
type Client interface {
	Predict(ctx context.Context, data model.HouseData) (model.Prediction, error)
}

// HTTPClient implements Client against the JSON prediction endpoint.
type HTTPClient struct {
	http        *http.Client
	baseURL     string
	predictPath string
	infoPath    string
	timeout     time.Duration

	predictPathSet bool
}

// Ensure the implementation satisfies the public interface.
var _ Client = (*HTTPClient)(nil)

// New constructs an HTTPClient. Without options it targets DefaultBaseURL.
func New(options ...Option) *HTTPClient {
	c := &HTTPClient{
		http:        http.DefaultClient,
		baseURL:     DefaultBaseURL,
		predictPath: DefaultPredictPath,
		infoPath:    DefaultInfoPath,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.applyTimeout()
	return c
}

// Derive returns a copy of c with options applied on top of its current
// configuration. The receiver is not modified.
func (c *HTTPClient) Derive(options ...Option) *HTTPClient {
	derived := *c
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&derived)
	}
	derived.applyTimeout()
	return &derived
}

// PredictPathSet reports whether the prediction route was chosen explicitly
// with WithPredictPath.
func (c *HTTPClient) PredictPathSet() bool {
	return c.predictPathSet
}

func (c *HTTPClient) applyTimeout() {
	if c.timeout <= 0 || c.http.Timeout == c.timeout {
		return
	}
	clone := *c.http
	clone.Timeout = c.timeout
	c.http = &clone
}

// PredictURL reports the absolute prediction endpoint.
func (c *HTTPClient) PredictURL() string {
	return c.baseURL + c.predictPath
}

// InfoURL reports the absolute model metadata endpoint.
func (c *HTTPClient) InfoURL() string {
	return c.baseURL + c.infoPath
}

// Predict POSTs data and decodes the predicted price. Every failure is
// returned as a *TransportError.
func (c *HTTPClient) Predict(ctx context.Context, data model.HouseData) (model.Prediction, error) {
	target := c.PredictURL()

	body, err := json.Marshal(data)
	if err != nil {
		return model.Prediction{}, &TransportError{URL: target, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return model.Prediction{}, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var payload struct {
		PredictedPrice *float64 `json:"predicted_price"`
		Timestamp      string   `json:"timestamp"`
	}
	if err := c.do(req, &payload); err != nil {
		return model.Prediction{}, err
	}
	if payload.PredictedPrice == nil {
		return model.Prediction{}, &TransportError{URL: target, Err: ErrMissingPrice}
	}

	return model.Prediction{
		PredictedPrice: *payload.PredictedPrice,
		Timestamp:      payload.Timestamp,
	}, nil
}

// ModelInfo fetches metadata about the model behind the endpoint.
func (c *HTTPClient) ModelInfo(ctx context.Context) (model.ModelInfo, error) {
	target := c.InfoURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return model.ModelInfo{}, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	var info model.ModelInfo
	if err := c.do(req, &info); err != nil {
		return model.ModelInfo{}, err
	}
	return info, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	target := req.URL.String()

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// failure bodies are not interpreted
		_, _ = io.Copy(io.Discard, resp.Body)
		return &TransportError{URL: target, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{URL: target, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
