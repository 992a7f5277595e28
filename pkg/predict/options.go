package predict

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the development address of the prediction service.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultPredictPath is the prediction route.
	DefaultPredictPath = "/api/predict/"
	// DefaultInfoPath is the model metadata route.
	DefaultInfoPath = "/api/info/"
)

// Option configures the HTTP client.
type Option func(*HTTPClient)

// WithBaseURL sets the scheme and host of the prediction service.
func WithBaseURL(base string) Option {
	return func(c *HTTPClient) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithPredictPath overrides the prediction route.
func WithPredictPath(path string) Option {
	return func(c *HTTPClient) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			c.predictPath = ensureLeadingSlash(trimmed)
			c.predictPathSet = true
		}
	}
}

// WithInfoPath overrides the model metadata route.
func WithInfoPath(path string) Option {
	return func(c *HTTPClient) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			c.infoPath = ensureLeadingSlash(trimmed)
		}
	}
}

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.http = client
		}
	}
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// WithTimeout bounds each request. The timeout is applied to a copy of the
// final *http.Client once every option has run, so shared clients are left
// untouched regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}
