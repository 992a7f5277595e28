// Package testsupport holds shared helpers for houseprice tests: a scripted
// prediction service and diff helpers.
package testsupport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/predict"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Predictor is an in-process prediction service. It answers POSTs on
// predict.DefaultPredictPath with Price, or with Status when Status is set.
type Predictor struct {
	*httptest.Server

	mux      *http.ServeMux
	mu       sync.Mutex
	price    float64
	status   int
	requests []model.HouseData
	paths    []string
}

// NewPredictor starts a Predictor returning price. The server is closed when
// the test ends.
func NewPredictor(t *testing.T, price float64) *Predictor {
	t.Helper()

	p := &Predictor{price: price, mux: http.NewServeMux()}
	p.mux.HandleFunc(predict.DefaultPredictPath, p.handlePredict)
	p.mux.HandleFunc(predict.DefaultInfoPath, p.handleInfo)
	p.Server = httptest.NewServer(p.mux)
	t.Cleanup(p.Server.Close)
	return p
}

// SetPrice changes the price returned by later requests and clears any
// failure status.
func (p *Predictor) SetPrice(price float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.price = price
	p.status = 0
}

// Fail makes later requests answer with status.
func (p *Predictor) Fail(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

// Requests returns the decoded request bodies received so far.
func (p *Predictor) Requests() []model.HouseData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.HouseData(nil), p.requests...)
}

// Route also answers predictions on path.
func (p *Predictor) Route(path string) {
	p.mux.HandleFunc(path, p.handlePredict)
}

// Paths returns the URL path of every prediction request received so far.
func (p *Predictor) Paths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

// Client returns a prediction client aimed at the server.
func (p *Predictor) Client() *predict.HTTPClient {
	return predict.New(predict.WithBaseURL(p.URL), predict.WithHTTPClient(p.Server.Client()))
}

func (p *Predictor) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var data model.HouseData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, `{"error":"Invalid input"}`, http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	p.requests = append(p.requests, data)
	p.paths = append(p.paths, r.URL.Path)
	price, status := p.price, p.status
	p.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"predicted_price": price,
		"timestamp":       "2024-01-01T00:00:00Z",
	})
}

func (p *Predictor) handleInfo(w http.ResponseWriter, _ *http.Request) {
	metadata := map[string]any{
		"trained_at":       "2024-01-01",
		"training_samples": 1000,
		"market_trend":     0.05,
		"data_source":      "synthetic",
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":       "success",
		"metadata":     metadata,
		"current_time": "2024-01-02T00:00:00Z",
	})
}
