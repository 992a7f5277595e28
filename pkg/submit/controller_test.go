package submit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/predict"
	"github.com/goliatone/go-houseprice/pkg/state"
	"github.com/goliatone/go-houseprice/pkg/submit"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []model.HouseData
	price float64
	err   error
}

func (f *fakeClient) Predict(_ context.Context, data model.HouseData) (model.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, data)
	if f.err != nil {
		return model.Prediction{}, f.err
	}
	return model.Prediction{PredictedPrice: f.price}, nil
}

func TestController_ValidationGate(t *testing.T) {
	cases := []model.HouseData{
		{},
		{Size: "1800"},
		{Size: "1800", Bedrooms: "3"},
		{Bedrooms: "3", Age: "8"},
		{Size: "1800", Age: "8"},
		{Age: "8"},
		{Bedrooms: "3"},
	}

	for _, data := range cases {
		client := &fakeClient{price: 1}
		holder := state.New()
		holder.SetPrice(42)
		var notices []string
		ctrl := submit.New(holder, client, submit.WithNotifier(submit.NotifierFunc(func(_ context.Context, msg string) {
			notices = append(notices, msg)
		})))

		out := ctrl.Submit(context.Background(), data)

		if out.Phase != submit.PhaseInvalid {
			t.Fatalf("%+v: expected invalid, got %s", data, out.Phase)
		}
		var verr *submit.ValidationError
		if !errors.As(out.Err, &verr) {
			t.Fatalf("%+v: expected ValidationError, got %v", data, out.Err)
		}
		if diff := cmp.Diff(data.Missing(), verr.Missing); diff != "" {
			t.Fatalf("missing mismatch (-want +got):\n%s", diff)
		}
		if len(client.calls) != 0 {
			t.Fatalf("%+v: expected no network call, got %d", data, len(client.calls))
		}
		if got := holder.Snapshot().Price; got != model.PriceOf(42) {
			t.Fatalf("%+v: price changed to %+v", data, got)
		}
		if diff := cmp.Diff([]string{submit.MissingFieldsNotice}, notices); diff != "" {
			t.Fatalf("notice mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestController_SuccessUpdatesPrice(t *testing.T) {
	client := &fakeClient{price: 254321.5}
	holder := state.New()
	ctrl := submit.New(holder, client)

	data := model.HouseData{Size: "1800", Bedrooms: "3", Age: "8"}
	out := ctrl.Submit(context.Background(), data)

	if out.Phase != submit.PhaseSucceeded || out.Err != nil {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if diff := cmp.Diff([]model.HouseData{data}, client.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if got := holder.Snapshot().Price; got != model.PriceOf(254321.5) {
		t.Fatalf("unexpected price %+v", got)
	}
	if ctrl.Phase() != submit.PhaseIdle {
		t.Fatalf("expected idle after submission, got %s", ctrl.Phase())
	}
}

func TestController_FailureIsLoggedAndIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := &fakeClient{err: &predict.TransportError{URL: "http://svc/api/predict/", Status: 500}}
	holder := state.New()
	holder.SetPrice(100)
	ctrl := submit.New(holder, client, submit.WithLogger(zap.New(core)))

	out := ctrl.Submit(context.Background(), model.HouseData{Size: "1", Bedrooms: "1", Age: "1"})

	if out.Phase != submit.PhaseFailed {
		t.Fatalf("expected failed, got %s", out.Phase)
	}
	var terr *predict.TransportError
	if !errors.As(out.Err, &terr) || terr.Status != 500 {
		t.Fatalf("expected transport error with status 500, got %v", out.Err)
	}
	if got := holder.Snapshot().Price; got != model.PriceOf(100) {
		t.Fatalf("price changed to %+v", got)
	}
	if n := logs.FilterMessage("price prediction failed").Len(); n != 1 {
		t.Fatalf("expected one diagnostic entry, got %d", n)
	}
}

func TestController_FailureKeepsNullPrice(t *testing.T) {
	holder := state.New()
	ctrl := submit.New(holder, &fakeClient{err: errors.New("boom")})
	ctrl.SubmitCurrent(context.Background())
	_ = holder.SetField(model.FieldSize, "1")
	_ = holder.SetField(model.FieldBedrooms, "1")
	_ = holder.SetField(model.FieldAge, "1")

	out := ctrl.SubmitCurrent(context.Background())
	if out.Phase != submit.PhaseFailed {
		t.Fatalf("expected failed, got %s", out.Phase)
	}
	if holder.Snapshot().Price.Valid {
		t.Fatalf("expected null price after failure")
	}
}

func TestController_RepeatedSubmissionIsIdempotent(t *testing.T) {
	client := &fakeClient{price: 300000}
	holder := state.New()
	ctrl := submit.New(holder, client)
	data := model.HouseData{Size: "2000", Bedrooms: "4", Age: "1"}

	ctrl.Submit(context.Background(), data)
	first := holder.Snapshot().Price
	ctrl.Submit(context.Background(), data)
	second := holder.Snapshot().Price

	if first != second || second != model.PriceOf(300000) {
		t.Fatalf("expected stable price, got %+v then %+v", first, second)
	}
}

// blockingClient holds the first call until released so a second submission
// can overtake it.
type blockingClient struct {
	first   chan struct{}
	release chan struct{}
	mu      sync.Mutex
	n       int
}

func (b *blockingClient) Predict(ctx context.Context, data model.HouseData) (model.Prediction, error) {
	b.mu.Lock()
	b.n++
	n := b.n
	b.mu.Unlock()

	if n == 1 {
		close(b.first)
		<-b.release
		return model.Prediction{PredictedPrice: 111}, nil
	}
	return model.Prediction{PredictedPrice: 222}, nil
}

func TestController_StaleResponseIsDiscarded(t *testing.T) {
	client := &blockingClient{first: make(chan struct{}), release: make(chan struct{})}
	holder := state.New()
	ctrl := submit.New(holder, client)
	data := model.HouseData{Size: "1", Bedrooms: "1", Age: "1"}

	done := make(chan submit.Outcome, 1)
	go func() {
		done <- ctrl.Submit(context.Background(), data)
	}()
	<-client.first

	latest := ctrl.Submit(context.Background(), data)
	close(client.release)
	older := <-done

	if latest.Phase != submit.PhaseSucceeded {
		t.Fatalf("expected latest to succeed, got %s", latest.Phase)
	}
	if older.Phase != submit.PhaseStale {
		t.Fatalf("expected older to be stale, got %s", older.Phase)
	}
	if got := holder.Snapshot().Price; got != model.PriceOf(222) {
		t.Fatalf("expected newest price, got %+v", got)
	}
}
