package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ghuser/invoicing/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "invoicing-test",
		ServiceVersion: "test",
		Environment:    "testing",
		OtelEndpoint:   "", // disabled
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MetricsHandler == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if p.Billing == nil {
		t.Fatal("expected billing metrics")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_MetricsHandlerServesBillingCounters(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer p.Shutdown(context.Background()) //nolint:errcheck

	p.Billing.InvoiceCreated(context.Background(), 236)

	rr := httptest.NewRecorder()
	p.MetricsHandler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	ct := rr.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
	for _, name := range []string{"invoices_created_total", "invoice_grand_total", "go_goroutines"} {
		if !strings.Contains(rr.Body.String(), name) {
			t.Errorf("scrape is missing %s", name)
		}
	}
}

func TestSetup_EachCallHasItsOwnRegistry(t *testing.T) {
	for i := 0; i < 2; i++ {
		p, err := Setup(context.Background(), baseConfig())
		if err != nil {
			t.Fatalf("setup %d: %v", i, err)
		}
		_ = p.Shutdown(context.Background())
	}
}

func TestTraceSampleRatio(t *testing.T) {
	if got := TraceSampleRatio(baseConfig()); got != 1 {
		t.Errorf("testing: got %v, want 1", got)
	}
	prod := baseConfig()
	prod.Environment = config.EnvProduction
	if got := TraceSampleRatio(prod); got != productionSampleRatio {
		t.Errorf("production: got %v, want %v", got, productionSampleRatio)
	}
}

func TestBillingMetrics_RecordedOnReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewBillingMetricsFromMeter(mp.Meter("test"))
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	ctx := context.Background()
	m.ClientCreated(ctx)
	m.InvoiceCreated(ctx, 236)
	m.InvoiceCreated(ctx, 118)
	m.InvoiceDeleted(ctx)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	sums := map[string]int64{}
	var histCount uint64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[md.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					histCount += dp.Count
				}
			}
		}
	}

	want := map[string]int64{
		"clients_created_total":  1,
		"invoices_created_total": 2,
		"invoices_deleted_total": 1,
	}
	for name, v := range want {
		if sums[name] != v {
			t.Errorf("%s: got %d, want %d", name, sums[name], v)
		}
	}
	if histCount != 2 {
		t.Errorf("invoice_grand_total count: got %d, want 2", histCount)
	}
}

func TestBillingMetrics_NilIsNoop(t *testing.T) {
	var m *BillingMetrics
	m.ClientCreated(context.Background())
	m.InvoiceCreated(context.Background(), 1)
	m.InvoiceDeleted(context.Background())
}
