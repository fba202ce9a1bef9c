package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/invoicing"

// BillingMetrics holds the business counters exported on /metrics. Setup
// builds the process-wide instance.
// A nil *BillingMetrics is valid and records nothing.
type BillingMetrics struct {
	clientsCreated  metric.Int64Counter
	invoicesCreated metric.Int64Counter
	invoicesDeleted metric.Int64Counter
	grandTotal      metric.Float64Histogram
}

// NewBillingMetricsFromMeter registers the billing instruments on meter.
func NewBillingMetricsFromMeter(meter metric.Meter) (*BillingMetrics, error) {
	clients, err := meter.Int64Counter("clients_created_total",
		metric.WithDescription("Clients created"))
	if err != nil {
		return nil, fmt.Errorf("clients_created_total: %w", err)
	}
	created, err := meter.Int64Counter("invoices_created_total",
		metric.WithDescription("Invoices created"))
	if err != nil {
		return nil, fmt.Errorf("invoices_created_total: %w", err)
	}
	deleted, err := meter.Int64Counter("invoices_deleted_total",
		metric.WithDescription("Invoice delete requests that removed a row"))
	if err != nil {
		return nil, fmt.Errorf("invoices_deleted_total: %w", err)
	}
	total, err := meter.Float64Histogram("invoice_grand_total",
		metric.WithDescription("Grand total of created invoices"),
		metric.WithExplicitBucketBoundaries(100, 500, 1000, 5000, 10000, 50000, 100000, 500000))
	if err != nil {
		return nil, fmt.Errorf("invoice_grand_total: %w", err)
	}
	return &BillingMetrics{
		clientsCreated:  clients,
		invoicesCreated: created,
		invoicesDeleted: deleted,
		grandTotal:      total,
	}, nil
}

// ClientCreated counts one new client.
func (m *BillingMetrics) ClientCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.clientsCreated.Add(ctx, 1)
}

// InvoiceCreated counts one new invoice and records its grand total.
func (m *BillingMetrics) InvoiceCreated(ctx context.Context, grandTotal float64) {
	if m == nil {
		return
	}
	m.invoicesCreated.Add(ctx, 1)
	m.grandTotal.Record(ctx, grandTotal)
}

// InvoiceDeleted counts one removed invoice.
func (m *BillingMetrics) InvoiceDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.invoicesDeleted.Add(ctx, 1)
}
