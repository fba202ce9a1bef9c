package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/ghuser/invoicing/pkg/cache"
	"github.com/ghuser/invoicing/pkg/logger"
	"github.com/ghuser/invoicing/pkg/telemetry"
	invoicedomain "github.com/ghuser/invoicing/services/invoice/domain"
	"github.com/ghuser/invoicing/services/invoice/domain/models"
	"github.com/ghuser/invoicing/services/invoice/domain/repositories"
	domainsvcs "github.com/ghuser/invoicing/services/invoice/domain/services"
)

var tracer = otel.Tracer("github.com/ghuser/invoicing/services/invoice")

const cacheWriteTimeout = 2 * time.Second

// InvoiceCache is the read-model cache used by InvoiceService.
// *cache.InvoiceCache implements it. After MarkDeleted, Get and Set return
// cache.ErrInvoiceDeleted for that id.
type InvoiceCache interface {
	Get(ctx context.Context, id int64) (*pkgcache.CachedInvoice, error)
	Set(ctx context.Context, inv *pkgcache.CachedInvoice) error
	MarkDeleted(ctx context.Context, id int64) error
}

// InvoiceService orchestrates invoice creation, reads, deletion and export.
// Event publishing is handled by the repository layer (outbox pattern).
// Detail reads go through the cache when one is configured.
type InvoiceService struct {
	repo     repositories.InvoiceRepository
	cache    InvoiceCache
	metrics  *telemetry.BillingMetrics
	currency string
	log      logger.Logger
}

// Options carries the optional collaborators of InvoiceService.
type Options struct {
	Cache          InvoiceCache // nil disables caching
	Metrics        *telemetry.BillingMetrics
	CurrencySymbol string
	Logger         logger.Logger
}

// NewInvoiceService returns an InvoiceService. A nil Logger discards.
func NewInvoiceService(repo repositories.InvoiceRepository, opts Options) *InvoiceService {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &InvoiceService{
		repo:     repo,
		cache:    opts.Cache,
		metrics:  opts.Metrics,
		currency: opts.CurrencySymbol,
		log:      log,
	}
}

// Create validates in, computes totals and persists the invoice with its
// items. Validation errors are returned unwrapped.
func (s *InvoiceService) Create(ctx context.Context, in domainsvcs.DraftInput) (*models.Invoice, error) {
	ctx, span := tracer.Start(ctx, "InvoiceService.Create")
	defer span.End()

	inv, err := domainsvcs.BuildInvoice(in)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ClientExists(ctx, inv.ClientID)
	if err != nil {
		recordError(span, err, "check client")
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	if !exists {
		return nil, invoicedomain.ErrClientNotFound
	}

	if err := domainsvcs.CheckFieldLengths(inv); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		if errors.Is(err, invoicedomain.ErrClientNotFound) {
			return nil, err
		}
		recordError(span, err, "save invoice")
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("invoice.id", inv.ID),
		attribute.Int("invoice.items", len(inv.Items)),
	)
	grand, _ := inv.Totals.GrandTotal.Float64()
	s.metrics.InvoiceCreated(ctx, grand)
	s.log.InfoContext(ctx, "invoice created",
		"invoice_id", inv.ID,
		"invoice_number", inv.Number,
		"client_id", inv.ClientID,
	)
	return inv, nil
}

// GetByID returns the full invoice. On a cache hit Postgres is not queried;
// on a miss the result is written back to the cache in the background.
func (s *InvoiceService) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	ctx, span := tracer.Start(ctx, "InvoiceService.GetByID", trace.WithAttributes(attribute.Int64("invoice.id", id)))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return fromCached(cached), nil
		}
		if errors.Is(err, pkgcache.ErrInvoiceDeleted) {
			span.SetAttributes(attribute.Bool("cache.tombstone", true))
			return nil, invoicedomain.ErrInvoiceNotFound
		}
		if !errors.Is(err, pkgcache.ErrCacheMiss) {
			s.log.WarnContext(ctx, "invoice cache read failed", "invoice_id", id, "error", err)
		}
	}

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
			return nil, err
		}
		recordError(span, err, "get invoice")
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	if s.cache != nil {
		go s.store(context.WithoutCancel(ctx), inv)
	}
	return inv, nil
}

// List returns all invoice summaries ordered by id.
func (s *InvoiceService) List(ctx context.Context) ([]*models.Invoice, error) {
	ctx, span := tracer.Start(ctx, "InvoiceService.List")
	defer span.End()

	invoices, err := s.repo.List(ctx)
	if err != nil {
		recordError(span, err, "list invoices")
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// Delete removes the invoice and its items. Deleting a missing invoice
// succeeds. A removed invoice is tombstoned in the cache so that a concurrent
// read-through write cannot restore it.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "InvoiceService.Delete", trace.WithAttributes(attribute.Int64("invoice.id", id)))
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		recordError(span, err, "delete invoice")
		return fmt.Errorf("delete invoice: %w", err)
	}
	if !deleted {
		return nil
	}
	s.metrics.InvoiceDeleted(ctx)
	s.log.InfoContext(ctx, "invoice deleted", "invoice_id", id)
	if err := s.EvictCache(ctx, id); err != nil {
		s.log.WarnContext(ctx, "invoice cache evict failed", "invoice_id", id, "error", err)
	}
	return nil
}

// Export renders the invoice as plain text and returns the attachment name
// and body.
func (s *InvoiceService) Export(ctx context.Context, id int64) (filename, body string, err error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	return domainsvcs.ExportFilename(inv), domainsvcs.RenderText(inv, s.currency), nil
}

// WarmCache loads the invoice from Postgres and stores it in the cache.
// An invoice deleted in the meantime is skipped.
func (s *InvoiceService) WarmCache(ctx context.Context, id int64) error {
	if s.cache == nil {
		return nil
	}
	inv, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}
	if err := s.cache.Set(ctx, toCached(inv)); err != nil && !errors.Is(err, pkgcache.ErrInvoiceDeleted) {
		return fmt.Errorf("warm cache: %w", err)
	}
	return nil
}

// EvictCache tombstones a deleted invoice in the cache. Only call it for an
// id whose row is gone: a tombstone answers not found without reading Postgres.
func (s *InvoiceService) EvictCache(ctx context.Context, id int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.MarkDeleted(ctx, id)
}

func (s *InvoiceService) store(ctx context.Context, inv *models.Invoice) {
	ctx, cancel := context.WithTimeout(ctx, cacheWriteTimeout)
	defer cancel()
	if err := s.cache.Set(ctx, toCached(inv)); err != nil && !errors.Is(err, pkgcache.ErrInvoiceDeleted) {
		s.log.WarnContext(ctx, "invoice cache write failed", "invoice_id", inv.ID, "error", err)
	}
}

func recordError(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}
