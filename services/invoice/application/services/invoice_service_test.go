package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/invoicing/pkg/cache"
	invoicedomain "github.com/ghuser/invoicing/services/invoice/domain"
	"github.com/ghuser/invoicing/services/invoice/domain/models"
	domainsvcs "github.com/ghuser/invoicing/services/invoice/domain/services"
)

type memoryRepo struct {
	mu       sync.Mutex
	clients  map[int64]string
	invoices map[int64]*models.Invoice
	nextID   int64
	nextItem int64
	gets     int
	err      error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{clients: map[int64]string{3: "Acme"}, invoices: map[int64]*models.Invoice{}}
}

func (m *memoryRepo) ClientExists(_ context.Context, clientID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.clients[clientID]
	return ok, nil
}

func (m *memoryRepo) Save(_ context.Context, inv *models.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	name, ok := m.clients[inv.ClientID]
	if !ok {
		return invoicedomain.ErrClientNotFound
	}
	m.nextID++
	inv.ID = m.nextID
	inv.Number = domainsvcs.InvoiceNumber(inv.ID)
	for i := range inv.Items {
		m.nextItem++
		inv.Items[i].ID = m.nextItem
	}
	stored := *inv
	stored.ClientName = name
	m.invoices[inv.ID] = &stored
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*models.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	inv, ok := m.invoices[id]
	if !ok {
		return nil, invoicedomain.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memoryRepo) List(_ context.Context) ([]*models.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.Invoice, 0, len(m.invoices))
	for id := int64(1); id <= m.nextID; id++ {
		if inv, ok := m.invoices[id]; ok {
			cp := *inv
			cp.Items = nil
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.invoices[id]
	delete(m.invoices, id)
	return ok, nil
}

// memoryCache mirrors the Redis cache: a tombstone refuses Set and turns Get
// into ErrInvoiceDeleted. When gate is non-nil, Set waits on it before
// writing. Every Set attempt is reported on sets.
type memoryCache struct {
	mu       sync.Mutex
	entries  map[int64]*pkgcache.CachedInvoice
	deleted  map[int64]bool
	sets     chan int64
	gate     chan struct{}
	entering chan int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries:  map[int64]*pkgcache.CachedInvoice{},
		deleted:  map[int64]bool{},
		sets:     make(chan int64, 10),
		entering: make(chan int64, 10),
	}
}

func (c *memoryCache) Get(_ context.Context, id int64) (*pkgcache.CachedInvoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleted[id] {
		return nil, pkgcache.ErrInvoiceDeleted
	}
	inv, ok := c.entries[id]
	if !ok {
		return nil, pkgcache.ErrCacheMiss
	}
	return inv, nil
}

func (c *memoryCache) Set(_ context.Context, inv *pkgcache.CachedInvoice) error {
	c.entering <- inv.ID
	if c.gate != nil {
		<-c.gate
	}
	defer func() { c.sets <- inv.ID }()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleted[inv.ID] {
		return pkgcache.ErrInvoiceDeleted
	}
	c.entries[inv.ID] = inv
	return nil
}

func (c *memoryCache) MarkDeleted(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted[id] = true
	delete(c.entries, id)
	return nil
}

func waitFor(t *testing.T, ch <-chan int64, want int64, what string) {
	t.Helper()
	select {
	case id := <-ch:
		if id != want {
			t.Fatalf("%s: got invoice %d, want %d", what, id, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("%s: timed out", what)
	}
}

func widgetDraft() domainsvcs.DraftInput {
	return domainsvcs.DraftInput{
		ClientID:    "3",
		Items:       []domainsvcs.DraftItem{{Description: "Widget", Quantity: "2", UnitPrice: "100", GSTPercentage: "18"}},
		InvoiceDate: "2026-01-15",
		DueDate:     "2026-02-14",
	}
}

func TestInvoiceService_CreateThenGet(t *testing.T) {
	svc := NewInvoiceService(newMemoryRepo(), Options{CurrencySymbol: "₹"})
	ctx := context.Background()

	created, err := svc.Create(ctx, widgetDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Number != "INV-00001" {
		t.Fatalf("unexpected number %q", created.Number)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Description != "Widget" {
		t.Fatalf("items not preserved: %+v", got.Items)
	}
	if !got.Totals.Subtotal.Equal(decimal.NewFromInt(200)) ||
		!got.Totals.TaxTotal.Equal(decimal.NewFromInt(36)) ||
		!got.Totals.GrandTotal.Equal(decimal.NewFromInt(236)) {
		t.Fatalf("totals not preserved: %+v", got.Totals)
	}
	if got.ClientName != "Acme" {
		t.Fatalf("client name: got %q", got.ClientName)
	}
}

func TestInvoiceService_Create_Errors(t *testing.T) {
	svc := NewInvoiceService(newMemoryRepo(), Options{})

	in := widgetDraft()
	in.ClientID = "99"
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, invoicedomain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	in = widgetDraft()
	in.Items = nil
	if _, err := svc.Create(context.Background(), in); err != invoicedomain.ErrNoItems { //nolint:errorlint
		t.Fatalf("validation errors must be returned unwrapped, got %v", err)
	}
}

func TestInvoiceService_DeleteIsIdempotent(t *testing.T) {
	svc := NewInvoiceService(newMemoryRepo(), Options{})
	ctx := context.Background()

	inv, err := svc.Create(ctx, widgetDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, inv.ID); !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("second delete must succeed, got %v", err)
	}
}

func TestInvoiceService_Export(t *testing.T) {
	svc := NewInvoiceService(newMemoryRepo(), Options{CurrencySymbol: "₹"})
	ctx := context.Background()

	inv, err := svc.Create(ctx, widgetDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	name, body, err := svc.Export(ctx, inv.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "INV-00001.txt" {
		t.Errorf("filename: got %q", name)
	}
	want := "Invoice Number: INV-00001\nClient: Acme\nInvoice Date: 2026-01-15\nDue Date: 2026-02-14\n\n" +
		"Items:\n- Widget x 2 @ ₹100 + 18% GST\n\nSubtotal: ₹200\nTax: ₹36\nGrand Total: ₹236\n"
	if body != want {
		t.Errorf("body:\n%s\nwant:\n%s", body, want)
	}

	if _, _, err := svc.Export(ctx, 42); !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceService_ReadThroughCache(t *testing.T) {
	repo := newMemoryRepo()
	c := newMemoryCache()
	svc := NewInvoiceService(repo, Options{Cache: c})
	ctx := context.Background()

	inv, err := svc.Create(ctx, widgetDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByID(ctx, inv.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	select {
	case id := <-c.sets:
		if id != inv.ID {
			t.Fatalf("cached wrong invoice %d", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cache was not written after miss")
	}

	got, err := svc.GetByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if repo.gets != 1 {
		t.Fatalf("expected one repository read, got %d", repo.gets)
	}
	if !got.Totals.GrandTotal.Equal(decimal.NewFromInt(236)) || got.Items[0].Description != "Widget" {
		t.Fatalf("cached invoice differs: %+v", got)
	}

	if err := svc.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, inv.ID); !errors.Is(err, pkgcache.ErrInvoiceDeleted) {
		t.Fatal("delete must tombstone the cached invoice")
	}
}

func TestInvoiceService_ReadThroughWriteAfterDelete(t *testing.T) {
	repo := newMemoryRepo()
	c := newMemoryCache()
	c.gate = make(chan struct{})
	svc := NewInvoiceService(repo, Options{Cache: c, CurrencySymbol: "₹"})
	ctx := context.Background()

	inv, err := svc.Create(ctx, widgetDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The miss schedules a cache write that is held until after the delete.
	if _, err := svc.GetByID(ctx, inv.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	waitFor(t, c.entering, inv.ID, "cache write started")

	if err := svc.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	close(c.gate)
	waitFor(t, c.sets, inv.ID, "cache write finished")

	if _, err := svc.GetByID(ctx, inv.ID); !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		t.Fatalf("get after delete: expected ErrInvoiceNotFound, got %v", err)
	}
	if _, _, err := svc.Export(ctx, inv.ID); !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		t.Fatalf("export after delete: expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceService_WarmCacheRacingDelete(t *testing.T) {
	repo := newMemoryRepo()
	c := newMemoryCache()
	c.gate = make(chan struct{})
	svc := NewInvoiceService(repo, Options{Cache: c})
	ctx := context.Background()

	inv, err := svc.Create(ctx, widgetDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	warmed := make(chan error, 1)
	go func() { warmed <- svc.WarmCache(ctx, inv.ID) }()
	waitFor(t, c.entering, inv.ID, "warm started")

	if err := svc.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	close(c.gate)
	if err := <-warmed; err != nil {
		t.Fatalf("a warm refused by a tombstone is not an error, got %v", err)
	}

	if _, err := svc.GetByID(ctx, inv.ID); !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceService_DeleteMissingLeavesCacheAlone(t *testing.T) {
	c := newMemoryCache()
	svc := NewInvoiceService(newMemoryRepo(), Options{Cache: c})

	if err := svc.Delete(context.Background(), 77); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.deleted[77] {
		t.Fatal("an id that never existed must not be tombstoned")
	}
}

func TestInvoiceService_CreateChecksClientBeforeFieldLengths(t *testing.T) {
	svc := NewInvoiceService(newMemoryRepo(), Options{})

	in := widgetDraft()
	in.ClientID = "99"
	in.Items[0].Description = strings.Repeat("x", domainsvcs.MaxDescriptionLen+1)
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, invoicedomain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	in.ClientID = "3"
	if _, err := svc.Create(context.Background(), in); err != invoicedomain.ErrFieldTooLong { //nolint:errorlint
		t.Fatalf("expected unwrapped ErrFieldTooLong, got %v", err)
	}
}

func TestInvoiceService_WarmCache(t *testing.T) {
	repo := newMemoryRepo()
	c := newMemoryCache()
	svc := NewInvoiceService(repo, Options{Cache: c})
	ctx := context.Background()

	inv, err := svc.Create(ctx, widgetDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.WarmCache(ctx, inv.ID); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if _, err := c.Get(ctx, inv.ID); err != nil {
		t.Fatalf("expected cached invoice, got %v", err)
	}
	if err := svc.WarmCache(ctx, 999); err != nil {
		t.Fatalf("warming a deleted invoice must be a no-op, got %v", err)
	}
}

func TestInvoiceService_StoreErrorsWrapped(t *testing.T) {
	boom := errors.New("db down")
	repo := newMemoryRepo()
	repo.err = boom
	svc := NewInvoiceService(repo, Options{})

	if _, err := svc.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("list: expected wrapped error, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("delete: expected wrapped error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), widgetDraft()); !errors.Is(err, boom) {
		t.Fatalf("create: expected wrapped error, got %v", err)
	}
}
