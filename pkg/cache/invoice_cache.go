package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// InvoiceCacheTTL bounds how long a cached invoice may be served. Invoices
// are immutable after creation, so the TTL only limits memory.
const InvoiceCacheTTL = 6 * time.Hour

// InvoiceTombstoneTTL is how long a deleted invoice keeps refusing cache
// writes. It outlives any read that started before the delete committed.
const InvoiceTombstoneTTL = 10 * time.Minute

const (
	invoiceCacheKeyPrefix = "invoice"
	tombstoneSuffix       = "deleted"
)

var (
	// ErrCacheMiss is returned by InvoiceCache.Get when the key is absent.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvoiceDeleted is returned by Get and Set while a tombstone written
	// by MarkDeleted is live.
	ErrInvoiceDeleted = errors.New("invoice deleted")
)

// setUnlessDeleted stores ARGV[1] under KEYS[1] with a PX of ARGV[2] unless
// the tombstone KEYS[2] exists. Returns 1 when stored.
var setUnlessDeleted = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// CachedInvoiceItem is one line of a CachedInvoice.
type CachedInvoiceItem struct {
	ID            int64           `json:"id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
}

// CachedInvoice is the denormalized read model of an invoice detail,
// client name included. It is stored as a JSON string.
type CachedInvoice struct {
	ID             int64               `json:"id"`
	InvoiceNumber  string              `json:"invoice_number"`
	ClientID       int64               `json:"client_id"`
	ClientName     string              `json:"client_name"`
	InvoiceDate    time.Time           `json:"invoice_date"`
	DueDate        time.Time           `json:"due_date"`
	Status         string              `json:"status"`
	BillingAddress string              `json:"billing_address"`
	CustomerEmail  *string             `json:"customer_email"`
	Notes          *string             `json:"notes"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	TaxTotal       decimal.Decimal     `json:"tax_total"`
	GrandTotal     decimal.Decimal     `json:"grand_total"`
	Items          []CachedInvoiceItem `json:"items"`
}

// InvoiceCache reads and writes invoice detail entries.
// Key format: "<namespace>:invoice:{id}", tombstone "<namespace>:invoice:{id}:deleted".
type InvoiceCache struct {
	client       *RedisClient
	ttl          time.Duration
	tombstoneTTL time.Duration
}

// NewInvoiceCache creates a new InvoiceCache backed by the given RedisClient.
func NewInvoiceCache(r *RedisClient) *InvoiceCache {
	return &InvoiceCache{client: r, ttl: InvoiceCacheTTL, tombstoneTTL: InvoiceTombstoneTTL}
}

// Get returns the cached invoice, ErrInvoiceDeleted for a tombstoned id, or
// ErrCacheMiss.
func (c *InvoiceCache) Get(ctx context.Context, id int64) (*CachedInvoice, error) {
	vals, err := c.client.Client().MGet(ctx, c.key(id), c.tombstoneKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if vals[1] != nil {
		return nil, ErrInvoiceDeleted
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, ErrCacheMiss
	}

	var inv CachedInvoice
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return nil, fmt.Errorf("cache decode invoice %d: %w", id, err)
	}
	return &inv, nil
}

// Set stores inv with the cache TTL. A tombstoned id is not written and
// ErrInvoiceDeleted is returned; the check and the write are one script.
func (c *InvoiceCache) Set(ctx context.Context, inv *CachedInvoice) error {
	raw, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("cache encode invoice %d: %w", inv.ID, err)
	}
	stored, err := setUnlessDeleted.Run(ctx, c.client.Client(),
		[]string{c.key(inv.ID), c.tombstoneKey(inv.ID)},
		raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	if stored == 0 {
		return ErrInvoiceDeleted
	}
	return nil
}

// MarkDeleted writes the tombstone for id and removes any cached entry in one
// MULTI/EXEC, so a write racing the delete cannot bring the invoice back.
func (c *InvoiceCache) MarkDeleted(ctx context.Context, id int64) error {
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.tombstoneKey(id), "1", c.tombstoneTTL)
		pipe.Del(ctx, c.key(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache mark deleted: %w", err)
	}
	return nil
}

func (c *InvoiceCache) key(id int64) string {
	return c.client.Key(invoiceCacheKeyPrefix, strconv.FormatInt(id, 10))
}

func (c *InvoiceCache) tombstoneKey(id int64) string {
	return c.client.Key(invoiceCacheKeyPrefix, strconv.FormatInt(id, 10), tombstoneSuffix)
}
