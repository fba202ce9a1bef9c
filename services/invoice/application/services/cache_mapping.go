package services

import (
	pkgcache "github.com/ghuser/invoicing/pkg/cache"
	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

func toCached(inv *models.Invoice) *pkgcache.CachedInvoice {
	items := make([]pkgcache.CachedInvoiceItem, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = pkgcache.CachedInvoiceItem{
			ID:            it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			GSTPercentage: it.GSTPercentage,
		}
	}
	return &pkgcache.CachedInvoice{
		ID:             inv.ID,
		InvoiceNumber:  inv.Number,
		ClientID:       inv.ClientID,
		ClientName:     inv.ClientName,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		Status:         inv.Status,
		BillingAddress: inv.BillingAddress,
		CustomerEmail:  inv.CustomerEmail,
		Notes:          inv.Notes,
		Subtotal:       inv.Totals.Subtotal,
		TaxTotal:       inv.Totals.TaxTotal,
		GrandTotal:     inv.Totals.GrandTotal,
		Items:          items,
	}
}

func fromCached(c *pkgcache.CachedInvoice) *models.Invoice {
	items := make([]models.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = models.Item{
			ID:            it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			GSTPercentage: it.GSTPercentage,
		}
	}
	return &models.Invoice{
		ID:             c.ID,
		Number:         c.InvoiceNumber,
		ClientID:       c.ClientID,
		ClientName:     c.ClientName,
		InvoiceDate:    c.InvoiceDate,
		DueDate:        c.DueDate,
		Status:         c.Status,
		BillingAddress: c.BillingAddress,
		CustomerEmail:  c.CustomerEmail,
		Notes:          c.Notes,
		Totals: models.Totals{
			Subtotal:   c.Subtotal,
			TaxTotal:   c.TaxTotal,
			GrandTotal: c.GrandTotal,
		},
		Items: items,
	}
}
