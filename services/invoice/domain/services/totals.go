// Package services contains stateless domain services for the invoice bounded
// context: totals, numbering, draft validation and the text rendering.
// They have no dependencies beyond the domain layer and decimal arithmetic.
package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

// CalculateTotals sums line and GST amounts over items using exact decimal
// arithmetic. An empty slice yields zero totals.
func CalculateTotals(items []models.Item) models.Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineAmount())
		tax = tax.Add(it.GSTAmount())
	}
	return models.Totals{
		Subtotal:   subtotal,
		TaxTotal:   tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// InvoiceNumber derives the human-readable number from the store id:
// 7 → "INV-00007". Ids above 99999 print unpadded.
func InvoiceNumber(id int64) string {
	return fmt.Sprintf("INV-%05d", id)
}
