package services

import (
	"fmt"
	"strings"

	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

// RenderText formats inv as the plain-text export. Every line ends in "\n",
// amounts are prefixed with currency and print without trailing zeros.
func RenderText(inv *models.Invoice, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invoice Number: %s\n", inv.Number)
	fmt.Fprintf(&b, "Client: %s\n", inv.ClientName)
	fmt.Fprintf(&b, "Invoice Date: %s\n", inv.InvoiceDate.Format(models.DateLayout))
	fmt.Fprintf(&b, "Due Date: %s\n", inv.DueDate.Format(models.DateLayout))
	b.WriteString("\nItems:\n")
	for _, it := range inv.Items {
		fmt.Fprintf(&b, "- %s x %s @ %s%s + %s%% GST\n",
			it.Description, it.Quantity.String(), currency, it.UnitPrice.String(), it.GSTPercentage.String())
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s%s\n", currency, inv.Totals.Subtotal.String())
	fmt.Fprintf(&b, "Tax: %s%s\n", currency, inv.Totals.TaxTotal.String())
	fmt.Fprintf(&b, "Grand Total: %s%s\n", currency, inv.Totals.GrandTotal.String())

	return b.String()
}

// ExportFilename is the attachment name of the text export.
func ExportFilename(inv *models.Invoice) string {
	return inv.Number + ".txt"
}
