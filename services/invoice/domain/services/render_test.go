package services

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

func TestRenderText_WidgetInvoice(t *testing.T) {
	items := []models.Item{{
		Description:   "Widget",
		Quantity:      decimal.RequireFromString("2.00"),
		UnitPrice:     decimal.RequireFromString("100.00"),
		GSTPercentage: decimal.RequireFromString("18.00"),
	}}
	inv := &models.Invoice{
		Number:      "INV-00007",
		ClientName:  "Acme",
		InvoiceDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Items:       items,
		Totals:      CalculateTotals(items),
	}

	want := "Invoice Number: INV-00007\n" +
		"Client: Acme\n" +
		"Invoice Date: 2026-01-15\n" +
		"Due Date: 2026-02-14\n" +
		"\n" +
		"Items:\n" +
		"- Widget x 2 @ ₹100 + 18% GST\n" +
		"\n" +
		"Subtotal: ₹200\n" +
		"Tax: ₹36\n" +
		"Grand Total: ₹236\n"

	if got := RenderText(inv, "₹"); got != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderText_TrimsTrailingZerosAndUsesCurrency(t *testing.T) {
	inv := &models.Invoice{
		Number: "INV-00001",
		Items: []models.Item{{
			Description:   "Hours",
			Quantity:      decimal.RequireFromString("2.50"),
			UnitPrice:     decimal.RequireFromString("40.10"),
			GSTPercentage: decimal.RequireFromString("0"),
		}},
		Totals: models.Totals{
			Subtotal:   decimal.RequireFromString("100.25"),
			TaxTotal:   decimal.RequireFromString("0.00"),
			GrandTotal: decimal.RequireFromString("100.25"),
		},
	}

	got := RenderText(inv, "$")
	if !strings.Contains(got, "- Hours x 2.5 @ $40.1 + 0% GST\n") {
		t.Errorf("item line not canonical:\n%s", got)
	}
	if !strings.Contains(got, "Tax: $0\n") {
		t.Errorf("zero tax not canonical:\n%s", got)
	}
	if !strings.HasSuffix(got, "Grand Total: $100.25\n") {
		t.Errorf("last line wrong:\n%s", got)
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename(&models.Invoice{Number: "INV-00042"}); got != "INV-00042.txt" {
		t.Fatalf("got %q", got)
	}
}
