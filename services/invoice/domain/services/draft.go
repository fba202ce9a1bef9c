package services

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ghuser/invoicing/services/invoice/domain"
	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

// Amount bounds. A decimal with an unbounded exponent is cheap to parse but
// expands to its full digit string on every format.
const (
	MaxIntegerDigits  = 18
	MaxFractionDigits = 6

	maxAmountText = 64
)

// Text field limits, counted in characters.
const (
	MaxDescriptionLen    = 500
	MaxStatusLen         = 50
	MaxBillingAddressLen = 1000
	MaxCustomerEmailLen  = 255
	MaxNotesLen          = 2000
)

// inputDateLayout accepts months and days with or without a leading zero.
const inputDateLayout = "2006-1-2"

// DraftItem is one requested line as received. Numeric fields are the raw
// scalar text so that malformed input can be reported in order.
type DraftItem struct {
	Description   string
	Quantity      string
	UnitPrice     string
	GSTPercentage string // empty means 0
}

// DraftInput is an invoice creation request before validation.
type DraftInput struct {
	ClientID       string
	Items          []DraftItem
	InvoiceDate    string
	DueDate        string
	Status         string
	BillingAddress string
	CustomerEmail  *string
	Notes          *string
}

// BuildInvoice validates in and returns an unsaved invoice with totals.
// Checks run in a fixed order and the first failure is returned:
// client id, item presence, dates, then every item's amounts.
// Whether the client exists and the text field limits are checked by the
// caller afterwards, see CheckFieldLengths.
func BuildInvoice(in DraftInput) (*models.Invoice, error) {
	clientID, err := strconv.ParseInt(strings.TrimSpace(in.ClientID), 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidClientID
	}

	if len(in.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	invoiceDate, err := ParseDate(in.InvoiceDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	dueDate, err := ParseDate(in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	items := make([]models.Item, len(in.Items))
	for i, d := range in.Items {
		item, err := buildItem(d)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.DefaultStatus
	}

	return &models.Invoice{
		ClientID:       clientID,
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		Status:         status,
		BillingAddress: in.BillingAddress,
		CustomerEmail:  in.CustomerEmail,
		Notes:          in.Notes,
		Totals:         CalculateTotals(items),
		Items:          items,
	}, nil
}

// CheckFieldLengths rejects free-text fields longer than their column allows.
func CheckFieldLengths(inv *models.Invoice) error {
	if tooLong(inv.Status, MaxStatusLen) ||
		tooLong(inv.BillingAddress, MaxBillingAddressLen) ||
		(inv.CustomerEmail != nil && tooLong(*inv.CustomerEmail, MaxCustomerEmailLen)) ||
		(inv.Notes != nil && tooLong(*inv.Notes, MaxNotesLen)) {
		return domain.ErrFieldTooLong
	}
	for _, it := range inv.Items {
		if tooLong(it.Description, MaxDescriptionLen) {
			return domain.ErrFieldTooLong
		}
	}
	return nil
}

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

func buildItem(d DraftItem) (models.Item, error) {
	qty, err := parseAmount(d.Quantity)
	if err != nil || !qty.IsPositive() {
		return models.Item{}, domain.ErrInvalidAmount
	}
	price, err := parseAmount(d.UnitPrice)
	if err != nil || price.IsNegative() {
		return models.Item{}, domain.ErrInvalidAmount
	}
	gst := decimal.Zero
	if strings.TrimSpace(d.GSTPercentage) != "" {
		gst, err = parseAmount(d.GSTPercentage)
		if err != nil || gst.IsNegative() {
			return models.Item{}, domain.ErrInvalidAmount
		}
	}
	return models.Item{
		Description:   strings.TrimSpace(d.Description),
		Quantity:      qty,
		UnitPrice:     price,
		GSTPercentage: gst,
	}, nil
}

// parseAmount parses s and rejects values with more than MaxIntegerDigits
// integer digits or more than MaxFractionDigits significant fraction digits.
// The exponent is checked before anything expands the coefficient.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxAmountText {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	exp := d.Exponent()
	if exp > MaxIntegerDigits || exp < -(MaxIntegerDigits+MaxFractionDigits) {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	if int(exp)+d.NumDigits() > MaxIntegerDigits {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	if exp < -MaxFractionDigits && !d.Equal(d.Truncate(MaxFractionDigits)) {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	return d, nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC. Month and day may omit
// the leading zero.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(inputDateLayout, strings.TrimSpace(s))
}
