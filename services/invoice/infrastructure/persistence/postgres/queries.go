package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const clientExists = `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`

const insertInvoice = `INSERT INTO invoices (
    client_id, invoice_date, due_date, status, billing_address,
    customer_email, notes, subtotal, tax_total, grand_total
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

const setInvoiceNumber = `UPDATE invoices SET invoice_number = $1 WHERE id = $2`

const insertInvoiceItem = `INSERT INTO invoice_items (
    invoice_id, description, quantity, unit_price, gst_percentage
) VALUES ($1, $2, $3, $4, $5)
RETURNING id`

const getInvoice = `SELECT i.id, COALESCE(i.invoice_number, ''), i.client_id, c.name,
    i.invoice_date, i.due_date, i.status, i.billing_address,
    i.customer_email, i.notes, i.subtotal, i.tax_total, i.grand_total
FROM invoices i
JOIN clients c ON c.id = i.client_id
WHERE i.id = $1`

const listInvoiceItems = `SELECT id, description, quantity, unit_price, gst_percentage
FROM invoice_items
WHERE invoice_id = $1
ORDER BY id`

const listInvoices = `SELECT i.id, COALESCE(i.invoice_number, ''), i.client_id, c.name,
    i.invoice_date, i.due_date, i.status, i.subtotal, i.tax_total, i.grand_total
FROM invoices i
JOIN clients c ON c.id = i.client_id
ORDER BY i.id`

const deleteInvoiceItems = `DELETE FROM invoice_items WHERE invoice_id = $1`

const deleteInvoice = `DELETE FROM invoices WHERE id = $1`

type invoiceRow struct {
	ID             int64
	Number         string
	ClientID       int64
	ClientName     string
	InvoiceDate    time.Time
	DueDate        time.Time
	Status         string
	BillingAddress string
	CustomerEmail  sql.NullString
	Notes          sql.NullString
	Subtotal       decimal.Decimal
	TaxTotal       decimal.Decimal
	GrandTotal     decimal.Decimal
}

type itemRow struct {
	ID            int64
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	GSTPercentage decimal.Decimal
}

func queryInvoice(ctx context.Context, db DBTX, id int64) (invoiceRow, error) {
	var r invoiceRow
	err := db.QueryRowContext(ctx, getInvoice, id).Scan(
		&r.ID, &r.Number, &r.ClientID, &r.ClientName,
		&r.InvoiceDate, &r.DueDate, &r.Status, &r.BillingAddress,
		&r.CustomerEmail, &r.Notes, &r.Subtotal, &r.TaxTotal, &r.GrandTotal,
	)
	return r, err
}

func queryItems(ctx context.Context, db DBTX, invoiceID int64) ([]itemRow, error) {
	rows, err := db.QueryContext(ctx, listInvoiceItems, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []itemRow
	for rows.Next() {
		var r itemRow
		if err := rows.Scan(&r.ID, &r.Description, &r.Quantity, &r.UnitPrice, &r.GSTPercentage); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func queryInvoices(ctx context.Context, db DBTX) ([]invoiceRow, error) {
	rows, err := db.QueryContext(ctx, listInvoices)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []invoiceRow
	for rows.Next() {
		var r invoiceRow
		if err := rows.Scan(
			&r.ID, &r.Number, &r.ClientID, &r.ClientName,
			&r.InvoiceDate, &r.DueDate, &r.Status,
			&r.Subtotal, &r.TaxTotal, &r.GrandTotal,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
