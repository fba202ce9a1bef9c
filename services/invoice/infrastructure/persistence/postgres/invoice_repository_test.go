package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/invoicing/pkg/database"
	"github.com/ghuser/invoicing/pkg/logger"
	invoicedomain "github.com/ghuser/invoicing/services/invoice/domain"
	domainevents "github.com/ghuser/invoicing/services/invoice/domain/events"
	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

type recordingPublisher struct {
	topics   []string
	payloads []any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, _ *sql.Tx, topic string, _ uuid.UUID, _ int, payload any) error {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func newMockRepo(t *testing.T, bus Publisher) (*InvoiceRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewInvoiceRepository(database.New(db, logger.Discard()), bus), mock
}

func widgetInvoice() *models.Invoice {
	return &models.Invoice{
		ClientID:    3,
		InvoiceDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Status:      models.DefaultStatus,
		Items: []models.Item{
			{Description: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), GSTPercentage: decimal.NewFromInt(18)},
			{Description: "Gadget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10), GSTPercentage: decimal.Zero},
		},
		Totals: models.Totals{
			Subtotal:   decimal.NewFromInt(210),
			TaxTotal:   decimal.NewFromInt(36),
			GrandTotal: decimal.NewFromInt(246),
		},
	}
}

func TestSave_SingleTransaction(t *testing.T) {
	bus := &recordingPublisher{}
	repo, mock := newMockRepo(t, bus)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM clients WHERE id = \$1\)`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO invoices`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`UPDATE invoices SET invoice_number`).WithArgs("INV-00007", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO invoice_items`).WithArgs(int64(7), "Widget", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(`INSERT INTO invoice_items`).WithArgs(int64(7), "Gadget", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	inv := widgetInvoice()
	if err := repo.Save(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ID != 7 || inv.Number != "INV-00007" {
		t.Fatalf("identity not assigned: id=%d number=%q", inv.ID, inv.Number)
	}
	if inv.Items[0].ID != 11 || inv.Items[1].ID != 12 {
		t.Fatalf("item ids not assigned: %+v", inv.Items)
	}
	if len(bus.topics) != 1 || bus.topics[0] != domainevents.TopicInvoiceCreated {
		t.Fatalf("expected invoice.created, got %v", bus.topics)
	}
	evt := bus.payloads[0].(domainevents.InvoiceCreatedEvent)
	if evt.InvoiceID != 7 || evt.ItemCount != 2 || !evt.GrandTotal.Equal(decimal.NewFromInt(246)) {
		t.Fatalf("unexpected event %+v", evt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_ClientMissing(t *testing.T) {
	bus := &recordingPublisher{}
	repo, mock := newMockRepo(t, bus)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), widgetInvoice())
	if !errors.Is(err, invoicedomain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if len(bus.topics) != 0 {
		t.Fatal("no event may be published for a rejected invoice")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_ForeignKeyRace(t *testing.T) {
	repo, mock := newMockRepo(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO invoices`).
		WillReturnError(&pgconn.PgError{Code: database.CodeForeignKeyViolation})
	mock.ExpectRollback()

	if err := repo.Save(context.Background(), widgetInvoice()); !errors.Is(err, invoicedomain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_ItemFailureRollsBackHeader(t *testing.T) {
	repo, mock := newMockRepo(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO invoices`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
	mock.ExpectExec(`UPDATE invoices SET invoice_number`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO invoice_items`).
		WillReturnError(errors.New("check constraint violated"))
	mock.ExpectRollback()

	inv := widgetInvoice()
	if err := repo.Save(context.Background(), inv); err == nil {
		t.Fatal("expected error")
	}
	if inv.ID != 0 || inv.Number != "" {
		t.Fatal("identity must not be assigned when the transaction rolls back")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

type failingPublisher struct{ err error }

func (p failingPublisher) PublishJSON(context.Context, *sql.Tx, string, uuid.UUID, int, any) error {
	return p.err
}

func TestSave_PublishFailureLeavesInvoiceUnassigned(t *testing.T) {
	boom := errors.New("outbox unavailable")
	repo, mock := newMockRepo(t, failingPublisher{err: boom})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO invoices`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectExec(`UPDATE invoices SET invoice_number`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO invoice_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
	mock.ExpectQuery(`INSERT INTO invoice_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(22)))
	mock.ExpectRollback()

	inv := widgetInvoice()
	if err := repo.Save(context.Background(), inv); !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if inv.ID != 0 || inv.Number != "" || inv.Items[0].ID != 0 || inv.Items[1].ID != 0 {
		t.Fatalf("ids from a rolled back transaction leaked: %+v", inv)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestClientExists(t *testing.T) {
	repo, mock := newMockRepo(t, nil)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM clients WHERE id = \$1\)`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	if ok, err := repo.ClientExists(context.Background(), 3); err != nil || !ok {
		t.Fatalf("client 3: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.ClientExists(context.Background(), 99); err != nil || ok {
		t.Fatalf("client 99: ok=%v err=%v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t, nil)
	invDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	dueDate := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM invoices i\s+JOIN clients c`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "invoice_number", "client_id", "name", "invoice_date", "due_date", "status",
			"billing_address", "customer_email", "notes", "subtotal", "tax_total", "grand_total",
		}).AddRow(int64(7), "INV-00007", int64(3), "Acme", invDate, dueDate, "Draft",
			"", "ap@acme.test", nil, "200.00", "36.00", "236.00"))
	mock.ExpectQuery(`FROM invoice_items`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description", "quantity", "unit_price", "gst_percentage"}).
			AddRow(int64(11), "Widget", "2.00", "100.00", "18.00"))

	inv, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Number != "INV-00007" || inv.ClientName != "Acme" {
		t.Fatalf("unexpected header %+v", inv)
	}
	if inv.CustomerEmail == nil || *inv.CustomerEmail != "ap@acme.test" || inv.Notes != nil {
		t.Fatalf("nullable columns not mapped: %+v", inv)
	}
	if !inv.Totals.GrandTotal.Equal(decimal.NewFromInt(236)) {
		t.Fatalf("grand total: got %s", inv.Totals.GrandTotal)
	}
	if len(inv.Items) != 1 || inv.Items[0].UnitPrice.String() != "100" {
		t.Fatalf("unexpected items %+v", inv.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t, nil)

	mock.ExpectQuery(`FROM invoices i`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), 99); !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestList_OrderedSummaries(t *testing.T) {
	repo, mock := newMockRepo(t, nil)
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY i.id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "invoice_number", "client_id", "name", "invoice_date", "due_date", "status",
			"subtotal", "tax_total", "grand_total",
		}).
			AddRow(int64(1), "INV-00001", int64(3), "Acme", d, d, "Draft", "10", "1.8", "11.8").
			AddRow(int64(2), "INV-00002", int64(4), "Zeta", d, d, "Paid", "5", "0", "5"))

	invoices, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices) != 2 || invoices[0].ID != 1 || invoices[1].ClientName != "Zeta" {
		t.Fatalf("unexpected list %+v", invoices)
	}
	if invoices[0].Items != nil {
		t.Fatal("list results carry no items")
	}
}

func TestDelete_RemovesItemsThenHeader(t *testing.T) {
	bus := &recordingPublisher{}
	repo, mock := newMockRepo(t, bus)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM invoice_items WHERE invoice_id = \$1`).WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM invoices WHERE id = \$1`).WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted=true")
	}
	if len(bus.topics) != 1 || bus.topics[0] != domainevents.TopicInvoiceDeleted {
		t.Fatalf("expected invoice.deleted, got %v", bus.topics)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDelete_MissingIsIdempotent(t *testing.T) {
	bus := &recordingPublisher{}
	repo, mock := newMockRepo(t, bus)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM invoice_items`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM invoices`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatal("expected deleted=false")
	}
	if len(bus.topics) != 0 {
		t.Fatal("no event for a no-op delete")
	}
}
