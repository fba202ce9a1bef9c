package postgres

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const listClients = `SELECT id, name, address, email FROM clients ORDER BY name`

const clientNameExists = `SELECT EXISTS(SELECT 1 FROM clients WHERE LOWER(name) = LOWER($1))`

const insertClient = `INSERT INTO clients (name) VALUES ($1) RETURNING id`

type clientRow struct {
	ID      int64
	Name    string
	Address sql.NullString
	Email   sql.NullString
}

func queryClients(ctx context.Context, db DBTX) ([]clientRow, error) {
	rows, err := db.QueryContext(ctx, listClients)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []clientRow
	for rows.Next() {
		var r clientRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.Email); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nameExists(ctx context.Context, db DBTX, name string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, clientNameExists, name).Scan(&exists)
	return exists, err
}

func insertClientRow(ctx context.Context, db DBTX, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, insertClient, name).Scan(&id)
	return id, err
}
