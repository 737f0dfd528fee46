package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/kadalikavya/tinylink-backend/models"
	"github.com/kadalikavya/tinylink-backend/service"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// Database holds the connection pool to PostgreSQL. It is constructed once at
// startup and injected into the service layer.
type Database struct {
	conn *sql.DB
}

// InitDB connects to PostgreSQL using the given connection string, verifies
// the connection, and creates the schema if it does not exist yet.
func InitDB(databaseURL string) (*Database, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := createSchema(conn); err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &Database{conn: conn}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	return db.conn.Close()
}

// createSchema creates the links table if it doesn't exist.
func createSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		code VARCHAR(12) PRIMARY KEY,
		url TEXT NOT NULL,
		clicks INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_clicked TIMESTAMPTZ
	)`

	_, err := db.Exec(query)
	return err
}

// CreateLink inserts a new link row. A primary-key violation is mapped to
// service.ErrConflict so a code taken between pre-check and insert still
// surfaces as a conflict.
func (db *Database) CreateLink(ctx context.Context, code, url string) error {
	query := `INSERT INTO links (code, url) VALUES ($1, $2)`
	_, err := db.conn.ExecContext(ctx, query, code, url)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return service.ErrConflict
		}
		return err
	}
	return nil
}

// GetLinkByCode retrieves a link by its code.
func (db *Database) GetLinkByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	var lastClicked sql.NullTime
	query := `SELECT code, url, clicks, created_at, last_clicked
			  FROM links WHERE code = $1`

	err := db.conn.QueryRowContext(ctx, query, code).Scan(
		&link.Code,
		&link.URL,
		&link.Clicks,
		&link.CreatedAt,
		&lastClicked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	if lastClicked.Valid {
		link.LastClicked = &lastClicked.Time
	}

	return &link, nil
}

// CodeExists reports whether a code is already taken.
func (db *Database) CodeExists(ctx context.Context, code string) (bool, error) {
	var one int
	query := `SELECT 1 FROM links WHERE code = $1`
	err := db.conn.QueryRowContext(ctx, query, code).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RecordClick increments the click counter and stamps the visit time. The
// increment is expressed relative to the stored value so concurrent updates
// are applied independently by the database.
func (db *Database) RecordClick(ctx context.Context, code string) error {
	query := `UPDATE links SET clicks = clicks + 1, last_clicked = NOW() WHERE code = $1`
	_, err := db.conn.ExecContext(ctx, query, code)
	return err
}

// ListLinks retrieves all stored links, newest first.
func (db *Database) ListLinks(ctx context.Context) ([]models.Link, error) {
	query := `SELECT code, url, clicks, created_at, last_clicked
			  FROM links ORDER BY created_at DESC`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]models.Link, 0)
	for rows.Next() {
		var link models.Link
		var lastClicked sql.NullTime
		if err := rows.Scan(&link.Code, &link.URL, &link.Clicks, &link.CreatedAt, &lastClicked); err != nil {
			return nil, err
		}
		if lastClicked.Valid {
			link.LastClicked = &lastClicked.Time
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// DeleteLink deletes a link by its code.
func (db *Database) DeleteLink(ctx context.Context, code string) error {
	query := `DELETE FROM links WHERE code = $1`
	result, err := db.conn.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return service.ErrNotFound
	}

	return nil
}

// Database must satisfy the service's store contract.
var _ service.Store = (*Database)(nil)
