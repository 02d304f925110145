// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/models"
)

// SQL dialects, named after their database/sql drivers
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// SQLStore keeps each collection in its own table as JSON text.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// OpenSQL connects to the database, verifies the connection and creates the
// schema.
func OpenSQL(ctx context.Context, dialect, dsn string) (*SQLStore, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported SQL dialect %q", dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	// SQLite has one writer; a single connection serialises transactions
	// instead of failing them with SQLITE_BUSY.
	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewSQLStore(conn, dialect), nil
}

// NewSQLStore wraps an open connection whose schema already exists
func NewSQLStore(conn *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

// DB exposes the underlying connection
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) Get(ctx context.Context, coll Collection, id string) (models.Document, error) {
	table, err := tableFor(coll)
	if err != nil {
		return nil, err
	}

	var raw string
	err = s.db.QueryRowContext(ctx, `SELECT doc FROM `+table+` WHERE id = $1`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s %s: %w", table, id, err)
	}

	return decodeDoc(raw)
}

func (s *SQLStore) Create(ctx context.Context, coll Collection, id string, doc models.Document) error {
	table, err := tableFor(coll)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, id, string(raw))
	if err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", table, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, coll Collection, id string, fields models.Document) error {
	table, err := tableFor(coll)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		doc, err := s.lockDoc(ctx, tx, table, id)
		if err != nil {
			return err
		}
		Merge(doc, fields)
		return writeDoc(ctx, tx, table, id, doc)
	})
}

func (s *SQLStore) Delete(ctx context.Context, coll Collection, id string) error {
	table, err := tableFor(coll)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", table, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) CastVote(ctx context.Context, electionID, voterID, candidateID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		election, err := s.lockDoc(ctx, tx, db.ElectionTable, electionID)
		if errors.Is(err, ErrNotFound) {
			return ErrElectionNotFound
		}
		if err != nil {
			return err
		}

		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM `+db.VoterTable+` WHERE id = $1)
		`, voterID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check voter %s: %w", voterID, err)
		}
		if !exists {
			return ErrVoterNotFound
		}

		if err := ApplyVote(election, voterID, candidateID); err != nil {
			return err
		}
		return writeDoc(ctx, tx, db.ElectionTable, electionID, election)
	})
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockDoc reads a document inside tx, taking a row lock where the dialect
// has one.
func (s *SQLStore) lockDoc(ctx context.Context, tx *sql.Tx, table, id string) (models.Document, error) {
	query := `SELECT doc FROM ` + table + ` WHERE id = $1`
	if s.dialect == DialectPostgres {
		query += ` FOR UPDATE`
	}

	var raw string
	err := tx.QueryRowContext(ctx, query, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s %s: %w", table, id, err)
	}

	return decodeDoc(raw)
}

func writeDoc(ctx context.Context, tx *sql.Tx, table, id string, doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE `+table+` SET doc = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
	`, string(raw), id)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", table, id, err)
	}
	return nil
}

func decodeDoc(raw string) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

func tableFor(coll Collection) (string, error) {
	switch coll {
	case Voters:
		return db.VoterTable, nil
	case Elections:
		return db.ElectionTable, nil
	}
	return "", fmt.Errorf("unknown collection %q", coll)
}
