// Package store persists batch results in a local SQLite database so that
// past runs can be queried without re-reading the JSON artifacts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS receipts (
	id             TEXT PRIMARY KEY,
	source_file    TEXT NOT NULL,
	layout         TEXT NOT NULL,
	tx_type        TEXT NOT NULL,
	amount         TEXT NOT NULL,
	payer_name     TEXT,
	payee_name     TEXT,
	tx_date        TEXT,
	tx_time        TEXT,
	transaction_id TEXT,
	confidence     REAL NOT NULL,
	error          TEXT,
	processed_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_receipts_payee ON receipts (payee_name);
CREATE INDEX IF NOT EXISTS idx_receipts_date  ON receipts (tx_date);
`

// Store wraps a SQLite handle. Safe for concurrent use via database/sql.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to the SQLite database at dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "dsn", dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer; a single pooled connection also keeps
	// in-memory DSNs on the same database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("successfully connected to database")
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database handle gracefully.
func (s *Store) Close() {
	s.logger.Info("closing database connection")
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database", "error", err)
	}
}

// SaveBatch upserts every receipt of a run in one transaction. Re-processing
// the same file replaces its previous row.
func (s *Store) SaveBatch(ctx context.Context, receipts []entity.Receipt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO receipts (
			id, source_file, layout, tx_type, amount,
			payer_name, payee_name, tx_date, tx_time,
			transaction_id, confidence, error, processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_file    = excluded.source_file,
			layout         = excluded.layout,
			tx_type        = excluded.tx_type,
			amount         = excluded.amount,
			payer_name     = excluded.payer_name,
			payee_name     = excluded.payee_name,
			tx_date        = excluded.tx_date,
			tx_time        = excluded.tx_time,
			transaction_id = excluded.transaction_id,
			confidence     = excluded.confidence,
			error          = excluded.error,
			processed_at   = excluded.processed_at`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range receipts {
		_, err := stmt.ExecContext(ctx,
			r.ID,
			r.Source.SourceFile,
			string(r.Layout),
			string(r.Type),
			r.Amount.StringFixed(2),
			r.Payer.FullName,
			r.Payee.FullName,
			r.Date,
			r.Time,
			r.TransactionID,
			r.Confidence,
			r.Err,
			r.Source.ProcessedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert receipt %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	s.logger.Info("store.batch.ok", "rows", len(receipts))
	return nil
}

// CountBySourceFile reports how many rows exist for a given source file,
// mostly useful in tests and health checks.
func (s *Store) CountBySourceFile(ctx context.Context, sourceFile string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM receipts WHERE source_file = ?`, sourceFile).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count receipts: %w", err)
	}
	return n, nil
}
