package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore runs deletion units of work on PostgreSQL.
type PostgresStore struct {
	db TxBeginner
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(db TxBeginner) *PostgresStore {
	return &PostgresStore{db: db}
}

// WithinTx runs fn in a READ COMMITTED transaction.
// Graph reads inside fn lock their root row, so a concurrent deletion or
// status update of the same entity waits for this transaction to finish.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &pgTx{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// pgTx implements TxStore on top of a single *sql.Tx.
type pgTx struct {
	q DBTX
}

// compile-time interface checks
var (
	_ Transactor = (*PostgresStore)(nil)
	_ TxStore    = (*pgTx)(nil)
)
