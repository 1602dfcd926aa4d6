package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// PostgresApplicationRepo is the application repository backed by PostgreSQL.
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo creates a PostgresApplicationRepo.
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

// FindGraphByID loads the application with its vacancy and both parties.
// Returns nil when the application does not exist.
func (r *PostgresApplicationRepo) FindGraphByID(ctx context.Context, id int64) (*model.ApplicationGraph, error) {
	return readApplicationGraph(ctx, r.db, id, false)
}

// CompareAndSetStatus updates the status only while it still equals from.
// A concurrent match deletion or status change makes it report false.
func (r *PostgresApplicationRepo) CompareAndSetStatus(ctx context.Context, id int64, from, to model.ApplicationStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update application status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n == 1, nil
}

// PostgresNotificationRepo is the notification repository backed by PostgreSQL.
type PostgresNotificationRepo struct {
	db *sql.DB
}

// NewPostgresNotificationRepo creates a PostgresNotificationRepo.
func NewPostgresNotificationRepo(db *sql.DB) *PostgresNotificationRepo {
	return &PostgresNotificationRepo{db: db}
}

// Create inserts the notification and sets its ID and CreatedAt.
func (r *PostgresNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO notifications (user_id, type, title, message, related_id, is_read)
		 VALUES ($1, $2, $3, $4, $5, false) RETURNING id, created_at`,
		n.UserID, n.Type, n.Title, n.Message, n.RelatedID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// compile-time interface checks
var (
	_ ApplicationRepository  = (*PostgresApplicationRepo)(nil)
	_ NotificationRepository = (*PostgresNotificationRepo)(nil)
)
