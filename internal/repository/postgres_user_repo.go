package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// PostgresUserRepo is the user repository backed by PostgreSQL.
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo creates a PostgresUserRepo.
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// ListIDsByRole returns the ids of all users with the given role, oldest first.
func (r *PostgresUserRepo) ListIDsByRole(ctx context.Context, role model.Role) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM users WHERE role = $1 ORDER BY created_at, id`,
		role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return ids, nil
}

// PostgresVacancyRepo is the vacancy repository backed by PostgreSQL.
type PostgresVacancyRepo struct {
	db *sql.DB
}

// NewPostgresVacancyRepo creates a PostgresVacancyRepo.
func NewPostgresVacancyRepo(db *sql.DB) *PostgresVacancyRepo {
	return &PostgresVacancyRepo{db: db}
}

// ListIDs returns the ids of all vacancies.
func (r *PostgresVacancyRepo) ListIDs(ctx context.Context) ([]int64, error) {
	ids, err := queryIDs(ctx, r.db, `SELECT id FROM vacancies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancy ids: %w", err)
	}
	return ids, nil
}

// compile-time interface checks
var (
	_ UserRepository    = (*PostgresUserRepo)(nil)
	_ VacancyRepository = (*PostgresVacancyRepo)(nil)
)
