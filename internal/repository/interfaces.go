// Package repository defines the persistence interfaces and their PostgreSQL implementations.
package repository

import (
	"context"
	"database/sql"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// GraphReader loads a deletion target with everything that has to be archived or cascaded.
// Each method returns nil (and no error) when the root row does not exist.
// Inside a transaction every row read is locked FOR UPDATE, so a concurrent
// deletion of an overlapping graph waits for this one to commit and then
// finds the shared rows gone.
type GraphReader interface {
	// ReadUserGraph loads the user, its profile and both branches
	// (applications of a job seeker, vacancies with their applications of a company).
	// SentMessageIDs lists every message the user authored, including those on
	// applications outside both branches; the cascade removes them before the user row.
	ReadUserGraph(ctx context.Context, userID string) (*model.UserGraph, error)

	// ReadVacancyGraph loads the vacancy, the company name and its applications.
	ReadVacancyGraph(ctx context.Context, vacancyID int64) (*model.VacancyGraph, error)

	// ReadApplicationGraph loads the application, its vacancy, both parties and its messages.
	ReadApplicationGraph(ctx context.Context, applicationID int64) (*model.ApplicationGraph, error)
}

// ArchiveStore persists audit snapshots. There is no update or delete on archive tables.
type ArchiveStore interface {
	InsertArchivedUser(ctx context.Context, a *model.ArchivedUser) error
	InsertArchivedVacancy(ctx context.Context, a *model.ArchivedVacancy) error
	InsertArchivedApplication(ctx context.Context, a *model.ArchivedApplication) error
}

// RowDeleter removes live rows. Every method is a no-op on an empty id set
// and returns the number of rows removed.
// Callers delete children before parents:
//   - messages before applications
//   - applications before vacancies
//   - vacancies before the company profile
//   - profiles, notifications and authored messages before the user
//
// Foreign keys do not cascade, so a call out of order fails instead of
// silently removing rows that were never archived.
type RowDeleter interface {
	DeleteMessages(ctx context.Context, messageIDs []int64) (int64, error)
	DeleteApplications(ctx context.Context, applicationIDs []int64) (int64, error)
	DeleteVacancies(ctx context.Context, vacancyIDs []int64) (int64, error)
	DeleteJobSeekerProfile(ctx context.Context, userID string) (int64, error)
	DeleteCompanyProfile(ctx context.Context, userID string) (int64, error)
	DeleteNotificationsByUser(ctx context.Context, userID string) (int64, error)
	DeleteUser(ctx context.Context, userID string) (int64, error)
}

// TxStore is the view of the store bound to one transaction.
type TxStore interface {
	GraphReader
	ArchiveStore
	RowDeleter
}

// Transactor runs fn inside a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise;
// fn's error is returned unchanged.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
}

// UserRepository is the read side of users needed outside the deletion transaction.
type UserRepository interface {
	// ListIDsByRole returns the ids of every user with the given role.
	ListIDsByRole(ctx context.Context, role model.Role) ([]string, error)
}

// VacancyRepository is the read side of vacancies needed by bulk deletion.
type VacancyRepository interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// ApplicationRepository persists application status changes.
type ApplicationRepository interface {
	// FindGraphByID loads the application with its vacancy and both parties.
	// Returns nil when the application does not exist.
	FindGraphByID(ctx context.Context, id int64) (*model.ApplicationGraph, error)

	// CompareAndSetStatus moves the application from status `from` to `to`.
	// It reports false when the row no longer exists or no longer has status `from`.
	CompareAndSetStatus(ctx context.Context, id int64, from, to model.ApplicationStatus) (bool, error)
}

// NotificationRepository persists notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
}

// TxBeginner starts transactions.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
