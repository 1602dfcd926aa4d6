// Package deletion coordinates the archive-then-delete protocol for users,
// vacancies and matches.
//
// Each single-entity operation reads its graph, validates, archives and
// cascades inside one transaction, so an entity is either archived and gone
// or untouched. Validation failures are returned before the first write.
// Notifications are sent only after commit and never fail the deletion.
package deletion

import (
	"context"
	"log/slog"
	"time"

	"github.com/AchrafReyani/job-matching-platform/internal/application"
	"github.com/AchrafReyani/job-matching-platform/internal/archive"
	"github.com/AchrafReyani/job-matching-platform/internal/cascade"
	"github.com/AchrafReyani/job-matching-platform/internal/metrics"
	"github.com/AchrafReyani/job-matching-platform/internal/model"
	"github.com/AchrafReyani/job-matching-platform/internal/notification"
	"github.com/AchrafReyani/job-matching-platform/internal/repository"
)

// Entity kinds used as metric labels.
const (
	KindUser    = "user"
	KindVacancy = "vacancy"
	KindMatch   = "match"
)

// ArchiveWriter snapshots graphs into the audit tables.
type ArchiveWriter interface {
	WriteUser(ctx context.Context, store repository.ArchiveStore, g *model.UserGraph, actor archive.Actor) (archive.Counts, error)
	WriteVacancy(ctx context.Context, store repository.ArchiveStore, g *model.VacancyGraph, actor archive.Actor) (archive.Counts, error)
	WriteApplication(ctx context.Context, store repository.ArchiveStore, g *model.ApplicationGraph, actor archive.Actor) (archive.Counts, error)
}

// CascadeDeleter removes the live rows of a graph bottom-up.
type CascadeDeleter interface {
	DeleteUserCascade(ctx context.Context, rows repository.RowDeleter, g *model.UserGraph) (cascade.Result, error)
	DeleteVacancyCascade(ctx context.Context, rows repository.RowDeleter, g *model.VacancyGraph) (cascade.Result, error)
	DeleteApplicationCascade(ctx context.Context, rows repository.RowDeleter, g *model.ApplicationGraph) (cascade.Result, error)
}

// Notifier creates notifications. Called only after a commit.
type Notifier interface {
	Create(ctx context.Context, n model.NewNotification) error
}

// Recorder receives deletion metrics.
type Recorder interface {
	RecordDeletion(kind, outcome string)
	RecordDeletionLatency(kind string, duration time.Duration)
	RecordArchivedRows(table string, count int)
	RecordNotificationFailure()
}

// Coordinator runs the deletion protocol.
//
// Every single-entity operation follows the same sequence:
//  1. read the graph with its rows locked
//  2. validate the caller against the graph
//  3. write the archive snapshots
//  4. cascade the live rows
//  5. commit, then notify and record metrics
//
// Steps 1 to 4 share one transaction. A Coordinator is safe for concurrent use.
type Coordinator struct {
	tx        repository.Transactor
	users     repository.UserRepository
	vacancies repository.VacancyRepository
	archiver  ArchiveWriter
	cascader  CascadeDeleter
	notifier  Notifier
	recorder  Recorder
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(
	tx repository.Transactor,
	users repository.UserRepository,
	vacancies repository.VacancyRepository,
	archiver ArchiveWriter,
	cascader CascadeDeleter,
	notifier Notifier,
	recorder Recorder,
) *Coordinator {
	return &Coordinator{
		tx:        tx,
		users:     users,
		vacancies: vacancies,
		archiver:  archiver,
		cascader:  cascader,
		notifier:  notifier,
		recorder:  recorder,
	}
}

// DeleteUser archives and deletes a user with its whole subtree.
// A user that does not exist is a no-op. Admins cannot delete themselves or other admins.
func (c *Coordinator) DeleteUser(ctx context.Context, userID, performedBy string) error {
	start := time.Now()
	if userID == performedBy {
		err := model.NewCannotDeleteSelfError()
		c.record(KindUser, start, false, archive.Counts{}, err)
		return err
	}

	var (
		deleted bool
		counts  archive.Counts
		removed cascade.Result
	)
	err := c.tx.WithinTx(ctx, func(ctx context.Context, tx repository.TxStore) error {
		g, err := tx.ReadUserGraph(ctx, userID)
		if err != nil {
			return err
		}
		if g == nil {
			return nil
		}
		if g.User.Role == model.RoleAdmin {
			return model.NewCannotDeleteAdminError()
		}

		counts, err = c.archiver.WriteUser(ctx, tx, g, archive.Actor{UserID: performedBy, Role: model.RoleAdmin})
		if err != nil {
			return err
		}
		removed, err = c.cascader.DeleteUserCascade(ctx, tx, g)
		if err != nil {
			return err
		}
		deleted = true
		return nil
	})
	c.record(KindUser, start, deleted, counts, err)
	if err != nil {
		return err
	}

	if deleted {
		slog.Info("user deleted",
			slog.String("user_id", userID),
			slog.String("performed_by", performedBy),
			slog.Int("archived_vacancies", counts.Vacancies),
			slog.Int("archived_applications", counts.Applications),
			slog.Int64("rows_removed", removed.Total()),
		)
	}
	return nil
}

// DeleteVacancy archives and deletes a vacancy with its applications.
// A vacancy that does not exist is a no-op. The vacancy snapshot records
// how many applications it had, and each application gets its own snapshot
// with its message count before the messages are removed.
func (c *Coordinator) DeleteVacancy(ctx context.Context, vacancyID int64, performedBy string) error {
	start := time.Now()
	var (
		deleted bool
		counts  archive.Counts
		removed cascade.Result
	)
	err := c.tx.WithinTx(ctx, func(ctx context.Context, tx repository.TxStore) error {
		g, err := tx.ReadVacancyGraph(ctx, vacancyID)
		if err != nil {
			return err
		}
		if g == nil {
			return nil
		}

		counts, err = c.archiver.WriteVacancy(ctx, tx, g, archive.Actor{UserID: performedBy, Role: model.RoleAdmin})
		if err != nil {
			return err
		}
		removed, err = c.cascader.DeleteVacancyCascade(ctx, tx, g)
		if err != nil {
			return err
		}
		deleted = true
		return nil
	})
	c.record(KindVacancy, start, deleted, counts, err)
	if err != nil {
		return err
	}

	if deleted {
		slog.Info("vacancy deleted",
			slog.Int64("vacancy_id", vacancyID),
			slog.String("performed_by", performedBy),
			slog.Int("archived_applications", counts.Applications),
			slog.Int64("rows_removed", removed.Total()),
		)
	}
	return nil
}

// DeleteMatch lets either party end an accepted application.
//
// Errors, all returned before anything is written:
//   - NotFound when the application does not exist
//   - BadRequest when application.IsMatch rejects its status
//   - Forbidden when the requester is neither the job seeker nor the company
//
// The archive row names the requester and the role they acted in.
// The other party is notified once the deletion has committed.
func (c *Coordinator) DeleteMatch(ctx context.Context, requesterID string, applicationID int64) error {
	start := time.Now()
	var (
		g      *model.ApplicationGraph
		role   model.Role
		counts archive.Counts
	)
	err := c.tx.WithinTx(ctx, func(ctx context.Context, tx repository.TxStore) error {
		app, err := tx.ReadApplicationGraph(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return model.NewApplicationNotFoundError(applicationID)
		}
		if !application.IsMatch(app.Application.Status) {
			return model.NewMatchNotAcceptedError()
		}
		r, ok := app.PartyRole(requesterID)
		if !ok {
			return model.NewNotMatchPartyError()
		}

		counts, err = c.archiver.WriteApplication(ctx, tx, app, archive.Actor{UserID: requesterID, Role: r})
		if err != nil {
			return err
		}
		if _, err := c.cascader.DeleteApplicationCascade(ctx, tx, app); err != nil {
			return err
		}
		g, role = app, r
		return nil
	})
	c.record(KindMatch, start, g != nil, counts, err)
	if err != nil {
		return err
	}

	slog.Info("match deleted",
		slog.Int64("application_id", applicationID),
		slog.String("requester_id", requesterID),
		slog.String("requester_role", string(role)),
		slog.Int("message_count", g.Application.MessageCount()),
	)

	c.notify(ctx, notification.MatchEnded(g, role))
	return nil
}

// notify creates n without letting a failure reach the caller.
// The request context may already be cancelled once the response is decided,
// so only its values are kept.
func (c *Coordinator) notify(ctx context.Context, n model.NewNotification) {
	if err := c.notifier.Create(context.WithoutCancel(ctx), n); err != nil {
		c.recorder.RecordNotificationFailure()
		slog.Warn("failed to create notification",
			slog.String("user_id", n.UserID),
			slog.String("type", string(n.Type)),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Coordinator) record(kind string, start time.Time, deleted bool, counts archive.Counts, err error) {
	c.recorder.RecordDeletionLatency(kind, time.Since(start))
	switch {
	case err != nil && isRejection(err):
		c.recorder.RecordDeletion(kind, metrics.OutcomeRejected)
	case err != nil:
		c.recorder.RecordDeletion(kind, metrics.OutcomeFailed)
		slog.Error("deletion failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
	case deleted:
		c.recorder.RecordDeletion(kind, metrics.OutcomeDeleted)
		c.recorder.RecordArchivedRows("archived_users", counts.Users)
		c.recorder.RecordArchivedRows("archived_vacancies", counts.Vacancies)
		c.recorder.RecordArchivedRows("archived_applications", counts.Applications)
	default:
		c.recorder.RecordDeletion(kind, metrics.OutcomeNoop)
	}
}

func isRejection(err error) bool {
	return model.IsNotFound(err) || model.IsBadRequest(err) || model.IsForbidden(err)
}
