package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
	"github.com/AchrafReyani/job-matching-platform/internal/notification"
	"github.com/AchrafReyani/job-matching-platform/internal/repository"
)

// Notifier creates notifications.
type Notifier interface {
	Create(ctx context.Context, n model.NewNotification) error
}

// FailureRecorder counts notifications that could not be created.
type FailureRecorder interface {
	RecordNotificationFailure()
}

// Service changes application statuses on behalf of the owning company.
// It loads the application graph for the ownership check, writes the new
// status with a compare-and-set and notifies the job seeker afterwards.
// A Service holds no mutable state and is safe for concurrent use.
type Service struct {
	repo     repository.ApplicationRepository
	notifier Notifier
	recorder FailureRecorder
}

// NewService creates a Service.
func NewService(repo repository.ApplicationRepository, notifier Notifier, recorder FailureRecorder) *Service {
	return &Service{repo: repo, notifier: notifier, recorder: recorder}
}

// UpdateStatus moves the application to status on behalf of companyUserID.
//
// Checks run in this order, each returning an APIError:
//   - the application must exist (NotFound)
//   - the caller must own the vacancy (Forbidden)
//   - the move must be allowed by CanTransition (BadRequest)
//
// The write only succeeds while the stored status still equals the one that
// was checked. When a concurrent decision or deletion wins, the application
// is re-read and the error reflects its current state.
// The job seeker is notified after the change is stored; a failed
// notification is logged and counted but never fails the update.
func (s *Service) UpdateStatus(ctx context.Context, companyUserID string, applicationID int64, status model.ApplicationStatus) (*model.Application, error) {
	g, err := s.repo.FindGraphByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if g == nil {
		return nil, model.NewApplicationNotFoundError(applicationID)
	}
	if g.Company.UserID != companyUserID {
		return nil, model.NewNotVacancyOwnerError()
	}

	from := g.Application.Status
	if !CanTransition(from, status) {
		return nil, model.NewInvalidStatusTransitionError(from, status)
	}

	ok, err := s.repo.CompareAndSetStatus(ctx, applicationID, from, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.conflict(ctx, applicationID, status)
	}

	slog.Info("application status changed",
		slog.Int64("application_id", applicationID),
		slog.String("from", string(from)),
		slog.String("to", string(status)),
		slog.String("company_user_id", companyUserID),
	)

	if n, ok := notification.StatusChanged(g, status); ok {
		if err := s.notifier.Create(context.WithoutCancel(ctx), n); err != nil {
			s.recorder.RecordNotificationFailure()
			slog.Warn("failed to create notification",
				slog.String("user_id", n.UserID),
				slog.String("type", string(n.Type)),
				slog.String("error", err.Error()),
			)
		}
	}

	updated := g.Application.Application
	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// conflict explains a lost compare-and-set: the application was deleted or decided meanwhile.
func (s *Service) conflict(ctx context.Context, applicationID int64, to model.ApplicationStatus) error {
	g, err := s.repo.FindGraphByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to reload application: %w", err)
	}
	if g == nil {
		return model.NewApplicationNotFoundError(applicationID)
	}
	return model.NewInvalidStatusTransitionError(g.Application.Status, to)
}
