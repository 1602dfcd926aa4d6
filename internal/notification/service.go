// Package notification creates in-app notifications for side effects of
// status changes and match deletions. Delivery (push, email) happens elsewhere.
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
	"github.com/AchrafReyani/job-matching-platform/internal/repository"
	"github.com/AchrafReyani/job-matching-platform/internal/security"
)

// ErrMissingRecipient is returned when a notification has no user id.
var ErrMissingRecipient = errors.New("notification has no recipient")

// Service stores notifications.
// Title and message pass through the TextSanitizer before they reach the
// repository, so names taken from user profiles cannot carry markup into
// a client that renders notifications as HTML.
type Service struct {
	repo      repository.NotificationRepository
	sanitizer security.TextSanitizer
}

// NewService creates a Service.
func NewService(repo repository.NotificationRepository, sanitizer security.TextSanitizer) *Service {
	return &Service{repo: repo, sanitizer: sanitizer}
}

// Create stores n for its recipient.
// It returns ErrMissingRecipient when n has no user id and an error for an
// unknown notification type. Title and message are stripped of markup first.
// Callers on the deletion path pass a context detached from the request and
// treat any error as non-fatal.
func (s *Service) Create(ctx context.Context, n model.NewNotification) error {
	if n.UserID == "" {
		return ErrMissingRecipient
	}
	if !n.Type.IsValid() {
		return fmt.Errorf("unknown notification type %q", n.Type)
	}

	notification := &model.Notification{
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     s.sanitizer.Sanitize(n.Title),
		Message:   s.sanitizer.Sanitize(n.Message),
		RelatedID: n.RelatedID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to store %s notification: %w", n.Type, err)
	}
	return nil
}
