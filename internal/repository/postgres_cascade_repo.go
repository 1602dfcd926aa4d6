package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// DeleteMessages removes the given messages.
func (s *pgTx) DeleteMessages(ctx context.Context, messageIDs []int64) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	return s.exec(ctx, "messages", `DELETE FROM messages WHERE id = ANY($1)`, pq.Array(messageIDs))
}

// DeleteApplications removes the given applications. Their messages must already be gone.
func (s *pgTx) DeleteApplications(ctx context.Context, applicationIDs []int64) (int64, error) {
	if len(applicationIDs) == 0 {
		return 0, nil
	}
	return s.exec(ctx, "applications", `DELETE FROM applications WHERE id = ANY($1)`, pq.Array(applicationIDs))
}

// DeleteVacancies removes the given vacancies. Their applications must already be gone.
func (s *pgTx) DeleteVacancies(ctx context.Context, vacancyIDs []int64) (int64, error) {
	if len(vacancyIDs) == 0 {
		return 0, nil
	}
	return s.exec(ctx, "vacancies", `DELETE FROM vacancies WHERE id = ANY($1)`, pq.Array(vacancyIDs))
}

// DeleteJobSeekerProfile removes the job seeker profile of userID, if any.
func (s *pgTx) DeleteJobSeekerProfile(ctx context.Context, userID string) (int64, error) {
	return s.exec(ctx, "job seeker profile", `DELETE FROM job_seekers WHERE user_id = $1`, userID)
}

// DeleteCompanyProfile removes the company profile of userID, if any.
func (s *pgTx) DeleteCompanyProfile(ctx context.Context, userID string) (int64, error) {
	return s.exec(ctx, "company profile", `DELETE FROM companies WHERE user_id = $1`, userID)
}

// DeleteNotificationsByUser removes the notifications addressed to userID.
func (s *pgTx) DeleteNotificationsByUser(ctx context.Context, userID string) (int64, error) {
	return s.exec(ctx, "notifications", `DELETE FROM notifications WHERE user_id = $1`, userID)
}

// DeleteUser removes the user row.
func (s *pgTx) DeleteUser(ctx context.Context, userID string) (int64, error) {
	return s.exec(ctx, "user", `DELETE FROM users WHERE id = $1`, userID)
}

func (s *pgTx) exec(ctx context.Context, what, query string, args ...any) (int64, error) {
	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", what, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
