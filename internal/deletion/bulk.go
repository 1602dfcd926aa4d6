package deletion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// DeleteAllJobSeekers deletes every job seeker user, one transaction each.
// It returns the number of ids processed; ids that vanished in the meantime count as processed.
// On failure the deletions already committed stay committed.
func (c *Coordinator) DeleteAllJobSeekers(ctx context.Context, performedBy string) (int, error) {
	return c.deleteAllUsers(ctx, model.RoleJobSeeker, performedBy)
}

// DeleteAllCompanies deletes every company user with its vacancies, one transaction each.
// Ids are listed once up front; the returned count and partial-failure
// behaviour match DeleteAllJobSeekers.
func (c *Coordinator) DeleteAllCompanies(ctx context.Context, performedBy string) (int, error) {
	return c.deleteAllUsers(ctx, model.RoleCompany, performedBy)
}

// DeleteAllVacancies deletes every vacancy, one transaction each.
// The companies stay. Cancelling ctx stops before the next vacancy and
// returns how many were processed.
func (c *Coordinator) DeleteAllVacancies(ctx context.Context, performedBy string) (int, error) {
	ids, err := c.vacancies.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list vacancies: %w", err)
	}

	processed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := c.DeleteVacancy(ctx, id, performedBy); err != nil {
			return processed, fmt.Errorf("failed to delete vacancy %d: %w", id, err)
		}
		processed++
	}

	slog.Info("bulk vacancy deletion completed",
		slog.Int("processed", processed),
		slog.String("performed_by", performedBy),
	)
	return processed, nil
}

func (c *Coordinator) deleteAllUsers(ctx context.Context, role model.Role, performedBy string) (int, error) {
	ids, err := c.users.ListIDsByRole(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s users: %w", role, err)
	}

	processed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := c.DeleteUser(ctx, id, performedBy); err != nil {
			return processed, fmt.Errorf("failed to delete user %s: %w", id, err)
		}
		processed++
	}

	slog.Info("bulk user deletion completed",
		slog.String("role", string(role)),
		slog.Int("processed", processed),
		slog.String("performed_by", performedBy),
	)
	return processed, nil
}
