package repository

import (
	"context"
	"fmt"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// InsertArchivedUser appends an archived_users row and sets a.ID.
func (s *pgTx) InsertArchivedUser(ctx context.Context, a *model.ArchivedUser) error {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO archived_users (original_id, email, role, profile_data, archived_by, archived_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		a.OriginalID, a.Email, a.Role, []byte(a.ProfileData), a.ArchivedBy, a.ArchivedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to archive user: %w", err)
	}
	return nil
}

// InsertArchivedVacancy appends an archived_vacancies row and sets a.ID.
func (s *pgTx) InsertArchivedVacancy(ctx context.Context, a *model.ArchivedVacancy) error {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO archived_vacancies
		 (original_id, company_name, title, salary_range, role, job_description, application_count, archived_by, archived_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		a.OriginalID, a.CompanyName, a.Title, a.SalaryRange, a.Role, a.JobDescription,
		a.ApplicationCount, a.ArchivedBy, a.ArchivedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to archive vacancy: %w", err)
	}
	return nil
}

// InsertArchivedApplication appends an archived_applications row and sets a.ID.
func (s *pgTx) InsertArchivedApplication(ctx context.Context, a *model.ArchivedApplication) error {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO archived_applications
		 (original_id, vacancy_title, company_name, seeker_name, status, message_count, archived_by, archived_by_role, archived_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		a.OriginalID, a.VacancyTitle, a.CompanyName, a.SeekerName, a.Status,
		a.MessageCount, a.ArchivedBy, a.ArchivedByRole, a.ArchivedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to archive application: %w", err)
	}
	return nil
}
