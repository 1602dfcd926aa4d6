package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// applicationNodeColumns is shared by every query that builds model.ApplicationNode.
const applicationNodeColumns = `
	a.id, a.job_seeker_id, a.vacancy_id, a.status, a.applied_at, a.updated_at,
	v.title, c.company_name, js.full_name
	FROM applications a
	JOIN vacancies v ON v.id = a.vacancy_id
	JOIN companies c ON c.id = v.company_id
	JOIN job_seekers js ON js.id = a.job_seeker_id`

// ReadUserGraph loads the user and both branches. The user row is locked for the transaction.
// Returns nil when the user does not exist.
func (s *pgTx) ReadUserGraph(ctx context.Context, userID string) (*model.UserGraph, error) {
	g := &model.UserGraph{}
	err := s.q.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&g.User.ID, &g.User.Email, &g.User.PasswordHash, &g.User.Role, &g.User.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	// Job seeker branch.
	seeker := &model.JobSeeker{}
	err = s.q.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, portfolio_url, experience_summary FROM job_seekers WHERE user_id = $1`,
		userID,
	).Scan(&seeker.ID, &seeker.UserID, &seeker.FullName, &seeker.PortfolioURL, &seeker.ExperienceSummary)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("failed to read job seeker profile: %w", err)
	default:
		g.JobSeeker = seeker
		g.Applications, err = listApplicationNodes(ctx, s.q, `WHERE a.job_seeker_id = $1`, seeker.ID)
		if err != nil {
			return nil, err
		}
	}

	// Company branch.
	company := &model.Company{}
	err = s.q.QueryRowContext(ctx,
		`SELECT id, user_id, company_name, website_url, description FROM companies WHERE user_id = $1`,
		userID,
	).Scan(&company.ID, &company.UserID, &company.CompanyName, &company.WebsiteURL, &company.Description)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("failed to read company profile: %w", err)
	default:
		g.Company = company
		g.Vacancies, err = s.listVacancyNodes(ctx, company.ID)
		if err != nil {
			return nil, err
		}
	}

	// Locked so a concurrent match deletion cannot remove them under the cascade.
	g.SentMessageIDs, err = queryIDs(ctx, s.q,
		`SELECT id FROM messages WHERE sender_id = $1 ORDER BY id FOR UPDATE`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent messages: %w", err)
	}

	return g, nil
}

// ReadVacancyGraph loads the vacancy with its applications. The vacancy row is locked.
// Returns nil when the vacancy does not exist.
func (s *pgTx) ReadVacancyGraph(ctx context.Context, vacancyID int64) (*model.VacancyGraph, error) {
	g := &model.VacancyGraph{}
	v := &g.Vacancy
	err := s.q.QueryRowContext(ctx,
		`SELECT v.id, v.company_id, v.title, v.salary_range, v.role, v.job_description, v.created_at, c.company_name
		 FROM vacancies v JOIN companies c ON c.id = v.company_id
		 WHERE v.id = $1 FOR UPDATE OF v`,
		vacancyID,
	).Scan(&v.ID, &v.CompanyID, &v.Title, &v.SalaryRange, &v.Role, &v.JobDescription, &v.CreatedAt, &g.CompanyName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vacancy: %w", err)
	}

	g.Applications, err = listApplicationNodes(ctx, s.q, `WHERE a.vacancy_id = $1`, vacancyID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ReadApplicationGraph loads the application with both parties. The application row is locked.
// Returns nil when the application does not exist.
func (s *pgTx) ReadApplicationGraph(ctx context.Context, applicationID int64) (*model.ApplicationGraph, error) {
	return readApplicationGraph(ctx, s.q, applicationID, true)
}

// listVacancyNodes loads the vacancies of a company together with their applications.
func (s *pgTx) listVacancyNodes(ctx context.Context, companyID int64) ([]model.VacancyNode, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, company_id, title, salary_range, role, job_description, created_at
		 FROM vacancies WHERE company_id = $1 ORDER BY id`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}
	defer rows.Close()

	var nodes []model.VacancyNode
	var ids []int64
	for rows.Next() {
		var n model.VacancyNode
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.Title, &n.SalaryRange, &n.Role, &n.JobDescription, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vacancy: %w", err)
		}
		nodes = append(nodes, n)
		ids = append(ids, n.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vacancies: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	apps, err := listApplicationNodes(ctx, s.q, `WHERE a.vacancy_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	byVacancy := make(map[int64][]model.ApplicationNode, len(ids))
	for _, a := range apps {
		byVacancy[a.VacancyID] = append(byVacancy[a.VacancyID], a)
	}
	for i := range nodes {
		nodes[i].Applications = byVacancy[nodes[i].ID]
	}
	return nodes, nil
}

// readApplicationGraph is shared by the deletion transaction (forUpdate) and the status service.
func readApplicationGraph(ctx context.Context, q DBTX, applicationID int64, forUpdate bool) (*model.ApplicationGraph, error) {
	query := `SELECT a.id, a.job_seeker_id, a.vacancy_id, a.status, a.applied_at, a.updated_at,
		v.id, v.company_id, v.title, v.salary_range, v.role, v.job_description, v.created_at,
		c.id, c.user_id, c.company_name, c.website_url, c.description,
		js.id, js.user_id, js.full_name, js.portfolio_url, js.experience_summary
		FROM applications a
		JOIN vacancies v ON v.id = a.vacancy_id
		JOIN companies c ON c.id = v.company_id
		JOIN job_seekers js ON js.id = a.job_seeker_id
		WHERE a.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF a`
	}

	g := &model.ApplicationGraph{}
	a, v, c, js := &g.Application, &g.Vacancy, &g.Company, &g.JobSeeker
	err := q.QueryRowContext(ctx, query, applicationID).Scan(
		&a.ID, &a.JobSeekerID, &a.VacancyID, &a.Status, &a.AppliedAt, &a.UpdatedAt,
		&v.ID, &v.CompanyID, &v.Title, &v.SalaryRange, &v.Role, &v.JobDescription, &v.CreatedAt,
		&c.ID, &c.UserID, &c.CompanyName, &c.WebsiteURL, &c.Description,
		&js.ID, &js.UserID, &js.FullName, &js.PortfolioURL, &js.ExperienceSummary,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read application: %w", err)
	}
	a.VacancyTitle = v.Title
	a.CompanyName = c.CompanyName
	a.SeekerName = js.FullName

	a.MessageIDs, err = queryIDs(ctx, q,
		`SELECT id FROM messages WHERE application_id = $1 ORDER BY id`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return g, nil
}

// listApplicationNodes loads applications matching where and attaches their message ids.
// The application rows are locked so a concurrent match deletion cannot archive them twice.
func listApplicationNodes(ctx context.Context, q DBTX, where string, arg any) ([]model.ApplicationNode, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+applicationNodeColumns+` `+where+` ORDER BY a.id FOR UPDATE OF a`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var nodes []model.ApplicationNode
	var ids []int64
	for rows.Next() {
		var n model.ApplicationNode
		if err := rows.Scan(
			&n.ID, &n.JobSeekerID, &n.VacancyID, &n.Status, &n.AppliedAt, &n.UpdatedAt,
			&n.VacancyTitle, &n.CompanyName, &n.SeekerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		nodes = append(nodes, n)
		ids = append(ids, n.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	msgRows, err := q.QueryContext(ctx,
		`SELECT id, application_id FROM messages WHERE application_id = ANY($1) ORDER BY id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer msgRows.Close()

	byApplication := make(map[int64][]int64, len(ids))
	for msgRows.Next() {
		var id, applicationID int64
		if err := msgRows.Scan(&id, &applicationID); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		byApplication[applicationID] = append(byApplication[applicationID], id)
	}
	if err := msgRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	for i := range nodes {
		nodes[i].MessageIDs = byApplication[nodes[i].ID]
	}
	return nodes, nil
}

// queryIDs runs a single-column id query.
func queryIDs(ctx context.Context, q DBTX, query string, args ...any) ([]int64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
