// Package archive writes the audit snapshots taken right before an entity is deleted.
//
// Snapshots are pure denormalizations of a loaded graph: nothing is read or
// deleted here, and an archive row is never updated once written. The writer
// must run inside the same transaction as the cascade that removes the live rows.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
	"github.com/AchrafReyani/job-matching-platform/internal/repository"
)

// Actor is whoever performed the deletion.
type Actor struct {
	UserID string
	Role   model.Role
}

// Counts is the number of rows written per archive table.
type Counts struct {
	Users        int
	Vacancies    int
	Applications int
}

// Add accumulates other into c.
func (c *Counts) Add(other Counts) {
	c.Users += other.Users
	c.Vacancies += other.Vacancies
	c.Applications += other.Applications
}

// Writer turns graphs into archive rows.
// Every row written by one call carries the same ArchivedAt timestamp.
type Writer struct {
	now func() time.Time
}

// NewWriter creates a Writer stamping rows with the current UTC time.
func NewWriter() *Writer {
	return &Writer{now: func() time.Time { return time.Now().UTC() }}
}

// WriteUser archives the user, then every vacancy and application of its subtree.
// Vacancies are archived before applications, and every row records the
// acting admin as ArchivedBy. Applications on other users' vacancies that
// merely hold messages from this user are not part of the graph and are not
// archived. The returned Counts feed the archived-rows metric.
func (w *Writer) WriteUser(ctx context.Context, store repository.ArchiveStore, g *model.UserGraph, actor Actor) (Counts, error) {
	at := w.now()
	var counts Counts

	user, err := UserSnapshot(g, actor.UserID, at)
	if err != nil {
		return counts, err
	}
	if err := store.InsertArchivedUser(ctx, user); err != nil {
		return counts, err
	}
	counts.Users++

	companyName := ""
	if g.Company != nil {
		companyName = g.Company.CompanyName
	}
	for _, v := range g.Vacancies {
		if err := store.InsertArchivedVacancy(ctx, VacancySnapshot(v.Vacancy, companyName, len(v.Applications), actor.UserID, at)); err != nil {
			return counts, err
		}
		counts.Vacancies++
	}

	for _, a := range g.AllApplications() {
		if err := store.InsertArchivedApplication(ctx, ApplicationSnapshot(a, actor, at)); err != nil {
			return counts, err
		}
		counts.Applications++
	}
	return counts, nil
}

// WriteVacancy archives the vacancy and each of its applications.
func (w *Writer) WriteVacancy(ctx context.Context, store repository.ArchiveStore, g *model.VacancyGraph, actor Actor) (Counts, error) {
	at := w.now()
	var counts Counts

	if err := store.InsertArchivedVacancy(ctx, VacancySnapshot(g.Vacancy, g.CompanyName, len(g.Applications), actor.UserID, at)); err != nil {
		return counts, err
	}
	counts.Vacancies++

	for _, a := range g.Applications {
		if err := store.InsertArchivedApplication(ctx, ApplicationSnapshot(a, actor, at)); err != nil {
			return counts, err
		}
		counts.Applications++
	}
	return counts, nil
}

// WriteApplication archives a single application (match deletion).
func (w *Writer) WriteApplication(ctx context.Context, store repository.ArchiveStore, g *model.ApplicationGraph, actor Actor) (Counts, error) {
	if err := store.InsertArchivedApplication(ctx, ApplicationSnapshot(g.Application, actor, w.now())); err != nil {
		return Counts{}, err
	}
	return Counts{Applications: 1}, nil
}

// UserSnapshot maps a user graph to its ArchivedUser row.
// ProfileData holds the job seeker or company profile, or null for users without one.
func UserSnapshot(g *model.UserGraph, archivedBy string, at time.Time) (*model.ArchivedUser, error) {
	var profile any
	switch {
	case g.JobSeeker != nil:
		profile = model.JobSeekerProfileData{
			Type:              model.RoleJobSeeker,
			FullName:          g.JobSeeker.FullName,
			PortfolioURL:      g.JobSeeker.PortfolioURL,
			ExperienceSummary: g.JobSeeker.ExperienceSummary,
		}
	case g.Company != nil:
		profile = model.CompanyProfileData{
			Type:        model.RoleCompany,
			CompanyName: g.Company.CompanyName,
			WebsiteURL:  g.Company.WebsiteURL,
			Description: g.Company.Description,
		}
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile data: %w", err)
	}

	return &model.ArchivedUser{
		OriginalID:  g.User.ID,
		Email:       g.User.Email,
		Role:        g.User.Role,
		ProfileData: data,
		ArchivedBy:  archivedBy,
		ArchivedAt:  at,
	}, nil
}

// VacancySnapshot maps a vacancy to its ArchivedVacancy row.
func VacancySnapshot(v model.Vacancy, companyName string, applicationCount int, archivedBy string, at time.Time) *model.ArchivedVacancy {
	return &model.ArchivedVacancy{
		OriginalID:       v.ID,
		CompanyName:      companyName,
		Title:            v.Title,
		SalaryRange:      v.SalaryRange,
		Role:             v.Role,
		JobDescription:   v.JobDescription,
		ApplicationCount: applicationCount,
		ArchivedBy:       archivedBy,
		ArchivedAt:       at,
	}
}

// ApplicationSnapshot maps an application node to its ArchivedApplication row.
// MessageCount comes from the messages loaded with the node, before any of them is deleted.
func ApplicationSnapshot(a model.ApplicationNode, actor Actor, at time.Time) *model.ArchivedApplication {
	return &model.ArchivedApplication{
		OriginalID:     a.ID,
		VacancyTitle:   a.VacancyTitle,
		CompanyName:    a.CompanyName,
		SeekerName:     a.SeekerName,
		Status:         a.Status,
		MessageCount:   a.MessageCount(),
		ArchivedBy:     actor.UserID,
		ArchivedByRole: actor.Role,
		ArchivedAt:     at,
	}
}
