// Package cascade removes the live rows of a deletion target bottom-up.
//
// Order:
//   - messages of every application in the graph, then messages the user
//     authored elsewhere
//   - applications
//   - vacancies
//   - profile
//   - notifications
//   - root row
//
// Foreign keys have no ON DELETE CASCADE, so this order is what keeps every
// statement valid. Every id deleted comes from the graph read in the same
// transaction; nothing is removed by a broader predicate.
package cascade

import (
	"context"
	"fmt"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
	"github.com/AchrafReyani/job-matching-platform/internal/repository"
)

// Step names a stage of the cascade.
type Step string

const (
	StepMessages      Step = "messages"
	StepApplications  Step = "applications"
	StepVacancies     Step = "vacancies"
	StepProfile       Step = "profile"
	StepNotifications Step = "notifications"
	StepRoot          Step = "root"
)

// Result is the number of rows removed per step.
type Result map[Step]int64

// Total is the number of rows removed across all steps.
func (r Result) Total() int64 {
	var n int64
	for _, v := range r {
		n += v
	}
	return n
}

// Deleter runs cascades against a transaction-bound RowDeleter.
// It keeps no state; the caller supplies the graph and the transaction.
type Deleter struct{}

// NewDeleter creates a Deleter.
func NewDeleter() *Deleter {
	return &Deleter{}
}

// DeleteUserCascade removes the user and its whole subtree.
// Both branches run; the one the user does not have deletes nothing.
// Messages the user authored on applications outside the graph are removed
// on their own, leaving those applications and their other messages in place.
// The root step must remove exactly one row; zero means the user vanished
// after the graph was read and the transaction must roll back.
func (d *Deleter) DeleteUserCascade(ctx context.Context, rows repository.RowDeleter, g *model.UserGraph) (Result, error) {
	apps := g.AllApplications()
	owned := messageIDs(apps)
	res := Result{}

	n, err := rows.DeleteMessages(ctx, owned)
	if err != nil {
		return res, err
	}
	// Messages the user wrote on applications outside the graph go too;
	// the applications themselves stay.
	sent, err := rows.DeleteMessages(ctx, without(g.SentMessageIDs, owned))
	if err != nil {
		return res, err
	}
	res[StepMessages] = n + sent

	if res[StepApplications], err = rows.DeleteApplications(ctx, applicationIDs(apps)); err != nil {
		return res, err
	}

	vacancyIDs := make([]int64, 0, len(g.Vacancies))
	for _, v := range g.Vacancies {
		vacancyIDs = append(vacancyIDs, v.ID)
	}
	if res[StepVacancies], err = rows.DeleteVacancies(ctx, vacancyIDs); err != nil {
		return res, err
	}

	seeker, err := rows.DeleteJobSeekerProfile(ctx, g.User.ID)
	if err != nil {
		return res, err
	}
	company, err := rows.DeleteCompanyProfile(ctx, g.User.ID)
	if err != nil {
		return res, err
	}
	res[StepProfile] = seeker + company

	if res[StepNotifications], err = rows.DeleteNotificationsByUser(ctx, g.User.ID); err != nil {
		return res, err
	}

	if res[StepRoot], err = rows.DeleteUser(ctx, g.User.ID); err != nil {
		return res, err
	}
	if res[StepRoot] != 1 {
		return res, fmt.Errorf("user %s vanished during deletion", g.User.ID)
	}
	return res, nil
}

// DeleteVacancyCascade removes the vacancy, its applications and their messages.
// The company and the job seekers who applied are left untouched.
func (d *Deleter) DeleteVacancyCascade(ctx context.Context, rows repository.RowDeleter, g *model.VacancyGraph) (Result, error) {
	res := Result{}
	var err error

	if res[StepMessages], err = rows.DeleteMessages(ctx, messageIDs(g.Applications)); err != nil {
		return res, err
	}
	if res[StepApplications], err = rows.DeleteApplications(ctx, applicationIDs(g.Applications)); err != nil {
		return res, err
	}
	if res[StepRoot], err = rows.DeleteVacancies(ctx, []int64{g.Vacancy.ID}); err != nil {
		return res, err
	}
	if res[StepRoot] != 1 {
		return res, fmt.Errorf("vacancy %d vanished during deletion", g.Vacancy.ID)
	}
	return res, nil
}

// DeleteApplicationCascade removes the application and its messages.
func (d *Deleter) DeleteApplicationCascade(ctx context.Context, rows repository.RowDeleter, g *model.ApplicationGraph) (Result, error) {
	res := Result{}
	var err error

	if res[StepMessages], err = rows.DeleteMessages(ctx, g.Application.MessageIDs); err != nil {
		return res, err
	}
	if res[StepRoot], err = rows.DeleteApplications(ctx, []int64{g.Application.ID}); err != nil {
		return res, err
	}
	if res[StepRoot] != 1 {
		return res, fmt.Errorf("application %d vanished during deletion", g.Application.ID)
	}
	return res, nil
}

func messageIDs(apps []model.ApplicationNode) []int64 {
	var ids []int64
	for _, a := range apps {
		ids = append(ids, a.MessageIDs...)
	}
	return ids
}

// without returns the ids of a that are not in b.
func without(a, b []int64) []int64 {
	skip := make(map[int64]struct{}, len(b))
	for _, id := range b {
		skip[id] = struct{}{}
	}
	var out []int64
	for _, id := range a {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func applicationIDs(apps []model.ApplicationNode) []int64 {
	ids := make([]int64, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ID)
	}
	return ids
}
