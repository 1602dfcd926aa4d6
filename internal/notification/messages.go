package notification

import (
	"fmt"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// MatchEnded is sent to the remaining party after the other one deleted the match.
// A job seeker ending the match is named by full name, a company by company
// name, and the message names the vacancy title. RelatedID carries the id of
// the deleted application.
func MatchEnded(g *model.ApplicationGraph, deleterRole model.Role) model.NewNotification {
	recipient, deleterName := g.Company.UserID, g.JobSeeker.FullName
	if deleterRole == model.RoleCompany {
		recipient, deleterName = g.JobSeeker.UserID, g.Company.CompanyName
	}
	return model.NewNotification{
		UserID:    recipient,
		Type:      model.NotificationMatchEnded,
		Title:     "Match ended",
		Message:   fmt.Sprintf("%s has ended the conversation about %s", deleterName, g.Vacancy.Title),
		RelatedID: relatedID(g.Application.ID),
	}
}

// StatusChanged is sent to the job seeker after the company decided on the application.
// It reports false for statuses that do not notify anyone.
func StatusChanged(g *model.ApplicationGraph, status model.ApplicationStatus) (model.NewNotification, bool) {
	n := model.NewNotification{
		UserID:    g.JobSeeker.UserID,
		RelatedID: relatedID(g.Application.ID),
	}
	switch status {
	case model.StatusAccepted:
		n.Type = model.NotificationApplicationAccepted
		n.Title = "Application accepted"
		n.Message = fmt.Sprintf("Your application for %s at %s has been accepted", g.Vacancy.Title, g.Company.CompanyName)
	case model.StatusRejected:
		n.Type = model.NotificationApplicationRejected
		n.Title = "Application rejected"
		n.Message = fmt.Sprintf("Your application for %s at %s has been rejected", g.Vacancy.Title, g.Company.CompanyName)
	default:
		return model.NewNotification{}, false
	}
	return n, true
}

func relatedID(id int64) *int64 {
	return &id
}
