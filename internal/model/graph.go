package model

// ApplicationNode is an Application together with the denormalized names
// the archive needs and the ids of the messages it owns.
type ApplicationNode struct {
	Application
	VacancyTitle string
	CompanyName  string
	SeekerName   string
	MessageIDs   []int64
}

// MessageCount is the number of messages loaded with the node.
func (n ApplicationNode) MessageCount() int {
	return len(n.MessageIDs)
}

// VacancyNode is a Vacancy and every application submitted to it.
type VacancyNode struct {
	Vacancy
	Applications []ApplicationNode
}

// UserGraph is everything that has to be archived or removed when a user is deleted.
// Exactly one of JobSeeker and Company is set for non-admin users.
type UserGraph struct {
	User      User
	JobSeeker *JobSeeker
	Company   *Company

	// Applications is the job seeker branch.
	Applications []ApplicationNode
	// Vacancies is the company branch.
	Vacancies []VacancyNode

	// SentMessageIDs are messages authored by the user, whichever application they belong to.
	// Those on applications outside the graph are removed without their application.
	SentMessageIDs []int64
}

// AllApplications returns the applications of both branches.
func (g *UserGraph) AllApplications() []ApplicationNode {
	apps := make([]ApplicationNode, 0, len(g.Applications))
	apps = append(apps, g.Applications...)
	for _, v := range g.Vacancies {
		apps = append(apps, v.Applications...)
	}
	return apps
}

// VacancyGraph is a vacancy, the name of its company and its applications.
type VacancyGraph struct {
	Vacancy      Vacancy
	CompanyName  string
	Applications []ApplicationNode
}

// ApplicationGraph is an application with both parties of the match resolved.
type ApplicationGraph struct {
	Application ApplicationNode
	Vacancy     Vacancy
	Company     Company
	JobSeeker   JobSeeker
}

// PartyRole returns the role under which userID takes part in the application,
// and false when the user is neither the job seeker nor the owning company.
func (g *ApplicationGraph) PartyRole(userID string) (Role, bool) {
	switch userID {
	case g.JobSeeker.UserID:
		return RoleJobSeeker, true
	case g.Company.UserID:
		return RoleCompany, true
	}
	return "", false
}
