package model

import "time"

// Vacancy is a job posting owned by a Company.
type Vacancy struct {
	ID             int64
	CompanyID      int64
	Title          string
	SalaryRange    string
	Role           string
	JobDescription string
	CreatedAt      time.Time
}

// ApplicationStatus is the state of an Application.
type ApplicationStatus string

const (
	// StatusApplied is the initial state of every application.
	StatusApplied ApplicationStatus = "APPLIED"
	// StatusAccepted marks a match. Only accepted applications can be deleted as matches.
	StatusAccepted ApplicationStatus = "ACCEPTED"
	// StatusRejected is final.
	StatusRejected ApplicationStatus = "REJECTED"
)

// Application is a JobSeeker's application to a Vacancy.
type Application struct {
	ID          int64
	JobSeekerID int64
	VacancyID   int64
	Status      ApplicationStatus
	AppliedAt   time.Time
	UpdatedAt   time.Time
}

// Message is a chat message exchanged on an Application.
type Message struct {
	ID            int64
	ApplicationID int64
	SenderID      string
	Text          string
	SentAt        time.Time
	IsRead        bool
}
