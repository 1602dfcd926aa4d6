package model

import (
	"encoding/json"
	"time"
)

// ArchivedUser is the audit snapshot of a deleted user. Append-only.
type ArchivedUser struct {
	ID          int64
	OriginalID  string
	Email       string
	Role        Role
	ProfileData json.RawMessage
	ArchivedBy  string
	ArchivedAt  time.Time
}

// ArchivedVacancy is the audit snapshot of a deleted vacancy. Append-only.
type ArchivedVacancy struct {
	ID               int64
	OriginalID       int64
	CompanyName      string
	Title            string
	SalaryRange      string
	Role             string
	JobDescription   string
	ApplicationCount int
	ArchivedBy       string
	ArchivedAt       time.Time
}

// ArchivedApplication is the audit snapshot of a deleted application. Append-only.
// MessageCount is the number of messages the application had when it was archived.
type ArchivedApplication struct {
	ID             int64
	OriginalID     int64
	VacancyTitle   string
	CompanyName    string
	SeekerName     string
	Status         ApplicationStatus
	MessageCount   int
	ArchivedBy     string
	ArchivedByRole Role
	ArchivedAt     time.Time
}

// JobSeekerProfileData is the profile_data payload of an archived job seeker.
type JobSeekerProfileData struct {
	Type              Role   `json:"type"`
	FullName          string `json:"fullName"`
	PortfolioURL      string `json:"portfolioUrl"`
	ExperienceSummary string `json:"experienceSummary"`
}

// CompanyProfileData is the profile_data payload of an archived company.
type CompanyProfileData struct {
	Type        Role   `json:"type"`
	CompanyName string `json:"companyName"`
	WebsiteURL  string `json:"websiteUrl"`
	Description string `json:"description"`
}
