// Package model defines the domain model.
package model

import "time"

// Role is the account type of a User.
type Role string

const (
	// RoleJobSeeker owns a JobSeeker profile and applies to vacancies.
	RoleJobSeeker Role = "JOB_SEEKER"
	// RoleCompany owns a Company profile and publishes vacancies.
	RoleCompany Role = "COMPANY"
	// RoleAdmin operates the admin console. Admins have no profile row.
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleJobSeeker, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// User is an account holder.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// JobSeeker is the profile of a RoleJobSeeker user (1:1 via UserID).
type JobSeeker struct {
	ID                int64
	UserID            string
	FullName          string
	PortfolioURL      string
	ExperienceSummary string
}

// Company is the profile of a RoleCompany user (1:1 via UserID).
type Company struct {
	ID          int64
	UserID      string
	CompanyName string
	WebsiteURL  string
	Description string
}
