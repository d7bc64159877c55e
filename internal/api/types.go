// Package api defines the recruitment-portal resources and the HTTP client
// used to fetch them. The three list resources (applicants, companies, job
// posts) share a column/value convention so list screens can drive sorting
// and searching without knowing the concrete record type.
package api

import "time"

// ApplicantStatus is the pipeline stage of an applicant.
type ApplicantStatus string

const (
	StatusApplied   ApplicantStatus = "applied"
	StatusScreening ApplicantStatus = "screening"
	StatusInterview ApplicantStatus = "interview"
	StatusOffer     ApplicantStatus = "offer"
	StatusHired     ApplicantStatus = "hired"
	StatusRejected  ApplicantStatus = "rejected"
)

// Applicant is one candidate in the hiring pipeline.
type Applicant struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Email     string          `json:"email" yaml:"email"`
	Position  string          `json:"position" yaml:"position"`
	Status    ApplicantStatus `json:"status" yaml:"status"`
	AppliedAt time.Time       `json:"applied_at" yaml:"applied_at"`
}

// Company is an employer with open roles on the portal.
type Company struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Industry  string    `json:"industry" yaml:"industry"`
	Location  string    `json:"location" yaml:"location"`
	OpenRoles int       `json:"open_roles" yaml:"open_roles"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// JobPost is a published opening.
type JobPost struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Company     string    `json:"company" yaml:"company"`
	Location    string    `json:"location" yaml:"location"`
	SalaryMin   int       `json:"salary_min" yaml:"salary_min"`
	SalaryMax   int       `json:"salary_max" yaml:"salary_max"`
	Remote      bool      `json:"remote" yaml:"remote"`
	PostedAt    time.Time `json:"posted_at" yaml:"posted_at"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Dataset bundles all three resources, the shape of both the embedded
// fixtures and a full sync.
type Dataset struct {
	Applicants []Applicant `json:"applicants" yaml:"applicants"`
	Companies  []Company   `json:"companies" yaml:"companies"`
	Jobs       []JobPost   `json:"jobs" yaml:"jobs"`
}
