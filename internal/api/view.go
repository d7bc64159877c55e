package api

import "github.com/leapstack-labs/jobdeck/pkg/sortable"

// Column sets and value lookups for the list resources. The CLI table
// renderer, the mock server, and the TUI all drive the same engines off these
// definitions, so a column added here shows up everywhere at once.

// ApplicantColumns returns the applicant list columns in display order.
func ApplicantColumns() []sortable.Column {
	return []sortable.Column{
		{Key: "name", Title: "Name", Sortable: true, Kind: sortable.KindString},
		{Key: "email", Title: "Email", Sortable: true, Kind: sortable.KindString},
		{Key: "position", Title: "Position", Sortable: true, Kind: sortable.KindString},
		{Key: "status", Title: "Status", Sortable: true, Kind: sortable.KindString},
		{Key: "applied_at", Title: "Applied", Sortable: true, Kind: sortable.KindTime},
	}
}

// ApplicantValue looks up an applicant field by column key.
func ApplicantValue(a Applicant, key string) any {
	switch key {
	case "id":
		return a.ID
	case "name":
		return a.Name
	case "email":
		return a.Email
	case "position":
		return a.Position
	case "status":
		return string(a.Status)
	case "applied_at":
		if a.AppliedAt.IsZero() {
			return nil
		}
		return a.AppliedAt
	}
	return nil
}

// CompanyColumns returns the company list columns in display order.
func CompanyColumns() []sortable.Column {
	return []sortable.Column{
		{Key: "name", Title: "Name", Sortable: true, Kind: sortable.KindString},
		{Key: "industry", Title: "Industry", Sortable: true, Kind: sortable.KindString},
		{Key: "location", Title: "Location", Sortable: true, Kind: sortable.KindString},
		{Key: "open_roles", Title: "Open Roles", Sortable: true, Kind: sortable.KindNumber},
		{Key: "created_at", Title: "Joined", Sortable: true, Kind: sortable.KindTime},
	}
}

// CompanyValue looks up a company field by column key.
func CompanyValue(c Company, key string) any {
	switch key {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "industry":
		return c.Industry
	case "location":
		return c.Location
	case "open_roles":
		return c.OpenRoles
	case "created_at":
		if c.CreatedAt.IsZero() {
			return nil
		}
		return c.CreatedAt
	}
	return nil
}

// JobColumns returns the job-post list columns in display order.
func JobColumns() []sortable.Column {
	return []sortable.Column{
		{Key: "title", Title: "Title", Sortable: true, Kind: sortable.KindString},
		{Key: "company", Title: "Company", Sortable: true, Kind: sortable.KindString},
		{Key: "location", Title: "Location", Sortable: true, Kind: sortable.KindString},
		{Key: "salary_max", Title: "Salary", Sortable: true, Kind: sortable.KindNumber},
		{Key: "posted_at", Title: "Posted", Sortable: true, Kind: sortable.KindTime},
	}
}

// JobValue looks up a job-post field by column key.
func JobValue(j JobPost, key string) any {
	switch key {
	case "id":
		return j.ID
	case "title":
		return j.Title
	case "company":
		return j.Company
	case "location":
		return j.Location
	case "salary_min":
		return j.SalaryMin
	case "salary_max":
		return j.SalaryMax
	case "remote":
		if j.Remote {
			return "remote"
		}
		return "on-site"
	case "posted_at":
		if j.PostedAt.IsZero() {
			return nil
		}
		return j.PostedAt
	}
	return nil
}
