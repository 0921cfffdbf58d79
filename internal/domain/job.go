package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Enumerated job attributes. Values match what the public page renders
// and what the dashboard's select inputs submit.
var (
	WorkPolicies     = []string{"Remote", "On-site", "Hybrid"}
	EmploymentTypes  = []string{"Full Time", "Part Time", "Contract"}
	ExperienceLevels = []string{"Senior", "Mid-Level", "Junior"}
	JobTypes         = []string{"Permanent", "Temporary", "Internship"}
)

// Job is a single posting owned by one company.
type Job struct {
	ID              uuid.UUID `json:"id"`
	CompanyID       uuid.UUID `json:"company_id"`
	Title           string    `json:"title"`
	Slug            string    `json:"job_slug"`
	WorkPolicy      string    `json:"work_policy"`
	Department      string    `json:"department"`
	EmploymentType  string    `json:"employment_type"`
	ExperienceLevel string    `json:"experience_level"`
	JobType         string    `json:"job_type"`
	Location        string    `json:"location"`
	SalaryRange     string    `json:"salary_range"`
	Description     string    `json:"description"`
	IsOpen          bool      `json:"isOpen"`
	PostedAt        time.Time `json:"date_posted"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// JobUpdate is the allow-list of mutable job fields. ID and CompanyID are
// not representable; nil pointers mean "leave unchanged".
type JobUpdate struct {
	Title           *string
	WorkPolicy      *string
	Department      *string
	EmploymentType  *string
	ExperienceLevel *string
	JobType         *string
	Location        *string
	SalaryRange     *string
	Description     *string
	IsOpen          *bool
	// Slug is set by the repository when Title changes, never by callers.
	Slug *string
}

// JobWithCompany pairs an open job with its owner's slug for sitemap output.
type JobWithCompany struct {
	Job
	CompanySlug string `json:"company_slug"`
}

type JobRepository interface {
	Create(ctx context.Context, j *Job) error
	// GetByID returns a job regardless of open state or owner.
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	// GetOpenBySlug resolves an open job for a company by slug.
	GetOpenBySlug(ctx context.Context, companyID uuid.UUID, slug string) (*Job, error)
	// ListByCompany returns jobs newest-posted first. Closed jobs are
	// included only when includeClosed is set.
	ListByCompany(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*Job, error)
	// SlugExists reports whether a company already uses the given job slug.
	SlugExists(ctx context.Context, companyID uuid.UUID, slug string) (bool, error)
	// Update applies the patch to the job owned by companyID. A job that
	// exists but belongs to another company yields ErrNotFound.
	Update(ctx context.Context, companyID, jobID uuid.UUID, patch JobUpdate) (*Job, error)
	// Delete removes the job owned by companyID, returning the deleted row.
	Delete(ctx context.Context, companyID, jobID uuid.UUID) (*Job, error)
	// ListOpenWithCompanySlug returns every open job joined to its owner's
	// slug, for sitemap generation.
	ListOpenWithCompanySlug(ctx context.Context) ([]*JobWithCompany, error)
}
