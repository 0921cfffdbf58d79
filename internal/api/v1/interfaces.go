package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/jobs"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Companies() domain.CompanyRepository
	Jobs() domain.JobRepository
}

// AuthService abstracts signup/login for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, slug string) (*domain.Company, string, error)
	Login(ctx context.Context, email, password string) (*domain.Company, string, error)
}

// JobService abstracts posting lifecycle operations for handler testing.
// *jobs.Service satisfies this interface.
type JobService interface {
	Create(ctx context.Context, companyID uuid.UUID, in jobs.Input) (*domain.Job, error)
	Update(ctx context.Context, companyID, jobID uuid.UUID, patch domain.JobUpdate) (*domain.Job, error)
	Delete(ctx context.Context, companyID, jobID uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error)
	GetPublic(ctx context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error)
}

// PageInvalidator drops cached public pages after a mutation.
// *redis.PageCache satisfies this interface, including as a nil pointer.
type PageInvalidator interface {
	InvalidateCompany(ctx context.Context, companySlug string) error
}
