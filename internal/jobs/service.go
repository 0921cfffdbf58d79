// Package jobs holds the posting lifecycle: validation, slug derivation,
// and ownership-checked mutations.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/slug"
)

const (
	jobSlugMaxLen = 100
	suffixLen     = 5
)

// MissingFieldsError reports which required fields were absent from a
// create request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "jobs: missing required fields: " + strings.Join(e.Fields, ", ")
}

// Input carries the client-supplied fields for a new posting.
type Input struct {
	Title           string
	WorkPolicy      string
	Department      string
	EmploymentType  string
	ExperienceLevel string
	JobType         string
	Location        string
	SalaryRange     string
	Description     string
}

// requiredFields maps request field names to their accessors, in the order
// the API reports them.
func (in *Input) missing() []string {
	var fields []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"work_policy", in.WorkPolicy},
		{"department", in.Department},
		{"employment_type", in.EmploymentType},
		{"experience_level", in.ExperienceLevel},
		{"job_type", in.JobType},
		{"location", in.Location},
		{"salary_range", in.SalaryRange},
		{"description", in.Description},
	} {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// Service wraps the job repository with posting semantics.
type Service struct {
	repo domain.JobRepository
}

func NewService(repo domain.JobRepository) *Service {
	return &Service{repo: repo}
}

// Create validates the input, derives a per-company-unique slug from the
// title, and persists the posting. A slug collision gets a random suffix;
// the database unique constraint backs the check, and a constraint conflict
// is retried once with a fresh suffix.
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, in Input) (*domain.Job, error) {
	if fields := in.missing(); len(fields) > 0 {
		return nil, &MissingFieldsError{Fields: fields}
	}

	jobSlug, err := s.uniqueSlug(ctx, companyID, in.Title)
	if err != nil {
		return nil, fmt.Errorf("jobs.Create: %w", err)
	}

	now := time.Now()
	job := &domain.Job{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Title:           strings.TrimSpace(in.Title),
		Slug:            jobSlug,
		WorkPolicy:      in.WorkPolicy,
		Department:      in.Department,
		EmploymentType:  in.EmploymentType,
		ExperienceLevel: in.ExperienceLevel,
		JobType:         in.JobType,
		Location:        strings.TrimSpace(in.Location),
		SalaryRange:     strings.TrimSpace(in.SalaryRange),
		Description:     in.Description,
		IsOpen:          true,
		PostedAt:        now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.repo.Create(ctx, job)
	if errors.Is(err, domain.ErrConflict) {
		// Concurrent create took the slug between check and insert.
		job.Slug = slug.WithSuffix(slug.Make(in.Title, jobSlugMaxLen), suffixLen)
		log.Warn().Str("slug", job.Slug).Msg("job slug conflict, retrying with fresh suffix")
		err = s.repo.Create(ctx, job)
	}
	if err != nil {
		return nil, fmt.Errorf("jobs.Create: %w", err)
	}

	return job, nil
}

func (s *Service) uniqueSlug(ctx context.Context, companyID uuid.UUID, title string) (string, error) {
	base := slug.Make(title, jobSlugMaxLen)

	exists, err := s.repo.SlugExists(ctx, companyID, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	return slug.WithSuffix(base, suffixLen), nil
}

// Update applies the patch to a job the caller owns. The slug is rederived
// only when the title actually changes; resubmitting the same title keeps
// the published URL stable. A job owned by another company surfaces as
// ErrNotFound so existence never leaks.
func (s *Service) Update(ctx context.Context, companyID, jobID uuid.UUID, patch domain.JobUpdate) (*domain.Job, error) {
	patch.Slug = nil
	if patch.Title != nil {
		current, err := s.repo.GetByID(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("jobs.Update: %w", err)
		}
		if current.CompanyID != companyID {
			return nil, fmt.Errorf("jobs.Update: %w", domain.ErrNotFound)
		}

		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title

		if title != current.Title && slug.Make(title, jobSlugMaxLen) != current.Slug {
			newSlug, err := s.uniqueSlug(ctx, companyID, title)
			if err != nil {
				return nil, fmt.Errorf("jobs.Update: %w", err)
			}
			patch.Slug = &newSlug
		}
	}

	job, err := s.repo.Update(ctx, companyID, jobID, patch)
	if err != nil {
		return nil, fmt.Errorf("jobs.Update: %w", err)
	}

	return job, nil
}

// Delete removes a job the caller owns and returns the deleted posting.
func (s *Service) Delete(ctx context.Context, companyID, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.repo.Delete(ctx, companyID, jobID)
	if err != nil {
		return nil, fmt.Errorf("jobs.Delete: %w", err)
	}

	return job, nil
}

// List returns a company's postings, open-only unless includeClosed.
func (s *Service) List(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error) {
	jobs, err := s.repo.ListByCompany(ctx, companyID, includeClosed)
	if err != nil {
		return nil, fmt.Errorf("jobs.List: %w", err)
	}

	return jobs, nil
}

// GetPublic resolves an open job by slug, falling back to a lookup by raw
// id when the identifier parses as one. The fallback keeps links minted
// before slugs existed working.
func (s *Service) GetPublic(ctx context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error) {
	job, err := s.repo.GetOpenBySlug(ctx, companyID, strings.ToLower(slugOrID))
	if err == nil {
		return job, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("jobs.GetPublic: %w", err)
	}

	id, parseErr := uuid.Parse(slugOrID)
	if parseErr != nil {
		return nil, fmt.Errorf("jobs.GetPublic: %w", domain.ErrNotFound)
	}

	job, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("jobs.GetPublic: %w", err)
	}
	if job.CompanyID != companyID || !job.IsOpen {
		return nil, fmt.Errorf("jobs.GetPublic: %w", domain.ErrNotFound)
	}

	return job, nil
}
