package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerforge/careerforge/internal/domain"
)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `id, company_id, title, slug, work_policy, department, employment_type,
	experience_level, job_type, location, salary_range, description, is_open,
	posted_at, created_at, updated_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job

	err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Slug, &j.WorkPolicy, &j.Department,
		&j.EmploymentType, &j.ExperienceLevel, &j.JobType, &j.Location, &j.SalaryRange,
		&j.Description, &j.IsOpen, &j.PostedAt, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, slug, work_policy, department, employment_type,
		                   experience_level, job_type, location, salary_range, description, is_open,
		                   posted_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		j.ID, j.CompanyID, j.Title, j.Slug, j.WorkPolicy, j.Department, j.EmploymentType,
		j.ExperienceLevel, j.JobType, j.Location, j.SalaryRange, j.Description, j.IsOpen,
		j.PostedAt, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("jobRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("jobRepo.Create: %w", err)
	}

	return nil
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return j, nil
}

func (r *JobRepo) GetOpenBySlug(ctx context.Context, companyID uuid.UUID, slug string) (*domain.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 AND slug = $2 AND is_open`,
		companyID, slug))
	if err != nil {
		return nil, fmt.Errorf("jobRepo.GetOpenBySlug: %w", err)
	}
	return j, nil
}

func (r *JobRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1`
	if !includeClosed {
		query += ` AND is_open`
	}
	query += ` ORDER BY posted_at DESC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ListByCompany: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("jobRepo.ListByCompany: scan: %w", scanErr)
		}
		jobs = append(jobs, j)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ListByCompany: rows: %w", err)
	}

	return jobs, nil
}

func (r *JobRepo) SlugExists(ctx context.Context, companyID uuid.UUID, slug string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE company_id = $1 AND slug = $2)`,
		companyID, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("jobRepo.SlugExists: %w", err)
	}

	return exists, nil
}

// Update applies the patch to the job owned by companyID. Ownership lives in
// the WHERE clause so a foreign job is indistinguishable from a missing one.
func (r *JobRepo) Update(ctx context.Context, companyID, jobID uuid.UUID, patch domain.JobUpdate) (*domain.Job, error) {
	current, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND company_id = $2`,
		jobID, companyID))
	if err != nil {
		return nil, fmt.Errorf("jobRepo.Update: %w", err)
	}

	applyJobPatch(current, patch)
	current.UpdatedAt = time.Now()

	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $1, slug = $2, work_policy = $3, department = $4, employment_type = $5,
		     experience_level = $6, job_type = $7, location = $8, salary_range = $9,
		     description = $10, is_open = $11, updated_at = $12
		 WHERE id = $13 AND company_id = $14`,
		current.Title, current.Slug, current.WorkPolicy, current.Department, current.EmploymentType,
		current.ExperienceLevel, current.JobType, current.Location, current.SalaryRange,
		current.Description, current.IsOpen, current.UpdatedAt, jobID, companyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("jobRepo.Update: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("jobRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("jobRepo.Update: %w", domain.ErrNotFound)
	}

	return current, nil
}

func applyJobPatch(j *domain.Job, patch domain.JobUpdate) {
	if patch.Title != nil {
		j.Title = *patch.Title
	}
	if patch.Slug != nil {
		j.Slug = *patch.Slug
	}
	if patch.WorkPolicy != nil {
		j.WorkPolicy = *patch.WorkPolicy
	}
	if patch.Department != nil {
		j.Department = *patch.Department
	}
	if patch.EmploymentType != nil {
		j.EmploymentType = *patch.EmploymentType
	}
	if patch.ExperienceLevel != nil {
		j.ExperienceLevel = *patch.ExperienceLevel
	}
	if patch.JobType != nil {
		j.JobType = *patch.JobType
	}
	if patch.Location != nil {
		j.Location = *patch.Location
	}
	if patch.SalaryRange != nil {
		j.SalaryRange = *patch.SalaryRange
	}
	if patch.Description != nil {
		j.Description = *patch.Description
	}
	if patch.IsOpen != nil {
		j.IsOpen = *patch.IsOpen
	}
}

func (r *JobRepo) Delete(ctx context.Context, companyID, jobID uuid.UUID) (*domain.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx,
		`DELETE FROM jobs WHERE id = $1 AND company_id = $2 RETURNING `+jobColumns,
		jobID, companyID))
	if err != nil {
		return nil, fmt.Errorf("jobRepo.Delete: %w", err)
	}

	return j, nil
}

func (r *JobRepo) ListOpenWithCompanySlug(ctx context.Context) ([]*domain.JobWithCompany, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT j.id, j.company_id, j.title, j.slug, j.work_policy, j.department, j.employment_type,
		        j.experience_level, j.job_type, j.location, j.salary_range, j.description, j.is_open,
		        j.posted_at, j.created_at, j.updated_at, c.slug
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.is_open
		 ORDER BY j.posted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ListOpenWithCompanySlug: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.JobWithCompany
	for rows.Next() {
		var j domain.JobWithCompany

		err = rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Slug, &j.WorkPolicy, &j.Department,
			&j.EmploymentType, &j.ExperienceLevel, &j.JobType, &j.Location, &j.SalaryRange,
			&j.Description, &j.IsOpen, &j.PostedAt, &j.CreatedAt, &j.UpdatedAt, &j.CompanySlug)
		if err != nil {
			return nil, fmt.Errorf("jobRepo.ListOpenWithCompanySlug: scan: %w", err)
		}

		jobs = append(jobs, &j)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ListOpenWithCompanySlug: rows: %w", err)
	}

	return jobs, nil
}
