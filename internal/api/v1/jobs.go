package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careerforge/careerforge/internal/auth"
	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/jobs"
	"github.com/careerforge/careerforge/internal/server/middleware"
)

type ListJobsInput struct {
	CompanyID     string `query:"companyId" doc:"Company id to list jobs for"`
	IncludeAll    bool   `query:"includeAll" doc:"Include closed jobs (owner only)"`
	Authorization string `header:"Authorization" doc:"Bearer token, required for includeAll"`
}

type ListJobsOutput struct {
	Body struct {
		Success bool          `json:"success"`
		Count   int           `json:"count"`
		Jobs    []*domain.Job `json:"jobs"`
	}
}

type GetJobInput struct {
	ID uuid.UUID `path:"id" doc:"Job id"`
}

type JobOutput struct {
	Body struct {
		Success bool        `json:"success"`
		Message string      `json:"message,omitempty"`
		Job     *domain.Job `json:"job"`
	}
}

// CreateJobInput keeps every body field schema-optional so an absent field
// reaches the service and comes back in its missing-fields list instead of
// failing schema validation on its own.
type CreateJobInput struct {
	Body struct {
		Title           string `json:"title,omitempty"`
		WorkPolicy      string `json:"work_policy,omitempty" enum:"Remote,On-site,Hybrid"`
		Department      string `json:"department,omitempty"`
		EmploymentType  string `json:"employment_type,omitempty" enum:"Full Time,Part Time,Contract"`
		ExperienceLevel string `json:"experience_level,omitempty" enum:"Senior,Mid-Level,Junior"`
		JobType         string `json:"job_type,omitempty" enum:"Permanent,Temporary,Internship"`
		Location        string `json:"location,omitempty"`
		SalaryRange     string `json:"salary_range,omitempty"`
		Description     string `json:"description,omitempty"`
	}
}

type UpdateJobInput struct {
	ID   uuid.UUID `path:"id" doc:"Job id"`
	Body struct {
		Title           *string `json:"title,omitempty"`
		WorkPolicy      *string `json:"work_policy,omitempty" enum:"Remote,On-site,Hybrid"`
		Department      *string `json:"department,omitempty"`
		EmploymentType  *string `json:"employment_type,omitempty" enum:"Full Time,Part Time,Contract"`
		ExperienceLevel *string `json:"experience_level,omitempty" enum:"Senior,Mid-Level,Junior"`
		JobType         *string `json:"job_type,omitempty" enum:"Permanent,Temporary,Internship"`
		Location        *string `json:"location,omitempty"`
		SalaryRange     *string `json:"salary_range,omitempty"`
		Description     *string `json:"description,omitempty"`
		IsOpen          *bool   `json:"isOpen,omitempty"`
	}
}

type DeleteJobInput struct {
	ID uuid.UUID `path:"id" doc:"Job id"`
}

type DeleteJobOutput struct {
	Body struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		DeletedJob struct {
			ID    uuid.UUID `json:"id"`
			Title string    `json:"title"`
		} `json:"deletedJob"`
	}
}

// RegisterPublicJobRoutes mounts the unauthenticated job reads. The list
// endpoint upgrades to include closed jobs only when the caller presents a
// valid token for the queried company.
func RegisterPublicJobRoutes(api huma.API, jobSvc JobService, jwtSecret string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      http.MethodGet,
		Path:        "/jobs",
		Summary:     "List a company's job postings",
		Tags:        []string{"Jobs"},
	}, func(ctx context.Context, input *ListJobsInput) (*ListJobsOutput, error) {
		if input.CompanyID == "" {
			return nil, huma.Error400BadRequest("companyId query parameter is required")
		}

		companyID, err := uuid.Parse(input.CompanyID)
		if err != nil {
			return nil, huma.Error400BadRequest("companyId must be a valid id")
		}

		includeClosed := input.IncludeAll && ownsCompany(input.Authorization, jwtSecret, companyID)

		list, err := jobSvc.List(ctx, companyID, includeClosed)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list jobs")
		}

		out := &ListJobsOutput{}
		out.Body.Success = true
		out.Body.Count = len(list)
		out.Body.Jobs = list
		return out, nil
	})
}

// ownsCompany reports whether the Authorization header carries a valid
// token for the given company. Closed postings are dashboard data, so the
// list is silently narrowed to open jobs for anyone else.
func ownsCompany(header, jwtSecret string, companyID uuid.UUID) bool {
	token := auth.ExtractBearer(header)
	if token == "" {
		return false
	}

	claims, err := auth.ValidateToken(jwtSecret, token)
	if err != nil {
		log.Debug().Err(err).Msg("jobs: includeAll token rejected")
		return false
	}

	id, err := claims.CompanyID()
	if err != nil {
		return false
	}

	return id == companyID
}

// RegisterJobLookupRoute mounts the public single-job fetch, used by the
// dashboard editor and deep links.
func RegisterJobLookupRoute(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-job",
		Method:      http.MethodGet,
		Path:        "/jobs/{id}",
		Summary:     "Fetch a single job posting",
		Tags:        []string{"Jobs"},
	}, func(ctx context.Context, input *GetJobInput) (*JobOutput, error) {
		job, err := store.Jobs().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("job not found")
			}
			return nil, huma.Error500InternalServerError("failed to fetch job")
		}

		out := &JobOutput{}
		out.Body.Success = true
		out.Body.Job = job
		return out, nil
	})
}

// RegisterJobRoutes mounts the authenticated job mutations. Every handler
// resolves the caller's company from the verified token, never from the
// request body.
func RegisterJobRoutes(api huma.API, store DataStore, jobSvc JobService, cache PageInvalidator) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-job",
		Method:        http.MethodPost,
		Path:          "/jobs",
		Summary:       "Create a job posting",
		Tags:          []string{"Jobs"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateJobInput) (*JobOutput, error) {
		companyID, ok := middleware.CompanyIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		job, err := jobSvc.Create(ctx, companyID, jobs.Input{
			Title:           input.Body.Title,
			WorkPolicy:      input.Body.WorkPolicy,
			Department:      input.Body.Department,
			EmploymentType:  input.Body.EmploymentType,
			ExperienceLevel: input.Body.ExperienceLevel,
			JobType:         input.Body.JobType,
			Location:        input.Body.Location,
			SalaryRange:     input.Body.SalaryRange,
			Description:     input.Body.Description,
		})
		if err != nil {
			var missing *jobs.MissingFieldsError
			if errors.As(err, &missing) {
				details := make([]error, 0, len(missing.Fields))
				for _, f := range missing.Fields {
					details = append(details, &huma.ErrorDetail{
						Message:  "required field is missing or empty",
						Location: "body." + f,
					})
				}
				return nil, huma.Error400BadRequest("missing required fields", details...)
			}
			return nil, huma.Error500InternalServerError("failed to create job")
		}

		invalidateFor(ctx, store, cache, companyID)

		out := &JobOutput{}
		out.Body.Success = true
		out.Body.Message = "job created successfully"
		out.Body.Job = job
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-job",
		Method:      http.MethodPut,
		Path:        "/jobs/{id}",
		Summary:     "Update a job posting",
		Tags:        []string{"Jobs"},
	}, func(ctx context.Context, input *UpdateJobInput) (*JobOutput, error) {
		companyID, ok := middleware.CompanyIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		patch := domain.JobUpdate{
			Title:           input.Body.Title,
			WorkPolicy:      input.Body.WorkPolicy,
			Department:      input.Body.Department,
			EmploymentType:  input.Body.EmploymentType,
			ExperienceLevel: input.Body.ExperienceLevel,
			JobType:         input.Body.JobType,
			Location:        input.Body.Location,
			SalaryRange:     input.Body.SalaryRange,
			Description:     input.Body.Description,
			IsOpen:          input.Body.IsOpen,
		}

		job, err := jobSvc.Update(ctx, companyID, input.ID, patch)
		if err != nil {
			// A job owned by another company is reported as missing, not
			// forbidden, so existence never leaks.
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("job not found")
			}
			return nil, huma.Error500InternalServerError("failed to update job")
		}

		invalidateFor(ctx, store, cache, companyID)

		out := &JobOutput{}
		out.Body.Success = true
		out.Body.Message = "job updated successfully"
		out.Body.Job = job
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-job",
		Method:      http.MethodDelete,
		Path:        "/jobs/{id}",
		Summary:     "Delete a job posting",
		Tags:        []string{"Jobs"},
	}, func(ctx context.Context, input *DeleteJobInput) (*DeleteJobOutput, error) {
		companyID, ok := middleware.CompanyIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		job, err := jobSvc.Delete(ctx, companyID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("job not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete job")
		}

		invalidateFor(ctx, store, cache, companyID)

		out := &DeleteJobOutput{}
		out.Body.Success = true
		out.Body.Message = "job deleted successfully"
		out.Body.DeletedJob.ID = job.ID
		out.Body.DeletedJob.Title = job.Title
		return out, nil
	})
}

// invalidateFor drops cached public pages for the company owning a mutated
// job. Cache misses are only a performance concern, so failures are logged
// and swallowed.
func invalidateFor(ctx context.Context, store DataStore, cache PageInvalidator, companyID uuid.UUID) {
	if cache == nil {
		return
	}

	company, err := store.Companies().GetByID(ctx, companyID)
	if err != nil {
		log.Warn().Err(err).Stringer("company_id", companyID).Msg("page cache invalidation: company lookup failed")
		return
	}

	if err := cache.InvalidateCompany(ctx, company.Slug); err != nil {
		log.Warn().Err(err).Str("company", company.Slug).Msg("page cache invalidation failed")
	}
}
