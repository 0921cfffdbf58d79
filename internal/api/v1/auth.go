package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/careerforge/careerforge/internal/auth"
	"github.com/careerforge/careerforge/internal/domain"
)

// CompanySummary is the minimal identity payload returned from signup and
// login; the client stores it alongside the token.
type CompanySummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Slug  string    `json:"slug"`
}

func summarize(c *domain.Company) CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name, Email: c.Email, Slug: c.Slug}
}

type SignupInput struct {
	Body struct {
		Name     string `json:"name" doc:"Company display name"`
		Email    string `json:"email" doc:"Login email, unique across companies"`
		Password string `json:"password" doc:"At least 8 characters"` //nolint:gosec // G117: login credential DTO
		Slug     string `json:"slug,omitempty" doc:"Optional URL slug; derived from name when absent"`
	}
}

type SignupOutput struct {
	Status int
	Body   struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Token   string         `json:"token"` //nolint:gosec // G117: auth response DTO
		Company CompanySummary `json:"company"`
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email"`
		Password string `json:"password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		Success bool           `json:"success"`
		Token   string         `json:"token"` //nolint:gosec // G117: auth response DTO
		Company CompanySummary `json:"company"`
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/auth/signup",
		Summary:       "Register a company",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SignupInput) (*SignupOutput, error) {
		company, token, err := authSvc.Signup(ctx, input.Body.Name, input.Body.Email, input.Body.Password, input.Body.Slug)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingFields):
				return nil, huma.Error400BadRequest("name, email and password are required")
			case errors.Is(err, auth.ErrWeakPassword):
				return nil, huma.Error400BadRequest("password must be at least 8 characters long")
			case errors.Is(err, auth.ErrInvalidSlug):
				return nil, huma.Error400BadRequest("slug may only contain lowercase letters, numbers and hyphens")
			case errors.Is(err, domain.ErrEmailTaken):
				return nil, huma.Error409Conflict("a company with this email already exists")
			case errors.Is(err, domain.ErrSlugTaken):
				return nil, huma.Error409Conflict("this company name is already taken, choose a different name or slug")
			default:
				return nil, huma.Error500InternalServerError("failed to create company")
			}
		}

		out := &SignupOutput{Status: http.StatusCreated}
		out.Body.Success = true
		out.Body.Message = "company created successfully"
		out.Body.Token = token
		out.Body.Company = summarize(company)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		company, token, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("login failed")
		}

		out := &LoginOutput{}
		out.Body.Success = true
		out.Body.Token = token
		out.Body.Company = summarize(company)
		return out, nil
	})
}
