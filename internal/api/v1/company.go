package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/server/middleware"
)

// PublicProfile is the client-visible shape of a company. The password hash
// never appears here and the email is withheld from public lookups.
type PublicProfile struct {
	ID          uuid.UUID               `json:"id"`
	Slug        string                  `json:"slug"`
	Name        string                  `json:"name"`
	LogoURL     string                  `json:"logo_url"`
	Theme       domain.Theme            `json:"theme"`
	Departments []string                `json:"departments"`
	Sections    []domain.ContentSection `json:"content_sections"`
}

func publicProfile(c *domain.Company) PublicProfile {
	c.SortSections()
	return PublicProfile{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		LogoURL:     c.LogoURL,
		Theme:       c.Theme,
		Departments: c.Departments,
		Sections:    c.Sections,
	}
}

type GetCompanyInput struct {
	Slug string `path:"slug" doc:"Company slug"`
}

type CompanyOutput struct {
	Body struct {
		Success bool          `json:"success"`
		Company PublicProfile `json:"company"`
	}
}

type UpdateCompanyInput struct {
	Body struct {
		Name        *string                  `json:"name,omitempty"`
		LogoURL     *string                  `json:"logo_url,omitempty"`
		Theme       *domain.Theme            `json:"theme,omitempty"`
		Departments *[]string                `json:"departments,omitempty"`
		Sections    *[]domain.ContentSection `json:"content_sections,omitempty"`
	}
}

func RegisterPublicCompanyRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-company",
		Method:      http.MethodGet,
		Path:        "/company/{slug}",
		Summary:     "Fetch a company's public profile",
		Tags:        []string{"Company"},
	}, func(ctx context.Context, input *GetCompanyInput) (*CompanyOutput, error) {
		company, err := store.Companies().GetBySlug(ctx, input.Slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("company not found")
			}
			return nil, huma.Error500InternalServerError("failed to look up company")
		}

		out := &CompanyOutput{}
		out.Body.Success = true
		out.Body.Company = publicProfile(company)
		return out, nil
	})
}

func RegisterCompanyRoutes(api huma.API, store DataStore, cache PageInvalidator) {
	huma.Register(api, huma.Operation{
		OperationID: "update-company",
		Method:      http.MethodPut,
		Path:        "/company/update",
		Summary:     "Update the authenticated company's profile",
		Tags:        []string{"Company"},
	}, func(ctx context.Context, input *UpdateCompanyInput) (*CompanyOutput, error) {
		companyID, ok := middleware.CompanyIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		// Email, slug, password and id are not representable in the input
		// schema, so a patch can never touch them.
		patch := domain.CompanyUpdate{
			Name:        input.Body.Name,
			LogoURL:     input.Body.LogoURL,
			Theme:       input.Body.Theme,
			Departments: input.Body.Departments,
			Sections:    input.Body.Sections,
		}

		company, err := store.Companies().Update(ctx, companyID, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("company not found")
			}
			return nil, huma.Error500InternalServerError("failed to update company")
		}

		if cache != nil {
			if invErr := cache.InvalidateCompany(ctx, company.Slug); invErr != nil {
				log.Warn().Err(invErr).Str("company", company.Slug).Msg("page cache invalidation failed")
			}
		}

		out := &CompanyOutput{}
		out.Body.Success = true
		out.Body.Company = publicProfile(company)
		return out, nil
	})
}
