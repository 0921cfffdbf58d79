package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/slug"
)

// Sentinel errors for the auth package.
var (
	ErrMissingFields = errors.New("auth: name, email and password are required")
	ErrWeakPassword  = errors.New("auth: password must be at least 8 characters long")
	ErrInvalidSlug   = errors.New("auth: slug may only contain lowercase letters, numbers and hyphens")
)

// Slugs are path segments of public careers URLs.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

const (
	minPasswordLen    = 8
	companySlugMaxLen = 50
)

// Service handles signup and login for companies.
type Service struct {
	companies domain.CompanyRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService creates an auth service. The JWT secret must already be
// validated non-empty by config loading.
func NewService(companies domain.CompanyRepository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		companies: companies,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Signup registers a company and returns it together with an identity token.
// The slug is derived from the name when not supplied. Duplicate email and
// duplicate slug are reported as distinct errors so the caller can name the
// conflicting field.
func (s *Service) Signup(ctx context.Context, name, email, password, companySlug string) (*domain.Company, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("auth.Signup: %w", ErrMissingFields)
	}
	if len(password) < minPasswordLen {
		return nil, "", fmt.Errorf("auth.Signup: %w", ErrWeakPassword)
	}

	if companySlug == "" {
		companySlug = slug.Make(name, companySlugMaxLen)
	} else {
		companySlug = strings.ToLower(strings.TrimSpace(companySlug))
	}
	// Covers both a malformed explicit slug and the empty slug an
	// all-symbol name derives to.
	if !slugPattern.MatchString(companySlug) {
		return nil, "", fmt.Errorf("auth.Signup: %w", ErrInvalidSlug)
	}

	// Pre-flight duplicate checks so the conflicting field can be named.
	// The unique constraints remain the source of truth; Create maps
	// constraint violations to the same sentinels.
	if existing, err := s.companies.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", fmt.Errorf("auth.Signup: %w", domain.ErrEmailTaken)
	}
	if existing, err := s.companies.GetBySlug(ctx, companySlug); err == nil && existing != nil {
		return nil, "", fmt.Errorf("auth.Signup: %w", domain.ErrSlugTaken)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("auth.Signup: %w", err)
	}

	now := time.Now()
	company := &domain.Company{
		ID:           uuid.New(),
		Slug:         companySlug,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Theme:        domain.DefaultTheme(),
		Departments:  domain.DefaultDepartments(),
		Sections: []domain.ContentSection{
			{
				Type:    domain.SectionHero,
				Title:   "Welcome to " + name,
				Content: "Join our team and make a difference",
				Order:   0,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, "", fmt.Errorf("auth.Signup: %w", err)
	}

	token, err := IssueToken(s.jwtSecret, company.ID, company.Email, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("auth.Signup: %w", err)
	}

	return company, token, nil
}

// Login validates credentials and returns the company with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Company, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	company, err := s.companies.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("auth.Login: %w", domain.ErrInvalidCredentials)
	}

	if !VerifyPassword(password, company.PasswordHash) {
		return nil, "", fmt.Errorf("auth.Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := IssueToken(s.jwtSecret, company.ID, company.Email, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("auth.Login: %w", err)
	}

	return company, token, nil
}
