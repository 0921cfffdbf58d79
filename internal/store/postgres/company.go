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

type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// uniqueViolation maps a unique-constraint error to the sentinel naming the
// conflicting field.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "companies_email_key":
		return domain.ErrEmailTaken
	case "companies_slug_key":
		return domain.ErrSlugTaken
	default:
		return domain.ErrConflict
	}
}

func (r *CompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO companies (id, slug, name, email, password_hash, logo_url, theme, departments, sections, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Slug, c.Name, c.Email, c.PasswordHash, c.LogoURL, c.Theme, c.Departments, c.Sections, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if sentinel := uniqueViolation(err); sentinel != nil {
			return fmt.Errorf("companyRepo.Create: %w", sentinel)
		}
		return fmt.Errorf("companyRepo.Create: %w", err)
	}

	return nil
}

// publicColumns omits password_hash; the hash only leaves the database for
// login lookups.
const publicColumns = `id, slug, name, email, logo_url, theme, departments, sections, created_at, updated_at`

func (r *CompanyRepo) scanPublic(row pgx.Row) (*domain.Company, error) {
	var c domain.Company

	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Email, &c.LogoURL, &c.Theme, &c.Departments, &c.Sections, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	c.SortSections()
	return &c, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	c, err := r.scanPublic(r.pool.QueryRow(ctx,
		`SELECT `+publicColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return c, nil
}

func (r *CompanyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	c, err := r.scanPublic(r.pool.QueryRow(ctx,
		`SELECT `+publicColumns+` FROM companies WHERE slug = $1`, slug))
	if err != nil {
		return nil, fmt.Errorf("companyRepo.GetBySlug: %w", err)
	}
	return c, nil
}

func (r *CompanyRepo) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	var c domain.Company

	err := r.pool.QueryRow(ctx,
		`SELECT id, slug, name, email, password_hash, logo_url, theme, departments, sections, created_at, updated_at
		 FROM companies WHERE email = $1`,
		email,
	).Scan(&c.ID, &c.Slug, &c.Name, &c.Email, &c.PasswordHash, &c.LogoURL, &c.Theme, &c.Departments, &c.Sections, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("companyRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("companyRepo.GetByEmail: %w", err)
	}

	c.SortSections()
	return &c, nil
}

// Update applies the allow-listed patch. Sections are replaced wholesale;
// there is no per-section versioning.
func (r *CompanyRepo) Update(ctx context.Context, id uuid.UUID, patch domain.CompanyUpdate) (*domain.Company, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("companyRepo.Update: %w", err)
	}

	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.LogoURL != nil {
		current.LogoURL = *patch.LogoURL
	}
	if patch.Theme != nil {
		current.Theme = *patch.Theme
		current.Theme.ApplyDefaults()
	}
	if patch.Departments != nil {
		current.Departments = *patch.Departments
	}
	if patch.Sections != nil {
		current.Sections = *patch.Sections
	}
	current.UpdatedAt = time.Now()

	tag, err := r.pool.Exec(ctx,
		`UPDATE companies
		 SET name = $1, logo_url = $2, theme = $3, departments = $4, sections = $5, updated_at = $6
		 WHERE id = $7`,
		current.Name, current.LogoURL, current.Theme, current.Departments, current.Sections, current.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("companyRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("companyRepo.Update: %w", domain.ErrNotFound)
	}

	current.SortSections()
	return current, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+publicColumns+` FROM companies ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("companyRepo.List: %w", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		var c domain.Company

		err = rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Email, &c.LogoURL, &c.Theme, &c.Departments, &c.Sections, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("companyRepo.List: scan: %w", err)
		}

		c.SortSections()
		companies = append(companies, &c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("companyRepo.List: rows: %w", err)
	}

	return companies, nil
}
