package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerforge/careerforge/internal/domain"
)

//go:embed schema.sql
var schema string

type Store struct {
	pool      *pgxpool.Pool
	companies *CompanyRepo
	jobs      *JobRepo
}

// New establishes the process-wide connection pool. The pool is created
// once at startup and shared by every request.
func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:      pool,
		companies: NewCompanyRepo(pool),
		jobs:      NewJobRepo(pool),
	}, nil
}

// Migrate applies the embedded schema. Every statement is idempotent so
// this runs unconditionally at startup.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Companies() domain.CompanyRepository { return s.companies }
func (s *Store) Jobs() domain.JobRepository          { return s.jobs }
