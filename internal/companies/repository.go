package companies

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/db"
)

// Repository defines data access for companies.
type Repository interface {
	List(ctx context.Context) ([]CompanySummary, error)
	Get(ctx context.Context, code string) (*Company, error)
	Create(ctx context.Context, company Company) (*Company, error)
	Update(ctx context.Context, code string, input CompanyInput) (*Company, error)
	Delete(ctx context.Context, code string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]CompanySummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT code, name FROM companies ORDER BY name`)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var out []CompanySummary
	for rows.Next() {
		var c CompanySummary
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, code string) (*Company, error) {
	var c Company
	err := r.pool.QueryRow(ctx,
		`SELECT code, name, description FROM companies WHERE code = $1`, code).
		Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, company Company) (*Company, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description`,
		company.Code, company.Name, company.Description).
		Scan(&company.Code, &company.Name, &company.Description)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &company, nil
}

func (r *repository) Update(ctx context.Context, code string, input CompanyInput) (*Company, error) {
	var c Company
	err := r.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $2, description = $3
		WHERE code = $1
		RETURNING code, name, description`,
		code, input.Name, input.Description).
		Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE code = $1`, code)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError(pgx.ErrNoRows)
	}
	return nil
}
