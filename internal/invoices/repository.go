package invoices

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/db"
)

// Repository defines data access for invoices.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	List(ctx context.Context) ([]InvoiceSummary, error)
	GetWithCompany(ctx context.Context, id int64) (*InvoiceWithCompany, error)
	GetPaymentState(ctx context.Context, id int64) (PaymentState, error)
	Create(ctx context.Context, input CreateInvoiceInput) (*Invoice, error)
	UpdatePayment(ctx context.Context, id int64, amt float64, state PaymentState) (*Invoice, error)
	Delete(ctx context.Context, id int64) error
	ListIDsByCompany(ctx context.Context, code string) ([]int64, error)
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) List(ctx context.Context) ([]InvoiceSummary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, comp_code FROM invoices ORDER BY id`)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var out []InvoiceSummary
	for rows.Next() {
		var s InvoiceSummary
		if err := rows.Scan(&s.ID, &s.CompCode); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) GetWithCompany(ctx context.Context, id int64) (*InvoiceWithCompany, error) {
	query := `
		SELECT i.id, i.comp_code, i.amt, i.paid, i.add_date, i.paid_date,
			c.name, c.description
		FROM invoices AS i
		JOIN companies AS c ON i.comp_code = c.code
		WHERE i.id = $1`

	var inv InvoiceWithCompany
	var paidDate pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompCode, &inv.Amt, &inv.Paid, &inv.AddDate, &paidDate,
		&inv.Company.Name, &inv.Company.Description,
	)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if paidDate.Valid {
		inv.PaidDate = &paidDate.Time
	}
	inv.Company.Code = inv.CompCode
	return &inv, nil
}

func (r *repository) GetPaymentState(ctx context.Context, id int64) (PaymentState, error) {
	var paid bool
	var paidDate pgtype.Timestamptz
	err := r.db.QueryRow(ctx, `SELECT paid, paid_date FROM invoices WHERE id = $1`, id).
		Scan(&paid, &paidDate)
	if err != nil {
		return PaymentState{}, db.TranslateError(err)
	}
	var since *time.Time
	if paidDate.Valid {
		since = &paidDate.Time
	}
	return StateOf(paid, since), nil
}

func (r *repository) Create(ctx context.Context, input CreateInvoiceInput) (*Invoice, error) {
	query := `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING id, comp_code, amt, paid, add_date, paid_date`

	return r.scanInvoice(r.db.QueryRow(ctx, query, input.CompCode, input.Amt))
}

func (r *repository) UpdatePayment(ctx context.Context, id int64, amt float64, state PaymentState) (*Invoice, error) {
	query := `
		UPDATE invoices
		SET amt = $2, paid = $3, paid_date = $4
		WHERE id = $1
		RETURNING id, comp_code, amt, paid, add_date, paid_date`

	var paidDate pgtype.Timestamptz
	if d := state.PaidDate(); d != nil {
		paidDate = pgtype.Timestamptz{Time: *d, Valid: true}
	}
	return r.scanInvoice(r.db.QueryRow(ctx, query, id, amt, state.Paid(), paidDate))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *repository) ListIDsByCompany(ctx context.Context, code string) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM invoices WHERE comp_code = $1 ORDER BY id`, code)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repository) scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var paidDate pgtype.Timestamptz
	err := row.Scan(&inv.ID, &inv.CompCode, &inv.Amt, &inv.Paid, &inv.AddDate, &paidDate)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if paidDate.Valid {
		inv.PaidDate = &paidDate.Time
	}
	return &inv, nil
}
