package parties

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Party, int, error)
	Get(ctx context.Context, id int64) (Party, error)
	Create(ctx context.Context, party Party) (Party, error)
	Update(ctx context.Context, id int64, party Party) (Party, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `id, name, short_name, type, billing_address, corporate_address, credit_limit, credit_days,
	tds_rate, tds_applicable, contact_person, phone, email, is_active, created_at, updated_at`

var sortColumns = map[string]string{
	"name":         "name",
	"short_name":   "short_name",
	"type":         "type",
	"credit_limit": "credit_limit",
	"created_at":   "created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Party, int, error) {
	var where shared.Where
	where.Apply(filters, "is_active", "name", "short_name", "contact_person", "email")
	if filters.Type != "" {
		where.Add("type = ?", filters.Type)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parties`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(`SELECT `+columns+` FROM parties`+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "name"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var parties []Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, 0, err
		}
		parties = append(parties, p)
	}
	return parties, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Party, error) {
	return scanParty(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM parties WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, p Party) (Party, error) {
	return scanParty(r.pool.QueryRow(ctx, `
		INSERT INTO parties (name, short_name, type, billing_address, corporate_address, credit_limit, credit_days,
			tds_rate, tds_applicable, contact_person, phone, email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+columns,
		p.Name, p.ShortName, p.Type, p.BillingAddress, p.CorporateAddress, p.CreditLimit, p.CreditDays,
		p.TDSRate, p.TDSApplicable, p.ContactPerson, p.Phone, p.Email, p.IsActive))
}

func (r *repository) Update(ctx context.Context, id int64, p Party) (Party, error) {
	return scanParty(r.pool.QueryRow(ctx, `
		UPDATE parties
		SET name = $1, short_name = $2, type = $3, billing_address = $4, corporate_address = $5, credit_limit = $6,
			credit_days = $7, tds_rate = $8, tds_applicable = $9, contact_person = $10, phone = $11, email = $12,
			is_active = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING `+columns,
		p.Name, p.ShortName, p.Type, p.BillingAddress, p.CorporateAddress, p.CreditLimit, p.CreditDays,
		p.TDSRate, p.TDSApplicable, p.ContactPerson, p.Phone, p.Email, p.IsActive, id))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanParty(row pgx.Row) (Party, error) {
	var p Party
	err := row.Scan(&p.ID, &p.Name, &p.ShortName, &p.Type, &p.BillingAddress, &p.CorporateAddress, &p.CreditLimit,
		&p.CreditDays, &p.TDSRate, &p.TDSApplicable, &p.ContactPerson, &p.Phone, &p.Email, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}
