package countries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Country, int, error)
	Get(ctx context.Context, id int64) (Country, error)
	Create(ctx context.Context, country Country) (Country, error)
	Update(ctx context.Context, id int64, country Country) (Country, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `id, name, code, capital, currency, language, is_active, created_at, updated_at`

var sortColumns = map[string]string{
	"name":       "name",
	"code":       "code",
	"capital":    "capital",
	"currency":   "currency",
	"created_at": "created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Country, int, error) {
	var where shared.Where
	where.Apply(filters, "is_active", "name", "code", "capital")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM countries`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + columns + ` FROM countries` + where.SQL() + shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "name")
	query, args := where.Paginate(query, filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var countries []Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, 0, err
		}
		countries = append(countries, c)
	}
	return countries, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Country, error) {
	return scanCountry(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM countries WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, c Country) (Country, error) {
	return scanCountry(r.pool.QueryRow(ctx, `
		INSERT INTO countries (name, code, capital, currency, language, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+columns,
		c.Name, c.Code, c.Capital, c.Currency, c.Language, c.IsActive))
}

func (r *repository) Update(ctx context.Context, id int64, c Country) (Country, error) {
	return scanCountry(r.pool.QueryRow(ctx, `
		UPDATE countries
		SET name = $1, code = $2, capital = $3, currency = $4, language = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+columns,
		c.Name, c.Code, c.Capital, c.Currency, c.Language, c.IsActive, id))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCountry(row pgx.Row) (Country, error) {
	var c Country
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Capital, &c.Currency, &c.Language, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
