package commodities

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Commodity, int, error)
	Get(ctx context.Context, id int64) (Commodity, error)
	Create(ctx context.Context, commodity Commodity) (Commodity, error)
	Update(ctx context.Context, id int64, commodity Commodity) (Commodity, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `id, name, code, category, description, is_active, created_at, updated_at`

var sortColumns = map[string]string{
	"name":     "name",
	"code":     "code",
	"category": "category",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Commodity, int, error) {
	var where shared.Where
	where.Apply(filters, "is_active", "name", "code", "category")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM commodities`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(`SELECT `+columns+` FROM commodities`+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "name"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []Commodity
	for rows.Next() {
		c, err := scanCommodity(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Commodity, error) {
	return scanCommodity(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM commodities WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, c Commodity) (Commodity, error) {
	return scanCommodity(r.pool.QueryRow(ctx, `
		INSERT INTO commodities (name, code, category, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+columns,
		c.Name, c.Code, c.Category, c.Description, c.IsActive))
}

func (r *repository) Update(ctx context.Context, id int64, c Commodity) (Commodity, error) {
	return scanCommodity(r.pool.QueryRow(ctx, `
		UPDATE commodities
		SET name = $1, code = $2, category = $3, description = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+columns,
		c.Name, c.Code, c.Category, c.Description, c.IsActive, id))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM commodities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCommodity(row pgx.Row) (Commodity, error) {
	var c Commodity
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Category, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
