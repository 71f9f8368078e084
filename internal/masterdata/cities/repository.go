package cities

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]City, int, error)
	Get(ctx context.Context, id int64) (City, error)
	Create(ctx context.Context, city City) (City, error)
	Update(ctx context.Context, id int64, city City) (City, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectCity = `
	SELECT ci.id, ci.name, ci.code, ci.country_id, co.name, ci.is_active, ci.created_at, ci.updated_at
	FROM cities ci
	JOIN countries co ON co.id = ci.country_id`

var sortColumns = map[string]string{
	"name":         "ci.name",
	"code":         "ci.code",
	"country_name": "co.name",
	"created_at":   "ci.created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]City, int, error) {
	var where shared.Where
	where.Apply(filters, "ci.is_active", "ci.name", "ci.code")
	if filters.CountryID != nil {
		where.Add("ci.country_id = ?", *filters.CountryID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM cities ci JOIN countries co ON co.id = ci.country_id` + where.SQL()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(selectCity+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "ci.name"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, 0, err
		}
		cities = append(cities, c)
	}
	return cities, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (City, error) {
	return scanCity(r.pool.QueryRow(ctx, selectCity+` WHERE ci.id = $1`, id))
}

func (r *repository) Create(ctx context.Context, c City) (City, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cities (name, code, country_id, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.Name, c.Code, c.CountryID, c.IsActive).Scan(&id)
	if err != nil {
		return City{}, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, c City) (City, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cities SET name = $1, code = $2, country_id = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5`,
		c.Name, c.Code, c.CountryID, c.IsActive, id)
	if err != nil {
		return City{}, err
	}
	if tag.RowsAffected() == 0 {
		return City{}, pgx.ErrNoRows
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCity(row pgx.Row) (City, error) {
	var c City
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CountryID, &c.CountryName, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
