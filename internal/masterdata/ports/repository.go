package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Port, int, error)
	Get(ctx context.Context, id int64) (Port, error)
	Create(ctx context.Context, port Port) (Port, error)
	Update(ctx context.Context, id int64, port Port) (Port, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const (
	fromPorts  = ` FROM ports_airports p JOIN cities ci ON ci.id = p.city_id`
	selectPort = `SELECT p.id, p.name, p.code, p.type, p.city_id, ci.name, p.is_active, p.created_at, p.updated_at` + fromPorts
)

var sortColumns = map[string]string{
	"name":      "p.name",
	"code":      "p.code",
	"type":      "p.type",
	"city_name": "ci.name",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Port, int, error) {
	var where shared.Where
	where.Apply(filters, "p.is_active", "p.name", "p.code")
	if filters.Type != "" {
		where.Add("p.type = ?", filters.Type)
	}
	if filters.CityID != nil {
		where.Add("p.city_id = ?", *filters.CityID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+fromPorts+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(selectPort+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "p.name"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ports []Port
	for rows.Next() {
		p, err := scanPort(rows)
		if err != nil {
			return nil, 0, err
		}
		ports = append(ports, p)
	}
	return ports, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Port, error) {
	return scanPort(r.pool.QueryRow(ctx, selectPort+` WHERE p.id = $1`, id))
}

func (r *repository) Create(ctx context.Context, p Port) (Port, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO ports_airports (name, code, type, city_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.Name, p.Code, p.Type, p.CityID, p.IsActive).Scan(&id)
	if err != nil {
		return Port{}, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, p Port) (Port, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE ports_airports SET name = $1, code = $2, type = $3, city_id = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6`,
		p.Name, p.Code, p.Type, p.CityID, p.IsActive, id)
	if err != nil {
		return Port{}, err
	}
	if tag.RowsAffected() == 0 {
		return Port{}, pgx.ErrNoRows
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ports_airports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanPort(row pgx.Row) (Port, error) {
	var p Port
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Type, &p.CityID, &p.CityName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
