package carriers

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Carrier, int, error)
	Get(ctx context.Context, id int64) (Carrier, error)
	Create(ctx context.Context, carrier Carrier) (Carrier, error)
	Update(ctx context.Context, id int64, carrier Carrier) (Carrier, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `id, name, code, type, contact_person, email, phone, is_active, created_at, updated_at`

var sortColumns = map[string]string{
	"name":           "name",
	"code":           "code",
	"type":           "type",
	"contact_person": "contact_person",
	"created_at":     "created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Carrier, int, error) {
	var where shared.Where
	where.Apply(filters, "is_active", "name", "code", "contact_person")
	if filters.Type != "" {
		where.Add("type = ?", filters.Type)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM carriers`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(`SELECT `+columns+` FROM carriers`+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "name"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var carriers []Carrier
	for rows.Next() {
		c, err := scanCarrier(rows)
		if err != nil {
			return nil, 0, err
		}
		carriers = append(carriers, c)
	}
	return carriers, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Carrier, error) {
	return scanCarrier(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM carriers WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, c Carrier) (Carrier, error) {
	return scanCarrier(r.pool.QueryRow(ctx, `
		INSERT INTO carriers (name, code, type, contact_person, email, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+columns,
		c.Name, c.Code, c.Type, c.ContactPerson, c.Email, c.Phone, c.IsActive))
}

func (r *repository) Update(ctx context.Context, id int64, c Carrier) (Carrier, error) {
	return scanCarrier(r.pool.QueryRow(ctx, `
		UPDATE carriers
		SET name = $1, code = $2, type = $3, contact_person = $4, email = $5, phone = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+columns,
		c.Name, c.Code, c.Type, c.ContactPerson, c.Email, c.Phone, c.IsActive, id))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM carriers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCarrier(row pgx.Row) (Carrier, error) {
	var c Carrier
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Type, &c.ContactPerson, &c.Email, &c.Phone, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
