package masterawbs

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]MasterAWB, int, error)
	Get(ctx context.Context, id int64) (MasterAWB, error)
	Create(ctx context.Context, m MasterAWB) (MasterAWB, error)
	Update(ctx context.Context, id int64, m MasterAWB) (MasterAWB, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const fromMasters = `
	FROM master_awbs m
	JOIN jobs j ON j.id = m.job_id
	JOIN carriers c ON c.id = m.carrier_id`

const selectMaster = `
	SELECT m.id, m.master_number, m.job_id, j.job_number, m.carrier_id, c.name,
	       m.issue_date, m.status, m.is_active, m.created_at, m.updated_at` + fromMasters

var sortColumns = map[string]string{
	"master_number": "m.master_number",
	"job_number":    "j.job_number",
	"carrier_name":  "c.name",
	"issue_date":    "m.issue_date",
	"status":        "m.status",
	"created_at":    "m.created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]MasterAWB, int, error) {
	var where shared.Where
	where.Apply(filters, "m.is_active", "m.master_number", "j.job_number", "c.name")
	if filters.JobID != nil {
		where.Add("m.job_id = ?", *filters.JobID)
	}
	if filters.Status != "" {
		where.Add("m.status = ?", filters.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+fromMasters+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(selectMaster+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "m.issue_date DESC, m.id"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []MasterAWB
	for rows.Next() {
		m, err := scanMaster(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (MasterAWB, error) {
	return scanMaster(r.pool.QueryRow(ctx, selectMaster+` WHERE m.id = $1`, id))
}

func (r *repository) Create(ctx context.Context, m MasterAWB) (MasterAWB, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO master_awbs (master_number, job_id, carrier_id, issue_date, status, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		m.MasterNumber, m.JobID, m.CarrierID, m.IssueDate, m.Status, m.IsActive).Scan(&id)
	if err != nil {
		return MasterAWB{}, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, m MasterAWB) (MasterAWB, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE master_awbs
		SET master_number = $1, job_id = $2, carrier_id = $3, issue_date = $4, status = $5,
		    is_active = $6, updated_at = NOW()
		WHERE id = $7`,
		m.MasterNumber, m.JobID, m.CarrierID, m.IssueDate, m.Status, m.IsActive, id)
	if err != nil {
		return MasterAWB{}, err
	}
	if tag.RowsAffected() == 0 {
		return MasterAWB{}, pgx.ErrNoRows
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM master_awbs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMaster(row pgx.Row) (MasterAWB, error) {
	var m MasterAWB
	err := row.Scan(&m.ID, &m.MasterNumber, &m.JobID, &m.JobNumber, &m.CarrierID, &m.CarrierName,
		&m.IssueDate, &m.Status, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
