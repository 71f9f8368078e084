package jobs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Job, int, error)
	Get(ctx context.Context, id int64) (Job, error)
	Create(ctx context.Context, job Job) (Job, error)
	Update(ctx context.Context, id int64, job Job) (Job, error)
	UpdateStatus(ctx context.Context, id int64, status string, closedAt *time.Time) (Job, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const fromJobs = `
	FROM jobs j
	LEFT JOIN parties sh ON sh.id = j.shipper_id
	LEFT JOIN parties cn ON cn.id = j.consignee_id
	LEFT JOIN carriers ca ON ca.id = j.carrier_id
	LEFT JOIN ports_airports op ON op.id = j.origin_port_id
	LEFT JOIN ports_airports dp ON dp.id = j.destination_port_id`

const selectJob = `
	SELECT j.id, j.job_number, j.job_type,
		j.shipper_id, COALESCE(sh.name, ''), j.consignee_id, COALESCE(cn.name, ''), j.notify_party_id,
		j.carrier_id, COALESCE(ca.name, ''), j.origin_port_id, COALESCE(op.name, ''),
		j.destination_port_id, COALESCE(dp.name, ''), j.loading_port_id, j.discharge_port_id, j.sales_person_id,
		j.job_date, j.status, j.gross_weight, j.chargeable_weight, j.package_count, j.eta, j.etd, j.closed_date,
		j.is_active, j.created_at, j.updated_at` + fromJobs

var sortColumns = map[string]string{
	"job_number":     "j.job_number",
	"job_date":       "j.job_date",
	"job_type":       "j.job_type",
	"status":         "j.status",
	"shipper_name":   "sh.name",
	"consignee_name": "cn.name",
	"created_at":     "j.created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Job, int, error) {
	var where shared.Where
	where.Apply(filters, "j.is_active", "j.job_number", "sh.name", "cn.name")
	if filters.Status != "" {
		where.Add("j.status = ?", filters.Status)
	}
	if filters.Type != "" {
		where.Add("j.job_type = ?", filters.Type)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+fromJobs+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(selectJob+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "j.created_at"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Job, error) {
	return scanJob(r.pool.QueryRow(ctx, selectJob+` WHERE j.id = $1`, id))
}

func (r *repository) Create(ctx context.Context, j Job) (Job, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (job_number, job_type, shipper_id, consignee_id, notify_party_id, carrier_id,
			origin_port_id, destination_port_id, loading_port_id, discharge_port_id, sales_person_id,
			job_date, status, gross_weight, chargeable_weight, package_count, eta, etd, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`,
		j.JobNumber, j.JobType, j.ShipperID, j.ConsigneeID, j.NotifyPartyID, j.CarrierID,
		j.OriginPortID, j.DestinationPortID, j.LoadingPortID, j.DischargePortID, j.SalesPersonID,
		j.JobDate, j.Status, j.GrossWeight, j.ChargeableWeight, j.PackageCount, j.ETA, j.ETD, j.IsActive).Scan(&id)
	if err != nil {
		return Job{}, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, j Job) (Job, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET job_number = $1, job_type = $2, shipper_id = $3, consignee_id = $4, notify_party_id = $5, carrier_id = $6,
			origin_port_id = $7, destination_port_id = $8, loading_port_id = $9, discharge_port_id = $10,
			sales_person_id = $11, job_date = $12, status = $13, gross_weight = $14, chargeable_weight = $15,
			package_count = $16, eta = $17, etd = $18, closed_date = $19, is_active = $20, updated_at = NOW()
		WHERE id = $21`,
		j.JobNumber, j.JobType, j.ShipperID, j.ConsigneeID, j.NotifyPartyID, j.CarrierID,
		j.OriginPortID, j.DestinationPortID, j.LoadingPortID, j.DischargePortID,
		j.SalesPersonID, j.JobDate, j.Status, j.GrossWeight, j.ChargeableWeight,
		j.PackageCount, j.ETA, j.ETD, j.ClosedDate, j.IsActive, id)
	if err != nil {
		return Job{}, err
	}
	if tag.RowsAffected() == 0 {
		return Job{}, pgx.ErrNoRows
	}
	return r.Get(ctx, id)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string, closedAt *time.Time) (Job, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE jobs SET status = $1, closed_date = $2, updated_at = NOW() WHERE id = $3`, status, closedAt, id)
	if err != nil {
		return Job{}, err
	}
	if tag.RowsAffected() == 0 {
		return Job{}, pgx.ErrNoRows
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanJob(row pgx.Row) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.JobNumber, &j.JobType,
		&j.ShipperID, &j.ShipperName, &j.ConsigneeID, &j.ConsigneeName, &j.NotifyPartyID,
		&j.CarrierID, &j.CarrierName, &j.OriginPortID, &j.OriginPortName,
		&j.DestinationPortID, &j.DestinationPortName, &j.LoadingPortID, &j.DischargePortID, &j.SalesPersonID,
		&j.JobDate, &j.Status, &j.GrossWeight, &j.ChargeableWeight, &j.PackageCount, &j.ETA, &j.ETD, &j.ClosedDate,
		&j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}
