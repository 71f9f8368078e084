package houseawbs

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]HouseAWB, int, error)
	Get(ctx context.Context, id int64) (HouseAWB, error)
	Create(ctx context.Context, h HouseAWB) (HouseAWB, error)
	Update(ctx context.Context, id int64, h HouseAWB) (HouseAWB, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const fromHouses = `
	FROM house_awbs h
	JOIN jobs j ON j.id = h.job_id
	JOIN parties s ON s.id = h.shipper_id
	JOIN parties c ON c.id = h.consignee_id
	LEFT JOIN master_awbs m ON m.id = h.master_id`

const selectHouse = `
	SELECT h.id, h.house_number, h.job_id, j.job_number, h.master_id, COALESCE(m.master_number, ''),
	       h.shipper_id, s.name, h.consignee_id, c.name, h.issue_date, h.status, h.is_active,
	       h.created_at, h.updated_at` + fromHouses

const selectItems = `
	SELECT i.id, i.house_awb_id, i.commodity_id, co.name, i.description, i.quantity, i.unit,
	       i.volume, i.weight, i.package_count, i.package_type, i.value, i.currency
	FROM house_awb_items i
	JOIN commodities co ON co.id = i.commodity_id
	WHERE i.house_awb_id = $1
	ORDER BY i.id`

var sortColumns = map[string]string{
	"house_number":   "h.house_number",
	"job_number":     "j.job_number",
	"master_number":  "m.master_number",
	"shipper_name":   "s.name",
	"consignee_name": "c.name",
	"issue_date":     "h.issue_date",
	"status":         "h.status",
	"created_at":     "h.created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]HouseAWB, int, error) {
	var where shared.Where
	where.Apply(filters, "h.is_active", "h.house_number", "j.job_number", "s.name", "c.name")
	if filters.JobID != nil {
		where.Add("h.job_id = ?", *filters.JobID)
	}
	if filters.Status != "" {
		where.Add("h.status = ?", filters.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+fromHouses+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(selectHouse+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "h.issue_date DESC, h.id"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []HouseAWB
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, rows.Err()
}

// Get loads the house AWB together with its items.
func (r *repository) Get(ctx context.Context, id int64) (HouseAWB, error) {
	h, err := scanHouse(r.pool.QueryRow(ctx, selectHouse+` WHERE h.id = $1`, id))
	if err != nil {
		return HouseAWB{}, err
	}
	rows, err := r.pool.Query(ctx, selectItems, id)
	if err != nil {
		return HouseAWB{}, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Item, error) {
		var it Item
		err := row.Scan(&it.ID, &it.HouseID, &it.CommodityID, &it.CommodityName, &it.Description, &it.Quantity,
			&it.Unit, &it.Volume, &it.Weight, &it.PackageCount, &it.PackageType, &it.Value, &it.Currency)
		return it, err
	})
	if err != nil {
		return HouseAWB{}, err
	}
	h.Items = items
	return h, nil
}

func (r *repository) Create(ctx context.Context, h HouseAWB) (HouseAWB, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO house_awbs (house_number, job_id, master_id, shipper_id, consignee_id, issue_date, status, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			h.HouseNumber, h.JobID, h.MasterID, h.ShipperID, h.ConsigneeID, h.IssueDate, h.Status, h.IsActive).Scan(&id); err != nil {
			return err
		}
		return insertItems(ctx, tx, id, h.Items)
	})
	if err != nil {
		return HouseAWB{}, err
	}
	return r.Get(ctx, id)
}

// Update rewrites the header and replaces every item line.
func (r *repository) Update(ctx context.Context, id int64, h HouseAWB) (HouseAWB, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE house_awbs
			SET house_number = $1, job_id = $2, master_id = $3, shipper_id = $4, consignee_id = $5,
			    issue_date = $6, status = $7, is_active = $8, updated_at = NOW()
			WHERE id = $9`,
			h.HouseNumber, h.JobID, h.MasterID, h.ShipperID, h.ConsigneeID, h.IssueDate, h.Status, h.IsActive, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if _, err := tx.Exec(ctx, `DELETE FROM house_awb_items WHERE house_awb_id = $1`, id); err != nil {
			return err
		}
		return insertItems(ctx, tx, id, h.Items)
	})
	if err != nil {
		return HouseAWB{}, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM house_awb_items WHERE house_awb_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM house_awbs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func insertItems(ctx context.Context, tx pgx.Tx, houseID int64, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO house_awb_items (house_awb_id, commodity_id, description, quantity, unit, volume,
				weight, package_count, package_type, value, currency)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			houseID, it.CommodityID, it.Description, it.Quantity, it.Unit, it.Volume,
			it.Weight, it.PackageCount, it.PackageType, it.Value, it.Currency)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func scanHouse(row pgx.Row) (HouseAWB, error) {
	var h HouseAWB
	err := row.Scan(&h.ID, &h.HouseNumber, &h.JobID, &h.JobNumber, &h.MasterID, &h.MasterNumber,
		&h.ShipperID, &h.ShipperName, &h.ConsigneeID, &h.ConsigneeName, &h.IssueDate, &h.Status, &h.IsActive,
		&h.CreatedAt, &h.UpdatedAt)
	return h, err
}
