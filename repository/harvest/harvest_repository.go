package harvest

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
)

type HarvestRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Harvest) (uint64, error)
	InsertConsumedItemsTx(ctx context.Context, tx *sqlx.Tx, harvestID uint64, items []model.ConsumeItem) error
	InsertHarvestedItemsTx(ctx context.Context, tx *sqlx.Tx, harvestID uint64, items []model.HarvestedItem) error
	GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Harvest, error)
	GetConsumedItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.HarvestItem, error)
	CompleteTx(ctx context.Context, tx *sqlx.Tx, id uint64, completion *model.HarvestCompletion) error
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.WorkStatus) error

	GetByID(ctx context.Context, id uint64) (*model.Harvest, error)
	List(ctx context.Context, filter *model.WorkFilter) ([]model.Harvest, int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewHarvestRepository(conn *sqlx.DB) HarvestRepository {
	return &SQL{conn: conn}
}

const (
	harvestColumns = `id, status, crop, field_name, target_warehouse_id, planned_by, planned_at, finished_at, notes, actual_yield, created_at`

	insertHarvestQuery = `INSERT INTO harvest (status, crop, field_name, target_warehouse_id, planned_by, planned_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, NOW())`
)

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Harvest) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertHarvestQuery,
		data.Status, data.Crop, data.FieldName, data.TargetWarehouseID, data.PlannedBy, data.PlannedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertConsumedItemsTx(ctx context.Context, tx *sqlx.Tx, harvestID uint64, items []model.ConsumeItem) error {
	q := "INSERT INTO harvest_item (harvest_id, product_id, quantity, unit) VALUES (?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, harvestID, it.ProductID, it.Quantity, it.Unit); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) InsertHarvestedItemsTx(ctx context.Context, tx *sqlx.Tx, harvestID uint64, items []model.HarvestedItem) error {
	q := "INSERT INTO harvested_item (harvest_id, product_id, name, quantity, unit) VALUES (?, ?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, harvestID, it.ProductID, it.Name, it.Quantity, it.Unit); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Harvest, error) {
	var h model.Harvest
	err := tx.QueryRowxContext(ctx, "SELECT "+harvestColumns+" FROM harvest WHERE id = ? FOR UPDATE", id).StructScan(&h)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *SQL) GetConsumedItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.HarvestItem, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT id, harvest_id, product_id, quantity, unit FROM harvest_item WHERE harvest_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.HarvestItem, 0)
	for rows.Next() {
		var it model.HarvestItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) CompleteTx(ctx context.Context, tx *sqlx.Tx, id uint64, completion *model.HarvestCompletion) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE harvest SET status = ?, finished_at = ?, notes = ?, actual_yield = ? WHERE id = ?",
		constant.WorkStatusCompleted, completion.FinishedAt, completion.Notes, completion.ActualYield, id)
	return err
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.WorkStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE harvest SET status = ? WHERE id = ?", status, id)
	return err
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Harvest, error) {
	var h model.Harvest
	err := r.conn.QueryRowxContext(ctx, "SELECT "+harvestColumns+" FROM harvest WHERE id = ?", id).StructScan(&h)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.conn.QueryxContext(ctx, "SELECT id, harvest_id, product_id, quantity, unit FROM harvest_item WHERE harvest_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.HarvestItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		h.ConsumedItems = append(h.ConsumedItems, it)
	}

	hrows, err := r.conn.QueryxContext(ctx, "SELECT id, harvest_id, product_id, name, quantity, unit FROM harvested_item WHERE harvest_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer hrows.Close()
	for hrows.Next() {
		var it model.HarvestedItem
		if err := hrows.StructScan(&it); err != nil {
			return nil, err
		}
		h.HarvestedItems = append(h.HarvestedItems, it)
	}

	return &h, nil
}

func (r *SQL) List(ctx context.Context, filter *model.WorkFilter) ([]model.Harvest, int64, error) {
	query := "SELECT " + harvestColumns + " FROM harvest WHERE true"
	countQuery := "SELECT COUNT(*) FROM harvest WHERE true"
	args := make([]any, 0, 1)

	if filter.Status != "" {
		query += " AND status = ?"
		countQuery += " AND status = ?"
		args = append(args, filter.Status)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PerPage, offset)

	rows, err := r.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.Harvest, 0)
	for rows.Next() {
		var h model.Harvest
		if err := rows.StructScan(&h); err != nil {
			return nil, 0, err
		}
		items = append(items, h)
	}
	return items, total, nil
}
