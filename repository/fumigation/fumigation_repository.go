package fumigation

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
)

type FumigationRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Fumigation) (uint64, error)
	InsertItemsTx(ctx context.Context, tx *sqlx.Tx, fumigationID uint64, items []model.ConsumeItem) error
	// GetDetailTx re-reads the header row inside the transaction so lifecycle
	// guards see committed state. Returns nil when the record does not exist.
	GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Fumigation, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.FumigationItem, error)
	CompleteTx(ctx context.Context, tx *sqlx.Tx, id uint64, completion *model.FumigationCompletion) error
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.WorkStatus) error

	GetByID(ctx context.Context, id uint64) (*model.Fumigation, error)
	List(ctx context.Context, filter *model.WorkFilter) ([]model.Fumigation, int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewFumigationRepository(conn *sqlx.DB) FumigationRepository {
	return &SQL{conn: conn}
}

const (
	fumigationColumns = `id, status, crop, field_name, applied_by, scheduled_at, finished_at, notes, temperature, humidity, created_at`

	insertFumigationQuery = `INSERT INTO fumigation (status, crop, field_name, applied_by, scheduled_at, created_at)
VALUES (?, ?, ?, ?, ?, NOW())`
)

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Fumigation) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertFumigationQuery,
		data.Status, data.Crop, data.FieldName, data.AppliedBy, data.ScheduledAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertItemsTx(ctx context.Context, tx *sqlx.Tx, fumigationID uint64, items []model.ConsumeItem) error {
	q := "INSERT INTO fumigation_item (fumigation_id, product_id, quantity, unit) VALUES (?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, fumigationID, it.ProductID, it.Quantity, it.Unit); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Fumigation, error) {
	var f model.Fumigation
	err := tx.QueryRowxContext(ctx, "SELECT "+fumigationColumns+" FROM fumigation WHERE id = ? FOR UPDATE", id).StructScan(&f)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.FumigationItem, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT id, fumigation_id, product_id, quantity, unit FROM fumigation_item WHERE fumigation_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FumigationItem, 0)
	for rows.Next() {
		var it model.FumigationItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) CompleteTx(ctx context.Context, tx *sqlx.Tx, id uint64, completion *model.FumigationCompletion) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE fumigation SET status = ?, finished_at = ?, notes = ?, temperature = ?, humidity = ? WHERE id = ?",
		constant.WorkStatusCompleted, completion.FinishedAt, completion.Notes, completion.Temperature, completion.Humidity, id)
	return err
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.WorkStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE fumigation SET status = ? WHERE id = ?", status, id)
	return err
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Fumigation, error) {
	var f model.Fumigation
	err := r.conn.QueryRowxContext(ctx, "SELECT "+fumigationColumns+" FROM fumigation WHERE id = ?", id).StructScan(&f)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.conn.QueryxContext(ctx, "SELECT id, fumigation_id, product_id, quantity, unit FROM fumigation_item WHERE fumigation_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it model.FumigationItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		f.Items = append(f.Items, it)
	}
	return &f, nil
}

func (r *SQL) List(ctx context.Context, filter *model.WorkFilter) ([]model.Fumigation, int64, error) {
	query := "SELECT " + fumigationColumns + " FROM fumigation WHERE true"
	countQuery := "SELECT COUNT(*) FROM fumigation WHERE true"
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

	items := make([]model.Fumigation, 0)
	for rows.Next() {
		var f model.Fumigation
		if err := rows.StructScan(&f); err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}
