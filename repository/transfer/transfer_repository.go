package transfer

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
)

type TransferRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Transfer) (uint64, error)
	InsertItemsTx(ctx context.Context, tx *sqlx.Tx, transferID uint64, items []model.ConsumeItem) error
	GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Transfer, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.TransferItem, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.TransferStatus) error
	// SetActorTx records who performed a lifecycle step and when. The column
	// pair is chosen by the target status (approved/shipped/received).
	SetActorTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.TransferStatus, userID uint64, at time.Time) error
	SetReceivedQuantityTx(ctx context.Context, tx *sqlx.Tx, transferID, productID uint64, quantity float64) error

	GetByID(ctx context.Context, id uint64) (*model.Transfer, error)
	List(ctx context.Context, filter *model.TransferFilter) ([]model.Transfer, int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewTransferRepository(conn *sqlx.DB) TransferRepository {
	return &SQL{conn: conn}
}

const transferColumns = `id, status, source_warehouse_id, target_warehouse_id, requested_by, approved_by, shipped_by, received_by, approved_at, shipped_at, received_at, created_at`

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Transfer) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO transfer (status, source_warehouse_id, target_warehouse_id, requested_by, created_at) VALUES (?, ?, ?, ?, NOW())",
		data.Status, data.SourceWarehouseID, data.TargetWarehouseID, data.RequestedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertItemsTx(ctx context.Context, tx *sqlx.Tx, transferID uint64, items []model.ConsumeItem) error {
	q := "INSERT INTO transfer_item (transfer_id, product_id, quantity) VALUES (?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, transferID, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Transfer, error) {
	var t model.Transfer
	err := tx.QueryRowxContext(ctx, "SELECT "+transferColumns+" FROM transfer WHERE id = ? FOR UPDATE", id).StructScan(&t)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.TransferItem, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT id, transfer_id, product_id, quantity, received_quantity FROM transfer_item WHERE transfer_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TransferItem, 0)
	for rows.Next() {
		var it model.TransferItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.TransferStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE transfer SET status = ? WHERE id = ?", status, id)
	return err
}

func (r *SQL) SetActorTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.TransferStatus, userID uint64, at time.Time) error {
	var q string
	switch status {
	case constant.TransferStatusApproved, constant.TransferStatusRejected:
		q = "UPDATE transfer SET approved_by = ?, approved_at = ? WHERE id = ?"
	case constant.TransferStatusShipped:
		q = "UPDATE transfer SET shipped_by = ?, shipped_at = ? WHERE id = ?"
	case constant.TransferStatusCompleted:
		q = "UPDATE transfer SET received_by = ?, received_at = ? WHERE id = ?"
	default:
		return nil
	}
	_, err := tx.ExecContext(ctx, q, userID, at, id)
	return err
}

func (r *SQL) SetReceivedQuantityTx(ctx context.Context, tx *sqlx.Tx, transferID, productID uint64, quantity float64) error {
	_, err := tx.ExecContext(ctx, "UPDATE transfer_item SET received_quantity = ? WHERE transfer_id = ? AND product_id = ?",
		quantity, transferID, productID)
	return err
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Transfer, error) {
	var t model.Transfer
	err := r.conn.QueryRowxContext(ctx, "SELECT "+transferColumns+" FROM transfer WHERE id = ?", id).StructScan(&t)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.conn.QueryxContext(ctx, "SELECT id, transfer_id, product_id, quantity, received_quantity FROM transfer_item WHERE transfer_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.TransferItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		t.Items = append(t.Items, it)
	}
	return &t, nil
}

func (r *SQL) List(ctx context.Context, filter *model.TransferFilter) ([]model.Transfer, int64, error) {
	query := "SELECT " + transferColumns + " FROM transfer WHERE true"
	countQuery := "SELECT COUNT(*) FROM transfer WHERE true"
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

	items := make([]model.Transfer, 0)
	for rows.Next() {
		var t model.Transfer
		if err := rows.StructScan(&t); err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, nil
}
