package purchase

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
)

type PurchaseRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Purchase) (uint64, error)
	InsertItemsTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64, items []model.PurchaseItemRequest) error
	GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Purchase, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.PurchaseItem, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.PurchaseStatus) error
	SetApproverTx(ctx context.Context, tx *sqlx.Tx, id, userID uint64) error

	InsertDeliveryTx(ctx context.Context, tx *sqlx.Tx, data *model.PurchaseDelivery) (uint64, error)
	InsertDeliveryItemsTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64, items []model.DeliveryItemRequest) error
	GetDeliveryDetailTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64) (*model.PurchaseDelivery, error)
	GetDeliveryItemsTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64) ([]model.DeliveryItem, error)
	UpdateDeliveryStatusTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64, status constant.DeliveryStatus, receivedAt *time.Time) error

	// GetDeliverySummariesTx aggregates every non-cancelled delivery of the
	// purchase; the caller derives the purchase status from the result.
	GetDeliverySummariesTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64) ([]model.DeliverySummary, error)
	// GetDeliveredByItemTx sums delivery quantities per purchase item across
	// in-transit and completed deliveries, used to cap new deliveries.
	GetDeliveredByItemTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64) (map[uint64]float64, error)
	GetOrderedQuantityTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64) (float64, error)

	GetByID(ctx context.Context, id uint64) (*model.Purchase, error)
	List(ctx context.Context, filter *model.PurchaseFilter) ([]model.Purchase, int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewPurchaseRepository(conn *sqlx.DB) PurchaseRepository {
	return &SQL{conn: conn}
}

const (
	purchaseColumns = `id, status, supplier, requested_by, approved_by, created_at`
	deliveryColumns = `id, purchase_id, status, warehouse_id, notes, received_at, created_at`
)

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Purchase) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO purchase (status, supplier, requested_by, created_at) VALUES (?, ?, ?, NOW())",
		data.Status, data.Supplier, data.RequestedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertItemsTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64, items []model.PurchaseItemRequest) error {
	q := "INSERT INTO purchase_item (purchase_id, name, category, unit, quantity, unit_cost) VALUES (?, ?, ?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, purchaseID, it.Name, it.Category, it.Unit, it.Quantity, it.UnitCost); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetDetailTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Purchase, error) {
	var p model.Purchase
	err := tx.QueryRowxContext(ctx, "SELECT "+purchaseColumns+" FROM purchase WHERE id = ? FOR UPDATE", id).StructScan(&p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, id uint64) ([]model.PurchaseItem, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT id, purchase_id, name, category, unit, quantity, unit_cost FROM purchase_item WHERE purchase_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PurchaseItem, 0)
	for rows.Next() {
		var it model.PurchaseItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.PurchaseStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE purchase SET status = ? WHERE id = ?", status, id)
	return err
}

func (r *SQL) SetApproverTx(ctx context.Context, tx *sqlx.Tx, id, userID uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE purchase SET approved_by = ? WHERE id = ?", userID, id)
	return err
}

func (r *SQL) InsertDeliveryTx(ctx context.Context, tx *sqlx.Tx, data *model.PurchaseDelivery) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO purchase_delivery (purchase_id, status, warehouse_id, notes, created_at) VALUES (?, ?, ?, ?, NOW())",
		data.PurchaseID, data.Status, data.WarehouseID, data.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertDeliveryItemsTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64, items []model.DeliveryItemRequest) error {
	q := "INSERT INTO delivery_item (delivery_id, purchase_item_id, quantity) VALUES (?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, deliveryID, it.PurchaseItemID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetDeliveryDetailTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64) (*model.PurchaseDelivery, error) {
	var d model.PurchaseDelivery
	err := tx.QueryRowxContext(ctx, "SELECT "+deliveryColumns+" FROM purchase_delivery WHERE id = ? FOR UPDATE", deliveryID).StructScan(&d)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQL) GetDeliveryItemsTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64) ([]model.DeliveryItem, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT id, delivery_id, purchase_item_id, quantity FROM delivery_item WHERE delivery_id = ? ORDER BY id", deliveryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DeliveryItem, 0)
	for rows.Next() {
		var it model.DeliveryItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) UpdateDeliveryStatusTx(ctx context.Context, tx *sqlx.Tx, deliveryID uint64, status constant.DeliveryStatus, receivedAt *time.Time) error {
	_, err := tx.ExecContext(ctx, "UPDATE purchase_delivery SET status = ?, received_at = ? WHERE id = ?", status, receivedAt, deliveryID)
	return err
}

func (r *SQL) GetDeliverySummariesTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64) ([]model.DeliverySummary, error) {
	q := `SELECT d.id, d.status, COALESCE(SUM(di.quantity), 0) AS total_quantity
FROM purchase_delivery d
LEFT JOIN delivery_item di ON di.delivery_id = d.id
WHERE d.purchase_id = ? AND d.status != ?
GROUP BY d.id, d.status`
	rows, err := tx.QueryxContext(ctx, q, purchaseID, constant.DeliveryStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DeliverySummary, 0)
	for rows.Next() {
		var it model.DeliverySummary
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQL) GetDeliveredByItemTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64) (map[uint64]float64, error) {
	q := `SELECT di.purchase_item_id, COALESCE(SUM(di.quantity), 0) AS qty
FROM delivery_item di
JOIN purchase_delivery d ON d.id = di.delivery_id
WHERE d.purchase_id = ? AND d.status != ?
GROUP BY di.purchase_item_id`
	rows, err := tx.QueryxContext(ctx, q, purchaseID, constant.DeliveryStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64]float64)
	for rows.Next() {
		var itemID uint64
		var qty float64
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, err
		}
		out[itemID] = qty
	}
	return out, nil
}

func (r *SQL) GetOrderedQuantityTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64) (float64, error) {
	var total sql.NullFloat64
	if err := tx.GetContext(ctx, &total, "SELECT COALESCE(SUM(quantity), 0) FROM purchase_item WHERE purchase_id = ?", purchaseID); err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Purchase, error) {
	var p model.Purchase
	err := r.conn.QueryRowxContext(ctx, "SELECT "+purchaseColumns+" FROM purchase WHERE id = ?", id).StructScan(&p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.conn.QueryxContext(ctx, "SELECT id, purchase_id, name, category, unit, quantity, unit_cost FROM purchase_item WHERE purchase_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.PurchaseItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		p.Items = append(p.Items, it)
	}

	drows, err := r.conn.QueryxContext(ctx, "SELECT "+deliveryColumns+" FROM purchase_delivery WHERE purchase_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer drows.Close()
	for drows.Next() {
		var d model.PurchaseDelivery
		if err := drows.StructScan(&d); err != nil {
			return nil, err
		}
		p.Deliveries = append(p.Deliveries, d)
	}

	return &p, nil
}

func (r *SQL) List(ctx context.Context, filter *model.PurchaseFilter) ([]model.Purchase, int64, error) {
	query := "SELECT " + purchaseColumns + " FROM purchase WHERE true"
	countQuery := "SELECT COUNT(*) FROM purchase WHERE true"
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

	items := make([]model.Purchase, 0)
	for rows.Next() {
		var p model.Purchase
		if err := rows.StructScan(&p); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
