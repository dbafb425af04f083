package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rsetiawan/agrostock/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, filter *model.ProductFilter) ([]model.Product, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	Insert(ctx context.Context, data *model.Product) (uint64, error)
	Update(ctx context.Context, data *model.Product) error
	Delete(ctx context.Context, id uint64) error
	ListBelowMinStock(ctx context.Context) ([]model.Product, error)

	// GetForUpdateTx locks the product row for the rest of the transaction.
	// Returns nil when the product does not exist.
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error)
	// AddStockTx applies a signed delta to the locked row's stock.
	AddStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, delta float64) error
	// InsertTx creates a brand-new inventory record inside the transaction.
	// Produced lots are never merged into an existing product row.
	InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Product) (uint64, error)
	ReassignWarehouseTx(ctx context.Context, tx *sqlx.Tx, id, warehouseID uint64) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	listProductsBase = `SELECT id, name, category, unit, stock, min_stock, warehouse_id, field_name, lot_code, created_at, updated_at
FROM product WHERE true`

	getProductQuery = `SELECT id, name, category, unit, stock, min_stock, warehouse_id, field_name, lot_code, created_at, updated_at
FROM product WHERE id = ?`

	insertProductQuery = `INSERT INTO product (name, category, unit, stock, min_stock, warehouse_id, field_name, lot_code, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	lowStockQuery = `SELECT id, name, category, unit, stock, min_stock, warehouse_id, field_name, lot_code, created_at, updated_at
FROM product WHERE stock < min_stock ORDER BY id`
)

func (s *SQL) List(ctx context.Context, filter *model.ProductFilter) ([]model.Product, int64, error) {
	query := listProductsBase
	countQuery := "SELECT COUNT(*) FROM product WHERE true"
	args := make([]any, 0, 2)

	if filter.WarehouseID != 0 {
		query += " AND warehouse_id = ?"
		countQuery += " AND warehouse_id = ?"
		args = append(args, filter.WarehouseID)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		countQuery += " AND category = ?"
		args = append(args, filter.Category)
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, filter.PerPage, offset)

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		var it model.Product
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}

	return items, total, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := s.conn.QueryRowxContext(ctx, getProductQuery, id).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *SQL) Insert(ctx context.Context, data *model.Product) (uint64, error) {
	res, err := s.conn.ExecContext(ctx, insertProductQuery,
		data.Name, data.Category, data.Unit, data.Stock, data.MinStock, data.WarehouseID, data.FieldName, data.LotCode)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) Update(ctx context.Context, data *model.Product) error {
	_, err := s.conn.ExecContext(ctx,
		"UPDATE product SET name = ?, category = ?, unit = ?, min_stock = ?, field_name = ?, updated_at = NOW() WHERE id = ?",
		data.Name, data.Category, data.Unit, data.MinStock, data.FieldName, data.ID)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, "DELETE FROM product WHERE id = ?", id)
	return err
}

func (s *SQL) ListBelowMinStock(ctx context.Context) ([]model.Product, error) {
	rows, err := s.conn.QueryxContext(ctx, lowStockQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		var it model.Product
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error) {
	var p model.Product
	if err := tx.QueryRowxContext(ctx, getProductQuery+" FOR UPDATE", id).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *SQL) AddStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, delta float64) error {
	_, err := tx.ExecContext(ctx, "UPDATE product SET stock = stock + ?, updated_at = NOW() WHERE id = ?", delta, id)
	return err
}

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, data *model.Product) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertProductQuery,
		data.Name, data.Category, data.Unit, data.Stock, data.MinStock, data.WarehouseID, data.FieldName, data.LotCode)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) ReassignWarehouseTx(ctx context.Context, tx *sqlx.Tx, id, warehouseID uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE product SET warehouse_id = ?, updated_at = NOW() WHERE id = ?", warehouseID, id)
	return err
}
